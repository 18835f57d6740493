package catalog

import "fmt"

// QualityMode trades speed for fidelity.
type QualityMode string

const (
	QualityEconomy  QualityMode = "economy"
	QualityStandard QualityMode = "standard"
	QualityUltra    QualityMode = "ultra"
)

// QualityModeInfo 质量模式的展示信息与增强片段
type QualityModeInfo struct {
	Mode            QualityMode `json:"mode"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	StepsMultiplier float64     `json:"steps_multiplier"`
	HDBoost         string      `json:"hd_boost"`
	Icon            string      `json:"icon"`
}

// HDNegative is appended to the negative prompt when enhancement is on
// outside economy mode.
const HDNegative = "blurry, low quality, distorted, ugly, bad anatomy, low resolution, pixelated, artifacts, noise"

var qualityModes = []QualityModeInfo{
	{
		Mode: QualityEconomy, Name: "經濟模式", Description: "快速出圖，節省資源",
		StepsMultiplier: 0.85, HDBoost: "high quality, detailed", Icon: "⚡",
	},
	{
		Mode: QualityStandard, Name: "標準模式", Description: "平衡質量與速度",
		StepsMultiplier: 1.0, HDBoost: "high quality, highly detailed, sharp focus, professional, 8k uhd", Icon: "⭐",
	},
	{
		Mode: QualityUltra, Name: "超高清模式", Description: "極致質量，較慢速度",
		StepsMultiplier: 1.35,
		HDBoost:         "masterpiece, best quality, ultra detailed, 8k uhd, high resolution, professional photography, sharp focus, HDR",
		Icon:            "💎",
	},
}

// Valid reports whether q is one of the three known modes.
func (q QualityMode) Valid() bool {
	switch q {
	case QualityEconomy, QualityStandard, QualityUltra:
		return true
	}
	return false
}

// Info returns the descriptor of q. Unknown modes get the standard descriptor.
func (q QualityMode) Info() QualityModeInfo {
	for _, m := range qualityModes {
		if m.Mode == q {
			return m
		}
	}
	return qualityModes[1]
}

// QualityModeOf parses s into a QualityMode.
func QualityModeOf(s string) (QualityMode, error) {
	q := QualityMode(s)
	if !q.Valid() {
		return "", fmt.Errorf("%w: quality mode %q", ErrNotFound, s)
	}
	return q, nil
}

// QualityModes returns the descriptors in economy, standard, ultra order.
func QualityModes() []QualityModeInfo {
	out := make([]QualityModeInfo, len(qualityModes))
	copy(out, qualityModes)
	return out
}
