package optimizer

import (
	"strings"

	"github.com/BaSui01/fluxgen/catalog"
)

var complexKeywords = []string{
	"detailed", "intricate", "complex", "elaborate",
	"realistic", "photorealistic", "hyperrealistic",
	"architecture", "cityscape", "landscape", "portrait",
	"texture", "material", "lighting", "shadows",
	"fine details", "high detail", "ultra detailed",
	"4k", "8k", "uhd", "hdr",
}

// AnalyzePromptComplexity scores prompt in [0, 1]. Each keyword hit adds 0.1,
// long prompts add 0.2 (>100 chars) and 0.3 more (>200 chars), and more than
// five comma-separated parts add 0.15.
func AnalyzePromptComplexity(prompt string) float64 {
	lower := strings.ToLower(prompt)
	score := 0.0
	for _, kw := range complexKeywords {
		if strings.Contains(lower, kw) {
			score += 0.1
		}
	}

	n := len([]rune(prompt))
	if n > 100 {
		score += 0.2
	}
	if n > 200 {
		score += 0.3
	}
	if len(strings.Split(prompt, ",")) > 5 {
		score += 0.15
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}

// RecommendQualityMode 推荐质量模式：turbo 固定 economy，kontext 固定 ultra，其余按复杂度
func RecommendQualityMode(prompt, model string) catalog.QualityMode {
	switch model {
	case "turbo":
		return catalog.QualityEconomy
	case "kontext":
		return catalog.QualityUltra
	}

	c := AnalyzePromptComplexity(prompt)
	switch {
	case c > 0.7:
		return catalog.QualityUltra
	case c > 0.4:
		return catalog.QualityStandard
	default:
		return catalog.QualityEconomy
	}
}
