package optimizer

import (
	"math"

	"github.com/BaSui01/fluxgen/catalog"
)

// StepBounds 单个模型的步数区间
type StepBounds struct {
	Min     int `json:"min"`
	Optimal int `json:"optimal"`
	Max     int `json:"max"`
}

// Params is the derived generation parameters.
type Params struct {
	Steps    int     `json:"steps"`
	Guidance float64 `json:"guidance"`
}

// Defaults used when automatic optimization is off and the caller gave no value.
const (
	DefaultSteps    = 20
	DefaultGuidance = 7.5
)

// fallbackModel supplies bounds for unknown models.
const fallbackModel = "flux"

var modelSteps = map[string]StepBounds{
	"zimage":  {Min: 8, Optimal: 15, Max: 25},
	"flux":    {Min: 15, Optimal: 20, Max: 30},
	"turbo":   {Min: 4, Optimal: 8, Max: 12},
	"kontext": {Min: 18, Optimal: 25, Max: 35},
}

var qualityMultipliers = map[catalog.QualityMode]float64{
	catalog.QualityEconomy:  0.85,
	catalog.QualityStandard: 1.0,
	catalog.QualityUltra:    1.35,
}

// Bounds returns the step bounds of model, or the flux bounds when unknown.
func Bounds(model string) StepBounds {
	if b, ok := modelSteps[model]; ok {
		return b
	}
	return modelSteps[fallbackModel]
}

// QualityMultiplier returns the steps multiplier of mode; unknown modes get 1.0.
func QualityMultiplier(mode catalog.QualityMode) float64 {
	if m, ok := qualityMultipliers[mode]; ok {
		return m
	}
	return 1.0
}

// SizeMultiplier scales steps by the total pixel count.
func SizeMultiplier(width, height int) float64 {
	pixels := int64(width) * int64(height)
	switch {
	case pixels >= 2048*2048:
		return 1.30
	case pixels >= 1536*1536:
		return 1.15
	case pixels >= 1024*1024:
		return 1.00
	default:
		return 0.80
	}
}

// BaseGuidance 按模型与风格给出 guidance 基准值，turbo 优先于风格判断
func BaseGuidance(model, style string) float64 {
	switch {
	case model == "turbo":
		return 2.5
	case style == "photorealistic":
		return 8.5
	case style == "oil-painting" || style == "watercolor":
		return 6.5
	default:
		return DefaultGuidance
	}
}

// Optimize derives steps and guidance. userSteps and userGuidance override the
// computed values when set to a positive value; steps are clamped into the
// model's bounds either way.
func Optimize(model string, width, height int, style string, mode catalog.QualityMode, userSteps *int, userGuidance *float64) Params {
	b := Bounds(model)

	var steps int
	if userSteps != nil && *userSteps > 0 {
		steps = *userSteps
	} else {
		steps = int(math.Round(float64(b.Optimal) * QualityMultiplier(mode) * SizeMultiplier(width, height)))
	}

	guidance := BaseGuidance(model, style)
	if userGuidance != nil && *userGuidance > 0 {
		guidance = *userGuidance
	}

	return Params{
		Steps:    clamp(steps, b.Min, b.Max),
		Guidance: guidance,
	}
}

// Resolve returns the parameters a request should use: Optimize when auto is
// set, otherwise the caller's values or the fixed defaults without clamping.
func Resolve(auto bool, model string, width, height int, style string, mode catalog.QualityMode, userSteps *int, userGuidance *float64) Params {
	if auto {
		return Optimize(model, width, height, style, mode, userSteps, userGuidance)
	}
	p := Params{Steps: DefaultSteps, Guidance: DefaultGuidance}
	if userSteps != nil && *userSteps > 0 {
		p.Steps = *userSteps
	}
	if userGuidance != nil && *userGuidance > 0 {
		p.Guidance = *userGuidance
	}
	return p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
