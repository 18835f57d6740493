package optimizer

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/BaSui01/fluxgen/catalog"
)

var allModes = []catalog.QualityMode{catalog.QualityEconomy, catalog.QualityStandard, catalog.QualityUltra}

// 属性：任意模型、质量模式与分辨率下，步数都在模型区间内
func TestProperty_Optimize_StepsWithinBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		model := rapid.SampledFrom([]string{"zimage", "flux", "turbo", "kontext", "unknown", ""}).Draw(rt, "model")
		mode := rapid.SampledFrom(allModes).Draw(rt, "mode")
		width := rapid.IntRange(1, 4096).Draw(rt, "width")
		height := rapid.IntRange(1, 4096).Draw(rt, "height")
		style := rapid.SampledFrom([]string{"none", "photorealistic", "watercolor", "anime"}).Draw(rt, "style")

		var userSteps *int
		if rapid.Bool().Draw(rt, "hasSteps") {
			v := rapid.IntRange(-10, 200).Draw(rt, "steps")
			userSteps = &v
		}

		b := Bounds(model)
		p := Optimize(model, width, height, style, mode, userSteps, nil)
		assert.GreaterOrEqual(t, p.Steps, b.Min)
		assert.LessOrEqual(t, p.Steps, b.Max)
		assert.Greater(t, p.Guidance, 0.0)
	})
}

// 属性：Optimize 是纯函数
func TestProperty_Optimize_Pure(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("same inputs give same outputs", prop.ForAll(
		func(model string, width, height int, modeIdx int) bool {
			mode := allModes[modeIdx]
			a := Optimize(model, width, height, "none", mode, nil, nil)
			b := Optimize(model, width, height, "none", mode, nil, nil)
			return a == b
		},
		gen.OneConstOf("zimage", "flux", "turbo", "kontext", "mystery"),
		gen.IntRange(64, 4096),
		gen.IntRange(64, 4096),
		gen.IntRange(0, len(allModes)-1),
	))

	properties.Property("higher quality never lowers steps", prop.ForAll(
		func(model string, width, height int) bool {
			eco := Optimize(model, width, height, "none", catalog.QualityEconomy, nil, nil)
			std := Optimize(model, width, height, "none", catalog.QualityStandard, nil, nil)
			ult := Optimize(model, width, height, "none", catalog.QualityUltra, nil, nil)
			return eco.Steps <= std.Steps && std.Steps <= ult.Steps
		},
		gen.OneConstOf("zimage", "flux", "turbo", "kontext"),
		gen.IntRange(64, 4096),
		gen.IntRange(64, 4096),
	))

	properties.TestingRun(t)
}

// 属性：复杂度始终在 [0, 1]
func TestProperty_AnalyzePromptComplexity_Range(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		prompt := rapid.String().Draw(rt, "prompt")
		c := AnalyzePromptComplexity(prompt)
		assert.GreaterOrEqual(t, c, 0.0)
		assert.LessOrEqual(t, c, 1.0)
		assert.True(t, RecommendQualityMode(prompt, "flux").Valid())
	})
}
