package prompt

import (
	"strings"

	"github.com/BaSui01/fluxgen/catalog"
)

// Composed is the prompt pair after style and HD augmentation.
type Composed struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt"`
}

// Compose appends style and HD fragments to the user's text. Style fragments
// come before the HD boost. Compose does not deduplicate: composing the output
// a second time appends every fragment again.
func Compose(prompt, negative string, style catalog.StylePreset, enhance bool, mode catalog.QualityMode) Composed {
	out := Composed{Prompt: prompt, NegativePrompt: negative}

	if style.Prompt != "" {
		out.Prompt = join(out.Prompt, style.Prompt)
	}
	if style.Negative != "" {
		out.NegativePrompt = join(out.NegativePrompt, style.Negative)
	}

	if enhance {
		out.Prompt = join(out.Prompt, mode.Info().HDBoost)
		if mode != catalog.QualityEconomy {
			out.NegativePrompt = join(out.NegativePrompt, catalog.HDNegative)
		}
	}
	return out
}

// CombinedText is the single text payload for providers without a separate
// negative prompt field.
func CombinedText(c Composed) string {
	if c.NegativePrompt == "" {
		return c.Prompt
	}
	var b strings.Builder
	b.Grow(len(c.Prompt) + len(c.NegativePrompt) + 13)
	b.WriteString(c.Prompt)
	b.WriteString(" [negative: ")
	b.WriteString(c.NegativePrompt)
	b.WriteString("]")
	return b.String()
}

func join(base, fragment string) string {
	if base == "" {
		return fragment
	}
	return base + ", " + fragment
}
