package generation

import (
	"fmt"
	"strings"

	"github.com/BaSui01/fluxgen/catalog"
	"github.com/BaSui01/fluxgen/refimage"
	"github.com/BaSui01/fluxgen/types"
)

// RandomSeed asks for a fresh random seed per output.
const RandomSeed int64 = -1

// Request defaults.
const (
	DefaultWidth      = 1024
	DefaultHeight     = 1024
	DefaultNumOutputs = 1
)

// Request 一次生成请求
type Request struct {
	Prompt          string              `json:"prompt"`
	Model           string              `json:"model,omitempty"`
	Width           int                 `json:"width,omitempty"`
	Height          int                 `json:"height,omitempty"`
	Style           string              `json:"style,omitempty"`
	Seed            int64               `json:"seed"`
	NegativePrompt  string              `json:"negative_prompt,omitempty"`
	QualityMode     catalog.QualityMode `json:"quality_mode,omitempty"`
	NumOutputs      int                 `json:"num_outputs,omitempty"`
	ReferenceImages []string            `json:"reference_images,omitempty"`
	Steps           *int                `json:"steps,omitempty"`
	Guidance        *float64            `json:"guidance,omitempty"`
	AutoOptimize    *bool               `json:"auto_optimize,omitempty"`
	Enhance         bool                `json:"enhance"`
}

// NewRequest returns a request for prompt with every default applied,
// including a random seed.
func NewRequest(prompt string) Request {
	r := Request{Prompt: prompt, Seed: RandomSeed}
	r.ApplyDefaults()
	return r
}

// ApplyDefaults fills zero-valued fields. Seed is left alone since 0 is a
// valid seed; callers wanting randomness set RandomSeed.
func (r *Request) ApplyDefaults() {
	if r.Model == "" {
		r.Model = catalog.DefaultModel
	}
	if r.Width == 0 {
		r.Width = DefaultWidth
	}
	if r.Height == 0 {
		r.Height = DefaultHeight
	}
	if r.Style == "" {
		r.Style = catalog.StyleNone
	}
	if r.QualityMode == "" {
		r.QualityMode = catalog.QualityStandard
	}
	if r.NumOutputs == 0 {
		r.NumOutputs = DefaultNumOutputs
	}
}

// AutoOptimizeEnabled defaults to true when unset.
func (r Request) AutoOptimizeEnabled() bool {
	return r.AutoOptimize == nil || *r.AutoOptimize
}

// Validate checks r against the catalog. It runs before any network call.
func (r Request) Validate(maxOutputs int) (catalog.ModelDescriptor, catalog.StylePreset, error) {
	if strings.TrimSpace(r.Prompt) == "" {
		return catalog.ModelDescriptor{}, catalog.StylePreset{}, types.NewValidationError("prompt is required")
	}

	model, err := catalog.ModelOf(r.Model)
	if err != nil {
		return catalog.ModelDescriptor{}, catalog.StylePreset{}, types.NewValidationError("unknown model").WithCause(err)
	}
	style, err := catalog.StyleOf(r.Style)
	if err != nil {
		return catalog.ModelDescriptor{}, catalog.StylePreset{}, types.NewValidationError("unknown style").WithCause(err)
	}
	if !r.QualityMode.Valid() {
		return catalog.ModelDescriptor{}, catalog.StylePreset{},
			types.NewValidationError(fmt.Sprintf("unknown quality mode %q", r.QualityMode))
	}

	if r.Width <= 0 || r.Height <= 0 {
		return catalog.ModelDescriptor{}, catalog.StylePreset{}, types.NewValidationError("width and height must be positive")
	}
	if r.Width > model.MaxSize || r.Height > model.MaxSize {
		return catalog.ModelDescriptor{}, catalog.StylePreset{},
			types.NewValidationError(fmt.Sprintf("model %s supports at most %dpx per side", model.ID, model.MaxSize))
	}

	if r.NumOutputs < 1 {
		return catalog.ModelDescriptor{}, catalog.StylePreset{}, types.NewValidationError("num_outputs must be at least 1")
	}
	if maxOutputs > 0 && r.NumOutputs > maxOutputs {
		return catalog.ModelDescriptor{}, catalog.StylePreset{},
			types.NewValidationError(fmt.Sprintf("num_outputs must be at most %d", maxOutputs))
	}

	if ref, ok := refimage.Select(r.ReferenceImages, model.SupportsReferenceImages); ok {
		if err := refimage.Check(ref); err != nil {
			return catalog.ModelDescriptor{}, catalog.StylePreset{}, err
		}
	}

	return model, style, nil
}

// Result 单个输出
type Result struct {
	URL       string  `json:"url"`
	Model     string  `json:"model"`
	Seed      int64   `json:"seed"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Size      string  `json:"size,omitempty"`
	Style     string  `json:"style"`
	Timestamp string  `json:"timestamp"`
	MimeType  string  `json:"mime_type,omitempty"`
	Steps     int     `json:"steps,omitempty"`
	Guidance  float64 `json:"guidance,omitempty"`
}
