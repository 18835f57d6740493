package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned by every lookup when the key is not in the catalog.
var ErrNotFound = errors.New("catalog: not found")

// StyleNone is the identity style: empty prompt and negative fragments.
const StyleNone = "none"

// StylePreset 风格预设，追加到用户提示词后面
type StylePreset struct {
	Key         string `json:"key" yaml:"key"`
	Name        string `json:"name" yaml:"name"`
	Prompt      string `json:"prompt" yaml:"prompt"`
	Negative    string `json:"negative" yaml:"negative"`
	Category    string `json:"category" yaml:"category"`
	Icon        string `json:"icon" yaml:"icon"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// StyleCategory 风格分类，Order 决定展示顺序
type StyleCategory struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Order int    `json:"order"`
}

// ModelDescriptor 描述上游提供的一个图像模型
type ModelDescriptor struct {
	ID                      string `json:"id"`
	Name                    string `json:"name"`
	Category                string `json:"category"`
	Description             string `json:"description"`
	MaxSize                 int    `json:"max_size"`
	SupportsReferenceImages bool   `json:"supports_reference_images"`
	MaxReferenceImages      int    `json:"max_reference_images,omitempty"`
}

// SizePreset 命名的输出尺寸
type SizePreset struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

var (
	styleIndex    map[string]StylePreset
	categoryIndex map[string]StyleCategory
	modelIndex    map[string]ModelDescriptor
	sizeIndex     map[string]SizePreset
	orderedStyles []StylePreset
)

func init() {
	if err := build(); err != nil {
		panic(err)
	}
}

func build() error {
	categoryIndex = make(map[string]StyleCategory, len(styleCategories))
	for _, c := range styleCategories {
		if _, dup := categoryIndex[c.Key]; dup {
			return fmt.Errorf("catalog: duplicate category %q", c.Key)
		}
		categoryIndex[c.Key] = c
	}

	styleIndex = make(map[string]StylePreset, len(stylePresets))
	for _, s := range stylePresets {
		if s.Key == "" || s.Name == "" {
			return fmt.Errorf("catalog: style with empty key or name: %+v", s)
		}
		if _, dup := styleIndex[s.Key]; dup {
			return fmt.Errorf("catalog: duplicate style %q", s.Key)
		}
		if _, ok := categoryIndex[s.Category]; !ok {
			return fmt.Errorf("catalog: style %q has unknown category %q", s.Key, s.Category)
		}
		styleIndex[s.Key] = s
	}
	if s, ok := styleIndex[StyleNone]; !ok || s.Prompt != "" || s.Negative != "" {
		return errors.New("catalog: style \"none\" must exist and be empty")
	}

	orderedStyles = make([]StylePreset, len(stylePresets))
	copy(orderedStyles, stylePresets)
	sort.SliceStable(orderedStyles, func(i, j int) bool {
		return categoryIndex[orderedStyles[i].Category].Order < categoryIndex[orderedStyles[j].Category].Order
	})

	modelIndex = make(map[string]ModelDescriptor, len(models))
	for _, m := range models {
		if _, dup := modelIndex[m.ID]; dup {
			return fmt.Errorf("catalog: duplicate model %q", m.ID)
		}
		if m.MaxSize <= 0 {
			return fmt.Errorf("catalog: model %q has no max size", m.ID)
		}
		if m.SupportsReferenceImages != (m.MaxReferenceImages > 0) {
			return fmt.Errorf("catalog: model %q reference image settings disagree", m.ID)
		}
		modelIndex[m.ID] = m
	}

	sizeIndex = make(map[string]SizePreset, len(sizePresets))
	for _, s := range sizePresets {
		if _, dup := sizeIndex[s.Key]; dup {
			return fmt.Errorf("catalog: duplicate size %q", s.Key)
		}
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("catalog: size %q must be positive", s.Key)
		}
		sizeIndex[s.Key] = s
	}
	return nil
}

// StyleOf returns the style preset for key.
func StyleOf(key string) (StylePreset, error) {
	s, ok := styleIndex[key]
	if !ok {
		return StylePreset{}, fmt.Errorf("%w: style %q", ErrNotFound, key)
	}
	return s, nil
}

// ModelOf returns the model descriptor for id.
func ModelOf(id string) (ModelDescriptor, error) {
	m, ok := modelIndex[id]
	if !ok {
		return ModelDescriptor{}, fmt.Errorf("%w: model %q", ErrNotFound, id)
	}
	return m, nil
}

// SizeOf returns the size preset for key.
func SizeOf(key string) (SizePreset, error) {
	s, ok := sizeIndex[key]
	if !ok {
		return SizePreset{}, fmt.Errorf("%w: size %q", ErrNotFound, key)
	}
	return s, nil
}

// CategoryOf returns the style category for key.
func CategoryOf(key string) (StyleCategory, error) {
	c, ok := categoryIndex[key]
	if !ok {
		return StyleCategory{}, fmt.Errorf("%w: category %q", ErrNotFound, key)
	}
	return c, nil
}

// Styles 返回全部风格，按分类 Order 排序，同分类内保持声明顺序
func Styles() []StylePreset {
	out := make([]StylePreset, len(orderedStyles))
	copy(out, orderedStyles)
	return out
}

// Categories 返回按 Order 排序的风格分类
func Categories() []StyleCategory {
	out := make([]StyleCategory, len(styleCategories))
	copy(out, styleCategories)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// StylesByCategory 按分类分组
func StylesByCategory() map[string][]StylePreset {
	out := make(map[string][]StylePreset, len(styleCategories))
	for _, s := range orderedStyles {
		out[s.Category] = append(out[s.Category], s)
	}
	return out
}

// Models returns every model in declaration order.
func Models() []ModelDescriptor {
	out := make([]ModelDescriptor, len(models))
	copy(out, models)
	return out
}

// Sizes returns every size preset in declaration order.
func Sizes() []SizePreset {
	out := make([]SizePreset, len(sizePresets))
	copy(out, sizePresets)
	return out
}

// MatchSize returns the first preset with exactly the given dimensions.
func MatchSize(width, height int) (SizePreset, bool) {
	for _, s := range sizePresets {
		if s.Width == width && s.Height == height {
			return s, true
		}
	}
	return SizePreset{}, false
}
