package history

import (
	"time"

	"github.com/BaSui01/fluxgen/catalog"
	"github.com/BaSui01/fluxgen/generation"
)

// MaxHistory is the default store capacity.
const MaxHistory = 100

// DefaultKey is the slot key the history document lives under.
const DefaultKey = "flux-ai-history"

// NoStyle is reported by Stats when the store is empty.
const NoStyle = "-"

// Item 一条历史记录，创建后不再修改
type Item struct {
	generation.Result

	ID             string              `json:"id"`
	Prompt         string              `json:"prompt,omitempty"`
	NegativePrompt string              `json:"negative_prompt,omitempty"`
	QualityMode    catalog.QualityMode `json:"quality_mode,omitempty"`
}

// Stats 历史统计
type Stats struct {
	Total           int     `json:"total"`
	SizeKB          float64 `json:"size_kb"`
	MostRecentStyle string  `json:"most_recent_style"`
}

// ExportFileName returns flux-ai-history-YYYY-MM-DD.json for the UTC date of now.
func ExportFileName(now time.Time) string {
	return DefaultKey + "-" + now.UTC().Format(time.DateOnly) + ".json"
}
