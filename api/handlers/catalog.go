package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/BaSui01/fluxgen/catalog"
	"github.com/BaSui01/fluxgen/types"
)

// =============================================================================
// 🎨 目录 Handler
// =============================================================================

// CatalogHandler 只读的风格、模型、尺寸与质量模式目录
type CatalogHandler struct {
	logger *zap.Logger
}

// StylesResponse 风格列表，按分类顺序
type StylesResponse struct {
	Categories []catalog.StyleCategory `json:"categories"`
	Styles     []catalog.StylePreset   `json:"styles"`
}

// NewCatalogHandler 创建目录处理器
func NewCatalogHandler(logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{logger: logger.With(zap.String("handler", "catalog"))}
}

// HandleStyles GET /api/v1/catalog/styles[?category=]
func (h *CatalogHandler) HandleStyles(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		WriteSuccess(w, r, StylesResponse{Categories: catalog.Categories(), Styles: catalog.Styles()})
		return
	}

	cat, err := catalog.CategoryOf(category)
	if err != nil {
		WriteError(w, r, types.NewError(types.ErrNotFound, "unknown style category").
			WithHTTPStatus(http.StatusNotFound).WithCause(err), h.logger)
		return
	}
	WriteSuccess(w, r, StylesResponse{
		Categories: []catalog.StyleCategory{cat},
		Styles:     catalog.StylesByCategory()[cat.Key],
	})
}

// HandleModels GET /api/v1/catalog/models
func (h *CatalogHandler) HandleModels(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, catalog.Models())
}

// HandleSizes GET /api/v1/catalog/sizes
func (h *CatalogHandler) HandleSizes(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, catalog.Sizes())
}

// HandleQualityModes GET /api/v1/catalog/quality-modes
func (h *CatalogHandler) HandleQualityModes(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, catalog.QualityModes())
}
