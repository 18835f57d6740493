package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/fluxgen/history"
	"github.com/BaSui01/fluxgen/internal/metrics"
	"github.com/BaSui01/fluxgen/types"
)

// =============================================================================
// 🗂️ 历史记录 Handler
// =============================================================================

// HistoryStore 历史记录存储
type HistoryStore interface {
	GetAll(ctx context.Context) []history.Item
	DeleteByID(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	ExportAll(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, doc []byte) (int, error)
	Stats(ctx context.Context) history.Stats
}

// HistoryHandler 历史记录处理器
type HistoryHandler struct {
	store   HistoryStore
	metrics *metrics.Collector
	maxBody int64
	now     func() time.Time
	logger  *zap.Logger
}

// NewHistoryHandler 创建历史记录处理器，m 可以为 nil
func NewHistoryHandler(store HistoryStore, m *metrics.Collector, maxBody int64, logger *zap.Logger) *HistoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryHandler{
		store:   store,
		metrics: m,
		maxBody: maxBody,
		now:     time.Now,
		logger:  logger.With(zap.String("handler", "history")),
	}
}

// HandleList GET /api/v1/history，最新的在前
func (h *HistoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items := h.store.GetAll(r.Context())
	h.metrics.SetHistoryItems(len(items))
	WriteSuccess(w, r, items)
}

// HandleDelete DELETE /api/v1/history/{id}，未知 id 也返回成功
func (h *HistoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, r, types.NewValidationError("id is required"), h.logger)
		return
	}

	err := h.store.DeleteByID(r.Context(), id)
	h.metrics.RecordHistoryOp("delete", err)
	if err != nil {
		WriteError(w, r, err, h.logger)
		return
	}
	WriteSuccess(w, r, map[string]string{"id": id})
}

// HandleClear DELETE /api/v1/history
func (h *HistoryHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	err := h.store.Clear(r.Context())
	h.metrics.RecordHistoryOp("clear", err)
	if err != nil {
		WriteError(w, r, err, h.logger)
		return
	}
	h.metrics.SetHistoryItems(0)
	WriteSuccess(w, r, nil)
}

// HandleExport GET /api/v1/history/export，以附件形式返回 JSON 文档
func (h *HistoryHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.ExportAll(r.Context())
	h.metrics.RecordHistoryOp("export", err)
	if err != nil {
		WriteError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+history.ExportFileName(h.now())+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// HandleImport POST /api/v1/history/import，请求体为导出的 JSON 文档，替换现有记录
func (h *HistoryHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	limit := h.maxBody
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	doc, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		WriteError(w, r, types.NewError(types.ErrInvalidRequest, "request body too large").
			WithHTTPStatus(http.StatusRequestEntityTooLarge).WithCause(err), h.logger)
		return
	}

	n, err := h.store.Import(r.Context(), doc)
	h.metrics.RecordHistoryOp("import", err)
	if err != nil {
		WriteError(w, r, err, h.logger)
		return
	}
	h.metrics.SetHistoryItems(n)
	WriteSuccess(w, r, map[string]int{"imported": n})
}

// HandleStats GET /api/v1/history/stats
func (h *HistoryHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.store.Stats(r.Context()))
}
