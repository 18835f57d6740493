package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/fluxgen/media"
	"github.com/BaSui01/fluxgen/types"
)

// MediaSource 按句柄读取图像
type MediaSource interface {
	Get(ctx context.Context, handle string) (media.Blob, error)
}

// MediaHandler 提供生成结果中 media:// 句柄对应的图像
type MediaHandler struct {
	store  MediaSource
	logger *zap.Logger
}

// NewMediaHandler 创建图像处理器
func NewMediaHandler(store MediaSource, logger *zap.Logger) *MediaHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MediaHandler{store: store, logger: logger.With(zap.String("handler", "media"))}
}

// HandleGet GET /api/v1/media/{id}，id 为句柄去掉 media:// 前缀的部分
func (h *MediaHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	handle := media.Scheme + r.PathValue("id")

	blob, err := h.store.Get(r.Context(), handle)
	if errors.Is(err, media.ErrNotFound) {
		WriteError(w, r, types.NewError(types.ErrNotFound, "image not found").
			WithHTTPStatus(http.StatusNotFound), h.logger)
		return
	}
	if err != nil {
		WriteError(w, r, types.NewError(types.ErrInternalError, "read image").WithCause(err), h.logger)
		return
	}

	w.Header().Set("Content-Type", blob.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(blob.Data)))
	w.Header().Set("Cache-Control", "private, max-age=31536000, immutable")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob.Data)
}

// MediaPath 返回句柄对应的 API 路径；非 media:// 句柄原样返回
func MediaPath(handle string) string {
	if id, ok := strings.CutPrefix(handle, media.Scheme); ok && id != "" {
		return "/api/v1/media/" + id
	}
	return handle
}
