package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/BaSui01/fluxgen/catalog"
	"github.com/BaSui01/fluxgen/generation"
	"github.com/BaSui01/fluxgen/pipeline"
	"github.com/BaSui01/fluxgen/types"
)

// =============================================================================
// 🖼️ 生成 Handler
// =============================================================================

// Pipeline 执行一次完整生成
type Pipeline interface {
	Generate(ctx context.Context, in pipeline.Input) (pipeline.Output, error)
}

// GenerateRequest POST /api/v1/generate 的请求体。
// seed 缺省为 -1（随机）；size 为尺寸预设，显式的 width/height 优先。
type GenerateRequest struct {
	generation.Request

	Size      string `json:"size,omitempty"`
	Translate *bool  `json:"translate,omitempty"`
}

// GenerateHandler 生成处理器
type GenerateHandler struct {
	pipeline         Pipeline
	translateDefault bool
	maxBody          int64
	logger           *zap.Logger
}

// NewGenerateHandler 创建生成处理器。translateDefault 是请求未指定 translate 时的取值。
func NewGenerateHandler(p Pipeline, translateDefault bool, maxBody int64, logger *zap.Logger) *GenerateHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerateHandler{
		pipeline:         p,
		translateDefault: translateDefault,
		maxBody:          maxBody,
		logger:           logger.With(zap.String("handler", "generate")),
	}
}

// HandleGenerate POST /api/v1/generate
func (h *GenerateHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if !ValidateContentType(w, r, h.logger) {
		return
	}

	body := GenerateRequest{Request: generation.Request{Seed: generation.RandomSeed}}
	if err := DecodeJSONBody(w, r, &body, h.maxBody, h.logger); err != nil {
		return
	}

	req, err := body.resolve()
	if err != nil {
		WriteError(w, r, err, h.logger)
		return
	}

	in := pipeline.Input{Request: req, Translate: h.translateDefault}
	if body.Translate != nil {
		in.Translate = *body.Translate
	}

	out, err := h.pipeline.Generate(r.Context(), in)
	if err != nil {
		WriteError(w, r, err, h.logger)
		return
	}
	WriteSuccess(w, r, out)
}

// resolve 展开尺寸预设
func (b GenerateRequest) resolve() (generation.Request, error) {
	req := b.Request
	if b.Size == "" {
		return req, nil
	}
	size, err := catalog.SizeOf(b.Size)
	if err != nil {
		return req, types.NewValidationError("unknown size preset").WithCause(err)
	}
	if req.Width == 0 {
		req.Width = size.Width
	}
	if req.Height == 0 {
		req.Height = size.Height
	}
	return req, nil
}
