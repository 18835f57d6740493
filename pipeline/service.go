package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/fluxgen/catalog"
	"github.com/BaSui01/fluxgen/generation"
	"github.com/BaSui01/fluxgen/history"
	"github.com/BaSui01/fluxgen/internal/metrics"
	"github.com/BaSui01/fluxgen/internal/telemetry"
	"github.com/BaSui01/fluxgen/translate"
	"github.com/BaSui01/fluxgen/types"
)

// Translator turns prompts into English, one result per text in order.
// It never fails.
type Translator interface {
	BatchTranslate(ctx context.Context, texts []string) []translate.Result
}

// Generator runs a generation request.
type Generator interface {
	Generate(ctx context.Context, req generation.Request) ([]generation.Result, error)
}

// History records generated results.
type History interface {
	Add(ctx context.Context, result generation.Result, prompt, negative string, mode catalog.QualityMode) history.Item
}

// Input 一次完整调用的输入
type Input struct {
	Request generation.Request `json:"request"`

	// Translate 为 true 时先把中文提示词译为英文
	Translate bool `json:"translate"`
}

// Translation 记录实际提交的提示词来源
type Translation struct {
	Prompt         translate.Result  `json:"prompt"`
	NegativePrompt *translate.Result `json:"negative_prompt,omitempty"`
}

// Output 生成结果
type Output struct {
	Results     []generation.Result `json:"results"`
	Items       []history.Item      `json:"history_items,omitempty"`
	Translation *Translation        `json:"translation,omitempty"`
}

// Service 串联 翻译 → 生成 → 写入历史
type Service struct {
	translator Translator
	generator  Generator
	history    History
	metrics    *metrics.Collector
	logger     *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithTranslator enables prompt translation.
func WithTranslator(t Translator) Option { return func(s *Service) { s.translator = t } }

// WithHistory records every result.
func WithHistory(h History) Option { return func(s *Service) { s.history = h } }

// WithMetrics records pipeline metrics.
func WithMetrics(m *metrics.Collector) Option { return func(s *Service) { s.metrics = m } }

// NewService creates a Service around gen.
func NewService(gen Generator, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{generator: gen, logger: logger.With(zap.String("component", "pipeline"))}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate runs the whole flow. Translation and history are best effort;
// only validation and upstream failures are returned.
func (s *Service) Generate(ctx context.Context, in Input) (out Output, err error) {
	start := time.Now()
	req := in.Request
	req.ApplyDefaults()

	ctx, span := telemetry.StartSpan(ctx, "fluxgen.generate",
		telemetry.GenerationAttributes(req.Model, req.Style, string(req.QualityMode), req.NumOutputs)...)
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
			if code := types.GetErrorCode(err); code != "" {
				status = string(code)
			}
		}
		s.metrics.RecordGeneration(req.Model, string(req.QualityMode), status, time.Since(start))
		telemetry.EndSpan(span, err)
	}()

	if in.Translate && s.translator != nil {
		out.Translation = s.translate(ctx, &req)
	}

	traceID, _ := types.TraceID(ctx)
	results, err := s.generator.Generate(ctx, req)
	if err != nil {
		s.logger.Warn("generate failed",
			zap.String("trace_id", traceID),
			zap.String("model", req.Model),
			zap.Error(err),
		)
		return Output{}, err
	}
	out.Results = results

	for _, r := range results {
		s.metrics.RecordImage(r.Model, r.Style, r.Steps)
	}
	if s.history != nil {
		out.Items = make([]history.Item, 0, len(results))
		for _, r := range results {
			out.Items = append(out.Items, s.history.Add(ctx, r, req.Prompt, req.NegativePrompt, req.QualityMode))
		}
		s.metrics.RecordHistoryOp("add", nil)
	}

	s.logger.Info("generate completed",
		zap.String("trace_id", traceID),
		zap.String("model", req.Model),
		zap.Int("outputs", len(results)),
		zap.Duration("duration", time.Since(start)),
	)
	return out, nil
}

// translate rewrites req's prompts in place.
func (s *Service) translate(ctx context.Context, req *generation.Request) *Translation {
	ctx, span := telemetry.StartSpan(ctx, "fluxgen.translate")
	defer span.End()

	texts := []string{req.Prompt}
	if req.NegativePrompt != "" {
		texts = append(texts, req.NegativePrompt)
	}
	res := s.translator.BatchTranslate(ctx, texts)
	for _, r := range res {
		s.metrics.RecordTranslation(r.Provider)
	}

	t := &Translation{Prompt: res[0]}
	req.Prompt = res[0].Translated
	if len(res) > 1 {
		neg := res[1]
		req.NegativePrompt = neg.Translated
		t.NegativePrompt = &neg
	}
	span.SetAttributes(telemetry.AttrProvider.String(t.Prompt.Provider))
	return t
}
