package translate

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BaSui01/fluxgen/internal/retry"
	"github.com/BaSui01/fluxgen/types"
)

// Detected languages.
const (
	LangEnglish = "en"
	LangChinese = "zh"
)

// Providers reported in Result.Provider.
const (
	ProviderNone   = "none"
	ProviderRemote = "remote"
	ProviderCache  = "cache"
	ProviderLocal  = "local"
)

// Result 单条翻译结果
type Result struct {
	Original   string  `json:"original"`
	Translated string  `json:"translated"`
	Detected   string  `json:"detected_language"`
	Confidence float64 `json:"confidence"`
	Provider   string  `json:"provider"`
}

// Changed reports whether the translation differs from the original text.
func (r Result) Changed() bool {
	return r.Original != r.Translated
}

// Translator 翻译回退链：远程 → 本地词表 → 原文
type Translator struct {
	remote  *remoteClient
	retryer *retry.Retryer
	limiter *rate.Limiter
	cache   Cache
	logger  *zap.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithCache enables caching of remote translations.
func WithCache(c Cache) Option {
	return func(t *Translator) { t.cache = c }
}

// WithHTTPClient overrides the HTTP client used for the remote endpoint.
func WithHTTPClient(client *http.Client) Option {
	return func(t *Translator) {
		if t.remote != nil {
			t.remote.client = client
		}
	}
}

// New creates a Translator. The remote step is active only when cfg resolves
// to an endpoint.
func New(cfg Config, logger *zap.Logger, opts ...Option) *Translator {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "translator"))

	t := &Translator{logger: logger}
	if cfg.Enabled() {
		t.remote = newRemoteClient(cfg, nil)
		t.retryer = retry.New(retry.Policy{
			MaxRetries:   cfg.MaxRetries,
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     2 * time.Second,
			Multiplier:   2,
			Jitter:       true,
			ShouldRetry:  types.IsRetryable,
		}, logger)

		limit := rate.Inf
		if cfg.RequestsPerSecond > 0 {
			limit = rate.Limit(cfg.RequestsPerSecond)
		}
		t.limiter = rate.NewLimiter(limit, 1)
	}

	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RemoteEnabled reports whether the remote step is configured.
func (t *Translator) RemoteEnabled() bool {
	return t.remote != nil
}

// Translate never returns an error: every failure degrades to the next step.
func (t *Translator) Translate(ctx context.Context, text string) Result {
	if !NeedsTranslation(text) {
		return Result{Original: text, Translated: text, Detected: LangEnglish, Confidence: 1.0, Provider: ProviderNone}
	}

	if t.remote != nil {
		if t.cache != nil {
			if v, ok := t.cache.Get(ctx, text); ok {
				return Result{Original: text, Translated: v, Detected: LangChinese, Confidence: 0.95, Provider: ProviderCache}
			}
		}

		translated, err := t.translateRemote(ctx, text)
		if err == nil {
			if t.cache != nil {
				t.cache.Set(ctx, text, translated)
			}
			return Result{Original: text, Translated: translated, Detected: LangChinese, Confidence: 0.95, Provider: ProviderRemote}
		}
		t.logger.Warn("remote translation failed, using local phrases", zap.Error(err))
	}

	translated, ok := TranslateLocally(text)
	if !ok {
		t.logger.Warn("no local phrase matched, keeping original text", zap.Int("runes", len([]rune(text))))
		return Result{Original: text, Translated: text, Detected: LangChinese, Confidence: 0, Provider: ProviderLocal}
	}
	return Result{Original: text, Translated: translated, Detected: LangChinese, Confidence: 0.5, Provider: ProviderLocal}
}

func (t *Translator) translateRemote(ctx context.Context, text string) (string, error) {
	return retry.Do(ctx, t.retryer, func(ctx context.Context) (string, error) {
		if err := t.limiter.Wait(ctx); err != nil {
			return "", types.NewError(types.ErrTranslationFailed, "rate limiter").WithCause(err)
		}
		return t.remote.translate(ctx, text)
	})
}

// BatchTranslate translates texts in order. Remote calls share the
// translator's rate limit.
func (t *Translator) BatchTranslate(ctx context.Context, texts []string) []Result {
	out := make([]Result, len(texts))
	for i, text := range texts {
		out[i] = t.Translate(ctx, text)
	}
	return out
}
