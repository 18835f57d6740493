package generation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BaSui01/fluxgen/catalog"
	"github.com/BaSui01/fluxgen/internal/tlsutil"
	"github.com/BaSui01/fluxgen/media"
	"github.com/BaSui01/fluxgen/optimizer"
	"github.com/BaSui01/fluxgen/prompt"
	"github.com/BaSui01/fluxgen/refimage"
	"github.com/BaSui01/fluxgen/types"
)

// ProviderName identifies the upstream in errors and metrics.
const ProviderName = "pollinations"

// maxPayload caps the image bytes read from one response.
const maxPayload = 64 << 20

// Config 上游图像服务配置
type Config struct {
	Endpoint  string        `yaml:"endpoint" json:"endpoint" env:"ENDPOINT"`
	APIKey    string        `yaml:"api_key" json:"-" env:"API_KEY"`
	Referer   string        `yaml:"referer" json:"referer" env:"REFERER"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" env:"USER_AGENT"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" env:"TIMEOUT"`

	// Concurrency 单次请求内并行的输出数，1 为顺序执行
	Concurrency int `yaml:"concurrency" json:"concurrency" env:"CONCURRENCY"`

	// MaxOutputs 单次请求允许的最大输出数，0 不限制
	MaxOutputs int `yaml:"max_outputs" json:"max_outputs" env:"MAX_OUTPUTS"`
}

// DefaultConfig returns the Pollinations defaults.
func DefaultConfig() Config {
	return Config{
		Endpoint:    "https://gen.pollinations.ai",
		Referer:     "https://pollinations.ai/",
		UserAgent:   "fluxgen/1.0",
		Timeout:     120 * time.Second,
		Concurrency: 1,
		MaxOutputs:  4,
	}
}

// Client 图像生成客户端，一次 Generate 对应 NumOutputs 次上游调用
type Client struct {
	cfg    Config
	http   *http.Client
	media  media.Store
	draw   SeedSource
	now    func() time.Time
	logger *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client. The request timeout is still
// enforced through the context.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) { cl.http = c }
}

// WithSeedSource replaces the random seed source.
func WithSeedSource(s SeedSource) ClientOption {
	return func(cl *Client) { cl.draw = s }
}

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) ClientOption {
	return func(cl *Client) { cl.now = now }
}

// NewClient creates a Client that stores payloads in store.
func NewClient(cfg Config, store media.Store, logger *zap.Logger, opts ...ClientOption) *Client {
	def := DefaultConfig()
	if cfg.Endpoint == "" {
		cfg.Endpoint = def.Endpoint
	}
	if cfg.Referer == "" {
		cfg.Referer = def.Referer
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		cfg:    cfg,
		http:   tlsutil.SecureHTTPClient(0, cfg.Concurrency),
		media:  store,
		draw:   rand.Int64N,
		now:    time.Now,
		logger: logger.With(zap.String("component", "generation")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Generate runs the whole request. Any failing output fails the call and
// releases the media handles already created for it.
func (c *Client) Generate(ctx context.Context, req Request) ([]Result, error) {
	req.ApplyDefaults()
	model, style, err := req.Validate(c.cfg.MaxOutputs)
	if err != nil {
		return nil, err
	}

	composed := prompt.Compose(req.Prompt, req.NegativePrompt, style, req.Enhance, req.QualityMode)
	params := optimizer.Resolve(req.AutoOptimizeEnabled(), req.Model, req.Width, req.Height, req.Style, req.QualityMode, req.Steps, req.Guidance)
	reference, _ := refimage.Select(req.ReferenceImages, model.SupportsReferenceImages)
	seeds := DeriveSeeds(req.Seed, req.NumOutputs, c.draw)
	size, _ := catalog.MatchSize(req.Width, req.Height)

	base := callParams{
		text:      prompt.CombinedText(composed),
		model:     req.Model,
		width:     req.Width,
		height:    req.Height,
		enhance:   req.Enhance,
		params:    params,
		reference: reference,
	}

	c.logger.Debug("generating",
		zap.String("model", req.Model),
		zap.String("style", req.Style),
		zap.String("quality", string(req.QualityMode)),
		zap.Int("outputs", req.NumOutputs),
		zap.Int("steps", params.Steps),
		zap.Float64("guidance", params.Guidance),
		zap.Bool("reference", reference != ""),
	)

	results := make([]Result, len(seeds))
	fetch := func(ctx context.Context, i int) error {
		p := base
		p.seed = seeds[i]
		blob, err := c.call(ctx, p)
		if err != nil {
			return annotate(err, i, len(seeds))
		}
		handle, err := c.media.Put(ctx, blob)
		if err != nil {
			return types.NewError(types.ErrInternalError, "store image").WithCause(err)
		}
		results[i] = Result{
			URL:       handle,
			Model:     req.Model,
			Seed:      seeds[i],
			Width:     req.Width,
			Height:    req.Height,
			Size:      size.Key,
			Style:     req.Style,
			Timestamp: c.now().UTC().Format(time.RFC3339Nano),
			MimeType:  blob.MimeType,
			Steps:     params.Steps,
			Guidance:  params.Guidance,
		}
		return nil
	}

	if err := c.run(ctx, len(seeds), fetch); err != nil {
		c.discard(results)
		c.logger.Warn("generation failed", zap.String("model", req.Model), zap.Error(err))
		return nil, err
	}
	return results, nil
}

// run executes fetch for every index, sequentially or with bounded parallelism.
func (c *Client) run(ctx context.Context, n int, fetch func(context.Context, int) error) error {
	if c.cfg.Concurrency <= 1 || n == 1 {
		for i := 0; i < n; i++ {
			if err := fetch(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)
	for i := 0; i < n; i++ {
		g.Go(func() error { return fetch(gctx, i) })
	}
	return g.Wait()
}

// discard releases handles of a failed batch.
func (c *Client) discard(results []Result) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, r := range results {
		if r.URL == "" {
			continue
		}
		if err := c.media.Release(ctx, r.URL); err != nil {
			c.logger.Warn("release media failed", zap.String("handle", r.URL), zap.Error(err))
		}
	}
}

// call performs one upstream GET with the configured timeout.
func (c *Client) call(ctx context.Context, p callParams) (media.Blob, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, buildURL(c.cfg.Endpoint, p), nil)
	if err != nil {
		return media.Blob{}, types.NewValidationError("invalid request url").WithCause(err)
	}
	httpReq.Header.Set("Accept", "image/*")
	httpReq.Header.Set("User-Agent", c.cfg.UserAgent)
	httpReq.Header.Set("Referer", c.cfg.Referer)
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return media.Blob{}, types.NewTimeoutError(ProviderName,
				fmt.Sprintf("request timed out after %s", c.cfg.Timeout)).WithCause(err)
		}
		return media.Blob{}, types.NewUpstreamError(ProviderName, "request failed", 0).WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := fmt.Sprintf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		if text := strings.TrimSpace(string(body)); text != "" {
			msg += ": " + text
		}
		return media.Blob{}, types.NewUpstreamError(ProviderName, msg, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return media.Blob{}, types.NewTimeoutError(ProviderName, "timed out reading image").WithCause(err)
		}
		return media.Blob{}, types.NewUpstreamError(ProviderName, "read response body", 0).WithCause(err)
	}
	if len(data) == 0 {
		return media.Blob{}, types.NewUpstreamError(ProviderName, "empty image payload", 0)
	}

	mt := contentType(resp.Header.Get("Content-Type"), data)
	if !strings.HasPrefix(mt, "image/") {
		return media.Blob{}, types.NewUpstreamError(ProviderName, "unexpected content type "+mt, 0)
	}
	return media.Blob{MimeType: mt, Data: data}, nil
}

func contentType(header string, data []byte) string {
	mt, _, _ := strings.Cut(header, ";")
	mt = strings.ToLower(strings.TrimSpace(mt))
	if mt == "" || mt == "application/octet-stream" {
		return refimage.Sniff(data)
	}
	return mt
}

// annotate prefixes the output index to the error message, keeping its code.
func annotate(err error, i, n int) error {
	if e, ok := types.AsError(err); ok {
		e.Message = fmt.Sprintf("output %d/%d: %s", i+1, n, e.Message)
		return e
	}
	return fmt.Errorf("output %d/%d: %w", i+1, n, err)
}
