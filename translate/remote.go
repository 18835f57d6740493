package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BaSui01/fluxgen/internal/tlsutil"
	"github.com/BaSui01/fluxgen/types"
)

// DefaultRemoteModel is the Workers AI translation model.
const DefaultRemoteModel = "@cf/meta/m2m100-1.2b"

// Config 远程翻译配置，构造 Translator 时传入
type Config struct {
	// Endpoint 完整的翻译端点；为空且设置了 AccountID 时使用 Workers AI 地址
	Endpoint  string        `yaml:"endpoint" json:"endpoint" env:"ENDPOINT"`
	AccountID string        `yaml:"account_id" json:"account_id" env:"ACCOUNT_ID"`
	APIToken  string        `yaml:"api_token" json:"-" env:"API_TOKEN"`
	Model     string        `yaml:"model" json:"model" env:"MODEL"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" env:"TIMEOUT"`

	// MaxRetries 远程调用的重试次数，失败后回落到本地词表
	MaxRetries int `yaml:"max_retries" json:"max_retries" env:"MAX_RETRIES"`

	// RequestsPerSecond 批量翻译时的远程调用速率
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second" env:"REQUESTS_PER_SECOND"`

	// CacheTTL 远程结果缓存时间，0 表示使用缓存的默认值
	CacheTTL time.Duration `yaml:"cache_ttl" json:"cache_ttl" env:"CACHE_TTL"`
}

// DefaultConfig returns a config with the remote endpoint disabled.
func DefaultConfig() Config {
	return Config{
		Model:             DefaultRemoteModel,
		Timeout:           15 * time.Second,
		MaxRetries:        1,
		RequestsPerSecond: 10,
		CacheTTL:          7 * 24 * time.Hour,
	}
}

// ResolvedEndpoint returns the URL the remote client posts to, or "" when
// the remote step is disabled.
func (c Config) ResolvedEndpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	if c.AccountID == "" || c.APIToken == "" {
		return ""
	}
	model := c.Model
	if model == "" {
		model = DefaultRemoteModel
	}
	return fmt.Sprintf("https://api.cloudflare.com/client/v4/accounts/%s/ai/run/%s", c.AccountID, model)
}

// Enabled reports whether a remote endpoint is configured.
func (c Config) Enabled() bool {
	return c.ResolvedEndpoint() != ""
}

type remoteRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type remoteResponse struct {
	Result *struct {
		TranslatedText string `json:"translated_text"`
	} `json:"result"`
	TranslatedText string `json:"translated_text"`
	Success        *bool  `json:"success"`
	Errors         []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// remoteClient posts a single text to the translation endpoint.
type remoteClient struct {
	endpoint string
	token    string
	client   *http.Client
}

func newRemoteClient(cfg Config, client *http.Client) *remoteClient {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = tlsutil.SecureHTTPClient(timeout, 0)
	}
	return &remoteClient{
		endpoint: cfg.ResolvedEndpoint(),
		token:    cfg.APIToken,
		client:   client,
	}
}

func (c *remoteClient) translate(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(remoteRequest{Text: text, SourceLang: "zh", TargetLang: "en"})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", types.NewError(types.ErrTranslationFailed, "build request").WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", types.NewError(types.ErrTranslationFailed, "request failed").
			WithCause(err).
			WithRetryable(ctx.Err() == nil)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", types.NewError(types.ErrTranslationFailed,
			fmt.Sprintf("remote status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))).
			WithHTTPStatus(resp.StatusCode).
			WithRetryable(resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests)
	}

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", types.NewError(types.ErrTranslationFailed, "decode response").WithCause(err)
	}
	if out.Success != nil && !*out.Success && len(out.Errors) > 0 {
		return "", types.NewError(types.ErrTranslationFailed, out.Errors[0].Message)
	}

	translated := out.TranslatedText
	if out.Result != nil && out.Result.TranslatedText != "" {
		translated = out.Result.TranslatedText
	}
	if strings.TrimSpace(translated) == "" {
		return "", types.NewError(types.ErrTranslationFailed, "empty translation")
	}
	return translated, nil
}
