package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/fluxgen/generation"
	"github.com/BaSui01/fluxgen/pipeline"
	"github.com/BaSui01/fluxgen/types"
)

// stubPipeline 记录收到的输入
type stubPipeline struct {
	got   pipeline.Input
	calls int
	out   pipeline.Output
	err   error
}

func (s *stubPipeline) Generate(_ context.Context, in pipeline.Input) (pipeline.Output, error) {
	s.calls++
	s.got = in
	return s.out, s.err
}

func postGenerate(t *testing.T, h *GenerateHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.HandleGenerate(w, r)
	return w
}

func TestGenerateHandler_Defaults(t *testing.T) {
	p := &stubPipeline{out: pipeline.Output{Results: []generation.Result{{URL: "media://abc", Seed: 7}}}}
	h := NewGenerateHandler(p, true, 0, zap.NewNop())

	w := postGenerate(t, h, `{"prompt":"a cat"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, p.calls)
	assert.Equal(t, "a cat", p.got.Request.Prompt)
	assert.Equal(t, generation.RandomSeed, p.got.Request.Seed, "omitted seed means random")
	assert.True(t, p.got.Translate)

	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
}

func TestGenerateHandler_ExplicitSeedAndTranslate(t *testing.T) {
	p := &stubPipeline{}
	h := NewGenerateHandler(p, true, 0, nil)

	w := postGenerate(t, h, `{"prompt":"貓","seed":0,"translate":false,"num_outputs":2}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), p.got.Request.Seed)
	assert.Equal(t, 2, p.got.Request.NumOutputs)
	assert.False(t, p.got.Translate)
}

func TestGenerateHandler_SizePreset(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantWidth  int
		wantHeight int
	}{
		{"preset", `{"prompt":"x","size":"landscape-16-9-hd"}`, 1920, 1080},
		{"explicit width wins", `{"prompt":"x","size":"landscape-16-9-hd","width":1024}`, 1024, 1080},
		{"no preset", `{"prompt":"x","width":512,"height":768}`, 512, 768},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubPipeline{}
			w := postGenerate(t, NewGenerateHandler(p, false, 0, nil), tt.body)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantWidth, p.got.Request.Width)
			assert.Equal(t, tt.wantHeight, p.got.Request.Height)
		})
	}
}

func TestGenerateHandler_Rejects(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
	}{
		{"unknown size", "application/json", `{"prompt":"x","size":"huge"}`, http.StatusBadRequest},
		{"unknown field", "application/json", `{"prompt":"x","colour":"red"}`, http.StatusBadRequest},
		{"wrong content type", "text/plain", `{"prompt":"x"}`, http.StatusUnsupportedMediaType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubPipeline{}
			h := NewGenerateHandler(p, false, 0, nil)
			r := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", tt.contentType)
			w := httptest.NewRecorder()

			h.HandleGenerate(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Zero(t, p.calls, "pipeline must not run")
		})
	}
}

func TestGenerateHandler_PipelineError(t *testing.T) {
	p := &stubPipeline{err: types.NewUpstreamError("pollinations", "HTTP 502 Bad Gateway", 502)}
	w := postGenerate(t, NewGenerateHandler(p, false, 0, nil), `{"prompt":"x"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UPSTREAM_ERROR", resp.Error.Code)
	assert.Equal(t, "pollinations", resp.Error.Provider)
	assert.True(t, resp.Error.Retryable)
}
