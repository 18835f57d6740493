package generation

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/BaSui01/fluxgen/optimizer"
)

func TestBuildURL(t *testing.T) {
	raw := buildURL("https://gen.example.com/", callParams{
		text: "a cat", model: "flux", width: 768, height: 512, seed: 9,
		enhance: true, params: optimizer.Params{Steps: 24, Guidance: 6.5},
		reference: "https://example.com/ref.png",
	})

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "gen.example.com", u.Host)
	assert.Equal(t, "/image/a cat", u.Path)

	q := u.Query()
	assert.Equal(t, "flux", q.Get("model"))
	assert.Equal(t, "768", q.Get("width"))
	assert.Equal(t, "512", q.Get("height"))
	assert.Equal(t, "9", q.Get("seed"))
	assert.Equal(t, "true", q.Get("nologo"))
	assert.Equal(t, "true", q.Get("enhance"))
	assert.Equal(t, "true", q.Get("private"))
	assert.Equal(t, "24", q.Get("steps"))
	assert.Equal(t, "6.5", q.Get("guidance"))
	assert.Equal(t, "https://example.com/ref.png", q.Get("image"))
}

func TestBuildURL_OmitsDefaults(t *testing.T) {
	raw := buildURL("http://h", callParams{
		text: "x", model: "zimage", width: 1024, height: 1024,
		params: optimizer.Params{Steps: optimizer.DefaultSteps, Guidance: optimizer.DefaultGuidance},
	})
	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.False(t, q.Has("steps"))
	assert.False(t, q.Has("guidance"))
	assert.False(t, q.Has("image"))
}

func TestBuildURL_EscapesSlashes(t *testing.T) {
	raw := buildURL("http://h", callParams{text: "red/blue ? sky", params: optimizer.Params{Steps: 20, Guidance: 7.5}})
	escaped, _, _ := strings.Cut(strings.TrimPrefix(raw, "http://h/image/"), "?")
	assert.NotContains(t, escaped, "/")
	assert.NotContains(t, escaped, "?")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/image/red/blue ? sky", u.Path)
}

func TestDeriveSeeds(t *testing.T) {
	assert.Equal(t, []int64{42, 43, 44}, DeriveSeeds(42, 3, nil))
	assert.Equal(t, []int64{0}, DeriveSeeds(0, 1, nil))

	n := int64(0)
	seeds := DeriveSeeds(RandomSeed, 3, func(max int64) int64 { n++; return n * 10 })
	assert.Equal(t, []int64{10, 20, 30}, seeds)
}

// 属性：显式 seed 的第 i 个输出恒为 seed+i；随机 seed 落在 [0, 1e6)
func TestProperty_DeriveSeeds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "n")
		seed := rapid.Int64Range(0, 1<<40).Draw(rt, "seed")
		for i, s := range DeriveSeeds(seed, n, nil) {
			if s != seed+int64(i) {
				rt.Fatalf("seed %d at %d, want %d", s, i, seed+int64(i))
			}
		}

		draw := func(max int64) int64 { return rapid.Int64Range(0, max-1).Draw(rt, "draw") }
		for _, s := range DeriveSeeds(RandomSeed, n, draw) {
			if s < 0 || s >= maxRandomSeed {
				rt.Fatalf("random seed %d out of range", s)
			}
		}
	})
}
