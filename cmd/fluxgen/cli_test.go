package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/fluxgen/catalog"
	"github.com/BaSui01/fluxgen/generation"
)

func TestParseGenerateFlags_Defaults(t *testing.T) {
	opts, err := parseGenerateFlags([]string{"-prompt", "a cat"})
	require.NoError(t, err)

	req, err := opts.request()
	require.NoError(t, err)
	assert.Equal(t, "a cat", req.Prompt)
	assert.Equal(t, catalog.DefaultModel, req.Model)
	assert.Equal(t, generation.RandomSeed, req.Seed)
	assert.Equal(t, catalog.QualityStandard, req.QualityMode)
	assert.Nil(t, req.Steps)
	assert.Nil(t, req.Guidance)
	assert.Nil(t, req.AutoOptimize)
}

func TestParseGenerateFlags_PositionalPrompt(t *testing.T) {
	opts, err := parseGenerateFlags([]string{"-n", "2", "neon", "city"})
	require.NoError(t, err)
	assert.Equal(t, "neon city", opts.prompt)
	assert.Equal(t, 2, opts.outputs)
}

func TestCLIOptions_Request(t *testing.T) {
	opts, err := parseGenerateFlags([]string{
		"-prompt", "x", "-size", "portrait-9-16-hd", "-steps", "30", "-guidance", "8.5",
		"-quality", "ultra", "-no-optimize", "-seed", "0",
	})
	require.NoError(t, err)

	req, err := opts.request()
	require.NoError(t, err)
	assert.Equal(t, 1080, req.Width)
	assert.Equal(t, 1920, req.Height)
	require.NotNil(t, req.Steps)
	assert.Equal(t, 30, *req.Steps)
	require.NotNil(t, req.Guidance)
	assert.Equal(t, 8.5, *req.Guidance)
	assert.Equal(t, catalog.QualityUltra, req.QualityMode)
	assert.False(t, req.AutoOptimizeEnabled())
	assert.Equal(t, int64(0), req.Seed)
}

func TestCLIOptions_RequestErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-prompt", "x", "-size", "huge"},
		{"-prompt", "x", "-quality", "extreme"},
		{"-prompt", "x", "-ref", filepath.Join(t.TempDir(), "missing.png")},
	} {
		opts, err := parseGenerateFlags(args)
		require.NoError(t, err)
		_, err = opts.request()
		assert.Error(t, err, args)
	}
}

func TestCLIOptions_ReferenceImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.png")
	require.NoError(t, os.WriteFile(path, pngPayload, 0o644))

	opts, err := parseGenerateFlags([]string{"-prompt", "x", "-model", "kontext", "-ref", path})
	require.NoError(t, err)
	req, err := opts.request()
	require.NoError(t, err)
	require.Len(t, req.ReferenceImages, 1)
	assert.Regexp(t, `^data:image/png;base64,`, req.ReferenceImages[0])
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".jpg", extensionFor("image/jpeg"))
	assert.Equal(t, ".png", extensionFor("image/png"))
	assert.Equal(t, ".bin", extensionFor("application/octet-stream"))
}
