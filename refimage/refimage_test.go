package refimage

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/fluxgen/types"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("image/png", 100))
	assert.NoError(t, Validate("IMAGE/JPEG", MaxSize))

	err := Validate("image/bmp", 100)
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrInvalidRequest))

	assert.Error(t, Validate("image/png", MaxSize+1))
	assert.Error(t, Validate("image/png", 0))
}

func TestDataURLRoundTrip(t *testing.T) {
	u, err := EncodeDataURL(pngHeader)
	require.NoError(t, err)
	assert.True(t, len(u) > len("data:image/png;base64,"))
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pngHeader), u)

	mt, data, err := DecodeDataURL(u)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mt)
	assert.Equal(t, pngHeader, data)

	require.NoError(t, Check(u))
}

func TestEncodeDataURL_RejectsText(t *testing.T) {
	_, err := EncodeDataURL([]byte("hello world"))
	assert.Error(t, err)
}

func TestEncodeDataURL_RejectsTooLarge(t *testing.T) {
	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, MaxSize)...)
	_, err := EncodeDataURL(big)
	assert.Error(t, err)
}

func TestDecodeDataURL_Errors(t *testing.T) {
	_, _, err := DecodeDataURL("http://x")
	assert.Error(t, err)
	_, _, err = DecodeDataURL("data:image/png;base64")
	assert.Error(t, err)
	_, _, err = DecodeDataURL("data:image/png,abc")
	assert.Error(t, err)
	_, _, err = DecodeDataURL("data:image/png;base64,!!!")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check("https://example.com/cat.png"))
	assert.Error(t, Check("ftp://example.com/cat.png"))
	assert.Error(t, Check("not a url"))
	assert.Error(t, Check("data:text/plain;base64,aGVsbG8="))
}

func TestSelect(t *testing.T) {
	ref, ok := Select([]string{"a", "b"}, true)
	assert.True(t, ok)
	assert.Equal(t, "a", ref)

	_, ok = Select([]string{"a"}, false)
	assert.False(t, ok)

	_, ok = Select(nil, true)
	assert.False(t, ok)
}
