// Package refimage validates reference images for image-to-image models and
// encodes them as data URLs the provider accepts in its image parameter.
package refimage

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/BaSui01/fluxgen/types"
)

// MaxSize is the largest accepted reference image.
const MaxSize = 10 * 1024 * 1024

// AllowedTypes 允许的参考图 MIME 类型
var AllowedTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

func allowed(mimeType string) bool {
	for _, t := range AllowedTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}

// Validate checks the declared type and size of an upload.
func Validate(mimeType string, size int64) error {
	if !allowed(strings.ToLower(mimeType)) {
		return types.NewValidationError("僅支持 JPG, PNG, WebP, GIF 格式")
	}
	if size > MaxSize {
		return types.NewValidationError("圖片大小不能超過 10MB")
	}
	if size <= 0 {
		return types.NewValidationError("圖片內容為空")
	}
	return nil
}

// Sniff detects the MIME type from content.
func Sniff(data []byte) string {
	mt := http.DetectContentType(data)
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return mt
}

// EncodeDataURL validates data by its sniffed type and returns a base64 data URL.
func EncodeDataURL(data []byte) (string, error) {
	mt := Sniff(data)
	if err := Validate(mt, int64(len(data))); err != nil {
		return "", err
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeDataURL parses a base64 data URL into its MIME type and bytes.
func DecodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data url")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data url")
	}
	mt, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("data url must be base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data url: %w", err)
	}
	return mt, data, nil
}

// Check validates a reference as the provider will receive it: an http(s)
// URL is passed through, a data URL is decoded and validated.
func Check(ref string) error {
	if strings.HasPrefix(ref, "data:") {
		mt, data, err := DecodeDataURL(ref)
		if err != nil {
			return types.NewValidationError("invalid reference image").WithCause(err)
		}
		return Validate(mt, int64(len(data)))
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return types.NewValidationError("reference image must be an http(s) URL or a data URL")
	}
	return nil
}

// Select returns the reference to send for a model: the first one, and only
// when the model accepts references. Extra references are ignored.
func Select(refs []string, supportsReferences bool) (string, bool) {
	if !supportsReferences || len(refs) == 0 || refs[0] == "" {
		return "", false
	}
	return refs[0], true
}
