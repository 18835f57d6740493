package generation

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/BaSui01/fluxgen/optimizer"
)

// maxRandomSeed bounds randomly drawn seeds: [0, maxRandomSeed).
const maxRandomSeed = 1_000_000

// SeedSource draws a value in [0, n).
type SeedSource func(n int64) int64

// DeriveSeeds returns one seed per output. An explicit seed is offset by the
// output index; RandomSeed draws independently for each output.
func DeriveSeeds(seed int64, n int, draw SeedSource) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		if seed == RandomSeed {
			seeds[i] = draw(maxRandomSeed)
		} else {
			seeds[i] = seed + int64(i)
		}
	}
	return seeds
}

// callParams 单次上游调用的参数
type callParams struct {
	text      string
	model     string
	width     int
	height    int
	seed      int64
	enhance   bool
	params    optimizer.Params
	reference string
}

// buildURL 构造 GET {endpoint}/image/{text}?...
func buildURL(endpoint string, p callParams) string {
	q := url.Values{}
	q.Set("model", p.model)
	q.Set("width", strconv.Itoa(p.width))
	q.Set("height", strconv.Itoa(p.height))
	q.Set("seed", strconv.FormatInt(p.seed, 10))
	q.Set("nologo", "true")
	q.Set("enhance", strconv.FormatBool(p.enhance))
	q.Set("private", "true")

	if p.params.Guidance != optimizer.DefaultGuidance {
		q.Set("guidance", strconv.FormatFloat(p.params.Guidance, 'f', -1, 64))
	}
	if p.params.Steps != optimizer.DefaultSteps {
		q.Set("steps", strconv.Itoa(p.params.Steps))
	}
	if p.reference != "" {
		q.Set("image", p.reference)
	}

	return strings.TrimRight(endpoint, "/") + "/image/" + url.PathEscape(p.text) + "?" + q.Encode()
}
