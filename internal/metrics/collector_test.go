package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCollector(t *testing.T) (*Collector, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewCollectorWith(reg, "fluxgen_test", zap.NewNop()), reg
}

// =============================================================================
// 🧪 Collector 测试
// =============================================================================

func TestCollector_RecordHTTPRequest(t *testing.T) {
	c, _ := newTestCollector(t)
	c.RecordHTTPRequest("GET", "/api/v1/history", 200, 100*time.Millisecond, 2048)
	c.RecordHTTPRequest("GET", "/api/v1/history", 204, 50*time.Millisecond, 0)
	c.RecordHTTPRequest("POST", "/api/v1/generate", 502, time.Second, 128)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("GET", "/api/v1/history", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("POST", "/api/v1/generate", "5xx")))
}

func TestCollector_RecordGeneration(t *testing.T) {
	c, reg := newTestCollector(t)
	c.RecordGeneration("turbo", "economy", "success", 3*time.Second)
	c.RecordImage("turbo", "anime", 7)
	c.RecordImage("turbo", "anime", 7)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.generationsTotal.WithLabelValues("turbo", "economy", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.imagesTotal.WithLabelValues("turbo", "anime")))

	expected := `
# HELP fluxgen_test_images_generated_total Total number of images returned to callers
# TYPE fluxgen_test_images_generated_total counter
fluxgen_test_images_generated_total{model="turbo",style="anime"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "fluxgen_test_images_generated_total"))
}

func TestCollector_RecordTranslationAndHistory(t *testing.T) {
	c, _ := newTestCollector(t)
	c.RecordTranslation("local")
	c.RecordHistoryOp("add", nil)
	c.RecordHistoryOp("clear", errors.New("disk"))
	c.SetHistoryItems(42)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.translationsTotal.WithLabelValues("local")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.historyOpsTotal.WithLabelValues("add", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.historyOpsTotal.WithLabelValues("clear", "error")))
	assert.Equal(t, 42.0, testutil.ToFloat64(c.historyItems))
}

func TestCollector_CacheAndDB(t *testing.T) {
	c, _ := newTestCollector(t)
	c.RecordCacheHit("translation")
	c.RecordCacheMiss("translation")
	c.RecordCacheMiss("translation")
	c.RecordDBConnections("history", 3, 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.cacheHits.WithLabelValues("translation")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.cacheMisses.WithLabelValues("translation")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.dbConnectionsOpen.WithLabelValues("history")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.dbConnectionsIdle.WithLabelValues("history")))
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.RecordHTTPRequest("GET", "/", 200, time.Millisecond, 0)
		c.RecordGeneration("flux", "standard", "error", time.Second)
		c.RecordImage("flux", "none", 20)
		c.RecordTranslation("remote")
		c.RecordHistoryOp("add", nil)
		c.SetHistoryItems(1)
		c.RecordCacheHit("x")
		c.RecordCacheMiss("x")
		c.RecordDBConnections("x", 1, 1)
	})
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, "2xx"}, {201, "2xx"}, {301, "3xx"}, {404, "4xx"}, {429, "4xx"}, {500, "5xx"}, {504, "5xx"}, {100, "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusCode(tt.code))
	}
}

func TestNewCollector_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollectorWith(reg, "dup", nil)
	assert.Panics(t, func() { NewCollectorWith(reg, "dup", nil) })
}
