package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/fluxgen/history"
)

func TestDefaultConfig_ContainsAllSubConfigs(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)

	assert.NotEqual(t, ServerConfig{}, cfg.Server)
	assert.NotEmpty(t, cfg.Provider.Endpoint)
	assert.NotEqual(t, MediaConfig{}, cfg.Media)
	assert.NotEqual(t, MongoConfig{}, cfg.Mongo)
	assert.NotEqual(t, TelemetryConfig{}, cfg.Telemetry)
	assert.NotEmpty(t, cfg.Log.OutputPaths)
}

func TestDefaultServerConfig(t *testing.T) {
	cfg := DefaultServerConfig()
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 9091, cfg.MetricsPort)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
	assert.Greater(t, cfg.WriteTimeout, DefaultConfig().Provider.Timeout, "write timeout outlives a generation")
	assert.Equal(t, int64(32<<20), cfg.MaxBodyBytes)
}

func TestDefaultProviderConfig(t *testing.T) {
	cfg := DefaultConfig().Provider
	assert.Equal(t, 120*time.Second, cfg.Timeout)
	assert.Equal(t, "https://pollinations.ai/", cfg.Referer)
	assert.Equal(t, 1, cfg.Concurrency)
	assert.Equal(t, 4, cfg.MaxOutputs)
	assert.Empty(t, cfg.APIKey)
}

func TestDefaultTranslationConfig(t *testing.T) {
	cfg := DefaultTranslationConfig()
	assert.True(t, cfg.Enabled)
	assert.False(t, cfg.UseCache)
	assert.False(t, cfg.Config.Enabled(), "remote endpoint needs credentials")
}

func TestDefaultHistoryConfig(t *testing.T) {
	cfg := DefaultConfig().History
	assert.Equal(t, history.StoreFile, cfg.Type)
	assert.Equal(t, history.DefaultKey, cfg.Key)
	assert.Equal(t, history.MaxHistory, cfg.Capacity)
}

func TestDefaultRedisConfig(t *testing.T) {
	cfg := DefaultRedisConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Addr)
	assert.Equal(t, "fluxgen:", cfg.KeyPrefix)
}

func TestDefaultDatabaseConfig(t *testing.T) {
	cfg := DefaultDatabaseConfig()
	assert.Equal(t, "sqlite", cfg.Driver)
	assert.True(t, cfg.AutoMigrate)
	assert.NoError(t, cfg.PoolConfig.Validate())
}

func TestDefaultLogConfig(t *testing.T) {
	cfg := DefaultLogConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, []string{"stdout"}, cfg.OutputPaths)
	assert.True(t, cfg.EnableCaller)
}

func TestDefaultTelemetryConfig(t *testing.T) {
	cfg := DefaultTelemetryConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "fluxgen", cfg.ServiceName)
	assert.InDelta(t, 0.1, cfg.SampleRate, 1e-9)
	assert.True(t, cfg.Insecure, "local collector speaks plaintext gRPC")
}
