package tlsutil

import (
	"crypto/tls"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTLSConfig(t *testing.T) {
	cfg := DefaultTLSConfig()
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
	require.NotEmpty(t, cfg.CipherSuites)

	aead := map[uint16]bool{
		tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384: true,
		tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384:   true,
		tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256: true,
		tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256:   true,
		tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305:  true,
		tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305:    true,
	}
	for _, cs := range cfg.CipherSuites {
		assert.True(t, aead[cs], "non-AEAD suite %s", tls.CipherSuiteName(cs))
	}
}

func TestDefaultTLSConfig_Independent(t *testing.T) {
	a, b := DefaultTLSConfig(), DefaultTLSConfig()
	a.ServerName = "changed"
	assert.Empty(t, b.ServerName)
}

func TestRedisTLSConfig(t *testing.T) {
	assert.Nil(t, RedisTLSConfig(false, "redis.local"))

	cfg := RedisTLSConfig(true, "redis.local")
	require.NotNil(t, cfg)
	assert.Equal(t, "redis.local", cfg.ServerName)
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
}

func TestSecureTransport(t *testing.T) {
	tr := SecureTransport(4)
	require.NotNil(t, tr.TLSClientConfig)
	assert.Equal(t, uint16(tls.VersionTLS12), tr.TLSClientConfig.MinVersion)
	assert.True(t, tr.ForceAttemptHTTP2)
	assert.Equal(t, 4, tr.MaxIdleConnsPerHost)

	assert.Zero(t, SecureTransport(1).MaxIdleConnsPerHost)
}

func TestSecureHTTPClient(t *testing.T) {
	c := SecureHTTPClient(30*time.Second, 0)
	assert.Equal(t, 30*time.Second, c.Timeout)
	_, ok := c.Transport.(*http.Transport)
	assert.True(t, ok)

	assert.Zero(t, SecureHTTPClient(0, 0).Timeout)
}
