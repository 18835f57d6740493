package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/BaSui01/fluxgen/api/handlers"
	"github.com/BaSui01/fluxgen/internal/server"
)

// =============================================================================
// 🌐 路由
// =============================================================================

// publicPaths 不需要 API Key
var publicPaths = []string{"/health", "/healthz", "/version"}

// newRouter 注册全部 API 路由并套上中间件链
func newRouter(ctx context.Context, app *App, logger *zap.Logger) http.Handler {
	cfg := app.cfg.Server

	health := handlers.NewHealthHandler(Version, logger)
	for _, c := range app.HealthChecks() {
		health.RegisterCheck(c)
	}
	generate := handlers.NewGenerateHandler(app.pipeline, app.cfg.Translation.Enabled, cfg.MaxBodyBytes, logger)
	hist := handlers.NewHistoryHandler(app.history, app.metrics, cfg.MaxBodyBytes, logger)
	cat := handlers.NewCatalogHandler(logger)
	img := handlers.NewMediaHandler(app.media, logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.HandleHealth)
	mux.HandleFunc("GET /healthz", health.HandleHealthz)
	mux.HandleFunc("GET /version", health.HandleVersion(BuildTime, GitCommit))

	mux.HandleFunc("POST /api/v1/generate", generate.HandleGenerate)

	mux.HandleFunc("GET /api/v1/history", hist.HandleList)
	mux.HandleFunc("DELETE /api/v1/history", hist.HandleClear)
	mux.HandleFunc("DELETE /api/v1/history/{id}", hist.HandleDelete)
	mux.HandleFunc("GET /api/v1/history/export", hist.HandleExport)
	mux.HandleFunc("POST /api/v1/history/import", hist.HandleImport)
	mux.HandleFunc("GET /api/v1/history/stats", hist.HandleStats)

	mux.HandleFunc("GET /api/v1/catalog/styles", cat.HandleStyles)
	mux.HandleFunc("GET /api/v1/catalog/models", cat.HandleModels)
	mux.HandleFunc("GET /api/v1/catalog/sizes", cat.HandleSizes)
	mux.HandleFunc("GET /api/v1/catalog/quality-modes", cat.HandleQualityModes)

	mux.HandleFunc("GET /api/v1/media/{id}", img.HandleGet)

	return Chain(mux,
		Recovery(logger),
		RequestID(),
		OTelTracing(),
		SecurityHeaders(),
		RequestLogger(logger),
		MetricsMiddleware(app.metrics),
		CORS(cfg.CORSAllowedOrigins),
		RateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst, logger),
		APIKeyAuth(cfg.APIKeys, publicPaths, logger),
	)
}

// newMetricsHandler 暴露 App 私有注册表中的指标
func newMetricsHandler(app *App) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{Registry: app.registry}))
	return mux
}

// =============================================================================
// 🖥️ 服务器组装
// =============================================================================

// buildServers 返回 API 服务器，以及端口非 0 时独立的 metrics 服务器。
// MetricsPort 为 0 时 /metrics 挂在 API 端口上。
func buildServers(ctx context.Context, app *App, logger *zap.Logger) []*server.Manager {
	cfg := app.cfg.Server
	api := newRouter(ctx, app, logger)

	if cfg.MetricsPort == 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", newMetricsHandler(app))
		mux.Handle("/", api)
		api = mux
	}

	managers := []*server.Manager{
		server.NewManager(api, server.Config{
			Name:              "api",
			Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       2 * cfg.ReadTimeout,
			MaxHeaderBytes:    1 << 20,
			ShutdownTimeout:   cfg.ShutdownTimeout,
		}, logger),
	}

	if cfg.MetricsPort != 0 {
		managers = append(managers, server.NewManager(newMetricsHandler(app), server.Config{
			Name:              "metrics",
			Addr:              fmt.Sprintf(":%d", cfg.MetricsPort),
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      cfg.ReadTimeout,
			ShutdownTimeout:   cfg.ShutdownTimeout,
		}, logger))
	}
	return managers
}
