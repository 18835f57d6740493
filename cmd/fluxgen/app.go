package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/BaSui01/fluxgen/api/handlers"
	"github.com/BaSui01/fluxgen/config"
	"github.com/BaSui01/fluxgen/generation"
	"github.com/BaSui01/fluxgen/history"
	"github.com/BaSui01/fluxgen/internal/cache"
	"github.com/BaSui01/fluxgen/internal/database"
	"github.com/BaSui01/fluxgen/internal/metrics"
	"github.com/BaSui01/fluxgen/internal/migration"
	"github.com/BaSui01/fluxgen/media"
	"github.com/BaSui01/fluxgen/pipeline"
	"github.com/BaSui01/fluxgen/translate"
)

// =============================================================================
// 🧩 组件装配
// =============================================================================

// App 持有按配置装配好的全部组件，serve 与 CLI 子命令共用
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	registry *prometheus.Registry
	metrics  *metrics.Collector

	cache *cache.Manager
	pool  *database.PoolManager
	mongo *mongo.Client

	media      media.Store
	history    *history.Store
	translator *translate.Translator
	client     *generation.Client
	pipeline   *pipeline.Service

	closers []func(context.Context) error
}

// NewApp 按 cfg 连接外部依赖并构建流水线。失败时已打开的连接会被关闭。
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (app *App, err error) {
	app = &App{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	defer func() {
		if err != nil {
			app.Close(context.Background())
			app = nil
		}
	}()

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.NewCollectorWith(app.registry, "fluxgen", logger)

	if err := app.connect(ctx); err != nil {
		return nil, err
	}

	app.media, err = newMediaStore(cfg.Media)
	if err != nil {
		return nil, err
	}

	slot, err := history.NewSlot(ctx, cfg.History, history.Backends{
		Cache: app.cache,
		DB:    app.pool,
		Mongo: app.mongoDatabase(),
	})
	if err != nil {
		return nil, fmt.Errorf("history slot: %w", err)
	}
	app.history = history.NewStore(slot, logger,
		history.WithCapacity(cfg.History.Capacity),
		history.WithRemoveHook(releaseMedia(app.media, logger)),
	)

	var trOpts []translate.Option
	if cfg.Translation.UseCache && app.cache != nil {
		trOpts = append(trOpts, translate.WithCache(meteredCache{
			Cache:   translate.NewRedisCache(app.cache, cfg.Translation.CacheTTL),
			metrics: app.metrics,
		}))
	}
	app.translator = translate.New(cfg.Translation.Config, logger, trOpts...)

	app.client = generation.NewClient(cfg.Provider, app.media, logger)
	app.pipeline = pipeline.NewService(app.client, logger,
		pipeline.WithTranslator(app.translator),
		pipeline.WithHistory(app.history),
		pipeline.WithMetrics(app.metrics),
	)

	logger.Info("components ready",
		zap.String("history", string(cfg.History.Type)),
		zap.String("media", cfg.Media.Type),
		zap.Bool("remote_translation", app.translator.RemoteEnabled()),
		zap.Bool("redis", app.cache != nil),
	)
	return app, nil
}

// connect 只打开配置实际需要的连接
func (a *App) connect(ctx context.Context) error {
	cfg := a.cfg

	if cfg.Redis.Enabled {
		mgr, err := cache.NewManager(cfg.Redis.Config, a.logger)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		a.cache = mgr
		a.closers = append(a.closers, func(context.Context) error { return mgr.Close() })
	}

	if cfg.History.Type == history.StoreDatabase {
		if cfg.Database.AutoMigrate {
			if err := runMigrations(ctx, cfg, a.logger); err != nil {
				return err
			}
		}
		pool, err := database.Open(cfg.Database.Driver, cfg.Database.DSN(), cfg.Database.PoolConfig, a.logger)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		a.pool = pool
		a.closers = append(a.closers, func(context.Context) error { return pool.Close() })
	}

	if cfg.History.Type == history.StoreMongo {
		client, err := history.ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.ConnectTimeout)
		if err != nil {
			return fmt.Errorf("mongo: %w", err)
		}
		a.mongo = client
		a.closers = append(a.closers, client.Disconnect)
	}
	return nil
}

// runMigrations 把历史记录表升级到最新版本
func runMigrations(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	m, err := migration.NewMigratorFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("migration: %w", err)
	}
	defer func() {
		if err := m.Close(); err != nil {
			logger.Warn("close migrator failed", zap.Error(err))
		}
	}()
	if err := m.Up(ctx); err != nil {
		return err
	}
	version, _, err := m.Version(ctx)
	if err != nil {
		return err
	}
	logger.Info("history schema ready", zap.Uint("version", version))
	return nil
}

func (a *App) mongoDatabase() *mongo.Database {
	if a.mongo == nil {
		return nil
	}
	return a.mongo.Database(a.cfg.Mongo.Database)
}

func newMediaStore(cfg config.MediaConfig) (media.Store, error) {
	switch cfg.Type {
	case "file":
		s, err := media.NewFileStore(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("media store: %w", err)
		}
		return s, nil
	default:
		return media.NewMemoryStore(), nil
	}
}

// HealthChecks 返回已连接依赖的健康检查
func (a *App) HealthChecks() []handlers.HealthCheck {
	var checks []handlers.HealthCheck
	if a.cache != nil {
		checks = append(checks, handlers.NewPingCheck("redis", a.cache.Ping))
	}
	if a.pool != nil {
		checks = append(checks, handlers.NewPingCheck("database", a.pool.Ping))
	}
	if a.mongo != nil {
		checks = append(checks, handlers.NewPingCheck("mongo", func(ctx context.Context) error {
			return a.mongo.Ping(ctx, nil)
		}))
	}
	return checks
}

// ReportPoolStats 定期把数据库连接池状态写入指标，直到 ctx 结束
func (a *App) ReportPoolStats(ctx context.Context, interval time.Duration) {
	if a.pool == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := a.pool.GetStats()
			a.metrics.RecordDBConnections(a.cfg.Database.Driver, stats.OpenConnections, stats.Idle)
		}
	}
}

// Close 按打开的逆序关闭连接
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
	a.closers = nil
}

// releaseMedia 释放离开历史记录的图像句柄
func releaseMedia(store media.Store, logger *zap.Logger) history.RemoveFunc {
	return func(ctx context.Context, removed []history.Item) {
		handles := make([]string, 0, len(removed))
		for _, it := range removed {
			handles = append(handles, it.URL)
		}
		if err := media.ReleaseAll(ctx, store, handles); err != nil {
			logger.Warn("release media failed", zap.Int("handles", len(handles)), zap.Error(err))
		}
	}
}

// meteredCache 为翻译缓存记录命中率
type meteredCache struct {
	translate.Cache
	metrics *metrics.Collector
}

func (c meteredCache) Get(ctx context.Context, text string) (string, bool) {
	v, ok := c.Cache.Get(ctx, text)
	if ok {
		c.metrics.RecordCacheHit("translation")
	} else {
		c.metrics.RecordCacheMiss("translation")
	}
	return v, ok
}
