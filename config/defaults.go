// =============================================================================
// 📦 fluxgen 默认配置
// =============================================================================
package config

import (
	"path/filepath"
	"time"

	"github.com/BaSui01/fluxgen/generation"
	"github.com/BaSui01/fluxgen/history"
	"github.com/BaSui01/fluxgen/internal/cache"
	"github.com/BaSui01/fluxgen/internal/database"
	"github.com/BaSui01/fluxgen/translate"
)

// DefaultConfig 返回默认配置：文件历史、内存图像、无外部依赖
func DefaultConfig() *Config {
	return &Config{
		Server:      DefaultServerConfig(),
		Provider:    generation.DefaultConfig(),
		Translation: DefaultTranslationConfig(),
		History:     history.DefaultConfig(),
		Media:       DefaultMediaConfig(),
		Redis:       DefaultRedisConfig(),
		Database:    DefaultDatabaseConfig(),
		Mongo:       DefaultMongoConfig(),
		Log:         DefaultLogConfig(),
		Telemetry:   DefaultTelemetryConfig(),
	}
}

// DefaultServerConfig 返回默认服务器配置
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		HTTPPort:        8080,
		MetricsPort:     9091,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    10 * time.Minute,
		ShutdownTimeout: 15 * time.Second,
		RateLimitRPS:    5,
		RateLimitBurst:  10,
		MaxBodyBytes:    32 << 20,
	}
}

// DefaultTranslationConfig 默认开启翻译，远程端点未配置时只用本地词表
func DefaultTranslationConfig() TranslationConfig {
	return TranslationConfig{
		Enabled: true,
		Config:  translate.DefaultConfig(),
	}
}

// DefaultMediaConfig 返回默认图像存储配置
func DefaultMediaConfig() MediaConfig {
	return MediaConfig{
		Type: "memory",
		Dir:  filepath.Join("data", "media"),
	}
}

// DefaultRedisConfig 返回默认 Redis 配置（默认关闭）
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Enabled: false,
		Config:  cache.DefaultConfig(),
	}
}

// DefaultDatabaseConfig 返回默认数据库配置
func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Driver:      database.DriverSQLite,
		Host:        "localhost",
		Port:        5432,
		User:        "fluxgen",
		Name:        filepath.Join("data", "fluxgen.db"),
		SSLMode:     "disable",
		AutoMigrate: true,
		PoolConfig:  database.DefaultPoolConfig(),
	}
}

// DefaultMongoConfig 返回默认 MongoDB 配置
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		Database:       "fluxgen",
		ConnectTimeout: 10 * time.Second,
	}
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:            "info",
		Format:           "json",
		OutputPaths:      []string{"stdout"},
		EnableCaller:     true,
		EnableStacktrace: false,
	}
}

// DefaultTelemetryConfig 返回默认遥测配置
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:      false,
		OTLPEndpoint: "localhost:4317",
		ServiceName:  "fluxgen",
		SampleRate:   0.1,
		Insecure:     true,
	}
}
