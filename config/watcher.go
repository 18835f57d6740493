// 配置文件变更监听。
//
// 轮询文件修改时间，防抖后重新加载配置并回调订阅者。
// 只有日志级别这类无需重建组件的字段适合热更新。
package config

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// --- 监听器类型定义 ---

// ReloadFunc 接收重载前后的配置
type ReloadFunc func(old, updated *Config)

// Watcher 监听配置文件并在变更时重新加载
type Watcher struct {
	mu sync.Mutex

	loader   *Loader
	current  *Config
	interval time.Duration
	debounce time.Duration

	callbacks []ReloadFunc
	lastMod   time.Time
	running   bool
	stopCh    chan struct{}

	logger *zap.Logger
}

// WatcherOption 配置 Watcher
type WatcherOption func(*Watcher)

// WithPollInterval 设置轮询间隔
func WithPollInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithDebounceDelay 设置防抖延迟
func WithDebounceDelay(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithWatcherLogger 设置日志
func WithWatcherLogger(logger *zap.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// --- 监听器实现 ---

// NewWatcher 创建监听器。current 是已加载的配置，loader 需设置配置文件路径。
func NewWatcher(loader *Loader, current *Config, opts ...WatcherOption) (*Watcher, error) {
	if loader == nil || loader.configPath == "" {
		return nil, errors.New("watcher requires a loader with a config path")
	}
	w := &Watcher{
		loader:   loader,
		current:  current,
		interval: time.Second,
		debounce: 100 * time.Millisecond,
		stopCh:   make(chan struct{}),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With(zap.String("component", "config_watcher"))
	return w, nil
}

// OnReload 注册重载回调
func (w *Watcher) OnReload(fn ReloadFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

// Current 返回当前生效的配置
func (w *Watcher) Current() *Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Start 开始轮询，直到 ctx 结束或调用 Stop
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}
	w.running = true
	if info, err := os.Stat(w.loader.configPath); err == nil {
		w.lastMod = info.ModTime()
	}
	w.mu.Unlock()

	go w.pollLoop(ctx)

	w.logger.Info("config watcher started",
		zap.String("path", w.loader.configPath),
		zap.Duration("interval", w.interval))
	return nil
}

// Stop 停止轮询，可重复调用
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	close(w.stopCh)
	w.running = false
}

func (w *Watcher) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			if w.changed() {
				pending = time.After(w.debounce)
			}
		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

// changed 比较文件修改时间；文件被删除时保持当前配置
func (w *Watcher) changed() bool {
	info, err := os.Stat(w.loader.configPath)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !info.ModTime().After(w.lastMod) {
		return false
	}
	w.lastMod = info.ModTime()
	return true
}

func (w *Watcher) reload() {
	updated, err := w.loader.Load()
	if err != nil {
		w.logger.Warn("config reload failed, keeping current config", zap.Error(err))
		return
	}

	w.mu.Lock()
	old := w.current
	w.current = updated
	callbacks := make([]ReloadFunc, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	w.logger.Info("config reloaded", zap.String("path", w.loader.configPath))
	for _, fn := range callbacks {
		fn(old, updated)
	}
}
