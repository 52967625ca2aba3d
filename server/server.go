package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/hhh7-yy/qingmusic-plugin/config"
	"github.com/hhh7-yy/qingmusic-plugin/core/plugin"
	"github.com/hhh7-yy/qingmusic-plugin/logger"
)

// sourceHolder 持有当前生效的来源管理器
// 镜像列表文件变化时整体换入新构造的管理器，运行中的管理器自身保持只读
type sourceHolder struct {
	mu      sync.RWMutex
	manager *plugin.Manager
}

func (h *sourceHolder) Manager() *plugin.Manager {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.manager
}

func (h *sourceHolder) swap(m *plugin.Manager) {
	h.mu.Lock()
	h.manager = m
	h.mu.Unlock()
}

// buildManager 按配置构造来源管理器
func buildManager(cfg *config.Config) *plugin.Manager {
	m := plugin.NewManager()
	m.Register(plugin.NewPipedSource(cfg.PipedHosts, cfg.HTTPTimeout))
	m.Register(plugin.NewBilibiliSource(cfg.BilibiliAPIURL, cfg.HTTPTimeout))
	return m
}

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogPath)

	holder := &sourceHolder{manager: buildManager(cfg)}

	if cfg.PipedMirrorsFile != "" {
		go watchMirrorsFile(cfg, holder)
	}

	musicHandler := NewMusicHandler(holder)
	relayHandler := NewRelayHandler(30 * time.Second)

	router := mux.NewRouter()
	router.Use(corsMiddleware)
	router.Use(requestIDMiddleware)

	// 四个解析操作
	router.HandleFunc("/api/piped/search", musicHandler.HandlePipedSearch).Methods(http.MethodGet)
	router.HandleFunc("/api/piped/url/{id}", musicHandler.HandlePipedURL).Methods(http.MethodGet)
	router.HandleFunc("/api/bilibili/search", musicHandler.HandleBilibiliSearch).Methods(http.MethodGet)
	router.HandleFunc("/api/bilibili/url/{id}", musicHandler.HandleBilibiliURL).Methods(http.MethodGet)

	// 跨域转发中继
	router.HandleFunc("/api/relay", relayHandler.HandleRelay).Methods(http.MethodGet)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("服务启动", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("服务启动失败", logger.ErrorField(err))
			os.Exit(1)
		}
	}()

	<-stop
	logger.Info("正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("服务关闭超时", logger.ErrorField(err))
	}
	logger.Info("服务已停止")
}

// watchMirrorsFile 监听镜像列表文件变化并换入新的来源管理器
func watchMirrorsFile(cfg *config.Config, holder *sourceHolder) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("创建文件监听失败，镜像列表热更新不可用", logger.ErrorField(err))
		return
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.PipedMirrorsFile); err != nil {
		logger.Warn("监听镜像列表文件失败",
			logger.String("file", cfg.PipedMirrorsFile),
			logger.ErrorField(err))
		return
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			hosts, err := config.LoadMirrorsFile(cfg.PipedMirrorsFile)
			if err != nil || len(hosts) == 0 {
				logger.Warn("镜像列表文件读取失败，保持当前列表", logger.ErrorField(err))
				continue
			}

			next := *cfg
			next.PipedHosts = hosts
			holder.swap(buildManager(&next))
			logger.Info("镜像列表已更新", logger.Int("count", len(hosts)))

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("文件监听错误", logger.ErrorField(err))
		}
	}
}

// corsMiddleware 允许任意来源访问本服务
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Range")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requestIDMiddleware 为每个请求生成标识并记录访问日志
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-Id", reqID)

		start := time.Now()
		next.ServeHTTP(w, r)

		logger.Debug("请求处理完成",
			logger.String("requestId", reqID),
			logger.String("path", r.URL.Path),
			logger.Duration("elapsed", time.Since(start)))
	})
}
