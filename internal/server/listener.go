package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charging-platform/ochp-roaming/internal/logger"
)

// ListenerConfig HTTP监听配置
type ListenerConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"` // 0 表示随机端口
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	IdleTimeout     time.Duration `json:"idle_timeout"`
	MaxHeaderBytes  int           `json:"max_header_bytes"`
	KeepAlivePeriod time.Duration `json:"keep_alive_period"`
}

// DefaultListenerConfig 默认监听配置
func DefaultListenerConfig() *ListenerConfig {
	return &ListenerConfig{
		Host:            "0.0.0.0",
		Port:            8080,
		ReadTimeout:     60 * time.Second,
		WriteTimeout:    60 * time.Second,
		IdleTimeout:     120 * time.Second,
		MaxHeaderBytes:  1 << 20, // 1MB
		KeepAlivePeriod: 30 * time.Second,
	}
}

// Listener 承载SOAP路由的HTTP服务
type Listener struct {
	config *ListenerConfig
	server *http.Server
	log    *logger.Logger

	mu       sync.RWMutex
	listener net.Listener
}

// NewListener 创建HTTP服务
func NewListener(config *ListenerConfig, handler http.Handler, log *logger.Logger) *Listener {
	if config == nil {
		config = DefaultListenerConfig()
	}
	return &Listener{
		config: config,
		server: &http.Server{
			Handler:        handler,
			ReadTimeout:    config.ReadTimeout,
			WriteTimeout:   config.WriteTimeout,
			IdleTimeout:    config.IdleTimeout,
			MaxHeaderBytes: config.MaxHeaderBytes,
		},
		log: logger.OrNop(log).With("component", "listener"),
	}
}

// Listen 绑定端口，之后可通过 Addr 获取实际地址
func (l *Listener) Listen() error {
	lc := net.ListenConfig{KeepAlive: l.config.KeepAlivePeriod}
	addr := net.JoinHostPort(l.config.Host, strconv.Itoa(l.config.Port))
	ln, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.listener = ln
	l.mu.Unlock()
	l.log.Infof("listening on %s", ln.Addr())
	return nil
}

// Serve 阻塞处理请求直到 Stop；未调用 Listen 时先绑定端口
func (l *Listener) Serve() error {
	l.mu.RLock()
	ln := l.listener
	l.mu.RUnlock()

	if ln == nil {
		if err := l.Listen(); err != nil {
			return err
		}
		l.mu.RLock()
		ln = l.listener
		l.mu.RUnlock()
	}

	if err := l.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 优雅关闭，超时后强制关闭
func (l *Listener) Stop(ctx context.Context) error {
	l.log.Info("stopping listener")
	if err := l.server.Shutdown(ctx); err != nil {
		l.log.Errorf("error during shutdown: %v", err)
		return l.server.Close()
	}
	return nil
}

// Addr 实际监听地址，未监听时为 nil
func (l *Listener) Addr() net.Addr {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.listener == nil {
		return nil
	}
	return l.listener.Addr()
}

// URL 以 http:// 开头的服务地址，path 追加在末尾
func (l *Listener) URL(path string) string {
	addr := l.Addr()
	if addr == nil {
		return ""
	}
	return "http://" + addr.String() + path
}
