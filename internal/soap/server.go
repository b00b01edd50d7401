package soap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/beevik/etree"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/charging-platform/ochp-roaming/internal/domain/events"
	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/logger"
)

// EventTrackingIDHeader 调用方可通过该头传递跨系统的事件跟踪ID
const EventTrackingIDHeader = "X-Event-Tracking-Id"

// Request 服务端收到的SOAP请求
type Request struct {
	Action          string
	Body            *etree.Element
	EventTrackingID string
	RemoteAddr      string
}

// Handler 处理一个SOAP操作，返回应答元素；返回 *Fault 时原样输出，其他错误转换为服务端故障
type Handler func(ctx context.Context, req *Request) (*etree.Element, error)

// ServerConfig SOAP服务端配置
type ServerConfig struct {
	Source       string
	MaxBodyBytes int64
}

// DefaultServerConfig 默认服务端配置
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Source:       "ochp-server",
		MaxBodyBytes: 10 << 20,
	}
}

// Server 按 SOAPAction 路由的SOAP服务端
type Server struct {
	config  *ServerConfig
	log     *logger.Logger
	factory *events.EventFactory

	mu       sync.RWMutex
	handlers map[string]map[string]Handler // path -> action -> handler

	OnSOAPRequest  *events.Observers[*events.SOAPRequestEvent]
	OnSOAPResponse *events.Observers[*events.SOAPResponseEvent]
}

// NewServer 创建服务端
func NewServer(config *ServerConfig, log *logger.Logger) *Server {
	if config == nil {
		config = DefaultServerConfig()
	}
	return &Server{
		config:         config,
		log:            logger.OrNop(log).With("component", "soap_server"),
		factory:        events.NewEventFactory(config.Source, events.RoleServer),
		handlers:       make(map[string]map[string]Handler),
		OnSOAPRequest:  events.NewObservers[*events.SOAPRequestEvent](),
		OnSOAPResponse: events.NewObservers[*events.SOAPResponseEvent](),
	}
}

// Source 写入事件元数据的来源名称
func (s *Server) Source() string {
	return s.config.Source
}

// Handle 在 path 上注册 action 的处理器
func (s *Server) Handle(path string, action ochp.Action, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actions, ok := s.handlers[path]
	if !ok {
		actions = make(map[string]Handler)
		s.handlers[path] = actions
	}
	actions[string(action)] = h
}

// Actions 返回 path 上已注册的操作数量
func (s *Server) Actions(path string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.handlers[path])
}

// Mount 将已注册的路径挂到 chi 路由上；挂载后新增的路径需要再次调用
func (s *Server) Mount(r chi.Router) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for path := range s.handlers {
		r.Post(path, s.endpoint(path))
	}
}

// Routes 创建包含所有SOAP端点和健康检查的路由
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	s.Mount(r)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}

func (s *Server) endpoint(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.serve(path, w, r)
	}
}

func (s *Server) serve(path string, w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	trackingID := r.Header.Get(EventTrackingIDHeader)
	if trackingID == "" {
		trackingID = uuid.NewString()
	}
	action := SOAPActionFromHeader(r.Header.Get("SOAPAction"))

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		s.writeFault(ctx, w, ochp.Action(action), trackingID, start, ClientFault("failed to read request: %v", err))
		return
	}

	notify(ctx, s.log, s.OnSOAPRequest, s.factory.CreateSOAPRequestEvent(trackingID, ochp.Action(action), r.URL.Path, string(raw)))

	envelope, err := Unmarshal(raw)
	if err != nil {
		s.writeFault(ctx, w, ochp.Action(action), trackingID, start, ClientFault("%v", err))
		return
	}
	if envelope.IsFault() {
		s.writeFault(ctx, w, ochp.Action(action), trackingID, start, ClientFault("request must not be a fault"))
		return
	}
	if action == "" {
		action = envelope.Body.Tag
	}

	handler := s.lookup(path, action)
	if handler == nil {
		s.writeFault(ctx, w, ochp.Action(action), trackingID, start, ClientFault("unknown SOAPAction %q", action))
		return
	}

	response, err := s.invoke(ctx, handler, &Request{
		Action:          action,
		Body:            envelope.Body,
		EventTrackingID: trackingID,
		RemoteAddr:      r.RemoteAddr,
	})
	if err != nil {
		var fault *Fault
		if !errors.As(err, &fault) {
			s.log.WarnWithErr(err, "soap handler failed")
			fault = ServerFault("%v", err)
		}
		s.writeFault(ctx, w, ochp.Action(action), trackingID, start, fault)
		return
	}

	data, err := Marshal(response)
	if err != nil {
		s.writeFault(ctx, w, ochp.Action(action), trackingID, start, ServerFault("failed to serialize response: %v", err))
		return
	}
	s.write(ctx, w, ochp.Action(action), trackingID, start, http.StatusOK, data)
}

func (s *Server) lookup(path, action string) Handler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handlers[path][action]
}

func (s *Server) invoke(ctx context.Context, h Handler, req *Request) (el *etree.Element, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	el, err = h(ctx, req)
	if err == nil && el == nil {
		err = errors.New("handler returned no response")
	}
	return el, err
}

func (s *Server) writeFault(ctx context.Context, w http.ResponseWriter, action ochp.Action, trackingID string, start time.Time, fault *Fault) {
	data, err := MarshalFault(fault)
	if err != nil {
		http.Error(w, fault.Error(), http.StatusInternalServerError)
		return
	}
	s.write(ctx, w, action, trackingID, start, http.StatusInternalServerError, data)
}

func (s *Server) write(ctx context.Context, w http.ResponseWriter, action ochp.Action, trackingID string, start time.Time, status int, data []byte) {
	notify(ctx, s.log, s.OnSOAPResponse, s.factory.CreateSOAPResponseEvent(trackingID, action, status, string(data), time.Since(start), nil))

	w.Header().Set("Content-Type", ContentType)
	w.Header().Set(EventTrackingIDHeader, trackingID)
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.log.WarnWithErr(err, "failed to write soap response")
	}
}

func notify[E any](ctx context.Context, log *logger.Logger, observers *events.Observers[E], event E) {
	if err := observers.Notify(ctx, event); err != nil {
		log.WarnWithErr(err, "soap observer failed")
	}
}
