package server

import (
	"context"
	"errors"
	"time"

	"github.com/beevik/etree"

	"github.com/charging-platform/ochp-roaming/internal/domain/events"
	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/logger"
	"github.com/charging-platform/ochp-roaming/internal/metrics"
	"github.com/charging-platform/ochp-roaming/internal/soap"
)

// ErrNotSupported 角色未实现某个操作
var ErrNotSupported = errors.New("server: operation not supported")

// Endpoint 一个服务路径上的OCHP操作集合
//
// 服务端事件顺序为 OnSOAPRequest -> OnRequest -> OnResponse -> OnSOAPResponse。
type Endpoint struct {
	*events.Lifecycle

	soap    *soap.Server
	path    string
	factory *events.EventFactory
	log     *logger.Logger
}

// NewEndpoint 在 soapServer 的 path 上创建端点，SOAP层事件转发到端点的生命周期
func NewEndpoint(soapServer *soap.Server, path, source string, log *logger.Logger) *Endpoint {
	lifecycle := events.NewLifecycle()
	soapServer.OnSOAPRequest.Forward(lifecycle.OnSOAPRequest)
	soapServer.OnSOAPResponse.Forward(lifecycle.OnSOAPResponse)

	return &Endpoint{
		Lifecycle: lifecycle,
		soap:      soapServer,
		path:      path,
		factory:   events.NewEventFactory(source, events.RoleServer),
		log:       logger.OrNop(log).With("path", path),
	}
}

// Path 服务路径
func (e *Endpoint) Path() string {
	return e.path
}

// SOAP 底层SOAP服务端
func (e *Endpoint) SOAP() *soap.Server {
	return e.soap
}

// Register 注册一个操作
//
// 请求无法解析时返回 Format 结果而不是SOAP故障；处理器返回 ErrNotSupported 时返回 Server 结果；
// 其他错误转为SOAP服务端故障。
func Register[Req ochp.Request, Resp ochp.Response[Resp]](
	e *Endpoint,
	action ochp.Action,
	parse func(*etree.Element) (Req, error),
	handle func(ctx context.Context, req Req) (Resp, error),
) {
	e.soap.Handle(e.path, action, func(ctx context.Context, r *soap.Request) (*etree.Element, error) {
		start := time.Now()
		log := e.log.With("action", action.String()).With("event_tracking_id", r.EventTrackingID)

		req, err := parse(r.Body)
		if err != nil {
			log.WarnWithErr(err, "failed to parse request")
			resp := ochp.NewResponse[Resp](ochp.Format(err.Error()))
			metrics.ServerRequests.WithLabelValues(string(action), resp.GetResult().Code.String()).Inc()
			return resp.ToXML(), nil
		}

		notify(ctx, log, e.OnRequest, e.factory.CreateRequestEvent(r.EventTrackingID, req, 0))

		resp, err := handle(ctx, req)
		switch {
		case errors.Is(err, ErrNotSupported):
			resp = ochp.NewResponse[Resp](ochp.Server(err.Error()))
		case err != nil:
			metrics.ServerRequests.WithLabelValues(string(action), "fault").Inc()
			return nil, err
		}

		result := resp.GetResult()
		metrics.ServerRequests.WithLabelValues(string(action), result.Code.String()).Inc()
		notify(ctx, log, e.OnResponse, e.factory.CreateResponseEvent(r.EventTrackingID, req, resp, result, false, time.Since(start)))

		return resp.ToXML(), nil
	})
}

func notify[E any](ctx context.Context, log *logger.Logger, observers *events.Observers[E], event E) {
	if err := observers.Notify(ctx, event); err != nil {
		log.WarnWithErr(err, "ochp observer failed")
	}
}
