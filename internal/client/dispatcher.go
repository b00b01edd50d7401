package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"github.com/charging-platform/ochp-roaming/internal/domain/events"
	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/logger"
	"github.com/charging-platform/ochp-roaming/internal/metrics"
	"github.com/charging-platform/ochp-roaming/internal/soap"
)

// ErrMissingTimeout 调用既未指定超时，客户端也没有默认超时
var ErrMissingTimeout = errors.New("client: no timeout configured")

// Config 客户端配置
type Config struct {
	// URL 对端服务地址，例如 https://clearing.example.com/service/ochp/v1.4
	URL            string
	DefaultTimeout time.Duration
	UserAgent      string
	MaxIdleConns   int
	// Source 写入事件元数据的来源名称
	Source     string
	HTTPClient *http.Client
}

// DefaultConfig 默认客户端配置
func DefaultConfig(url string) *Config {
	return &Config{
		URL:            url,
		DefaultTimeout: 60 * time.Second,
		UserAgent:      "ochp-roaming",
		MaxIdleConns:   16,
		Source:         "ochp-client",
	}
}

// Response 传输层包装的协议应答
//
// Content.GetResult() 是对端给出的协议结论；IsFault 表示通道本身失败
// (SOAP故障、HTTP错误或异常)，这两个维度相互独立。
type Response[T ochp.Response[T]] struct {
	Content         T
	Request         ochp.Request
	HTTPStatus      int
	IsFault         bool
	Exception       error
	Runtime         time.Duration
	EventTrackingID string
	// Local 应答由本地合成，没有发生网络调用
	Local bool
}

// Result 协议结果
func (r *Response[T]) Result() ochp.Result {
	return r.Content.GetResult()
}

// IsSuccess 通道正常且协议结果为 OK 或 Partly
func (r *Response[T]) IsSuccess() bool {
	return !r.IsFault && r.Result().IsSuccess()
}

type callOptions struct {
	timeout         time.Duration
	eventTrackingID string
}

// CallOption 单次调用选项
type CallOption func(*callOptions)

// WithTimeout 覆盖客户端默认超时
func WithTimeout(timeout time.Duration) CallOption {
	return func(o *callOptions) {
		o.timeout = timeout
	}
}

// WithEventTrackingID 指定事件跟踪ID，未指定时自动生成
func WithEventTrackingID(id string) CallOption {
	return func(o *callOptions) {
		o.eventTrackingID = id
	}
}

// dispatcher 各角色客户端共享的调用流程
type dispatcher struct {
	*events.Lifecycle

	config  *Config
	soap    *soap.Client
	log     *logger.Logger
	factory *events.EventFactory
}

func newDispatcher(config *Config, log *logger.Logger, component string) (*dispatcher, error) {
	if config == nil {
		return nil, errors.New("client: config must not be nil")
	}

	soapClient, err := soap.NewClient(&soap.ClientConfig{
		URL:              config.URL,
		UserAgent:        config.UserAgent,
		MaxIdleConns:     config.MaxIdleConns,
		MaxResponseBytes: 10 << 20,
		HTTPClient:       config.HTTPClient,
	})
	if err != nil {
		return nil, err
	}

	source := config.Source
	if source == "" {
		source = component
	}

	return &dispatcher{
		Lifecycle: events.NewLifecycle(),
		config:    config,
		soap:      soapClient,
		log:       logger.OrNop(log).With("component", component),
		factory:   events.NewEventFactory(source, events.RoleClient),
	}, nil
}

// URL 对端服务地址
func (d *dispatcher) URL() string {
	return d.soap.URL()
}

func (d *dispatcher) resolve(opts []CallOption) (callOptions, error) {
	o := callOptions{timeout: d.config.DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.timeout <= 0 {
		return o, ErrMissingTimeout
	}
	if o.eventTrackingID == "" {
		o.eventTrackingID = uuid.NewString()
	}
	return o, nil
}

// call 执行一次调用：校验、请求事件、空集合短路、发送、四种结果映射、应答事件
//
// 只有调用方编程错误(参数校验失败、未配置超时)返回 error，传输失败都体现在 Response 中。
func call[Req ochp.Request, Resp ochp.Response[Resp]](
	ctx context.Context,
	d *dispatcher,
	request Req,
	parse func(*etree.Element) (Resp, error),
	skip bool,
	opts []CallOption,
) (*Response[Resp], error) {
	o, err := d.resolve(opts)
	if err != nil {
		return nil, err
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	action := request.Action()
	log := d.log.With("action", action.String()).With("event_tracking_id", o.eventTrackingID)

	notify(ctx, log, d.OnRequest, d.factory.CreateRequestEvent(o.eventTrackingID, request, o.timeout))

	response := &Response[Resp]{Request: request, EventTrackingID: o.eventTrackingID}
	if skip {
		response.Content = ochp.NewResponse[Resp](ochp.OK(ochp.NothingToUpload))
		response.Local = true
		log.Debug("nothing to upload, request not sent")
	} else {
		send(ctx, d, log, o, request, parse, response)
	}
	response.Runtime = time.Since(start)

	result := response.Result()
	metrics.ClientRequests.WithLabelValues(string(action), result.Code.String()).Inc()
	metrics.ClientRequestDuration.WithLabelValues(string(action)).Observe(response.Runtime.Seconds())

	notify(ctx, log, d.OnResponse, d.factory.CreateResponseEvent(
		o.eventTrackingID, request, response.Content, result, response.IsFault, response.Runtime))

	return response, nil
}

func send[Resp ochp.Response[Resp]](
	ctx context.Context,
	d *dispatcher,
	log *logger.Logger,
	o callOptions,
	request ochp.Request,
	parse func(*etree.Element) (Resp, error),
	response *Response[Resp],
) {
	action := request.Action()

	body, err := soap.Marshal(request.ToXML())
	if err != nil {
		fail(log, action, response, soap.OutcomeException, ochp.Format(err.Error()), err)
		return
	}

	notify(ctx, log, d.OnSOAPRequest, d.factory.CreateSOAPRequestEvent(o.eventTrackingID, action, d.soap.URL(), string(body)))

	res := d.soap.Query(ctx, string(action), body, o.timeout)
	response.HTTPStatus = res.HTTPStatus

	notify(ctx, log, d.OnSOAPResponse, d.factory.CreateSOAPResponseEvent(
		o.eventTrackingID, action, res.HTTPStatus, res.RawBody, res.Runtime, res.Err))

	switch res.Outcome {
	case soap.OutcomeSuccess:
		content, err := parse(res.Envelope.Body)
		if err != nil {
			err = fmt.Errorf("failed to parse %s: %w", action.ResponseName(), err)
			fail(log, action, response, soap.OutcomeException, ochp.Format(err.Error()), err)
			return
		}
		response.Content = content

	case soap.OutcomeSOAPFault:
		fail(log, action, response, res.Outcome, ochp.Format("Invalid SOAP => "+res.RawBody), nil)

	case soap.OutcomeHTTPError:
		fail(log, action, response, res.Outcome,
			ochp.Server(fmt.Sprintf("HTTP %d => %s", res.HTTPStatus, res.RawBody)), nil)

	default:
		fail(log, action, response, soap.OutcomeException, ochp.Format(res.Err.Error()), res.Err)
	}
}

// fail 将通道失败写入应答，Content 仅携带结果
func fail[Resp ochp.Response[Resp]](log *logger.Logger, action ochp.Action, response *Response[Resp], outcome soap.Outcome, result ochp.Result, err error) {
	response.Content = ochp.NewResponse[Resp](result)
	response.IsFault = true
	response.Exception = err

	metrics.ClientFaults.WithLabelValues(string(action), outcome.String()).Inc()
	if err != nil {
		log.WarnWithErr(err, "ochp request failed")
	} else {
		log.Warnf("ochp request failed: %s", outcome)
	}
}

func notify[E any](ctx context.Context, log *logger.Logger, observers *events.Observers[E], event E) {
	if err := observers.Notify(ctx, event); err != nil {
		log.WarnWithErr(err, "ochp observer failed")
	}
}
