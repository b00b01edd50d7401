package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
)

// Event 统一事件接口
type Event interface {
	// GetID 获取事件ID
	GetID() string
	// GetType 获取事件类型
	GetType() EventType
	// GetAction 获取触发事件的协议操作
	GetAction() ochp.Action
	// GetTimestamp 获取事件时间戳
	GetTimestamp() time.Time
	// GetSeverity 获取事件严重程度
	GetSeverity() EventSeverity
	// GetMetadata 获取事件元数据
	GetMetadata() Metadata
	// GetPayload 获取事件载荷
	GetPayload() interface{}
	// ToJSON 序列化为JSON
	ToJSON() ([]byte, error)
}

// BaseEvent 基础事件结构
type BaseEvent struct {
	ID        string        `json:"id"`
	Type      EventType     `json:"type"`
	Action    ochp.Action   `json:"action"`
	Timestamp time.Time     `json:"timestamp"`
	Severity  EventSeverity `json:"severity"`
	Metadata  Metadata      `json:"metadata"`
}

// GetID 实现Event接口
func (e *BaseEvent) GetID() string {
	return e.ID
}

// GetType 实现Event接口
func (e *BaseEvent) GetType() EventType {
	return e.Type
}

// GetAction 实现Event接口
func (e *BaseEvent) GetAction() ochp.Action {
	return e.Action
}

// GetTimestamp 实现Event接口
func (e *BaseEvent) GetTimestamp() time.Time {
	return e.Timestamp
}

// GetSeverity 实现Event接口
func (e *BaseEvent) GetSeverity() EventSeverity {
	return e.Severity
}

// GetMetadata 实现Event接口
func (e *BaseEvent) GetMetadata() Metadata {
	return e.Metadata
}

// NewBaseEvent 创建基础事件
func NewBaseEvent(eventType EventType, action ochp.Action, severity EventSeverity, metadata Metadata) *BaseEvent {
	if metadata.ProtocolVersion == "" {
		metadata.ProtocolVersion = ochp.Version
	}
	return &BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Action:    action,
		Timestamp: time.Now().UTC(),
		Severity:  severity,
		Metadata:  metadata,
	}
}

// RequestEvent 应用层请求事件，在序列化和发送之前触发
type RequestEvent struct {
	*BaseEvent
	Request ochp.Request  `json:"request"`
	Timeout time.Duration `json:"timeout,omitempty"`
}

// GetPayload 实现Event接口
func (e *RequestEvent) GetPayload() interface{} {
	return e.Request
}

// ToJSON 实现Event接口
func (e *RequestEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// SOAPRequestEvent 线路层请求事件，携带即将发送或刚收到的SOAP报文
type SOAPRequestEvent struct {
	*BaseEvent
	URL        string `json:"url,omitempty"`
	SOAPAction string `json:"soap_action"`
	Body       string `json:"body"`
}

// GetPayload 实现Event接口
func (e *SOAPRequestEvent) GetPayload() interface{} {
	return map[string]interface{}{
		"url":         e.URL,
		"soap_action": e.SOAPAction,
		"body":        e.Body,
	}
}

// ToJSON 实现Event接口
func (e *SOAPRequestEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// SOAPResponseEvent 线路层应答事件
type SOAPResponseEvent struct {
	*BaseEvent
	HTTPStatus int           `json:"http_status,omitempty"`
	Body       string        `json:"body,omitempty"`
	Runtime    time.Duration `json:"runtime"`
	Err        string        `json:"error,omitempty"`
}

// GetPayload 实现Event接口
func (e *SOAPResponseEvent) GetPayload() interface{} {
	return map[string]interface{}{
		"http_status": e.HTTPStatus,
		"body":        e.Body,
		"runtime":     e.Runtime,
		"error":       e.Err,
	}
}

// ToJSON 实现Event接口
func (e *SOAPResponseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ResponseEvent 应用层应答事件，携带调用耗时
type ResponseEvent struct {
	*BaseEvent
	Request  ochp.Request  `json:"request"`
	Response ochp.Message  `json:"response"`
	Result   ochp.Result   `json:"result"`
	IsFault  bool          `json:"is_fault"`
	Runtime  time.Duration `json:"runtime"`
}

// GetPayload 实现Event接口
func (e *ResponseEvent) GetPayload() interface{} {
	return e.Response
}

// ToJSON 实现Event接口
func (e *ResponseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ClearingHouseEvent 清算中心接受数据变更后发布的事件
type ClearingHouseEvent struct {
	*BaseEvent
	Keys    []string    `json:"keys,omitempty"`
	Count   int         `json:"count"`
	Refused int         `json:"refused,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// GetPayload 实现Event接口
func (e *ClearingHouseEvent) GetPayload() interface{} {
	return e.Data
}

// ToJSON 实现Event接口
func (e *ClearingHouseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventFactory 事件工厂
type EventFactory struct {
	source string
	role   Role
}

// NewEventFactory 创建事件工厂，source 和 role 写入每个事件的元数据
func NewEventFactory(source string, role Role) *EventFactory {
	return &EventFactory{source: source, role: role}
}

func (f *EventFactory) metadata(eventTrackingID string) Metadata {
	return Metadata{
		Source:          f.source,
		Role:            f.role,
		ProtocolVersion: ochp.Version,
		EventTrackingID: eventTrackingID,
	}
}

// CreateRequestEvent 创建应用层请求事件
func (f *EventFactory) CreateRequestEvent(eventTrackingID string, request ochp.Request, timeout time.Duration) *RequestEvent {
	return &RequestEvent{
		BaseEvent: NewBaseEvent(EventTypeRequest, request.Action(), EventSeverityInfo, f.metadata(eventTrackingID)),
		Request:   request,
		Timeout:   timeout,
	}
}

// CreateSOAPRequestEvent 创建线路层请求事件
func (f *EventFactory) CreateSOAPRequestEvent(eventTrackingID string, action ochp.Action, url, body string) *SOAPRequestEvent {
	return &SOAPRequestEvent{
		BaseEvent:  NewBaseEvent(EventTypeSOAPRequest, action, EventSeverityInfo, f.metadata(eventTrackingID)),
		URL:        url,
		SOAPAction: string(action),
		Body:       body,
	}
}

// CreateSOAPResponseEvent 创建线路层应答事件，传输失败时严重程度为 error
func (f *EventFactory) CreateSOAPResponseEvent(eventTrackingID string, action ochp.Action, httpStatus int, body string, runtime time.Duration, err error) *SOAPResponseEvent {
	severity := EventSeverityInfo
	event := &SOAPResponseEvent{
		HTTPStatus: httpStatus,
		Body:       body,
		Runtime:    runtime,
	}
	if err != nil {
		severity = EventSeverityError
		event.Err = err.Error()
	}
	event.BaseEvent = NewBaseEvent(EventTypeSOAPResponse, action, severity, f.metadata(eventTrackingID))
	return event
}

// CreateResponseEvent 创建应用层应答事件
func (f *EventFactory) CreateResponseEvent(eventTrackingID string, request ochp.Request, response ochp.Message, result ochp.Result, isFault bool, runtime time.Duration) *ResponseEvent {
	severity := EventSeverityInfo
	switch {
	case isFault:
		severity = EventSeverityError
	case !result.IsSuccess():
		severity = EventSeverityWarning
	}
	return &ResponseEvent{
		BaseEvent: NewBaseEvent(EventTypeResponse, request.Action(), severity, f.metadata(eventTrackingID)),
		Request:   request,
		Response:  response,
		Result:    result,
		IsFault:   isFault,
		Runtime:   runtime,
	}
}

// CreateClearingHouseEvent 创建清算中心数据变更事件
func (f *EventFactory) CreateClearingHouseEvent(eventType EventType, action ochp.Action, keys []string, refused int, data interface{}) *ClearingHouseEvent {
	severity := EventSeverityInfo
	if refused > 0 {
		severity = EventSeverityWarning
	}
	return &ClearingHouseEvent{
		BaseEvent: NewBaseEvent(eventType, action, severity, f.metadata("")),
		Keys:      keys,
		Count:     len(keys),
		Refused:   refused,
		Data:      data,
	}
}
