package ochp

import (
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/charging-platform/ochp-roaming/internal/domain/validation"
)

// Message 可序列化为OCHP顶层元素的消息
type Message interface {
	ToXML() *etree.Element
}

// Request 协议请求
type Request interface {
	Message
	Action() Action
	Validate() error
}

// Response 协议应答，每个应答恰好携带一个 Result
type Response[T any] interface {
	Message
	GetResult() Result
	// WithResult 返回仅携带给定结果、负载为空的应答
	WithResult(result Result) T
}

// NewResponse 按结果类别构造应答，例如 NewResponse[UpdateStatusResponse](OK(""))
func NewResponse[T Response[T]](result Result) T {
	var zero T
	return zero.WithResult(result)
}

// Equal 消息按值相等：时间比较时刻，nil 与空集合视为相同
func Equal[T Message](a, b T) bool {
	return semanticEqual(a, b)
}

// validate 缺少必填字段时返回 ErrInvalidArgument
func validate(action Action, request interface{}) error {
	if err := validation.Default().ValidateStruct(request); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidArgument, action, err)
	}
	return nil
}

// parseResponseRoot 校验应答根元素名称并解析结果
func parseResponseRoot(el *etree.Element, action Action) (Result, error) {
	if err := expectRoot(el, action.ResponseName()); err != nil {
		return Result{}, err
	}
	return parseResultChild(el)
}

// responseRoot 创建应答根元素并写入结果
func responseRoot(action Action, result Result) *etree.Element {
	el := newRoot(action.ResponseName())
	el.AddChild(result.ToXML("result"))
	return el
}

func appendAll[T interface{ ToXML(string) *etree.Element }](parent *etree.Element, name string, items []T) {
	for _, item := range items {
		parent.AddChild(item.ToXML(name))
	}
}

func requestRoot(action Action) *etree.Element {
	return newRoot(string(action))
}

func parseRequestRoot(el *etree.Element, action Action) error {
	return expectRoot(el, string(action))
}

func validateLastUpdate(action Action, lastUpdate time.Time) error {
	if lastUpdate.IsZero() {
		return fmt.Errorf("%w: %s: lastUpdate must be set", ErrInvalidArgument, action)
	}
	return nil
}
