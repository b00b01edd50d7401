package ochp

import (
	"fmt"

	"github.com/beevik/etree"
)

// ResultCode 协议级结果码
type ResultCode int

const (
	// ResultCodeUnknown 无法识别的结果码，为兼容后续协议版本而保留
	ResultCodeUnknown ResultCode = iota
	ResultCodeOK
	ResultCodePartly
	ResultCodeNotAuthorized
	ResultCodeInvalidID
	ResultCodeServer
	ResultCodeFormat
)

var resultCodeTokens = map[ResultCode]string{
	ResultCodeOK:            "ok",
	ResultCodePartly:        "partly",
	ResultCodeNotAuthorized: "not-authorized",
	ResultCodeInvalidID:     "invalid-id",
	ResultCodeServer:        "server",
	ResultCodeFormat:        "format",
}

// ParseResultCode 未知取值映射为 ResultCodeUnknown，不会失败
func ParseResultCode(token string) ResultCode {
	for code, t := range resultCodeTokens {
		if t == token {
			return code
		}
	}
	return ResultCodeUnknown
}

// String 返回线上格式
func (c ResultCode) String() string {
	if t, ok := resultCodeTokens[c]; ok {
		return t
	}
	return "unknown"
}

// IsSuccess ok 和 partly 的负载有意义
func (c ResultCode) IsSuccess() bool {
	return c == ResultCodeOK || c == ResultCodePartly
}

// Result 每个应答都携带的操作结果
type Result struct {
	Code        ResultCode `json:"code"`
	Description string     `json:"description,omitempty"`
}

// OK 成功
func OK(description string) Result {
	return Result{Code: ResultCodeOK, Description: description}
}

// Partly 部分接受，调用方需检查被拒绝的条目
func Partly(description string) Result {
	return Result{Code: ResultCodePartly, Description: description}
}

// NotAuthorized 未授权
func NotAuthorized(description string) Result {
	return Result{Code: ResultCodeNotAuthorized, Description: description}
}

// InvalidID 标识无效或未知
func InvalidID(description string) Result {
	return Result{Code: ResultCodeInvalidID, Description: description}
}

// Server 服务端错误
func Server(description string) Result {
	return Result{Code: ResultCodeServer, Description: description}
}

// Format 格式错误
func Format(description string) Result {
	return Result{Code: ResultCodeFormat, Description: description}
}

// Unknown 未知结果
func Unknown(description string) Result {
	return Result{Code: ResultCodeUnknown, Description: description}
}

// IsSuccess 结果码为 ok 或 partly
func (r Result) IsSuccess() bool {
	return r.Code.IsSuccess()
}

// Equal 结构相等
func (r Result) Equal(other Result) bool {
	return r == other
}

// String 实现fmt.Stringer
func (r Result) String() string {
	if r.Description == "" {
		return r.Code.String()
	}
	return fmt.Sprintf("%s: %s", r.Code, r.Description)
}

// ToXML 序列化为 <result><resultCode><resultCode/></resultCode><resultDescription/></result>
func (r Result) ToXML(name string) *etree.Element {
	el := newElement(name)
	code := addElement(el, "resultCode")
	addText(code, "resultCode", r.Code.String())
	addOptionalText(el, "resultDescription", optionalString(r.Description))
	return el
}

// ParseResult 解析结果元素，缺少嵌套的resultCode时失败
func ParseResult(el *etree.Element) (Result, error) {
	outer, err := requiredChild(el, "resultCode")
	if err != nil {
		return Result{}, err
	}
	token, err := requiredText(outer, "resultCode")
	if err != nil {
		return Result{}, err
	}
	result := Result{Code: ParseResultCode(token)}
	if desc := optionalText(el, "resultDescription"); desc != nil {
		result.Description = *desc
	}
	return result, nil
}

func parseResultChild(parent *etree.Element) (Result, error) {
	el, err := requiredChild(parent, "result")
	if err != nil {
		return Result{}, err
	}
	return ParseResult(el)
}
