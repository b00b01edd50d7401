package soap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

const (
	// NamespaceSOAP11 SOAP 1.1 信封命名空间
	NamespaceSOAP11 = "http://schemas.xmlsoap.org/soap/envelope/"
	// Prefix 序列化信封时使用的前缀
	Prefix = "soapenv"

	// ContentType SOAP 1.1 报文类型
	ContentType = "text/xml; charset=utf-8"
)

// 标准故障码
const (
	FaultCodeClient          = Prefix + ":Client"
	FaultCodeServer          = Prefix + ":Server"
	FaultCodeVersionMismatch = Prefix + ":VersionMismatch"
)

var (
	// ErrNotEnvelope 报文根元素不是SOAP 1.1信封
	ErrNotEnvelope = errors.New("soap: not a SOAP 1.1 envelope")
	// ErrEmptyBody 信封Body中没有元素
	ErrEmptyBody = errors.New("soap: empty body")
)

// Fault SOAP 1.1 故障
type Fault struct {
	Code   string `json:"faultcode"`
	String string `json:"faultstring"`
	Actor  string `json:"faultactor,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Error 实现error接口
func (f *Fault) Error() string {
	if f.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", f.Code, f.String, f.Detail)
	}
	return fmt.Sprintf("%s: %s", f.Code, f.String)
}

// ClientFault 调用方错误导致的故障
func ClientFault(format string, args ...interface{}) *Fault {
	return &Fault{Code: FaultCodeClient, String: fmt.Sprintf(format, args...)}
}

// ServerFault 服务端错误导致的故障
func ServerFault(format string, args ...interface{}) *Fault {
	return &Fault{Code: FaultCodeServer, String: fmt.Sprintf(format, args...)}
}

// ToXML 序列化为 soapenv:Fault 元素，子元素不带命名空间
func (f *Fault) ToXML() *etree.Element {
	el := etree.NewElement(Prefix + ":Fault")
	el.CreateElement("faultcode").SetText(f.Code)
	el.CreateElement("faultstring").SetText(f.String)
	if f.Actor != "" {
		el.CreateElement("faultactor").SetText(f.Actor)
	}
	if f.Detail != "" {
		el.CreateElement("detail").SetText(f.Detail)
	}
	return el
}

func parseFault(el *etree.Element) *Fault {
	f := &Fault{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "faultcode":
			f.Code = strings.TrimSpace(child.Text())
		case "faultstring":
			f.String = strings.TrimSpace(child.Text())
		case "faultactor":
			f.Actor = strings.TrimSpace(child.Text())
		case "detail":
			// detail 可能包含任意XML
			if len(child.ChildElements()) > 0 {
				doc := etree.NewDocument()
				doc.SetRoot(child.ChildElements()[0].Copy())
				if detail, err := doc.WriteToString(); err == nil {
					f.Detail = detail
				} else {
					f.Detail = strings.TrimSpace(child.Text())
				}
			} else {
				f.Detail = strings.TrimSpace(child.Text())
			}
		}
	}
	return f
}

// Envelope 解析后的信封
type Envelope struct {
	Header *etree.Element
	// Body 中的第一个元素，仍挂在原文档上以便解析命名空间
	Body  *etree.Element
	Fault *Fault
}

// IsFault 信封是否携带故障
func (e *Envelope) IsFault() bool {
	return e.Fault != nil
}

// Wrap 将消息元素放入新信封
func Wrap(body *etree.Element) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	env := doc.CreateElement(Prefix + ":Envelope")
	env.CreateAttr("xmlns:"+Prefix, NamespaceSOAP11)
	env.CreateElement(Prefix + ":Header")
	b := env.CreateElement(Prefix + ":Body")
	if body != nil {
		b.AddChild(body)
	}
	return doc
}

// Marshal 将消息元素包装成信封并输出字节
func Marshal(body *etree.Element) ([]byte, error) {
	return Wrap(body).WriteToBytes()
}

// MarshalFault 输出故障信封
func MarshalFault(f *Fault) ([]byte, error) {
	return Marshal(f.ToXML())
}

// Unmarshal 解析信封；Body为空时返回 ErrEmptyBody
func Unmarshal(data []byte) (*Envelope, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("soap: malformed XML: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "Envelope" || root.NamespaceURI() != NamespaceSOAP11 {
		return nil, ErrNotEnvelope
	}

	env := &Envelope{}
	var body *etree.Element
	for _, child := range root.ChildElements() {
		if child.NamespaceURI() != NamespaceSOAP11 {
			continue
		}
		switch child.Tag {
		case "Header":
			env.Header = child
		case "Body":
			body = child
		}
	}
	if body == nil {
		return nil, fmt.Errorf("%w: missing Body", ErrNotEnvelope)
	}

	children := body.ChildElements()
	if len(children) == 0 {
		return env, ErrEmptyBody
	}
	first := children[0]
	if first.Tag == "Fault" && first.NamespaceURI() == NamespaceSOAP11 {
		env.Fault = parseFault(first)
		return env, nil
	}
	env.Body = first
	return env, nil
}

// BodyString 输出Body元素的文本形式，用于日志和事件
func BodyString(el *etree.Element) string {
	if el == nil {
		return ""
	}
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}
