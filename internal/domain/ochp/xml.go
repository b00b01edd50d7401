package ochp

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
)

// OnExceptionFunc 解析失败时的带外异常回调
type OnExceptionFunc func(timestamp time.Time, source string, err error)

// TryParse 将解析错误转换为 (零值, false) 并通过回调上报，不向调用方抛出
func TryParse[T any](el *etree.Element, parse func(*etree.Element) (T, error), onException OnExceptionFunc) (T, bool) {
	var zero T
	if el == nil {
		if onException != nil {
			onException(time.Now().UTC(), "", fmt.Errorf("%w: nil element", ErrMissingElement))
		}
		return zero, false
	}
	value, err := parse(el)
	if err != nil {
		if onException != nil {
			onException(time.Now().UTC(), ElementToString(el), err)
		}
		return zero, false
	}
	return value, true
}

// TryParseText 从原始文本解析
func TryParseText[T any](text string, parse func(*etree.Element) (T, error), onException OnExceptionFunc) (T, bool) {
	var zero T
	root, err := ParseXMLText(text)
	if err != nil {
		if onException != nil {
			onException(time.Now().UTC(), text, err)
		}
		return zero, false
	}
	return TryParse(root, parse, onException)
}

// ParseXMLText 解析XML文本并返回根元素
func ParseXMLText(text string) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return nil, fmt.Errorf("%w: malformed XML: %v", ErrInvalidValue, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: document has no root element", ErrMissingElement)
	}
	return root, nil
}

// ElementToString 以独立文档输出元素
func ElementToString(el *etree.Element) string {
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

// --- 序列化 ---

func newElement(name string) *etree.Element {
	return etree.NewElement(Prefix + ":" + name)
}

// newRoot 顶层消息元素声明OCHP命名空间，可独立解析
func newRoot(name string) *etree.Element {
	el := newElement(name)
	el.CreateAttr("xmlns:"+Prefix, Namespace)
	return el
}

func addElement(parent *etree.Element, name string) *etree.Element {
	return parent.CreateElement(Prefix + ":" + name)
}

func addText(parent *etree.Element, name, value string) {
	addElement(parent, name).SetText(value)
}

// addOptionalText 未设置的可选字段完全省略，不输出空元素
func addOptionalText(parent *etree.Element, name string, value *string) {
	if value != nil {
		addText(parent, name, *value)
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func addFloat(parent *etree.Element, name string, value float64) {
	addText(parent, name, formatFloat(value))
}

func addOptionalFloat(parent *etree.Element, name string, value *float64) {
	if value != nil {
		addFloat(parent, name, *value)
	}
}

func addOptionalInt(parent *etree.Element, name string, value *int) {
	if value != nil {
		addText(parent, name, strconv.Itoa(*value))
	}
}

func addOptionalBool(parent *etree.Element, name string, value *bool) {
	if value != nil {
		addText(parent, name, strconv.FormatBool(*value))
	}
}

func formatDateTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// addDateTime OCHP的时间字段双层嵌套: <name><DateTime>...</DateTime></name>
func addDateTime(parent *etree.Element, name string, t time.Time) {
	addText(addElement(parent, name), "DateTime", formatDateTime(t))
}

func addOptionalDateTime(parent *etree.Element, name string, t *time.Time) {
	if t != nil {
		addDateTime(parent, name, *t)
	}
}

// addLocalDateTime 保留本地时区偏移
func addLocalDateTime(parent *etree.Element, name string, t time.Time) {
	addText(addElement(parent, name), "LocalDateTime", t.Format(time.RFC3339Nano))
}

func addOptionalLocalDateTime(parent *etree.Element, name string, t *time.Time) {
	if t != nil {
		addLocalDateTime(parent, name, *t)
	}
}

// --- 反序列化 ---

func isOCHP(el *etree.Element, name string) bool {
	return el.Tag == name && el.NamespaceURI() == Namespace
}

// findChild 在OCHP命名空间内按名称查找直接子元素
func findChild(el *etree.Element, name string) *etree.Element {
	for _, child := range el.ChildElements() {
		if isOCHP(child, name) {
			return child
		}
	}
	return nil
}

func findChildren(el *etree.Element, name string) []*etree.Element {
	var result []*etree.Element
	for _, child := range el.ChildElements() {
		if isOCHP(child, name) {
			result = append(result, child)
		}
	}
	return result
}

func textOf(el *etree.Element) string {
	return strings.TrimSpace(el.Text())
}

func requiredChild(el *etree.Element, name string) (*etree.Element, error) {
	child := findChild(el, name)
	if child == nil {
		return nil, fmt.Errorf("%w: %s/%s", ErrMissingElement, el.Tag, name)
	}
	return child, nil
}

func requiredText(el *etree.Element, name string) (string, error) {
	child, err := requiredChild(el, name)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(child.Text()), nil
}

func optionalText(el *etree.Element, name string) *string {
	child := findChild(el, name)
	if child == nil {
		return nil
	}
	text := strings.TrimSpace(child.Text())
	return &text
}

func optionalTextValue(el *etree.Element, name string) string {
	if s := optionalText(el, name); s != nil {
		return *s
	}
	return ""
}

func parseFloatText(el *etree.Element, name, text string) (float64, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s/%s '%s'", ErrInvalidValue, el.Tag, name, text)
	}
	return f, nil
}

func requiredFloat(el *etree.Element, name string) (float64, error) {
	text, err := requiredText(el, name)
	if err != nil {
		return 0, err
	}
	return parseFloatText(el, name, text)
}

func optionalFloat(el *etree.Element, name string) (*float64, error) {
	text := optionalText(el, name)
	if text == nil {
		return nil, nil
	}
	f, err := parseFloatText(el, name, *text)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func optionalInt(el *etree.Element, name string) (*int, error) {
	text := optionalText(el, name)
	if text == nil {
		return nil, nil
	}
	i, err := strconv.Atoi(*text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s '%s'", ErrInvalidValue, el.Tag, name, *text)
	}
	return &i, nil
}

func optionalBool(el *etree.Element, name string) (*bool, error) {
	text := optionalText(el, name)
	if text == nil {
		return nil, nil
	}
	b, err := strconv.ParseBool(*text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s '%s'", ErrInvalidValue, el.Tag, name, *text)
	}
	return &b, nil
}

func parseNestedTime(el *etree.Element, name, inner string) (time.Time, error) {
	outer, err := requiredChild(el, name)
	if err != nil {
		return time.Time{}, err
	}
	text, err := requiredText(outer, inner)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s/%s '%s'", ErrInvalidValue, el.Tag, name, text)
	}
	return t, nil
}

func requiredDateTime(el *etree.Element, name string) (time.Time, error) {
	return parseNestedTime(el, name, "DateTime")
}

func optionalDateTime(el *etree.Element, name string) (*time.Time, error) {
	if findChild(el, name) == nil {
		return nil, nil
	}
	t, err := requiredDateTime(el, name)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func requiredLocalDateTime(el *etree.Element, name string) (time.Time, error) {
	return parseNestedTime(el, name, "LocalDateTime")
}

func optionalLocalDateTime(el *etree.Element, name string) (*time.Time, error) {
	if findChild(el, name) == nil {
		return nil, nil
	}
	t, err := requiredLocalDateTime(el, name)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseEnum[T ~string](kind, text string, values ...T) (T, error) {
	for _, v := range values {
		if string(v) == text {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: unknown %s '%s'", ErrInvalidValue, kind, text)
}

func requiredEnum[T ~string](el *etree.Element, name string, values ...T) (T, error) {
	text, err := requiredText(el, name)
	if err != nil {
		var zero T
		return zero, err
	}
	return parseEnum(name, text, values...)
}

// optionalEnum 未出现时返回空字符串
func optionalEnum[T ~string](el *etree.Element, name string, values ...T) (T, error) {
	text := optionalText(el, name)
	if text == nil {
		var zero T
		return zero, nil
	}
	return parseEnum(name, *text, values...)
}

func addOptionalEnum[T ~string](parent *etree.Element, name string, value T) {
	if value != "" {
		addText(parent, name, string(value))
	}
}

// parseList 按出现顺序解析重复元素
func parseList[T any](el *etree.Element, name string, parse func(*etree.Element) (T, error)) ([]T, error) {
	children := findChildren(el, name)
	if len(children) == 0 {
		return nil, nil
	}
	result := make([]T, 0, len(children))
	for _, child := range children {
		item, err := parse(child)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

func expectRoot(el *etree.Element, name string) error {
	if !isOCHP(el, name) {
		return fmt.Errorf("%w: expected %s:%s, got %s:%s", ErrInvalidValue, Namespace, name, el.NamespaceURI(), el.Tag)
	}
	return nil
}
