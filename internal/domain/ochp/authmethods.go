package ochp

import "encoding/json"

// AuthMethod 认证方式
type AuthMethod string

const (
	AuthMethodPublic           AuthMethod = "Public"
	AuthMethodLocalKey         AuthMethod = "LocalKey"
	AuthMethodDirectCash       AuthMethod = "DirectCash"
	AuthMethodDirectCreditcard AuthMethod = "DirectCreditcard"
	AuthMethodDirectDebitcard  AuthMethod = "DirectDebitcard"
	AuthMethodRfidMifareCls    AuthMethod = "RfidMifareCls"
	AuthMethodRfidMifareDes    AuthMethod = "RfidMifareDes"
	AuthMethodRfidCalypso      AuthMethod = "RfidCalypso"
	AuthMethodIec15118         AuthMethod = "Iec15118"
)

// authMethodOrder 枚举顺序即线上输出顺序
var authMethodOrder = []AuthMethod{
	AuthMethodPublic, AuthMethodLocalKey, AuthMethodDirectCash, AuthMethodDirectCreditcard,
	AuthMethodDirectDebitcard, AuthMethodRfidMifareCls, AuthMethodRfidMifareDes,
	AuthMethodRfidCalypso, AuthMethodIec15118,
}

// AuthMethods 认证方式集合，可做并集、折叠与枚举
type AuthMethods struct {
	set map[AuthMethod]struct{}
}

// NewAuthMethods 由若干认证方式组成集合
func NewAuthMethods(methods ...AuthMethod) AuthMethods {
	a := AuthMethods{}
	for _, m := range methods {
		a = a.With(m)
	}
	return a
}

// With 返回加入一个认证方式后的新集合
func (a AuthMethods) With(method AuthMethod) AuthMethods {
	set := make(map[AuthMethod]struct{}, len(a.set)+1)
	for m := range a.set {
		set[m] = struct{}{}
	}
	set[method] = struct{}{}
	return AuthMethods{set: set}
}

// Or 并集
func (a AuthMethods) Or(other AuthMethods) AuthMethods {
	result := NewAuthMethods(a.Items()...)
	for m := range other.set {
		result = result.With(m)
	}
	return result
}

// Has 是否包含给定认证方式
func (a AuthMethods) Has(method AuthMethod) bool {
	_, ok := a.set[method]
	return ok
}

// Len 集合大小
func (a AuthMethods) Len() int {
	return len(a.set)
}

// IsEmpty 集合为空
func (a AuthMethods) IsEmpty() bool {
	return len(a.set) == 0
}

// Items 按固定顺序枚举集合中的单个认证方式
func (a AuthMethods) Items() []AuthMethod {
	var items []AuthMethod
	for _, m := range authMethodOrder {
		if a.Has(m) {
			items = append(items, m)
		}
	}
	return items
}

// Equal 集合相等
func (a AuthMethods) Equal(other AuthMethods) bool {
	if a.Len() != other.Len() {
		return false
	}
	for m := range a.set {
		if !other.Has(m) {
			return false
		}
	}
	return true
}

// ReduceAuthMethods 以并集折叠多个集合
func ReduceAuthMethods(sets ...AuthMethods) AuthMethods {
	var result AuthMethods
	for _, s := range sets {
		result = result.Or(s)
	}
	return result
}

// ParseAuthMethod 解析单个认证方式
func ParseAuthMethod(text string) (AuthMethod, error) {
	return parseEnum("authMethod", text, authMethodOrder...)
}

// MarshalJSON 以有序数组输出
func (a AuthMethods) MarshalJSON() ([]byte, error) {
	items := a.Items()
	if items == nil {
		items = []AuthMethod{}
	}
	return json.Marshal(items)
}

// UnmarshalJSON 实现json.Unmarshaler
func (a *AuthMethods) UnmarshalJSON(data []byte) error {
	var items []AuthMethod
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*a = NewAuthMethods(items...)
	return nil
}
