package mapper

import (
	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/domain/wwcp"
)

// DefaultAuthMode 协议认证方式集合转回单一认证方式时的固定结果
const DefaultAuthMode = wwcp.AuthModeRFID

// AuthModeToOCHP 单一认证方式展开为协议认证方式集合，一种方式可对应多个标志
func AuthModeToOCHP(mode wwcp.AuthenticationMode) ochp.AuthMethods {
	switch mode {
	case wwcp.AuthModePublic:
		return ochp.NewAuthMethods(ochp.AuthMethodPublic)
	case wwcp.AuthModeLocalKey:
		return ochp.NewAuthMethods(ochp.AuthMethodLocalKey)
	case wwcp.AuthModeDirectPayment:
		return ochp.NewAuthMethods(ochp.AuthMethodDirectCash, ochp.AuthMethodDirectCreditcard, ochp.AuthMethodDirectDebitcard)
	case wwcp.AuthModeRFID:
		return ochp.NewAuthMethods(ochp.AuthMethodRfidMifareCls, ochp.AuthMethodRfidMifareDes, ochp.AuthMethodRfidCalypso)
	case wwcp.AuthModePlugAndCharge:
		return ochp.NewAuthMethods(ochp.AuthMethodIec15118)
	default:
		return ochp.AuthMethods{}
	}
}

// AuthModesToOCHP 多个认证方式的并集
func AuthModesToOCHP(modes []wwcp.AuthenticationMode) ochp.AuthMethods {
	sets := make([]ochp.AuthMethods, 0, len(modes))
	for _, m := range modes {
		sets = append(sets, AuthModeToOCHP(m))
	}
	return ochp.ReduceAuthMethods(sets...)
}

// AuthMethodsToWWCP 协议认证方式集合转为单一认证方式
//
// 该方向有损且尚未定义映射规则：非空集合一律返回 DefaultAuthMode，空集合返回 AuthModeUnknown。
func AuthMethodsToWWCP(methods ochp.AuthMethods) wwcp.AuthenticationMode {
	if methods.IsEmpty() {
		return wwcp.AuthModeUnknown
	}
	return DefaultAuthMode
}
