package ochp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charging-platform/ochp-roaming/internal/domain/validation"
)

// EVSEID 充电设备标识，例如 DE*GEF*E123456789*1
type EVSEID string

// ContractID 合同标识，例如 DE-GEF-123456789
type ContractID string

// DirectID OCHPdirect会话标识
type DirectID string

// CDRID 充电详单标识
type CDRID string

// ProviderID 电动出行服务商标识，例如 DE-GEF
type ProviderID string

// ParkingID 停车位标识
type ParkingID string

// TariffID 资费标识
type TariffID string

func parseIdentifier(kind, text string, pattern *regexp.Regexp) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %s must not be empty", ErrInvalidArgument, kind)
	}
	if !pattern.MatchString(trimmed) {
		return "", fmt.Errorf("%w: illegal %s '%s'", ErrInvalidArgument, kind, trimmed)
	}
	return trimmed, nil
}

// ParseEVSEID 解析EVSE标识
func ParseEVSEID(text string) (EVSEID, error) {
	s, err := parseIdentifier("EVSE Id", text, validation.EVSEIDPattern)
	return EVSEID(s), err
}

// TryParseEVSEID 解析EVSE标识，失败时返回false
func TryParseEVSEID(text string) (EVSEID, bool) {
	id, err := ParseEVSEID(text)
	return id, err == nil
}

// MustEVSEID 仅用于常量和测试数据
func MustEVSEID(text string) EVSEID {
	id, err := ParseEVSEID(text)
	if err != nil {
		panic(err)
	}
	return id
}

// ParseContractID 解析合同标识
func ParseContractID(text string) (ContractID, error) {
	s, err := parseIdentifier("contract Id", text, validation.ContractIDPattern)
	return ContractID(s), err
}

// TryParseContractID 解析合同标识，失败时返回false
func TryParseContractID(text string) (ContractID, bool) {
	id, err := ParseContractID(text)
	return id, err == nil
}

// ParseDirectID 解析OCHPdirect会话标识
func ParseDirectID(text string) (DirectID, error) {
	s, err := parseIdentifier("direct Id", text, validation.DirectIDPattern)
	return DirectID(s), err
}

// ParseCDRID 解析充电详单标识
func ParseCDRID(text string) (CDRID, error) {
	s, err := parseIdentifier("CDR Id", text, validation.CDRIDPattern)
	return CDRID(s), err
}

// ParseProviderID 解析服务商标识
func ParseProviderID(text string) (ProviderID, error) {
	s, err := parseIdentifier("provider Id", text, validation.ProviderIDPattern)
	return ProviderID(s), err
}

// ParseParkingID 解析停车位标识
func ParseParkingID(text string) (ParkingID, error) {
	s, err := parseIdentifier("parking Id", text, validation.ParkingIDPattern)
	return ParkingID(s), err
}

// ParseTariffID 解析资费标识
func ParseTariffID(text string) (TariffID, error) {
	s, err := parseIdentifier("tariff Id", text, validation.TariffIDPattern)
	return TariffID(s), err
}

func (id EVSEID) String() string     { return string(id) }
func (id ContractID) String() string { return string(id) }
func (id DirectID) String() string   { return string(id) }
func (id CDRID) String() string      { return string(id) }
func (id ProviderID) String() string { return string(id) }
func (id ParkingID) String() string  { return string(id) }
func (id TariffID) String() string   { return string(id) }

// OperatorPrefix 返回EVSE标识中的国家代码和运营商部分，例如 DE*GEF
func (id EVSEID) OperatorPrefix() string {
	s := strings.ReplaceAll(string(id), "*", "")
	if len(s) < 5 {
		return ""
	}
	return s[:2] + "*" + s[2:5]
}

// TokenRepresentation 令牌表示方式
type TokenRepresentation string

const (
	TokenRepresentationPlain  TokenRepresentation = "plain"
	TokenRepresentationSHA160 TokenRepresentation = "sha-160"
	TokenRepresentationSHA256 TokenRepresentation = "sha-256"
)

// TokenType 令牌类型
type TokenType string

const (
	TokenTypeRFID   TokenType = "rfid"
	TokenTypeRemote TokenType = "remote"
	TokenType15118  TokenType = "15118"
)

// TokenSubType RFID令牌子类型，空字符串表示未设置
type TokenSubType string

const (
	TokenSubTypeMifareClassic TokenSubType = "mifareCls"
	TokenSubTypeMifareDESFire TokenSubType = "mifareDes"
	TokenSubTypeCalypso       TokenSubType = "calypso"
)

// EMTID 电动出行令牌标识
type EMTID struct {
	Instance       string              `json:"instance" validate:"required,max=512"`
	Representation TokenRepresentation `json:"representation" validate:"required"`
	TokenType      TokenType           `json:"tokenType" validate:"required"`
	TokenSubType   TokenSubType        `json:"tokenSubType,omitempty"`
}

// NewEMTID 创建明文表示的令牌标识
func NewEMTID(instance string, tokenType TokenType) (EMTID, error) {
	instance = strings.TrimSpace(instance)
	if instance == "" {
		return EMTID{}, fmt.Errorf("%w: EMT Id instance must not be empty", ErrInvalidArgument)
	}
	if tokenType == "" {
		tokenType = TokenTypeRFID
	}
	return EMTID{
		Instance:       instance,
		Representation: TokenRepresentationPlain,
		TokenType:      tokenType,
	}, nil
}

// WithSubType 返回带子类型的副本
func (id EMTID) WithSubType(subType TokenSubType) EMTID {
	id.TokenSubType = subType
	return id
}

// Key 存储键，同一实例在不同令牌类型下视为不同令牌
func (id EMTID) Key() string {
	return string(id.TokenType) + ":" + id.Instance
}

// String 实现fmt.Stringer
func (id EMTID) String() string {
	return id.Instance
}
