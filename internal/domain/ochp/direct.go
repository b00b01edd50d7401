package ochp

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
)

// ChargingLimits 远程控制时可设置的充电约束
type ChargingLimits struct {
	MaxPower   *float64   `json:"maxPower,omitempty"`
	MaxCurrent *float64   `json:"maxCurrent,omitempty"`
	OnePhase   *bool      `json:"onePhase,omitempty"`
	MaxEnergy  *float64   `json:"maxEnergy,omitempty"`
	MinEnergy  *float64   `json:"minEnergy,omitempty"`
	Departure  *time.Time `json:"departure,omitempty"`
}

func (l ChargingLimits) appendTo(el *etree.Element) {
	addOptionalFloat(el, "maxPower", l.MaxPower)
	addOptionalFloat(el, "maxCurrent", l.MaxCurrent)
	addOptionalBool(el, "onePhase", l.OnePhase)
	addOptionalFloat(el, "maxEnergy", l.MaxEnergy)
	addOptionalFloat(el, "minEnergy", l.MinEnergy)
	addOptionalDateTime(el, "departure", l.Departure)
}

func parseChargingLimits(el *etree.Element) (ChargingLimits, error) {
	var (
		l   ChargingLimits
		err error
	)
	if l.MaxPower, err = optionalFloat(el, "maxPower"); err != nil {
		return l, err
	}
	if l.MaxCurrent, err = optionalFloat(el, "maxCurrent"); err != nil {
		return l, err
	}
	if l.OnePhase, err = optionalBool(el, "onePhase"); err != nil {
		return l, err
	}
	if l.MaxEnergy, err = optionalFloat(el, "maxEnergy"); err != nil {
		return l, err
	}
	if l.MinEnergy, err = optionalFloat(el, "minEnergy"); err != nil {
		return l, err
	}
	l.Departure, err = optionalDateTime(el, "departure")
	return l, err
}

// InformProviderRequest 运营商向服务商推送直连会话状态
type InformProviderRequest struct {
	Message          DirectOperation `json:"message" validate:"required"`
	EVSEID           EVSEID          `json:"evseId" validate:"required,ochp_evse_id"`
	ContractID       ContractID      `json:"contractId" validate:"required,ochp_contract_id"`
	DirectID         DirectID        `json:"directId" validate:"required,ochp_direct_id"`
	SessionTimeoutAt *time.Time      `json:"sessionTimeoutAt,omitempty"`
	StateOfCharge    *int            `json:"stateOfCharge,omitempty" validate:"omitempty,min=0,max=100"`
	Limits           ChargingLimits  `json:"limits"`
	CurrentPower     *float64        `json:"currentPower,omitempty"`
	ChargedEnergy    *float64        `json:"chargedEnergy,omitempty"`
	ChargingPeriods  []CDRPeriod     `json:"chargingPeriods,omitempty" validate:"dive"`
	CurrentCost      *float64        `json:"currentCost,omitempty"`
	Currency         *string         `json:"currency,omitempty" validate:"omitempty,len=3"`
}

// NewInformProviderRequest 创建只含必填字段的请求，其余字段由调用方设置后再调用 Validate
func NewInformProviderRequest(message DirectOperation, evseID EVSEID, contractID ContractID, directID DirectID) (InformProviderRequest, error) {
	r := InformProviderRequest{Message: message, EVSEID: evseID, ContractID: contractID, DirectID: directID}
	return r, r.Validate()
}

func (r InformProviderRequest) Action() Action  { return ActionInformProvider }
func (r InformProviderRequest) Validate() error { return validate(r.Action(), r) }

// ToXML 序列化
func (r InformProviderRequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	addText(el, "message", string(r.Message))
	addText(el, "evseId", r.EVSEID.String())
	addText(el, "contractId", r.ContractID.String())
	addText(el, "directId", r.DirectID.String())
	addOptionalDateTime(el, "sessionTimeoutAt", r.SessionTimeoutAt)
	addOptionalInt(el, "stateOfCharge", r.StateOfCharge)
	r.Limits.appendTo(el)
	addOptionalFloat(el, "currentPower", r.CurrentPower)
	addOptionalFloat(el, "chargedEnergy", r.ChargedEnergy)
	appendAll(el, "chargingPeriods", r.ChargingPeriods)
	addOptionalFloat(el, "currentCost", r.CurrentCost)
	addOptionalText(el, "currency", r.Currency)
	return el
}

// ParseInformProviderRequest 解析请求
func ParseInformProviderRequest(el *etree.Element) (InformProviderRequest, error) {
	var (
		r   InformProviderRequest
		err error
	)
	if err = parseRequestRoot(el, ActionInformProvider); err != nil {
		return r, err
	}
	if r.Message, err = requiredEnum(el, "message", directOperations...); err != nil {
		return r, err
	}
	if r.EVSEID, err = requiredID(el, "evseId", ParseEVSEID); err != nil {
		return r, err
	}
	if r.ContractID, err = requiredID(el, "contractId", ParseContractID); err != nil {
		return r, err
	}
	if r.DirectID, err = requiredID(el, "directId", ParseDirectID); err != nil {
		return r, err
	}
	if r.SessionTimeoutAt, err = optionalDateTime(el, "sessionTimeoutAt"); err != nil {
		return r, err
	}
	if r.StateOfCharge, err = optionalInt(el, "stateOfCharge"); err != nil {
		return r, err
	}
	if r.Limits, err = parseChargingLimits(el); err != nil {
		return r, err
	}
	if r.CurrentPower, err = optionalFloat(el, "currentPower"); err != nil {
		return r, err
	}
	if r.ChargedEnergy, err = optionalFloat(el, "chargedEnergy"); err != nil {
		return r, err
	}
	if r.ChargingPeriods, err = parseList(el, "chargingPeriods", ParseCDRPeriod); err != nil {
		return r, err
	}
	if r.CurrentCost, err = optionalFloat(el, "currentCost"); err != nil {
		return r, err
	}
	r.Currency = optionalText(el, "currency")
	return r, nil
}

// InformProviderResponse 应答
type InformProviderResponse struct {
	Result Result `json:"result"`
}

func (r InformProviderResponse) GetResult() Result { return r.Result }

func (InformProviderResponse) WithResult(result Result) InformProviderResponse {
	return InformProviderResponse{Result: result}
}

// ToXML 序列化
func (r InformProviderResponse) ToXML() *etree.Element {
	return responseRoot(ActionInformProvider, r.Result)
}

// ParseInformProviderResponse 解析应答
func ParseInformProviderResponse(el *etree.Element) (InformProviderResponse, error) {
	result, err := parseResponseRoot(el, ActionInformProvider)
	return InformProviderResponse{Result: result}, err
}

// SelectEVSERequest 服务商预选EVSE，开启直连会话
type SelectEVSERequest struct {
	EVSEID       EVSEID     `json:"evseId" validate:"required,ochp_evse_id"`
	ContractID   ContractID `json:"contractId" validate:"required,ochp_contract_id"`
	ReserveUntil *time.Time `json:"reserveUntil,omitempty"`
}

// NewSelectEVSERequest 创建请求
func NewSelectEVSERequest(evseID EVSEID, contractID ContractID, reserveUntil *time.Time) (SelectEVSERequest, error) {
	r := SelectEVSERequest{EVSEID: evseID, ContractID: contractID, ReserveUntil: reserveUntil}
	return r, r.Validate()
}

func (r SelectEVSERequest) Action() Action  { return ActionSelectEVSE }
func (r SelectEVSERequest) Validate() error { return validate(r.Action(), r) }

// ToXML 序列化
func (r SelectEVSERequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	addText(el, "evseId", r.EVSEID.String())
	addText(el, "contractId", r.ContractID.String())
	addOptionalDateTime(el, "reserveUntil", r.ReserveUntil)
	return el
}

// ParseSelectEVSERequest 解析请求
func ParseSelectEVSERequest(el *etree.Element) (SelectEVSERequest, error) {
	var (
		r   SelectEVSERequest
		err error
	)
	if err = parseRequestRoot(el, ActionSelectEVSE); err != nil {
		return r, err
	}
	if r.EVSEID, err = requiredID(el, "evseId", ParseEVSEID); err != nil {
		return r, err
	}
	if r.ContractID, err = requiredID(el, "contractId", ParseContractID); err != nil {
		return r, err
	}
	r.ReserveUntil, err = optionalDateTime(el, "reserveUntil")
	return r, err
}

// SelectEVSEResponse 应答，成功时携带会话标识
type SelectEVSEResponse struct {
	Result   Result     `json:"result"`
	DirectID DirectID   `json:"directId,omitempty"`
	TTL      *time.Time `json:"ttl,omitempty"`
}

func (r SelectEVSEResponse) GetResult() Result { return r.Result }

func (SelectEVSEResponse) WithResult(result Result) SelectEVSEResponse {
	return SelectEVSEResponse{Result: result}
}

// ToXML 序列化
func (r SelectEVSEResponse) ToXML() *etree.Element {
	el := responseRoot(ActionSelectEVSE, r.Result)
	addOptionalText(el, "directId", optionalString(r.DirectID.String()))
	addOptionalDateTime(el, "ttl", r.TTL)
	return el
}

// ParseSelectEVSEResponse 解析应答
func ParseSelectEVSEResponse(el *etree.Element) (SelectEVSEResponse, error) {
	var (
		r   SelectEVSEResponse
		err error
	)
	if r.Result, err = parseResponseRoot(el, ActionSelectEVSE); err != nil {
		return r, err
	}
	if text := optionalText(el, "directId"); text != nil {
		if r.DirectID, err = ParseDirectID(*text); err != nil {
			return r, err
		}
	}
	r.TTL, err = optionalDateTime(el, "ttl")
	return r, err
}

// ControlEVSERequest 控制直连会话
type ControlEVSERequest struct {
	DirectID  DirectID        `json:"directId" validate:"required,ochp_direct_id"`
	Operation DirectOperation `json:"operation" validate:"required"`
	Limits    ChargingLimits  `json:"limits"`
}

// NewControlEVSERequest 创建请求
func NewControlEVSERequest(directID DirectID, operation DirectOperation, limits ChargingLimits) (ControlEVSERequest, error) {
	r := ControlEVSERequest{DirectID: directID, Operation: operation, Limits: limits}
	return r, r.Validate()
}

func (r ControlEVSERequest) Action() Action  { return ActionControlEVSE }
func (r ControlEVSERequest) Validate() error { return validate(r.Action(), r) }

// ToXML 序列化
func (r ControlEVSERequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	addText(el, "directId", r.DirectID.String())
	addText(el, "operation", string(r.Operation))
	r.Limits.appendTo(el)
	return el
}

// ParseControlEVSERequest 解析请求
func ParseControlEVSERequest(el *etree.Element) (ControlEVSERequest, error) {
	var (
		r   ControlEVSERequest
		err error
	)
	if err = parseRequestRoot(el, ActionControlEVSE); err != nil {
		return r, err
	}
	if r.DirectID, err = requiredID(el, "directId", ParseDirectID); err != nil {
		return r, err
	}
	if r.Operation, err = requiredEnum(el, "operation", directOperations...); err != nil {
		return r, err
	}
	r.Limits, err = parseChargingLimits(el)
	return r, err
}

// ControlEVSEResponse 应答
type ControlEVSEResponse struct {
	Result Result     `json:"result"`
	TTL    *time.Time `json:"ttl,omitempty"`
}

func (r ControlEVSEResponse) GetResult() Result { return r.Result }

func (ControlEVSEResponse) WithResult(result Result) ControlEVSEResponse {
	return ControlEVSEResponse{Result: result}
}

// ToXML 序列化
func (r ControlEVSEResponse) ToXML() *etree.Element {
	el := responseRoot(ActionControlEVSE, r.Result)
	addOptionalDateTime(el, "ttl", r.TTL)
	return el
}

// ParseControlEVSEResponse 解析应答
func ParseControlEVSEResponse(el *etree.Element) (ControlEVSEResponse, error) {
	var (
		r   ControlEVSEResponse
		err error
	)
	if r.Result, err = parseResponseRoot(el, ActionControlEVSE); err != nil {
		return r, err
	}
	r.TTL, err = optionalDateTime(el, "ttl")
	return r, err
}

// ReleaseEVSERequest 结束直连会话
type ReleaseEVSERequest struct {
	DirectID DirectID `json:"directId" validate:"required,ochp_direct_id"`
}

// NewReleaseEVSERequest 创建请求
func NewReleaseEVSERequest(directID DirectID) (ReleaseEVSERequest, error) {
	r := ReleaseEVSERequest{DirectID: directID}
	return r, r.Validate()
}

func (r ReleaseEVSERequest) Action() Action  { return ActionReleaseEVSE }
func (r ReleaseEVSERequest) Validate() error { return validate(r.Action(), r) }

// ToXML 序列化
func (r ReleaseEVSERequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	addText(el, "directId", r.DirectID.String())
	return el
}

// ParseReleaseEVSERequest 解析请求
func ParseReleaseEVSERequest(el *etree.Element) (ReleaseEVSERequest, error) {
	var r ReleaseEVSERequest
	if err := parseRequestRoot(el, ActionReleaseEVSE); err != nil {
		return r, err
	}
	var err error
	r.DirectID, err = requiredID(el, "directId", ParseDirectID)
	return r, err
}

// ReleaseEVSEResponse 应答
type ReleaseEVSEResponse struct {
	Result Result `json:"result"`
}

func (r ReleaseEVSEResponse) GetResult() Result { return r.Result }

func (ReleaseEVSEResponse) WithResult(result Result) ReleaseEVSEResponse {
	return ReleaseEVSEResponse{Result: result}
}

// ToXML 序列化
func (r ReleaseEVSEResponse) ToXML() *etree.Element {
	return responseRoot(ActionReleaseEVSE, r.Result)
}

// ParseReleaseEVSEResponse 解析应答
func ParseReleaseEVSEResponse(el *etree.Element) (ReleaseEVSEResponse, error) {
	result, err := parseResponseRoot(el, ActionReleaseEVSE)
	return ReleaseEVSEResponse{Result: result}, err
}

// GetEVSEStatusRequest 查询EVSE的实时状态
type GetEVSEStatusRequest struct {
	EVSEIDs []EVSEID `json:"evse" validate:"required,min=1,dive,ochp_evse_id"`
}

// NewGetEVSEStatusRequest 创建请求
func NewGetEVSEStatusRequest(evseIDs ...EVSEID) (GetEVSEStatusRequest, error) {
	r := GetEVSEStatusRequest{EVSEIDs: evseIDs}
	return r, r.Validate()
}

func (r GetEVSEStatusRequest) Action() Action  { return ActionGetEVSEStatus }
func (r GetEVSEStatusRequest) Validate() error { return validate(r.Action(), r) }

// ToXML 序列化
func (r GetEVSEStatusRequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	for _, id := range r.EVSEIDs {
		addText(el, "evse", id.String())
	}
	return el
}

// ParseGetEVSEStatusRequest 解析请求
func ParseGetEVSEStatusRequest(el *etree.Element) (GetEVSEStatusRequest, error) {
	var r GetEVSEStatusRequest
	if err := parseRequestRoot(el, ActionGetEVSEStatus); err != nil {
		return r, err
	}
	var err error
	if r.EVSEIDs, err = parseList(el, "evse", func(e *etree.Element) (EVSEID, error) {
		return ParseEVSEID(textOf(e))
	}); err != nil {
		return r, err
	}
	if len(r.EVSEIDs) == 0 {
		return r, fmt.Errorf("%w: %s/evse", ErrMissingElement, el.Tag)
	}
	return r, nil
}

// GetEVSEStatusResponse 应答
type GetEVSEStatusResponse struct {
	Result   Result       `json:"result"`
	Statuses []EVSEStatus `json:"evse,omitempty"`
}

func (r GetEVSEStatusResponse) GetResult() Result { return r.Result }

func (GetEVSEStatusResponse) WithResult(result Result) GetEVSEStatusResponse {
	return GetEVSEStatusResponse{Result: result}
}

// ToXML 序列化
func (r GetEVSEStatusResponse) ToXML() *etree.Element {
	el := responseRoot(ActionGetEVSEStatus, r.Result)
	appendAll(el, "evse", r.Statuses)
	return el
}

// ParseGetEVSEStatusResponse 解析应答
func ParseGetEVSEStatusResponse(el *etree.Element) (GetEVSEStatusResponse, error) {
	var (
		r   GetEVSEStatusResponse
		err error
	)
	if r.Result, err = parseResponseRoot(el, ActionGetEVSEStatus); err != nil {
		return r, err
	}
	r.Statuses, err = parseList(el, "evse", ParseEVSEStatus)
	return r, err
}

// requiredID 读取必填标识并按对应规则解析
func requiredID[T ~string](el *etree.Element, name string, parse func(string) (T, error)) (T, error) {
	text, err := requiredText(el, name)
	if err != nil {
		var zero T
		return zero, err
	}
	return parse(text)
}
