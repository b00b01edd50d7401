package ochp

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
)

// UpdateStatusRequest 上传EVSE与停车位实时状态
type UpdateStatusRequest struct {
	EVSEStatus    []EVSEStatus    `json:"evse,omitempty" validate:"dive"`
	ParkingStatus []ParkingStatus `json:"parking,omitempty" validate:"dive"`
	// DefaultTTL 未单独设置TTL的状态的有效期
	DefaultTTL *time.Time `json:"ttl,omitempty"`
}

// NewUpdateStatusRequest 创建请求
func NewUpdateStatusRequest(evse []EVSEStatus, parking []ParkingStatus, defaultTTL *time.Time) (UpdateStatusRequest, error) {
	r := UpdateStatusRequest{EVSEStatus: evse, ParkingStatus: parking, DefaultTTL: defaultTTL}
	return r, r.Validate()
}

func (r UpdateStatusRequest) Action() Action  { return ActionUpdateStatus }
func (r UpdateStatusRequest) Validate() error { return validate(r.Action(), r) }

// IsEmpty 既无EVSE状态也无停车位状态
func (r UpdateStatusRequest) IsEmpty() bool {
	return len(r.EVSEStatus) == 0 && len(r.ParkingStatus) == 0
}

// ToXML 序列化
func (r UpdateStatusRequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	appendAll(el, "evse", r.EVSEStatus)
	appendAll(el, "parking", r.ParkingStatus)
	addOptionalDateTime(el, "ttl", r.DefaultTTL)
	return el
}

// ParseUpdateStatusRequest 解析请求
func ParseUpdateStatusRequest(el *etree.Element) (UpdateStatusRequest, error) {
	var (
		r   UpdateStatusRequest
		err error
	)
	if err = parseRequestRoot(el, ActionUpdateStatus); err != nil {
		return r, err
	}
	if r.EVSEStatus, err = parseList(el, "evse", ParseEVSEStatus); err != nil {
		return r, err
	}
	if r.ParkingStatus, err = parseList(el, "parking", ParseParkingStatus); err != nil {
		return r, err
	}
	r.DefaultTTL, err = optionalDateTime(el, "ttl")
	return r, err
}

// UpdateStatusResponse 应答
type UpdateStatusResponse struct {
	Result Result `json:"result"`
}

func (r UpdateStatusResponse) GetResult() Result { return r.Result }

func (UpdateStatusResponse) WithResult(result Result) UpdateStatusResponse {
	return UpdateStatusResponse{Result: result}
}

// ToXML 序列化
func (r UpdateStatusResponse) ToXML() *etree.Element {
	return responseRoot(ActionUpdateStatus, r.Result)
}

// ParseUpdateStatusResponse 解析应答
func ParseUpdateStatusResponse(el *etree.Element) (UpdateStatusResponse, error) {
	result, err := parseResponseRoot(el, ActionUpdateStatus)
	return UpdateStatusResponse{Result: result}, err
}

// GetStatusRequest 下载实时状态，StartDateTime 为空时返回全部
type GetStatusRequest struct {
	StartDateTime *time.Time `json:"startDateTime,omitempty"`
}

func (r GetStatusRequest) Action() Action  { return ActionGetStatus }
func (r GetStatusRequest) Validate() error { return nil }

// ToXML 序列化
func (r GetStatusRequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	addOptionalDateTime(el, "startDateTime", r.StartDateTime)
	return el
}

// ParseGetStatusRequest 解析请求
func ParseGetStatusRequest(el *etree.Element) (GetStatusRequest, error) {
	var r GetStatusRequest
	if err := parseRequestRoot(el, ActionGetStatus); err != nil {
		return r, err
	}
	var err error
	r.StartDateTime, err = optionalDateTime(el, "startDateTime")
	return r, err
}

// GetStatusResponse 应答
type GetStatusResponse struct {
	Result        Result          `json:"result"`
	EVSEStatus    []EVSEStatus    `json:"evse,omitempty"`
	ParkingStatus []ParkingStatus `json:"parking,omitempty"`
}

func (r GetStatusResponse) GetResult() Result { return r.Result }

func (GetStatusResponse) WithResult(result Result) GetStatusResponse {
	return GetStatusResponse{Result: result}
}

// ToXML 序列化
func (r GetStatusResponse) ToXML() *etree.Element {
	el := responseRoot(ActionGetStatus, r.Result)
	appendAll(el, "evse", r.EVSEStatus)
	appendAll(el, "parking", r.ParkingStatus)
	return el
}

// ParseGetStatusResponse 解析应答
func ParseGetStatusResponse(el *etree.Element) (GetStatusResponse, error) {
	var (
		r   GetStatusResponse
		err error
	)
	if r.Result, err = parseResponseRoot(el, ActionGetStatus); err != nil {
		return r, err
	}
	if r.EVSEStatus, err = parseList(el, "evse", ParseEVSEStatus); err != nil {
		return r, err
	}
	r.ParkingStatus, err = parseList(el, "parking", ParseParkingStatus)
	return r, err
}

// UpdateTariffsRequest 上传资费
type UpdateTariffsRequest struct {
	Tariffs []TariffInfo `json:"tariffInfoArray" validate:"dive"`
}

// NewUpdateTariffsRequest 创建请求
func NewUpdateTariffsRequest(tariffs ...TariffInfo) (UpdateTariffsRequest, error) {
	r := UpdateTariffsRequest{Tariffs: tariffs}
	return r, r.Validate()
}

func (r UpdateTariffsRequest) Action() Action  { return ActionUpdateTariffs }
func (r UpdateTariffsRequest) Validate() error { return validate(r.Action(), r) }

// ToXML 序列化
func (r UpdateTariffsRequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	appendAll(el, "tariffInfoArray", r.Tariffs)
	return el
}

// ParseUpdateTariffsRequest 解析请求
func ParseUpdateTariffsRequest(el *etree.Element) (UpdateTariffsRequest, error) {
	var r UpdateTariffsRequest
	if err := parseRequestRoot(el, ActionUpdateTariffs); err != nil {
		return r, err
	}
	var err error
	r.Tariffs, err = parseList(el, "tariffInfoArray", ParseTariffInfo)
	return r, err
}

// UpdateTariffsResponse 应答，携带被拒绝的资费
type UpdateTariffsResponse struct {
	Result         Result       `json:"result"`
	RefusedTariffs []TariffInfo `json:"refusedTariffInfo,omitempty"`
}

func (r UpdateTariffsResponse) GetResult() Result { return r.Result }

func (UpdateTariffsResponse) WithResult(result Result) UpdateTariffsResponse {
	return UpdateTariffsResponse{Result: result}
}

// ToXML 序列化
func (r UpdateTariffsResponse) ToXML() *etree.Element {
	el := responseRoot(ActionUpdateTariffs, r.Result)
	appendAll(el, "refusedTariffInfo", r.RefusedTariffs)
	return el
}

// ParseUpdateTariffsResponse 解析应答
func ParseUpdateTariffsResponse(el *etree.Element) (UpdateTariffsResponse, error) {
	var (
		r   UpdateTariffsResponse
		err error
	)
	if r.Result, err = parseResponseRoot(el, ActionUpdateTariffs); err != nil {
		return r, err
	}
	r.RefusedTariffs, err = parseList(el, "refusedTariffInfo", ParseTariffInfo)
	return r, err
}

// GetTariffUpdatesRequest 下载资费变更，LastUpdate 为空时返回全部
type GetTariffUpdatesRequest struct {
	LastUpdate *time.Time `json:"lastUpdate,omitempty"`
}

func (r GetTariffUpdatesRequest) Action() Action { return ActionGetTariffUpdates }

// Validate 给定的 LastUpdate 不能为零值
func (r GetTariffUpdatesRequest) Validate() error {
	if r.LastUpdate != nil && r.LastUpdate.IsZero() {
		return fmt.Errorf("%w: %s: lastUpdate is zero", ErrInvalidArgument, r.Action())
	}
	return nil
}

// ToXML 序列化
func (r GetTariffUpdatesRequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	addOptionalDateTime(el, "lastUpdate", r.LastUpdate)
	return el
}

// ParseGetTariffUpdatesRequest 解析请求
func ParseGetTariffUpdatesRequest(el *etree.Element) (GetTariffUpdatesRequest, error) {
	var r GetTariffUpdatesRequest
	if err := parseRequestRoot(el, ActionGetTariffUpdates); err != nil {
		return r, err
	}
	var err error
	r.LastUpdate, err = optionalDateTime(el, "lastUpdate")
	return r, err
}

// GetTariffUpdatesResponse 应答
type GetTariffUpdatesResponse struct {
	Result  Result       `json:"result"`
	Tariffs []TariffInfo `json:"tariffInfoArray,omitempty"`
}

func (r GetTariffUpdatesResponse) GetResult() Result { return r.Result }

func (GetTariffUpdatesResponse) WithResult(result Result) GetTariffUpdatesResponse {
	return GetTariffUpdatesResponse{Result: result}
}

// ToXML 序列化
func (r GetTariffUpdatesResponse) ToXML() *etree.Element {
	el := responseRoot(ActionGetTariffUpdates, r.Result)
	appendAll(el, "tariffInfoArray", r.Tariffs)
	return el
}

// ParseGetTariffUpdatesResponse 解析应答
func ParseGetTariffUpdatesResponse(el *etree.Element) (GetTariffUpdatesResponse, error) {
	var (
		r   GetTariffUpdatesResponse
		err error
	)
	if r.Result, err = parseResponseRoot(el, ActionGetTariffUpdates); err != nil {
		return r, err
	}
	r.Tariffs, err = parseList(el, "tariffInfoArray", ParseTariffInfo)
	return r, err
}
