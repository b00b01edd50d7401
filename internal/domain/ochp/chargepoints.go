package ochp

import (
	"time"

	"github.com/beevik/etree"
)

// SetChargePointListRequest 上传完整充电点列表，替换清算中心中的已有数据
type SetChargePointListRequest struct {
	ChargePoints []ChargePointInfo `json:"chargePointInfoArray" validate:"dive"`
}

// NewSetChargePointListRequest 创建请求
func NewSetChargePointListRequest(chargePoints ...ChargePointInfo) (SetChargePointListRequest, error) {
	r := SetChargePointListRequest{ChargePoints: chargePoints}
	return r, r.Validate()
}

func (r SetChargePointListRequest) Action() Action  { return ActionSetChargePointList }
func (r SetChargePointListRequest) Validate() error { return validate(r.Action(), r) }

// ToXML 序列化
func (r SetChargePointListRequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	appendAll(el, "chargePointInfoArray", r.ChargePoints)
	return el
}

// ParseSetChargePointListRequest 解析请求
func ParseSetChargePointListRequest(el *etree.Element) (SetChargePointListRequest, error) {
	var r SetChargePointListRequest
	if err := parseRequestRoot(el, ActionSetChargePointList); err != nil {
		return r, err
	}
	var err error
	r.ChargePoints, err = parseList(el, "chargePointInfoArray", ParseChargePointInfo)
	return r, err
}

// SetChargePointListResponse 应答，携带被拒绝的充电点
type SetChargePointListResponse struct {
	Result              Result            `json:"result"`
	RefusedChargePoints []ChargePointInfo `json:"refusedChargePointInfo,omitempty"`
}

func (r SetChargePointListResponse) GetResult() Result { return r.Result }

func (SetChargePointListResponse) WithResult(result Result) SetChargePointListResponse {
	return SetChargePointListResponse{Result: result}
}

// ToXML 序列化
func (r SetChargePointListResponse) ToXML() *etree.Element {
	el := responseRoot(ActionSetChargePointList, r.Result)
	appendAll(el, "refusedChargePointInfo", r.RefusedChargePoints)
	return el
}

// ParseSetChargePointListResponse 解析应答
func ParseSetChargePointListResponse(el *etree.Element) (SetChargePointListResponse, error) {
	var (
		r   SetChargePointListResponse
		err error
	)
	if r.Result, err = parseResponseRoot(el, ActionSetChargePointList); err != nil {
		return r, err
	}
	r.RefusedChargePoints, err = parseList(el, "refusedChargePointInfo", ParseChargePointInfo)
	return r, err
}

// UpdateChargePointListRequest 增量更新充电点
type UpdateChargePointListRequest struct {
	ChargePoints []ChargePointInfo `json:"chargePointInfoArray" validate:"dive"`
}

// NewUpdateChargePointListRequest 创建请求
func NewUpdateChargePointListRequest(chargePoints ...ChargePointInfo) (UpdateChargePointListRequest, error) {
	r := UpdateChargePointListRequest{ChargePoints: chargePoints}
	return r, r.Validate()
}

func (r UpdateChargePointListRequest) Action() Action  { return ActionUpdateChargePointList }
func (r UpdateChargePointListRequest) Validate() error { return validate(r.Action(), r) }

// ToXML 序列化
func (r UpdateChargePointListRequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	appendAll(el, "chargePointInfoArray", r.ChargePoints)
	return el
}

// ParseUpdateChargePointListRequest 解析请求
func ParseUpdateChargePointListRequest(el *etree.Element) (UpdateChargePointListRequest, error) {
	var r UpdateChargePointListRequest
	if err := parseRequestRoot(el, ActionUpdateChargePointList); err != nil {
		return r, err
	}
	var err error
	r.ChargePoints, err = parseList(el, "chargePointInfoArray", ParseChargePointInfo)
	return r, err
}

// UpdateChargePointListResponse 应答，携带被拒绝的充电点
type UpdateChargePointListResponse struct {
	Result              Result            `json:"result"`
	RefusedChargePoints []ChargePointInfo `json:"refusedChargePointInfo,omitempty"`
}

func (r UpdateChargePointListResponse) GetResult() Result { return r.Result }

func (UpdateChargePointListResponse) WithResult(result Result) UpdateChargePointListResponse {
	return UpdateChargePointListResponse{Result: result}
}

// ToXML 序列化
func (r UpdateChargePointListResponse) ToXML() *etree.Element {
	el := responseRoot(ActionUpdateChargePointList, r.Result)
	appendAll(el, "refusedChargePointInfo", r.RefusedChargePoints)
	return el
}

// ParseUpdateChargePointListResponse 解析应答
func ParseUpdateChargePointListResponse(el *etree.Element) (UpdateChargePointListResponse, error) {
	var (
		r   UpdateChargePointListResponse
		err error
	)
	if r.Result, err = parseResponseRoot(el, ActionUpdateChargePointList); err != nil {
		return r, err
	}
	r.RefusedChargePoints, err = parseList(el, "refusedChargePointInfo", ParseChargePointInfo)
	return r, err
}

// GetChargePointListRequest 下载全部充电点
type GetChargePointListRequest struct{}

func (r GetChargePointListRequest) Action() Action  { return ActionGetChargePointList }
func (r GetChargePointListRequest) Validate() error { return nil }

// ToXML 序列化
func (r GetChargePointListRequest) ToXML() *etree.Element {
	return requestRoot(r.Action())
}

// ParseGetChargePointListRequest 解析请求
func ParseGetChargePointListRequest(el *etree.Element) (GetChargePointListRequest, error) {
	return GetChargePointListRequest{}, parseRequestRoot(el, ActionGetChargePointList)
}

// GetChargePointListResponse 应答
type GetChargePointListResponse struct {
	Result       Result            `json:"result"`
	ChargePoints []ChargePointInfo `json:"chargePointInfoArray,omitempty"`
}

func (r GetChargePointListResponse) GetResult() Result { return r.Result }

func (GetChargePointListResponse) WithResult(result Result) GetChargePointListResponse {
	return GetChargePointListResponse{Result: result}
}

// ToXML 序列化
func (r GetChargePointListResponse) ToXML() *etree.Element {
	el := responseRoot(ActionGetChargePointList, r.Result)
	appendAll(el, "chargePointInfoArray", r.ChargePoints)
	return el
}

// ParseGetChargePointListResponse 解析应答
func ParseGetChargePointListResponse(el *etree.Element) (GetChargePointListResponse, error) {
	var (
		r   GetChargePointListResponse
		err error
	)
	if r.Result, err = parseResponseRoot(el, ActionGetChargePointList); err != nil {
		return r, err
	}
	r.ChargePoints, err = parseList(el, "chargePointInfoArray", ParseChargePointInfo)
	return r, err
}

// GetChargePointListUpdatesRequest 下载给定时间之后变更的充电点
type GetChargePointListUpdatesRequest struct {
	LastUpdate time.Time `json:"lastUpdate" validate:"required"`
}

// NewGetChargePointListUpdatesRequest 创建请求
func NewGetChargePointListUpdatesRequest(lastUpdate time.Time) (GetChargePointListUpdatesRequest, error) {
	r := GetChargePointListUpdatesRequest{LastUpdate: lastUpdate}
	return r, r.Validate()
}

func (r GetChargePointListUpdatesRequest) Action() Action  { return ActionGetChargePointListUpdates }
func (r GetChargePointListUpdatesRequest) Validate() error { return validateLastUpdate(r.Action(), r.LastUpdate) }

// ToXML 序列化
func (r GetChargePointListUpdatesRequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	addDateTime(el, "lastUpdate", r.LastUpdate)
	return el
}

// ParseGetChargePointListUpdatesRequest 解析请求
func ParseGetChargePointListUpdatesRequest(el *etree.Element) (GetChargePointListUpdatesRequest, error) {
	var r GetChargePointListUpdatesRequest
	if err := parseRequestRoot(el, ActionGetChargePointListUpdates); err != nil {
		return r, err
	}
	var err error
	r.LastUpdate, err = requiredDateTime(el, "lastUpdate")
	return r, err
}

// GetChargePointListUpdatesResponse 应答
type GetChargePointListUpdatesResponse struct {
	Result       Result            `json:"result"`
	ChargePoints []ChargePointInfo `json:"chargePointInfoArray,omitempty"`
}

func (r GetChargePointListUpdatesResponse) GetResult() Result { return r.Result }

func (GetChargePointListUpdatesResponse) WithResult(result Result) GetChargePointListUpdatesResponse {
	return GetChargePointListUpdatesResponse{Result: result}
}

// ToXML 序列化
func (r GetChargePointListUpdatesResponse) ToXML() *etree.Element {
	el := responseRoot(ActionGetChargePointListUpdates, r.Result)
	appendAll(el, "chargePointInfoArray", r.ChargePoints)
	return el
}

// ParseGetChargePointListUpdatesResponse 解析应答
func ParseGetChargePointListUpdatesResponse(el *etree.Element) (GetChargePointListUpdatesResponse, error) {
	var (
		r   GetChargePointListUpdatesResponse
		err error
	)
	if r.Result, err = parseResponseRoot(el, ActionGetChargePointListUpdates); err != nil {
		return r, err
	}
	r.ChargePoints, err = parseList(el, "chargePointInfoArray", ParseChargePointInfo)
	return r, err
}
