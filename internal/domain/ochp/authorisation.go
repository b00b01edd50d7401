package ochp

import (
	"time"

	"github.com/beevik/etree"
)

// GetSingleRoamingAuthorisationRequest 按令牌查询单条漫游授权
type GetSingleRoamingAuthorisationRequest struct {
	EMTID EMTID `json:"emtId"`
}

// NewGetSingleRoamingAuthorisationRequest 创建请求
func NewGetSingleRoamingAuthorisationRequest(emtID EMTID) (GetSingleRoamingAuthorisationRequest, error) {
	r := GetSingleRoamingAuthorisationRequest{EMTID: emtID}
	return r, r.Validate()
}

func (r GetSingleRoamingAuthorisationRequest) Action() Action  { return ActionGetSingleRoamingAuthorisation }
func (r GetSingleRoamingAuthorisationRequest) Validate() error { return validate(r.Action(), r) }

// ToXML 序列化
func (r GetSingleRoamingAuthorisationRequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	el.AddChild(r.EMTID.ToXML("emtId"))
	return el
}

// ParseGetSingleRoamingAuthorisationRequest 解析请求
func ParseGetSingleRoamingAuthorisationRequest(el *etree.Element) (GetSingleRoamingAuthorisationRequest, error) {
	var r GetSingleRoamingAuthorisationRequest
	if err := parseRequestRoot(el, ActionGetSingleRoamingAuthorisation); err != nil {
		return r, err
	}
	emt, err := requiredChild(el, "emtId")
	if err != nil {
		return r, err
	}
	r.EMTID, err = ParseEMTID(emt)
	return r, err
}

// GetSingleRoamingAuthorisationResponse 应答，未知令牌时 Info 为空
type GetSingleRoamingAuthorisationResponse struct {
	Result Result                    `json:"result"`
	Info   *RoamingAuthorisationInfo `json:"roamingAuthorisationInfo,omitempty"`
}

func (r GetSingleRoamingAuthorisationResponse) GetResult() Result { return r.Result }

func (GetSingleRoamingAuthorisationResponse) WithResult(result Result) GetSingleRoamingAuthorisationResponse {
	return GetSingleRoamingAuthorisationResponse{Result: result}
}

// ToXML 序列化
func (r GetSingleRoamingAuthorisationResponse) ToXML() *etree.Element {
	el := responseRoot(ActionGetSingleRoamingAuthorisation, r.Result)
	if r.Info != nil {
		el.AddChild(r.Info.ToXML("roamingAuthorisationInfo"))
	}
	return el
}

// ParseGetSingleRoamingAuthorisationResponse 解析应答
func ParseGetSingleRoamingAuthorisationResponse(el *etree.Element) (GetSingleRoamingAuthorisationResponse, error) {
	var (
		r   GetSingleRoamingAuthorisationResponse
		err error
	)
	if r.Result, err = parseResponseRoot(el, ActionGetSingleRoamingAuthorisation); err != nil {
		return r, err
	}
	if info := findChild(el, "roamingAuthorisationInfo"); info != nil {
		parsed, err := ParseRoamingAuthorisationInfo(info)
		if err != nil {
			return r, err
		}
		r.Info = &parsed
	}
	return r, nil
}

// GetRoamingAuthorisationListRequest 下载完整漫游授权白名单
type GetRoamingAuthorisationListRequest struct{}

func (r GetRoamingAuthorisationListRequest) Action() Action  { return ActionGetRoamingAuthorisationList }
func (r GetRoamingAuthorisationListRequest) Validate() error { return nil }

// ToXML 序列化
func (r GetRoamingAuthorisationListRequest) ToXML() *etree.Element {
	return requestRoot(r.Action())
}

// ParseGetRoamingAuthorisationListRequest 解析请求
func ParseGetRoamingAuthorisationListRequest(el *etree.Element) (GetRoamingAuthorisationListRequest, error) {
	return GetRoamingAuthorisationListRequest{}, parseRequestRoot(el, ActionGetRoamingAuthorisationList)
}

// GetRoamingAuthorisationListResponse 应答
type GetRoamingAuthorisationListResponse struct {
	Result         Result                     `json:"result"`
	Authorisations []RoamingAuthorisationInfo `json:"roamingAuthorisationInfoArray,omitempty"`
}

func (r GetRoamingAuthorisationListResponse) GetResult() Result { return r.Result }

func (GetRoamingAuthorisationListResponse) WithResult(result Result) GetRoamingAuthorisationListResponse {
	return GetRoamingAuthorisationListResponse{Result: result}
}

// ToXML 序列化
func (r GetRoamingAuthorisationListResponse) ToXML() *etree.Element {
	el := responseRoot(ActionGetRoamingAuthorisationList, r.Result)
	appendAll(el, "roamingAuthorisationInfoArray", r.Authorisations)
	return el
}

// ParseGetRoamingAuthorisationListResponse 解析应答
func ParseGetRoamingAuthorisationListResponse(el *etree.Element) (GetRoamingAuthorisationListResponse, error) {
	var (
		r   GetRoamingAuthorisationListResponse
		err error
	)
	if r.Result, err = parseResponseRoot(el, ActionGetRoamingAuthorisationList); err != nil {
		return r, err
	}
	r.Authorisations, err = parseList(el, "roamingAuthorisationInfoArray", ParseRoamingAuthorisationInfo)
	return r, err
}

// GetRoamingAuthorisationListUpdatesRequest 下载给定时间之后变更的漫游授权
type GetRoamingAuthorisationListUpdatesRequest struct {
	LastUpdate time.Time `json:"lastUpdate"`
}

// NewGetRoamingAuthorisationListUpdatesRequest 创建请求
func NewGetRoamingAuthorisationListUpdatesRequest(lastUpdate time.Time) (GetRoamingAuthorisationListUpdatesRequest, error) {
	r := GetRoamingAuthorisationListUpdatesRequest{LastUpdate: lastUpdate}
	return r, r.Validate()
}

func (r GetRoamingAuthorisationListUpdatesRequest) Action() Action {
	return ActionGetRoamingAuthorisationListUpdates
}

func (r GetRoamingAuthorisationListUpdatesRequest) Validate() error {
	return validateLastUpdate(r.Action(), r.LastUpdate)
}

// ToXML 序列化
func (r GetRoamingAuthorisationListUpdatesRequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	addDateTime(el, "lastUpdate", r.LastUpdate)
	return el
}

// ParseGetRoamingAuthorisationListUpdatesRequest 解析请求
func ParseGetRoamingAuthorisationListUpdatesRequest(el *etree.Element) (GetRoamingAuthorisationListUpdatesRequest, error) {
	var r GetRoamingAuthorisationListUpdatesRequest
	if err := parseRequestRoot(el, ActionGetRoamingAuthorisationListUpdates); err != nil {
		return r, err
	}
	var err error
	r.LastUpdate, err = requiredDateTime(el, "lastUpdate")
	return r, err
}

// GetRoamingAuthorisationListUpdatesResponse 应答
type GetRoamingAuthorisationListUpdatesResponse struct {
	Result         Result                     `json:"result"`
	Authorisations []RoamingAuthorisationInfo `json:"roamingAuthorisationInfo,omitempty"`
}

func (r GetRoamingAuthorisationListUpdatesResponse) GetResult() Result { return r.Result }

func (GetRoamingAuthorisationListUpdatesResponse) WithResult(result Result) GetRoamingAuthorisationListUpdatesResponse {
	return GetRoamingAuthorisationListUpdatesResponse{Result: result}
}

// ToXML 序列化
func (r GetRoamingAuthorisationListUpdatesResponse) ToXML() *etree.Element {
	el := responseRoot(ActionGetRoamingAuthorisationListUpdates, r.Result)
	appendAll(el, "roamingAuthorisationInfo", r.Authorisations)
	return el
}

// ParseGetRoamingAuthorisationListUpdatesResponse 解析应答
func ParseGetRoamingAuthorisationListUpdatesResponse(el *etree.Element) (GetRoamingAuthorisationListUpdatesResponse, error) {
	var (
		r   GetRoamingAuthorisationListUpdatesResponse
		err error
	)
	if r.Result, err = parseResponseRoot(el, ActionGetRoamingAuthorisationListUpdates); err != nil {
		return r, err
	}
	r.Authorisations, err = parseList(el, "roamingAuthorisationInfo", ParseRoamingAuthorisationInfo)
	return r, err
}

// SetRoamingAuthorisationListRequest 上传完整白名单，空列表表示清空
type SetRoamingAuthorisationListRequest struct {
	Authorisations []RoamingAuthorisationInfo `json:"roamingAuthorisationInfoArray" validate:"dive"`
}

// NewSetRoamingAuthorisationListRequest 创建请求
func NewSetRoamingAuthorisationListRequest(authorisations ...RoamingAuthorisationInfo) (SetRoamingAuthorisationListRequest, error) {
	r := SetRoamingAuthorisationListRequest{Authorisations: authorisations}
	return r, r.Validate()
}

func (r SetRoamingAuthorisationListRequest) Action() Action  { return ActionSetRoamingAuthorisationList }
func (r SetRoamingAuthorisationListRequest) Validate() error { return validate(r.Action(), r) }

// ToXML 序列化
func (r SetRoamingAuthorisationListRequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	appendAll(el, "roamingAuthorisationInfoArray", r.Authorisations)
	return el
}

// ParseSetRoamingAuthorisationListRequest 解析请求
func ParseSetRoamingAuthorisationListRequest(el *etree.Element) (SetRoamingAuthorisationListRequest, error) {
	var r SetRoamingAuthorisationListRequest
	if err := parseRequestRoot(el, ActionSetRoamingAuthorisationList); err != nil {
		return r, err
	}
	var err error
	r.Authorisations, err = parseList(el, "roamingAuthorisationInfoArray", ParseRoamingAuthorisationInfo)
	return r, err
}

// SetRoamingAuthorisationListResponse 应答，携带被拒绝的授权
type SetRoamingAuthorisationListResponse struct {
	Result                Result                     `json:"result"`
	RefusedAuthorisations []RoamingAuthorisationInfo `json:"refusedRoamingAuthorisationInfo,omitempty"`
}

func (r SetRoamingAuthorisationListResponse) GetResult() Result { return r.Result }

func (SetRoamingAuthorisationListResponse) WithResult(result Result) SetRoamingAuthorisationListResponse {
	return SetRoamingAuthorisationListResponse{Result: result}
}

// ToXML 序列化
func (r SetRoamingAuthorisationListResponse) ToXML() *etree.Element {
	el := responseRoot(ActionSetRoamingAuthorisationList, r.Result)
	appendAll(el, "refusedRoamingAuthorisationInfo", r.RefusedAuthorisations)
	return el
}

// ParseSetRoamingAuthorisationListResponse 解析应答
func ParseSetRoamingAuthorisationListResponse(el *etree.Element) (SetRoamingAuthorisationListResponse, error) {
	var (
		r   SetRoamingAuthorisationListResponse
		err error
	)
	if r.Result, err = parseResponseRoot(el, ActionSetRoamingAuthorisationList); err != nil {
		return r, err
	}
	r.RefusedAuthorisations, err = parseList(el, "refusedRoamingAuthorisationInfo", ParseRoamingAuthorisationInfo)
	return r, err
}

// UpdateRoamingAuthorisationListRequest 增量更新白名单
type UpdateRoamingAuthorisationListRequest struct {
	Authorisations []RoamingAuthorisationInfo `json:"roamingAuthorisationInfoArray" validate:"dive"`
}

// NewUpdateRoamingAuthorisationListRequest 创建请求
func NewUpdateRoamingAuthorisationListRequest(authorisations ...RoamingAuthorisationInfo) (UpdateRoamingAuthorisationListRequest, error) {
	r := UpdateRoamingAuthorisationListRequest{Authorisations: authorisations}
	return r, r.Validate()
}

func (r UpdateRoamingAuthorisationListRequest) Action() Action  { return ActionUpdateRoamingAuthorisationList }
func (r UpdateRoamingAuthorisationListRequest) Validate() error { return validate(r.Action(), r) }

// ToXML 序列化
func (r UpdateRoamingAuthorisationListRequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	appendAll(el, "roamingAuthorisationInfoArray", r.Authorisations)
	return el
}

// ParseUpdateRoamingAuthorisationListRequest 解析请求
func ParseUpdateRoamingAuthorisationListRequest(el *etree.Element) (UpdateRoamingAuthorisationListRequest, error) {
	var r UpdateRoamingAuthorisationListRequest
	if err := parseRequestRoot(el, ActionUpdateRoamingAuthorisationList); err != nil {
		return r, err
	}
	var err error
	r.Authorisations, err = parseList(el, "roamingAuthorisationInfoArray", ParseRoamingAuthorisationInfo)
	return r, err
}

// UpdateRoamingAuthorisationListResponse 应答，携带被拒绝的授权
type UpdateRoamingAuthorisationListResponse struct {
	Result                Result                     `json:"result"`
	RefusedAuthorisations []RoamingAuthorisationInfo `json:"refusedRoamingAuthorisationInfo,omitempty"`
}

func (r UpdateRoamingAuthorisationListResponse) GetResult() Result { return r.Result }

func (UpdateRoamingAuthorisationListResponse) WithResult(result Result) UpdateRoamingAuthorisationListResponse {
	return UpdateRoamingAuthorisationListResponse{Result: result}
}

// ToXML 序列化
func (r UpdateRoamingAuthorisationListResponse) ToXML() *etree.Element {
	el := responseRoot(ActionUpdateRoamingAuthorisationList, r.Result)
	appendAll(el, "refusedRoamingAuthorisationInfo", r.RefusedAuthorisations)
	return el
}

// ParseUpdateRoamingAuthorisationListResponse 解析应答
func ParseUpdateRoamingAuthorisationListResponse(el *etree.Element) (UpdateRoamingAuthorisationListResponse, error) {
	var (
		r   UpdateRoamingAuthorisationListResponse
		err error
	)
	if r.Result, err = parseResponseRoot(el, ActionUpdateRoamingAuthorisationList); err != nil {
		return r, err
	}
	r.RefusedAuthorisations, err = parseList(el, "refusedRoamingAuthorisationInfo", ParseRoamingAuthorisationInfo)
	return r, err
}
