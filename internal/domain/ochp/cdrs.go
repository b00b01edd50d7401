package ochp

import (
	"fmt"

	"github.com/beevik/etree"
)

// AddCDRsRequest 上传充电详单，至少包含一条
type AddCDRsRequest struct {
	CDRs []CDRInfo `json:"cdrInfoArray" validate:"required,min=1,dive"`
}

// NewAddCDRsRequest 创建请求，空集合返回 ErrInvalidArgument
func NewAddCDRsRequest(cdrs ...CDRInfo) (AddCDRsRequest, error) {
	r := AddCDRsRequest{CDRs: cdrs}
	return r, r.Validate()
}

func (r AddCDRsRequest) Action() Action  { return ActionAddCDRs }
func (r AddCDRsRequest) Validate() error { return validate(r.Action(), r) }

// ToXML 序列化
func (r AddCDRsRequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	appendAll(el, "cdrInfoArray", r.CDRs)
	return el
}

// ParseAddCDRsRequest 解析请求
func ParseAddCDRsRequest(el *etree.Element) (AddCDRsRequest, error) {
	var r AddCDRsRequest
	if err := parseRequestRoot(el, ActionAddCDRs); err != nil {
		return r, err
	}
	var err error
	if r.CDRs, err = parseList(el, "cdrInfoArray", ParseCDRInfo); err != nil {
		return r, err
	}
	if len(r.CDRs) == 0 {
		return r, fmt.Errorf("%w: %s/cdrInfoArray", ErrMissingElement, el.Tag)
	}
	return r, nil
}

// AddCDRsResponse 应答，携带不可信的详单
type AddCDRsResponse struct {
	Result          Result    `json:"result"`
	ImplausibleCDRs []CDRInfo `json:"implausibleCdrsArray,omitempty"`
}

func (r AddCDRsResponse) GetResult() Result { return r.Result }

func (AddCDRsResponse) WithResult(result Result) AddCDRsResponse {
	return AddCDRsResponse{Result: result}
}

// ToXML 序列化
func (r AddCDRsResponse) ToXML() *etree.Element {
	el := responseRoot(ActionAddCDRs, r.Result)
	appendAll(el, "implausibleCdrsArray", r.ImplausibleCDRs)
	return el
}

// ParseAddCDRsResponse 解析应答
func ParseAddCDRsResponse(el *etree.Element) (AddCDRsResponse, error) {
	var (
		r   AddCDRsResponse
		err error
	)
	if r.Result, err = parseResponseRoot(el, ActionAddCDRs); err != nil {
		return r, err
	}
	r.ImplausibleCDRs, err = parseList(el, "implausibleCdrsArray", ParseCDRInfo)
	return r, err
}

// CheckCDRsRequest 运营商按状态查询已上传的详单，Status 为空时返回全部
type CheckCDRsRequest struct {
	Status CDRStatus `json:"cdrStatus,omitempty"`
}

func (r CheckCDRsRequest) Action() Action  { return ActionCheckCDRs }
func (r CheckCDRsRequest) Validate() error { return nil }

// ToXML 序列化
func (r CheckCDRsRequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	addOptionalEnum(el, "cdrStatus", r.Status)
	return el
}

// ParseCheckCDRsRequest 解析请求
func ParseCheckCDRsRequest(el *etree.Element) (CheckCDRsRequest, error) {
	var r CheckCDRsRequest
	if err := parseRequestRoot(el, ActionCheckCDRs); err != nil {
		return r, err
	}
	var err error
	r.Status, err = optionalEnum(el, "cdrStatus", cdrStatuses...)
	return r, err
}

// CheckCDRsResponse 应答
type CheckCDRsResponse struct {
	Result Result    `json:"result"`
	CDRs   []CDRInfo `json:"cdrInfoArray,omitempty"`
}

func (r CheckCDRsResponse) GetResult() Result { return r.Result }

func (CheckCDRsResponse) WithResult(result Result) CheckCDRsResponse {
	return CheckCDRsResponse{Result: result}
}

// ToXML 序列化
func (r CheckCDRsResponse) ToXML() *etree.Element {
	el := responseRoot(ActionCheckCDRs, r.Result)
	appendAll(el, "cdrInfoArray", r.CDRs)
	return el
}

// ParseCheckCDRsResponse 解析应答
func ParseCheckCDRsResponse(el *etree.Element) (CheckCDRsResponse, error) {
	var (
		r   CheckCDRsResponse
		err error
	)
	if r.Result, err = parseResponseRoot(el, ActionCheckCDRs); err != nil {
		return r, err
	}
	r.CDRs, err = parseList(el, "cdrInfoArray", ParseCDRInfo)
	return r, err
}

// GetCDRsRequest 服务商下载详单，Status 为空时按 new 处理
type GetCDRsRequest struct {
	Status CDRStatus `json:"cdrStatus,omitempty"`
}

func (r GetCDRsRequest) Action() Action  { return ActionGetCDRs }
func (r GetCDRsRequest) Validate() error { return nil }

// EffectiveStatus 返回实际用于筛选的状态
func (r GetCDRsRequest) EffectiveStatus() CDRStatus {
	if r.Status == "" {
		return CDRStatusNew
	}
	return r.Status
}

// ToXML 序列化
func (r GetCDRsRequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	addOptionalEnum(el, "cdrStatus", r.Status)
	return el
}

// ParseGetCDRsRequest 解析请求
func ParseGetCDRsRequest(el *etree.Element) (GetCDRsRequest, error) {
	var r GetCDRsRequest
	if err := parseRequestRoot(el, ActionGetCDRs); err != nil {
		return r, err
	}
	var err error
	r.Status, err = optionalEnum(el, "cdrStatus", cdrStatuses...)
	return r, err
}

// GetCDRsResponse 应答
type GetCDRsResponse struct {
	Result Result    `json:"result"`
	CDRs   []CDRInfo `json:"cdrInfoArray,omitempty"`
}

func (r GetCDRsResponse) GetResult() Result { return r.Result }

func (GetCDRsResponse) WithResult(result Result) GetCDRsResponse {
	return GetCDRsResponse{Result: result}
}

// ToXML 序列化
func (r GetCDRsResponse) ToXML() *etree.Element {
	el := responseRoot(ActionGetCDRs, r.Result)
	appendAll(el, "cdrInfoArray", r.CDRs)
	return el
}

// ParseGetCDRsResponse 解析应答
func ParseGetCDRsResponse(el *etree.Element) (GetCDRsResponse, error) {
	var (
		r   GetCDRsResponse
		err error
	)
	if r.Result, err = parseResponseRoot(el, ActionGetCDRs); err != nil {
		return r, err
	}
	r.CDRs, err = parseList(el, "cdrInfoArray", ParseCDRInfo)
	return r, err
}

// ConfirmCDRsRequest 服务商确认或拒绝详单
type ConfirmCDRsRequest struct {
	Approved []EVSECDRPair `json:"approved,omitempty" validate:"dive"`
	Declined []EVSECDRPair `json:"declined,omitempty" validate:"dive"`
}

// NewConfirmCDRsRequest 创建请求，至少需要一条确认或拒绝
func NewConfirmCDRsRequest(approved, declined []EVSECDRPair) (ConfirmCDRsRequest, error) {
	r := ConfirmCDRsRequest{Approved: approved, Declined: declined}
	return r, r.Validate()
}

func (r ConfirmCDRsRequest) Action() Action { return ActionConfirmCDRs }

// Validate 校验请求
func (r ConfirmCDRsRequest) Validate() error {
	if len(r.Approved) == 0 && len(r.Declined) == 0 {
		return fmt.Errorf("%w: %s: neither approved nor declined CDRs given", ErrInvalidArgument, r.Action())
	}
	return validate(r.Action(), r)
}

// ToXML 序列化
func (r ConfirmCDRsRequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	appendAll(el, "approved", r.Approved)
	appendAll(el, "declined", r.Declined)
	return el
}

// ParseConfirmCDRsRequest 解析请求
func ParseConfirmCDRsRequest(el *etree.Element) (ConfirmCDRsRequest, error) {
	var (
		r   ConfirmCDRsRequest
		err error
	)
	if err = parseRequestRoot(el, ActionConfirmCDRs); err != nil {
		return r, err
	}
	if r.Approved, err = parseList(el, "approved", ParseEVSECDRPair); err != nil {
		return r, err
	}
	r.Declined, err = parseList(el, "declined", ParseEVSECDRPair)
	return r, err
}

// ConfirmCDRsResponse 应答
type ConfirmCDRsResponse struct {
	Result Result `json:"result"`
}

func (r ConfirmCDRsResponse) GetResult() Result { return r.Result }

func (ConfirmCDRsResponse) WithResult(result Result) ConfirmCDRsResponse {
	return ConfirmCDRsResponse{Result: result}
}

// ToXML 序列化
func (r ConfirmCDRsResponse) ToXML() *etree.Element {
	return responseRoot(ActionConfirmCDRs, r.Result)
}

// ParseConfirmCDRsResponse 解析应答
func ParseConfirmCDRsResponse(el *etree.Element) (ConfirmCDRsResponse, error) {
	result, err := parseResponseRoot(el, ActionConfirmCDRs)
	return ConfirmCDRsResponse{Result: result}, err
}
