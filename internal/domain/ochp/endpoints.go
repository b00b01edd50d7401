package ochp

import (
	"github.com/beevik/etree"
)

// ProviderEndpoint 服务商的OCHPdirect端点
type ProviderEndpoint struct {
	ProviderID ProviderID      `json:"provider" validate:"required,ochp_provider_id"`
	Endpoint   ServiceEndpoint `json:"endpoint"`
}

// ToXML 序列化
func (p ProviderEndpoint) ToXML(name string) *etree.Element {
	el := p.Endpoint.ToXML(name)
	addText(el, "provider", p.ProviderID.String())
	return el
}

// ParseProviderEndpoint 解析
func ParseProviderEndpoint(el *etree.Element) (ProviderEndpoint, error) {
	var p ProviderEndpoint
	endpoint, err := ParseServiceEndpoint(el)
	if err != nil {
		return p, err
	}
	p.Endpoint = endpoint
	text, err := requiredText(el, "provider")
	if err != nil {
		return p, err
	}
	p.ProviderID, err = ParseProviderID(text)
	return p, err
}

// OperatorEndpoint 运营商的OCHPdirect端点，OperatorID 形如 DE*GEF
type OperatorEndpoint struct {
	OperatorID string          `json:"operator" validate:"required"`
	Endpoint   ServiceEndpoint `json:"endpoint"`
}

// ToXML 序列化
func (o OperatorEndpoint) ToXML(name string) *etree.Element {
	el := o.Endpoint.ToXML(name)
	addText(el, "operator", o.OperatorID)
	return el
}

// ParseOperatorEndpoint 解析
func ParseOperatorEndpoint(el *etree.Element) (OperatorEndpoint, error) {
	var o OperatorEndpoint
	endpoint, err := ParseServiceEndpoint(el)
	if err != nil {
		return o, err
	}
	o.Endpoint = endpoint
	o.OperatorID, err = requiredText(el, "operator")
	return o, err
}

// AddServiceEndpointsRequest 登记端点
type AddServiceEndpointsRequest struct {
	ProviderEndpoints []ProviderEndpoint `json:"providerEndpointArray,omitempty" validate:"dive"`
	OperatorEndpoints []OperatorEndpoint `json:"operatorEndpointArray,omitempty" validate:"dive"`
}

// NewAddServiceEndpointsRequest 创建请求
func NewAddServiceEndpointsRequest(providers []ProviderEndpoint, operators []OperatorEndpoint) (AddServiceEndpointsRequest, error) {
	r := AddServiceEndpointsRequest{ProviderEndpoints: providers, OperatorEndpoints: operators}
	return r, r.Validate()
}

func (r AddServiceEndpointsRequest) Action() Action  { return ActionAddServiceEndpoints }
func (r AddServiceEndpointsRequest) Validate() error { return validate(r.Action(), r) }

// ToXML 序列化
func (r AddServiceEndpointsRequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	appendAll(el, "providerEndpointArray", r.ProviderEndpoints)
	appendAll(el, "operatorEndpointArray", r.OperatorEndpoints)
	return el
}

// ParseAddServiceEndpointsRequest 解析请求
func ParseAddServiceEndpointsRequest(el *etree.Element) (AddServiceEndpointsRequest, error) {
	var (
		r   AddServiceEndpointsRequest
		err error
	)
	if err = parseRequestRoot(el, ActionAddServiceEndpoints); err != nil {
		return r, err
	}
	if r.ProviderEndpoints, err = parseList(el, "providerEndpointArray", ParseProviderEndpoint); err != nil {
		return r, err
	}
	r.OperatorEndpoints, err = parseList(el, "operatorEndpointArray", ParseOperatorEndpoint)
	return r, err
}

// AddServiceEndpointsResponse 应答
type AddServiceEndpointsResponse struct {
	Result Result `json:"result"`
}

func (r AddServiceEndpointsResponse) GetResult() Result { return r.Result }

func (AddServiceEndpointsResponse) WithResult(result Result) AddServiceEndpointsResponse {
	return AddServiceEndpointsResponse{Result: result}
}

// ToXML 序列化
func (r AddServiceEndpointsResponse) ToXML() *etree.Element {
	return responseRoot(ActionAddServiceEndpoints, r.Result)
}

// ParseAddServiceEndpointsResponse 解析应答
func ParseAddServiceEndpointsResponse(el *etree.Element) (AddServiceEndpointsResponse, error) {
	result, err := parseResponseRoot(el, ActionAddServiceEndpoints)
	return AddServiceEndpointsResponse{Result: result}, err
}

// GetServiceEndpointsRequest 下载全部端点
type GetServiceEndpointsRequest struct{}

func (r GetServiceEndpointsRequest) Action() Action  { return ActionGetServiceEndpoints }
func (r GetServiceEndpointsRequest) Validate() error { return nil }

// ToXML 序列化
func (r GetServiceEndpointsRequest) ToXML() *etree.Element {
	return requestRoot(r.Action())
}

// ParseGetServiceEndpointsRequest 解析请求
func ParseGetServiceEndpointsRequest(el *etree.Element) (GetServiceEndpointsRequest, error) {
	return GetServiceEndpointsRequest{}, parseRequestRoot(el, ActionGetServiceEndpoints)
}

// GetServiceEndpointsResponse 应答
type GetServiceEndpointsResponse struct {
	Result            Result             `json:"result"`
	ProviderEndpoints []ProviderEndpoint `json:"providerEndpointArray,omitempty"`
	OperatorEndpoints []OperatorEndpoint `json:"operatorEndpointArray,omitempty"`
}

func (r GetServiceEndpointsResponse) GetResult() Result { return r.Result }

func (GetServiceEndpointsResponse) WithResult(result Result) GetServiceEndpointsResponse {
	return GetServiceEndpointsResponse{Result: result}
}

// ToXML 序列化
func (r GetServiceEndpointsResponse) ToXML() *etree.Element {
	el := responseRoot(ActionGetServiceEndpoints, r.Result)
	appendAll(el, "providerEndpointArray", r.ProviderEndpoints)
	appendAll(el, "operatorEndpointArray", r.OperatorEndpoints)
	return el
}

// ParseGetServiceEndpointsResponse 解析应答
func ParseGetServiceEndpointsResponse(el *etree.Element) (GetServiceEndpointsResponse, error) {
	var (
		r   GetServiceEndpointsResponse
		err error
	)
	if r.Result, err = parseResponseRoot(el, ActionGetServiceEndpoints); err != nil {
		return r, err
	}
	if r.ProviderEndpoints, err = parseList(el, "providerEndpointArray", ParseProviderEndpoint); err != nil {
		return r, err
	}
	r.OperatorEndpoints, err = parseList(el, "operatorEndpointArray", ParseOperatorEndpoint)
	return r, err
}

// ReportDiscrepancyRequest 报告EVSE静态数据与实际不符
type ReportDiscrepancyRequest struct {
	EVSEID EVSEID `json:"evseId" validate:"required,ochp_evse_id"`
	Report string `json:"report" validate:"required,max=2000"`
}

// NewReportDiscrepancyRequest 创建请求
func NewReportDiscrepancyRequest(evseID EVSEID, report string) (ReportDiscrepancyRequest, error) {
	r := ReportDiscrepancyRequest{EVSEID: evseID, Report: report}
	return r, r.Validate()
}

func (r ReportDiscrepancyRequest) Action() Action  { return ActionReportDiscrepancy }
func (r ReportDiscrepancyRequest) Validate() error { return validate(r.Action(), r) }

// ToXML 序列化
func (r ReportDiscrepancyRequest) ToXML() *etree.Element {
	el := requestRoot(r.Action())
	addText(el, "evseId", r.EVSEID.String())
	addText(el, "report", r.Report)
	return el
}

// ParseReportDiscrepancyRequest 解析请求
func ParseReportDiscrepancyRequest(el *etree.Element) (ReportDiscrepancyRequest, error) {
	var r ReportDiscrepancyRequest
	if err := parseRequestRoot(el, ActionReportDiscrepancy); err != nil {
		return r, err
	}
	text, err := requiredText(el, "evseId")
	if err != nil {
		return r, err
	}
	if r.EVSEID, err = ParseEVSEID(text); err != nil {
		return r, err
	}
	r.Report, err = requiredText(el, "report")
	return r, err
}

// ReportDiscrepancyResponse 应答
type ReportDiscrepancyResponse struct {
	Result Result `json:"result"`
}

func (r ReportDiscrepancyResponse) GetResult() Result { return r.Result }

func (ReportDiscrepancyResponse) WithResult(result Result) ReportDiscrepancyResponse {
	return ReportDiscrepancyResponse{Result: result}
}

// ToXML 序列化
func (r ReportDiscrepancyResponse) ToXML() *etree.Element {
	return responseRoot(ActionReportDiscrepancy, r.Result)
}

// ParseReportDiscrepancyResponse 解析应答
func ParseReportDiscrepancyResponse(el *etree.Element) (ReportDiscrepancyResponse, error) {
	result, err := parseResponseRoot(el, ActionReportDiscrepancy)
	return ReportDiscrepancyResponse{Result: result}, err
}
