package ochp

import "strings"

// OCHP协议常量
const (
	// Version 协议版本
	Version = "1.4"

	// Namespace OCHP XML命名空间
	Namespace = "http://ochp.eu/1.4"

	// Prefix 序列化时使用的命名空间前缀
	Prefix = "OCHP"

	// ServicePath 清算中心服务路径
	ServicePath = "/service/ochp/v1.4"

	// DirectServicePath OCHPdirect服务路径
	DirectServicePath = "/service/ochp/v1.4/direct"

	// NothingToUpload 空集合上传时的本地应答描述
	NothingToUpload = "Nothing to upload!"
)

// Action SOAP动作
type Action string

// OCHP (CPO -> 清算中心)
const (
	ActionSetChargePointList                 Action = "SetChargePointListRequest"
	ActionUpdateChargePointList              Action = "UpdateChargePointListRequest"
	ActionUpdateStatus                       Action = "UpdateStatusRequest"
	ActionUpdateTariffs                      Action = "UpdateTariffsRequest"
	ActionGetSingleRoamingAuthorisation      Action = "GetSingleRoamingAuthorisationRequest"
	ActionGetRoamingAuthorisationList        Action = "GetRoamingAuthorisationListRequest"
	ActionGetRoamingAuthorisationListUpdates Action = "GetRoamingAuthorisationListUpdatesRequest"
	ActionAddCDRs                            Action = "AddCDRsRequest"
	ActionCheckCDRs                          Action = "CheckCDRsRequest"
	ActionAddServiceEndpoints                Action = "AddServiceEndpointsRequest"
	ActionGetServiceEndpoints                Action = "GetServiceEndpointsRequest"
)

// OCHP (EMP -> 清算中心)
const (
	ActionSetRoamingAuthorisationList    Action = "SetRoamingAuthorisationListRequest"
	ActionUpdateRoamingAuthorisationList Action = "UpdateRoamingAuthorisationListRequest"
	ActionGetChargePointList             Action = "GetChargePointListRequest"
	ActionGetChargePointListUpdates      Action = "GetChargePointListUpdatesRequest"
	ActionGetStatus                      Action = "GetStatusRequest"
	ActionGetCDRs                        Action = "GetCDRsRequest"
	ActionConfirmCDRs                    Action = "ConfirmCDRsRequest"
	ActionGetTariffUpdates               Action = "GetTariffUpdatesRequest"
	ActionReportDiscrepancy              Action = "ReportDiscrepancyRequest"
)

// OCHPdirect
const (
	ActionInformProvider Action = "InformProviderRequest"
	ActionSelectEVSE     Action = "SelectEvseRequest"
	ActionControlEVSE    Action = "ControlEvseRequest"
	ActionReleaseEVSE    Action = "ReleaseEvseRequest"
	ActionGetEVSEStatus  Action = "GetEvseStatusRequest"
)

// ResponseName 应答根元素名称
func (a Action) ResponseName() string {
	return strings.TrimSuffix(string(a), "Request") + "Response"
}

// String 实现fmt.Stringer
func (a Action) String() string {
	return string(a)
}
