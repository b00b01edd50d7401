package events

// EventType 事件类型
type EventType string

const (
	// 客户端/服务端调用生命周期事件，按此顺序触发
	EventTypeRequest      EventType = "ochp.request"
	EventTypeSOAPRequest  EventType = "ochp.soap_request"
	EventTypeSOAPResponse EventType = "ochp.soap_response"
	EventTypeResponse     EventType = "ochp.response"

	// 清算中心数据变更事件
	EventTypeChargePointsReplaced   EventType = "clearing_house.charge_points_replaced"
	EventTypeChargePointsUpdated    EventType = "clearing_house.charge_points_updated"
	EventTypeStatusUpdated          EventType = "clearing_house.status_updated"
	EventTypeTariffsUpdated         EventType = "clearing_house.tariffs_updated"
	EventTypeAuthorisationsReplaced EventType = "clearing_house.authorisations_replaced"
	EventTypeAuthorisationsUpdated  EventType = "clearing_house.authorisations_updated"
	EventTypeCDRsAdded              EventType = "clearing_house.cdrs_added"
	EventTypeCDRsConfirmed          EventType = "clearing_house.cdrs_confirmed"
	EventTypeEndpointsAdded         EventType = "clearing_house.endpoints_added"
	EventTypeDiscrepancyReported    EventType = "clearing_house.discrepancy_reported"
)

// EventSeverity 事件严重程度
type EventSeverity string

const (
	EventSeverityInfo    EventSeverity = "info"
	EventSeverityWarning EventSeverity = "warning"
	EventSeverityError   EventSeverity = "error"
)

// Role 事件发出方在一次调用中的角色
type Role string

const (
	RoleClient Role = "client"
	RoleServer Role = "server"
)

// Metadata 事件元数据
type Metadata struct {
	Source          string            `json:"source"`                      // 事件源标识
	Role            Role              `json:"role,omitempty"`              // 客户端或服务端
	ProtocolVersion string            `json:"protocol_version"`            // 协议版本
	EventTrackingID string            `json:"event_tracking_id,omitempty"` // 跨事件关联ID
	Custom          map[string]string `json:"custom,omitempty"`            // 自定义字段
}
