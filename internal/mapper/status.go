package mapper

import (
	"time"

	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/domain/wwcp"
)

// StatusToOCHP 单一状态拆分为主状态与子状态
func StatusToOCHP(status wwcp.EVSEStatusType) (ochp.MajorStatus, ochp.MinorStatus) {
	switch status {
	case wwcp.EVSEStatusAvailable:
		return ochp.MajorStatusAvailable, ochp.MinorStatusAvailable
	case wwcp.EVSEStatusReserved:
		return ochp.MajorStatusNotAvailable, ochp.MinorStatusReserved
	case wwcp.EVSEStatusCharging:
		return ochp.MajorStatusNotAvailable, ochp.MinorStatusCharging
	case wwcp.EVSEStatusBlocked:
		return ochp.MajorStatusNotAvailable, ochp.MinorStatusBlocked
	case wwcp.EVSEStatusOutOfService:
		return ochp.MajorStatusNotAvailable, ochp.MinorStatusOutOfOrder
	default:
		// 离线与未知都没有子状态
		return ochp.MajorStatusUnknown, ""
	}
}

// StatusToWWCP 主状态与子状态合并为单一状态，子状态优先
func StatusToWWCP(major ochp.MajorStatus, minor ochp.MinorStatus) wwcp.EVSEStatusType {
	switch minor {
	case ochp.MinorStatusAvailable:
		return wwcp.EVSEStatusAvailable
	case ochp.MinorStatusReserved:
		return wwcp.EVSEStatusReserved
	case ochp.MinorStatusCharging:
		return wwcp.EVSEStatusCharging
	case ochp.MinorStatusBlocked:
		return wwcp.EVSEStatusBlocked
	case ochp.MinorStatusOutOfOrder:
		return wwcp.EVSEStatusOutOfService
	}

	switch major {
	case ochp.MajorStatusAvailable:
		return wwcp.EVSEStatusAvailable
	case ochp.MajorStatusNotAvailable:
		return wwcp.EVSEStatusOutOfService
	default:
		return wwcp.EVSEStatusUnknown
	}
}

// EVSEStatusToOCHP 生成上传用的EVSE状态，ttl 可以为 nil
func EVSEStatusToOCHP(evseID string, status wwcp.EVSEStatusType, ttl *time.Time) ochp.EVSEStatus {
	major, minor := StatusToOCHP(status)
	return ochp.EVSEStatus{
		EVSEID: ochp.EVSEID(evseID),
		Major:  major,
		Minor:  minor,
		TTL:    ttl,
	}
}

// EVSEStatusToWWCP 协议状态转为单一状态
func EVSEStatusToWWCP(status ochp.EVSEStatus) (string, wwcp.EVSEStatusType) {
	return status.EVSEID.String(), StatusToWWCP(status.Major, status.Minor)
}
