package message

import (
	"fmt"
	"time"

	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/domain/validation"
	"github.com/charging-platform/ochp-roaming/internal/domain/wwcp"
	"github.com/charging-platform/ochp-roaming/internal/mapper"
)

// StatusCommand 从 Kafka 消费的EVSE状态
//
// 可以直接给出主状态与子状态，也可以给出单一状态 Status，两者同时存在时以 Status 为准。
type StatusCommand struct {
	EVSEID string              `json:"evseId"`
	Major  string              `json:"major,omitempty"`
	Minor  string              `json:"minor,omitempty"`
	Status wwcp.EVSEStatusType `json:"status,omitempty"`
	TTL    *time.Time          `json:"ttl,omitempty"`
}

// ToEVSEStatus 转换并校验
func (c StatusCommand) ToEVSEStatus() (ochp.EVSEStatus, error) {
	var status ochp.EVSEStatus
	if c.Status != "" {
		status = mapper.EVSEStatusToOCHP(c.EVSEID, c.Status, c.TTL)
	} else {
		major, err := ochp.ParseMajorStatus(c.Major)
		if err != nil {
			return status, err
		}
		minor, err := ochp.ParseMinorStatus(c.Minor)
		if err != nil {
			return status, err
		}
		status = ochp.EVSEStatus{EVSEID: ochp.EVSEID(c.EVSEID), Major: major, Minor: minor, TTL: c.TTL}
	}

	if status.TTL != nil {
		ttl := status.TTL.UTC()
		status.TTL = &ttl
	}
	if err := validation.Default().ValidateStruct(status); err != nil {
		return status, fmt.Errorf("%w: %v", ochp.ErrInvalidValue, err)
	}
	return status, nil
}
