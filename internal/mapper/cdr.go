package mapper

import (
	"fmt"
	"time"

	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/domain/wwcp"
)

// CDRToOCHP 结算记录转为协议详单，状态为 new，能量计为一个计费时段
func CDRToOCHP(cdr wwcp.ChargeDetailRecord) (ochp.CDRInfo, error) {
	if cdr.SessionID == "" {
		return ochp.CDRInfo{}, fmt.Errorf("%w: session id is empty", ochp.ErrInvalidArgument)
	}
	if cdr.SessionEnd.Before(cdr.SessionStart) {
		return ochp.CDRInfo{}, fmt.Errorf("%w: session %s ends before it starts", ochp.ErrInvalidArgument, cdr.SessionID)
	}
	emtID, err := ochp.NewEMTID(cdr.AuthToken, ochp.TokenTypeRFID)
	if err != nil {
		return ochp.CDRInfo{}, err
	}
	connector, ok := PlugToOCHP(cdr.PlugType)
	if !ok {
		return ochp.CDRInfo{}, fmt.Errorf("%w: plug type %q has no OCHP connector", ochp.ErrInvalidArgument, cdr.PlugType)
	}

	start, end := cdr.SessionStart.UTC(), cdr.SessionEnd.UTC()
	duration := FormatDuration(cdr.Duration())
	address := AddressToOCHP(cdr.Address)

	info := ochp.CDRInfo{
		CDRID:           ochp.CDRID(cdr.SessionID),
		EVSEID:          ochp.EVSEID(cdr.EVSEID),
		EMTID:           emtID,
		ContractID:      ochp.ContractID(cdr.ContractID),
		Status:          ochp.CDRStatusNew,
		StartDateTime:   start,
		EndDateTime:     end,
		Duration:        &duration,
		HouseNumber:     address.HouseNumber,
		Address:         optional(address.Address),
		ZipCode:         optional(address.ZipCode),
		City:            optional(address.City),
		Country:         address.Country,
		ChargePointType: PowerTypeToOCHP(cdr.PowerType),
		Connector:       connector,
		MaxSocketPower:  cdr.MaxPower,
		MeterID:         optional(cdr.MeterID),
		ChargingPeriods: []ochp.CDRPeriod{{
			StartDateTime: start,
			EndDateTime:   end,
			BillingItem:   ochp.BillingItemEnergy,
			BillingValue:  cdr.ConsumedEnergy,
			ItemPrice:     cdr.EnergyPrice,
		}},
		TotalCost: cdr.TotalCost,
		Currency:  cdr.Currency,
	}
	if cdr.TotalCost != nil {
		cost := *cdr.TotalCost
		info.ChargingPeriods[0].PeriodCost = &cost
	}
	return info, nil
}

// FormatDuration 以 HHH:MM:SS 表示时长
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int64(d / time.Second)
	return fmt.Sprintf("%03d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
