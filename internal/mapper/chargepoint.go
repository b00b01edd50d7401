package mapper

import (
	"strings"

	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/domain/wwcp"
)

// DefaultLanguage 未设置场站名称语言时使用
const DefaultLanguage = "deu"

var locationTypes = map[wwcp.LocationType]ochp.GeneralLocation{
	wwcp.LocationOnStreet:          ochp.GeneralLocationOnStreet,
	wwcp.LocationParkingGarage:     ochp.GeneralLocationParkingGarage,
	wwcp.LocationUndergroundGarage: ochp.GeneralLocationUndergroundGarage,
	wwcp.LocationParkingLot:        ochp.GeneralLocationParkingLot,
	wwcp.LocationPrivate:           ochp.GeneralLocationPrivate,
	wwcp.LocationOther:             ochp.GeneralLocationOther,
}

// AddressToOCHP 地址转换，国家代码统一为大写
func AddressToOCHP(a wwcp.Address) ochp.Address {
	out := ochp.Address{
		Address: a.Street,
		City:    a.City,
		ZipCode: a.PostalCode,
		Country: strings.ToUpper(a.Country),
	}
	if a.HouseNumber != "" {
		houseNumber := a.HouseNumber
		out.HouseNumber = &houseNumber
	}
	return out
}

func AddressToWWCP(a ochp.Address) wwcp.Address {
	out := wwcp.Address{
		Street:     a.Address,
		PostalCode: a.ZipCode,
		City:       a.City,
		Country:    a.Country,
	}
	if a.HouseNumber != nil {
		out.HouseNumber = *a.HouseNumber
	}
	return out
}

// LocationTypeToOCHP 未知类型归为 other
func LocationTypeToOCHP(t wwcp.LocationType) ochp.GeneralLocation {
	if l, ok := locationTypes[t]; ok {
		return l
	}
	return ochp.GeneralLocationOther
}

func LocationTypeToWWCP(l ochp.GeneralLocation) wwcp.LocationType {
	for t, candidate := range locationTypes {
		if candidate == l {
			return t
		}
	}
	return wwcp.LocationOther
}

// EVSEToChargePointInfo EVSE转为充电点静态数据
//
// 充电点类型固定为 AC，EVSE 的功率类型不参与转换。
func EVSEToChargePointInfo(evse wwcp.EVSE) ochp.ChargePointInfo {
	lang := evse.LocationLang
	if lang == "" {
		lang = DefaultLanguage
	}

	info := ochp.ChargePointInfo{
		EVSEID:           ochp.EVSEID(evse.ID),
		LocationID:       evse.LocationID,
		LocationName:     evse.LocationName,
		LocationNameLang: lang,
		Address:          AddressToOCHP(evse.Address),
		Location: ochp.GeoCoordinate{
			Latitude:  evse.Coordinates.Latitude,
			Longitude: evse.Coordinates.Longitude,
		},
		Status:          chargePointStatus(evse.Status),
		GeneralLocation: LocationTypeToOCHP(evse.LocationType),
		AuthMethods:     AuthModesToOCHP(evse.AuthModes),
		Connectors:      PlugsToOCHP(evse.PlugTypes),
		ChargePointType: ochp.ChargePointTypeAC,
	}
	if !evse.LastUpdate.IsZero() {
		ts := evse.LastUpdate.UTC()
		info.Timestamp = &ts
	}
	if evse.TimeZone != "" {
		tz := evse.TimeZone
		info.TimeZone = &tz
	}
	if evse.Phone != "" {
		phone := evse.Phone
		info.TelephoneNumber = &phone
	}
	if evse.MaxPower > 0 {
		info.Ratings = &ochp.Ratings{MaximumPower: evse.MaxPower}
	}
	return info
}

// ChargePointInfoToEVSE 充电点静态数据转为EVSE
//
// 静态数据不含实时状态，结果的状态固定为 EVSEStatusUnknown。
func ChargePointInfoToEVSE(info ochp.ChargePointInfo) wwcp.EVSE {
	evse := wwcp.EVSE{
		ID:           info.EVSEID.String(),
		LocationID:   info.LocationID,
		LocationName: info.LocationName,
		LocationLang: info.LocationNameLang,
		LocationType: LocationTypeToWWCP(info.GeneralLocation),
		Address:      AddressToWWCP(info.Address),
		Coordinates: wwcp.GeoCoordinates{
			Latitude:  info.Location.Latitude,
			Longitude: info.Location.Longitude,
		},
		PlugTypes: ConnectorsToWWCP(info.Connectors),
		PowerType: PowerTypeToWWCP(info.ChargePointType),
		Status:    wwcp.EVSEStatusUnknown,
	}
	if !info.AuthMethods.IsEmpty() {
		evse.AuthModes = []wwcp.AuthenticationMode{AuthMethodsToWWCP(info.AuthMethods)}
	}
	if info.TimeZone != nil {
		evse.TimeZone = *info.TimeZone
	}
	if info.TelephoneNumber != nil {
		evse.Phone = *info.TelephoneNumber
	}
	if info.Ratings != nil {
		evse.MaxPower = info.Ratings.MaximumPower
	}
	if info.Timestamp != nil {
		evse.LastUpdate = *info.Timestamp
	}
	return evse
}

func chargePointStatus(status wwcp.EVSEStatusType) ochp.ChargePointStatus {
	switch status {
	case wwcp.EVSEStatusUnknown, "":
		return ochp.ChargePointStatusUnknown
	case wwcp.EVSEStatusOutOfService, wwcp.EVSEStatusOffline:
		return ochp.ChargePointStatusInoperative
	default:
		return ochp.ChargePointStatusOperative
	}
}
