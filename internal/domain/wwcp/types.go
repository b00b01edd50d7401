package wwcp

import (
	"time"
)

// EVSEStatusType EVSE状态，单一枚举
type EVSEStatusType string

const (
	EVSEStatusAvailable    EVSEStatusType = "available"
	EVSEStatusReserved     EVSEStatusType = "reserved"
	EVSEStatusCharging     EVSEStatusType = "charging"
	EVSEStatusBlocked      EVSEStatusType = "blocked"
	EVSEStatusOutOfService EVSEStatusType = "out_of_service"
	EVSEStatusOffline      EVSEStatusType = "offline"
	EVSEStatusUnknown      EVSEStatusType = "unknown"
)

// PlugType 插头类型
type PlugType string

const (
	PlugTypeType1              PlugType = "Type1"              // SAE J1772
	PlugTypeType2Outlet        PlugType = "Type2Outlet"        // IEC 62196-2 插座
	PlugTypeType2CableAttached PlugType = "Type2CableAttached" // IEC 62196-2 随桩线缆
	PlugTypeType3A             PlugType = "Type3A"
	PlugTypeType3C             PlugType = "Type3C"
	PlugTypeCHAdeMO            PlugType = "CHAdeMO"
	PlugTypeCCS1               PlugType = "CCS1"
	PlugTypeCCS2               PlugType = "CCS2"
	PlugTypeTypeE              PlugType = "TypeE" // 法式家用
	PlugTypeTypeF              PlugType = "TypeF" // Schuko
	PlugTypeTypeG              PlugType = "TypeG"
	PlugTypeTypeJ              PlugType = "TypeJ"
	PlugTypeTeslaRoadster      PlugType = "TeslaRoadster"
	PlugTypeTeslaModelS        PlugType = "TeslaModelS"
	PlugTypeCEE16Single        PlugType = "CEE16Single" // IEC 60309 单相16A
	PlugTypeCEE16Three         PlugType = "CEE16Three"
	PlugTypeCEE32Three         PlugType = "CEE32Three"
	PlugTypeCEE64Three         PlugType = "CEE64Three"
	PlugTypeGB                 PlugType = "GB" // GB/T
	PlugTypeOther              PlugType = "Other"
)

// PowerType 功率类型
type PowerType string

const (
	PowerTypeAC PowerType = "AC"
	PowerTypeDC PowerType = "DC"
)

// AuthenticationMode 单一认证方式
type AuthenticationMode string

const (
	AuthModeUnknown       AuthenticationMode = "unknown"
	AuthModePublic        AuthenticationMode = "public"
	AuthModeLocalKey      AuthenticationMode = "local_key"
	AuthModeDirectPayment AuthenticationMode = "direct_payment"
	AuthModeRFID          AuthenticationMode = "rfid"
	AuthModePlugAndCharge AuthenticationMode = "plug_and_charge" // ISO 15118
)

// LocationType 场站类型
type LocationType string

const (
	LocationOnStreet          LocationType = "on_street"
	LocationParkingGarage     LocationType = "parking_garage"
	LocationUndergroundGarage LocationType = "underground_garage"
	LocationParkingLot        LocationType = "parking_lot"
	LocationPrivate           LocationType = "private"
	LocationOther             LocationType = "other"
)

// Address 地址，Country 为 ISO 3166-1 alpha-3
type Address struct {
	Street      string `json:"street"`
	HouseNumber string `json:"house_number,omitempty"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

// GeoCoordinates 地理坐标
type GeoCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// EVSE 充电设备
type EVSE struct {
	ID           string               `json:"id"`
	LocationID   string               `json:"location_id"`
	LocationName string               `json:"location_name"`
	LocationLang string               `json:"location_lang,omitempty"` // ISO 639-3
	LocationType LocationType         `json:"location_type"`
	Address      Address              `json:"address"`
	Coordinates  GeoCoordinates       `json:"coordinates"`
	TimeZone     string               `json:"time_zone,omitempty"`
	Phone        string               `json:"phone,omitempty"`
	PlugTypes    []PlugType           `json:"plug_types"`
	AuthModes    []AuthenticationMode `json:"auth_modes"`
	PowerType    PowerType            `json:"power_type"`
	MaxPower     float64              `json:"max_power"` // kW
	Status       EVSEStatusType       `json:"status"`
	LastUpdate   time.Time            `json:"last_update"`
}

// ChargeDetailRecord 一次充电会话的结算记录
type ChargeDetailRecord struct {
	SessionID      string    `json:"session_id"`
	EVSEID         string    `json:"evse_id"`
	AuthToken      string    `json:"auth_token"` // RFID UID
	ContractID     string    `json:"contract_id"`
	SessionStart   time.Time `json:"session_start"`
	SessionEnd     time.Time `json:"session_end"`
	ConsumedEnergy float64   `json:"consumed_energy"` // kWh
	EnergyPrice    float64   `json:"energy_price"`    // 每kWh单价
	Currency       string    `json:"currency"`
	TotalCost      *float64  `json:"total_cost,omitempty"`
	PlugType       PlugType  `json:"plug_type"`
	PowerType      PowerType `json:"power_type"`
	MaxPower       float64   `json:"max_power"` // kW
	Address        Address   `json:"address"`
	MeterID        string    `json:"meter_id,omitempty"`
}

// Duration 会话时长
func (c ChargeDetailRecord) Duration() time.Duration {
	if c.SessionEnd.Before(c.SessionStart) {
		return 0
	}
	return c.SessionEnd.Sub(c.SessionStart)
}
