package ochp

import (
	"time"
)

// Address 地址
type Address struct {
	HouseNumber *string `json:"houseNumber,omitempty"`
	Address     string  `json:"address" validate:"required"`
	City        string  `json:"city" validate:"required"`
	ZipCode     string  `json:"zipCode" validate:"required"`
	Country     string  `json:"country" validate:"required,ochp_country"`
}

// GeoCoordinate 地理坐标
type GeoCoordinate struct {
	Latitude  float64 `json:"lat" validate:"min=-90,max=90"`
	Longitude float64 `json:"lon" validate:"min=-180,max=180"`
}

// ConnectorType 连接器
type ConnectorType struct {
	Standard ConnectorStandard `json:"connectorStandard" validate:"required"`
	Format   ConnectorFormat   `json:"connectorFormat" validate:"required"`
}

// Ratings 功率参数
type Ratings struct {
	MaximumPower    float64  `json:"maximumPower"`
	GuaranteedPower *float64 `json:"guaranteedPower,omitempty"`
	NominalVoltage  *int     `json:"nominalVoltage,omitempty"`
}

// ChargePointSchedule 计划状态
type ChargePointSchedule struct {
	StartDate time.Time         `json:"startDate"`
	EndDate   *time.Time        `json:"endDate,omitempty"`
	Status    ChargePointStatus `json:"status" validate:"required"`
}

// ChargePointInfo 充电点静态数据
type ChargePointInfo struct {
	EVSEID              EVSEID                `json:"evseId" validate:"required,ochp_evse_id"`
	LocationID          string                `json:"locationId" validate:"required,max=15"`
	Timestamp           *time.Time            `json:"timestamp,omitempty"`
	LocationName        string                `json:"locationName" validate:"required,max=100"`
	LocationNameLang    string                `json:"locationNameLang" validate:"required,ochp_lang"`
	Address             Address               `json:"chargePointAddress"`
	Location            GeoCoordinate         `json:"chargePointLocation"`
	TimeZone            *string               `json:"timeZone,omitempty"`
	Status              ChargePointStatus     `json:"status,omitempty"`
	StatusSchedule      []ChargePointSchedule `json:"statusSchedule,omitempty" validate:"dive"`
	TelephoneNumber     *string               `json:"telephoneNumber,omitempty"`
	GeneralLocation     GeneralLocation       `json:"location" validate:"required"`
	FloorLevel          *string               `json:"floorLevel,omitempty"`
	ParkingSlotNumber   *string               `json:"parkingSlotNumber,omitempty"`
	ParkingRestrictions []ParkingRestriction  `json:"parkingRestriction,omitempty"`
	AuthMethods         AuthMethods           `json:"authMethods"`
	Connectors          []ConnectorType       `json:"connectors" validate:"required,min=1,dive"`
	ChargePointType     ChargePointType       `json:"chargePointType" validate:"required"`
	Ratings             *Ratings              `json:"ratings,omitempty"`
	UserInterfaceLang   []string              `json:"userInterfaceLang,omitempty" validate:"dive,ochp_lang"`
	MaxReservation      *float64              `json:"maxReservation,omitempty"`
}

// Equal 按值相等
func (c ChargePointInfo) Equal(other ChargePointInfo) bool {
	return semanticEqual(c, other)
}

// EVSEStatus EVSE实时状态
type EVSEStatus struct {
	EVSEID EVSEID      `json:"evseId" validate:"required,ochp_evse_id"`
	Major  MajorStatus `json:"majorStatus" validate:"required"`
	Minor  MinorStatus `json:"minorStatus,omitempty"`
	TTL    *time.Time  `json:"ttl,omitempty"`
}

// ParkingStatus 停车位实时状态
type ParkingStatus struct {
	ParkingID ParkingID   `json:"parkingId" validate:"required,ochp_parking_id"`
	Status    MajorStatus `json:"status" validate:"required"`
	TTL       *time.Time  `json:"ttl,omitempty"`
}

// RoamingAuthorisationInfo 漫游授权白名单条目
type RoamingAuthorisationInfo struct {
	EMTID         EMTID      `json:"emtId"`
	ContractID    ContractID `json:"contractId" validate:"required,ochp_contract_id"`
	PrintedNumber *string    `json:"printedNumber,omitempty"`
	ExpiryDate    time.Time  `json:"expiryDate" validate:"required"`
}

// IsExpired 判断授权在给定时间是否已过期
func (r RoamingAuthorisationInfo) IsExpired(now time.Time) bool {
	return !r.ExpiryDate.After(now)
}

// Equal 按值相等
func (r RoamingAuthorisationInfo) Equal(other RoamingAuthorisationInfo) bool {
	return semanticEqual(r, other)
}

// CDRPeriod 计费时段，顺序即时间顺序
type CDRPeriod struct {
	StartDateTime time.Time   `json:"startDateTime"`
	EndDateTime   time.Time   `json:"endDateTime"`
	BillingItem   BillingItem `json:"billingItem" validate:"required"`
	BillingValue  float64     `json:"billingValue"`
	ItemPrice     float64     `json:"itemPrice"`
	PeriodCost    *float64    `json:"periodCost,omitempty"`
	TaxRate       *float64    `json:"taxrate,omitempty"`
}

// CDRInfo 充电详单
type CDRInfo struct {
	CDRID           CDRID           `json:"cdrId" validate:"required,ochp_cdr_id"`
	EVSEID          EVSEID          `json:"evseId" validate:"required,ochp_evse_id"`
	EMTID           EMTID           `json:"emtId"`
	ContractID      ContractID      `json:"contractId" validate:"required,ochp_contract_id"`
	Status          CDRStatus       `json:"status" validate:"required"`
	StartDateTime   time.Time       `json:"startDateTime" validate:"required"`
	EndDateTime     time.Time       `json:"endDateTime" validate:"required"`
	Duration        *string         `json:"duration,omitempty"`
	HouseNumber     *string         `json:"houseNumber,omitempty"`
	Address         *string         `json:"address,omitempty"`
	ZipCode         *string         `json:"zipCode,omitempty"`
	City            *string         `json:"city,omitempty"`
	Country         string          `json:"country" validate:"required,ochp_country"`
	ChargePointType ChargePointType `json:"chargePointType" validate:"required"`
	Connector       ConnectorType   `json:"connectorType"`
	MaxSocketPower  float64         `json:"maxSocketPower"`
	ProductType     *string         `json:"productType,omitempty"`
	MeterID         *string         `json:"meterId,omitempty"`
	ChargingPeriods []CDRPeriod     `json:"chargingPeriods" validate:"required,min=1,dive"`
	TotalCost       *float64        `json:"totalCost,omitempty"`
	Currency        string          `json:"currency" validate:"required,len=3"`
}

// Equal 按值相等
func (c CDRInfo) Equal(other CDRInfo) bool {
	return semanticEqual(c, other)
}

// EVSECDRPair 详单确认时引用的详单标识与EVSE标识
type EVSECDRPair struct {
	CDRID  CDRID  `json:"cdrId" validate:"required,ochp_cdr_id"`
	EVSEID EVSEID `json:"evseId" validate:"required,ochp_evse_id"`
}

// PriceComponent 价格组成
type PriceComponent struct {
	BillingItem BillingItem `json:"billingItem" validate:"required"`
	ItemPrice   float64     `json:"itemPrice"`
	StepSize    int         `json:"stepSize"`
}

// TariffRestriction 资费生效条件
type TariffRestriction struct {
	StartDateTime *time.Time `json:"startDateTime,omitempty"`
	EndDateTime   *time.Time `json:"endDateTime,omitempty"`
	MinEnergy     *float64   `json:"minEnergy,omitempty"`
	MaxEnergy     *float64   `json:"maxEnergy,omitempty"`
	MinPower      *float64   `json:"minPower,omitempty"`
	MaxPower      *float64   `json:"maxPower,omitempty"`
	MinDuration   *int       `json:"minDuration,omitempty"`
	MaxDuration   *int       `json:"maxDuration,omitempty"`
}

// TariffElement 资费元素
type TariffElement struct {
	PriceComponents []PriceComponent   `json:"priceComponent" validate:"required,min=1,dive"`
	Restriction     *TariffRestriction `json:"tariffRestriction,omitempty"`
}

// IndividualTariff 面向特定服务商的资费
type IndividualTariff struct {
	Elements   []TariffElement `json:"tariffElement" validate:"required,min=1,dive"`
	Recipients []ProviderID    `json:"recipient,omitempty" validate:"dive,ochp_provider_id"`
	Currency   string          `json:"currency" validate:"required,len=3"`
}

// TariffInfo 资费
type TariffInfo struct {
	TariffID          TariffID           `json:"tariffId" validate:"required,ochp_tariff_id"`
	IndividualTariffs []IndividualTariff `json:"individualTariff" validate:"required,min=1,dive"`
}

// Equal 按值相等
func (t TariffInfo) Equal(other TariffInfo) bool {
	return semanticEqual(t, other)
}

// ServiceEndpoint 服务端点
type ServiceEndpoint struct {
	URL          string       `json:"url" validate:"required,url"`
	NamespaceURL string       `json:"namespaceUrl" validate:"required"`
	AccessToken  string       `json:"accessToken" validate:"required"`
	ValidUntil   time.Time    `json:"validUntil" validate:"required"`
	Whitelist    string       `json:"whitelist"`
	Blacklist    *string      `json:"blacklist,omitempty"`
	Type         EndpointType `json:"type,omitempty"`
}
