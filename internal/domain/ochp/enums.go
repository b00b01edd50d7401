package ochp

// MajorStatus EVSE主状态
type MajorStatus string

const (
	MajorStatusAvailable    MajorStatus = "available"
	MajorStatusNotAvailable MajorStatus = "not-available"
	MajorStatusUnknown      MajorStatus = "unknown"
)

var majorStatuses = []MajorStatus{MajorStatusAvailable, MajorStatusNotAvailable, MajorStatusUnknown}

// MinorStatus EVSE子状态，空字符串表示未设置
type MinorStatus string

const (
	MinorStatusAvailable  MinorStatus = "available"
	MinorStatusReserved   MinorStatus = "reserved"
	MinorStatusCharging   MinorStatus = "charging"
	MinorStatusBlocked    MinorStatus = "blocked"
	MinorStatusOutOfOrder MinorStatus = "outoforder"
)

var minorStatuses = []MinorStatus{MinorStatusAvailable, MinorStatusReserved, MinorStatusCharging, MinorStatusBlocked, MinorStatusOutOfOrder}

// ParseMajorStatus 解析主状态
func ParseMajorStatus(text string) (MajorStatus, error) {
	return parseEnum("majorStatus", text, majorStatuses...)
}

// ParseMinorStatus 解析子状态，空字符串表示未设置
func ParseMinorStatus(text string) (MinorStatus, error) {
	if text == "" {
		return "", nil
	}
	return parseEnum("minorStatus", text, minorStatuses...)
}

// ChargePointStatus 充电点运营状态
type ChargePointStatus string

const (
	ChargePointStatusUnknown     ChargePointStatus = "Unknown"
	ChargePointStatusOperative   ChargePointStatus = "Operative"
	ChargePointStatusInoperative ChargePointStatus = "Inoperative"
	ChargePointStatusPlanned     ChargePointStatus = "Planned"
	ChargePointStatusClosed      ChargePointStatus = "Closed"
)

var chargePointStatuses = []ChargePointStatus{
	ChargePointStatusUnknown, ChargePointStatusOperative, ChargePointStatusInoperative,
	ChargePointStatusPlanned, ChargePointStatusClosed,
}

// GeneralLocation 位置类型
type GeneralLocation string

const (
	GeneralLocationOnStreet          GeneralLocation = "on-street"
	GeneralLocationParkingGarage     GeneralLocation = "parking-garage"
	GeneralLocationUndergroundGarage GeneralLocation = "underground-garage"
	GeneralLocationParkingLot        GeneralLocation = "parking-lot"
	GeneralLocationPrivate           GeneralLocation = "private"
	GeneralLocationOther             GeneralLocation = "other"
)

var generalLocations = []GeneralLocation{
	GeneralLocationOnStreet, GeneralLocationParkingGarage, GeneralLocationUndergroundGarage,
	GeneralLocationParkingLot, GeneralLocationPrivate, GeneralLocationOther,
}

// ParkingRestriction 停车限制
type ParkingRestriction string

const (
	ParkingRestrictionEVOnly      ParkingRestriction = "evonly"
	ParkingRestrictionPlugged     ParkingRestriction = "plugged"
	ParkingRestrictionDisabled    ParkingRestriction = "disabled"
	ParkingRestrictionCustomers   ParkingRestriction = "customers"
	ParkingRestrictionMotorcycles ParkingRestriction = "motorcycles"
	ParkingRestrictionCarsharing  ParkingRestriction = "carsharing"
)

var parkingRestrictions = []ParkingRestriction{
	ParkingRestrictionEVOnly, ParkingRestrictionPlugged, ParkingRestrictionDisabled,
	ParkingRestrictionCustomers, ParkingRestrictionMotorcycles, ParkingRestrictionCarsharing,
}

// ChargePointType 交流/直流
type ChargePointType string

const (
	ChargePointTypeAC ChargePointType = "AC"
	ChargePointTypeDC ChargePointType = "DC"
)

var chargePointTypes = []ChargePointType{ChargePointTypeAC, ChargePointTypeDC}

// ConnectorStandard 插头标准
type ConnectorStandard string

const (
	ConnectorStandardChademo            ConnectorStandard = "CHADEMO"
	ConnectorStandardIEC62196T1         ConnectorStandard = "IEC_62196_T1"
	ConnectorStandardIEC62196T1Combo    ConnectorStandard = "IEC_62196_T1_COMBO"
	ConnectorStandardIEC62196T2         ConnectorStandard = "IEC_62196_T2"
	ConnectorStandardIEC62196T2Combo    ConnectorStandard = "IEC_62196_T2_COMBO"
	ConnectorStandardIEC62196T3A        ConnectorStandard = "IEC_62196_T3A"
	ConnectorStandardIEC62196T3C        ConnectorStandard = "IEC_62196_T3C"
	ConnectorStandardDomesticE          ConnectorStandard = "DOMESTIC_E"
	ConnectorStandardDomesticF          ConnectorStandard = "DOMESTIC_F"
	ConnectorStandardDomesticG          ConnectorStandard = "DOMESTIC_G"
	ConnectorStandardDomesticJ          ConnectorStandard = "DOMESTIC_J"
	ConnectorStandardTeslaR             ConnectorStandard = "TESLA_R"
	ConnectorStandardTeslaS             ConnectorStandard = "TESLA_S"
	ConnectorStandardIEC60309Single16   ConnectorStandard = "IEC_60309_2_single_16"
	ConnectorStandardIEC60309Three16    ConnectorStandard = "IEC_60309_2_three_16"
	ConnectorStandardIEC60309Three32    ConnectorStandard = "IEC_60309_2_three_32"
	ConnectorStandardIEC60309Three64    ConnectorStandard = "IEC_60309_2_three_64"
)

var connectorStandards = []ConnectorStandard{
	ConnectorStandardChademo, ConnectorStandardIEC62196T1, ConnectorStandardIEC62196T1Combo,
	ConnectorStandardIEC62196T2, ConnectorStandardIEC62196T2Combo, ConnectorStandardIEC62196T3A,
	ConnectorStandardIEC62196T3C, ConnectorStandardDomesticE, ConnectorStandardDomesticF,
	ConnectorStandardDomesticG, ConnectorStandardDomesticJ, ConnectorStandardTeslaR,
	ConnectorStandardTeslaS, ConnectorStandardIEC60309Single16, ConnectorStandardIEC60309Three16,
	ConnectorStandardIEC60309Three32, ConnectorStandardIEC60309Three64,
}

// ConnectorFormat 插座或线缆
type ConnectorFormat string

const (
	ConnectorFormatSocket ConnectorFormat = "Socket"
	ConnectorFormatCable  ConnectorFormat = "Cable"
)

var connectorFormats = []ConnectorFormat{ConnectorFormatSocket, ConnectorFormatCable}

// CDRStatus 详单状态
type CDRStatus string

const (
	CDRStatusNew      CDRStatus = "new"
	CDRStatusAccepted CDRStatus = "accepted"
	CDRStatusRejected CDRStatus = "rejected"
	CDRStatusApproved CDRStatus = "approved"
	CDRStatusDeclined CDRStatus = "declined"
)

var cdrStatuses = []CDRStatus{CDRStatusNew, CDRStatusAccepted, CDRStatusRejected, CDRStatusApproved, CDRStatusDeclined}

// BillingItem 计费项
type BillingItem string

const (
	BillingItemParkingTime     BillingItem = "parkingtime"
	BillingItemUsageTime       BillingItem = "usagetime"
	BillingItemEnergy          BillingItem = "energy"
	BillingItemPower           BillingItem = "power"
	BillingItemServiceFee      BillingItem = "serviceFee"
	BillingItemReservation     BillingItem = "reservation"
	BillingItemReservationTime BillingItem = "reservationtime"
)

var billingItems = []BillingItem{
	BillingItemParkingTime, BillingItemUsageTime, BillingItemEnergy, BillingItemPower,
	BillingItemServiceFee, BillingItemReservation, BillingItemReservationTime,
}

// DirectOperation OCHPdirect会话操作
type DirectOperation string

const (
	DirectOperationStart  DirectOperation = "start"
	DirectOperationChange DirectOperation = "change"
	DirectOperationEnd    DirectOperation = "end"
)

var directOperations = []DirectOperation{DirectOperationStart, DirectOperationChange, DirectOperationEnd}

// EndpointType 服务端点协议类型
type EndpointType string

const (
	EndpointTypeOCHP       EndpointType = "ochp"
	EndpointTypeOCHPDirect EndpointType = "ochpdirect"
	EndpointTypeOther      EndpointType = "other"
)

var endpointTypes = []EndpointType{EndpointTypeOCHP, EndpointTypeOCHPDirect, EndpointTypeOther}

var tokenRepresentations = []TokenRepresentation{TokenRepresentationPlain, TokenRepresentationSHA160, TokenRepresentationSHA256}

var tokenTypes = []TokenType{TokenTypeRFID, TokenTypeRemote, TokenType15118}

var tokenSubTypes = []TokenSubType{TokenSubTypeMifareClassic, TokenSubTypeMifareDESFire, TokenSubTypeCalypso}
