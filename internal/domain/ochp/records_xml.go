package ochp

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

// ToXML 序列化地址
func (a Address) ToXML(name string) *etree.Element {
	el := newElement(name)
	addOptionalText(el, "houseNumber", a.HouseNumber)
	addText(el, "address", a.Address)
	addText(el, "city", a.City)
	addText(el, "zipCode", a.ZipCode)
	addText(el, "country", a.Country)
	return el
}

// ParseAddress 解析地址
func ParseAddress(el *etree.Element) (Address, error) {
	var (
		a   Address
		err error
	)
	a.HouseNumber = optionalText(el, "houseNumber")
	if a.Address, err = requiredText(el, "address"); err != nil {
		return a, err
	}
	if a.City, err = requiredText(el, "city"); err != nil {
		return a, err
	}
	if a.ZipCode, err = requiredText(el, "zipCode"); err != nil {
		return a, err
	}
	if a.Country, err = requiredText(el, "country"); err != nil {
		return a, err
	}
	return a, nil
}

// ToXML 坐标以属性形式输出
func (g GeoCoordinate) ToXML(name string) *etree.Element {
	el := newElement(name)
	el.CreateAttr("lat", formatFloat(g.Latitude))
	el.CreateAttr("lon", formatFloat(g.Longitude))
	return el
}

// ParseGeoCoordinate 解析坐标
func ParseGeoCoordinate(el *etree.Element) (GeoCoordinate, error) {
	var g GeoCoordinate
	for _, attr := range []struct {
		key    string
		target *float64
	}{{"lat", &g.Latitude}, {"lon", &g.Longitude}} {
		value := el.SelectAttrValue(attr.key, "")
		if value == "" {
			return g, fmt.Errorf("%w: %s@%s", ErrMissingElement, el.Tag, attr.key)
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return g, fmt.Errorf("%w: %s@%s '%s'", ErrInvalidValue, el.Tag, attr.key, value)
		}
		*attr.target = f
	}
	return g, nil
}

// ToXML 序列化连接器
func (c ConnectorType) ToXML(name string) *etree.Element {
	el := newElement(name)
	addText(el, "connectorStandard", string(c.Standard))
	addText(el, "connectorFormat", string(c.Format))
	return el
}

// ParseConnectorType 解析连接器
func ParseConnectorType(el *etree.Element) (ConnectorType, error) {
	var (
		c   ConnectorType
		err error
	)
	if c.Standard, err = requiredEnum(el, "connectorStandard", connectorStandards...); err != nil {
		return c, err
	}
	if c.Format, err = requiredEnum(el, "connectorFormat", connectorFormats...); err != nil {
		return c, err
	}
	return c, nil
}

// ToXML 序列化功率参数
func (r Ratings) ToXML(name string) *etree.Element {
	el := newElement(name)
	addFloat(el, "maximumPower", r.MaximumPower)
	addOptionalFloat(el, "guaranteedPower", r.GuaranteedPower)
	addOptionalInt(el, "nominalVoltage", r.NominalVoltage)
	return el
}

// ParseRatings 解析功率参数
func ParseRatings(el *etree.Element) (Ratings, error) {
	var (
		r   Ratings
		err error
	)
	if r.MaximumPower, err = requiredFloat(el, "maximumPower"); err != nil {
		return r, err
	}
	if r.GuaranteedPower, err = optionalFloat(el, "guaranteedPower"); err != nil {
		return r, err
	}
	if r.NominalVoltage, err = optionalInt(el, "nominalVoltage"); err != nil {
		return r, err
	}
	return r, nil
}

// ToXML 序列化计划状态
func (s ChargePointSchedule) ToXML(name string) *etree.Element {
	el := newElement(name)
	addDateTime(el, "startDate", s.StartDate)
	addOptionalDateTime(el, "endDate", s.EndDate)
	addText(el, "status", string(s.Status))
	return el
}

// ParseChargePointSchedule 解析计划状态
func ParseChargePointSchedule(el *etree.Element) (ChargePointSchedule, error) {
	var (
		s   ChargePointSchedule
		err error
	)
	if s.StartDate, err = requiredDateTime(el, "startDate"); err != nil {
		return s, err
	}
	if s.EndDate, err = optionalDateTime(el, "endDate"); err != nil {
		return s, err
	}
	if s.Status, err = requiredEnum(el, "status", chargePointStatuses...); err != nil {
		return s, err
	}
	return s, nil
}

// ToXML 序列化充电点静态数据，字段顺序固定
func (c ChargePointInfo) ToXML(name string) *etree.Element {
	el := newElement(name)
	addText(el, "evseId", c.EVSEID.String())
	addText(el, "locationId", c.LocationID)
	addOptionalDateTime(el, "timestamp", c.Timestamp)
	addText(el, "locationName", c.LocationName)
	addText(el, "locationNameLang", c.LocationNameLang)
	el.AddChild(c.Address.ToXML("chargePointAddress"))
	el.AddChild(c.Location.ToXML("chargePointLocation"))
	addOptionalText(el, "timeZone", c.TimeZone)
	addOptionalEnum(el, "status", c.Status)
	for _, s := range c.StatusSchedule {
		el.AddChild(s.ToXML("statusSchedule"))
	}
	addOptionalText(el, "telephoneNumber", c.TelephoneNumber)
	addText(el, "location", string(c.GeneralLocation))
	addOptionalText(el, "floorLevel", c.FloorLevel)
	addOptionalText(el, "parkingSlotNumber", c.ParkingSlotNumber)
	for _, r := range c.ParkingRestrictions {
		addText(el, "parkingRestriction", string(r))
	}
	for _, m := range c.AuthMethods.Items() {
		addText(el, "authMethods", string(m))
	}
	for _, conn := range c.Connectors {
		el.AddChild(conn.ToXML("connectors"))
	}
	addText(el, "chargePointType", string(c.ChargePointType))
	if c.Ratings != nil {
		el.AddChild(c.Ratings.ToXML("ratings"))
	}
	for _, lang := range c.UserInterfaceLang {
		addText(el, "userInterfaceLang", lang)
	}
	addOptionalFloat(el, "maxReservation", c.MaxReservation)
	return el
}

// ParseChargePointInfo 解析充电点静态数据
func ParseChargePointInfo(el *etree.Element) (ChargePointInfo, error) {
	var (
		c   ChargePointInfo
		err error
	)
	text, err := requiredText(el, "evseId")
	if err != nil {
		return c, err
	}
	if c.EVSEID, err = ParseEVSEID(text); err != nil {
		return c, err
	}
	if c.LocationID, err = requiredText(el, "locationId"); err != nil {
		return c, err
	}
	if c.Timestamp, err = optionalDateTime(el, "timestamp"); err != nil {
		return c, err
	}
	if c.LocationName, err = requiredText(el, "locationName"); err != nil {
		return c, err
	}
	if c.LocationNameLang, err = requiredText(el, "locationNameLang"); err != nil {
		return c, err
	}
	addr, err := requiredChild(el, "chargePointAddress")
	if err != nil {
		return c, err
	}
	if c.Address, err = ParseAddress(addr); err != nil {
		return c, err
	}
	loc, err := requiredChild(el, "chargePointLocation")
	if err != nil {
		return c, err
	}
	if c.Location, err = ParseGeoCoordinate(loc); err != nil {
		return c, err
	}
	c.TimeZone = optionalText(el, "timeZone")
	if c.Status, err = optionalEnum(el, "status", chargePointStatuses...); err != nil {
		return c, err
	}
	if c.StatusSchedule, err = parseList(el, "statusSchedule", ParseChargePointSchedule); err != nil {
		return c, err
	}
	c.TelephoneNumber = optionalText(el, "telephoneNumber")
	if c.GeneralLocation, err = requiredEnum(el, "location", generalLocations...); err != nil {
		return c, err
	}
	c.FloorLevel = optionalText(el, "floorLevel")
	c.ParkingSlotNumber = optionalText(el, "parkingSlotNumber")
	if c.ParkingRestrictions, err = parseList(el, "parkingRestriction", func(e *etree.Element) (ParkingRestriction, error) {
		return parseEnum("parkingRestriction", textOf(e), parkingRestrictions...)
	}); err != nil {
		return c, err
	}
	methods, err := parseList(el, "authMethods", func(e *etree.Element) (AuthMethod, error) {
		return ParseAuthMethod(textOf(e))
	})
	if err != nil {
		return c, err
	}
	c.AuthMethods = NewAuthMethods(methods...)
	if c.Connectors, err = parseList(el, "connectors", ParseConnectorType); err != nil {
		return c, err
	}
	if c.ChargePointType, err = requiredEnum(el, "chargePointType", chargePointTypes...); err != nil {
		return c, err
	}
	if r := findChild(el, "ratings"); r != nil {
		ratings, err := ParseRatings(r)
		if err != nil {
			return c, err
		}
		c.Ratings = &ratings
	}
	if c.UserInterfaceLang, err = parseList(el, "userInterfaceLang", func(e *etree.Element) (string, error) {
		return textOf(e), nil
	}); err != nil {
		return c, err
	}
	if c.MaxReservation, err = optionalFloat(el, "maxReservation"); err != nil {
		return c, err
	}
	return c, nil
}

// ToXML 序列化EVSE状态
func (s EVSEStatus) ToXML(name string) *etree.Element {
	el := newElement(name)
	addText(el, "evseId", s.EVSEID.String())
	addText(el, "majorStatus", string(s.Major))
	addOptionalEnum(el, "minorStatus", s.Minor)
	addOptionalDateTime(el, "ttl", s.TTL)
	return el
}

// ParseEVSEStatus 解析EVSE状态
func ParseEVSEStatus(el *etree.Element) (EVSEStatus, error) {
	var s EVSEStatus
	text, err := requiredText(el, "evseId")
	if err != nil {
		return s, err
	}
	if s.EVSEID, err = ParseEVSEID(text); err != nil {
		return s, err
	}
	if s.Major, err = requiredEnum(el, "majorStatus", majorStatuses...); err != nil {
		return s, err
	}
	if s.Minor, err = optionalEnum(el, "minorStatus", minorStatuses...); err != nil {
		return s, err
	}
	if s.TTL, err = optionalDateTime(el, "ttl"); err != nil {
		return s, err
	}
	return s, nil
}

// ToXML 序列化停车位状态
func (s ParkingStatus) ToXML(name string) *etree.Element {
	el := newElement(name)
	addText(el, "parkingId", s.ParkingID.String())
	addText(el, "status", string(s.Status))
	addOptionalDateTime(el, "ttl", s.TTL)
	return el
}

// ParseParkingStatus 解析停车位状态
func ParseParkingStatus(el *etree.Element) (ParkingStatus, error) {
	var s ParkingStatus
	text, err := requiredText(el, "parkingId")
	if err != nil {
		return s, err
	}
	if s.ParkingID, err = ParseParkingID(text); err != nil {
		return s, err
	}
	if s.Status, err = requiredEnum(el, "status", majorStatuses...); err != nil {
		return s, err
	}
	if s.TTL, err = optionalDateTime(el, "ttl"); err != nil {
		return s, err
	}
	return s, nil
}

// ToXML 令牌表示方式以属性输出
func (id EMTID) ToXML(name string) *etree.Element {
	el := newElement(name)
	el.CreateAttr("representation", string(id.Representation))
	addText(el, "instance", id.Instance)
	addText(el, "tokenType", string(id.TokenType))
	addOptionalEnum(el, "tokenSubType", id.TokenSubType)
	return el
}

// ParseEMTID 解析令牌标识，缺省表示方式为明文
func ParseEMTID(el *etree.Element) (EMTID, error) {
	var (
		id  EMTID
		err error
	)
	if id.Representation, err = parseEnum("representation",
		el.SelectAttrValue("representation", string(TokenRepresentationPlain)), tokenRepresentations...); err != nil {
		return id, err
	}
	if id.Instance, err = requiredText(el, "instance"); err != nil {
		return id, err
	}
	if id.TokenType, err = requiredEnum(el, "tokenType", tokenTypes...); err != nil {
		return id, err
	}
	if id.TokenSubType, err = optionalEnum(el, "tokenSubType", tokenSubTypes...); err != nil {
		return id, err
	}
	return id, nil
}

// ToXML 序列化漫游授权
func (r RoamingAuthorisationInfo) ToXML(name string) *etree.Element {
	el := newElement(name)
	el.AddChild(r.EMTID.ToXML("EmtId"))
	addText(el, "contractId", r.ContractID.String())
	addOptionalText(el, "printedNumber", r.PrintedNumber)
	addDateTime(el, "expiryDate", r.ExpiryDate)
	return el
}

// ParseRoamingAuthorisationInfo 解析漫游授权
func ParseRoamingAuthorisationInfo(el *etree.Element) (RoamingAuthorisationInfo, error) {
	var r RoamingAuthorisationInfo
	emt, err := requiredChild(el, "EmtId")
	if err != nil {
		return r, err
	}
	if r.EMTID, err = ParseEMTID(emt); err != nil {
		return r, err
	}
	text, err := requiredText(el, "contractId")
	if err != nil {
		return r, err
	}
	if r.ContractID, err = ParseContractID(text); err != nil {
		return r, err
	}
	r.PrintedNumber = optionalText(el, "printedNumber")
	if r.ExpiryDate, err = requiredDateTime(el, "expiryDate"); err != nil {
		return r, err
	}
	return r, nil
}

// ToXML 序列化计费时段
func (p CDRPeriod) ToXML(name string) *etree.Element {
	el := newElement(name)
	addLocalDateTime(el, "startDateTime", p.StartDateTime)
	addLocalDateTime(el, "endDateTime", p.EndDateTime)
	addText(el, "billingItem", string(p.BillingItem))
	addFloat(el, "billingValue", p.BillingValue)
	addFloat(el, "itemPrice", p.ItemPrice)
	addOptionalFloat(el, "periodCost", p.PeriodCost)
	addOptionalFloat(el, "taxrate", p.TaxRate)
	return el
}

// ParseCDRPeriod 解析计费时段
func ParseCDRPeriod(el *etree.Element) (CDRPeriod, error) {
	var (
		p   CDRPeriod
		err error
	)
	if p.StartDateTime, err = requiredLocalDateTime(el, "startDateTime"); err != nil {
		return p, err
	}
	if p.EndDateTime, err = requiredLocalDateTime(el, "endDateTime"); err != nil {
		return p, err
	}
	if p.BillingItem, err = requiredEnum(el, "billingItem", billingItems...); err != nil {
		return p, err
	}
	if p.BillingValue, err = requiredFloat(el, "billingValue"); err != nil {
		return p, err
	}
	if p.ItemPrice, err = requiredFloat(el, "itemPrice"); err != nil {
		return p, err
	}
	if p.PeriodCost, err = optionalFloat(el, "periodCost"); err != nil {
		return p, err
	}
	if p.TaxRate, err = optionalFloat(el, "taxrate"); err != nil {
		return p, err
	}
	return p, nil
}

// ToXML 序列化充电详单，计费时段按给定顺序输出
func (c CDRInfo) ToXML(name string) *etree.Element {
	el := newElement(name)
	addText(el, "cdrId", c.CDRID.String())
	addText(el, "evseId", c.EVSEID.String())
	el.AddChild(c.EMTID.ToXML("emtId"))
	addText(el, "contractId", c.ContractID.String())
	addText(el, "status", string(c.Status))
	addLocalDateTime(el, "startDateTime", c.StartDateTime)
	addLocalDateTime(el, "endDateTime", c.EndDateTime)
	addOptionalText(el, "duration", c.Duration)
	addOptionalText(el, "houseNumber", c.HouseNumber)
	addOptionalText(el, "address", c.Address)
	addOptionalText(el, "zipCode", c.ZipCode)
	addOptionalText(el, "city", c.City)
	addText(el, "country", c.Country)
	addText(el, "chargePointType", string(c.ChargePointType))
	el.AddChild(c.Connector.ToXML("connectorType"))
	addFloat(el, "maxSocketPower", c.MaxSocketPower)
	addOptionalText(el, "productType", c.ProductType)
	addOptionalText(el, "meterId", c.MeterID)
	for _, p := range c.ChargingPeriods {
		el.AddChild(p.ToXML("chargingPeriods"))
	}
	addOptionalFloat(el, "totalCost", c.TotalCost)
	addText(el, "currency", c.Currency)
	return el
}

// ParseCDRInfo 解析充电详单
func ParseCDRInfo(el *etree.Element) (CDRInfo, error) {
	var c CDRInfo
	text, err := requiredText(el, "cdrId")
	if err != nil {
		return c, err
	}
	if c.CDRID, err = ParseCDRID(text); err != nil {
		return c, err
	}
	if text, err = requiredText(el, "evseId"); err != nil {
		return c, err
	}
	if c.EVSEID, err = ParseEVSEID(text); err != nil {
		return c, err
	}
	emt, err := requiredChild(el, "emtId")
	if err != nil {
		return c, err
	}
	if c.EMTID, err = ParseEMTID(emt); err != nil {
		return c, err
	}
	if text, err = requiredText(el, "contractId"); err != nil {
		return c, err
	}
	if c.ContractID, err = ParseContractID(text); err != nil {
		return c, err
	}
	if c.Status, err = requiredEnum(el, "status", cdrStatuses...); err != nil {
		return c, err
	}
	if c.StartDateTime, err = requiredLocalDateTime(el, "startDateTime"); err != nil {
		return c, err
	}
	if c.EndDateTime, err = requiredLocalDateTime(el, "endDateTime"); err != nil {
		return c, err
	}
	c.Duration = optionalText(el, "duration")
	c.HouseNumber = optionalText(el, "houseNumber")
	c.Address = optionalText(el, "address")
	c.ZipCode = optionalText(el, "zipCode")
	c.City = optionalText(el, "city")
	if c.Country, err = requiredText(el, "country"); err != nil {
		return c, err
	}
	if c.ChargePointType, err = requiredEnum(el, "chargePointType", chargePointTypes...); err != nil {
		return c, err
	}
	conn, err := requiredChild(el, "connectorType")
	if err != nil {
		return c, err
	}
	if c.Connector, err = ParseConnectorType(conn); err != nil {
		return c, err
	}
	if c.MaxSocketPower, err = requiredFloat(el, "maxSocketPower"); err != nil {
		return c, err
	}
	c.ProductType = optionalText(el, "productType")
	c.MeterID = optionalText(el, "meterId")
	if c.ChargingPeriods, err = parseList(el, "chargingPeriods", ParseCDRPeriod); err != nil {
		return c, err
	}
	if len(c.ChargingPeriods) == 0 {
		return c, fmt.Errorf("%w: %s/chargingPeriods", ErrMissingElement, el.Tag)
	}
	if c.TotalCost, err = optionalFloat(el, "totalCost"); err != nil {
		return c, err
	}
	if c.Currency, err = requiredText(el, "currency"); err != nil {
		return c, err
	}
	return c, nil
}

// ToXML 序列化详单确认条目
func (p EVSECDRPair) ToXML(name string) *etree.Element {
	el := newElement(name)
	addText(el, "cdrId", p.CDRID.String())
	addText(el, "evseId", p.EVSEID.String())
	return el
}

// ParseEVSECDRPair 解析详单确认条目
func ParseEVSECDRPair(el *etree.Element) (EVSECDRPair, error) {
	var p EVSECDRPair
	text, err := requiredText(el, "cdrId")
	if err != nil {
		return p, err
	}
	if p.CDRID, err = ParseCDRID(text); err != nil {
		return p, err
	}
	if text, err = requiredText(el, "evseId"); err != nil {
		return p, err
	}
	if p.EVSEID, err = ParseEVSEID(text); err != nil {
		return p, err
	}
	return p, nil
}

// ToXML 序列化价格组成
func (p PriceComponent) ToXML(name string) *etree.Element {
	el := newElement(name)
	addText(el, "billingItem", string(p.BillingItem))
	addFloat(el, "itemPrice", p.ItemPrice)
	addText(el, "stepSize", strconv.Itoa(p.StepSize))
	return el
}

// ParsePriceComponent 解析价格组成
func ParsePriceComponent(el *etree.Element) (PriceComponent, error) {
	var (
		p   PriceComponent
		err error
	)
	if p.BillingItem, err = requiredEnum(el, "billingItem", billingItems...); err != nil {
		return p, err
	}
	if p.ItemPrice, err = requiredFloat(el, "itemPrice"); err != nil {
		return p, err
	}
	step, err := optionalInt(el, "stepSize")
	if err != nil {
		return p, err
	}
	if step == nil {
		return p, fmt.Errorf("%w: %s/stepSize", ErrMissingElement, el.Tag)
	}
	p.StepSize = *step
	return p, nil
}

// ToXML 序列化资费生效条件
func (r TariffRestriction) ToXML(name string) *etree.Element {
	el := newElement(name)
	addOptionalLocalDateTime(el, "startDateTime", r.StartDateTime)
	addOptionalLocalDateTime(el, "endDateTime", r.EndDateTime)
	addOptionalFloat(el, "minEnergy", r.MinEnergy)
	addOptionalFloat(el, "maxEnergy", r.MaxEnergy)
	addOptionalFloat(el, "minPower", r.MinPower)
	addOptionalFloat(el, "maxPower", r.MaxPower)
	addOptionalInt(el, "minDuration", r.MinDuration)
	addOptionalInt(el, "maxDuration", r.MaxDuration)
	return el
}

// ParseTariffRestriction 解析资费生效条件
func ParseTariffRestriction(el *etree.Element) (TariffRestriction, error) {
	var (
		r   TariffRestriction
		err error
	)
	if r.StartDateTime, err = optionalLocalDateTime(el, "startDateTime"); err != nil {
		return r, err
	}
	if r.EndDateTime, err = optionalLocalDateTime(el, "endDateTime"); err != nil {
		return r, err
	}
	for _, f := range []struct {
		name   string
		target **float64
	}{{"minEnergy", &r.MinEnergy}, {"maxEnergy", &r.MaxEnergy}, {"minPower", &r.MinPower}, {"maxPower", &r.MaxPower}} {
		if *f.target, err = optionalFloat(el, f.name); err != nil {
			return r, err
		}
	}
	if r.MinDuration, err = optionalInt(el, "minDuration"); err != nil {
		return r, err
	}
	if r.MaxDuration, err = optionalInt(el, "maxDuration"); err != nil {
		return r, err
	}
	return r, nil
}

// ToXML 序列化资费元素
func (t TariffElement) ToXML(name string) *etree.Element {
	el := newElement(name)
	for _, p := range t.PriceComponents {
		el.AddChild(p.ToXML("priceComponent"))
	}
	if t.Restriction != nil {
		el.AddChild(t.Restriction.ToXML("tariffRestriction"))
	}
	return el
}

// ParseTariffElement 解析资费元素
func ParseTariffElement(el *etree.Element) (TariffElement, error) {
	var (
		t   TariffElement
		err error
	)
	if t.PriceComponents, err = parseList(el, "priceComponent", ParsePriceComponent); err != nil {
		return t, err
	}
	if r := findChild(el, "tariffRestriction"); r != nil {
		restriction, err := ParseTariffRestriction(r)
		if err != nil {
			return t, err
		}
		t.Restriction = &restriction
	}
	return t, nil
}

// ToXML 序列化特定服务商资费
func (t IndividualTariff) ToXML(name string) *etree.Element {
	el := newElement(name)
	for _, e := range t.Elements {
		el.AddChild(e.ToXML("tariffElement"))
	}
	for _, r := range t.Recipients {
		addText(el, "recipient", r.String())
	}
	addText(el, "currency", t.Currency)
	return el
}

// ParseIndividualTariff 解析特定服务商资费
func ParseIndividualTariff(el *etree.Element) (IndividualTariff, error) {
	var (
		t   IndividualTariff
		err error
	)
	if t.Elements, err = parseList(el, "tariffElement", ParseTariffElement); err != nil {
		return t, err
	}
	if t.Recipients, err = parseList(el, "recipient", func(e *etree.Element) (ProviderID, error) {
		return ParseProviderID(textOf(e))
	}); err != nil {
		return t, err
	}
	if t.Currency, err = requiredText(el, "currency"); err != nil {
		return t, err
	}
	return t, nil
}

// ToXML 序列化资费
func (t TariffInfo) ToXML(name string) *etree.Element {
	el := newElement(name)
	addText(el, "tariffId", t.TariffID.String())
	for _, it := range t.IndividualTariffs {
		el.AddChild(it.ToXML("individualTariff"))
	}
	return el
}

// ParseTariffInfo 解析资费
func ParseTariffInfo(el *etree.Element) (TariffInfo, error) {
	var t TariffInfo
	text, err := requiredText(el, "tariffId")
	if err != nil {
		return t, err
	}
	if t.TariffID, err = ParseTariffID(text); err != nil {
		return t, err
	}
	if t.IndividualTariffs, err = parseList(el, "individualTariff", ParseIndividualTariff); err != nil {
		return t, err
	}
	return t, nil
}

// ToXML 序列化服务端点
func (s ServiceEndpoint) ToXML(name string) *etree.Element {
	el := newElement(name)
	addText(el, "url", s.URL)
	addText(el, "namespaceUrl", s.NamespaceURL)
	addText(el, "accessToken", s.AccessToken)
	addDateTime(el, "validUntil", s.ValidUntil)
	addText(el, "whitelist", s.Whitelist)
	addOptionalText(el, "blacklist", s.Blacklist)
	addOptionalEnum(el, "type", s.Type)
	return el
}

// ParseServiceEndpoint 解析服务端点
func ParseServiceEndpoint(el *etree.Element) (ServiceEndpoint, error) {
	var (
		s   ServiceEndpoint
		err error
	)
	if s.URL, err = requiredText(el, "url"); err != nil {
		return s, err
	}
	if s.NamespaceURL, err = requiredText(el, "namespaceUrl"); err != nil {
		return s, err
	}
	if s.AccessToken, err = requiredText(el, "accessToken"); err != nil {
		return s, err
	}
	if s.ValidUntil, err = requiredDateTime(el, "validUntil"); err != nil {
		return s, err
	}
	if s.Whitelist, err = requiredText(el, "whitelist"); err != nil {
		return s, err
	}
	s.Blacklist = optionalText(el, "blacklist")
	if s.Type, err = optionalEnum(el, "type", endpointTypes...); err != nil {
		return s, err
	}
	return s, nil
}
