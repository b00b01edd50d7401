package mapper

import (
	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/domain/wwcp"
)

type plugMapping struct {
	plug      wwcp.PlugType
	connector ochp.ConnectorType
}

// plugTable 插头类型与协议连接器的一一对应
var plugTable = []plugMapping{
	{wwcp.PlugTypeType1, ochp.ConnectorType{Standard: ochp.ConnectorStandardIEC62196T1, Format: ochp.ConnectorFormatCable}},
	{wwcp.PlugTypeType2Outlet, ochp.ConnectorType{Standard: ochp.ConnectorStandardIEC62196T2, Format: ochp.ConnectorFormatSocket}},
	{wwcp.PlugTypeType2CableAttached, ochp.ConnectorType{Standard: ochp.ConnectorStandardIEC62196T2, Format: ochp.ConnectorFormatCable}},
	{wwcp.PlugTypeType3A, ochp.ConnectorType{Standard: ochp.ConnectorStandardIEC62196T3A, Format: ochp.ConnectorFormatSocket}},
	{wwcp.PlugTypeType3C, ochp.ConnectorType{Standard: ochp.ConnectorStandardIEC62196T3C, Format: ochp.ConnectorFormatSocket}},
	{wwcp.PlugTypeCHAdeMO, ochp.ConnectorType{Standard: ochp.ConnectorStandardChademo, Format: ochp.ConnectorFormatCable}},
	{wwcp.PlugTypeCCS1, ochp.ConnectorType{Standard: ochp.ConnectorStandardIEC62196T1Combo, Format: ochp.ConnectorFormatCable}},
	{wwcp.PlugTypeCCS2, ochp.ConnectorType{Standard: ochp.ConnectorStandardIEC62196T2Combo, Format: ochp.ConnectorFormatCable}},
	{wwcp.PlugTypeTypeE, ochp.ConnectorType{Standard: ochp.ConnectorStandardDomesticE, Format: ochp.ConnectorFormatSocket}},
	{wwcp.PlugTypeTypeF, ochp.ConnectorType{Standard: ochp.ConnectorStandardDomesticF, Format: ochp.ConnectorFormatSocket}},
	{wwcp.PlugTypeTypeG, ochp.ConnectorType{Standard: ochp.ConnectorStandardDomesticG, Format: ochp.ConnectorFormatSocket}},
	{wwcp.PlugTypeTypeJ, ochp.ConnectorType{Standard: ochp.ConnectorStandardDomesticJ, Format: ochp.ConnectorFormatSocket}},
	{wwcp.PlugTypeTeslaRoadster, ochp.ConnectorType{Standard: ochp.ConnectorStandardTeslaR, Format: ochp.ConnectorFormatCable}},
	{wwcp.PlugTypeTeslaModelS, ochp.ConnectorType{Standard: ochp.ConnectorStandardTeslaS, Format: ochp.ConnectorFormatCable}},
	{wwcp.PlugTypeCEE16Single, ochp.ConnectorType{Standard: ochp.ConnectorStandardIEC60309Single16, Format: ochp.ConnectorFormatSocket}},
	{wwcp.PlugTypeCEE16Three, ochp.ConnectorType{Standard: ochp.ConnectorStandardIEC60309Three16, Format: ochp.ConnectorFormatSocket}},
	{wwcp.PlugTypeCEE32Three, ochp.ConnectorType{Standard: ochp.ConnectorStandardIEC60309Three32, Format: ochp.ConnectorFormatSocket}},
	{wwcp.PlugTypeCEE64Three, ochp.ConnectorType{Standard: ochp.ConnectorStandardIEC60309Three64, Format: ochp.ConnectorFormatSocket}},
}

var (
	plugToConnector = make(map[wwcp.PlugType]ochp.ConnectorType, len(plugTable))
	connectorToPlug = make(map[ochp.ConnectorType]wwcp.PlugType, len(plugTable))
)

func init() {
	for _, m := range plugTable {
		plugToConnector[m.plug] = m.connector
		connectorToPlug[m.connector] = m.plug
	}
}

// PlugToOCHP 插头类型转为协议连接器，没有对应项时 ok 为 false
func PlugToOCHP(plug wwcp.PlugType) (ochp.ConnectorType, bool) {
	c, ok := plugToConnector[plug]
	return c, ok
}

// PlugToWWCP 协议连接器转为插头类型，没有对应项时返回 PlugTypeOther
func PlugToWWCP(connector ochp.ConnectorType) (wwcp.PlugType, bool) {
	p, ok := connectorToPlug[connector]
	if !ok {
		return wwcp.PlugTypeOther, false
	}
	return p, true
}

// PlugsToOCHP 跳过没有对应项的插头
func PlugsToOCHP(plugs []wwcp.PlugType) []ochp.ConnectorType {
	var out []ochp.ConnectorType
	for _, p := range plugs {
		if c, ok := PlugToOCHP(p); ok {
			out = append(out, c)
		}
	}
	return out
}

// ConnectorsToWWCP 跳过没有对应项的连接器
func ConnectorsToWWCP(connectors []ochp.ConnectorType) []wwcp.PlugType {
	var out []wwcp.PlugType
	for _, c := range connectors {
		if p, ok := PlugToWWCP(c); ok {
			out = append(out, p)
		}
	}
	return out
}

// PowerTypeToOCHP 交直流
func PowerTypeToOCHP(power wwcp.PowerType) ochp.ChargePointType {
	if power == wwcp.PowerTypeDC {
		return ochp.ChargePointTypeDC
	}
	return ochp.ChargePointTypeAC
}

func PowerTypeToWWCP(t ochp.ChargePointType) wwcp.PowerType {
	if t == ochp.ChargePointTypeDC {
		return wwcp.PowerTypeDC
	}
	return wwcp.PowerTypeAC
}
