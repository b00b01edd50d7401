package ochp

import (
	"time"
)

var (
	testTime   = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	testExpiry = testTime.Add(30 * 24 * time.Hour)
)

func ptr[T any](v T) *T {
	return &v
}

func testChargePoint() ChargePointInfo {
	return ChargePointInfo{
		EVSEID:           MustEVSEID("DE*GEF*E123456789*1"),
		LocationID:       "LOC001",
		LocationName:     "Marktplatz",
		LocationNameLang: "deu",
		Address: Address{
			Address: "Marktplatz",
			City:    "Jena",
			ZipCode: "07743",
			Country: "DEU",
		},
		Location:        GeoCoordinate{Latitude: 50.928, Longitude: 11.589},
		GeneralLocation: GeneralLocationOnStreet,
		AuthMethods:     NewAuthMethods(AuthMethodPublic, AuthMethodRfidMifareCls),
		Connectors: []ConnectorType{
			{Standard: ConnectorStandardIEC62196T2, Format: ConnectorFormatSocket},
		},
		ChargePointType: ChargePointTypeAC,
	}
}

// testChargePointFull 所有可选字段都已设置
func testChargePointFull() ChargePointInfo {
	cp := testChargePoint()
	cp.Timestamp = ptr(testTime)
	cp.Address.HouseNumber = ptr("1")
	cp.TimeZone = ptr("Europe/Berlin")
	cp.Status = ChargePointStatusOperative
	cp.StatusSchedule = []ChargePointSchedule{
		{StartDate: testTime, EndDate: ptr(testExpiry), Status: ChargePointStatusPlanned},
	}
	cp.TelephoneNumber = ptr("+49 3641 123456")
	cp.FloorLevel = ptr("-1")
	cp.ParkingSlotNumber = ptr("17")
	cp.ParkingRestrictions = []ParkingRestriction{ParkingRestrictionEVOnly, ParkingRestrictionCustomers}
	cp.Connectors = append(cp.Connectors, ConnectorType{Standard: ConnectorStandardIEC62196T2Combo, Format: ConnectorFormatCable})
	cp.Ratings = &Ratings{MaximumPower: 22, GuaranteedPower: ptr(11.0), NominalVoltage: ptr(400)}
	cp.UserInterfaceLang = []string{"deu", "eng"}
	cp.MaxReservation = ptr(0.5)
	return cp
}

func testEMTID(instance string) EMTID {
	id, err := NewEMTID(instance, TokenTypeRFID)
	if err != nil {
		panic(err)
	}
	return id
}

func testAuthorisation(instance string) RoamingAuthorisationInfo {
	return RoamingAuthorisationInfo{
		EMTID:      testEMTID(instance),
		ContractID: ContractID("DE-GEF-123456789"),
		ExpiryDate: testExpiry,
	}
}

func testCDR() CDRInfo {
	return CDRInfo{
		CDRID:           CDRID("DEGEF1234AABBCC5678"),
		EVSEID:          MustEVSEID("DE*GEF*E123456789*1"),
		EMTID:           testEMTID("1234"),
		ContractID:      ContractID("DE-GEF-123456789"),
		Status:          CDRStatusNew,
		StartDateTime:   testTime,
		EndDateTime:     testTime.Add(2 * time.Hour),
		Country:         "DEU",
		ChargePointType: ChargePointTypeAC,
		Connector:       ConnectorType{Standard: ConnectorStandardIEC62196T2, Format: ConnectorFormatSocket},
		MaxSocketPower:  22,
		ChargingPeriods: []CDRPeriod{
			{
				StartDateTime: testTime,
				EndDateTime:   testTime.Add(2 * time.Hour),
				BillingItem:   BillingItemUsageTime,
				BillingValue:  23.5,
				ItemPrice:     0.3,
			},
		},
		Currency: "EUR",
	}
}

func testTariff() TariffInfo {
	return TariffInfo{
		TariffID: TariffID("AC-STANDARD"),
		IndividualTariffs: []IndividualTariff{
			{
				Elements: []TariffElement{
					{
						PriceComponents: []PriceComponent{
							{BillingItem: BillingItemEnergy, ItemPrice: 0.39, StepSize: 1},
						},
						Restriction: &TariffRestriction{
							StartDateTime: ptr(testTime),
							MaxPower:      ptr(22.0),
							MinDuration:   ptr(300),
						},
					},
				},
				Recipients: []ProviderID{ProviderID("DE-GEF")},
				Currency:   "EUR",
			},
		},
	}
}

func testServiceEndpoint() ServiceEndpoint {
	return ServiceEndpoint{
		URL:          "https://emp.example.com/ochp/direct",
		NamespaceURL: Namespace,
		AccessToken:  "secret",
		ValidUntil:   testExpiry,
		Whitelist:    ".*",
		Type:         EndpointTypeOCHPDirect,
	}
}
