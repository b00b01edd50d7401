package clearinghouse

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charging-platform/ochp-roaming/internal/client"
	"github.com/charging-platform/ochp-roaming/internal/domain/events"
	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/storage"
)

var t0 = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

const (
	evseID     = ochp.EVSEID("DE*GEF*E123456789*1")
	contractID = ochp.ContractID("DE-GEF-123456789")
	cdrID      = ochp.CDRID("DEGEF1234AABBCC5678")
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type publisherStub struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *publisherStub) PublishEvent(event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *publisherStub) types() []events.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.GetType()
	}
	return out
}

type harness struct {
	ch        *ClearingHouse
	clock     *clock
	publisher *publisherStub
	cpo       *client.CPOClient
	emp       *client.EMPClient
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{clock: &clock{now: t0}, publisher: &publisherStub{}}
	h.ch = New(&Config{Now: h.clock.Now}, NewMemoryStores(), h.publisher, nil)

	ts := httptest.NewServer(h.ch.SOAP().Routes())
	t.Cleanup(ts.Close)

	newConfig := func() *client.Config {
		cfg := client.DefaultConfig(ts.URL + ochp.ServicePath)
		cfg.DefaultTimeout = 5 * time.Second
		cfg.HTTPClient = ts.Client()
		return cfg
	}
	var err error
	h.cpo, err = client.NewCPOClient(newConfig(), nil)
	require.NoError(t, err)
	h.emp, err = client.NewEMPClient(newConfig(), nil)
	require.NoError(t, err)
	return h
}

func emtID(t *testing.T, instance string) ochp.EMTID {
	t.Helper()
	id, err := ochp.NewEMTID(instance, ochp.TokenTypeRFID)
	require.NoError(t, err)
	return id
}

func authorisation(t *testing.T, instance string) ochp.RoamingAuthorisationInfo {
	return ochp.RoamingAuthorisationInfo{
		EMTID:      emtID(t, instance),
		ContractID: contractID,
		ExpiryDate: t0.Add(30 * 24 * time.Hour),
	}
}

func chargePoint(id ochp.EVSEID) ochp.ChargePointInfo {
	return ochp.ChargePointInfo{
		EVSEID:           id,
		LocationID:       "LOC001",
		LocationName:     "Marktplatz",
		LocationNameLang: "deu",
		Address: ochp.Address{
			Address: "Marktplatz",
			City:    "Jena",
			ZipCode: "07743",
			Country: "DEU",
		},
		Location:        ochp.GeoCoordinate{Latitude: 50.928, Longitude: 11.589},
		GeneralLocation: ochp.GeneralLocationOnStreet,
		AuthMethods:     ochp.NewAuthMethods(ochp.AuthMethodPublic),
		Connectors: []ochp.ConnectorType{
			{Standard: ochp.ConnectorStandardIEC62196T2, Format: ochp.ConnectorFormatSocket},
		},
		ChargePointType: ochp.ChargePointTypeAC,
	}
}

func cdr(t *testing.T) ochp.CDRInfo {
	return ochp.CDRInfo{
		CDRID:           cdrID,
		EVSEID:          evseID,
		EMTID:           emtID(t, "1234"),
		ContractID:      contractID,
		Status:          ochp.CDRStatusNew,
		StartDateTime:   t0,
		EndDateTime:     t0.Add(2 * time.Hour),
		Country:         "DEU",
		ChargePointType: ochp.ChargePointTypeAC,
		Connector:       ochp.ConnectorType{Standard: ochp.ConnectorStandardIEC62196T2, Format: ochp.ConnectorFormatSocket},
		MaxSocketPower:  22,
		ChargingPeriods: []ochp.CDRPeriod{{
			StartDateTime: t0,
			EndDateTime:   t0.Add(2 * time.Hour),
			BillingItem:   ochp.BillingItemUsageTime,
			BillingValue:  23.5,
			ItemPrice:     0.3,
		}},
		Currency: "EUR",
	}
}

func TestNew_RegistersAllActions(t *testing.T) {
	ch := New(nil, NewMemoryStores(), nil, nil)
	assert.Equal(t, ochp.ServicePath, ch.Path())
	assert.Equal(t, 20, ch.SOAP().Actions(ochp.ServicePath))
}

func TestScenario_RoamingAuthorisationList(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	count := func() int {
		resp, err := h.cpo.GetRoamingAuthorisationList(ctx)
		require.NoError(t, err)
		require.True(t, resp.IsSuccess(), resp.Result().String())
		return len(resp.Content.Authorisations)
	}

	set, err := ochp.NewSetRoamingAuthorisationListRequest(authorisation(t, "1234"))
	require.NoError(t, err)
	setResp, err := h.emp.SetRoamingAuthorisationList(ctx, set)
	require.NoError(t, err)
	require.True(t, setResp.IsSuccess(), setResp.Result().String())
	assert.Equal(t, 1, count())

	update, err := ochp.NewUpdateRoamingAuthorisationListRequest(authorisation(t, "5678"))
	require.NoError(t, err)
	updateResp, err := h.emp.UpdateRoamingAuthorisationList(ctx, update)
	require.NoError(t, err)
	require.True(t, updateResp.IsSuccess())
	assert.Equal(t, 2, count())

	set, err = ochp.NewSetRoamingAuthorisationListRequest(authorisation(t, "3456"))
	require.NoError(t, err)
	_, err = h.emp.SetRoamingAuthorisationList(ctx, set)
	require.NoError(t, err)
	assert.Equal(t, 1, count())

	empty, err := ochp.NewSetRoamingAuthorisationListRequest()
	require.NoError(t, err)
	emptyResp, err := h.emp.SetRoamingAuthorisationList(ctx, empty)
	require.NoError(t, err)
	assert.False(t, emptyResp.Local, "an empty set must reach the clearing house")
	assert.Equal(t, 0, count())

	assert.Equal(t, []events.EventType{
		events.EventTypeAuthorisationsReplaced,
		events.EventTypeAuthorisationsUpdated,
		events.EventTypeAuthorisationsReplaced,
		events.EventTypeAuthorisationsReplaced,
	}, h.publisher.types())
}

func TestGetSingleRoamingAuthorisation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	set, err := ochp.NewSetRoamingAuthorisationListRequest(authorisation(t, "1234"))
	require.NoError(t, err)
	_, err = h.emp.SetRoamingAuthorisationList(ctx, set)
	require.NoError(t, err)

	req, err := ochp.NewGetSingleRoamingAuthorisationRequest(emtID(t, "1234"))
	require.NoError(t, err)
	resp, err := h.cpo.GetSingleRoamingAuthorisation(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, ochp.ResultCodeOK, resp.Result().Code)
	require.NotNil(t, resp.Content.Info)
	assert.Equal(t, contractID, resp.Content.Info.ContractID)

	unknown, err := ochp.NewGetSingleRoamingAuthorisationRequest(emtID(t, "567891"))
	require.NoError(t, err)
	resp, err = h.cpo.GetSingleRoamingAuthorisation(ctx, unknown)
	require.NoError(t, err)
	assert.Equal(t, ochp.ResultCodeInvalidID, resp.Result().Code)
	assert.False(t, resp.IsFault)
	assert.Nil(t, resp.Content.Info)

	h.clock.Advance(31 * 24 * time.Hour)
	resp, err = h.cpo.GetSingleRoamingAuthorisation(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, ochp.ResultCodeNotAuthorized, resp.Result().Code)
	assert.False(t, resp.IsFault)
}

func TestScenario_CDRUpload(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	add, err := ochp.NewAddCDRsRequest(cdr(t))
	require.NoError(t, err)
	resp, err := h.cpo.AddCDRs(ctx, add)
	require.NoError(t, err)
	assert.Equal(t, ochp.ResultCodeOK, resp.Result().Code)

	n, err := h.ch.Stores().CDRs.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	stored, err := h.ch.Stores().CDRs.Get(ctx, string(cdrID))
	require.NoError(t, err)
	assert.Equal(t, evseID, stored.Value.EVSEID)
	require.Len(t, stored.Value.ChargingPeriods, 1)
	assert.Equal(t, 23.5, stored.Value.ChargingPeriods[0].BillingValue)

	// 重复的详单标识
	resp, err = h.cpo.AddCDRs(ctx, add)
	require.NoError(t, err)
	assert.Equal(t, ochp.ResultCodePartly, resp.Result().Code)
	require.Len(t, resp.Content.ImplausibleCDRs, 1)
	assert.Equal(t, cdrID, resp.Content.ImplausibleCDRs[0].CDRID)
}

func TestCDRConfirmation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	add, err := ochp.NewAddCDRsRequest(cdr(t))
	require.NoError(t, err)
	_, err = h.cpo.AddCDRs(ctx, add)
	require.NoError(t, err)

	fresh, err := h.emp.GetCDRs(ctx, ochp.GetCDRsRequest{})
	require.NoError(t, err)
	require.Len(t, fresh.Content.CDRs, 1)

	confirm, err := ochp.NewConfirmCDRsRequest([]ochp.EVSECDRPair{{CDRID: cdrID, EVSEID: evseID}}, nil)
	require.NoError(t, err)
	confirmResp, err := h.emp.ConfirmCDRs(ctx, confirm)
	require.NoError(t, err)
	assert.Equal(t, ochp.ResultCodeOK, confirmResp.Result().Code)

	fresh, err = h.emp.GetCDRs(ctx, ochp.GetCDRsRequest{})
	require.NoError(t, err)
	assert.Empty(t, fresh.Content.CDRs)

	approved, err := h.cpo.CheckCDRs(ctx, ochp.CheckCDRsRequest{Status: ochp.CDRStatusApproved})
	require.NoError(t, err)
	require.Len(t, approved.Content.CDRs, 1)
	assert.Equal(t, ochp.CDRStatusApproved, approved.Content.CDRs[0].Status)

	unknown, err := ochp.NewConfirmCDRsRequest(nil, []ochp.EVSECDRPair{
		{CDRID: "UNKNOWN1", EVSEID: evseID},
		{CDRID: cdrID, EVSEID: "DE*GEF*E999999999*1"},
	})
	require.NoError(t, err)
	confirmResp, err = h.emp.ConfirmCDRs(ctx, unknown)
	require.NoError(t, err)
	assert.Equal(t, ochp.ResultCodePartly, confirmResp.Result().Code)
	assert.Equal(t, "2 unknown CDRs", confirmResp.Result().Description)
}

func TestChargePointLists(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	set, err := ochp.NewSetChargePointListRequest(chargePoint(evseID), chargePoint("DE*GEF*E123456789*2"))
	require.NoError(t, err)
	setResp, err := h.cpo.SetChargePointList(ctx, set)
	require.NoError(t, err)
	require.True(t, setResp.IsSuccess(), setResp.Result().String())

	h.clock.Advance(time.Hour)
	checkpoint := h.clock.Now()

	updated := chargePoint(evseID)
	updated.LocationName = "Holzmarkt"
	update, err := ochp.NewUpdateChargePointListRequest(updated)
	require.NoError(t, err)
	_, err = h.cpo.UpdateChargePointList(ctx, update)
	require.NoError(t, err)

	all, err := h.emp.GetChargePointList(ctx)
	require.NoError(t, err)
	assert.Len(t, all.Content.ChargePoints, 2)

	since, err := ochp.NewGetChargePointListUpdatesRequest(checkpoint)
	require.NoError(t, err)
	changes, err := h.emp.GetChargePointListUpdates(ctx, since)
	require.NoError(t, err)
	require.Len(t, changes.Content.ChargePoints, 1)
	assert.Equal(t, "Holzmarkt", changes.Content.ChargePoints[0].LocationName)
}

func TestSetChargePointList_RefusesInvalidEntries(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	invalid := chargePoint("DE*GEF*E123456789*3")
	invalid.LocationNameLang = "german"

	resp, err := h.ch.SetChargePointList(ctx, ochp.SetChargePointListRequest{
		ChargePoints: []ochp.ChargePointInfo{chargePoint(evseID), invalid},
	})
	require.NoError(t, err)
	assert.Equal(t, ochp.ResultCodePartly, resp.Result.Code)
	assert.Equal(t, "1 charge point refused", resp.Result.Description)
	require.Len(t, resp.RefusedChargePoints, 1)
	assert.Equal(t, invalid.EVSEID, resp.RefusedChargePoints[0].EVSEID)

	n, err := h.ch.Stores().ChargePoints.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStatusTTL(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	ttl := t0.Add(15 * time.Minute)
	update, err := ochp.NewUpdateStatusRequest([]ochp.EVSEStatus{
		{EVSEID: evseID, Major: ochp.MajorStatusNotAvailable, Minor: ochp.MinorStatusCharging},
		{EVSEID: "DE*GEF*E123456789*2", Major: ochp.MajorStatusAvailable},
	}, nil, &ttl)
	require.NoError(t, err)
	updateResp, err := h.cpo.UpdateStatus(ctx, update)
	require.NoError(t, err)
	require.True(t, updateResp.IsSuccess())

	status, err := h.emp.GetStatus(ctx, ochp.GetStatusRequest{})
	require.NoError(t, err)
	require.Len(t, status.Content.EVSEStatus, 2)
	require.NotNil(t, status.Content.EVSEStatus[0].TTL)
	assert.True(t, ttl.Equal(*status.Content.EVSEStatus[0].TTL))

	h.clock.Advance(20 * time.Minute)
	status, err = h.emp.GetStatus(ctx, ochp.GetStatusRequest{})
	require.NoError(t, err)
	assert.Empty(t, status.Content.EVSEStatus)
}

func TestTariffsAndEndpoints(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	tariff := ochp.TariffInfo{
		TariffID: "AC-STANDARD",
		IndividualTariffs: []ochp.IndividualTariff{{
			Elements: []ochp.TariffElement{{
				PriceComponents: []ochp.PriceComponent{{BillingItem: ochp.BillingItemEnergy, ItemPrice: 0.39, StepSize: 1}},
			}},
			Currency: "EUR",
		}},
	}
	update, err := ochp.NewUpdateTariffsRequest(tariff)
	require.NoError(t, err)
	updateResp, err := h.cpo.UpdateTariffs(ctx, update)
	require.NoError(t, err)
	require.True(t, updateResp.IsSuccess(), updateResp.Result().String())

	tariffs, err := h.emp.GetTariffUpdates(ctx, ochp.GetTariffUpdatesRequest{})
	require.NoError(t, err)
	require.Len(t, tariffs.Content.Tariffs, 1)
	assert.Equal(t, ochp.TariffID("AC-STANDARD"), tariffs.Content.Tariffs[0].TariffID)

	later := t0.Add(time.Minute)
	tariffs, err = h.emp.GetTariffUpdates(ctx, ochp.GetTariffUpdatesRequest{LastUpdate: &later})
	require.NoError(t, err)
	assert.Empty(t, tariffs.Content.Tariffs)

	endpoint := ochp.ServiceEndpoint{
		URL:          "https://emp.example.com/ochp/direct",
		NamespaceURL: ochp.Namespace,
		AccessToken:  "secret",
		ValidUntil:   t0.Add(24 * time.Hour),
		Whitelist:    ".*",
		Type:         ochp.EndpointTypeOCHPDirect,
	}
	add, err := ochp.NewAddServiceEndpointsRequest(
		[]ochp.ProviderEndpoint{{ProviderID: "DE-GEF", Endpoint: endpoint}},
		[]ochp.OperatorEndpoint{{OperatorID: "DE*GEF", Endpoint: endpoint}},
	)
	require.NoError(t, err)
	addResp, err := h.emp.AddServiceEndpoints(ctx, add)
	require.NoError(t, err)
	require.True(t, addResp.IsSuccess(), addResp.Result().String())

	endpoints, err := h.cpo.GetServiceEndpoints(ctx)
	require.NoError(t, err)
	require.Len(t, endpoints.Content.ProviderEndpoints, 1)
	require.Len(t, endpoints.Content.OperatorEndpoints, 1)
	assert.Equal(t, "DE*GEF", endpoints.Content.OperatorEndpoints[0].OperatorID)
}

func TestReportDiscrepancy(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	report, err := ochp.NewReportDiscrepancyRequest(evseID, "connector missing")
	require.NoError(t, err)
	resp, err := h.emp.ReportDiscrepancy(ctx, report)
	require.NoError(t, err)
	assert.Equal(t, ochp.ResultCodeInvalidID, resp.Result().Code)

	set, err := ochp.NewSetChargePointListRequest(chargePoint(evseID))
	require.NoError(t, err)
	_, err = h.cpo.SetChargePointList(ctx, set)
	require.NoError(t, err)

	resp, err = h.emp.ReportDiscrepancy(ctx, report)
	require.NoError(t, err)
	assert.Equal(t, ochp.ResultCodeOK, resp.Result().Code)

	types := h.publisher.types()
	require.NotEmpty(t, types)
	assert.Equal(t, events.EventTypeDiscrepancyReported, types[len(types)-1])
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	h := newHarness(t)
	h.publisher.err = errors.New("broker down")

	resp, err := h.ch.UpdateChargePointList(context.Background(), ochp.UpdateChargePointListRequest{
		ChargePoints: []ochp.ChargePointInfo{chargePoint(evseID)},
	})
	require.NoError(t, err)
	assert.Equal(t, ochp.ResultCodeOK, resp.Result.Code)
}

type brokenStore[V any] struct {
	storage.Store[V]
}

func (brokenStore[V]) List(context.Context) ([]storage.Record[V], error) {
	return nil, errors.New("connection refused")
}

func TestStoreFailureYieldsServerResult(t *testing.T) {
	stores := NewMemoryStores()
	stores.ChargePoints = brokenStore[ochp.ChargePointInfo]{}
	ch := New(nil, stores, nil, nil)

	resp, err := ch.GetChargePointList(context.Background(), ochp.GetChargePointListRequest{})
	require.NoError(t, err)
	assert.Equal(t, ochp.ResultCodeServer, resp.Result.Code)
	assert.Empty(t, resp.ChargePoints)
}
