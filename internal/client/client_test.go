package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charging-platform/ochp-roaming/internal/domain/events"
	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/soap"
)

// peer 模拟的SOAP对端，按收到的请求返回预设应答
type peer struct {
	server *httptest.Server
	hits   atomic.Int32

	mu      sync.Mutex
	actions []string
}

type reply func(action string, body *etree.Element) (status int, data []byte)

func newPeer(t *testing.T, r reply) *peer {
	t.Helper()
	p := &peer{}
	p.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		p.hits.Add(1)
		action := soap.SOAPActionFromHeader(req.Header.Get("SOAPAction"))
		p.mu.Lock()
		p.actions = append(p.actions, action)
		p.mu.Unlock()

		raw, _ := io.ReadAll(req.Body)
		env, err := soap.Unmarshal(raw)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		status, data := r(action, env.Body)
		w.Header().Set("Content-Type", soap.ContentType)
		w.WriteHeader(status)
		w.Write(data)
	}))
	t.Cleanup(p.server.Close)
	return p
}

func (p *peer) seen() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.actions...)
}

func respond(msg ochp.Message) reply {
	return func(string, *etree.Element) (int, []byte) {
		data, _ := soap.Marshal(msg.ToXML())
		return http.StatusOK, data
	}
}

func testConfig(p *peer) *Config {
	cfg := DefaultConfig(p.server.URL)
	cfg.DefaultTimeout = 2 * time.Second
	cfg.HTTPClient = p.server.Client()
	return cfg
}

func newCPO(t *testing.T, p *peer) *CPOClient {
	t.Helper()
	c, err := NewCPOClient(testConfig(p), nil)
	require.NoError(t, err)
	return c
}

func newEMP(t *testing.T, p *peer) *EMPClient {
	t.Helper()
	c, err := NewEMPClient(testConfig(p), nil)
	require.NoError(t, err)
	return c
}

var testExpiry = time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

func testEMTID(t *testing.T, instance string) ochp.EMTID {
	t.Helper()
	id, err := ochp.NewEMTID(instance, ochp.TokenTypeRFID)
	require.NoError(t, err)
	return id
}

// recorder 按顺序记录四个生命周期事件
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func record(l *events.Lifecycle) *recorder {
	r := &recorder{}
	add := func(e events.Event) {
		r.mu.Lock()
		r.events = append(r.events, e)
		r.mu.Unlock()
	}
	l.OnRequest.Add(func(_ context.Context, e *events.RequestEvent) error { add(e); return nil })
	l.OnSOAPRequest.Add(func(_ context.Context, e *events.SOAPRequestEvent) error { add(e); return nil })
	l.OnSOAPResponse.Add(func(_ context.Context, e *events.SOAPResponseEvent) error { add(e); return nil })
	l.OnResponse.Add(func(_ context.Context, e *events.ResponseEvent) error { add(e); return nil })
	return r
}

func (r *recorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.GetType())
	}
	return types
}

var fullLifecycle = []events.EventType{
	events.EventTypeRequest, events.EventTypeSOAPRequest, events.EventTypeSOAPResponse, events.EventTypeResponse,
}

func TestNewClient_Config(t *testing.T) {
	_, err := NewCPOClient(nil, nil)
	assert.Error(t, err)
	_, err = NewEMPClient(&Config{}, nil)
	assert.Error(t, err)
}

func TestCPOClient_EmptyUploadsShortCircuit(t *testing.T) {
	p := newPeer(t, respond(ochp.SetChargePointListResponse{Result: ochp.OK("")}))
	c := newCPO(t, p)
	rec := record(c.Lifecycle)
	ctx := context.Background()

	set, err := c.SetChargePointList(ctx, ochp.SetChargePointListRequest{})
	require.NoError(t, err)
	assert.True(t, set.Local)
	assert.False(t, set.IsFault)
	assert.Equal(t, ochp.OK(ochp.NothingToUpload), set.Result())

	update, err := c.UpdateChargePointList(ctx, ochp.UpdateChargePointListRequest{ChargePoints: []ochp.ChargePointInfo{}})
	require.NoError(t, err)
	assert.Equal(t, ochp.OK(ochp.NothingToUpload), update.Result())

	status, err := c.UpdateStatus(ctx, ochp.UpdateStatusRequest{})
	require.NoError(t, err)
	assert.Equal(t, ochp.OK(ochp.NothingToUpload), status.Result())

	tariffs, err := c.UpdateTariffs(ctx, ochp.UpdateTariffsRequest{})
	require.NoError(t, err)
	assert.True(t, tariffs.Local)

	assert.Zero(t, p.hits.Load())
	assert.Equal(t, []events.EventType{
		events.EventTypeRequest, events.EventTypeResponse,
		events.EventTypeRequest, events.EventTypeResponse,
		events.EventTypeRequest, events.EventTypeResponse,
		events.EventTypeRequest, events.EventTypeResponse,
	}, rec.types())
}

func TestEMPClient_EmptySetRoamingAuthorisationListIsSent(t *testing.T) {
	p := newPeer(t, respond(ochp.SetRoamingAuthorisationListResponse{Result: ochp.OK("")}))
	c := newEMP(t, p)

	resp, err := c.SetRoamingAuthorisationList(context.Background(), ochp.SetRoamingAuthorisationListRequest{})
	require.NoError(t, err)
	assert.False(t, resp.Local)
	assert.Equal(t, int32(1), p.hits.Load())
	assert.Equal(t, ochp.ResultCodeOK, resp.Result().Code)

	local, err := c.UpdateRoamingAuthorisationList(context.Background(), ochp.UpdateRoamingAuthorisationListRequest{})
	require.NoError(t, err)
	assert.True(t, local.Local)
	assert.Equal(t, int32(1), p.hits.Load())
}

func TestCPOClient_AddCDRsRejectsEmptyCollection(t *testing.T) {
	p := newPeer(t, respond(ochp.AddCDRsResponse{Result: ochp.OK("")}))
	c := newCPO(t, p)
	rec := record(c.Lifecycle)

	resp, err := c.AddCDRs(context.Background(), ochp.AddCDRsRequest{})
	assert.ErrorIs(t, err, ochp.ErrInvalidArgument)
	assert.Nil(t, resp)
	assert.Zero(t, p.hits.Load())
	assert.Empty(t, rec.types())
}

func TestCPOClient_GetSingleRoamingAuthorisation(t *testing.T) {
	known := ochp.RoamingAuthorisationInfo{
		EMTID:      testEMTID(t, "1234"),
		ContractID: "DE-GEF-123456789",
		ExpiryDate: testExpiry,
	}
	p := newPeer(t, func(action string, body *etree.Element) (int, []byte) {
		req, err := ochp.ParseGetSingleRoamingAuthorisationRequest(body)
		if err != nil {
			data, _ := soap.MarshalFault(soap.ClientFault("%v", err))
			return http.StatusInternalServerError, data
		}
		resp := ochp.GetSingleRoamingAuthorisationResponse{Result: ochp.InvalidID("unknown EMT id")}
		if req.EMTID.Key() == known.EMTID.Key() {
			resp = ochp.GetSingleRoamingAuthorisationResponse{Result: ochp.OK(""), Info: &known}
		}
		data, _ := soap.Marshal(resp.ToXML())
		return http.StatusOK, data
	})
	c := newCPO(t, p)
	rec := record(c.Lifecycle)
	ctx := context.Background()

	ok, err := c.GetSingleRoamingAuthorisation(ctx,
		ochp.GetSingleRoamingAuthorisationRequest{EMTID: testEMTID(t, "1234")},
		WithEventTrackingID("track-1234"))
	require.NoError(t, err)
	assert.False(t, ok.IsFault)
	assert.True(t, ok.IsSuccess())
	assert.Equal(t, ochp.ResultCodeOK, ok.Result().Code)
	require.NotNil(t, ok.Content.Info)
	assert.Equal(t, known, *ok.Content.Info)
	assert.Equal(t, "track-1234", ok.EventTrackingID)
	assert.Equal(t, http.StatusOK, ok.HTTPStatus)
	assert.Equal(t, fullLifecycle, rec.types())

	unknown, err := c.GetSingleRoamingAuthorisation(ctx,
		ochp.GetSingleRoamingAuthorisationRequest{EMTID: testEMTID(t, "567891")})
	require.NoError(t, err)
	assert.False(t, unknown.IsFault)
	assert.Nil(t, unknown.Exception)
	assert.Equal(t, ochp.ResultCodeInvalidID, unknown.Result().Code)
	assert.Nil(t, unknown.Content.Info)

	assert.Equal(t, []string{
		string(ochp.ActionGetSingleRoamingAuthorisation), string(ochp.ActionGetSingleRoamingAuthorisation),
	}, p.seen())
}

func TestClient_TransportOutcomes(t *testing.T) {
	faultBody, err := soap.MarshalFault(soap.ServerFault("backend down"))
	require.NoError(t, err)
	wrongRoot, err := soap.Marshal(ochp.GetChargePointListResponse{Result: ochp.OK("")}.ToXML())
	require.NoError(t, err)

	tests := []struct {
		name          string
		status        int
		body          []byte
		wantCode      ochp.ResultCode
		wantDesc      string
		wantException bool
	}{
		{"soap fault", http.StatusInternalServerError, faultBody, ochp.ResultCodeFormat, "Invalid SOAP => ", false},
		{"http error", http.StatusServiceUnavailable, []byte("maintenance"), ochp.ResultCodeServer, "HTTP 503 => maintenance", false},
		{"garbage", http.StatusOK, []byte("not xml"), ochp.ResultCodeFormat, "invalid response envelope", true},
		{"unexpected response element", http.StatusOK, wrongRoot, ochp.ResultCodeFormat, "failed to parse GetStatusResponse", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPeer(t, func(string, *etree.Element) (int, []byte) { return tt.status, tt.body })
			c := newEMP(t, p)
			rec := record(c.Lifecycle)

			resp, err := c.GetStatus(context.Background(), ochp.GetStatusRequest{})
			require.NoError(t, err)
			require.NotNil(t, resp)

			assert.True(t, resp.IsFault)
			assert.False(t, resp.IsSuccess())
			assert.Equal(t, tt.status, resp.HTTPStatus)
			assert.Equal(t, tt.wantCode, resp.Result().Code)
			assert.Contains(t, resp.Result().Description, tt.wantDesc)
			assert.Equal(t, tt.wantException, resp.Exception != nil)
			assert.Empty(t, resp.Content.EVSEStatus)
			assert.Equal(t, fullLifecycle, rec.types())
		})
	}
}

func TestClient_SOAPFaultCarriesFaultBody(t *testing.T) {
	faultBody, err := soap.MarshalFault(soap.ServerFault("backend down"))
	require.NoError(t, err)
	p := newPeer(t, func(string, *etree.Element) (int, []byte) { return http.StatusInternalServerError, faultBody })
	c := newCPO(t, p)

	resp, err := c.GetServiceEndpoints(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Invalid SOAP => "+string(faultBody), resp.Result().Description)
}

func TestClient_TimeoutAndCancellation(t *testing.T) {
	release := make(chan struct{})
	p := newPeer(t, func(string, *etree.Element) (int, []byte) {
		<-release
		data, _ := soap.Marshal(ochp.GetChargePointListResponse{Result: ochp.OK("")}.ToXML())
		return http.StatusOK, data
	})
	defer close(release)
	c := newEMP(t, p)

	resp, err := c.GetChargePointList(context.Background(), WithTimeout(20*time.Millisecond))
	require.NoError(t, err)
	assert.True(t, resp.IsFault)
	assert.Equal(t, ochp.ResultCodeFormat, resp.Result().Code)
	assert.ErrorIs(t, resp.Exception, context.DeadlineExceeded)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	resp, err = c.GetChargePointList(ctx)
	require.NoError(t, err)
	assert.True(t, resp.IsFault)
	assert.ErrorIs(t, resp.Exception, context.Canceled)
}

func TestClient_MissingTimeout(t *testing.T) {
	p := newPeer(t, respond(ochp.GetChargePointListResponse{Result: ochp.OK("")}))
	cfg := testConfig(p)
	cfg.DefaultTimeout = 0
	c, err := NewEMPClient(cfg, nil)
	require.NoError(t, err)

	_, err = c.GetChargePointList(context.Background())
	assert.ErrorIs(t, err, ErrMissingTimeout)

	resp, err := c.GetChargePointList(context.Background(), WithTimeout(time.Second))
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, int32(1), p.hits.Load())
}

func TestClient_ObserverFailuresDoNotAbortCall(t *testing.T) {
	p := newPeer(t, respond(ochp.GetChargePointListResponse{Result: ochp.OK("")}))
	c := newEMP(t, p)

	c.OnRequest.Add(func(context.Context, *events.RequestEvent) error { panic("observer bug") })
	c.OnSOAPRequest.Add(func(context.Context, *events.SOAPRequestEvent) error { return errors.New("broken") })
	var responses atomic.Int32
	c.OnResponse.Add(func(_ context.Context, e *events.ResponseEvent) error {
		responses.Add(1)
		assert.True(t, e.Runtime > 0)
		assert.Equal(t, ochp.ActionGetChargePointList, e.GetAction())
		return nil
	})

	resp, err := c.GetChargePointList(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, int32(1), responses.Load())
}

func TestClient_SOAPEventsCarryWireBodies(t *testing.T) {
	p := newPeer(t, respond(ochp.ReportDiscrepancyResponse{Result: ochp.OK("")}))
	c := newEMP(t, p)

	var sent *events.SOAPRequestEvent
	var received *events.SOAPResponseEvent
	c.OnSOAPRequest.Add(func(_ context.Context, e *events.SOAPRequestEvent) error { sent = e; return nil })
	c.OnSOAPResponse.Add(func(_ context.Context, e *events.SOAPResponseEvent) error { received = e; return nil })

	req, err := ochp.NewReportDiscrepancyRequest(ochp.MustEVSEID("DE*GEF*E123456789*1"), "connector broken")
	require.NoError(t, err)
	resp, err := c.ReportDiscrepancy(context.Background(), req, WithEventTrackingID("track-d"))
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())

	require.NotNil(t, sent)
	assert.Equal(t, p.server.URL, sent.URL)
	assert.Equal(t, string(ochp.ActionReportDiscrepancy), sent.SOAPAction)
	assert.Contains(t, sent.Body, "connector broken")
	assert.Equal(t, "track-d", sent.GetMetadata().EventTrackingID)
	require.NotNil(t, received)
	assert.Equal(t, http.StatusOK, received.HTTPStatus)
	assert.Contains(t, received.Body, "ReportDiscrepancyResponse")
	assert.Empty(t, received.Err)
}

func TestClient_ConcurrentCalls(t *testing.T) {
	p := newPeer(t, respond(ochp.GetStatusResponse{Result: ochp.OK("")}))
	c := newEMP(t, p)
	rec := record(c.Lifecycle)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := c.GetStatus(context.Background(), ochp.GetStatusRequest{})
			assert.NoError(t, err)
			assert.True(t, resp.IsSuccess())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(16), p.hits.Load())
	assert.Len(t, rec.types(), 64)
}

func TestDirectClient_SelectEVSE(t *testing.T) {
	ttl := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	p := newPeer(t, func(action string, body *etree.Element) (int, []byte) {
		if _, err := ochp.ParseSelectEVSERequest(body); err != nil {
			data, _ := soap.MarshalFault(soap.ClientFault("%v", err))
			return http.StatusInternalServerError, data
		}
		data, _ := soap.Marshal(ochp.SelectEVSEResponse{
			Result:   ochp.OK(""),
			DirectID: "4f8c1a2b-direct",
			TTL:      &ttl,
		}.ToXML())
		return http.StatusOK, data
	})
	c, err := NewDirectClient(testConfig(p), nil)
	require.NoError(t, err)

	req, err := ochp.NewSelectEVSERequest(ochp.MustEVSEID("DE*GEF*E123456789*1"), "DE-GEF-123456789", nil)
	require.NoError(t, err)
	resp, err := c.SelectEVSE(context.Background(), req)
	require.NoError(t, err)
	require.True(t, resp.IsSuccess(), resp.Result().String())
	assert.Equal(t, ochp.DirectID("4f8c1a2b-direct"), resp.Content.DirectID)
	require.NotNil(t, resp.Content.TTL)
	assert.True(t, ttl.Equal(*resp.Content.TTL))
	assert.Equal(t, []string{string(ochp.ActionSelectEVSE)}, p.seen())
}
