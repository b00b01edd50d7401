package soap

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charging-platform/ochp-roaming/internal/domain/events"
)

const testPath = "/service/ochp/v1.4"

func echoHandler(_ context.Context, req *Request) (*etree.Element, error) {
	el := etree.NewElement("OCHP:" + req.Action + "Echo")
	el.CreateAttr("xmlns:OCHP", "http://ochp.eu/1.4")
	el.SetText(req.EventTrackingID)
	return el, nil
}

func post(t *testing.T, h http.Handler, action string, body []byte, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, testPath, bytes.NewReader(body))
	req.Header.Set("Content-Type", ContentType)
	if action != "" {
		req.Header.Set("SOAPAction", `"`+action+`"`)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func responseEnvelope(t *testing.T, rec *httptest.ResponseRecorder) *Envelope {
	t.Helper()
	data, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	env, err := Unmarshal(data)
	require.NoError(t, err)
	return env
}

func TestServer_RoutesBySOAPActionHeader(t *testing.T) {
	s := NewServer(nil, nil)
	s.Handle(testPath, "GetStatusRequest", echoHandler)
	assert.Equal(t, 1, s.Actions(testPath))

	rec := post(t, s.Routes(), "GetStatusRequest", mustMarshal(t), map[string]string{EventTrackingIDHeader: "track-1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, "track-1", rec.Header().Get(EventTrackingIDHeader))
	env := responseEnvelope(t, rec)
	require.False(t, env.IsFault())
	assert.Equal(t, "GetStatusRequestEcho", env.Body.Tag)
	assert.Equal(t, "track-1", env.Body.Text())
}

func TestServer_RoutesByBodyElement(t *testing.T) {
	s := NewServer(nil, nil)
	s.Handle(testPath, "GetStatusRequest", echoHandler)

	rec := post(t, s.Routes(), "", mustMarshal(t), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	env := responseEnvelope(t, rec)
	assert.Equal(t, "GetStatusRequestEcho", env.Body.Tag)
	assert.NotEmpty(t, env.Body.Text(), "tracking id is generated when missing")
}

func TestServer_Faults(t *testing.T) {
	s := NewServer(nil, nil)
	s.Handle(testPath, "GetStatusRequest", echoHandler)
	s.Handle(testPath, "Failing", func(context.Context, *Request) (*etree.Element, error) {
		return nil, errors.New("store unavailable")
	})
	s.Handle(testPath, "Refusing", func(context.Context, *Request) (*etree.Element, error) {
		return nil, ClientFault("unsupported version")
	})
	s.Handle(testPath, "Panicking", func(context.Context, *Request) (*etree.Element, error) {
		panic("boom")
	})
	s.Handle(testPath, "Empty", func(context.Context, *Request) (*etree.Element, error) {
		return nil, nil
	})
	h := s.Routes()

	tests := []struct {
		name       string
		action     string
		body       []byte
		wantCode   string
		wantString string
	}{
		{"unknown action", "Nope", mustMarshal(t), FaultCodeClient, `unknown SOAPAction "Nope"`},
		{"malformed body", "GetStatusRequest", []byte("<broken"), FaultCodeClient, "malformed XML"},
		{"empty body", "GetStatusRequest", []byte(`<e:Envelope xmlns:e="http://schemas.xmlsoap.org/soap/envelope/"><e:Body/></e:Envelope>`), FaultCodeClient, "empty body"},
		{"handler error", "Failing", mustMarshal(t), FaultCodeServer, "store unavailable"},
		{"handler fault", "Refusing", mustMarshal(t), FaultCodeClient, "unsupported version"},
		{"handler panic", "Panicking", mustMarshal(t), FaultCodeServer, "handler panic: boom"},
		{"nil response", "Empty", mustMarshal(t), FaultCodeServer, "handler returned no response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, tt.action, tt.body, nil)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)

			env := responseEnvelope(t, rec)
			require.True(t, env.IsFault())
			assert.Equal(t, tt.wantCode, env.Fault.Code)
			assert.Contains(t, env.Fault.String, tt.wantString)
		})
	}
}

func TestServer_OtherPathNotRouted(t *testing.T) {
	s := NewServer(nil, nil)
	s.Handle(testPath, "GetStatusRequest", echoHandler)

	req := httptest.NewRequest(http.MethodPost, "/elsewhere", bytes.NewReader(mustMarshal(t)))
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	rec = httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_Observers(t *testing.T) {
	s := NewServer(&ServerConfig{Source: "test", MaxBodyBytes: 1 << 20}, nil)
	s.Handle(testPath, "GetStatusRequest", echoHandler)

	var order []string
	var requestEvent *events.SOAPRequestEvent
	var responseEvent *events.SOAPResponseEvent
	s.OnSOAPRequest.Add(func(_ context.Context, e *events.SOAPRequestEvent) error {
		order = append(order, "request")
		requestEvent = e
		return nil
	})
	s.OnSOAPResponse.Add(func(_ context.Context, e *events.SOAPResponseEvent) error {
		order = append(order, "response")
		responseEvent = e
		return errors.New("observer failures are logged only")
	})

	body := mustMarshal(t)
	rec := post(t, s.Routes(), "GetStatusRequest", body, map[string]string{EventTrackingIDHeader: "track-2"})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []string{"request", "response"}, order)
	require.NotNil(t, requestEvent)
	assert.Equal(t, string(body), requestEvent.Body)
	assert.Equal(t, "track-2", requestEvent.GetMetadata().EventTrackingID)
	assert.Equal(t, events.RoleServer, requestEvent.GetMetadata().Role)
	require.NotNil(t, responseEvent)
	assert.Equal(t, http.StatusOK, responseEvent.HTTPStatus)
	assert.Contains(t, responseEvent.Body, "GetStatusRequestEcho")
}

func TestServer_BodyLimit(t *testing.T) {
	s := NewServer(&ServerConfig{Source: "test", MaxBodyBytes: 32}, nil)
	s.Handle(testPath, "GetStatusRequest", echoHandler)

	rec := post(t, s.Routes(), "GetStatusRequest", mustMarshal(t), nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := responseEnvelope(t, rec)
	require.True(t, env.IsFault())
	assert.Contains(t, env.Fault.String, "failed to read request")
}
