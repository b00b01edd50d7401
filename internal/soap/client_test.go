package soap

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultClientConfig(srv.URL)
	cfg.HTTPClient = srv.Client()
	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

func mustMarshal(t *testing.T) []byte {
	t.Helper()
	data, err := Marshal(ochpBody())
	require.NoError(t, err)
	return data
}

func TestNewClient_RequiresURL(t *testing.T) {
	_, err := NewClient(nil)
	assert.Error(t, err)
	_, err = NewClient(&ClientConfig{})
	assert.Error(t, err)
}

func TestClient_QuerySuccess(t *testing.T) {
	var gotAction, gotContentType string
	var gotBody []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAction = r.Header.Get("SOAPAction")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write(mustMarshal(t))
	})

	request := mustMarshal(t)
	result := client.Query(context.Background(), "GetStatusRequest", request, time.Second)

	require.Equal(t, OutcomeSuccess, result.Outcome, result.Err)
	assert.Equal(t, `"GetStatusRequest"`, gotAction)
	assert.Equal(t, ContentType, gotContentType)
	assert.Equal(t, request, gotBody)
	assert.Equal(t, http.StatusOK, result.HTTPStatus)
	assert.Equal(t, "GetStatusRequest", result.Envelope.Body.Tag)
	assert.Nil(t, result.Fault())
	assert.True(t, result.Runtime > 0)
}

func TestClient_QueryOutcomes(t *testing.T) {
	faultBody, err := MarshalFault(ServerFault("boom"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		status  int
		body    []byte
		want    Outcome
		wantErr bool
	}{
		{name: "fault over 500", status: 500, body: faultBody, want: OutcomeSOAPFault},
		{name: "fault over 200", status: 200, body: faultBody, want: OutcomeSOAPFault},
		{name: "plain 503", status: 503, body: []byte("maintenance"), want: OutcomeHTTPError, wantErr: true},
		{name: "404 html", status: 404, body: []byte("<html>not found</html>"), want: OutcomeHTTPError, wantErr: true},
		{name: "200 garbage", status: 200, body: []byte("not xml"), want: OutcomeException, wantErr: true},
		{name: "200 empty body", status: 200, body: []byte(`<e:Envelope xmlns:e="http://schemas.xmlsoap.org/soap/envelope/"><e:Body/></e:Envelope>`), want: OutcomeException, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write(tt.body)
			})

			result := client.Query(context.Background(), "GetStatusRequest", mustMarshal(t), time.Second)
			assert.Equal(t, tt.want, result.Outcome)
			assert.Equal(t, tt.status, result.HTTPStatus)
			assert.Equal(t, string(tt.body), result.RawBody)
			assert.Equal(t, tt.wantErr, result.Err != nil)
			if tt.want == OutcomeSOAPFault {
				require.NotNil(t, result.Fault())
				assert.Equal(t, "boom", result.Fault().String)
			}
		})
	}
}

func TestClient_QueryTimeout(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	result := client.Query(context.Background(), "GetStatusRequest", mustMarshal(t), 20*time.Millisecond)
	assert.Equal(t, OutcomeException, result.Outcome)
	assert.ErrorIs(t, result.Err, context.DeadlineExceeded)
}

func TestClient_QueryCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write(mustMarshal(t))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := client.Query(ctx, "GetStatusRequest", mustMarshal(t), time.Second)
	assert.Equal(t, OutcomeException, result.Outcome)
	assert.ErrorIs(t, result.Err, context.Canceled)
}

func TestClient_ResponseLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(mustMarshal(t))
	}))
	defer srv.Close()

	client, err := NewClient(&ClientConfig{URL: srv.URL, MaxResponseBytes: 16, HTTPClient: srv.Client()})
	require.NoError(t, err)

	result := client.Query(context.Background(), "GetStatusRequest", mustMarshal(t), time.Second)
	assert.Equal(t, OutcomeException, result.Outcome)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "soap_fault", OutcomeSOAPFault.String())
	assert.Equal(t, "exception", OutcomeException.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
