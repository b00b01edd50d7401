package message

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/charging-platform/ochp-roaming/internal/domain/events"
	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
)

type mockPublisher struct {
	mock.Mock
	mu     sync.Mutex
	events []events.Event
}

func (m *mockPublisher) PublishEvent(event events.Event) error {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
	return m.Called(event.GetType()).Error(0)
}

func (m *mockPublisher) types() []events.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]events.EventType, len(m.events))
	for i, e := range m.events {
		out[i] = e.GetType()
	}
	return out
}

func fireAll(t *testing.T, l *events.Lifecycle) {
	t.Helper()
	ctx := context.Background()
	factory := events.NewEventFactory("cpo", events.RoleClient)
	req := ochp.GetServiceEndpointsRequest{}

	require.NoError(t, l.OnRequest.Notify(ctx, factory.CreateRequestEvent("t-1", req, time.Second)))
	require.NoError(t, l.OnSOAPRequest.Notify(ctx, factory.CreateSOAPRequestEvent("t-1", req.Action(), "http://ch", "<xml/>")))
	require.NoError(t, l.OnSOAPResponse.Notify(ctx, factory.CreateSOAPResponseEvent("t-1", req.Action(), 200, "<xml/>", time.Millisecond, nil)))
	require.NoError(t, l.OnResponse.Notify(ctx, factory.CreateResponseEvent("t-1", req, nil, ochp.OK(""), false, time.Millisecond)))
}

func TestEventBridge_ApplicationEventsOnly(t *testing.T) {
	publisher := &mockPublisher{}
	publisher.On("PublishEvent", mock.Anything).Return(nil)

	lifecycle := events.NewLifecycle()
	remove := NewEventBridge(publisher, false, nil).Attach(lifecycle)
	fireAll(t, lifecycle)

	assert.Equal(t, []events.EventType{events.EventTypeRequest, events.EventTypeResponse}, publisher.types())

	remove()
	fireAll(t, lifecycle)
	assert.Len(t, publisher.types(), 2)
}

func TestEventBridge_IncludeSOAP(t *testing.T) {
	publisher := &mockPublisher{}
	publisher.On("PublishEvent", mock.Anything).Return(nil)

	lifecycle := events.NewLifecycle()
	NewEventBridge(publisher, true, nil).Attach(lifecycle)
	fireAll(t, lifecycle)

	assert.Equal(t, []events.EventType{
		events.EventTypeRequest, events.EventTypeSOAPRequest, events.EventTypeSOAPResponse, events.EventTypeResponse,
	}, publisher.types())
}

func TestEventBridge_PublishFailureDoesNotFailObserver(t *testing.T) {
	publisher := &mockPublisher{}
	publisher.On("PublishEvent", mock.Anything).Return(errors.New("broker down"))

	lifecycle := events.NewLifecycle()
	NewEventBridge(publisher, false, nil).Attach(lifecycle)
	fireAll(t, lifecycle)

	assert.Len(t, publisher.types(), 2)
}
