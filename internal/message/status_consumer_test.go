package message_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/domain/wwcp"
	"github.com/charging-platform/ochp-roaming/internal/message"
)

const evseID = "DE*GEF*E123456789*1"

// MockSaramaConsumerGroup is a mock for our SaramaConsumerGroup interface
type MockSaramaConsumerGroup struct {
	mock.Mock
}

func (m *MockSaramaConsumerGroup) Consume(ctx context.Context, topics []string, handler sarama.ConsumerGroupHandler) error {
	args := m.Called(ctx, topics, handler)
	return args.Error(0)
}

func (m *MockSaramaConsumerGroup) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockSaramaConsumerGroupSession is a mock for sarama.ConsumerGroupSession
type MockSaramaConsumerGroupSession struct {
	mock.Mock
	ctx context.Context
}

func (m *MockSaramaConsumerGroupSession) MarkMessage(msg *sarama.ConsumerMessage, metadata string) {
	m.Called(msg, metadata)
}

func (m *MockSaramaConsumerGroupSession) Context() context.Context {
	if m.ctx == nil {
		return context.Background()
	}
	return m.ctx
}

func (m *MockSaramaConsumerGroupSession) Claims() map[string][]int32 { return nil }
func (m *MockSaramaConsumerGroupSession) MemberID() string           { return "" }
func (m *MockSaramaConsumerGroupSession) GenerationID() int32        { return 0 }
func (m *MockSaramaConsumerGroupSession) MarkOffset(topic string, partition int32, offset int64, metadata string) {
}
func (m *MockSaramaConsumerGroupSession) ResetOffset(topic string, partition int32, offset int64, metadata string) {
}
func (m *MockSaramaConsumerGroupSession) Commit() {}

// MockSaramaConsumerGroupClaim is a mock for sarama.ConsumerGroupClaim
type MockSaramaConsumerGroupClaim struct {
	msgChan chan *sarama.ConsumerMessage
	part    int32
}

func (m *MockSaramaConsumerGroupClaim) Messages() <-chan *sarama.ConsumerMessage {
	return m.msgChan
}

func (m *MockSaramaConsumerGroupClaim) Partition() int32 {
	return m.part
}

func (m *MockSaramaConsumerGroupClaim) Topic() string              { return "ochp-evse-status" }
func (m *MockSaramaConsumerGroupClaim) InitialOffset() int64       { return 0 }
func (m *MockSaramaConsumerGroupClaim) HighWaterMarkOffset() int64 { return 0 }

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func claimOf(values ...[]byte) *MockSaramaConsumerGroupClaim {
	msgChan := make(chan *sarama.ConsumerMessage, len(values))
	for i, v := range values {
		msgChan <- &sarama.ConsumerMessage{Value: v, Offset: int64(i)}
	}
	close(msgChan)
	return &MockSaramaConsumerGroupClaim{msgChan: msgChan}
}

func TestStatusCommand_ToEVSEStatus(t *testing.T) {
	ttl := time.Date(2026, 6, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	status, err := message.StatusCommand{EVSEID: evseID, Major: "not-available", Minor: "charging", TTL: &ttl}.ToEVSEStatus()
	require.NoError(t, err)
	assert.Equal(t, ochp.MajorStatusNotAvailable, status.Major)
	assert.Equal(t, ochp.MinorStatusCharging, status.Minor)
	require.NotNil(t, status.TTL)
	assert.Equal(t, time.UTC, status.TTL.Location())
	assert.True(t, ttl.Equal(*status.TTL))

	status, err = message.StatusCommand{EVSEID: evseID, Major: "available", Status: wwcp.EVSEStatusReserved}.ToEVSEStatus()
	require.NoError(t, err)
	assert.Equal(t, ochp.MajorStatusNotAvailable, status.Major)
	assert.Equal(t, ochp.MinorStatusReserved, status.Minor)

	_, err = message.StatusCommand{EVSEID: evseID, Major: "broken"}.ToEVSEStatus()
	assert.ErrorIs(t, err, ochp.ErrInvalidValue)

	_, err = message.StatusCommand{EVSEID: evseID, Major: "available", Minor: "sleeping"}.ToEVSEStatus()
	assert.ErrorIs(t, err, ochp.ErrInvalidValue)

	_, err = message.StatusCommand{EVSEID: "not-an-evse", Major: "available"}.ToEVSEStatus()
	assert.ErrorIs(t, err, ochp.ErrInvalidValue)
}

func TestConsumeClaim(t *testing.T) {
	testCases := []struct {
		name          string
		messageValue  []byte
		handlerErr    error
		expectHandled bool
	}{
		{
			name:          "should hand valid status to handler",
			messageValue:  mustMarshal(t, message.StatusCommand{EVSEID: evseID, Major: "available", Minor: "available"}),
			expectHandled: true,
		},
		{
			name:          "should still mark message when handler fails",
			messageValue:  mustMarshal(t, message.StatusCommand{EVSEID: evseID, Status: wwcp.EVSEStatusCharging}),
			handlerErr:    errors.New("clearing house unavailable"),
			expectHandled: true,
		},
		{
			name:         "should not process invalid json message but still mark it",
			messageValue: []byte(`{"invalid": "json"`),
		},
		{
			name:         "should skip status that fails validation",
			messageValue: mustMarshal(t, message.StatusCommand{EVSEID: evseID, Major: "on-fire"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var received []ochp.EVSEStatus
			handler := func(ctx context.Context, status ochp.EVSEStatus) error {
				received = append(received, status)
				return tc.handlerErr
			}

			consumer := message.NewStatusConsumerWithGroup(new(MockSaramaConsumerGroup), "ochp-evse-status", nil)
			consumer.SetHandlerForTest(handler)

			mockSession := &MockSaramaConsumerGroupSession{}
			mockSession.On("MarkMessage", mock.Anything, "").Return().Once()

			err := consumer.ConsumeClaim(mockSession, claimOf(tc.messageValue))
			assert.NoError(t, err)

			if tc.expectHandled {
				require.Len(t, received, 1)
				assert.Equal(t, ochp.EVSEID(evseID), received[0].EVSEID)
			} else {
				assert.Empty(t, received)
			}
			mockSession.AssertExpectations(t)
		})
	}
}

func TestConsumeClaim_StopsWhenSessionEnds(t *testing.T) {
	consumer := message.NewStatusConsumerWithGroup(new(MockSaramaConsumerGroup), "ochp-evse-status", nil)
	consumer.SetHandlerForTest(func(ctx context.Context, status ochp.EVSEStatus) error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mockSession := &MockSaramaConsumerGroupSession{ctx: ctx}

	// 消息通道保持打开，session 结束后 ConsumeClaim 必须返回
	claim := &MockSaramaConsumerGroupClaim{msgChan: make(chan *sarama.ConsumerMessage)}
	assert.NoError(t, consumer.ConsumeClaim(mockSession, claim))
	mockSession.AssertNotCalled(t, "MarkMessage", mock.Anything, mock.Anything)
}

func TestStatusConsumerStartAndClose(t *testing.T) {
	topic := "ochp-evse-status"
	mockConsumerGroup := new(MockSaramaConsumerGroup)

	var wg sync.WaitGroup
	wg.Add(1)
	var received ochp.EVSEStatus
	handler := func(ctx context.Context, status ochp.EVSEStatus) error {
		received = status
		wg.Done()
		return nil
	}

	// 第一次 Consume 模拟一次 session：投递一条消息后返回
	mockConsumerGroup.On("Consume", mock.Anything, []string{topic}, mock.Anything).
		Run(func(args mock.Arguments) {
			h := args.Get(2).(sarama.ConsumerGroupHandler)
			session := &MockSaramaConsumerGroupSession{ctx: args.Get(0).(context.Context)}
			session.On("MarkMessage", mock.Anything, "").Return()
			_ = h.ConsumeClaim(session, claimOf(mustMarshal(t, message.StatusCommand{EVSEID: evseID, Major: "unknown"})))
		}).Return(nil).Once()
	mockConsumerGroup.On("Consume", mock.Anything, []string{topic}, mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).Return(context.Canceled)
	mockConsumerGroup.On("Close").Return(nil).Once()

	consumer := message.NewStatusConsumerWithGroup(mockConsumerGroup, topic, nil)
	require.NoError(t, consumer.Start(context.Background(), handler))
	assert.Error(t, consumer.Start(context.Background(), handler), "second start must fail")

	wg.Wait()
	assert.Equal(t, ochp.MajorStatusUnknown, received.Major)

	require.NoError(t, consumer.Close())
	mockConsumerGroup.AssertExpectations(t)
}

func TestStatusConsumer_StartRequiresHandler(t *testing.T) {
	consumer := message.NewStatusConsumerWithGroup(new(MockSaramaConsumerGroup), "ochp-evse-status", nil)
	assert.ErrorIs(t, consumer.Start(context.Background(), nil), ochp.ErrInvalidArgument)
}
