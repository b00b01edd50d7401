package message

import (
	"context"
	"errors"

	"github.com/IBM/sarama"

	"github.com/charging-platform/ochp-roaming/internal/domain/events"
)

// ErrProducerClosed 生产者已关闭
var ErrProducerClosed = errors.New("message: producer closed")

// EventProducer 定义了向消息队列发布事件的接口
type EventProducer interface {
	// PublishEvent 异步发布一个事件
	PublishEvent(event events.Event) error
	// Close 关闭生产者
	Close() error
}

// SaramaConsumerGroup sarama.ConsumerGroup 中消费者用到的部分，便于测试注入
type SaramaConsumerGroup interface {
	Consume(ctx context.Context, topics []string, handler sarama.ConsumerGroupHandler) error
	Close() error
}
