package message

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"github.com/charging-platform/ochp-roaming/internal/config"
	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/logger"
	"github.com/charging-platform/ochp-roaming/internal/metrics"
)

// StatusHandler 处理一条已校验的EVSE状态
type StatusHandler func(ctx context.Context, status ochp.EVSEStatus) error

// StatusConsumer 以消费者组方式读取EVSE状态
type StatusConsumer struct {
	consumerGroup SaramaConsumerGroup
	topic         string
	log           *logger.Logger
	handler       StatusHandler

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewConsumerConfig 消费者的 sarama 配置
func NewConsumerConfig(cfg config.ConsumerConfig) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	if cfg.OffsetsInitial == "oldest" {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	}
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRange()}
	saramaConfig.Consumer.Group.Session.Timeout = 10 * time.Second
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	return saramaConfig
}

// NewStatusConsumer 创建连接到 Kafka 的状态消费者
func NewStatusConsumer(cfg config.KafkaConfig, log *logger.Logger) (*StatusConsumer, error) {
	consumerGroup, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ConsumerGroup, NewConsumerConfig(cfg.Consumer))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama consumer group: %w", err)
	}

	c := NewStatusConsumerWithGroup(consumerGroup, cfg.StatusTopic, log)
	go func() {
		for err := range consumerGroup.Errors() {
			c.log.ErrorWithErr(err, "Sarama consumer group error")
		}
	}()
	return c, nil
}

// NewStatusConsumerWithGroup 注入消费者组，测试中使用
func NewStatusConsumerWithGroup(group SaramaConsumerGroup, topic string, log *logger.Logger) *StatusConsumer {
	return &StatusConsumer{
		consumerGroup: group,
		topic:         topic,
		log:           logger.OrNop(log).With("component", "status_consumer").With("topic", topic),
	}
}

// Start 在后台开始消费，直到 ctx 取消或 Close
func (c *StatusConsumer) Start(ctx context.Context, handler StatusHandler) error {
	if handler == nil {
		return fmt.Errorf("%w: status handler must not be nil", ochp.ErrInvalidArgument)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return fmt.Errorf("status consumer already started")
	}
	c.handler = handler
	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})

	go func() {
		defer close(c.done)
		for {
			// Consume 在一次 session 结束或重平衡时返回
			if err := c.consumerGroup.Consume(ctx, []string{c.topic}, c); err != nil {
				c.log.ErrorWithErr(err, "Error from Kafka consumer group")
			}
			if ctx.Err() != nil {
				c.log.Info("Kafka consumer context cancelled, stopping consumption.")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
		}
	}()
	return nil
}

// Close 停止消费并关闭消费者组
func (c *StatusConsumer) Close() error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	return c.consumerGroup.Close()
}

// -- sarama.ConsumerGroupHandler 接口实现 --

func (c *StatusConsumer) Setup(sarama.ConsumerGroupSession) error {
	c.log.Info("Kafka consumer group setup completed.")
	return nil
}

func (c *StatusConsumer) Cleanup(sarama.ConsumerGroupSession) error {
	c.log.Info("Kafka consumer group cleanup completed.")
	return nil
}

// ConsumeClaim 逐条处理消息；无法解析或处理失败的消息同样标记，避免阻塞分区
func (c *StatusConsumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	c.log.Infof("consuming EVSE status from partition %d", claim.Partition())

	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			c.consume(session.Context(), msg)
			session.MarkMessage(msg, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func (c *StatusConsumer) consume(ctx context.Context, msg *sarama.ConsumerMessage) {
	var cmd StatusCommand
	if err := json.Unmarshal(msg.Value, &cmd); err != nil {
		metrics.StatusCommandsConsumed.WithLabelValues("invalid").Inc()
		c.log.Errorf("Failed to unmarshal Kafka message: %v, message: %s", err, string(msg.Value))
		return
	}
	status, err := cmd.ToEVSEStatus()
	if err != nil {
		metrics.StatusCommandsConsumed.WithLabelValues("invalid").Inc()
		c.log.With("evse_id", cmd.EVSEID).WarnWithErr(err, "invalid EVSE status command")
		return
	}
	if err := c.handler(ctx, status); err != nil {
		metrics.StatusCommandsConsumed.WithLabelValues("failed").Inc()
		c.log.With("evse_id", cmd.EVSEID).ErrorWithErr(err, "failed to handle EVSE status")
		return
	}

	metrics.StatusCommandsConsumed.WithLabelValues("ok").Inc()
	c.log.Debugf("Message consumed: Topic=%s, Partition=%d, Offset=%d, Key=%s",
		msg.Topic, msg.Partition, msg.Offset, string(msg.Key))
}
