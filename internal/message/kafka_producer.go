package message

import (
	"fmt"
	"sync"

	"github.com/IBM/sarama"

	"github.com/charging-platform/ochp-roaming/internal/config"
	"github.com/charging-platform/ochp-roaming/internal/domain/events"
	"github.com/charging-platform/ochp-roaming/internal/logger"
)

// KafkaProducer 把事件以JSON发布到 Kafka
type KafkaProducer struct {
	producer sarama.AsyncProducer
	topic    string
	log      *logger.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewProducerConfig 生产者的 sarama 配置
func NewProducerConfig(cfg config.ProducerConfig) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal     // 只等待本地确认
	saramaConfig.Producer.Compression = sarama.CompressionSnappy // 压缩
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	if cfg.FlushFrequency > 0 {
		saramaConfig.Producer.Flush.Frequency = cfg.FlushFrequency
	}
	if cfg.RetryMax > 0 {
		saramaConfig.Producer.Retry.Max = cfg.RetryMax
	}
	return saramaConfig
}

// NewKafkaProducer 创建一个新的 KafkaProducer
func NewKafkaProducer(cfg config.KafkaConfig, log *logger.Logger) (*KafkaProducer, error) {
	producer, err := sarama.NewAsyncProducer(cfg.Brokers, NewProducerConfig(cfg.Producer))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka async producer: %w", err)
	}
	return NewKafkaProducerWithAsync(producer, cfg.EventTopic, log), nil
}

// NewKafkaProducerWithAsync 使用已有的 AsyncProducer，测试中注入 mocks.AsyncProducer
func NewKafkaProducerWithAsync(producer sarama.AsyncProducer, topic string, log *logger.Logger) *KafkaProducer {
	kp := &KafkaProducer{
		producer: producer,
		topic:    topic,
		log:      logger.OrNop(log).With("component", "kafka_producer"),
	}

	kp.wg.Add(2)
	go kp.handleSuccesses()
	go kp.handleErrors()

	return kp
}

// PublishEvent 序列化事件并放入发送队列
func (p *KafkaProducer) PublishEvent(event events.Event) error {
	eventData, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal event to JSON: %w", err)
	}

	metadata := event.GetMetadata()
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(eventKey(event)),
		Value: sarama.ByteEncoder(eventData),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.GetType())},
			{Key: []byte("action"), Value: []byte(event.GetAction().String())},
			{Key: []byte("role"), Value: []byte(metadata.Role)},
			{Key: []byte("source"), Value: []byte(metadata.Source)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrProducerClosed
	}
	p.producer.Input() <- msg
	return nil
}

// eventKey 同一次调用的事件落入同一分区，没有跟踪ID时按操作分区
func eventKey(event events.Event) string {
	if id := event.GetMetadata().EventTrackingID; id != "" {
		return id
	}
	return event.GetAction().String()
}

// Close 关闭生产者并等待投递结果处理完毕
func (p *KafkaProducer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	err := p.producer.Close()
	p.wg.Wait()
	if err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}

func (p *KafkaProducer) handleSuccesses() {
	defer p.wg.Done()
	for msg := range p.producer.Successes() {
		zl := p.log.GetLogger()
		zl.Debug().
			Str("topic", msg.Topic).
			Str("key", keyString(msg)).
			Int64("offset", msg.Offset).
			Msg("Kafka message sent successfully")
	}
}

func (p *KafkaProducer) handleErrors() {
	defer p.wg.Done()
	for err := range p.producer.Errors() {
		zl := p.log.GetLogger()
		zl.Error().
			Err(err.Err).
			Str("topic", err.Msg.Topic).
			Str("key", keyString(err.Msg)).
			Msg("Failed to send Kafka message")
	}
}

func keyString(msg *sarama.ProducerMessage) string {
	if msg == nil || msg.Key == nil {
		return ""
	}
	key, err := msg.Key.Encode()
	if err != nil {
		return ""
	}
	return string(key)
}
