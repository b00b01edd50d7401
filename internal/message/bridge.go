package message

import (
	"context"

	"github.com/charging-platform/ochp-roaming/internal/domain/events"
	"github.com/charging-platform/ochp-roaming/internal/logger"
	"github.com/charging-platform/ochp-roaming/internal/metrics"
)

// Publisher 事件发布方，KafkaProducer 实现该接口
type Publisher interface {
	PublishEvent(event events.Event) error
}

// EventBridge 订阅调用生命周期，把事件转发给 Publisher
type EventBridge struct {
	publisher Publisher
	// soap 为 true 时同时转发包含完整报文的SOAP层事件
	soap bool
	log  *logger.Logger
}

// NewEventBridge 创建事件桥
func NewEventBridge(publisher Publisher, includeSOAP bool, log *logger.Logger) *EventBridge {
	return &EventBridge{
		publisher: publisher,
		soap:      includeSOAP,
		log:       logger.OrNop(log).With("component", "event_bridge"),
	}
}

// Attach 订阅 l 的观察点，返回取消订阅函数
func (b *EventBridge) Attach(l *events.Lifecycle) (remove func()) {
	removers := []func(){
		l.OnRequest.Add(publishTo[*events.RequestEvent](b)),
		l.OnResponse.Add(publishTo[*events.ResponseEvent](b)),
	}
	if b.soap {
		removers = append(removers,
			l.OnSOAPRequest.Add(publishTo[*events.SOAPRequestEvent](b)),
			l.OnSOAPResponse.Add(publishTo[*events.SOAPResponseEvent](b)),
		)
	}
	return func() {
		for _, r := range removers {
			r()
		}
	}
}

// publishTo 发布失败只记录日志，不影响调用本身
func publishTo[E events.Event](b *EventBridge) events.Observer[E] {
	return func(ctx context.Context, event E) error {
		if err := b.publisher.PublishEvent(event); err != nil {
			b.log.With("action", event.GetAction().String()).WarnWithErr(err, "failed to publish lifecycle event")
			return nil
		}
		metrics.EventsPublished.WithLabelValues(string(event.GetType())).Inc()
		return nil
	}
}
