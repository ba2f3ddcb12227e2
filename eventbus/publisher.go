package eventbus

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tsawler/formctl/internal/logger"
)

// MetadataEvent is the message metadata key holding the event name
const MetadataEvent = "event"

// Publisher forwards bus events to a watermill topic as JSON messages.
type Publisher struct {
	pub   message.Publisher
	topic string
	log   logger.Logger
}

// NewPublisher creates a Publisher writing to topic. A nil log discards
// publish failures.
func NewPublisher(pub message.Publisher, topic string, log logger.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{pub: pub, topic: topic, log: log}
}

// Publish encodes payload and publishes it with the event name in the
// message metadata.
func (p *Publisher) Publish(event string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", event, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set(MetadataEvent, event)
	if err := p.pub.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("publish %s to %s: %w", event, p.topic, err)
	}
	return nil
}

// Handler returns a bus Handler that publishes every payload of event.
// Failures are logged, never returned to the emitter.
func (p *Publisher) Handler(event string) Handler {
	return func(payload any) {
		if err := p.Publish(event, payload); err != nil {
			p.log.Error("eventbus", "publish failed", map[string]interface{}{
				"event": event,
				"topic": p.topic,
				"error": err,
			})
		}
	}
}
