// Package messaging wraps watermill with typed publish and consume helpers
// shared by the API and the notification consumer.
package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publish publishes one typed event. Callers treat failures as best-effort:
// a failed publish never rolls back the store write that preceded it.
type Publish[T any] func(event *T) error

// NewPublishFunc binds a typed publish function to one topic.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encode event for %s: %w", topic, err)
		}

		return publisher.Publish(topic, message.NewMessage(watermill.NewUUID(), payload))
	}
}

// PublisherGroup owns the underlying publisher so the container can shut it
// down once, regardless of how many typed publish functions were derived.
type PublisherGroup struct {
	publisher message.Publisher
}

// NewPublisherGroup wraps a publisher for lifecycle management.
func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

// Publisher exposes the wrapped publisher for deriving typed publish functions.
func (g *PublisherGroup) Publisher() message.Publisher {
	return g.publisher
}

// Shutdown closes the underlying publisher.
func (g *PublisherGroup) Shutdown() error {
	return g.publisher.Close()
}
