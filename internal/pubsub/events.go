// Package pubsub provides a generic publish/subscribe event system used to
// fan register-store changes and log entries out to the UI.
package pubsub

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType classifies a published event.
type EventType string

const (
	// CreatedEvent marks a key seen for the first time.
	CreatedEvent EventType = "created"
	// UpdatedEvent marks a key whose register was replaced.
	UpdatedEvent EventType = "updated"
	// DeletedEvent marks a key removed from the store.
	DeletedEvent EventType = "deleted"
	// ClearedEvent marks a whole-store clear.
	ClearedEvent EventType = "cleared"
)

// Event is a published event with a typed payload. ID is unique per publish
// so consumers can de-duplicate across overlapping subscriptions.
type Event[T any] struct {
	ID      uuid.UUID
	Type    EventType
	Payload T
	At      time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
