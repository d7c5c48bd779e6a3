// Package live fans appointment changes out to standing subscriptions.
package live

import (
	"context"
	"errors"
)

var ErrClosed = errors.New("live: broker closed")

// Event is one committed change delivered to subscribers of Topic.
type Event struct {
	Topic   string
	Payload []byte
}

type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

type Broker interface {
	Publisher
	// Subscribe delivers events for the given topics until the subscription
	// is closed or ctx is done.
	Subscribe(ctx context.Context, topics ...string) (*Subscription, error)
	Close() error
}

// Subscription is a consumer's registration. Close unregisters it and is
// safe to call more than once.
type Subscription struct {
	C <-chan Event

	cancel func()
}

func (s *Subscription) Close() {
	s.cancel()
}

func AppointmentTopic(id string) string { return "appointment:" + id }
func OwnerTopic(ownerID string) string  { return "owner:" + ownerID }
func DateTopic(date string) string      { return "date:" + date }
