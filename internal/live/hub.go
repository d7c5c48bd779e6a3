package live

import (
	"context"
	"sync"
)

const subscriberBuffer = 16

type subscriber struct {
	ch     chan Event
	topics []string
	once   sync.Once
}

// Hub is the in-process broker. A slow subscriber loses its oldest buffered
// events, never the newest one.
type Hub struct {
	mu     sync.Mutex
	topics map[string]map[*subscriber]struct{}
	closed bool
}

func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[*subscriber]struct{})}
}

func (h *Hub) Publish(_ context.Context, topic string, payload []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}

	ev := Event{Topic: topic, Payload: payload}
	for sub := range h.topics[topic] {
		deliver(sub.ch, ev)
	}
	return nil
}

func deliver(ch chan Event, ev Event) {
	for {
		select {
		case ch <- ev:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func (h *Hub) Subscribe(ctx context.Context, topics ...string) (*Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrClosed
	}

	sub := &subscriber{
		ch:     make(chan Event, subscriberBuffer),
		topics: topics,
	}
	for _, t := range topics {
		if h.topics[t] == nil {
			h.topics[t] = make(map[*subscriber]struct{})
		}
		h.topics[t][sub] = struct{}{}
	}

	ctx, cancel := context.WithCancel(ctx)
	go func() {
		<-ctx.Done()
		h.remove(sub)
	}()

	return &Subscription{C: sub.ch, cancel: cancel}, nil
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, t := range sub.topics {
		delete(h.topics[t], sub)
		if len(h.topics[t]) == 0 {
			delete(h.topics, t)
		}
	}
	sub.once.Do(func() { close(sub.ch) })
}

// Subscribers reports how many registrations listen on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[topic])
}

func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	for t, subs := range h.topics {
		for sub := range subs {
			sub.once.Do(func() { close(sub.ch) })
		}
		delete(h.topics, t)
	}
	return nil
}

var _ Broker = (*Hub)(nil)
