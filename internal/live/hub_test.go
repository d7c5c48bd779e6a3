package live

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case ev, ok := <-sub.C:
		require.True(t, ok, "subscription closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
	return Event{}
}

func TestHub_DeliversToTopicSubscribers(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	ctx := context.Background()

	a, err := hub.Subscribe(ctx, AppointmentTopic("1"))
	require.NoError(t, err)
	defer a.Close()

	b, err := hub.Subscribe(ctx, DateTopic("2025-03-10"), AppointmentTopic("1"))
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, hub.Publish(ctx, AppointmentTopic("1"), []byte("x")))
	require.NoError(t, hub.Publish(ctx, DateTopic("2025-03-10"), []byte("y")))

	assert.Equal(t, "x", string(receive(t, a).Payload))
	assert.Equal(t, "x", string(receive(t, b).Payload))
	ev := receive(t, b)
	assert.Equal(t, "date:2025-03-10", ev.Topic)
	assert.Equal(t, "y", string(ev.Payload))
}

func TestHub_CloseUnregisters(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub, err := hub.Subscribe(context.Background(), AppointmentTopic("1"))
	require.NoError(t, err)
	assert.Equal(t, 1, hub.Subscribers(AppointmentTopic("1")))

	sub.Close()
	sub.Close()

	assert.Eventually(t, func() bool {
		return hub.Subscribers(AppointmentTopic("1")) == 0
	}, time.Second, 5*time.Millisecond)

	_, ok := <-sub.C
	assert.False(t, ok)
}

func TestHub_ContextCancelUnregisters(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	_, err := hub.Subscribe(ctx, OwnerTopic("u1"))
	require.NoError(t, err)

	cancel()
	assert.Eventually(t, func() bool {
		return hub.Subscribers(OwnerTopic("u1")) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestHub_SlowSubscriberKeepsLatest(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	ctx := context.Background()

	sub, err := hub.Subscribe(ctx, AppointmentTopic("1"))
	require.NoError(t, err)
	defer sub.Close()

	for i := 0; i < subscriberBuffer*3; i++ {
		require.NoError(t, hub.Publish(ctx, AppointmentTopic("1"), []byte{byte(i)}))
	}

	var last Event
	for i := 0; i < subscriberBuffer; i++ {
		last = receive(t, sub)
	}
	assert.Equal(t, []byte{byte(subscriberBuffer*3 - 1)}, last.Payload)
}

func TestHub_Closed(t *testing.T) {
	hub := NewHub()
	require.NoError(t, hub.Close())

	assert.ErrorIs(t, hub.Publish(context.Background(), "t", nil), ErrClosed)
	_, err := hub.Subscribe(context.Background(), "t")
	assert.ErrorIs(t, err, ErrClosed)
}
