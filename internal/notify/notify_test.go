package notify

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.err
}

func quiet() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestDispatcher_Delivers(t *testing.T) {
	s := &fakeSender{}
	d := NewDispatcher(s, quiet())

	d.Notify(Message{Kind: KindConfirmed, PetName: "Max"})
	d.Notify(Message{Kind: KindCompleted, PetName: "Max"})
	d.Close()

	assert.Len(t, s.sent, 2)
	assert.Equal(t, KindConfirmed, s.sent[0].Kind)
}

func TestDispatcher_FailureDoesNotStop(t *testing.T) {
	s := &fakeSender{err: errors.New("offline")}
	d := NewDispatcher(s, quiet())

	d.Notify(Message{Kind: KindRejected})
	d.Notify(Message{Kind: KindRejected})
	d.Close()

	assert.Len(t, s.sent, 2)
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, LogSender{Log: quiet()}.Send(context.Background(), Message{Kind: KindConfirmed}))
}
