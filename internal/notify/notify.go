// Package notify hands appointment outcomes to an outbound messaging
// collaborator. Delivery is best effort.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Kind string

const (
	KindConfirmed Kind = "appointment_confirmed"
	KindRejected  Kind = "appointment_rejected"
	KindCompleted Kind = "appointment_completed"
)

// Message carries what a push or chat sender needs to format its text.
type Message struct {
	Kind            Kind     `json:"kind"`
	OwnerID         string   `json:"owner_id"`
	AppointmentID   string   `json:"appointment_id"`
	PetName         string   `json:"pet_name"`
	Services        []string `json:"services"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	TimeWasModified bool     `json:"time_was_modified"`
	Reason          string   `json:"reason,omitempty"`
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	Log *logrus.Logger
}

func (s LogSender) Send(_ context.Context, msg Message) error {
	s.Log.WithFields(logrus.Fields{
		"kind":           msg.Kind,
		"owner_id":       msg.OwnerID,
		"appointment_id": msg.AppointmentID,
		"pet":            msg.PetName,
		"date":           msg.Date,
		"time":           msg.Time,
	}).Info("notification")
	return nil
}

const sendTimeout = 10 * time.Second

type Dispatcher struct {
	sender Sender
	log    *logrus.Logger
	queue  chan Message
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sender Sender, log *logrus.Logger) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		log:    log,
		queue:  make(chan Message, 100),
	}
	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := d.sender.Send(ctx, msg); err != nil {
			d.log.WithError(err).
				WithField("kind", msg.Kind).
				WithField("appointment_id", msg.AppointmentID).
				Warn("notification delivery failed")
		}
		cancel()
	}
}

func (d *Dispatcher) Notify(msg Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}
	select {
	case d.queue <- msg:
	default:
		d.log.WithField("kind", msg.Kind).Warn("notification queue full, dropping message")
	}
}

func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}
