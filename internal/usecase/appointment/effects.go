package appointment

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/groomer-scheduler/internal/audit"
	"github.com/BruksfildServices01/groomer-scheduler/internal/dto"
	"github.com/BruksfildServices01/groomer-scheduler/internal/live"
	"github.com/BruksfildServices01/groomer-scheduler/internal/metrics"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/notify"
)

// Actor is the identity supplied by the session collaborator.
type Actor struct {
	AccountID string
	Role      string
}

// System is the actor for scheduled work.
var System = Actor{AccountID: "system", Role: "system"}

type Auditor interface {
	Dispatch(ev audit.Event)
}

type Notifier interface {
	Notify(msg notify.Message)
}

// Effects are the side channels fed by a committed transition. None of them
// can fail the transition; every field may be nil.
type Effects struct {
	Audit  Auditor
	Live   live.Publisher
	Notify Notifier
	Log    *logrus.Logger
}

func (fx *Effects) logger() logrus.FieldLogger {
	if fx == nil || fx.Log == nil {
		return logrus.StandardLogger()
	}
	return fx.Log
}

// committed runs after a successful write: audit, metrics, live fan-out.
func (fx *Effects) committed(
	ctx context.Context,
	actor Actor,
	action string,
	ap *models.Appointment,
	meta any,
) {
	metrics.RecordTransition(action)

	if fx == nil {
		return
	}

	if fx.Audit != nil {
		fx.Audit.Dispatch(audit.Event{
			AccountID: actor.AccountID,
			Role:      actor.Role,
			Action:    "appointment_" + action,
			Entity:    "appointment",
			EntityID:  ap.ID,
			Metadata:  meta,
		})
	}

	fx.publish(ctx, ap)
}

func (fx *Effects) publish(ctx context.Context, ap *models.Appointment) {
	if fx.Live == nil {
		return
	}

	payload, err := json.Marshal(dto.NewAppointmentView(ap))
	if err != nil {
		fx.logger().WithError(err).Error("encode live update")
		return
	}

	topics := []string{
		live.AppointmentTopic(ap.ID),
		live.OwnerTopic(ap.OwnerID),
		live.DateTopic(ap.Date),
	}
	for _, t := range topics {
		if err := fx.Live.Publish(ctx, t, payload); err != nil {
			fx.logger().WithError(err).WithField("topic", t).Warn("live publish failed")
		}
	}
}

func (fx *Effects) notify(kind notify.Kind, ap *models.Appointment) {
	if fx == nil || fx.Notify == nil {
		return
	}
	fx.Notify.Notify(notify.Message{
		Kind:            kind,
		OwnerID:         ap.OwnerID,
		AppointmentID:   ap.ID,
		PetName:         ap.PetName,
		Services:        ap.Services.Names(),
		Date:            ap.Date,
		Time:            ap.EffectiveTime,
		TimeWasModified: ap.TimeWasModified,
		Reason:          ap.RejectReason,
	})
}
