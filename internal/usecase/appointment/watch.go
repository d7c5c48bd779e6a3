package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/dto"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/live"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

// WatchAppointment opens the client's live view of one appointment. The
// subscription is registered before the snapshot is read so no committed
// write falls between them. Callers must Close the subscription.
type WatchAppointment struct {
	repo   domain.Repository
	broker live.Broker
}

func NewWatchAppointment(repo domain.Repository, broker live.Broker) *WatchAppointment {
	return &WatchAppointment{repo: repo, broker: broker}
}

func (uc *WatchAppointment) Execute(
	ctx context.Context,
	ownerID string,
	appointmentID string,
) (*models.Appointment, *live.Subscription, error) {

	sub, err := uc.broker.Subscribe(ctx, live.AppointmentTopic(appointmentID))
	if err != nil {
		return nil, nil, httperr.Unavailable(err)
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		sub.Close()
		return nil, nil, err
	}
	if ap.OwnerID != ownerID {
		sub.Close()
		return nil, nil, httperr.NotFoundErr("appointment_not_found")
	}

	return ap, sub, nil
}

// WatchDay opens the staff board feed for one date.
type WatchDay struct {
	list   *ListAppointmentsByDate
	broker live.Broker
}

func NewWatchDay(list *ListAppointmentsByDate, broker live.Broker) *WatchDay {
	return &WatchDay{list: list, broker: broker}
}

func (uc *WatchDay) Execute(
	ctx context.Context,
	date string,
) ([]dto.AppointmentListDTO, *live.Subscription, error) {

	if date == "" {
		date = timezone.Today(uc.list.clock)
	}

	sub, err := uc.broker.Subscribe(ctx, live.DateTopic(date))
	if err != nil {
		return nil, nil, httperr.Unavailable(err)
	}

	rows, err := uc.list.Execute(ctx, date)
	if err != nil {
		sub.Close()
		return nil, nil, err
	}
	return rows, sub, nil
}
