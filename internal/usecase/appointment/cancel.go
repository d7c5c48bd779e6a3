package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

// CancelAppointment is the client withdrawing a request staff has not
// decided on. The record is kept as history.
type CancelAppointment struct {
	repo  domain.Repository
	clock timezone.Clock
	fx    *Effects
}

func NewCancelAppointment(
	repo domain.Repository,
	clock timezone.Clock,
	fx *Effects,
) *CancelAppointment {
	return &CancelAppointment{repo: repo, clock: clock, fx: fx}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	ownerID string,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap.OwnerID != ownerID {
		return nil, httperr.NotFoundErr("appointment_not_found")
	}

	if err := domain.Cancel(ap, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.fx.committed(ctx, Actor{AccountID: ownerID, Role: "client"}, "cancelled", ap, nil)

	return ap, nil
}
