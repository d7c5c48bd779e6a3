package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

type StartAppointment struct {
	repo  domain.Repository
	clock timezone.Clock
	fx    *Effects
}

func NewStartAppointment(
	repo domain.Repository,
	clock timezone.Clock,
	fx *Effects,
) *StartAppointment {
	return &StartAppointment{repo: repo, clock: clock, fx: fx}
}

func (uc *StartAppointment) Execute(
	ctx context.Context,
	actor Actor,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Start(ap, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.fx.committed(ctx, actor, "started", ap, nil)

	return ap, nil
}
