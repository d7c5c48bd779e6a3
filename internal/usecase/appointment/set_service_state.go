package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/notify"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

type SetServiceStateInput struct {
	Actor         Actor
	AppointmentID string
	// Service is a catalog name or numeric id.
	Service string
	State   string
}

type SetServiceState struct {
	repo  domain.Repository
	clock timezone.Clock
	fx    *Effects
}

func NewSetServiceState(
	repo domain.Repository,
	clock timezone.Clock,
	fx *Effects,
) *SetServiceState {
	return &SetServiceState{repo: repo, clock: clock, fx: fx}
}

func (uc *SetServiceState) Execute(
	ctx context.Context,
	in SetServiceStateInput,
) (*models.Appointment, error) {

	var service catalog.ServiceID
	if err := service.UnmarshalText([]byte(in.Service)); err != nil {
		return nil, httperr.Validation("unknown_service", "service")
	}
	state := models.ServiceState(in.State)

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	wasCompleted := ap.ExecutionStatus == string(domain.ExecutionCompleted)

	changed, err := domain.SetServiceState(ap, service, state, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return ap, nil
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.fx.committed(ctx, in.Actor, "service_updated", ap, map[string]any{
		"service": service.String(),
		"state":   state,
	})

	if !wasCompleted && ap.ExecutionStatus == string(domain.ExecutionCompleted) {
		uc.fx.committed(ctx, in.Actor, "completed", ap, nil)
		uc.fx.notify(notify.KindCompleted, ap)
	}

	return ap, nil
}
