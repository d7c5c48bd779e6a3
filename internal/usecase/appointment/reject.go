package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/notify"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

type RejectAppointmentInput struct {
	Actor         Actor
	AppointmentID string
	Reason        string
}

type RejectAppointment struct {
	repo  domain.Repository
	clock timezone.Clock
	fx    *Effects
}

func NewRejectAppointment(
	repo domain.Repository,
	clock timezone.Clock,
	fx *Effects,
) *RejectAppointment {
	return &RejectAppointment{repo: repo, clock: clock, fx: fx}
}

func (uc *RejectAppointment) Execute(
	ctx context.Context,
	in RejectAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Reject(ap, strings.TrimSpace(in.Reason), uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.fx.committed(ctx, in.Actor, "rejected", ap, map[string]any{"reason": ap.RejectReason})
	uc.fx.notify(notify.KindRejected, ap)

	return ap, nil
}
