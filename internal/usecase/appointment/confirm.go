package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/notify"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

type ConfirmAppointmentInput struct {
	Actor         Actor
	AppointmentID string
	// ConfirmedTime empty keeps the requested time.
	ConfirmedTime string
	StaffNotes    string
}

type ConfirmAppointment struct {
	repo  domain.Repository
	clock timezone.Clock
	fx    *Effects
}

func NewConfirmAppointment(
	repo domain.Repository,
	clock timezone.Clock,
	fx *Effects,
) *ConfirmAppointment {
	return &ConfirmAppointment{repo: repo, clock: clock, fx: fx}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	in ConfirmAppointmentInput,
) (*models.Appointment, error) {

	var confirmedTime string
	if in.ConfirmedTime != "" {
		t, err := domain.ParseTimeOfDay(in.ConfirmedTime)
		if err != nil {
			return nil, httperr.Validation("invalid_time", "confirmed_time")
		}
		confirmedTime = t
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	held := ap.EffectiveTime
	if err := domain.Confirm(ap, confirmedTime, in.StaffNotes, uc.clock.Now()); err != nil {
		return nil, err
	}

	// Retiming moves the appointment into a slot it does not hold yet.
	if ap.EffectiveTime != held {
		holder, err := uc.repo.FindSlotHolder(ctx, ap.Date, ap.EffectiveTime, ap.ID)
		if err != nil {
			return nil, err
		}
		if holder != nil {
			return nil, httperr.SlotTaken(holder.PetName)
		}
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.fx.committed(ctx, in.Actor, "confirmed", ap, map[string]any{
		"confirmed_time":    ap.EffectiveTime,
		"time_was_modified": ap.TimeWasModified,
	})
	uc.fx.notify(notify.KindConfirmed, ap)

	return ap, nil
}
