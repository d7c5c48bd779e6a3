package appointment

import (
	"math"
	"time"

	"github.com/BruksfildServices01/groomer-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

const ReasonExpired = "expired"

// EffectiveTime is the confirmed time when staff set one, else the requested one.
func EffectiveTime(ap *models.Appointment) string {
	if ap.ConfirmedTime != nil && *ap.ConfirmedTime != "" {
		return *ap.ConfirmedTime
	}
	return ap.RequestedTime
}

// Progress is the rounded share of completed services, 0 before start.
func Progress(ap *models.Appointment) int {
	if executionOf(ap) == ExecutionCompleted {
		return 100
	}
	total := len(ap.Services)
	if total == 0 || ap.ServiceStates == nil {
		return 0
	}
	return int(math.Round(100 * float64(ap.ServiceStates.CompletedCount()) / float64(total)))
}

// ===============================
// Domain Actions
// ===============================

// Confirm accepts a pending request, optionally retiming it. confirmedTime
// must already be validated; an empty value keeps the requested time.
func Confirm(ap *models.Appointment, confirmedTime, staffNotes string, now time.Time) error {
	if err := CanConfirm(ap); err != nil {
		return err
	}

	if confirmedTime == "" {
		confirmedTime = ap.RequestedTime
	}

	ct := confirmedTime
	ap.ConfirmedTime = &ct
	ap.TimeWasModified = ct != ap.RequestedTime
	if ap.TimeWasModified {
		orig := ap.RequestedTime
		ap.OriginalTime = &orig
	} else {
		ap.OriginalTime = nil
	}
	ap.EffectiveTime = EffectiveTime(ap)

	ap.StaffNotes = staffNotes
	ap.ConfirmationStatus = string(ConfirmationConfirmed)
	ap.ExecutionStatus = string(ExecutionConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Reject(ap *models.Appointment, reason string, now time.Time) error {
	if err := CanReject(ap); err != nil {
		return err
	}

	ap.ConfirmationStatus = string(ConfirmationRejected)
	ap.ExecutionStatus = string(ExecutionCancelled)
	ap.RejectReason = reason
	ap.RejectedAt = &now
	return nil
}

// Expire rejects a request left pending past the configured window.
func Expire(ap *models.Appointment, now time.Time) error {
	return Reject(ap, ReasonExpired, now)
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(ap); err != nil {
		return err
	}

	ap.ExecutionStatus = string(ExecutionCancelled)
	ap.CancelledAt = &now
	return nil
}

// Start opens execution tracking with every selected service pending.
func Start(ap *models.Appointment, now time.Time) error {
	if err := CanStart(ap); err != nil {
		return err
	}

	ap.ServiceStates = models.NewServiceStates(ap.Services)
	ap.ExecutionStatus = string(ExecutionInProgress)
	ap.StartedAt = &now
	return nil
}

// SetServiceState moves one service forward. It reports whether anything
// changed; repeating the current state is a successful no-op. Completing the
// last open service completes the appointment.
func SetServiceState(
	ap *models.Appointment,
	id catalog.ServiceID,
	next models.ServiceState,
	now time.Time,
) (bool, error) {

	if next != models.ServiceInProgress && next != models.ServiceCompleted {
		return false, httperr.Validation("invalid_service_state", "state")
	}
	if err := CanTrack(ap); err != nil {
		return false, err
	}

	current, ok := ap.ServiceStates[id]
	if !ok {
		return false, httperr.Validation("service_not_in_appointment", "service")
	}

	if current == next {
		return false, nil
	}
	if next.Before(current) {
		return false, httperr.InvalidState("service_state_regression")
	}

	ap.ServiceStates[id] = next

	if next == models.ServiceCompleted && ap.ServiceStates.AllCompleted() {
		ap.ExecutionStatus = string(ExecutionCompleted)
		ap.CompletedAt = &now
	}
	return true, nil
}
