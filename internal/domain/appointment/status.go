package appointment

import (
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

// ===============================
// Confirmation Status (staff decision)
// ===============================

type ConfirmationStatus string

const (
	ConfirmationPending   ConfirmationStatus = "pending"
	ConfirmationConfirmed ConfirmationStatus = "confirmed"
	ConfirmationRejected  ConfirmationStatus = "rejected"
)

// ===============================
// Execution Status (lifecycle)
// ===============================

type ExecutionStatus string

const (
	ExecutionPending    ExecutionStatus = "pending"
	ExecutionConfirmed  ExecutionStatus = "confirmed"
	ExecutionInProgress ExecutionStatus = "in_progress"
	ExecutionCompleted  ExecutionStatus = "completed"
	ExecutionCancelled  ExecutionStatus = "cancelled"
)

func confirmationOf(ap *models.Appointment) ConfirmationStatus {
	return ConfirmationStatus(ap.ConfirmationStatus)
}

func executionOf(ap *models.Appointment) ExecutionStatus {
	return ExecutionStatus(ap.ExecutionStatus)
}

// IsTerminal reports whether no further transition may touch the appointment.
func IsTerminal(ap *models.Appointment) bool {
	switch executionOf(ap) {
	case ExecutionCancelled, ExecutionCompleted:
		return true
	}
	return confirmationOf(ap) == ConfirmationRejected
}

// ===============================
// Validations
// ===============================

// CanConfirm and CanReject: only a pending request that nobody cancelled.
func CanConfirm(ap *models.Appointment) error {
	if confirmationOf(ap) != ConfirmationPending || executionOf(ap) != ExecutionPending {
		return httperr.InvalidState("not_pending")
	}
	return nil
}

func CanReject(ap *models.Appointment) error {
	return CanConfirm(ap)
}

// CanCancel: clients may only withdraw requests staff has not decided on.
func CanCancel(ap *models.Appointment) error {
	if confirmationOf(ap) != ConfirmationPending || executionOf(ap) != ExecutionPending {
		return httperr.InvalidState("not_cancellable")
	}
	return nil
}

func CanStart(ap *models.Appointment) error {
	if confirmationOf(ap) != ConfirmationConfirmed || executionOf(ap) != ExecutionConfirmed {
		return httperr.InvalidState("not_confirmed")
	}
	return nil
}

// CanTrack allows service updates while in progress, and on completed
// appointments so that repeating a completion stays a no-op.
func CanTrack(ap *models.Appointment) error {
	switch executionOf(ap) {
	case ExecutionInProgress, ExecutionCompleted:
		return nil
	}
	return httperr.InvalidState("not_in_progress")
}

// InitialStatus values for a freshly booked appointment.
func InitialStatus() (ConfirmationStatus, ExecutionStatus) {
	return ConfirmationPending, ExecutionPending
}
