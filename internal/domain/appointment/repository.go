package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

type Repository interface {
	// -------- Pet --------
	GetPet(
		ctx context.Context,
		petID string,
	) (*models.Pet, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointment maps a slot uniqueness violation to SlotTaken.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// FindSlotHolder returns the non-cancelled appointment whose effective
	// time is t on date, ignoring excludeID. It returns nil when the slot is free.
	FindSlotHolder(
		ctx context.Context,
		date string,
		t string,
		excludeID string,
	) (*models.Appointment, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		appointmentID string,
	) (*models.Appointment, error)

	// UpdateAppointment writes ap only if its version is still current and
	// bumps the version.
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	ListTakenTimes(
		ctx context.Context,
		date string,
	) ([]string, error)

	// -------- Queries --------
	ListAppointmentsForDate(
		ctx context.Context,
		date string,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		fromDate string,
		toDate string,
	) ([]models.Appointment, error)

	ListAppointmentsByOwner(
		ctx context.Context,
		ownerID string,
	) ([]models.Appointment, error)

	ListPendingConfirmation(
		ctx context.Context,
	) ([]models.Appointment, error)

	ListPendingCreatedBefore(
		ctx context.Context,
		cutoff time.Time,
	) ([]models.Appointment, error)
}
