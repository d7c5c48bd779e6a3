package dto

import (
	"time"

	"github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

// AppointmentView is the client-facing projection of an appointment.
// Progress is derived on every read and never stored.
type AppointmentView struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	PetID   string `json:"pet_id"`

	PetName   string  `json:"pet_name"`
	PetBreed  string  `json:"pet_breed"`
	PetPhoto  string  `json:"pet_photo"`
	PetAge    float64 `json:"pet_age"`
	PetWeight float64 `json:"pet_weight"`
	PetGender string  `json:"pet_gender"`

	Date            string  `json:"date"`
	RequestedTime   string  `json:"requested_time"`
	ConfirmedTime   *string `json:"confirmed_time,omitempty"`
	OriginalTime    *string `json:"original_time,omitempty"`
	EffectiveTime   string  `json:"effective_time"`
	TimeWasModified bool    `json:"time_was_modified"`

	Services      catalog.ServiceList  `json:"services"`
	ServiceStates models.ServiceStates `json:"service_states,omitempty"`
	Price         float64              `json:"price"`
	Duration      string               `json:"duration"`
	DurationMin   int                  `json:"duration_min"`

	ConfirmationStatus string `json:"confirmation_status"`
	ExecutionStatus    string `json:"execution_status"`
	Progress           int    `json:"progress"`

	Notes        string `json:"notes,omitempty"`
	StaffNotes   string `json:"staff_notes,omitempty"`
	RejectReason string `json:"reject_reason,omitempty"`

	Version int `json:"version"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

func NewAppointmentView(ap *models.Appointment) AppointmentView {
	return AppointmentView{
		ID:      ap.ID,
		OwnerID: ap.OwnerID,
		PetID:   ap.PetID,

		PetName:   ap.PetName,
		PetBreed:  ap.PetBreed,
		PetPhoto:  ap.PetPhoto,
		PetAge:    ap.PetAge,
		PetWeight: ap.PetWeight,
		PetGender: ap.PetGender,

		Date:            ap.Date,
		RequestedTime:   ap.RequestedTime,
		ConfirmedTime:   ap.ConfirmedTime,
		OriginalTime:    ap.OriginalTime,
		EffectiveTime:   appointment.EffectiveTime(ap),
		TimeWasModified: ap.TimeWasModified,

		Services:      ap.Services,
		ServiceStates: ap.ServiceStates,
		Price:         ap.Price,
		Duration:      ap.Duration,
		DurationMin:   ap.DurationMin,

		ConfirmationStatus: ap.ConfirmationStatus,
		ExecutionStatus:    ap.ExecutionStatus,
		Progress:           appointment.Progress(ap),

		Notes:        ap.Notes,
		StaffNotes:   ap.StaffNotes,
		RejectReason: ap.RejectReason,

		Version: ap.Version,

		CreatedAt:   ap.CreatedAt,
		UpdatedAt:   ap.UpdatedAt,
		ConfirmedAt: ap.ConfirmedAt,
		RejectedAt:  ap.RejectedAt,
		StartedAt:   ap.StartedAt,
		CompletedAt: ap.CompletedAt,
		CancelledAt: ap.CancelledAt,
	}
}

func NewAppointmentViews(apps []models.Appointment) []AppointmentView {
	out := make([]AppointmentView, 0, len(apps))
	for i := range apps {
		out = append(out, NewAppointmentView(&apps[i]))
	}
	return out
}
