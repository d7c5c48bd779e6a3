package dto

import (
	"github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

// AppointmentListDTO is one row of the staff day and month boards.
type AppointmentListDTO struct {
	ID                 string   `json:"id"`
	Date               string   `json:"date"`
	Time               string   `json:"time"`
	TimeWasModified    bool     `json:"time_was_modified"`
	PetName            string   `json:"pet_name"`
	PetBreed           string   `json:"pet_breed"`
	PetPhoto           string   `json:"pet_photo"`
	Services           []string `json:"services"`
	Duration           string   `json:"duration"`
	ConfirmationStatus string   `json:"confirmation_status"`
	ExecutionStatus    string   `json:"execution_status"`
	Progress           int      `json:"progress"`
}

func NewAppointmentListDTO(ap *models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:                 ap.ID,
		Date:               ap.Date,
		Time:               appointment.EffectiveTime(ap),
		TimeWasModified:    ap.TimeWasModified,
		PetName:            ap.PetName,
		PetBreed:           ap.PetBreed,
		PetPhoto:           ap.PetPhoto,
		Services:           ap.Services.Names(),
		Duration:           ap.Duration,
		ConfirmationStatus: ap.ConfirmationStatus,
		ExecutionStatus:    ap.ExecutionStatus,
		Progress:           appointment.Progress(ap),
	}
}

// MyAppointments is the client history with per-filter counts.
type MyAppointments struct {
	Filter       string            `json:"filter"`
	Appointments []AppointmentView `json:"appointments"`
	Counts       map[string]int    `json:"counts"`
}
