package models

import (
	"time"

	"github.com/BruksfildServices01/groomer-scheduler/internal/domain/catalog"
)

type Appointment struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	OwnerID string `gorm:"size:64;index;not null" json:"owner_id"`
	PetID   string `gorm:"size:36;index" json:"pet_id"`

	// Pet snapshot taken at booking time.
	PetName   string  `gorm:"size:100" json:"pet_name"`
	PetBreed  string  `gorm:"size:100" json:"pet_breed"`
	PetPhoto  string  `gorm:"size:16" json:"pet_photo"`
	PetAge    float64 `json:"pet_age"`
	PetWeight float64 `json:"pet_weight"`
	PetGender string  `gorm:"size:20" json:"pet_gender"`

	Date            string  `gorm:"size:10;index;not null" json:"date"`
	RequestedTime   string  `gorm:"size:5;not null" json:"requested_time"`
	ConfirmedTime   *string `gorm:"size:5" json:"confirmed_time"`
	OriginalTime    *string `gorm:"size:5" json:"original_time"`
	EffectiveTime   string  `gorm:"size:5;not null" json:"effective_time"`
	TimeWasModified bool    `json:"time_was_modified"`

	Services      catalog.ServiceList `gorm:"type:text;serializer:json" json:"services"`
	ServiceStates ServiceStates       `gorm:"type:text;serializer:json" json:"service_states"`
	Price         float64             `json:"price"`
	DurationMin   int                 `json:"duration_min"`
	Duration      string              `gorm:"size:20" json:"duration"`

	ConfirmationStatus string `gorm:"size:20;index;default:'pending'" json:"confirmation_status"`
	ExecutionStatus    string `gorm:"size:20;index;default:'pending'" json:"execution_status"`

	Notes        string `gorm:"size:500" json:"notes"`
	StaffNotes   string `gorm:"size:500" json:"staff_notes"`
	RejectReason string `gorm:"size:255" json:"reject_reason"`

	Version int `gorm:"not null;default:1" json:"version"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	RejectedAt  *time.Time `json:"rejected_at"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
