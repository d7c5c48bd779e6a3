package appointment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/metrics"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	OwnerID  string
	PetID    string
	Services []string
	Date     string
	Time     string
	Notes    string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo     domain.Repository
	schedule *domain.Schedule
	clock    timezone.Clock
	fx       *Effects
}

func NewBookAppointment(
	repo domain.Repository,
	schedule *domain.Schedule,
	clock timezone.Clock,
	fx *Effects,
) *BookAppointment {
	return &BookAppointment{
		repo:     repo,
		schedule: schedule,
		clock:    clock,
		fx:       fx,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (ap *models.Appointment, err error) {

	defer func() { metrics.RecordBooking(bookingResult(err)) }()

	// --------------------------------------------------
	// 1. Input validation (no store access)
	// --------------------------------------------------
	if strings.TrimSpace(in.PetID) == "" {
		return nil, httperr.Validation("pet_required", "pet_id")
	}
	if len(in.Services) == 0 {
		return nil, httperr.Validation("services_required", "services")
	}
	services, err := catalog.Resolve(in.Services)
	if err != nil {
		return nil, httperr.Validation("unknown_service", "services")
	}

	days, err := timezone.DaysUntil(uc.clock, in.Date)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "date")
	}
	if days < 0 {
		return nil, httperr.Validation("date_in_past", "date")
	}

	slot, err := domain.ParseTimeOfDay(in.Time)
	if err != nil {
		return nil, httperr.Validation("invalid_time", "time")
	}
	if !uc.schedule.Contains(slot) {
		return nil, httperr.Validation("time_not_offered", "time")
	}

	now := uc.clock.Now()
	if days == 0 && slot <= now.Format(timezone.TimeLayout) {
		return nil, httperr.Validation("time_in_past", "time")
	}

	// --------------------------------------------------
	// 2. Pet ownership
	// --------------------------------------------------
	pet, err := uc.repo.GetPet(ctx, in.PetID)
	if err != nil {
		return nil, err
	}
	if pet.OwnerID != in.OwnerID {
		return nil, httperr.NotFoundErr("pet_not_found")
	}

	// --------------------------------------------------
	// 3. Duplicate check at commit time
	// --------------------------------------------------
	holder, err := uc.repo.FindSlotHolder(ctx, in.Date, slot, "")
	if err != nil {
		return nil, err
	}
	if holder != nil {
		return nil, httperr.SlotTaken(holder.PetName)
	}

	// --------------------------------------------------
	// 4. Persist; the slot index catches a booking that won the race
	// --------------------------------------------------
	totals := services.Totals()
	confirmation, execution := domain.InitialStatus()

	ap = &models.Appointment{
		ID:      uuid.NewString(),
		OwnerID: in.OwnerID,
		PetID:   pet.ID,

		PetName:   pet.Name,
		PetBreed:  pet.Breed,
		PetPhoto:  pet.Photo,
		PetAge:    pet.Age,
		PetWeight: pet.Weight,
		PetGender: pet.Gender,

		Date:          in.Date,
		RequestedTime: slot,
		EffectiveTime: slot,

		Services:    services,
		Price:       totals.Price,
		DurationMin: totals.DurationMin,
		Duration:    totals.Duration,

		ConfirmationStatus: string(confirmation),
		ExecutionStatus:    string(execution),
		Notes:              strings.TrimSpace(in.Notes),
		Version:            1,

		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.fx.committed(ctx, Actor{AccountID: in.OwnerID, Role: "client"}, "created", ap, map[string]any{
		"date":     ap.Date,
		"time":     ap.RequestedTime,
		"services": ap.Services.Names(),
	})

	return ap, nil
}

func bookingResult(err error) string {
	if err == nil {
		return "created"
	}
	switch httperr.KindOf(err) {
	case httperr.KindSlotTaken:
		return "slot_taken"
	case httperr.KindValidation, httperr.KindNotFound, httperr.KindInvalidState:
		return "rejected"
	}
	return "error"
}

