package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// storeErr maps a gorm failure onto the business taxonomy.
func storeErr(err error, notFoundCode string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFoundErr(notFoundCode)
	}
	if _, ok := httperr.As(err); ok {
		return err
	}
	return httperr.Unavailable(err)
}

func notCancelled(db *gorm.DB) *gorm.DB {
	return db.Where("execution_status <> ?", string(domain.ExecutionCancelled))
}

// --------------------------------------------------
// Pet
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPet(
	ctx context.Context,
	petID string,
) (*models.Pet, error) {

	var pet models.Pet
	if err := r.db.WithContext(ctx).
		Where("id = ?", petID).
		First(&pet).Error; err != nil {
		return nil, storeErr(err, "pet_not_found")
	}
	return &pet, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if ap.Version == 0 {
		ap.Version = 1
	}

	err := r.db.WithContext(ctx).Create(ap).Error
	if httperr.IsExclusionConflict(err) {
		return r.slotTaken(ctx, ap)
	}
	return storeErr(err, "appointment_not_found")
}

func (r *AppointmentGormRepository) FindSlotHolder(
	ctx context.Context,
	date string,
	t string,
	excludeID string,
) (*models.Appointment, error) {

	q := notCancelled(r.db.WithContext(ctx)).
		Where("date = ? AND effective_time = ?", date, t)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var holder models.Appointment
	err := q.Order("created_at ASC").First(&holder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, httperr.Unavailable(err)
	}
	return &holder, nil
}

// slotTaken builds the conflict error for a write rejected by the slot index.
func (r *AppointmentGormRepository) slotTaken(
	ctx context.Context,
	ap *models.Appointment,
) error {

	holder, err := r.FindSlotHolder(ctx, ap.Date, ap.EffectiveTime, ap.ID)
	if err != nil || holder == nil {
		return httperr.SlotTaken("")
	}
	return httperr.SlotTaken(holder.PetName)
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", appointmentID).
		First(&ap).Error; err != nil {
		return nil, storeErr(err, "appointment_not_found")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	read := ap.Version
	ap.Version = read + 1

	res := r.db.WithContext(ctx).
		Model(ap).
		Where("version = ?", read).
		Select("*").
		Omit("id", "created_at").
		Updates(ap)

	if res.Error != nil {
		ap.Version = read
		if httperr.IsExclusionConflict(res.Error) {
			return r.slotTaken(ctx, ap)
		}
		return httperr.Unavailable(res.Error)
	}
	if res.RowsAffected == 0 {
		ap.Version = read
		return httperr.InvalidState("stale_appointment")
	}
	return nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListTakenTimes(
	ctx context.Context,
	date string,
) ([]string, error) {

	var times []string
	if err := notCancelled(r.db.WithContext(ctx).Model(&models.Appointment{})).
		Where("date = ?", date).
		Order("effective_time ASC").
		Pluck("effective_time", &times).Error; err != nil {
		return nil, httperr.Unavailable(err)
	}
	return times, nil
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForDate(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := notCancelled(r.db.WithContext(ctx)).
		Where("date = ?", date).
		Order("effective_time ASC").
		Find(&apps).Error; err != nil {
		return nil, httperr.Unavailable(err)
	}
	return apps, nil
}

// ListAppointmentsForPeriod covers fromDate inclusive to toDate exclusive.
func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	fromDate string,
	toDate string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", fromDate, toDate).
		Order("date ASC").
		Order("effective_time ASC").
		Find(&apps).Error; err != nil {
		return nil, httperr.Unavailable(err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsByOwner(
	ctx context.Context,
	ownerID string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, httperr.Unavailable(err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListPendingConfirmation(
	ctx context.Context,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"confirmation_status = ? AND execution_status = ?",
			string(domain.ConfirmationPending),
			string(domain.ExecutionPending),
		).
		Order("created_at ASC").
		Find(&apps).Error; err != nil {
		return nil, httperr.Unavailable(err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListPendingCreatedBefore(
	ctx context.Context,
	cutoff time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"confirmation_status = ? AND execution_status = ? AND created_at < ?",
			string(domain.ConfirmationPending),
			string(domain.ExecutionPending),
			cutoff,
		).
		Order("created_at ASC").
		Find(&apps).Error; err != nil {
		return nil, httperr.Unavailable(err)
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
