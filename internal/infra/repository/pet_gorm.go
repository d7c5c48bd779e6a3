package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/pet"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

type PetGormRepository struct {
	db *gorm.DB
}

func NewPetGormRepository(db *gorm.DB) *PetGormRepository {
	return &PetGormRepository{db: db}
}

func (r *PetGormRepository) CreatePet(ctx context.Context, p *models.Pet) error {
	return storeErr(r.db.WithContext(ctx).Create(p).Error, "pet_not_found")
}

// GetPetForOwner hides pets of other accounts behind the same not-found error.
func (r *PetGormRepository) GetPetForOwner(
	ctx context.Context,
	ownerID string,
	petID string,
) (*models.Pet, error) {

	var p models.Pet
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", petID, ownerID).
		First(&p).Error; err != nil {
		return nil, storeErr(err, "pet_not_found")
	}
	return &p, nil
}

func (r *PetGormRepository) ListPetsByOwner(
	ctx context.Context,
	ownerID string,
) ([]models.Pet, error) {

	var pets []models.Pet
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&pets).Error; err != nil {
		return nil, httperr.Unavailable(err)
	}
	return pets, nil
}

func (r *PetGormRepository) UpdatePet(ctx context.Context, p *models.Pet) error {
	res := r.db.WithContext(ctx).
		Model(p).
		Where("owner_id = ?", p.OwnerID).
		Select("name", "breed", "age", "weight", "gender", "color", "photo", "notes").
		Updates(p)
	if res.Error != nil {
		return httperr.Unavailable(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFoundErr("pet_not_found")
	}
	return nil
}

func (r *PetGormRepository) DeletePet(ctx context.Context, ownerID, petID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", petID, ownerID).
		Delete(&models.Pet{})
	if res.Error != nil {
		return httperr.Unavailable(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFoundErr("pet_not_found")
	}
	return nil
}

var _ domain.Repository = (*PetGormRepository)(nil)
