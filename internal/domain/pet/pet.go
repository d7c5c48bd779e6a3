package pet

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

const DefaultPhoto = "🐕"

type Repository interface {
	CreatePet(ctx context.Context, p *models.Pet) error
	GetPetForOwner(ctx context.Context, ownerID, petID string) (*models.Pet, error)
	ListPetsByOwner(ctx context.Context, ownerID string) ([]models.Pet, error)
	UpdatePet(ctx context.Context, p *models.Pet) error
	DeletePet(ctx context.Context, ownerID, petID string) error
}

// Validate normalizes the editable fields and rejects impossible values.
func Validate(p *models.Pet) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Breed = strings.TrimSpace(p.Breed)
	if p.Name == "" {
		return httperr.Validation("pet_name_required", "name")
	}
	if p.Age < 0 {
		return httperr.Validation("invalid_age", "age")
	}
	if p.Weight < 0 {
		return httperr.Validation("invalid_weight", "weight")
	}
	if p.Photo == "" {
		p.Photo = DefaultPhoto
	}
	return nil
}
