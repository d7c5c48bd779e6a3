package pet

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/groomer-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/pet"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

type PetInput struct {
	Name   string
	Breed  string
	Age    float64
	Weight float64
	Gender string
	Color  string
	Photo  string
	Notes  string
}

func (in PetInput) apply(p *models.Pet) {
	p.Name = in.Name
	p.Breed = in.Breed
	p.Age = in.Age
	p.Weight = in.Weight
	p.Gender = in.Gender
	p.Color = in.Color
	p.Photo = in.Photo
	p.Notes = in.Notes
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

// Pets bundles the owner-scoped pet operations.
type Pets struct {
	repo  domain.Repository
	audit Auditor
}

func NewPets(repo domain.Repository, audit Auditor) *Pets {
	return &Pets{repo: repo, audit: audit}
}

func (uc *Pets) record(ownerID, action, petID string) {
	if uc.audit == nil {
		return
	}
	uc.audit.Dispatch(audit.Event{
		AccountID: ownerID,
		Role:      "client",
		Action:    action,
		Entity:    "pet",
		EntityID:  petID,
	})
}

func (uc *Pets) Create(ctx context.Context, ownerID string, in PetInput) (*models.Pet, error) {
	p := &models.Pet{ID: uuid.NewString(), OwnerID: ownerID}
	in.apply(p)

	if err := domain.Validate(p); err != nil {
		return nil, err
	}
	if err := uc.repo.CreatePet(ctx, p); err != nil {
		return nil, err
	}

	uc.record(ownerID, "pet_created", p.ID)
	return p, nil
}

func (uc *Pets) List(ctx context.Context, ownerID string) ([]models.Pet, error) {
	return uc.repo.ListPetsByOwner(ctx, ownerID)
}

// Update edits the pet record only. Appointments keep the snapshot taken
// when they were booked.
func (uc *Pets) Update(ctx context.Context, ownerID, petID string, in PetInput) (*models.Pet, error) {
	p, err := uc.repo.GetPetForOwner(ctx, ownerID, petID)
	if err != nil {
		return nil, err
	}
	in.apply(p)

	if err := domain.Validate(p); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdatePet(ctx, p); err != nil {
		return nil, err
	}

	uc.record(ownerID, "pet_updated", p.ID)
	return p, nil
}

func (uc *Pets) Delete(ctx context.Context, ownerID, petID string) error {
	if err := uc.repo.DeletePet(ctx, ownerID, petID); err != nil {
		return err
	}
	uc.record(ownerID, "pet_deleted", petID)
	return nil
}
