package pet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/groomer-scheduler/internal/testutil"
)

func newPets(t *testing.T) *Pets {
	return NewPets(repository.NewPetGormRepository(testutil.NewDB(t)), nil)
}

func TestPets_CRUD(t *testing.T) {
	ctx := context.Background()
	uc := newPets(t)

	p, err := uc.Create(ctx, "owner-1", PetInput{Name: "  Max ", Breed: "Golden", Age: 3, Weight: 28})
	require.NoError(t, err)
	assert.Equal(t, "Max", p.Name)
	assert.Equal(t, "🐕", p.Photo)

	_, err = uc.Create(ctx, "owner-1", PetInput{Name: "Luna", Photo: "🐈"})
	require.NoError(t, err)

	pets, err := uc.List(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, pets, 2)
	assert.Equal(t, "Luna", pets[0].Name)

	updated, err := uc.Update(ctx, "owner-1", p.ID, PetInput{Name: "Maximus", Photo: "🐕"})
	require.NoError(t, err)
	assert.Equal(t, "Maximus", updated.Name)

	require.NoError(t, uc.Delete(ctx, "owner-1", p.ID))
	pets, err = uc.List(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, pets, 1)
}

func TestPets_OwnerScoped(t *testing.T) {
	ctx := context.Background()
	uc := newPets(t)

	p, err := uc.Create(ctx, "owner-1", PetInput{Name: "Max"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, "owner-2", p.ID, PetInput{Name: "Stolen"})
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

	err = uc.Delete(ctx, "owner-2", p.ID)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

	pets, err := uc.List(ctx, "owner-2")
	require.NoError(t, err)
	assert.Empty(t, pets)
}

func TestPets_Validation(t *testing.T) {
	uc := newPets(t)

	_, err := uc.Create(context.Background(), "owner-1", PetInput{Name: " "})
	assert.True(t, httperr.IsBusiness(err, "pet_name_required"))

	_, err = uc.Create(context.Background(), "owner-1", PetInput{Name: "Max", Weight: -1})
	assert.True(t, httperr.IsBusiness(err, "invalid_weight"))
}
