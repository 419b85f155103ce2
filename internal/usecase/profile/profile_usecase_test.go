package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/onboarding"
	"github.com/gdugdh24/glicosaude/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfileAbsent(t *testing.T) {
	uc := NewProfileUseCase(memory.NewProfileRepository(), memory.NewDraftStore())

	p, err := uc.GetMyProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestUpsertRowForcesIdentity(t *testing.T) {
	repo := memory.NewProfileRepository()
	uc := NewProfileUseCase(repo, nil)

	row, err := uc.UpsertRow(context.Background(), "u1", domain.ProfileRow{ID: "someone-else", Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "u1", row.ID)

	_, err = repo.GetByID(context.Background(), "someone-else")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestUpdateProfile(t *testing.T) {
	uc := NewProfileUseCase(memory.NewProfileRepository(), nil)
	ctx := context.Background()
	age := 41

	_, err := uc.UpdateProfile(ctx, "u1", domain.ProfilePatch{Age: &age})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	_, err = uc.SaveProfile(ctx, "u1", domain.UserProfile{Name: "Ana", Age: 40, OnboardingCompleted: true})
	require.NoError(t, err)

	updated, err := uc.UpdateProfile(ctx, "u1", domain.ProfilePatch{Age: &age})
	require.NoError(t, err)
	assert.Equal(t, 41, updated.Age)
	assert.Equal(t, "Ana", updated.Name)
	assert.True(t, updated.OnboardingCompleted)
}

func TestDeleteProfileIsIdempotent(t *testing.T) {
	drafts := memory.NewDraftStore()
	uc := NewProfileUseCase(memory.NewProfileRepository(), drafts)
	ctx := context.Background()

	_, err := uc.SaveProfile(ctx, "u1", domain.UserProfile{Name: "Ana"})
	require.NoError(t, err)
	require.NoError(t, drafts.Save(ctx, "u1", onboarding.New().State()))

	require.NoError(t, uc.DeleteProfile(ctx, "u1"))
	require.NoError(t, uc.DeleteProfile(ctx, "u1"))

	p, err := uc.GetMyProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, p)
	_, err = drafts.Get(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)
}

func TestDeleteProfilePropagatesStorageErrors(t *testing.T) {
	repo := memory.NewProfileRepository()
	repo.Err = errors.New("connection reset")
	uc := NewProfileUseCase(repo, nil)

	assert.EqualError(t, uc.DeleteProfile(context.Background(), "u1"), "connection reset")
}
