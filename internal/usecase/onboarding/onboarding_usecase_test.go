package onboarding

import (
	"context"
	"testing"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/onboarding"
	"github.com/gdugdh24/glicosaude/internal/repository/memory"
	"github.com/gdugdh24/glicosaude/internal/usecase/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func setup() (*OnboardingUseCase, *profile.ProfileUseCase, *memory.DraftStore) {
	drafts := memory.NewDraftStore()
	profiles := profile.NewProfileUseCase(memory.NewProfileRepository(), drafts)
	return NewOnboardingUseCase(drafts, profiles), profiles, drafts
}

func TestFreshDraft(t *testing.T) {
	uc, _, _ := setup()

	view, err := uc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, onboarding.StepIdentity, view.Step)
	assert.Equal(t, 3, view.TotalSteps)
	assert.Equal(t, "Perfil do Usuário", view.Title)
	assert.False(t, view.CanGoBack)
	assert.Equal(t, domain.SexMale, *view.Draft.Sex)
}

func TestRefusedNextKeepsStep(t *testing.T) {
	uc, _, _ := setup()

	view, err := uc.Fire(context.Background(), "u1", onboarding.EventNext)
	assert.ErrorIs(t, err, domain.ErrOnboardingIncomplete)
	assert.Equal(t, onboarding.StepIdentity, view.Step)
}

func TestDraftSurvivesBetweenCalls(t *testing.T) {
	uc, profiles, drafts := setup()
	ctx := context.Background()

	_, err := uc.Update(ctx, "u1", domain.ProfilePatch{Name: ptr("Rita"), Age: ptr(62)})
	require.NoError(t, err)
	view, err := uc.Fire(ctx, "u1", onboarding.EventNext)
	require.NoError(t, err)
	assert.Equal(t, onboarding.StepTreatment, view.Step)

	_, err = uc.Update(ctx, "u1", domain.ProfilePatch{DiagnosisYears: ptr(10), UsesInsulin: ptr(true), InsulinType: ptr("Rápida")})
	require.NoError(t, err)
	_, err = uc.Update(ctx, "u1", domain.ProfilePatch{UsesInsulin: ptr(false)})
	require.NoError(t, err)
	view, err = uc.Fire(ctx, "u1", onboarding.EventNext)
	require.NoError(t, err)
	assert.True(t, view.IsLastStep)

	saved, err := uc.Complete(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, saved.OnboardingCompleted)
	require.NotNil(t, saved.InsulinType)
	assert.Equal(t, "Rápida", *saved.InsulinType)

	stored, err := profiles.GetMyProfile(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Rita", stored.Name)

	_, err = drafts.Get(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)
}

func TestCompleteBeforeLastStep(t *testing.T) {
	uc, _, _ := setup()

	_, err := uc.Complete(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrOnboardingIncomplete)
}
