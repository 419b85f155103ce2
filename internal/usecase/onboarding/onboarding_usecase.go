package onboarding

import (
	"context"
	"errors"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/onboarding"
	"github.com/gdugdh24/glicosaude/internal/repository"
)

// ProfileWriter is the part of the profile use case the wizard finishes into.
type ProfileWriter interface {
	SaveProfile(ctx context.Context, userID string, profile domain.UserProfile) (*domain.UserProfile, error)
}

type OnboardingUseCase struct {
	drafts   repository.DraftStore
	profiles ProfileWriter
}

func NewOnboardingUseCase(drafts repository.DraftStore, profiles ProfileWriter) *OnboardingUseCase {
	return &OnboardingUseCase{drafts: drafts, profiles: profiles}
}

// WizardView is what the onboarding screen renders.
type WizardView struct {
	Step       onboarding.Step     `json:"step"`
	TotalSteps int                 `json:"total_steps"`
	Title      string              `json:"title"`
	Progress   int                 `json:"progress"`
	Draft      domain.ProfilePatch `json:"draft"`
	CanGoBack  bool                `json:"can_go_back"`
	IsLastStep bool                `json:"is_last_step"`
}

func viewOf(w *onboarding.Wizard) *WizardView {
	return &WizardView{
		Step:       w.Step(),
		TotalSteps: int(onboarding.LastStep),
		Title:      w.Step().Title(),
		Progress:   w.Progress(),
		Draft:      w.Draft(),
		CanGoBack:  w.Step() > onboarding.FirstStep,
		IsLastStep: w.Step() == onboarding.LastStep,
	}
}

func (uc *OnboardingUseCase) load(ctx context.Context, userID string) (*onboarding.Wizard, error) {
	state, err := uc.drafts.Get(ctx, userID)
	if errors.Is(err, domain.ErrDraftNotFound) {
		return onboarding.New(), nil
	}
	if err != nil {
		return nil, err
	}
	return onboarding.Restore(*state), nil
}

// Get returns the current draft, starting a fresh one when none is stored.
func (uc *OnboardingUseCase) Get(ctx context.Context, userID string) (*WizardView, error) {
	w, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return viewOf(w), nil
}

// Update merges form fields into the draft.
func (uc *OnboardingUseCase) Update(ctx context.Context, userID string, patch domain.ProfilePatch) (*WizardView, error) {
	w, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	w.Update(patch)
	if err := uc.drafts.Save(ctx, userID, w.State()); err != nil {
		return nil, err
	}
	return viewOf(w), nil
}

// Fire moves the wizard. A refused Next returns the unchanged view together
// with the step error.
func (uc *OnboardingUseCase) Fire(ctx context.Context, userID string, ev onboarding.Event) (*WizardView, error) {
	w, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := w.Fire(ev); err != nil {
		return viewOf(w), err
	}
	if err := uc.drafts.Save(ctx, userID, w.State()); err != nil {
		return nil, err
	}
	return viewOf(w), nil
}

// Complete turns the draft into the stored profile and drops the draft.
func (uc *OnboardingUseCase) Complete(ctx context.Context, userID string) (*domain.UserProfile, error) {
	w, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	var saved *domain.UserProfile
	_, err = w.Submit(ctx, saverFunc(func(ctx context.Context, p domain.UserProfile) error {
		var err error
		saved, err = uc.profiles.SaveProfile(ctx, userID, p)
		return err
	}))
	if err != nil {
		return nil, err
	}

	if err := uc.drafts.Delete(ctx, userID); err != nil {
		return nil, err
	}
	return saved, nil
}

type saverFunc func(ctx context.Context, p domain.UserProfile) error

func (f saverFunc) SaveProfile(ctx context.Context, p domain.UserProfile) error { return f(ctx, p) }

// Preview is the view of a fresh wizard, for visitors without an identity.
func Preview() *WizardView {
	return viewOf(onboarding.New())
}
