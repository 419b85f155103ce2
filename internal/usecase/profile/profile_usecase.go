package profile

import (
	"context"
	"errors"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/repository"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	drafts      repository.DraftStore
}

func NewProfileUseCase(profileRepo repository.ProfileRepository, drafts repository.DraftStore) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		drafts:      drafts,
	}
}

// GetMyRow returns the stored row for the identity.
func (uc *ProfileUseCase) GetMyRow(ctx context.Context, userID string) (*domain.ProfileRow, error) {
	return uc.profileRepo.GetByID(ctx, userID)
}

// GetMyProfile returns current user's profile in the app shape, or nil when
// there is none yet.
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	row, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, err
	}
	profile := domain.FromRow(*row)
	return &profile, nil
}

// UpsertRow replaces the identity's row. The id always comes from the
// identity, never from the body.
func (uc *ProfileUseCase) UpsertRow(ctx context.Context, userID string, row domain.ProfileRow) (*domain.ProfileRow, error) {
	row.ID = userID
	if err := uc.profileRepo.Upsert(ctx, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// SaveProfile stores a full app-shaped profile.
func (uc *ProfileUseCase) SaveProfile(ctx context.Context, userID string, profile domain.UserProfile) (*domain.UserProfile, error) {
	row, err := uc.UpsertRow(ctx, userID, domain.ToRow(userID, profile))
	if err != nil {
		return nil, err
	}
	saved := domain.FromRow(*row)
	return &saved, nil
}

// UpdateProfile merges a patch into the stored profile. Without a stored
// profile it returns ErrProfileNotFound and creates nothing.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.UserProfile, error) {
	current, err := uc.GetMyProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrProfileNotFound
	}
	return uc.SaveProfile(ctx, userID, patch.Apply(*current))
}

// DeleteProfile removes the row and any onboarding draft. Deleting a missing
// profile is not an error.
func (uc *ProfileUseCase) DeleteProfile(ctx context.Context, userID string) error {
	if err := uc.profileRepo.Delete(ctx, userID); err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return err
	}
	if uc.drafts != nil {
		return uc.drafts.Delete(ctx, userID)
	}
	return nil
}
