// Package profilesync mirrors the on-device profile to the backend row owned
// by the current identity.
package profilesync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/glicosaude/internal/client/localstore"
	"github.com/gdugdh24/glicosaude/internal/domain"
	"go.uber.org/zap"
)

// Remote is the backend profile table, already scoped to one identity.
type Remote interface {
	GetProfile(ctx context.Context) (*domain.ProfileRow, error)
	UpsertProfile(ctx context.Context, row domain.ProfileRow) (*domain.ProfileRow, error)
	DeleteProfile(ctx context.Context) error
}

// Sync applies the mirroring rules. An empty identity means anonymous:
// no remote call is ever made and the local copy is the only source.
type Sync struct {
	local  *localstore.ProfileStore
	remote Remote
	log    *zap.Logger
	now    func() time.Time
}

func New(local *localstore.ProfileStore, remote Remote, log *zap.Logger) *Sync {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sync{local: local, remote: remote, log: log, now: time.Now}
}

// Local returns the on-device profile, if any.
func (s *Sync) Local() (*domain.UserProfile, bool) {
	return s.local.Load()
}

// Fetch reads the identity's remote row without touching local state.
// found is false when the backend has no row.
func (s *Sync) Fetch(ctx context.Context, identity string) (profile *domain.UserProfile, found bool, err error) {
	if identity == "" {
		return nil, false, nil
	}
	row, err := s.remote.GetProfile(ctx)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("fetch remote profile: %w", err)
	}
	p := domain.FromRow(*row)
	return &p, true, nil
}

// Adopt overwrites the local copy with p; hydration calls it once a fetched
// row is known to still be wanted.
func (s *Sync) Adopt(p domain.UserProfile) error {
	if err := s.local.Save(p); err != nil {
		return fmt.Errorf("save local profile: %w", err)
	}
	return nil
}

// Save writes locally, then upserts remotely when an identity is present.
// The pending marker is written with the local copy and cleared only once
// the remote acknowledged it, so an interrupted save is retried later by
// Retry. A remote failure is returned; the local write stays.
func (s *Sync) Save(ctx context.Context, identity string, p domain.UserProfile) error {
	if err := s.local.Save(p); err != nil {
		return fmt.Errorf("save local profile: %w", err)
	}
	if identity == "" {
		return nil
	}
	if err := s.local.MarkPending(identity, s.now()); err != nil {
		s.log.Warn("Failed to record pending sync", zap.String("identity", identity), zap.Error(err))
	}
	return s.push(ctx, identity, p)
}

func (s *Sync) push(ctx context.Context, identity string, p domain.UserProfile) error {
	if _, err := s.remote.UpsertProfile(ctx, domain.ToRow(identity, p)); err != nil {
		return fmt.Errorf("upsert remote profile: %w", err)
	}
	if err := s.local.ClearPending(); err != nil {
		s.log.Warn("Failed to clear pending sync", zap.String("identity", identity), zap.Error(err))
	}
	return nil
}

// Pending reports whether identity has a local save the remote has not
// acknowledged.
func (s *Sync) Pending(identity string) bool {
	p, ok := s.local.Pending()
	return ok && identity != "" && p.Identity == identity
}

// Retry re-pushes a pending save for identity. It reports whether anything
// was pushed.
func (s *Sync) Retry(ctx context.Context, identity string) (bool, error) {
	if !s.Pending(identity) {
		return false, nil
	}
	p, ok := s.local.Load()
	if !ok {
		// Nothing left to push; the profile was cleared after the save.
		return false, s.local.ClearPending()
	}
	if err := s.push(ctx, identity, *p); err != nil {
		return false, err
	}
	return true, nil
}

// Clear removes the local copy and, with an identity, the remote row. A
// remote failure is only logged.
func (s *Sync) Clear(ctx context.Context, identity string, remote bool) error {
	if err := s.local.Clear(); err != nil {
		return fmt.Errorf("clear local profile: %w", err)
	}
	if err := s.local.ClearPending(); err != nil {
		s.log.Warn("Failed to clear pending sync", zap.Error(err))
	}
	if identity == "" || !remote {
		return nil
	}
	if err := s.remote.DeleteProfile(ctx); err != nil {
		s.log.Warn("Remote profile delete failed", zap.String("identity", identity), zap.Error(err))
	}
	return nil
}
