// Package session holds the active profile of the app and keeps it in step
// with the identity that is signed in.
package session

import (
	"context"
	"sync"

	"github.com/gdugdh24/glicosaude/internal/client/profilesync"
	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/gate"
	"go.uber.org/zap"
)

// ProfileSession is safe for concurrent use. Every identity change starts a
// new epoch; results of a hydration that belongs to an older epoch are
// dropped.
type ProfileSession struct {
	sync *profilesync.Sync
	log  *zap.Logger

	mu       sync.Mutex
	identity string
	epoch    uint64
	loading  bool
	profile  *domain.UserProfile
	// deletedIn is the epoch of the last remote delete; zero once a later
	// save may have recreated the row.
	deletedIn uint64
}

// New starts in the loading state with whatever the device already holds.
func New(s *profilesync.Sync, log *zap.Logger) *ProfileSession {
	if log == nil {
		log = zap.NewNop()
	}
	profile, _ := s.Local()
	return &ProfileSession{sync: s, log: log, loading: true, profile: profile}
}

func (s *ProfileSession) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Profile returns a copy of the active profile, or nil.
func (s *ProfileSession) Profile() *domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

func (s *ProfileSession) Identity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

func (s *ProfileSession) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// GateState is the input of gate.Resolve.
func (s *ProfileSession) GateState() gate.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gate.State{Loading: s.loading, Profile: s.profile}
}

// SetIdentity runs one resolution pass for identity ("" = anonymous). It
// blocks the caller until the pass ends. Hydration errors are logged and
// leave the local profile in place; loading is cleared exactly once, by the
// pass that is still current.
func (s *ProfileSession) SetIdentity(ctx context.Context, identity string) {
	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.identity = identity
	s.loading = true
	s.mu.Unlock()

	profile, adopt := s.resolve(ctx, identity)

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		s.log.Debug("Dropping stale hydration", zap.Uint64("epoch", epoch), zap.Uint64("current", s.epoch))
		return
	}
	if adopt && profile != nil {
		if err := s.sync.Adopt(*profile); err != nil {
			s.log.Warn("Failed to store hydrated profile", zap.Error(err))
		}
	}
	s.profile = profile
	s.loading = false
}

// resolve works out the profile for identity without touching session
// state. adopt is true when the result came from the remote and still has to
// be written locally.
func (s *ProfileSession) resolve(ctx context.Context, identity string) (*domain.UserProfile, bool) {
	local, _ := s.sync.Local()
	if identity == "" {
		return local, false
	}

	if s.sync.Pending(identity) {
		if _, err := s.sync.Retry(ctx, identity); err != nil {
			s.log.Warn("Pending profile sync failed, keeping local copy", zap.String("identity", identity), zap.Error(err))
			return local, false
		}
	}

	remote, found, err := s.sync.Fetch(ctx, identity)
	if err != nil {
		s.log.Warn("Profile hydration failed", zap.String("identity", identity), zap.Error(err))
		return local, false
	}
	if !found {
		return local, false
	}
	return remote, true
}

// SaveProfile stores p locally and, with an identity, remotely. The session
// reflects p even when the remote write fails; that error is returned.
func (s *ProfileSession) SaveProfile(ctx context.Context, p domain.UserProfile) error {
	s.mu.Lock()
	identity := s.identity
	if identity != "" {
		s.deletedIn = 0
	}
	s.mu.Unlock()

	err := s.sync.Save(ctx, identity, p)

	if local, ok := s.sync.Local(); ok {
		s.mu.Lock()
		s.profile = local
		s.mu.Unlock()
	}
	return err
}

// UpdateProfile merges patch into the active profile and saves it. Without
// an active profile it does nothing and reports false.
func (s *ProfileSession) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (bool, error) {
	current := s.Profile()
	if current == nil {
		return false, nil
	}
	return true, s.SaveProfile(ctx, patch.Apply(*current))
}

// ClearProfile removes the profile everywhere. Within one epoch the remote
// delete is attempted at most once per remote save.
func (s *ProfileSession) ClearProfile(ctx context.Context) error {
	s.mu.Lock()
	identity := s.identity
	remote := identity != "" && s.deletedIn != s.epoch
	if remote {
		s.deletedIn = s.epoch
	}
	s.mu.Unlock()

	if err := s.sync.Clear(ctx, identity, remote); err != nil {
		return err
	}

	s.mu.Lock()
	s.profile = nil
	s.mu.Unlock()
	return nil
}
