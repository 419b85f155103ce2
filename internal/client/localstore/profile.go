package localstore

import (
	"encoding/json"
	"time"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/onboarding"
	"go.uber.org/zap"
)

// PendingSync records a local save the remote has not acknowledged yet.
type PendingSync struct {
	Identity string    `json:"identity"`
	QueuedAt time.Time `json:"queued_at"`
}

// AuthSession is the identity the app signs requests with.
type AuthSession struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProfileStore is the typed view of a Store. Reads fail soft: a missing or
// corrupt value is reported as absent and the problem is only logged.
type ProfileStore struct {
	store Store
	log   *zap.Logger
}

func NewProfileStore(store Store, log *zap.Logger) *ProfileStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProfileStore{store: store, log: log}
}

// Load returns the stored profile, if any.
func (s *ProfileStore) Load() (*domain.UserProfile, bool) {
	var p domain.UserProfile
	if !s.get(ProfileKey, &p) {
		return nil, false
	}
	return &p, true
}

func (s *ProfileStore) Save(p domain.UserProfile) error {
	return s.set(ProfileKey, p)
}

func (s *ProfileStore) Clear() error {
	return s.store.Delete(ProfileKey)
}

func (s *ProfileStore) Pending() (*PendingSync, bool) {
	var p PendingSync
	if !s.get(PendingSyncKey, &p) || p.Identity == "" {
		return nil, false
	}
	return &p, true
}

func (s *ProfileStore) MarkPending(identity string, at time.Time) error {
	return s.set(PendingSyncKey, PendingSync{Identity: identity, QueuedAt: at})
}

func (s *ProfileStore) ClearPending() error {
	return s.store.Delete(PendingSyncKey)
}

func (s *ProfileStore) Auth() (*AuthSession, bool) {
	var a AuthSession
	if !s.get(AuthKey, &a) || a.Token == "" {
		return nil, false
	}
	return &a, true
}

func (s *ProfileStore) SaveAuth(a AuthSession) error {
	return s.set(AuthKey, a)
}

func (s *ProfileStore) ClearAuth() error {
	return s.store.Delete(AuthKey)
}

// InstallDismissed reports whether the install banner was closed.
func (s *ProfileStore) InstallDismissed() bool {
	var dismissed bool
	s.get(InstallDismissedKey, &dismissed)
	return dismissed
}

func (s *ProfileStore) SetInstallDismissed(dismissed bool) error {
	return s.set(InstallDismissedKey, dismissed)
}

// Draft returns the saved onboarding wizard, if one is in progress.
func (s *ProfileStore) Draft() (*onboarding.State, bool) {
	var st onboarding.State
	if !s.get(OnboardingDraftKey, &st) {
		return nil, false
	}
	return &st, true
}

func (s *ProfileStore) SaveDraft(st onboarding.State) error {
	return s.set(OnboardingDraftKey, st)
}

func (s *ProfileStore) ClearDraft() error {
	return s.store.Delete(OnboardingDraftKey)
}

func (s *ProfileStore) get(key string, v any) bool {
	data, ok, err := s.store.Get(key)
	if err != nil {
		s.log.Warn("Failed to read local state", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.Warn("Discarding unreadable local state", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *ProfileStore) set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.store.Set(key, data)
}
