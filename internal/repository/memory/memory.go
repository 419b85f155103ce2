// Package memory holds map-backed repositories for tests and local runs
// without postgres or redis.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/onboarding"
	"github.com/google/uuid"
)

type ProfileRepository struct {
	mu   sync.Mutex
	rows map[string]domain.ProfileRow
	// Err, when set, is returned by every call.
	Err error
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{rows: map[string]domain.ProfileRow{}}
}

func (r *ProfileRepository) GetByID(_ context.Context, id string) (*domain.ProfileRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	row, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &row, nil
}

func (r *ProfileRepository) Upsert(_ context.Context, row *domain.ProfileRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	now := time.Now()
	if existing, ok := r.rows[row.ID]; ok {
		row.CreatedAt = existing.CreatedAt
	} else {
		row.CreatedAt = now
	}
	row.UpdatedAt = now
	r.rows[row.ID] = *row
	return nil
}

func (r *ProfileRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[id]; !ok {
		return domain.ErrProfileNotFound
	}
	delete(r.rows, id)
	return nil
}

type ReadingRepository struct {
	mu       sync.Mutex
	readings map[string]domain.GlucoseReading
	Err      error
}

func NewReadingRepository() *ReadingRepository {
	return &ReadingRepository{readings: map[string]domain.GlucoseReading{}}
}

func (r *ReadingRepository) Create(_ context.Context, reading *domain.GlucoseReading) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if reading.ID == "" {
		reading.ID = uuid.NewString()
	}
	now := time.Now()
	reading.CreatedAt, reading.UpdatedAt = now, now
	r.readings[reading.ID] = *reading
	return nil
}

func (r *ReadingRepository) ListByUser(ctx context.Context, userID string) ([]*domain.GlucoseReading, error) {
	return r.ListByUserSince(ctx, userID, time.Time{})
}

func (r *ReadingRepository) ListByUserSince(_ context.Context, userID string, since time.Time) ([]*domain.GlucoseReading, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []*domain.GlucoseReading{}
	for _, reading := range r.readings {
		if reading.UserID != userID || reading.MeasuredAt.Before(since) {
			continue
		}
		reading := reading
		out = append(out, &reading)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MeasuredAt.After(out[j].MeasuredAt) })
	return out, nil
}

func (r *ReadingRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	reading, ok := r.readings[id]
	if !ok || reading.UserID != userID {
		return domain.ErrReadingNotFound
	}
	delete(r.readings, id)
	return nil
}

type UserRepository struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: map[string]domain.User{}}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ReadingCache never expires entries; Hits counts successful Gets.
type ReadingCache struct {
	mu       sync.Mutex
	entries  map[string][]*domain.GlucoseReading
	versions map[string]int64
	Hits     int
}

func NewReadingCache() *ReadingCache {
	return &ReadingCache{entries: map[string][]*domain.GlucoseReading{}, versions: map[string]int64{}}
}

func (c *ReadingCache) Get(_ context.Context, userID string) ([]*domain.GlucoseReading, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	readings, ok := c.entries[userID]
	if ok {
		c.Hits++
	}
	return readings, ok, nil
}

func (c *ReadingCache) Version(_ context.Context, userID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[userID], nil
}

func (c *ReadingCache) Set(_ context.Context, userID string, version int64, readings []*domain.GlucoseReading) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[userID] != version {
		return nil
	}
	c.entries[userID] = readings
	return nil
}

func (c *ReadingCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[userID]++
	delete(c.entries, userID)
	return nil
}

type DraftStore struct {
	mu     sync.Mutex
	states map[string]onboarding.State
}

func NewDraftStore() *DraftStore {
	return &DraftStore{states: map[string]onboarding.State{}}
}

func (s *DraftStore) Get(_ context.Context, userID string) (*onboarding.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[userID]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	return &state, nil
}

func (s *DraftStore) Save(_ context.Context, userID string, state onboarding.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = state
	return nil
}

func (s *DraftStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
	return nil
}

type TokenDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewTokenDenylist() *TokenDenylist {
	return &TokenDenylist{revoked: map[string]time.Time{}}
}

func (d *TokenDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[tokenID] = time.Now().Add(ttl)
	return nil
}

func (d *TokenDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	until, ok := d.revoked[tokenID]
	return ok && time.Now().Before(until), nil
}
