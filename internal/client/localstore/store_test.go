package localstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/onboarding"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	_, ok, err := s.Get(ProfileKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ProfileKey, []byte(`{"name":"Ana"}`)))
	require.NoError(t, s.Set(ProfileKey, []byte(`{"name":"Bia"}`)))
	data, ok, err := s.Get(ProfileKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"name":"Bia"}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	require.NoError(t, s.Delete(ProfileKey))
	require.NoError(t, s.Delete(ProfileKey))
	_, ok, _ = s.Get(ProfileKey)
	assert.False(t, ok)

	assert.Error(t, s.Set("../escape", []byte("x")))
}

func TestProfileStoreRoundTrip(t *testing.T) {
	s := NewProfileStore(NewMemoryStore(), nil)

	_, ok := s.Load()
	assert.False(t, ok)

	weight := 70.5
	want := domain.UserProfile{Name: "Ana", Age: 40, Sex: domain.SexFemale, Weight: &weight, OnboardingCompleted: true}
	require.NoError(t, s.Save(want))

	got, ok := s.Load()
	require.True(t, ok)
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Fatalf("profile mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
	_, ok = s.Load()
	assert.False(t, ok)
}

func TestProfileStoreLoadFailsSoft(t *testing.T) {
	mem := NewMemoryStore()
	require.NoError(t, mem.Set(ProfileKey, []byte("{not json")))

	core, logs := observer.New(zap.WarnLevel)
	s := NewProfileStore(mem, zap.New(core))

	p, ok := s.Load()
	assert.Nil(t, p)
	assert.False(t, ok)
	assert.Equal(t, 1, logs.FilterMessage("Discarding unreadable local state").Len())
}

func TestPendingAndFlags(t *testing.T) {
	s := NewProfileStore(NewMemoryStore(), nil)

	_, ok := s.Pending()
	assert.False(t, ok)
	at := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.MarkPending("user-1", at))
	p, ok := s.Pending()
	require.True(t, ok)
	assert.Equal(t, "user-1", p.Identity)
	assert.True(t, at.Equal(p.QueuedAt))
	require.NoError(t, s.ClearPending())
	_, ok = s.Pending()
	assert.False(t, ok)

	assert.False(t, s.InstallDismissed())
	require.NoError(t, s.SetInstallDismissed(true))
	assert.True(t, s.InstallDismissed())

	_, ok = s.Auth()
	assert.False(t, ok)
	require.NoError(t, s.SaveAuth(AuthSession{Token: "t", UserID: "user-1"}))
	a, ok := s.Auth()
	require.True(t, ok)
	assert.Equal(t, "user-1", a.UserID)

	w := onboarding.New()
	require.NoError(t, s.SaveDraft(w.State()))
	st, ok := s.Draft()
	require.True(t, ok)
	assert.Equal(t, onboarding.StepIdentity, st.Step)
}
