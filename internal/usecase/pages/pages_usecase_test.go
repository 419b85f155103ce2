package pages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/premium"
	"github.com/gdugdh24/glicosaude/internal/pwa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProfiles struct {
	profile *domain.UserProfile
	err     error
}

func (s stubProfiles) GetMyProfile(context.Context, string) (*domain.UserProfile, error) {
	return s.profile, s.err
}

type stubReadings []*domain.GlucoseReading

func (s stubReadings) List(context.Context, string) ([]*domain.GlucoseReading, error) {
	return s, nil
}

// Thursday 2024-05-02, 15:00 UTC.
var now = time.Date(2024, 5, 2, 15, 0, 0, 0, time.UTC)

func sample() stubReadings {
	return stubReadings{
		{ID: "r4", GlucoseValue: 95, MeasurementType: domain.MeasurementPostprandial, MeasuredAt: now.Add(-30 * time.Minute)},
		{ID: "r3", GlucoseValue: 85, MeasurementType: domain.MeasurementFasting, MeasuredAt: now.Add(-7 * time.Hour)},
		{ID: "r2", GlucoseValue: 110, MeasurementType: domain.MeasurementPostprandial, MeasuredAt: now.Add(-20 * time.Hour)},
		{ID: "r1", GlucoseValue: 90, MeasurementType: domain.MeasurementRandom, MeasuredAt: now.Add(-5 * 24 * time.Hour)},
	}
}

func newUseCase(p stubProfiles, r stubReadings) *PagesUseCase {
	uc := NewPagesUseCase(p, r, nil, time.UTC)
	uc.now = func() time.Time { return now }
	return uc
}

func TestDashboard(t *testing.T) {
	uc := newUseCase(stubProfiles{profile: &domain.UserProfile{Name: "Ana", OnboardingCompleted: true}}, sample())

	view, err := uc.Dashboard(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, "Olá, Ana!", view.Greeting)
	require.Len(t, view.Stats, 4)
	assert.Equal(t, "90", view.Stats[0].Value)
	assert.Equal(t, "2", view.Stats[1].Value)
	assert.Equal(t, "100%", view.Stats[2].Value)
	// today 90 vs yesterday 110
	assert.Equal(t, "↓ 18%", view.Stats[3].Value)

	require.NotNil(t, view.Latest)
	assert.Equal(t, "r4", view.Latest.ID)
	assert.Equal(t, domain.TrendUp, view.Latest.Trend)
	assert.Equal(t, "Hoje, 14:30", view.Latest.Timestamp)
	assert.Equal(t, "Pós-refeição", view.Latest.TypeLabel)
}

func TestDashboardEmpty(t *testing.T) {
	uc := newUseCase(stubProfiles{}, nil)

	view, err := uc.Dashboard(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Olá!", view.Greeting)
	assert.Equal(t, "--", view.Stats[0].Value)
	assert.Equal(t, "--", view.Stats[3].Value)
	assert.Nil(t, view.Latest)
}

func TestDashboardPropagatesErrors(t *testing.T) {
	uc := newUseCase(stubProfiles{err: errors.New("db down")}, sample())

	_, err := uc.Dashboard(context.Background(), "u1")
	assert.EqualError(t, err, "db down")
}

func TestHistorico(t *testing.T) {
	uc := newUseCase(stubProfiles{}, sample())

	view, err := uc.Historico(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, view.Days, 7)
	assert.Equal(t, "Sex", view.Days[0].Label)
	assert.Equal(t, "Qui", view.Days[6].Label)
	assert.Equal(t, "2024-05-02", view.Days[6].Date)
	require.NotNil(t, view.Days[6].Average)
	assert.Equal(t, 90, *view.Days[6].Average)
	assert.Nil(t, view.Days[0].Average)
	require.NotNil(t, view.WeekAverage)
	assert.Equal(t, 95, *view.WeekAverage)

	require.Len(t, view.Readings, 4)
	assert.Equal(t, "Ontem, 19:00", view.Readings[2].Timestamp)
	assert.Equal(t, "27/04, 15:00", view.Readings[3].Timestamp)
	assert.Equal(t, domain.TrendStable, view.Readings[3].Trend)
	assert.Equal(t, domain.TrendDown, view.Readings[1].Trend)
}

func TestRegistro(t *testing.T) {
	view := newUseCase(stubProfiles{}, nil).Registro()

	assert.Equal(t, 1, view.MinValue)
	assert.Equal(t, 599, view.MaxValue)
	assert.Equal(t, []Option{
		{Value: "fasting", Label: "Jejum"},
		{Value: "postprandial", Label: "Pós-refeição"},
		{Value: "random", Label: "Aleatória"},
	}, view.MeasurementTypes)
}

func TestPerfil(t *testing.T) {
	insulin := "NPH"
	uc := newUseCase(stubProfiles{profile: &domain.UserProfile{
		Name: "Ana", Age: 40, Sex: domain.SexFemale, DiabetesType: domain.DiabetesType1,
		UsesInsulin: true, InsulinType: &insulin, ActivityLevel: domain.ActivityActive, EatingHabits: domain.EatingRegular,
	}}, nil)

	view, err := uc.Perfil(context.Background(), "u1")
	require.NoError(t, err)
	assert.Contains(t, view.Fields, ProfileField{Label: "Usa insulina?", Value: "Sim (NPH)"})
	assert.Contains(t, view.Fields, ProfileField{Label: "Tipo de diabetes", Value: "Tipo 1"})
	assert.Contains(t, view.Fields, ProfileField{Label: "Peso (kg)", Value: "-"})

	empty, err := newUseCase(stubProfiles{}, nil).Perfil(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, empty.Profile)
	assert.Empty(t, empty.Fields)
}

func TestPremiumAndInstalar(t *testing.T) {
	catalog, err := premium.Load()
	require.NoError(t, err)
	uc := NewPagesUseCase(stubProfiles{}, nil, catalog, nil)
	assert.Same(t, catalog, uc.Premium())

	view, err := uc.Instalar("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Safari/604.1")
	require.NoError(t, err)
	assert.Equal(t, pwa.PlatformIOS, view.Client.Platform)
	assert.Equal(t, pwa.PlatformIOS, view.DefaultTab)
	assert.Len(t, view.Guides, 3)
}
