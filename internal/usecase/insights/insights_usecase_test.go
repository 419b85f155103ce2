package insights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubReadings struct {
	readings []*domain.GlucoseReading
	since    time.Time
}

func (s *stubReadings) ListSince(_ context.Context, _ string, since time.Time) ([]*domain.GlucoseReading, error) {
	s.since = since
	return s.readings, nil
}

type stubProfiles struct{}

func (stubProfiles) GetMyProfile(context.Context, string) (*domain.UserProfile, error) {
	return &domain.UserProfile{Name: "Ana", OnboardingCompleted: true}, nil
}

type stubGenerator struct {
	err   error
	calls int
}

func (g *stubGenerator) GenerateGlucoseInsight(context.Context, domain.GlucoseSummary, *domain.UserProfile) (string, []string, error) {
	g.calls++
	if g.err != nil {
		return "", nil, g.err
	}
	return "Tudo certo.", []string{"Continue assim"}, nil
}

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func sampleReadings() []*domain.GlucoseReading {
	return []*domain.GlucoseReading{
		{GlucoseValue: 95, MeasuredAt: now.Add(-time.Hour)},
		{GlucoseValue: 140, MeasuredAt: now.Add(-48 * time.Hour)},
		{GlucoseValue: 65, MeasuredAt: now.Add(-72 * time.Hour)},
	}
}

func TestGenerateUsesGenerator(t *testing.T) {
	src := &stubReadings{readings: sampleReadings()}
	gen := &stubGenerator{}
	uc := NewInsightsUseCase(src, stubProfiles{}, gen, zap.NewNop())
	uc.now = func() time.Time { return now }

	insight, err := uc.Generate(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "gemini", insight.Source)
	assert.Equal(t, "Tudo certo.", insight.Text)
	assert.Equal(t, 3, insight.Summary.Count)
	assert.Equal(t, now.Add(-Window), src.since)
}

func TestGenerateFallsBack(t *testing.T) {
	src := &stubReadings{readings: sampleReadings()}
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	uc := NewInsightsUseCase(src, stubProfiles{}, gen, zap.NewNop())
	uc.now = func() time.Time { return now }

	insight, err := uc.Generate(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "fallback", insight.Source)
	assert.Contains(t, insight.Text, "3 medições")
	assert.Len(t, insight.Tips, 3)
	assert.Equal(t, 1, gen.calls)
}

func TestGenerateWithoutReadingsSkipsGenerator(t *testing.T) {
	gen := &stubGenerator{}
	uc := NewInsightsUseCase(&stubReadings{}, stubProfiles{}, gen, zap.NewNop())

	insight, err := uc.Generate(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "fallback", insight.Source)
	assert.Zero(t, gen.calls)
	assert.Contains(t, insight.Text, "Ainda não há medições")
}

func TestNilGenerator(t *testing.T) {
	uc := NewInsightsUseCase(&stubReadings{readings: sampleReadings()}, stubProfiles{}, nil, zap.NewNop())
	uc.now = func() time.Time { return now }

	insight, err := uc.Generate(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "fallback", insight.Source)
}
