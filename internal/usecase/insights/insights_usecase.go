package insights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"go.uber.org/zap"
)

// Window is how far back an insight looks.
const Window = 30 * 24 * time.Hour

// Generator produces a comment and tips for a summary.
type Generator interface {
	GenerateGlucoseInsight(ctx context.Context, summary domain.GlucoseSummary, profile *domain.UserProfile) (string, []string, error)
}

type ReadingSource interface {
	ListSince(ctx context.Context, userID string, since time.Time) ([]*domain.GlucoseReading, error)
}

type ProfileSource interface {
	GetMyProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
}

type InsightsUseCase struct {
	readings  ReadingSource
	profiles  ProfileSource
	generator Generator
	log       *zap.Logger
	now       func() time.Time
}

// NewInsightsUseCase accepts a nil generator; every insight is then the
// built-in summary.
func NewInsightsUseCase(readings ReadingSource, profiles ProfileSource, generator Generator, log *zap.Logger) *InsightsUseCase {
	return &InsightsUseCase{
		readings:  readings,
		profiles:  profiles,
		generator: generator,
		log:       log,
		now:       time.Now,
	}
}

// Generate summarizes the last 30 days and comments on them.
func (uc *InsightsUseCase) Generate(ctx context.Context, userID string) (*domain.Insight, error) {
	to := uc.now()
	from := to.Add(-Window)

	readings, err := uc.readings.ListSince(ctx, userID, from)
	if err != nil {
		return nil, err
	}
	profile, err := uc.profiles.GetMyProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := domain.Summarize(readings, from, to.Add(time.Nanosecond))
	insight := &domain.Insight{Summary: summary}

	if uc.generator != nil && summary.Count > 0 {
		text, tips, err := uc.generator.GenerateGlucoseInsight(ctx, summary, profile)
		if err == nil {
			insight.Text, insight.Tips, insight.Source = text, tips, "gemini"
			return insight, nil
		}
		uc.log.Warn("Gemini unavailable, using fallback insight", zap.String("user_id", userID), zap.Error(err))
	}

	insight.Text, insight.Tips = Fallback(summary)
	insight.Source = "fallback"
	return insight, nil
}

// Fallback builds a deterministic comment from the summary alone.
func Fallback(s domain.GlucoseSummary) (string, []string) {
	if s.Count == 0 {
		return "Ainda não há medições nos últimos 30 dias. Registre sua glicemia para receber análises.",
			[]string{"Registre pelo menos uma medição em jejum por dia."}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Nos últimos 30 dias você registrou %d medições, com média de %.0f mg/dL ", s.Count, s.Average)
	fmt.Fprintf(&sb, "(%s). %d%% das medições ficaram na faixa normal.", domain.ClassifyGlucose(int(s.Average+0.5)).Label(), s.NormalPercent)

	var tips []string
	if s.ByStatus[domain.StatusLow] > 0 {
		tips = append(tips, fmt.Sprintf("Houve %d medições abaixo de 70 mg/dL. Converse com seu médico sobre hipoglicemias.", s.ByStatus[domain.StatusLow]))
	}
	if s.ByStatus[domain.StatusHigh] > 0 {
		tips = append(tips, "Algumas medições passaram de 125 mg/dL. Observe a relação com as refeições.")
	}
	if s.Count < 30 {
		tips = append(tips, "Medições mais frequentes deixam as análises mais precisas.")
	}
	return sb.String(), tips
}
