package pages

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/premium"
	"github.com/gdugdh24/glicosaude/internal/pwa"
	"golang.org/x/sync/errgroup"
)

type ProfileSource interface {
	GetMyProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
}

type ReadingSource interface {
	List(ctx context.Context, userID string) ([]*domain.GlucoseReading, error)
}

// PagesUseCase assembles the view models behind the app routes.
type PagesUseCase struct {
	profiles ProfileSource
	readings ReadingSource
	catalog  *premium.Catalog
	loc      *time.Location
	now      func() time.Time
}

func NewPagesUseCase(profiles ProfileSource, readings ReadingSource, catalog *premium.Catalog, loc *time.Location) *PagesUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &PagesUseCase{
		profiles: profiles,
		readings: readings,
		catalog:  catalog,
		loc:      loc,
		now:      time.Now,
	}
}

var weekdayLabels = [...]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// Dashboard fetches profile and readings concurrently.
func (uc *PagesUseCase) Dashboard(ctx context.Context, userID string) (*DashboardView, error) {
	var (
		profile  *domain.UserProfile
		readings []*domain.GlucoseReading
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = uc.profiles.GetMyProfile(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		readings, err = uc.readings.List(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := uc.now().In(uc.loc)
	today := startOfDay(now)
	todays := domain.Summarize(readings, today, today.AddDate(0, 0, 1))
	yesterdays := domain.Summarize(readings, today.AddDate(0, 0, -1), today)

	view := &DashboardView{Greeting: "Olá!"}
	if profile != nil && profile.Name != "" {
		view.Greeting = fmt.Sprintf("Olá, %s!", profile.Name)
	}

	avg := "--"
	avgTone := "default"
	if todays.Count > 0 {
		rounded := int(math.Round(todays.Average))
		avg = strconv.Itoa(rounded)
		avgTone = domain.ClassifyGlucose(rounded).Tone()
	}
	goal := "--"
	if todays.Count > 0 {
		goal = fmt.Sprintf("%d%%", todays.NormalPercent)
	}
	trendValue, trendTone := trendVersus(todays, yesterdays)

	view.Stats = []StatCard{
		{Title: "Média", Value: avg, Subtitle: "mg/dL", Tone: avgTone},
		{Title: "Medições", Value: strconv.Itoa(todays.Count), Subtitle: "hoje", Tone: "default"},
		{Title: "Meta", Value: goal, Subtitle: "atingida", Tone: "success"},
		{Title: "Tendência", Value: trendValue, Subtitle: "vs ontem", Tone: trendTone},
	}

	if cards := uc.cards(readings, now); len(cards) > 0 {
		view.Latest = &cards[0]
	}
	return view, nil
}

func trendVersus(today, yesterday domain.GlucoseSummary) (string, string) {
	if today.Count == 0 || yesterday.Count == 0 || yesterday.Average == 0 {
		return "--", "default"
	}
	pct := int(math.Round((today.Average - yesterday.Average) / yesterday.Average * 100))
	switch {
	case pct < 0:
		return fmt.Sprintf("↓ %d%%", -pct), "success"
	case pct > 0:
		return fmt.Sprintf("↑ %d%%", pct), "warning"
	default:
		return "= 0%", "default"
	}
}

// Registro lists the form options and the reference ranges.
func (uc *PagesUseCase) Registro() *RegistroView {
	view := &RegistroView{
		MinValue: domain.MinGlucoseExclusive + 1,
		MaxValue: domain.MaxGlucoseExclusive - 1,
		ReferenceRanges: []ReferenceRange{
			{Label: "Normal", Range: "70-100 mg/dL (jejum)", Tone: "success"},
			{Label: "Pré-diabetes", Range: "100-125 mg/dL", Tone: "warning"},
			{Label: "Diabetes", Range: "≥126 mg/dL", Tone: "destructive"},
		},
	}
	for _, t := range domain.MeasurementTypes {
		view.MeasurementTypes = append(view.MeasurementTypes, Option{Value: string(t), Label: t.Label()})
	}
	return view
}

// Historico returns the last seven days of daily averages, oldest first,
// and every reading as a card.
func (uc *PagesUseCase) Historico(ctx context.Context, userID string) (*HistoricoView, error) {
	readings, err := uc.readings.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := uc.now().In(uc.loc)
	today := startOfDay(now)
	view := &HistoricoView{Readings: uc.cards(readings, now)}

	weekStart := today.AddDate(0, 0, -6)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		s := domain.Summarize(readings, day, day.AddDate(0, 0, 1))
		point := DayPoint{Date: day.Format("2006-01-02"), Label: weekdayLabels[day.Weekday()], Count: s.Count}
		if s.Count > 0 {
			avg := int(math.Round(s.Average))
			point.Average = &avg
		}
		view.Days = append(view.Days, point)
	}
	if week := domain.Summarize(readings, weekStart, today.AddDate(0, 0, 1)); week.Count > 0 {
		avg := int(math.Round(week.Average))
		view.WeekAverage = &avg
	}
	return view, nil
}

// Premium returns the plan catalog.
func (uc *PagesUseCase) Premium() *premium.Catalog {
	return uc.catalog
}

// Perfil returns the stored profile with display labels.
func (uc *PagesUseCase) Perfil(ctx context.Context, userID string) (*PerfilView, error) {
	profile, err := uc.profiles.GetMyProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := &PerfilView{Profile: profile}
	if profile == nil {
		return view, nil
	}

	insulin := "Não"
	if profile.UsesInsulin {
		insulin = "Sim"
		if profile.InsulinType != nil && *profile.InsulinType != "" {
			insulin = "Sim (" + *profile.InsulinType + ")"
		}
	}
	view.Fields = []ProfileField{
		{Label: "Nome", Value: profile.Name},
		{Label: "Idade", Value: strconv.Itoa(profile.Age)},
		{Label: "Sexo", Value: profile.Sex.Label()},
		{Label: "Peso (kg)", Value: optionalNumber(profile.Weight)},
		{Label: "Altura (cm)", Value: optionalNumber(profile.Height)},
		{Label: "Tipo de diabetes", Value: profile.DiabetesType.Label()},
		{Label: "Tempo de diagnóstico (anos)", Value: strconv.Itoa(profile.DiagnosisYears)},
		{Label: "Usa insulina?", Value: insulin},
		{Label: "Usa medicação?", Value: yesNo(profile.UsesMedication)},
		{Label: "Nível de atividade física", Value: profile.ActivityLevel.Label()},
		{Label: "Hábitos alimentares", Value: profile.EatingHabits.Label()},
		{Label: "Consome álcool?", Value: yesNo(profile.ConsumesAlcohol)},
		{Label: "Fuma?", Value: yesNo(profile.Smokes)},
	}
	return view, nil
}

// Instalar detects the visitor's platform from the User-Agent.
func (uc *PagesUseCase) Instalar(userAgent string) (*InstalarView, error) {
	guides, err := pwa.Guides()
	if err != nil {
		return nil, err
	}
	client := pwa.Detect(userAgent)
	return &InstalarView{Client: client, DefaultTab: pwa.DefaultTab(client.Platform), Guides: guides}, nil
}

// cards expects readings newest first; each trend compares a reading with
// the one before it in time.
func (uc *PagesUseCase) cards(readings []*domain.GlucoseReading, now time.Time) []ReadingCard {
	cards := make([]ReadingCard, 0, len(readings))
	for i, r := range readings {
		trend := domain.TrendStable
		if i+1 < len(readings) {
			trend = domain.TrendBetween(readings[i+1].GlucoseValue, r.GlucoseValue)
		}
		status := r.Status()
		cards = append(cards, ReadingCard{
			ID:              r.ID,
			Value:           r.GlucoseValue,
			MeasurementType: r.MeasurementType,
			TypeLabel:       r.MeasurementType.Label(),
			Status:          status,
			StatusLabel:     status.Label(),
			Tone:            status.Tone(),
			Trend:           trend,
			Timestamp:       uc.timestamp(r.MeasuredAt, now),
			MeasuredAt:      r.MeasuredAt,
			Notes:           r.Notes,
		})
	}
	return cards
}

// timestamp renders "Hoje, 14:30", "Ontem, 20:15" or "02/05, 08:00".
func (uc *PagesUseCase) timestamp(t, now time.Time) string {
	t = t.In(uc.loc)
	today := startOfDay(now)
	switch day := startOfDay(t); {
	case day.Equal(today):
		return "Hoje, " + t.Format("15:04")
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Ontem, " + t.Format("15:04")
	default:
		return t.Format("02/01, 15:04")
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func optionalNumber(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func yesNo(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}
