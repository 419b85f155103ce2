package pages

import (
	"time"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/pwa"
)

// ReadingCard is one reading as the list and dashboard show it.
type ReadingCard struct {
	ID              string                 `json:"id"`
	Value           int                    `json:"value"`
	MeasurementType domain.MeasurementType `json:"measurement_type"`
	TypeLabel       string                 `json:"type_label"`
	Status          domain.GlucoseStatus   `json:"status"`
	StatusLabel     string                 `json:"status_label"`
	Tone            string                 `json:"tone"`
	Trend           domain.Trend           `json:"trend"`
	Timestamp       string                 `json:"timestamp"`
	MeasuredAt      time.Time              `json:"measured_at"`
	Notes           *string                `json:"notes,omitempty"`
}

type StatCard struct {
	Title    string `json:"title"`
	Value    string `json:"value"`
	Subtitle string `json:"subtitle"`
	Tone     string `json:"tone"`
}

type DashboardView struct {
	Greeting string       `json:"greeting"`
	Stats    []StatCard   `json:"stats"`
	Latest   *ReadingCard `json:"latest"`
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type ReferenceRange struct {
	Label string `json:"label"`
	Range string `json:"range"`
	Tone  string `json:"tone"`
}

type RegistroView struct {
	MeasurementTypes []Option         `json:"measurement_types"`
	ReferenceRanges  []ReferenceRange `json:"reference_ranges"`
	MinValue         int              `json:"min_value"`
	MaxValue         int              `json:"max_value"`
}

type DayPoint struct {
	Date    string `json:"date"`
	Label   string `json:"label"`
	Average *int   `json:"average"`
	Count   int    `json:"count"`
}

type HistoricoView struct {
	Days        []DayPoint    `json:"days"`
	WeekAverage *int          `json:"week_average"`
	Readings    []ReadingCard `json:"readings"`
}

type ProfileField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type PerfilView struct {
	Profile *domain.UserProfile `json:"profile"`
	Fields  []ProfileField      `json:"fields"`
}

type InstalarView struct {
	Client     pwa.Client                        `json:"client"`
	DefaultTab pwa.Platform                      `json:"default_tab"`
	Guides     map[pwa.Platform]pwa.Instructions `json:"guides"`
}
