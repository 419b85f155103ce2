package domain

import (
	"math"
	"time"
)

// GlucoseSummary aggregates a window of readings.
type GlucoseSummary struct {
	From          time.Time             `json:"from"`
	To            time.Time             `json:"to"`
	Count         int                   `json:"count"`
	Average       float64               `json:"average"`
	Min           int                   `json:"min"`
	Max           int                   `json:"max"`
	NormalPercent int                   `json:"normal_percent"`
	ByStatus      map[GlucoseStatus]int `json:"by_status"`
}

// Summarize aggregates the readings measured in [from, to).
func Summarize(readings []*GlucoseReading, from, to time.Time) GlucoseSummary {
	s := GlucoseSummary{From: from, To: to, ByStatus: map[GlucoseStatus]int{}}
	total := 0
	for _, r := range readings {
		if r.MeasuredAt.Before(from) || !r.MeasuredAt.Before(to) {
			continue
		}
		if s.Count == 0 || r.GlucoseValue < s.Min {
			s.Min = r.GlucoseValue
		}
		if r.GlucoseValue > s.Max {
			s.Max = r.GlucoseValue
		}
		s.Count++
		total += r.GlucoseValue
		s.ByStatus[r.Status()]++
	}
	if s.Count > 0 {
		s.Average = math.Round(float64(total)/float64(s.Count)*10) / 10
		s.NormalPercent = s.ByStatus[StatusNormal] * 100 / s.Count
	}
	return s
}

// Insight is a short commentary over a summary.
type Insight struct {
	Summary GlucoseSummary `json:"summary"`
	Text    string         `json:"text"`
	Tips    []string       `json:"tips"`
	// Source is "gemini" or "fallback".
	Source string `json:"source"`
}
