package domain

import (
	"strconv"
	"strings"
	"time"
)

type MeasurementType string

const (
	MeasurementFasting      MeasurementType = "fasting"
	MeasurementPostprandial MeasurementType = "postprandial"
	MeasurementRandom       MeasurementType = "random"
)

// MeasurementTypes lists the accepted measurement types in display order.
var MeasurementTypes = []MeasurementType{MeasurementFasting, MeasurementPostprandial, MeasurementRandom}

func (t MeasurementType) Valid() bool {
	switch t {
	case MeasurementFasting, MeasurementPostprandial, MeasurementRandom:
		return true
	}
	return false
}

// Label is the pt-BR name shown on reading cards.
func (t MeasurementType) Label() string {
	switch t {
	case MeasurementFasting:
		return "Jejum"
	case MeasurementPostprandial:
		return "Pós-refeição"
	case MeasurementRandom:
		return "Aleatória"
	}
	return string(t)
}

// Glucose values are mg/dL and must lie strictly between these bounds.
const (
	MinGlucoseExclusive = 0
	MaxGlucoseExclusive = 600
)

type GlucoseReading struct {
	ID              string          `json:"id" db:"id"`
	UserID          string          `json:"user_id" db:"user_id"`
	GlucoseValue    int             `json:"glucose_value" db:"glucose_value"`
	MeasurementType MeasurementType `json:"measurement_type" db:"measurement_type"`
	MeasuredAt      time.Time       `json:"measured_at" db:"measured_at"`
	Notes           *string         `json:"notes" db:"notes"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// Status classifies the reading value.
func (r *GlucoseReading) Status() GlucoseStatus {
	return ClassifyGlucose(r.GlucoseValue)
}

// ReadingInput is what a client submits for a new reading. GlucoseValue is a
// pointer so a missing value can be told apart from zero.
type ReadingInput struct {
	GlucoseValue    *int            `json:"glucose_value"`
	MeasurementType MeasurementType `json:"measurement_type"`
	MeasuredAt      *time.Time      `json:"measured_at,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
}

// Validate runs the checks that must pass before any network call.
func (in ReadingInput) Validate() error {
	if in.GlucoseValue == nil || in.MeasurementType == "" {
		return NewValidationError("Campos obrigatórios", "Por favor, preencha todos os campos.")
	}
	if !ValidGlucoseValue(*in.GlucoseValue) {
		return NewValidationError("Valor inválido", "O valor da glicemia deve estar entre 1 e 599 mg/dL.")
	}
	if !in.MeasurementType.Valid() {
		return NewValidationError("Tipo inválido", "Selecione jejum, pós-refeição ou aleatória.")
	}
	return nil
}

func ValidGlucoseValue(v int) bool {
	return v > MinGlucoseExclusive && v < MaxGlucoseExclusive
}

// ParseGlucoseValue reads a form value. Blank input yields nil.
func ParseGlucoseValue(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, NewValidationError("Valor inválido", "O valor da glicemia deve ser um número inteiro.")
	}
	return &v, nil
}

// Trend compares a reading with the one taken before it.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// trendThreshold is the mg/dL change below which readings count as stable.
const trendThreshold = 5

func TrendBetween(previous, current int) Trend {
	switch diff := current - previous; {
	case diff > trendThreshold:
		return TrendUp
	case diff < -trendThreshold:
		return TrendDown
	default:
		return TrendStable
	}
}
