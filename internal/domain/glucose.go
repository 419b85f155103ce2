package domain

// GlucoseStatus is the band a glucose value falls into.
type GlucoseStatus string

const (
	StatusLow         GlucoseStatus = "low"
	StatusNormal      GlucoseStatus = "normal"
	StatusPrediabetes GlucoseStatus = "prediabetes"
	StatusHigh        GlucoseStatus = "high"
)

// ClassifyGlucose maps mg/dL to a band: <70 low, 70..100 normal,
// 101..125 pre-diabetes, above that high.
func ClassifyGlucose(value int) GlucoseStatus {
	switch {
	case value < 70:
		return StatusLow
	case value <= 100:
		return StatusNormal
	case value <= 125:
		return StatusPrediabetes
	default:
		return StatusHigh
	}
}

func (s GlucoseStatus) Label() string {
	switch s {
	case StatusLow:
		return "Baixa"
	case StatusNormal:
		return "Normal"
	case StatusPrediabetes:
		return "Pré-diabetes"
	case StatusHigh:
		return "Alta"
	}
	return string(s)
}

// Tone is the colour hint the app uses for the band.
func (s GlucoseStatus) Tone() string {
	switch s {
	case StatusNormal:
		return "success"
	case StatusHigh:
		return "destructive"
	default:
		return "warning"
	}
}
