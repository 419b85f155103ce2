package gemini

import (
	"testing"
	"time"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInsight(t *testing.T) {
	text, tips, err := ParseInsight("```json\n{\"text\": \"Boa semana.\", \"tips\": [\"Beba água\"]}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Boa semana.", text)
	assert.Equal(t, []string{"Beba água"}, tips)

	text, tips, err = ParseInsight("Sua média está estável.")
	require.NoError(t, err)
	assert.Equal(t, "Sua média está estável.", text)
	assert.Nil(t, tips)

	_, _, err = ParseInsight("  ")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestBuildPrompt(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	summary := domain.GlucoseSummary{From: from, To: from.AddDate(0, 0, 30), Count: 12, Average: 104.5, Min: 80, Max: 160, NormalPercent: 58}

	prompt := BuildPrompt(summary, &domain.UserProfile{Age: 50, DiabetesType: domain.DiabetesType2, DiagnosisYears: 4})
	assert.Contains(t, prompt, "50 anos, diabetes tipo2 há 4 anos")
	assert.Contains(t, prompt, "média 104.5 mg/dL")
	assert.Contains(t, prompt, "01/05/2024")

	assert.Contains(t, BuildPrompt(summary, nil), "perfil não informado")
}
