package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var ErrEmptyResponse = errors.New("gemini returned no content")

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.4)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// GenerateGlucoseInsight asks for a short comment on the summary plus a few
// practical tips, in pt-BR.
func (c *GeminiClient) GenerateGlucoseInsight(ctx context.Context, summary domain.GlucoseSummary, profile *domain.UserProfile) (string, []string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(BuildPrompt(summary, profile)))
	if err != nil {
		return "", nil, fmt.Errorf("generate insight: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil, ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return ParseInsight(sb.String())
}

// BuildPrompt renders the request sent to the model.
func BuildPrompt(summary domain.GlucoseSummary, profile *domain.UserProfile) string {
	about := "perfil não informado"
	if profile != nil {
		about = fmt.Sprintf("%d anos, diabetes %s há %d anos, usa insulina: %t, atividade física: %s",
			profile.Age, profile.DiabetesType, profile.DiagnosisYears, profile.UsesInsulin, profile.ActivityLevel)
	}
	return fmt.Sprintf(`
		Você acompanha a glicemia de uma pessoa (%s).
		Período: %s a %s
		Medições: %d, média %.1f mg/dL, mínima %d, máxima %d, %d%% na faixa normal.
		Por faixa: %v

		Tarefa: escreva um comentário curto (2-3 frases) e até 3 dicas práticas.
		Não faça diagnóstico nem altere tratamento.
		Idioma: português do Brasil.
		Saída: JSON {"text": "...", "tips": ["..."]}
	`, about, summary.From.Format("02/01/2006"), summary.To.Format("02/01/2006"),
		summary.Count, summary.Average, summary.Min, summary.Max, summary.NormalPercent, summary.ByStatus)
}

// ParseInsight reads the model output. Anything that is not the requested
// JSON is taken as plain text with no tips.
func ParseInsight(raw string) (string, []string, error) {
	text := strings.TrimSpace(raw)
	// Clean up markdown code blocks if present
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil, ErrEmptyResponse
	}

	var out struct {
		Text string   `json:"text"`
		Tips []string `json:"tips"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil || out.Text == "" {
		return text, nil, nil
	}
	return strings.TrimSpace(out.Text), out.Tips, nil
}
