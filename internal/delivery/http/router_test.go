package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gdugdh24/glicosaude/internal/delivery/http/handler"
	"github.com/gdugdh24/glicosaude/internal/delivery/http/middleware"
	"github.com/gdugdh24/glicosaude/internal/premium"
	"github.com/gdugdh24/glicosaude/internal/repository/memory"
	"github.com/gdugdh24/glicosaude/internal/usecase/auth"
	"github.com/gdugdh24/glicosaude/internal/usecase/insights"
	onboardinguc "github.com/gdugdh24/glicosaude/internal/usecase/onboarding"
	"github.com/gdugdh24/glicosaude/internal/usecase/pages"
	"github.com/gdugdh24/glicosaude/internal/usecase/profile"
	"github.com/gdugdh24/glicosaude/internal/usecase/readings"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	log := zap.NewNop()

	profileRepo := memory.NewProfileRepository()
	drafts := memory.NewDraftStore()

	authUC := auth.NewAuthUseCase(memory.NewUserRepository(), memory.NewTokenDenylist(), "test-secret-with-enough-length-0123", time.Hour)
	profileUC := profile.NewProfileUseCase(profileRepo, drafts)
	readingsUC := readings.NewReadingsUseCase(memory.NewReadingRepository(), memory.NewReadingCache(), log)
	onboardingUC := onboardinguc.NewOnboardingUseCase(drafts, profileUC)
	insightsUC := insights.NewInsightsUseCase(readingsUC, profileUC, nil, log)

	catalog, err := premium.Load()
	require.NoError(t, err)
	pagesUC := pages.NewPagesUseCase(profileUC, readingsUC, catalog, time.UTC)

	router := NewRouter(
		handler.NewAuthHandler(authUC),
		handler.NewProfileHandler(profileUC),
		handler.NewReadingHandler(readingsUC),
		handler.NewOnboardingHandler(onboardingUC),
		handler.NewInsightsHandler(insightsUC),
		handler.NewPageHandler(pagesUC, onboardingUC),
		middleware.NewAuthMiddleware(authUC),
		profileUC,
		middleware.NewRateLimiter(rate.Inf, 1),
		[]string{"http://localhost:5173"},
		log,
	)
	return router.Setup()
}

func do(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func register(t *testing.T, engine *gin.Engine, email string) string {
	t.Helper()
	w := do(t, engine, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    email,
		"password": "senha-segura",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[auth.AuthResponse](t, w).Token
}

func completeOnboarding(t *testing.T, engine *gin.Engine, token string) {
	t.Helper()
	w := do(t, engine, http.MethodPatch, "/api/v1/onboarding", token, map[string]any{"name": "Maria", "age": 54})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, http.StatusOK, do(t, engine, http.MethodPost, "/api/v1/onboarding/next", token, nil).Code)
	w = do(t, engine, http.MethodPatch, "/api/v1/onboarding", token, map[string]any{"diagnosisYears": 7})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, http.StatusOK, do(t, engine, http.MethodPost, "/api/v1/onboarding/next", token, nil).Code)
	w = do(t, engine, http.MethodPost, "/api/v1/onboarding/complete", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestHealth(t *testing.T) {
	engine := newTestEngine(t)

	assert.Equal(t, http.StatusOK, do(t, engine, http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, engine, http.MethodHead, "/health", "", nil).Code)
}

func TestAnonymousVisitorIsSentToOnboarding(t *testing.T) {
	engine := newTestEngine(t)

	for _, path := range []string{"/", "/registro", "/historico", "/premium", "/perfil", "/nao-existe"} {
		w := do(t, engine, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/onboarding", w.Header().Get("Location"), path)
	}

	w := do(t, engine, http.MethodGet, "/onboarding", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[handler.PageResponse](t, w)
	assert.Equal(t, "/onboarding", page.Route)
	assert.False(t, page.ShowBottomNav)

	w = do(t, engine, http.MethodGet, "/instalar", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOnboardingFlowUnlocksMainRoutes(t *testing.T) {
	engine := newTestEngine(t)
	token := register(t, engine, "maria@example.com")

	w := do(t, engine, http.MethodGet, "/api/v1/profile/me", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, engine, http.MethodPost, "/api/v1/onboarding/next", token, nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	refused := decode[handler.StepErrorResponse](t, w)
	assert.ElementsMatch(t, []string{"name", "age"}, refused.Fields)
	assert.Equal(t, "Campos obrigatórios", refused.Title)

	w = do(t, engine, http.MethodPost, "/api/v1/onboarding/complete", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	completeOnboarding(t, engine, token)

	w = do(t, engine, http.MethodGet, "/onboarding", token, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = do(t, engine, http.MethodGet, "/", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := decode[handler.PageResponse](t, w)
	assert.Equal(t, "/", page.Route)
	assert.True(t, page.ShowBottomNav)

	w = do(t, engine, http.MethodGet, "/perfil", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, engine, http.MethodGet, "/nao-existe", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, engine, http.MethodGet, "/api/v1/profile/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	row := decode[map[string]any](t, w)
	assert.Equal(t, "Maria", row["name"])
	assert.Equal(t, true, row["onboarding_completed"])
}

func TestProfileEndpoints(t *testing.T) {
	engine := newTestEngine(t)
	token := register(t, engine, "joao@example.com")

	w := do(t, engine, http.MethodPatch, "/api/v1/profile/me", token, map[string]any{"name": "João"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, engine, http.MethodPut, "/api/v1/profile/me", token, map[string]any{
		"id":              "someone-else",
		"name":            "João",
		"age":             31,
		"sex":             "masculino",
		"diabetes_type":   "tipo1",
		"diagnosis_years": 2,
		"activity_level":  "ativo",
		"eating_habits":   "regular",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	row := decode[map[string]any](t, w)
	assert.NotEqual(t, "someone-else", row["id"])

	w = do(t, engine, http.MethodPatch, "/api/v1/profile/me", token, map[string]any{"weight": 80.5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[map[string]any](t, w)
	assert.Equal(t, 80.5, updated["weight"])
	assert.Equal(t, "João", updated["name"])

	w = do(t, engine, http.MethodPut, "/api/v1/profile/me", token, map[string]any{"sex": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusOK, do(t, engine, http.MethodDelete, "/api/v1/profile/me", token, nil).Code)
	assert.Equal(t, http.StatusOK, do(t, engine, http.MethodDelete, "/api/v1/profile/me", token, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, engine, http.MethodGet, "/api/v1/profile/me", token, nil).Code)
}

func TestReadingEndpoints(t *testing.T) {
	engine := newTestEngine(t)
	token := register(t, engine, "ana@example.com")

	w := do(t, engine, http.MethodPost, "/api/v1/readings", token, map[string]any{
		"glucose_value":    650,
		"measurement_type": "fasting",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Valor inválido", decode[handler.ErrorResponse](t, w).Title)

	w = do(t, engine, http.MethodPost, "/api/v1/readings", token, map[string]any{
		"glucose_value":    98,
		"measurement_type": "fasting",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	w = do(t, engine, http.MethodGet, "/api/v1/readings", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[handler.ListReadingsResponse](t, w).Total)

	other := register(t, engine, "outra@example.com")
	assert.Equal(t, http.StatusNotFound, do(t, engine, http.MethodDelete, "/api/v1/readings/"+id, other, nil).Code)

	assert.Equal(t, http.StatusOK, do(t, engine, http.MethodDelete, "/api/v1/readings/"+id, token, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, engine, http.MethodDelete, "/api/v1/readings/"+id, token, nil).Code)

	w = do(t, engine, http.MethodPost, "/api/v1/insights", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fallback", decode[map[string]any](t, w)["source"])
}

func TestAuthEndpoints(t *testing.T) {
	engine := newTestEngine(t)

	assert.Equal(t, http.StatusUnauthorized, do(t, engine, http.MethodGet, "/api/v1/readings", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, engine, http.MethodGet, "/api/v1/readings", "garbage", nil).Code)

	token := register(t, engine, "bia@example.com")
	w := do(t, engine, http.MethodPost, "/api/v1/auth/register", "", map[string]string{"email": "BIA@example.com", "password": "outra-senha"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, engine, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "bia@example.com", "password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, engine, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "bia@example.com", "password": "senha-segura"})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusOK, do(t, engine, http.MethodGet, "/api/v1/auth/me", token, nil).Code)
	assert.Equal(t, http.StatusOK, do(t, engine, http.MethodPost, "/api/v1/auth/logout", token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, engine, http.MethodGet, "/api/v1/auth/me", token, nil).Code)
}

func TestUnknownAPIRoute(t *testing.T) {
	engine := newTestEngine(t)

	w := do(t, engine, http.MethodGet, "/api/v1/nao-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", decode[handler.ErrorResponse](t, w).Error)
}
