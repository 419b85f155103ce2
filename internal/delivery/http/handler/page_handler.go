package handler

import (
	"net/http"

	"github.com/gdugdh24/glicosaude/internal/delivery/http/middleware"
	"github.com/gdugdh24/glicosaude/internal/gate"
	onboardinguc "github.com/gdugdh24/glicosaude/internal/usecase/onboarding"
	"github.com/gdugdh24/glicosaude/internal/usecase/pages"
	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	pagesUseCase      *pages.PagesUseCase
	onboardingUseCase *onboardinguc.OnboardingUseCase
}

func NewPageHandler(pagesUseCase *pages.PagesUseCase, onboardingUseCase *onboardinguc.OnboardingUseCase) *PageHandler {
	return &PageHandler{
		pagesUseCase:      pagesUseCase,
		onboardingUseCase: onboardingUseCase,
	}
}

// PageResponse is the envelope of every app route
type PageResponse struct {
	Route         string `json:"route"`
	ShowBottomNav bool   `json:"show_bottom_nav"`
	Data          any    `json:"data"`
}

// Serve renders the app route chosen by the onboarding gate
// @Summary App route
// @Description Renders one of /, /registro, /historico, /premium, /perfil, /onboarding and /instalar. Routes not reachable in the current mode redirect.
// @Tags pages
// @Produce json
// @Success 200 {object} PageResponse
// @Success 302
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router / [get]
func (h *PageHandler) Serve(c *gin.Context) {
	value, exists := c.Get(middleware.DecisionKey)
	decision, ok := value.(gate.Decision)
	if !exists || !ok || decision.Kind != gate.KindRender {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "page not found",
		})
		return
	}

	ctx := c.Request.Context()
	userID := c.GetString("user_id")

	var (
		data any
		err  error
	)
	switch decision.Path {
	case gate.RouteHome:
		data, err = h.pagesUseCase.Dashboard(ctx, userID)
	case gate.RouteRegistro:
		data = h.pagesUseCase.Registro()
	case gate.RouteHistorico:
		data, err = h.pagesUseCase.Historico(ctx, userID)
	case gate.RoutePremium:
		data = h.pagesUseCase.Premium()
	case gate.RoutePerfil:
		data, err = h.pagesUseCase.Perfil(ctx, userID)
	case gate.RouteInstalar:
		data, err = h.pagesUseCase.Instalar(c.GetHeader("User-Agent"))
	case gate.RouteOnboarding:
		if userID == "" {
			data = onboardinguc.Preview()
		} else {
			data, err = h.onboardingUseCase.Get(ctx, userID)
		}
	default:
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "page not found",
		})
		return
	}
	if err != nil {
		respondError(c, err, "failed to render page")
		return
	}

	c.JSON(http.StatusOK, PageResponse{
		Route:         decision.Path,
		ShowBottomNav: decision.ShowBottomNav,
		Data:          data,
	})
}
