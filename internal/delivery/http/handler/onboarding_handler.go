package handler

import (
	"errors"
	"net/http"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/onboarding"
	onboardinguc "github.com/gdugdh24/glicosaude/internal/usecase/onboarding"
	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	onboardingUseCase *onboardinguc.OnboardingUseCase
}

func NewOnboardingHandler(onboardingUseCase *onboardinguc.OnboardingUseCase) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingUseCase: onboardingUseCase,
	}
}

// StepErrorResponse is returned when Next or Complete is refused
type StepErrorResponse struct {
	Error   string                   `json:"error"`
	Title   string                   `json:"title"`
	Message string                   `json:"message"`
	Fields  []string                 `json:"fields"`
	Wizard  *onboardinguc.WizardView `json:"wizard,omitempty"`
}

// GetWizard handles GET /onboarding
// @Summary Current onboarding state
// @Tags onboarding
// @Security BearerAuth
// @Produce json
// @Success 200 {object} onboardinguc.WizardView
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /onboarding [get]
func (h *OnboardingHandler) GetWizard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	view, err := h.onboardingUseCase.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to load onboarding")
		return
	}

	c.JSON(http.StatusOK, view)
}

// UpdateDraft handles PATCH /onboarding
// @Summary Update onboarding fields
// @Tags onboarding
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body domain.ProfilePatch true "Changed fields"
// @Success 200 {object} onboardinguc.WizardView
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /onboarding [patch]
func (h *OnboardingHandler) UpdateDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var patch domain.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	view, err := h.onboardingUseCase.Update(c.Request.Context(), userID, patch)
	if err != nil {
		respondError(c, err, "failed to save onboarding")
		return
	}

	c.JSON(http.StatusOK, view)
}

// Next handles POST /onboarding/next
// @Summary Advance to the next step
// @Tags onboarding
// @Security BearerAuth
// @Produce json
// @Success 200 {object} onboardinguc.WizardView
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} StepErrorResponse
// @Router /onboarding/next [post]
func (h *OnboardingHandler) Next(c *gin.Context) {
	h.fire(c, onboarding.EventNext)
}

// Back handles POST /onboarding/back
// @Summary Return to the previous step
// @Tags onboarding
// @Security BearerAuth
// @Produce json
// @Success 200 {object} onboardinguc.WizardView
// @Failure 401 {object} ErrorResponse
// @Router /onboarding/back [post]
func (h *OnboardingHandler) Back(c *gin.Context) {
	h.fire(c, onboarding.EventBack)
}

func (h *OnboardingHandler) fire(c *gin.Context, ev onboarding.Event) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	view, err := h.onboardingUseCase.Fire(c.Request.Context(), userID, ev)
	if err != nil {
		if !respondStepError(c, err, view) {
			respondError(c, err, "failed to move onboarding")
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// Complete handles POST /onboarding/complete
// @Summary Finish onboarding
// @Description Validates every step and stores the profile with onboardingCompleted set
// @Tags onboarding
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.UserProfile
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} StepErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /onboarding/complete [post]
func (h *OnboardingHandler) Complete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	saved, err := h.onboardingUseCase.Complete(c.Request.Context(), userID)
	if err != nil {
		if !respondStepError(c, err, nil) {
			respondError(c, err, "failed to complete onboarding")
		}
		return
	}

	c.JSON(http.StatusOK, saved)
}

func respondStepError(c *gin.Context, err error, view *onboardinguc.WizardView) bool {
	var stepErr *onboarding.StepError
	if !errors.As(err, &stepErr) {
		return false
	}
	c.JSON(http.StatusUnprocessableEntity, StepErrorResponse{
		Error:   "onboarding step incomplete",
		Title:   stepErr.Err.Title,
		Message: stepErr.Err.Message,
		Fields:  stepErr.Fields,
		Wizard:  view,
	})
	return true
}
