package handler

import (
	"net/http"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/usecase/profile"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// GetMyProfile handles GET /profile/me
// @Summary Get my profile
// @Description Get current user's profile row
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.ProfileRow
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	row, err := h.profileUseCase.GetMyRow(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to get profile")
		return
	}

	c.JSON(http.StatusOK, row)
}

// UpsertMyProfile handles PUT /profile/me
// @Summary Replace my profile
// @Description Insert or replace current user's profile row. The id is taken from the token.
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body domain.ProfileRow true "Profile row"
// @Success 200 {object} domain.ProfileRow
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/me [put]
func (h *ProfileHandler) UpsertMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var row domain.ProfileRow
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	saved, err := h.profileUseCase.UpsertRow(c.Request.Context(), userID, row)
	if err != nil {
		respondError(c, err, "failed to save profile")
		return
	}

	c.JSON(http.StatusOK, saved)
}

// UpdateMyProfile handles PATCH /profile/me
// @Summary Update my profile
// @Description Merge the given fields into the stored profile
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body domain.ProfilePatch true "Changed fields"
// @Success 200 {object} domain.UserProfile
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/me [patch]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
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

	updated, err := h.profileUseCase.UpdateProfile(c.Request.Context(), userID, patch)
	if err != nil {
		respondError(c, err, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteMyProfile handles DELETE /profile/me
// @Summary Delete my profile
// @Description Remove the profile row and any onboarding draft. Succeeds when nothing is stored.
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/me [delete]
func (h *ProfileHandler) DeleteMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.profileUseCase.DeleteProfile(c.Request.Context(), userID); err != nil {
		respondError(c, err, "failed to delete profile")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "profile deleted",
	})
}
