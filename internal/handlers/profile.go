package handlers

import (
	"errors"
	"net/http"

	"waterbuddy/internal/service"
	"waterbuddy/internal/store"

	"github.com/gin-gonic/gin"
)

// Request DTO for the partial settings update.
type profileUpdateRequest struct {
	AgeGroup *string `json:"age_group,omitempty"`
	GoalML   *int    `json:"daily_goal_ml,omitempty"`
	Theme    *string `json:"theme,omitempty"`
}

// @Summary      Get profile
// @Description  Returns defaults when no record exists
// @Tags         profile
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/profile [get]
// @Security     BearerAuth
func (h *Handler) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Profile.Get(c.Request.Context(), userID(c)))
}

// @Summary      Update profile
// @Description  Partial update; only supplied fields change
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body  profileUpdateRequest  true  "Fields to change"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/profile [patch]
// @Security     BearerAuth
func (h *Handler) updateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	err := h.services.Profile.Update(c.Request.Context(), userID(c), service.ProfileUpdate{
		AgeGroup: req.AgeGroup,
		GoalML:   req.GoalML,
		Theme:    req.Theme,
	})
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			h.logAndJSONError(c, http.StatusBadGateway, errStoreUnavailable, "profile_update_failed", err)
			return
		}
		// Validation errors carry their own user-readable message.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusUpdated})
}
