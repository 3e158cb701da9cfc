package handlers

import (
	"errors"
	"net/http"
	"time"

	"waterbuddy/internal/service"
	"waterbuddy/internal/store"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusLogged  = "logged"
	statusUpdated = "updated"
	statusReset   = "reset"

	errStoreUnavailable = "store unavailable, try again"
	errInvalidBodyPref  = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// writeFailure maps a service write error onto the HTTP surface: store
// failures are a visible 502, validation failures a 400.
func (h *Handler) writeFailure(c *gin.Context, logKey string, err error) {
	switch {
	case errors.Is(err, store.ErrUnavailable):
		h.logAndJSONError(c, http.StatusBadGateway, errStoreUnavailable, logKey, err)
	case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrEmptyUpdate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, "operation failed", logKey, err)
	}
}

// Request DTO for logging a drink.
type logWaterRequest struct {
	AmountML int `json:"amount_ml" binding:"required"`
}

// Request DTO for the manual accumulator set.
type setIntakeRequest struct {
	IntakeML *int `json:"intake_ml" binding:"required"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Today's intake
// @Tags         intake
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "date, intake_ml"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/intake/today [get]
// @Security     BearerAuth
func (h *Handler) getTodayIntake(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"date":      time.Now().UTC().Format("2006-01-02"),
		"intake_ml": h.services.Intake.Today(ctx, userID(c)),
	})
}

// @Summary      Log a drink
// @Description  Appends a timestamped entry and updates today's total
// @Tags         intake
// @Accept       json
// @Produce      json
// @Param        body  body  logWaterRequest  true  "Amount payload"
// @Success      200  {object}  map[string]interface{}  "status, intake_ml"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/intake/log [post]
// @Security     BearerAuth
func (h *Handler) logWater(c *gin.Context) {
	var req logWaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	total, err := h.services.Intake.Log(c.Request.Context(), userID(c), req.AmountML)
	if err != nil {
		h.writeFailure(c, "intake_log_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusLogged, "intake_ml": total})
}

// @Summary      Set today's intake
// @Description  Manual override; negative values clamp to zero
// @Tags         intake
// @Accept       json
// @Produce      json
// @Param        body  body  setIntakeRequest  true  "Intake payload"
// @Success      200  {object}  map[string]interface{}  "status, intake_ml"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/intake [put]
// @Security     BearerAuth
func (h *Handler) setIntake(c *gin.Context) {
	var req setIntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	written, err := h.services.Intake.Set(c.Request.Context(), userID(c), *req.IntakeML)
	if err != nil {
		h.writeFailure(c, "intake_set_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusUpdated, "intake_ml": written})
}

// @Summary      Reset today's intake
// @Description  Zeroes the accumulator and clears the day's entries
// @Tags         intake
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/intake/reset [post]
// @Security     BearerAuth
func (h *Handler) resetIntake(c *gin.Context) {
	if err := h.services.Intake.Reset(c.Request.Context(), userID(c)); err != nil {
		h.writeFailure(c, "intake_reset_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusReset})
}

// @Summary      Today's log entries
// @Tags         intake
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, entries"
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/intake/entries [get]
// @Security     BearerAuth
func (h *Handler) getEntries(c *gin.Context) {
	entries, err := h.services.Intake.Entries(c.Request.Context(), userID(c))
	if err != nil {
		h.writeFailure(c, "intake_entries_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(entries),
		"entries": entries,
	})
}
