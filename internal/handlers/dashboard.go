package handlers

import (
	"net/http"
	"strconv"

	"waterbuddy/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultHistoryDays = 7
	maxHistoryDays     = 90

	errDaysInvalid = "invalid 'days'; use an integer between 1 and 90"
)

// @Summary      Dashboard summary
// @Description  Today's intake, goal math, milestone, theme and tip in one read
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  service.Summary
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/summary [get]
// @Security     BearerAuth
func (h *Handler) getSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Dashboard.Summary(c.Request.Context(), userID(c)))
}

// @Summary      Intake history
// @Description  Last N consecutive calendar dates ending today, oldest first. Days that cannot be read chart as 0.
// @Tags         dashboard
// @Produce      json
// @Param        days  query  int  false  "Number of days (1-90)"  default(7)
// @Success      200  {object}  map[string]interface{}  "count, days"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/history [get]
// @Security     BearerAuth
func (h *Handler) getHistory(c *gin.Context) {
	days := defaultHistoryDays
	if qs := c.Query("days"); qs != "" {
		v, err := strconv.Atoi(qs)
		if err != nil || v < 1 || v > maxHistoryDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": errDaysInvalid})
			return
		}
		days = v
	}

	history := h.services.History.LastDays(c.Request.Context(), userID(c), days)
	c.JSON(http.StatusOK, gin.H{
		"count": len(history),
		"days":  history,
	})
}

// @Summary      Tip of the day
// @Tags         dashboard
// @Produce      json
// @Param        next  query  bool  false  "Rotate to a new tip first"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/tip [get]
// @Security     BearerAuth
func (h *Handler) getTip(c *gin.Context) {
	tip := h.services.Tips.Current()
	if c.Query("next") == "true" {
		tip = h.services.Tips.Next()
	}
	c.JSON(http.StatusOK, gin.H{"tip": tip})
}

// @Summary      Unit converter
// @Description  Pass exactly one of 'cups' or 'ml'
// @Tags         dashboard
// @Produce      json
// @Param        cups  query  number  false  "Cups to convert to ml"
// @Param        ml    query  number  false  "Milliliters to convert to cups"
// @Success      200  {object}  map[string]float64  "cups, ml"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/convert [get]
// @Security     BearerAuth
func (h *Handler) convertUnits(c *gin.Context) {
	if qs := c.Query("cups"); qs != "" {
		cups, err := strconv.ParseFloat(qs, 64)
		if err != nil || cups < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'cups' value"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cups": cups, "ml": service.MLFromCups(cups)})
		return
	}
	if qs := c.Query("ml"); qs != "" {
		ml, err := strconv.ParseFloat(qs, 64)
		if err != nil || ml < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'ml' value"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ml": ml, "cups": service.CupsFromML(ml)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "pass 'cups' or 'ml'"})
}
