package http

import (
	"net/http"
	"strconv"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

const defaultWindowDays = 7

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/habits/:id/stats", h.HabitStats)
	r.GET("/habits/:id/window", h.Window)
	r.GET("/stats/overview", h.Overview)
}

// HabitStats godoc
// @Summary Analytics for one habit
// @Tags stats
// @Produce json
// @Param id path string true "Habit ID"
// @Success 200 {object} domain.HabitStats
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /habits/{id}/stats [get]
func (h *StatsHandler) HabitStats(c *gin.Context) {
	stats, err := h.svc.HabitStats(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Window godoc
// @Summary Completion state of the last N days
// @Tags stats
// @Produce json
// @Param id path string true "Habit ID"
// @Param days query int false "Number of days ending today" default(7)
// @Success 200 {array} domain.DayProgress
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /habits/{id}/window [get]
func (h *StatsHandler) Window(c *gin.Context) {
	days := defaultWindowDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
			return
		}
		days = n
	}

	window, err := h.svc.Window(c.Param("id"), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, window)
}

// Overview godoc
// @Summary Aggregate analytics over active habits
// @Tags stats
// @Produce json
// @Success 200 {object} domain.Overview
// @Security BearerAuth
// @Router /stats/overview [get]
func (h *StatsHandler) Overview(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Overview())
}
