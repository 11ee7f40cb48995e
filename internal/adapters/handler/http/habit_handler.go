package http

import (
	"net/http"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type createHabitRequest struct {
	Name                 string   `json:"name" binding:"required"`
	Subtitle             string   `json:"subtitle"`
	Color                string   `json:"color"`
	Icon                 string   `json:"icon"`
	StreakGoal           string   `json:"streakGoal"`
	Reminders            int      `json:"reminders"`
	Categories           []string `json:"categories"`
	CompletionTracking   string   `json:"completionTracking"`
	CompletionsPerDay    int      `json:"completionsPerDay"`
	TargetCompletionDate string   `json:"targetCompletionDate"`
}

type updateHabitRequest struct {
	Name                 *string  `json:"name"`
	Subtitle             *string  `json:"subtitle"`
	Color                *string  `json:"color"`
	Icon                 *string  `json:"icon"`
	StreakGoal           *string  `json:"streakGoal"`
	Reminders            *int     `json:"reminders"`
	Categories           []string `json:"categories"`
	CompletionTracking   *string  `json:"completionTracking"`
	CompletionsPerDay    *int     `json:"completionsPerDay"`
	TargetCompletionDate *string  `json:"targetCompletionDate"`
	ClearTargetDate      bool     `json:"clearTargetDate"`
}

type toggleRequest struct {
	Date string `json:"date"`
}

type setProgressRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/archived", h.ListArchived)
		habits.GET("/:id", h.Get)
		habits.PATCH("/:id", h.Update)
		habits.POST("/:id/toggle", h.Toggle)
		habits.PUT("/:id/progress/:date", h.SetProgress)
		habits.POST("/:id/archive", h.Archive)
		habits.POST("/:id/restore", h.Restore)
		habits.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @Summary Create a habit
// @Tags habits
// @Accept json
// @Produce json
// @Param habit body createHabitRequest true "Habit attributes"
// @Success 201 {object} domain.Habit
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.AddHabit(c.Request.Context(), services.CreateHabitInput{
		Name:                 req.Name,
		Subtitle:             req.Subtitle,
		Color:                req.Color,
		Icon:                 req.Icon,
		StreakGoal:           req.StreakGoal,
		Reminders:            req.Reminders,
		Categories:           req.Categories,
		CompletionTracking:   req.CompletionTracking,
		CompletionsPerDay:    req.CompletionsPerDay,
		TargetCompletionDate: req.TargetCompletionDate,
	})
	if habit == nil {
		respondError(c, err)
		return
	}
	if !persisted(c, err) {
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// List godoc
// @Summary List active habits
// @Tags habits
// @Produce json
// @Success 200 {array} domain.Habit
// @Security BearerAuth
// @Router /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListActive())
}

// ListArchived godoc
// @Summary List archived habits
// @Description Habits archived longer than the retention period are purged first.
// @Tags habits
// @Produce json
// @Success 200 {array} domain.Habit
// @Security BearerAuth
// @Router /habits/archived [get]
func (h *HabitHandler) ListArchived(c *gin.Context) {
	list, err := h.svc.ListArchived(c.Request.Context())
	if !persisted(c, err) {
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary Get a habit
// @Tags habits
// @Produce json
// @Param id path string true "Habit ID"
// @Success 200 {object} domain.Habit
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /habits/{id} [get]
func (h *HabitHandler) Get(c *gin.Context) {
	habit, err := h.svc.GetHabit(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

// Update godoc
// @Summary Edit a habit
// @Description Only the provided fields change. Progress is never touched.
// @Tags habits
// @Accept json
// @Produce json
// @Param id path string true "Habit ID"
// @Param habit body updateHabitRequest true "Fields to change"
// @Success 200 {object} domain.Habit
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /habits/{id} [patch]
func (h *HabitHandler) Update(c *gin.Context) {
	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := domain.HabitPatch{
		Name:               req.Name,
		Subtitle:           req.Subtitle,
		Color:              req.Color,
		Icon:               req.Icon,
		StreakGoal:         req.StreakGoal,
		Reminders:          req.Reminders,
		Categories:         req.Categories,
		CompletionTracking: req.CompletionTracking,
		CompletionsPerDay:  req.CompletionsPerDay,
		ClearTargetDate:    req.ClearTargetDate,
	}
	if req.TargetCompletionDate != nil {
		day, err := domain.ParseDay(*req.TargetCompletionDate)
		if err != nil {
			respondError(c, domain.ErrInvalidTargetDate)
			return
		}
		patch.TargetCompletionDate = &day
	}

	habit, err := h.svc.EditHabit(c.Request.Context(), services.UpdateHabitInput{
		ID:         c.Param("id"),
		HabitPatch: patch,
	})
	if habit == nil {
		respondError(c, err)
		return
	}
	if !persisted(c, err) {
		return
	}

	c.JSON(http.StatusOK, habit)
}

// Toggle godoc
// @Summary Toggle completion for a day
// @Description Defaults to today when no date is given.
// @Tags progress
// @Accept json
// @Produce json
// @Param id path string true "Habit ID"
// @Param body body toggleRequest false "Day to toggle (YYYY-MM-DD)"
// @Success 200 {object} domain.DayProgress
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /habits/{id}/toggle [post]
func (h *HabitHandler) Toggle(c *gin.Context) {
	var req toggleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	day := h.svc.Today()
	if req.Date != "" {
		day = domain.CalendarDay(req.Date)
	}

	progress, err := h.svc.ToggleCompletion(c.Request.Context(), c.Param("id"), day)
	if !persisted(c, err) {
		return
	}
	c.JSON(http.StatusOK, progress)
}

// SetProgress godoc
// @Summary Set completion for a day
// @Tags progress
// @Accept json
// @Produce json
// @Param id path string true "Habit ID"
// @Param date path string true "Day (YYYY-MM-DD)"
// @Param body body setProgressRequest true "Completion state"
// @Success 200 {object} domain.DayProgress
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /habits/{id}/progress/{date} [put]
func (h *HabitHandler) SetProgress(c *gin.Context) {
	var req setProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day := domain.CalendarDay(c.Param("date"))
	progress, err := h.svc.SetCompletion(c.Request.Context(), c.Param("id"), day, *req.Completed)
	if !persisted(c, err) {
		return
	}
	c.JSON(http.StatusOK, progress)
}

// Archive godoc
// @Summary Archive a habit
// @Tags habits
// @Param id path string true "Habit ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /habits/{id}/archive [post]
func (h *HabitHandler) Archive(c *gin.Context) {
	if !persisted(c, h.svc.ArchiveHabit(c.Request.Context(), c.Param("id"))) {
		return
	}
	c.Status(http.StatusNoContent)
}

// Restore godoc
// @Summary Restore an archived habit
// @Tags habits
// @Param id path string true "Habit ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /habits/{id}/restore [post]
func (h *HabitHandler) Restore(c *gin.Context) {
	if !persisted(c, h.svc.RestoreHabit(c.Request.Context(), c.Param("id"))) {
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete godoc
// @Summary Permanently delete a habit
// @Tags habits
// @Param id path string true "Habit ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /habits/{id} [delete]
func (h *HabitHandler) Delete(c *gin.Context) {
	if !persisted(c, h.svc.PermanentlyDeleteHabit(c.Request.Context(), c.Param("id"))) {
		return
	}
	c.Status(http.StatusNoContent)
}
