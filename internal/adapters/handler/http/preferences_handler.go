package http

import (
	"net/http"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

type PreferencesHandler struct {
	svc *services.PreferencesService
}

func NewPreferencesHandler(svc *services.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{svc: svc}
}

func (h *PreferencesHandler) RegisterRoutes(r *gin.RouterGroup) {
	prefs := r.Group("/preferences")
	{
		prefs.GET("", h.Get)
		prefs.POST("/:name/toggle", h.Toggle)
	}
}

// Get godoc
// @Summary Current display preferences
// @Tags preferences
// @Produce json
// @Success 200 {object} domain.Preferences
// @Security BearerAuth
// @Router /preferences [get]
func (h *PreferencesHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Get())
}

// Toggle godoc
// @Summary Flip one preference
// @Tags preferences
// @Produce json
// @Param name path string true "week-starts-on-monday, highlight-current-day or show-analytics"
// @Success 200 {object} domain.Preferences
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /preferences/{name}/toggle [post]
func (h *PreferencesHandler) Toggle(c *gin.Context) {
	prefs, err := h.svc.Toggle(c.Request.Context(), c.Param("name"))
	if !persisted(c, err) {
		return
	}
	c.JSON(http.StatusOK, prefs)
}
