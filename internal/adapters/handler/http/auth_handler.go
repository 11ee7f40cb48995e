package http

import (
	"errors"
	"net/http"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

type unlockRequest struct {
	Passphrase string `json:"passphrase" binding:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Unlock godoc
// @Summary Exchange the owner passphrase for a token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body unlockRequest true "Owner passphrase"
// @Success 200 {object} tokenResponse
// @Failure 401 {object} map[string]string
// @Router /auth/unlock [post]
func (h *AuthHandler) Unlock(c *gin.Context) {
	var req unlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.service.Unlock(req.Passphrase)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPassphrase):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid passphrase"})
		case errors.Is(err, services.ErrAuthDisabled):
			c.JSON(http.StatusNotFound, gin.H{"error": "authentication is not enabled"})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/unlock", h.Unlock)
	}
}
