package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const PersistenceWarningHeader = "X-Persistence-Warning"

// persisted reports whether the handler may answer with its normal result.
// A persistence failure is not fatal: the change is live in memory, so the
// response carries a warning header instead of an error status.
func persisted(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, domain.ErrPersistence) {
		log.Printf("[HTTP] %s %s committed but not saved: %v", c.Request.Method, c.FullPath(), err)
		c.Header(PersistenceWarningHeader, "change kept in memory but could not be saved")
		return true
	}
	respondError(c, err)
	return false
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
