package response

import (
	"time"

	domainerrors "autoserve.backend/internal/domain/errors"
	"github.com/gin-gonic/gin"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends a rejection body. Every denial shares one shape so clients
// and log scrapers can rely on it regardless of which check refused.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if e, ok := err.(*domainerrors.AppError); ok {
		appErr = e
	} else {
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Status, gin.H{
		"success":   false,
		"error":     appErr.Message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// AbortError sends a rejection body and stops the handler chain
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
