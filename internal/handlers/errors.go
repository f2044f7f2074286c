package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papertrade/papertrade/internal/models"
)

// writeError maps a business error to an HTTP status and a
// user-readable message. Anything unmapped is a storage fault and
// surfaces as a generic 500 so no partial-state detail leaks out.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrMissingField),
		errors.Is(err, models.ErrInvalidShareCount),
		errors.Is(err, models.ErrInsufficientFunds),
		errors.Is(err, models.ErrInsufficientShares),
		errors.Is(err, models.ErrPasswordMismatch),
		errors.Is(err, models.ErrDuplicateUsername):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, models.ErrUnknownSymbol),
		errors.Is(err, models.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, models.ErrQuoteUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": models.ErrQuoteUnavailable.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
