package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/Adams-ibr/Commodity-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusForError maps service errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrInvalidStateTransition):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrImbalancedEntry),
		errors.Is(err, apperrors.ErrNoRateAvailable),
		errors.Is(err, apperrors.ErrInvalidPayment):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes the JSON error body for err. Server side failures
// are logged at error level and hide their detail behind fallbackMsg.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		if errors.Is(err, apperrors.ErrLedgerImbalance) {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(status, gin.H{"error": fallbackMsg})
		return
	}
	logger.Warn(fallbackMsg, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}

// requireUserID reads the authenticated user and writes a 401 when it is missing.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// dateQuery parses a YYYY-MM-DD query parameter, falling back to def when it is absent.
func dateQuery(c *gin.Context, logger *slog.Logger, name string, def time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return domain.NormalizeDate(def), true
	}
	parsed, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		logger.Warn("Invalid date format", slog.String(name, raw), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format. Use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return parsed, true
}
