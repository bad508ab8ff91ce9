package api

import (
	"errors"                         // Error comparison
	"net/http"                       // HTTP status codes
	"savings_ledger/internal/ledger" // Ledger domain errors
	"savings_ledger/internal/store"  // User store errors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// statusFor maps ledger and store errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrEmptyName):
		return http.StatusBadRequest // Caller sent bad input
	case errors.Is(err, store.ErrUserNotFound):
		return http.StatusUnauthorized // Token refers to an unknown user
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound // Goal does not exist
	case errors.Is(err, ledger.ErrDuplicateName), errors.Is(err, ledger.ErrGoalClosed):
		return http.StatusConflict // Conflicts with current state
	case errors.Is(err, ledger.ErrEmptyBalance), errors.Is(err, ledger.ErrInsufficientForWithdrawal):
		return http.StatusUnprocessableEntity // Nothing withdrawable
	case errors.Is(err, ledger.ErrThrottled):
		return http.StatusTooManyRequests // Inside the 365-day window
	default:
		return http.StatusInternalServerError // Unexpected
	}
}

// writeError writes err as a JSON error response with any structured details
func writeError(c *gin.Context, userID string, err error) {
	code := statusFor(err)              // Resolve status code
	body := gin.H{"error": err.Error()} // Error message
	var te *ledger.ThrottledError
	if errors.As(err, &te) {
		body["retry_after_days"] = te.RetryAfterDays // Days until the next withdrawal
		body["next_allowed_at"] = te.NextAllowedAt   // Date of the next withdrawal
	}
	var nf *ledger.GoalNotFoundError
	if errors.As(err, &nf) && nf.Suggestion != "" {
		body["suggestion"] = nf.Suggestion // Closest goal name
	}
	if code == http.StatusInternalServerError {
		// Log the error with context
		logrus.WithFields(logrus.Fields{
			"user_id": userID,       // User ID
			"path":    c.FullPath(), // Route
			"error":   err.Error(),  // Error message
		}).Error("Request failed")
		body["error"] = "Internal error" // Do not leak internals
	}
	c.JSON(code, body)
}
