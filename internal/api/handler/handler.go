package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stellargigs/stellargigs-be/internal/api/domain"
	"github.com/stellargigs/stellargigs-be/internal/api/service"
)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger  *slog.Logger
	Service *service.Service
}

// jobIDParam validates the :job_id path segment before it reaches the
// database, where a malformed id would fail the UUID column comparison with a
// driver error instead of a clean 400.
func jobIDParam(c *gin.Context) (string, bool) {
	jobID := c.Param("job_id")
	if _, err := uuid.Parse(jobID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "job_id must be a valid UUID"})
		return "", false
	}
	return jobID, true
}

// respondError maps domain errors to HTTP responses. Unknown errors become an
// opaque 500.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
		return
	}

	var paymentErr *domain.PaymentGenerationError
	if errors.As(err, &paymentErr) {
		logger.Error("Payment generation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "Failed to generate payment transaction",
			"reason": "payment_generation_failed",
		})
		return
	}

	var settlementErr *domain.SettlementError
	if errors.As(err, &settlementErr) {
		logger.Error("Transaction submission failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "Failed to submit transaction",
			"reason": "settlement_failed",
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	case errors.Is(err, domain.ErrWalletNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
	case errors.Is(err, domain.ErrJobNotAvailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Job not available"})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Job is not in a valid state for this action"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to perform this action"})
	case errors.Is(err, domain.ErrAlreadyReviewed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "You have already reviewed this job"})
	default:
		logger.Error("Unhandled error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
