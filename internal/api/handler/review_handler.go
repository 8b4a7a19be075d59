package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stellargigs/stellargigs-be/internal/api/dto"
	"github.com/stellargigs/stellargigs-be/internal/api/service"
)

// ReviewHandler handles review HTTP requests
type ReviewHandler struct {
	logger  *slog.Logger
	service *service.Service
}

// NewReviewHandler creates a new ReviewHandler instance
func NewReviewHandler(deps *Dependencies) *ReviewHandler {
	return &ReviewHandler{
		logger:  deps.Logger,
		service: deps.Service,
	}
}

// CreateReview handles POST /api/v1/jobs/:job_id/review
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	artifact, err := h.service.CreateReview(c.Request.Context(), service.CreateReviewInput{
		JobID:      jobID,
		ReviewerID: req.ReviewerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.CreateReviewResponse{
		Success:      true,
		NeedsSigning: true,
		XDRData:      artifact,
	})
}

// UserReviews handles GET /api/v1/users/:user_id/reviews
func (h *ReviewHandler) UserReviews(c *gin.Context) {
	reviews, err := h.service.UserReviews(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// UserRating handles GET /api/v1/users/:user_id/average-rating
func (h *ReviewHandler) UserRating(c *gin.Context) {
	summary, err := h.service.UserRating(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
