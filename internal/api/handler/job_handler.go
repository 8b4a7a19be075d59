package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stellargigs/stellargigs-be/internal/api/dto"
	"github.com/stellargigs/stellargigs-be/internal/api/service"
)

// JobHandler handles job lifecycle HTTP requests
type JobHandler struct {
	logger  *slog.Logger
	service *service.Service
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger:  deps.Logger,
		service: deps.Service,
	}
}

// PostJob handles POST /api/v1/jobs
func (h *JobHandler) PostJob(c *gin.Context) {
	var req dto.PostJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	job, err := h.service.PostJob(c.Request.Context(), service.PostJobInput{
		EmployerID:   req.EmployerID,
		Title:        req.Title,
		Description:  req.Description,
		Tags:         req.Tags,
		Price:        req.Price,
		Currency:     req.Currency,
		EmployerName: req.EmployerName,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

// ListOpenJobs handles GET /api/v1/jobs
func (h *JobHandler) ListOpenJobs(c *gin.Context) {
	jobs, err := h.service.OpenJobs(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// GetJob handles GET /api/v1/jobs/:job_id
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}

	job, err := h.service.Job(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ClaimJob handles POST /api/v1/jobs/:job_id/claim
func (h *JobHandler) ClaimJob(c *gin.Context) {
	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}

	var req dto.ClaimJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	job, effects, err := h.service.ClaimJob(c.Request.Context(), jobID, req.EmployeeID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"job":     job,
		"effects": effects,
	})
}

// SubmitWork handles POST /api/v1/jobs/:job_id/submit
func (h *JobHandler) SubmitWork(c *gin.Context) {
	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}

	if err := h.service.SubmitWork(c.Request.Context(), jobID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ApproveJob handles POST /api/v1/jobs/:job_id/approve
func (h *JobHandler) ApproveJob(c *gin.Context) {
	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}

	approval, err := h.service.ApproveJob(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := dto.ApproveJobResponse{
		Success: true,
		Message: approval.Message,
	}
	if approval.Payment != nil {
		resp.XDRs = &dto.PaymentXDRs{Payment: approval.Payment.XDR}
		resp.Amount = approval.Payment.Amount.String()
		resp.From = approval.Payment.From
		resp.To = approval.Payment.To
		resp.Network = approval.Payment.Network
	}

	c.JSON(http.StatusOK, resp)
}

// WithdrawJob handles POST /api/v1/jobs/:job_id/withdraw
func (h *JobHandler) WithdrawJob(c *gin.Context) {
	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}

	var req dto.WithdrawJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	job, err := h.service.WithdrawJob(c.Request.Context(), jobID, req.EmployerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"job":     job,
	})
}

// DeleteJob handles DELETE /api/v1/jobs/:job_id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}

	var req dto.DeleteJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.service.DeleteJob(c.Request.Context(), jobID, req.EmployerID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SubmitXDR handles POST /api/v1/jobs/submit-xdr and
// POST /api/v1/jobs/submit-escrow. Both forward a signed artifact to the
// network; the distinction is client-side bookkeeping.
func (h *JobHandler) SubmitXDR(c *gin.Context) {
	var req dto.SubmitXDRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.service.SubmitSignedArtifact(c.Request.Context(), req.SignedXDR)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubmitXDRResponse{
		Success: true,
		Hash:    result.Hash,
		Ledger:  result.Ledger,
	})
}

// EmployerJobs handles GET /api/v1/employers/:user_id/jobs
func (h *JobHandler) EmployerJobs(c *gin.Context) {
	jobs, err := h.service.EmployerJobs(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// EmployeeJobs handles GET /api/v1/employees/:user_id/jobs
func (h *JobHandler) EmployeeJobs(c *gin.Context) {
	jobs, err := h.service.EmployeeJobs(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}
