package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stellargigs/stellargigs-be/internal/api/dto"
	"github.com/stellargigs/stellargigs-be/internal/api/service"
)

// TipHandler handles tipping HTTP requests
type TipHandler struct {
	logger  *slog.Logger
	service *service.Service
}

// NewTipHandler creates a new TipHandler instance
func NewTipHandler(deps *Dependencies) *TipHandler {
	return &TipHandler{
		logger:  deps.Logger,
		service: deps.Service,
	}
}

// SendTip handles POST /api/v1/tips
func (h *TipHandler) SendTip(c *gin.Context) {
	var req dto.SendTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	payment, err := h.service.SendTip(c.Request.Context(), service.SendTipInput{
		JobID:   req.JobID,
		From:    req.From,
		To:      req.To,
		Token:   req.Token,
		Amount:  req.Amount,
		Message: req.Message,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SendTipResponse{
		XDR:     payment.XDR,
		From:    payment.From,
		To:      payment.To,
		Amount:  payment.Amount.String(),
		Network: payment.Network,
		Message: "Tip artifact generated. Sign and submit.",
	})
}

// SubmitTip handles POST /api/v1/tips/submit
func (h *TipHandler) SubmitTip(c *gin.Context) {
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

// TipsReceived handles GET /api/v1/tips/received/:address
func (h *TipHandler) TipsReceived(c *gin.Context) {
	tips, err := h.service.TipsReceived(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tips": tips})
}

// TipsTotal handles GET /api/v1/tips/total/:address
func (h *TipHandler) TipsTotal(c *gin.Context) {
	total, err := h.service.TotalTipsReceived(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total.String()})
}
