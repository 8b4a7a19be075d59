package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stellargigs/stellargigs-be/internal/api/dto"
	"github.com/stellargigs/stellargigs-be/internal/api/service"
)

// WalletHandler handles wallet HTTP requests
type WalletHandler struct {
	logger  *slog.Logger
	service *service.Service
}

// NewWalletHandler creates a new WalletHandler instance
func NewWalletHandler(deps *Dependencies) *WalletHandler {
	return &WalletHandler{
		logger:  deps.Logger,
		service: deps.Service,
	}
}

// AddWallet handles POST /api/v1/wallets
func (h *WalletHandler) AddWallet(c *gin.Context) {
	var req dto.AddWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	wallet, err := h.service.AddWallet(c.Request.Context(), req.UserID, req.Address, req.Label)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, wallet)
}

// UserWallets handles GET /api/v1/users/:user_id/wallets
func (h *WalletHandler) UserWallets(c *gin.Context) {
	wallets, err := h.service.UserWallets(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"wallets": wallets})
}

// RemoveWallet handles DELETE /api/v1/wallets/:id
func (h *WalletHandler) RemoveWallet(c *gin.Context) {
	var req dto.RemoveWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.service.RemoveWallet(c.Request.Context(), c.Param("id"), req.UserID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// WalletBalance handles GET /api/v1/wallets/:id/balance, where :id is the
// wallet's public address
func (h *WalletHandler) WalletBalance(c *gin.Context) {
	balance, err := h.service.WalletBalance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}
