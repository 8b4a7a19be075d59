package dto

// AddWalletRequest is the request body for POST /api/v1/wallets
type AddWalletRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Address string `json:"address" binding:"required"`
	Label   string `json:"label"`
}

// RemoveWalletRequest is the request body for DELETE /api/v1/wallets/:id
type RemoveWalletRequest struct {
	UserID string `json:"user_id" binding:"required"`
}
