package dto

// SendTipRequest is the request body for POST /tips
type SendTipRequest struct {
	JobID   string `json:"job_id"`
	From    string `json:"from" binding:"required"`
	To      string `json:"to" binding:"required"`
	Token   string `json:"token" binding:"required"`
	Amount  string `json:"amount" binding:"required"`
	Message string `json:"message"`
}

// SendTipResponse is the response body for POST /tips
type SendTipResponse struct {
	XDR     string `json:"xdr"`
	From    string `json:"from"`
	To      string `json:"to"`
	Amount  string `json:"amount"`
	Network string `json:"network"`
	Message string `json:"message"`
}
