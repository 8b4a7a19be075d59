package dto

// PostJobRequest is the request body for POST /api/v1/jobs
type PostJobRequest struct {
	EmployerID   string   `json:"employer_id" binding:"required"`
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Tags         []string `json:"tags"`
	Price        string   `json:"price" binding:"required"`
	Currency     string   `json:"currency" binding:"required"`
	EmployerName string   `json:"employer_name"`
}

// ClaimJobRequest is the request body for POST /api/v1/jobs/:job_id/claim
type ClaimJobRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
}

// WithdrawJobRequest is the request body for POST /api/v1/jobs/:job_id/withdraw
type WithdrawJobRequest struct {
	EmployerID string `json:"employer_id" binding:"required"`
}

// DeleteJobRequest is the request body for DELETE /api/v1/jobs/:job_id
type DeleteJobRequest struct {
	EmployerID string `json:"employer_id" binding:"required"`
}

// SubmitXDRRequest is the request body for POST /api/v1/jobs/submit-xdr and
// /api/v1/jobs/submit-escrow: a signed artifact ready for the network.
type SubmitXDRRequest struct {
	SignedXDR string `json:"signed_xdr" binding:"required"`
}

// PaymentXDRs groups the unsigned artifacts returned from approval.
type PaymentXDRs struct {
	Payment string `json:"payment"`
}

// ApproveJobResponse is the response for POST /api/v1/jobs/:job_id/approve.
// XDRs is omitted when payment was skipped.
type ApproveJobResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	XDRs    *PaymentXDRs `json:"xdrs,omitempty"`
	Amount  string       `json:"amount,omitempty"`
	From    string       `json:"from,omitempty"`
	To      string       `json:"to,omitempty"`
	Network string       `json:"network,omitempty"`
}

// SubmitXDRResponse is the response for a successful artifact submission.
type SubmitXDRResponse struct {
	Success bool   `json:"success"`
	Hash    string `json:"hash"`
	Ledger  int64  `json:"ledger"`
}
