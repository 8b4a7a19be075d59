package dto

// CreateReviewRequest is the request body for POST /api/v1/jobs/:job_id/review
type CreateReviewRequest struct {
	ReviewerID string `json:"reviewer_id" binding:"required"`
	Rating     int    `json:"rating" binding:"required"`
	Comment    string `json:"comment"`
}

// CreateReviewResponse carries the unsigned review artifact for the
// reviewer's wallet to sign.
type CreateReviewResponse struct {
	Success      bool `json:"success"`
	NeedsSigning bool `json:"needs_signing"`
	XDRData      any  `json:"xdr_data"`
}
