package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stellargigs/stellargigs-be/internal/api/domain"
)

// ReviewArtifact is the unsigned contract invocation the reviewer's wallet
// signs and submits to the reviews contract.
type ReviewArtifact struct {
	ContractID      string `json:"contract_id"`
	FunctionName    string `json:"function_name"`
	ReviewerAddress string `json:"reviewer_address"`
	RevieweeAddress string `json:"reviewee_address"`
	JobID           string `json:"job_id"`
	Rating          int    `json:"rating"`
	Comment         string `json:"comment"`
	Network         string `json:"network"`
}

// CreateReviewInput carries the fields needed to issue a review artifact.
type CreateReviewInput struct {
	JobID      string
	ReviewerID string
	Rating     int
	Comment    string
}

// CreateReview issues a review artifact for a completed job. Either party may
// review the other exactly once; the counterparty is resolved from the
// reviewer's role on the job.
func (s *Service) CreateReview(ctx context.Context, in CreateReviewInput) (*ReviewArtifact, error) {
	if in.ReviewerID == "" {
		return nil, domain.NewValidationError("reviewer_id is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domain.NewValidationError("rating must be between 1 and 5")
	}

	job, err := s.jobs.GetJobByID(ctx, in.JobID)
	if err != nil {
		return nil, err
	}

	if job.Status != domain.JobStatusCompleted {
		return nil, domain.NewValidationError("only completed jobs can be reviewed")
	}
	if job.EmployeeID == nil {
		return nil, domain.NewValidationError("job has no employee")
	}

	var revieweeID string
	switch in.ReviewerID {
	case job.EmployerID:
		revieweeID = *job.EmployeeID
	case *job.EmployeeID:
		revieweeID = job.EmployerID
	default:
		return nil, domain.ErrUnauthorized
	}

	exists, err := s.reviews.HasReview(ctx, in.JobID, in.ReviewerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyReviewed
	}

	reviewerWallet := s.walletOrNil(ctx, in.ReviewerID)
	revieweeWallet := s.walletOrNil(ctx, revieweeID)
	if reviewerWallet == nil || revieweeWallet == nil {
		return nil, domain.NewValidationError("both parties must have a registered wallet")
	}

	review := &domain.Review{
		ID:         uuid.New().String(),
		JobID:      in.JobID,
		ReviewerID: in.ReviewerID,
		RevieweeID: revieweeID,
		Rating:     in.Rating,
		Comment:    in.Comment,
		CreatedAt:  time.Now(),
	}
	if err := s.reviews.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("Review artifact issued",
		slog.String("job_id", in.JobID),
		slog.String("reviewer_id", in.ReviewerID),
		slog.Int("rating", in.Rating),
	)

	return &ReviewArtifact{
		ContractID:      s.reviewsContractID,
		FunctionName:    "leave_review",
		ReviewerAddress: reviewerWallet.Address,
		RevieweeAddress: revieweeWallet.Address,
		JobID:           in.JobID,
		Rating:          in.Rating,
		Comment:         in.Comment,
		Network:         s.chain.Network(),
	}, nil
}

// UserReviews returns the reviews recorded for a user.
func (s *Service) UserReviews(ctx context.Context, userID string) ([]domain.Review, error) {
	return s.reviews.ListReviewsByReviewee(ctx, userID)
}

// RatingSummary aggregates a user's received ratings. UserAddress is the
// user's primary wallet address, empty when they have none.
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
	UserAddress   string  `json:"user_address,omitempty"`
}

// UserRating returns the average rating and review count for a user.
func (s *Service) UserRating(ctx context.Context, userID string) (*RatingSummary, error) {
	average, total, err := s.reviews.RatingSummary(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &RatingSummary{AverageRating: average, TotalReviews: total}
	if wallet := s.walletOrNil(ctx, userID); wallet != nil {
		summary.UserAddress = wallet.Address
	}

	return summary, nil
}
