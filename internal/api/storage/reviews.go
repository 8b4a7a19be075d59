package storage

import (
	"context"
	"fmt"

	"github.com/stellargigs/stellargigs-be/internal/api/domain"
)

// HasReview reports whether a reviewer already has a review recorded for a job.
func (s *Storage) HasReview(ctx context.Context, jobID, reviewerID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM reviews WHERE job_id = $1 AND reviewer_id = $2)`

	if err := s.db.GetContext(ctx, &exists, query, jobID, reviewerID); err != nil {
		return false, fmt.Errorf("failed to check review: %w", err)
	}

	return exists, nil
}

// CreateReview records an issued review artifact locally.
func (s *Storage) CreateReview(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, job_id, reviewer_id, reviewee_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.ExecContext(ctx, query,
		review.ID, review.JobID, review.ReviewerID, review.RevieweeID,
		review.Rating, review.Comment, review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// ListReviewsByReviewee returns the reviews recorded for a user, newest first.
func (s *Storage) ListReviewsByReviewee(ctx context.Context, userID string) ([]domain.Review, error) {
	var reviews []domain.Review
	query := `
		SELECT id, job_id, reviewer_id, reviewee_id, rating, comment, created_at
		FROM reviews
		WHERE reviewee_id = $1
		ORDER BY created_at DESC
	`

	if err := s.db.SelectContext(ctx, &reviews, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}

// RatingSummary returns the average rating and review count for a user.
func (s *Storage) RatingSummary(ctx context.Context, userID string) (float64, int64, error) {
	var summary struct {
		Average float64 `db:"average"`
		Total   int64   `db:"total"`
	}
	query := `
		SELECT COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total
		FROM reviews
		WHERE reviewee_id = $1
	`

	if err := s.db.GetContext(ctx, &summary, query, userID); err != nil {
		return 0, 0, fmt.Errorf("failed to get rating summary: %w", err)
	}

	return summary.Average, summary.Total, nil
}
