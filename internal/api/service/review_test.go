package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellargigs/stellargigs-be/internal/api/domain"
)

func TestCreateReview(t *testing.T) {
	t.Run("employer reviews employee", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedJob(domain.JobStatusCompleted, employeePtr())
		env.wallets.add("employer-1", "GEMPLOYER")
		env.wallets.add("employee-1", "GEMPLOYEE")

		artifact, err := env.svc.CreateReview(context.Background(), CreateReviewInput{
			JobID:      "job-1",
			ReviewerID: "employer-1",
			Rating:     5,
			Comment:    "Great work",
		})
		require.NoError(t, err)

		assert.Equal(t, "CREVIEWS", artifact.ContractID)
		assert.Equal(t, "leave_review", artifact.FunctionName)
		assert.Equal(t, "GEMPLOYER", artifact.ReviewerAddress)
		assert.Equal(t, "GEMPLOYEE", artifact.RevieweeAddress)
		assert.Equal(t, "job-1", artifact.JobID)
		assert.Equal(t, 5, artifact.Rating)
		assert.Equal(t, "TESTNET", artifact.Network)

		require.Len(t, env.reviews.reviews, 1)
		assert.Equal(t, "employee-1", env.reviews.reviews[0].RevieweeID)
	})

	t.Run("employee reviews employer", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedJob(domain.JobStatusCompleted, employeePtr())
		env.wallets.add("employer-1", "GEMPLOYER")
		env.wallets.add("employee-1", "GEMPLOYEE")

		artifact, err := env.svc.CreateReview(context.Background(), CreateReviewInput{
			JobID:      "job-1",
			ReviewerID: "employee-1",
			Rating:     4,
		})
		require.NoError(t, err)

		assert.Equal(t, "GEMPLOYEE", artifact.ReviewerAddress)
		assert.Equal(t, "GEMPLOYER", artifact.RevieweeAddress)
	})

	t.Run("third party is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedJob(domain.JobStatusCompleted, employeePtr())

		_, err := env.svc.CreateReview(context.Background(), CreateReviewInput{
			JobID:      "job-1",
			ReviewerID: "bystander",
			Rating:     3,
		})
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("rating bounds", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedJob(domain.JobStatusCompleted, employeePtr())

		for _, rating := range []int{0, 6, -1} {
			_, err := env.svc.CreateReview(context.Background(), CreateReviewInput{
				JobID:      "job-1",
				ReviewerID: "employer-1",
				Rating:     rating,
			})

			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr, "rating %d", rating)
		}
	})

	t.Run("only completed jobs", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedJob(domain.JobStatusSubmitted, employeePtr())

		_, err := env.svc.CreateReview(context.Background(), CreateReviewInput{
			JobID:      "job-1",
			ReviewerID: "employer-1",
			Rating:     5,
		})

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("second review for the same job is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedJob(domain.JobStatusCompleted, employeePtr())
		env.wallets.add("employer-1", "GEMPLOYER")
		env.wallets.add("employee-1", "GEMPLOYEE")

		_, err := env.svc.CreateReview(context.Background(), CreateReviewInput{
			JobID:      "job-1",
			ReviewerID: "employer-1",
			Rating:     5,
		})
		require.NoError(t, err)

		_, err = env.svc.CreateReview(context.Background(), CreateReviewInput{
			JobID:      "job-1",
			ReviewerID: "employer-1",
			Rating:     2,
		})
		require.ErrorIs(t, err, domain.ErrAlreadyReviewed)

		// The counterparty can still review.
		_, err = env.svc.CreateReview(context.Background(), CreateReviewInput{
			JobID:      "job-1",
			ReviewerID: "employee-1",
			Rating:     4,
		})
		require.NoError(t, err)
	})

	t.Run("missing wallet", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedJob(domain.JobStatusCompleted, employeePtr())
		env.wallets.add("employer-1", "GEMPLOYER")

		_, err := env.svc.CreateReview(context.Background(), CreateReviewInput{
			JobID:      "job-1",
			ReviewerID: "employer-1",
			Rating:     5,
		})

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Message, "registered wallet")
	})
}

func TestUserRating(t *testing.T) {
	t.Run("averages received ratings", func(t *testing.T) {
		env := newTestEnv(t)
		env.wallets.add("employee-1", "GEMPLOYEE")
		env.reviews.reviews = []domain.Review{
			{JobID: "job-1", ReviewerID: "a", RevieweeID: "employee-1", Rating: 5},
			{JobID: "job-2", ReviewerID: "b", RevieweeID: "employee-1", Rating: 4},
		}

		summary, err := env.svc.UserRating(context.Background(), "employee-1")
		require.NoError(t, err)

		assert.InDelta(t, 4.5, summary.AverageRating, 0.001)
		assert.Equal(t, int64(2), summary.TotalReviews)
		assert.Equal(t, "GEMPLOYEE", summary.UserAddress)
	})

	t.Run("no reviews and no wallet", func(t *testing.T) {
		env := newTestEnv(t)

		summary, err := env.svc.UserRating(context.Background(), "nobody")
		require.NoError(t, err)

		assert.Zero(t, summary.AverageRating)
		assert.Zero(t, summary.TotalReviews)
		assert.Empty(t, summary.UserAddress)
	})
}
