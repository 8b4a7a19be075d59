package storage

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellargigs/stellargigs-be/internal/api/domain"
)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewStorage(sqlxDB, slog.New(slog.DiscardHandler)), mock
}

func TestCreateJob(t *testing.T) {
	storage, mock := newMockStorage(t)

	now := time.Now()
	job := &domain.Job{
		ID:          "job-1",
		EmployerID:  "employer-1",
		Title:       "Build landing page",
		Description: "desc",
		Price:       decimal.RequireFromString("50.00"),
		Currency:    "XLM",
		Status:      domain.JobStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	mock.ExpectExec("INSERT INTO jobs").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, storage.CreateJob(context.Background(), job))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetJobByID_NotFound(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery("FROM jobs WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := storage.GetJobByID(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrJobNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimJob(t *testing.T) {
	t.Run("winner updates the row", func(t *testing.T) {
		storage, mock := newMockStorage(t)

		mock.ExpectExec("UPDATE jobs").
			WithArgs("employee-1", domain.JobStatusInProgress, "job-1", domain.JobStatusOpen).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, storage.ClaimJob(context.Background(), "job-1", "employee-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("loser sees not available", func(t *testing.T) {
		storage, mock := newMockStorage(t)

		mock.ExpectExec("UPDATE jobs").
			WithArgs("employee-2", domain.JobStatusInProgress, "job-1", domain.JobStatusOpen).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := storage.ClaimJob(context.Background(), "job-1", "employee-2")
		require.ErrorIs(t, err, domain.ErrJobNotAvailable)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransitionStatus(t *testing.T) {
	t.Run("conditioned on the previous status", func(t *testing.T) {
		storage, mock := newMockStorage(t)

		mock.ExpectExec("UPDATE jobs").
			WithArgs(domain.JobStatusSubmitted, "job-1", domain.JobStatusInProgress).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, storage.TransitionStatus(context.Background(), "job-1", domain.JobStatusInProgress, domain.JobStatusSubmitted))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows means invalid transition", func(t *testing.T) {
		storage, mock := newMockStorage(t)

		mock.ExpectExec("UPDATE jobs").
			WithArgs(domain.JobStatusSubmitted, "job-1", domain.JobStatusInProgress).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := storage.TransitionStatus(context.Background(), "job-1", domain.JobStatusInProgress, domain.JobStatusSubmitted)
		require.ErrorIs(t, err, domain.ErrInvalidTransition)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCompleteJob(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectExec("UPDATE jobs").
		WithArgs(domain.JobStatusCompleted, "job-1", domain.JobStatusSubmitted).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, storage.CompleteJob(context.Background(), "job-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteJob(t *testing.T) {
	t.Run("deletes open jobs only", func(t *testing.T) {
		storage, mock := newMockStorage(t)

		mock.ExpectExec("DELETE FROM jobs").
			WithArgs("job-1", domain.JobStatusOpen).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, storage.DeleteJob(context.Background(), "job-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("claimed job survives", func(t *testing.T) {
		storage, mock := newMockStorage(t)

		mock.ExpectExec("DELETE FROM jobs").
			WithArgs("job-1", domain.JobStatusOpen).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := storage.DeleteJob(context.Background(), "job-1")
		require.ErrorIs(t, err, domain.ErrInvalidTransition)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMarkNotificationsRead(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectExec("UPDATE notifications SET read").
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	updated, err := storage.MarkNotificationsRead(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)
	require.NoError(t, mock.ExpectationsWereMet())
}
