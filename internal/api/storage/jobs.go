package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stellargigs/stellargigs-be/internal/api/domain"
)

const jobColumns = `
	id, employer_id, employee_id, title, description, tags, price,
	currency, employer_name, status, escrow_id, payment_reservation,
	created_at, updated_at
`

// CreateJob inserts a new job row.
func (s *Storage) CreateJob(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (
			id, employer_id, title, description, tags, price,
			currency, employer_name, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		job.ID,
		job.EmployerID,
		job.Title,
		job.Description,
		job.Tags,
		job.Price,
		job.Currency,
		job.EmployerName,
		job.Status,
		job.CreatedAt,
		job.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// GetJobByID retrieves a job by its id.
func (s *Storage) GetJobByID(ctx context.Context, jobID string) (*domain.Job, error) {
	var job domain.Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	err := s.db.GetContext(ctx, &job, query, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

// ListOpenJobs returns all jobs still open for claiming, newest first.
func (s *Storage) ListOpenJobs(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status = $1 ORDER BY created_at DESC`

	if err := s.db.SelectContext(ctx, &jobs, query, domain.JobStatusOpen); err != nil {
		return nil, fmt.Errorf("failed to list open jobs: %w", err)
	}

	return jobs, nil
}

// ListJobsByEmployer returns all jobs posted by an employer, newest first.
func (s *Storage) ListJobsByEmployer(ctx context.Context, employerID string) ([]domain.Job, error) {
	var jobs []domain.Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE employer_id = $1 ORDER BY created_at DESC`

	if err := s.db.SelectContext(ctx, &jobs, query, employerID); err != nil {
		return nil, fmt.Errorf("failed to list employer jobs: %w", err)
	}

	return jobs, nil
}

// ListJobsByEmployee returns all jobs claimed by an employee, newest first.
func (s *Storage) ListJobsByEmployee(ctx context.Context, employeeID string) ([]domain.Job, error) {
	var jobs []domain.Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE employee_id = $1 ORDER BY created_at DESC`

	if err := s.db.SelectContext(ctx, &jobs, query, employeeID); err != nil {
		return nil, fmt.Errorf("failed to list employee jobs: %w", err)
	}

	return jobs, nil
}

// ClaimJob assigns an employee to an open job. The update is conditioned on
// the job still being open, so exactly one of N concurrent claimants wins;
// the rest see ErrJobNotAvailable.
func (s *Storage) ClaimJob(ctx context.Context, jobID, employeeID string) error {
	query := `
		UPDATE jobs
		SET employee_id = $1,
		    status = $2,
		    updated_at = NOW()
		WHERE id = $3
		  AND status = $4
	`

	result, err := s.db.ExecContext(ctx, query, employeeID, domain.JobStatusInProgress, jobID, domain.JobStatusOpen)
	if err != nil {
		return fmt.Errorf("failed to claim job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		s.logger.Warn("Failed to claim job - already claimed or not found",
			slog.String("job_id", jobID),
			slog.String("employee_id", employeeID),
		)
		return domain.ErrJobNotAvailable
	}

	return nil
}

// TransitionStatus moves a job from one status to another. The update is
// conditioned on the current status; zero affected rows means the job is not
// in the expected state.
func (s *Storage) TransitionStatus(ctx context.Context, jobID, from, to string) error {
	query := `
		UPDATE jobs
		SET status = $1,
		    updated_at = NOW()
		WHERE id = $2
		  AND status = $3
	`

	result, err := s.db.ExecContext(ctx, query, to, jobID, from)
	if err != nil {
		return fmt.Errorf("failed to transition job status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrInvalidTransition
	}

	return nil
}

// CompleteJob flips a submitted job to completed and discards any held
// payment reservation in the same write.
func (s *Storage) CompleteJob(ctx context.Context, jobID string) error {
	query := `
		UPDATE jobs
		SET status = $1,
		    payment_reservation = NULL,
		    updated_at = NOW()
		WHERE id = $2
		  AND status = $3
	`

	result, err := s.db.ExecContext(ctx, query, domain.JobStatusCompleted, jobID, domain.JobStatusSubmitted)
	if err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrInvalidTransition
	}

	return nil
}

// CancelJob moves an in-progress or submitted job to cancelled, discarding
// any held payment reservation.
func (s *Storage) CancelJob(ctx context.Context, jobID string) error {
	query := `
		UPDATE jobs
		SET status = $1,
		    payment_reservation = NULL,
		    updated_at = NOW()
		WHERE id = $2
		  AND status IN ($3, $4)
	`

	result, err := s.db.ExecContext(ctx, query, domain.JobStatusCancelled, jobID, domain.JobStatusInProgress, domain.JobStatusSubmitted)
	if err != nil {
		return fmt.Errorf("failed to cancel job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrInvalidTransition
	}

	return nil
}

// DeleteJob permanently removes a job. Only open jobs can be deleted; the
// guard is part of the delete itself so repeated attempts on a claimed job
// never remove the row.
func (s *Storage) DeleteJob(ctx context.Context, jobID string) error {
	query := `DELETE FROM jobs WHERE id = $1 AND status = $2`

	result, err := s.db.ExecContext(ctx, query, jobID, domain.JobStatusOpen)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrInvalidTransition
	}

	return nil
}

// SetPaymentReservation stores the unsigned payment artifact held for a job.
func (s *Storage) SetPaymentReservation(ctx context.Context, jobID, artifact string) error {
	query := `UPDATE jobs SET payment_reservation = $1, updated_at = NOW() WHERE id = $2`

	if _, err := s.db.ExecContext(ctx, query, artifact, jobID); err != nil {
		return fmt.Errorf("failed to set payment reservation: %w", err)
	}

	return nil
}

// SetEscrowID records the external escrow reference for a job.
func (s *Storage) SetEscrowID(ctx context.Context, jobID, escrowID string) error {
	query := `UPDATE jobs SET escrow_id = $1, updated_at = NOW() WHERE id = $2`

	if _, err := s.db.ExecContext(ctx, query, escrowID, jobID); err != nil {
		return fmt.Errorf("failed to set escrow id: %w", err)
	}

	return nil
}
