package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/stellargigs/stellargigs-be/internal/api/domain"
	"github.com/stellargigs/stellargigs-be/internal/escrow"
	"github.com/stellargigs/stellargigs-be/internal/stellar"
)

// PostJobInput carries the fields needed to post a new job.
type PostJobInput struct {
	EmployerID   string
	Title        string
	Description  string
	Tags         []string
	Price        string
	Currency     string
	EmployerName string
}

// PostJob validates the input and creates a new open job.
func (s *Service) PostJob(ctx context.Context, in PostJobInput) (*domain.Job, error) {
	if in.EmployerID == "" || in.Title == "" || in.Description == "" || in.Currency == "" {
		return nil, domain.NewValidationError("employer_id, title, description, price and currency are required")
	}

	price, err := decimal.NewFromString(in.Price)
	if err != nil {
		return nil, domain.NewValidationError("price must be a number")
	}
	if !price.IsPositive() {
		return nil, domain.NewValidationError("price must be positive")
	}

	now := time.Now()
	job := &domain.Job{
		ID:           uuid.New().String(),
		EmployerID:   in.EmployerID,
		Title:        in.Title,
		Description:  in.Description,
		Tags:         pq.StringArray(in.Tags),
		Price:        price,
		Currency:     in.Currency,
		EmployerName: in.EmployerName,
		Status:       domain.JobStatusOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.jobs.CreateJob(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info("Job posted",
		slog.String("job_id", job.ID),
		slog.String("employer_id", job.EmployerID),
		slog.String("price", job.Price.String()),
	)

	return job, nil
}

// ClaimJob assigns the job to an employee. The status write commits first;
// payment reservation, escrow creation, employer notification and
// conversation seeding then run as independent best-effort effects whose
// outcomes are returned alongside the job.
func (s *Service) ClaimJob(ctx context.Context, jobID, employeeID string) (*domain.Job, []EffectResult, error) {
	if employeeID == "" {
		return nil, nil, domain.NewValidationError("employee_id is required")
	}

	job, err := s.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.jobs.ClaimJob(ctx, jobID, employeeID); err != nil {
		return nil, nil, err
	}

	job.EmployeeID = &employeeID
	job.Status = domain.JobStatusInProgress

	// Wallets are resolved once, best-effort; every settlement-related effect
	// skips itself when either party has no wallet on file.
	employerWallet := s.walletOrNil(ctx, job.EmployerID)
	employeeWallet := s.walletOrNil(ctx, employeeID)

	results := s.runEffects(ctx, []effect{
		{name: "payment_reservation", run: func(ctx context.Context) (string, error) {
			if employerWallet == nil || employeeWallet == nil {
				return EffectSkipped, nil
			}
			payment, err := s.chain.BuildJobPayment(ctx, job.ID, employerWallet.Address, employeeWallet.Address, job.Price)
			if err != nil {
				return EffectFailed, err
			}
			if err := s.jobs.SetPaymentReservation(ctx, job.ID, payment.XDR); err != nil {
				return EffectFailed, err
			}
			xdr := payment.XDR
			job.PaymentReservation = &xdr
			return EffectOK, nil
		}},
		{name: "escrow", run: func(ctx context.Context) (string, error) {
			if s.escrow == nil || employerWallet == nil || employeeWallet == nil {
				return EffectSkipped, nil
			}
			created, err := s.escrow.CreateEscrow(ctx, escrow.CreateEscrowRequest{
				ServiceProvider: employeeWallet.Address,
				Approver:        employerWallet.Address,
				Receiver:        employeeWallet.Address,
				DisputeResolver: s.escrowDisputeResolver,
				Deadline:        time.Now().Add(s.escrowDeadline).Unix(),
				Amount:          strconv.FormatInt(stellar.ToStroops(job.Price), 10),
				Token:           s.escrowToken,
			})
			if err != nil {
				return EffectFailed, err
			}
			if err := s.jobs.SetEscrowID(ctx, job.ID, created.EscrowID); err != nil {
				return EffectFailed, err
			}
			escrowID := created.EscrowID
			job.EscrowID = &escrowID
			return EffectOK, nil
		}},
		{name: "notify_employer", run: func(ctx context.Context) (string, error) {
			msg := fmt.Sprintf("Your job %q has been claimed.", job.Title)
			if err := s.notify(ctx, job.EmployerID, msg, domain.NotificationJobClaimed); err != nil {
				return EffectFailed, err
			}
			return EffectOK, nil
		}},
		{name: "seed_conversation", run: func(ctx context.Context) (string, error) {
			return s.seedConversation(ctx, job, employeeID)
		}},
	})

	s.logger.Info("Job claimed",
		slog.String("job_id", job.ID),
		slog.String("employee_id", employeeID),
	)

	return job, results, nil
}

// seedConversation creates the conversation between employer and employee
// with an introductory message from the claimant, unless one already exists.
func (s *Service) seedConversation(ctx context.Context, job *domain.Job, employeeID string) (string, error) {
	existing, err := s.conversations.FindConversationByPair(ctx, job.EmployerID, employeeID)
	if err != nil {
		return EffectFailed, err
	}
	if existing != nil {
		return EffectSkipped, nil
	}

	now := time.Now()
	conv := &domain.Conversation{
		ID:        uuid.New().String(),
		UserA:     job.EmployerID,
		UserB:     employeeID,
		CreatedAt: now,
	}
	if err := s.conversations.CreateConversation(ctx, conv); err != nil {
		return EffectFailed, err
	}

	msg := &domain.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		SenderID:       employeeID,
		Body:           fmt.Sprintf("Hi! I just claimed your job %q. Let's discuss the details.", job.Title),
		CreatedAt:      now,
	}
	if err := s.conversations.CreateMessage(ctx, msg); err != nil {
		return EffectFailed, err
	}

	return EffectOK, nil
}

// SubmitWork moves an in-progress job to submitted.
func (s *Service) SubmitWork(ctx context.Context, jobID string) error {
	err := s.jobs.TransitionStatus(ctx, jobID, domain.JobStatusInProgress, domain.JobStatusSubmitted)
	if err == nil {
		s.logger.Info("Work submitted", slog.String("job_id", jobID))
		return nil
	}

	if errors.Is(err, domain.ErrInvalidTransition) {
		// Distinguish a missing job from one in the wrong state.
		if _, getErr := s.jobs.GetJobByID(ctx, jobID); getErr != nil {
			return getErr
		}
	}

	return err
}

// Approval is the outcome of approving submitted work. Payment is nil when
// settlement was skipped because a wallet is missing.
type Approval struct {
	Job     *domain.Job
	Payment *stellar.Payment
	Message string
}

// ApproveJob approves submitted work and completes the job. When both
// parties have wallets it returns the unsigned payment artifact for external
// signing, reusing the reservation held since claim when one exists. If
// artifact generation fails after the job was flipped to completed, the
// completion stands and a PaymentGenerationError is surfaced so the caller
// can retry payment out-of-band.
func (s *Service) ApproveJob(ctx context.Context, jobID string) (*Approval, error) {
	job, err := s.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.Status != domain.JobStatusSubmitted {
		return nil, domain.ErrInvalidTransition
	}
	if job.EmployeeID == nil {
		return nil, domain.NewValidationError("job has no employee")
	}
	employeeID := *job.EmployeeID

	employerWallet := s.walletOrNil(ctx, job.EmployerID)
	employeeWallet := s.walletOrNil(ctx, employeeID)

	if employerWallet == nil || employeeWallet == nil {
		if err := s.jobs.CompleteJob(ctx, jobID); err != nil {
			return nil, err
		}
		job.Status = domain.JobStatusCompleted
		job.PaymentReservation = nil

		s.logger.Warn("Job approved without payment - wallet missing",
			slog.String("job_id", jobID),
			slog.Bool("employer_wallet", employerWallet != nil),
			slog.Bool("employee_wallet", employeeWallet != nil),
		)

		if err := s.notify(ctx, employeeID, fmt.Sprintf("Your work on %q was approved.", job.Title), domain.NotificationJobApproved); err != nil {
			s.logger.Warn("Failed to notify employee", slog.String("error", err.Error()))
		}

		return &Approval{
			Job:     job,
			Message: "Job approved. Payment skipped because a wallet is missing.",
		}, nil
	}

	// The completion is the authoritative transition; nothing after this
	// point rolls it back.
	if err := s.jobs.CompleteJob(ctx, jobID); err != nil {
		return nil, err
	}

	var payment *stellar.Payment
	if job.PaymentReservation != nil {
		if xdr, ok := domain.DecodeReservation(*job.PaymentReservation); ok {
			payment = &stellar.Payment{
				XDR:     xdr,
				From:    employerWallet.Address,
				To:      employeeWallet.Address,
				Amount:  job.Price,
				Network: s.chain.Network(),
			}
		}
	}

	if payment == nil {
		built, err := s.chain.BuildJobPayment(ctx, job.ID, employerWallet.Address, employeeWallet.Address, job.Price)
		if err != nil {
			s.logger.Error("Payment artifact generation failed after completion",
				slog.String("job_id", jobID),
				slog.String("error", err.Error()),
			)
			return nil, &domain.PaymentGenerationError{Err: err}
		}
		payment = built
	}

	job.Status = domain.JobStatusCompleted
	job.PaymentReservation = nil

	if err := s.notify(ctx, employeeID, fmt.Sprintf("Your work on %q was approved. Payment is on its way.", job.Title), domain.NotificationJobApproved); err != nil {
		s.logger.Warn("Failed to notify employee", slog.String("error", err.Error()))
	}

	return &Approval{
		Job:     job,
		Payment: payment,
		Message: "Job approved. Payment ready for signing.",
	}, nil
}

// WithdrawJob cancels an in-progress or submitted job at the employer's
// request, discarding any held payment reservation.
func (s *Service) WithdrawJob(ctx context.Context, jobID, employerID string) (*domain.Job, error) {
	if employerID == "" {
		return nil, domain.NewValidationError("employer_id is required")
	}

	job, err := s.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.EmployerID != employerID {
		return nil, domain.ErrUnauthorized
	}

	if err := s.jobs.CancelJob(ctx, jobID); err != nil {
		return nil, err
	}

	job.Status = domain.JobStatusCancelled
	job.PaymentReservation = nil

	if job.EmployeeID != nil {
		msg := fmt.Sprintf("The job %q was withdrawn by the employer.", job.Title)
		if err := s.notify(ctx, *job.EmployeeID, msg, domain.NotificationJobWithdrawn); err != nil {
			s.logger.Warn("Failed to notify employee", slog.String("error", err.Error()))
		}
	}

	s.logger.Info("Job withdrawn",
		slog.String("job_id", jobID),
		slog.String("employer_id", employerID),
	)

	return job, nil
}

// DeleteJob permanently removes an unclaimed job owned by the requester.
func (s *Service) DeleteJob(ctx context.Context, jobID, employerID string) error {
	if employerID == "" {
		return domain.NewValidationError("employer_id is required")
	}

	job, err := s.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		return err
	}

	// Ownership failures read as not-found so a stranger cannot probe
	// another employer's jobs.
	if job.EmployerID != employerID {
		return domain.ErrJobNotFound
	}

	if err := s.jobs.DeleteJob(ctx, jobID); err != nil {
		return err
	}

	s.logger.Info("Job deleted", slog.String("job_id", jobID))
	return nil
}

// SubmitSignedArtifact forwards a signed artifact to the settlement network.
// It does not consult job state: signing happens out-of-band and the caller
// may submit at any time.
func (s *Service) SubmitSignedArtifact(ctx context.Context, signedXDR string) (*stellar.SubmitResult, error) {
	if signedXDR == "" {
		return nil, domain.NewValidationError("signed_xdr is required")
	}

	result, err := s.chain.SubmitTransaction(ctx, signedXDR)
	if err != nil {
		return nil, &domain.SettlementError{Err: err}
	}

	return result, nil
}

// Job returns a single job by id.
func (s *Service) Job(ctx context.Context, jobID string) (*domain.Job, error) {
	return s.jobs.GetJobByID(ctx, jobID)
}

// OpenJobs returns all claimable jobs.
func (s *Service) OpenJobs(ctx context.Context) ([]domain.Job, error) {
	return s.jobs.ListOpenJobs(ctx)
}

// EmployerJobs returns the jobs posted by an employer.
func (s *Service) EmployerJobs(ctx context.Context, employerID string) ([]domain.Job, error) {
	return s.jobs.ListJobsByEmployer(ctx, employerID)
}

// EmployeeJobs returns the jobs claimed by an employee.
func (s *Service) EmployeeJobs(ctx context.Context, employeeID string) ([]domain.Job, error) {
	return s.jobs.ListJobsByEmployee(ctx, employeeID)
}
