package domain

import "errors"

var (
	// ErrJobNotFound is returned when a job cannot be found in the database
	ErrJobNotFound = errors.New("job not found")

	// ErrJobNotAvailable is returned when a claim loses the race for an open job
	ErrJobNotAvailable = errors.New("job not available")

	// ErrInvalidTransition is returned when a job is not in the state an
	// operation requires (submit a non-in-progress job, delete a claimed job, ...)
	ErrInvalidTransition = errors.New("job is not in a valid state for this operation")

	// ErrUnauthorized is returned when the actor does not own the resource
	ErrUnauthorized = errors.New("not authorized for this job")

	// ErrWalletNotFound is returned when a user has no registered wallet
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrAlreadyReviewed is returned when a reviewer already reviewed a job
	ErrAlreadyReviewed = errors.New("job already reviewed by this user")
)

// ValidationError reports malformed or missing input. It is surfaced as a
// client error and never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new validation error
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// PaymentGenerationError signals that building the payment artifact failed
// after the job status was already flipped to completed. The status change is
// authoritative and is not rolled back; callers retry payment out-of-band.
type PaymentGenerationError struct {
	Err error
}

func (e *PaymentGenerationError) Error() string {
	return "payment generation failed: " + e.Err.Error()
}

func (e *PaymentGenerationError) Unwrap() error {
	return e.Err
}

// SettlementError wraps a failure from the settlement network when submitting
// a signed artifact.
type SettlementError struct {
	Err error
}

func (e *SettlementError) Error() string {
	return "settlement failed: " + e.Err.Error()
}

func (e *SettlementError) Unwrap() error {
	return e.Err
}
