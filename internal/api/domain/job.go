package domain

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Job status constants. A job moves one way through
// open -> in_progress -> submitted -> completed; cancelled is reachable
// from in_progress or submitted, and open jobs can be hard-deleted.
const (
	JobStatusOpen       = "open"
	JobStatusInProgress = "in_progress"
	JobStatusSubmitted  = "submitted"
	JobStatusCompleted  = "completed"
	JobStatusCancelled  = "cancelled"
)

// Job represents a posted unit of work tracked through its lifecycle.
// EmployeeID is set exactly once, at claim time. EscrowID and
// PaymentReservation are best-effort side effects of the claim and must be
// treated as optional by every reader.
type Job struct {
	ID                 string          `db:"id" json:"id"`
	EmployerID         string          `db:"employer_id" json:"employer_id"`
	EmployeeID         *string         `db:"employee_id" json:"employee_id,omitempty"`
	Title              string          `db:"title" json:"title"`
	Description        string          `db:"description" json:"description"`
	Tags               pq.StringArray  `db:"tags" json:"tags"`
	Price              decimal.Decimal `db:"price" json:"price"`
	Currency           string          `db:"currency" json:"currency"`
	EmployerName       string          `db:"employer_name" json:"employer_name,omitempty"`
	Status             string          `db:"status" json:"status"`
	EscrowID           *string         `db:"escrow_id" json:"escrow_id,omitempty"`
	PaymentReservation *string         `db:"payment_reservation" json:"-"`
	CreatedAt          time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updated_at"`
}
