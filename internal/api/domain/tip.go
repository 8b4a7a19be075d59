package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tip is the local record of an issued tip artifact. Like reviews, the
// settlement itself happens on-chain after the sender signs; the row lets the
// API answer received/total queries without a chain read.
type Tip struct {
	ID          string          `db:"id" json:"id"`
	JobID       *string         `db:"job_id" json:"job_id,omitempty"`
	FromAddress string          `db:"from_address" json:"from_address"`
	ToAddress   string          `db:"to_address" json:"to_address"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Token       string          `db:"token" json:"token"`
	Message     string          `db:"message" json:"message,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
