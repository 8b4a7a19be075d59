package domain

import "time"

// Review is the local record of an issued review artifact. The authoritative
// review ledger lives in the on-chain reviews contract; this row exists so the
// engine can refuse a second artifact for the same (job, reviewer) pair.
type Review struct {
	ID         string    `db:"id" json:"id"`
	JobID      string    `db:"job_id" json:"job_id"`
	ReviewerID string    `db:"reviewer_id" json:"reviewer_id"`
	RevieweeID string    `db:"reviewee_id" json:"reviewee_id"`
	Rating     int       `db:"rating" json:"rating"`
	Comment    string    `db:"comment" json:"comment"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
