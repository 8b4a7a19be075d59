package domain

import "time"

// Wallet is a user-registered address on the settlement network. A user may
// have any number of wallets; lifecycle operations only ever read them.
type Wallet struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Address   string    `db:"address" json:"address"`
	Label     string    `db:"label" json:"label"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
