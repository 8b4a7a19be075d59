package storage

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stellargigs/stellargigs-be/internal/api/domain"
)

// CreateTip records an issued tip artifact locally.
func (s *Storage) CreateTip(ctx context.Context, tip *domain.Tip) error {
	query := `
		INSERT INTO tips (id, job_id, from_address, to_address, amount, token, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(ctx, query,
		tip.ID, tip.JobID, tip.FromAddress, tip.ToAddress,
		tip.Amount, tip.Token, tip.Message, tip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create tip: %w", err)
	}

	return nil
}

// ListTipsByRecipient returns the tips sent to an address, newest first.
func (s *Storage) ListTipsByRecipient(ctx context.Context, address string) ([]domain.Tip, error) {
	var tips []domain.Tip
	query := `
		SELECT id, job_id, from_address, to_address, amount, token, message, created_at
		FROM tips
		WHERE to_address = $1
		ORDER BY created_at DESC
	`

	if err := s.db.SelectContext(ctx, &tips, query, address); err != nil {
		return nil, fmt.Errorf("failed to list tips: %w", err)
	}

	return tips, nil
}

// TotalTipsReceived sums the tips sent to an address.
func (s *Storage) TotalTipsReceived(ctx context.Context, address string) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM tips WHERE to_address = $1`

	if err := s.db.GetContext(ctx, &total, query, address); err != nil {
		return decimal.Zero, fmt.Errorf("failed to total tips: %w", err)
	}

	return total, nil
}
