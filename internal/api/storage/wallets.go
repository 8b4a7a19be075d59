package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stellargigs/stellargigs-be/internal/api/domain"
)

// CreateWallet inserts a new wallet row for a user.
func (s *Storage) CreateWallet(ctx context.Context, wallet *domain.Wallet) error {
	query := `
		INSERT INTO wallets (id, user_id, address, label, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query, wallet.ID, wallet.UserID, wallet.Address, wallet.Label, wallet.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}

	return nil
}

// ListWalletsByUser returns all wallets registered by a user, oldest first.
func (s *Storage) ListWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error) {
	var wallets []domain.Wallet
	query := `
		SELECT id, user_id, address, label, created_at
		FROM wallets
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	if err := s.db.SelectContext(ctx, &wallets, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}

	return wallets, nil
}

// FirstWalletByUser returns the user's oldest wallet, or ErrWalletNotFound
// when the user has none registered.
func (s *Storage) FirstWalletByUser(ctx context.Context, userID string) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `
		SELECT id, user_id, address, label, created_at
		FROM wallets
		WHERE user_id = $1
		ORDER BY created_at ASC
		LIMIT 1
	`

	err := s.db.GetContext(ctx, &wallet, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	return &wallet, nil
}

// DeleteWallet removes a wallet owned by the given user.
func (s *Storage) DeleteWallet(ctx context.Context, walletID, userID string) error {
	query := `DELETE FROM wallets WHERE id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, query, walletID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrWalletNotFound
	}

	return nil
}
