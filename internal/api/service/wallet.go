package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stellargigs/stellargigs-be/internal/api/domain"
	"github.com/stellargigs/stellargigs-be/internal/stellar"
)

const stellarAddressLength = 56

// AddWallet registers an address for a user.
func (s *Service) AddWallet(ctx context.Context, userID, address, label string) (*domain.Wallet, error) {
	if userID == "" {
		return nil, domain.NewValidationError("user_id is required")
	}

	address = strings.TrimSpace(address)
	if len(address) != stellarAddressLength || !strings.HasPrefix(address, "G") {
		return nil, domain.NewValidationError("address must be a 56-character public key starting with G")
	}

	wallet := &domain.Wallet{
		ID:        uuid.New().String(),
		UserID:    userID,
		Address:   address,
		Label:     label,
		CreatedAt: time.Now(),
	}

	if err := s.wallets.CreateWallet(ctx, wallet); err != nil {
		return nil, err
	}

	s.logger.Info("Wallet registered",
		slog.String("user_id", userID),
		slog.String("wallet_id", wallet.ID),
	)

	return wallet, nil
}

// UserWallets returns a user's registered wallets, oldest first.
func (s *Service) UserWallets(ctx context.Context, userID string) ([]domain.Wallet, error) {
	return s.wallets.ListWalletsByUser(ctx, userID)
}

// RemoveWallet deletes a wallet owned by the user.
func (s *Service) RemoveWallet(ctx context.Context, walletID, userID string) error {
	if err := s.wallets.DeleteWallet(ctx, walletID, userID); err != nil {
		return err
	}

	s.logger.Info("Wallet removed",
		slog.String("user_id", userID),
		slog.String("wallet_id", walletID),
	)

	return nil
}

// WalletBalance looks up the on-network balance of an address.
func (s *Service) WalletBalance(ctx context.Context, address string) (*stellar.AccountBalance, error) {
	if address == "" {
		return nil, domain.NewValidationError("address is required")
	}

	return s.chain.AccountBalance(ctx, address)
}

// walletOrNil picks a user's settlement address: the wallet registered
// first. Returns nil when the user has no wallet.
func (s *Service) walletOrNil(ctx context.Context, userID string) *domain.Wallet {
	wallet, err := s.wallets.FirstWalletByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrWalletNotFound) {
			s.logger.Warn("Wallet lookup failed",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
		return nil
	}

	return wallet
}

// UserNotifications returns a user's notifications, newest first.
func (s *Service) UserNotifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.notifications.ListNotificationsByUser(ctx, userID)
}

// MarkNotificationsRead marks all of a user's notifications read and returns
// how many changed.
func (s *Service) MarkNotificationsRead(ctx context.Context, userID string) (int64, error) {
	return s.notifications.MarkNotificationsRead(ctx, userID)
}
