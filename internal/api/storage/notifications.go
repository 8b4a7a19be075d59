package storage

import (
	"context"
	"fmt"

	"github.com/stellargigs/stellargigs-be/internal/api/domain"
)

// CreateNotification inserts a notification row.
func (s *Storage) CreateNotification(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, message, type, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query, n.ID, n.UserID, n.Message, n.Type, n.Read, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// ListNotificationsByUser returns a user's notifications, newest first.
func (s *Storage) ListNotificationsByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	var notifications []domain.Notification
	query := `
		SELECT id, user_id, message, type, read, delivered_at, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	if err := s.db.SelectContext(ctx, &notifications, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, nil
}

// MarkNotificationsRead bulk-marks all of a user's notifications as read and
// returns how many rows changed.
func (s *Storage) MarkNotificationsRead(ctx context.Context, userID string) (int64, error) {
	query := `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`

	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}
