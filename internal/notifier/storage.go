package notifier

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/stellargigs/stellargigs-be/internal/api/domain"
)

// ErrNotificationNotFound is returned when a notification row does not exist.
var ErrNotificationNotFound = errors.New("notification not found")

// Storage is the notifier's read/update access to notification rows.
type Storage struct {
	db *sqlx.DB
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// GetNotification fetches a notification by id.
func (s *Storage) GetNotification(ctx context.Context, id string) (*domain.Notification, error) {
	var n domain.Notification
	query := `
		SELECT id, user_id, message, type, read, delivered_at, created_at
		FROM notifications
		WHERE id = $1
	`

	if err := s.db.GetContext(ctx, &n, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return &n, nil
}

// MarkDelivered stamps a notification's delivery time.
func (s *Storage) MarkDelivered(ctx context.Context, id string) error {
	query := `UPDATE notifications SET delivered_at = NOW() WHERE id = $1 AND delivered_at IS NULL`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to mark notification delivered: %w", err)
	}

	return nil
}
