package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stellargigs/stellargigs-be/internal/api/domain"
)

// Effect statuses. Side effects run after the authoritative state change has
// committed; a failing effect is recorded and logged but never reverts the
// transition.
const (
	EffectOK      = "ok"
	EffectSkipped = "skipped"
	EffectFailed  = "failed"
)

// EffectResult reports the outcome of one post-commit side effect.
type EffectResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type effect struct {
	name string
	run  func(ctx context.Context) (string, error)
}

// runEffects executes a pipeline of independent, individually-failable side
// effects and captures each outcome.
func (s *Service) runEffects(ctx context.Context, effects []effect) []EffectResult {
	results := make([]EffectResult, 0, len(effects))

	for _, e := range effects {
		status, err := e.run(ctx)
		if err != nil {
			s.logger.Warn("Side effect failed",
				slog.String("effect", e.name),
				slog.String("error", err.Error()),
			)
			results = append(results, EffectResult{Name: e.name, Status: EffectFailed, Error: err.Error()})
			continue
		}

		results = append(results, EffectResult{Name: e.name, Status: status})
	}

	return results
}

// notify creates a notification row and publishes a delivery event. The event
// publish is best-effort; the row is authoritative.
func (s *Service) notify(ctx context.Context, userID, message, notificationType string) error {
	n := &domain.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		Type:      notificationType,
		CreatedAt: time.Now(),
	}

	if err := s.notifications.CreateNotification(ctx, n); err != nil {
		return err
	}

	if s.events != nil {
		body, err := json.Marshal(domain.NotificationEvent{
			NotificationID: n.ID,
			UserID:         n.UserID,
			Type:           n.Type,
		})
		if err == nil {
			if err := s.events.Publish(ctx, body, "application/json"); err != nil {
				s.logger.Warn("Failed to publish notification event",
					slog.String("notification_id", n.ID),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	return nil
}
