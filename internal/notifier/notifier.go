package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/stellargigs/stellargigs-be/internal/api/domain"
	"github.com/stellargigs/stellargigs-be/shared/rabbitmq"
)

// Config holds notifier configuration
type Config struct {
	Logger       *slog.Logger
	Storage      *Storage
	RabbitClient *rabbitmq.Client
	Concurrency  int
}

// Notifier consumes notification events and marks the corresponding rows
// delivered. Delivery channels (email, push) hang off this point; for now
// marking the row is the delivery.
type Notifier struct {
	logger       *slog.Logger
	storage      *Storage
	rabbitClient *rabbitmq.Client
	concurrency  int
	consumerID   string

	jobsChan chan amqp.Delivery
	wg       sync.WaitGroup
	stopChan chan struct{}
}

// New creates a new Notifier instance
func New(cfg *Config) *Notifier {
	return &Notifier{
		logger:       cfg.Logger,
		storage:      cfg.Storage,
		rabbitClient: cfg.RabbitClient,
		concurrency:  cfg.Concurrency,
		consumerID:   fmt.Sprintf("notifier-%s", uuid.New().String()[:8]),
		jobsChan:     make(chan amqp.Delivery),
		stopChan:     make(chan struct{}),
	}
}

// Start begins consuming notification events until the context is canceled.
func (n *Notifier) Start(ctx context.Context) error {
	n.logger.Info("Starting notifier",
		slog.Int("concurrency", n.concurrency),
		slog.String("consumer_id", n.consumerID),
	)

	deliveries, err := n.rabbitClient.Consume(n.consumerID)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	n.spawnWorkerPool(ctx)
	n.dispatch(ctx, deliveries)

	return nil
}

// Stop gracefully stops the notifier
func (n *Notifier) Stop() {
	n.logger.Info("Stopping notifier...")
	close(n.stopChan)
	n.wg.Wait()
	n.logger.Info("Notifier stopped")
}

// dispatch feeds deliveries into the worker pool
func (n *Notifier) dispatch(ctx context.Context, deliveries <-chan amqp.Delivery) {
	n.logger.Info("Event dispatcher started",
		slog.String("consumer_id", n.consumerID),
	)

	for {
		select {
		case <-ctx.Done():
			n.logger.Info("Event dispatcher stopped - context canceled")
			return

		case delivery, ok := <-deliveries:
			if !ok {
				n.logger.Warn("RabbitMQ delivery channel closed")
				return
			}

			select {
			case n.jobsChan <- delivery:
			case <-ctx.Done():
				n.logger.Info("Event dispatcher stopped while dispatching")
				if nackErr := delivery.Nack(false, true); nackErr != nil {
					n.logger.Error("Failed to NACK message on shutdown",
						slog.String("error", nackErr.Error()),
					)
				}
				return
			}
		}
	}
}

// spawnWorkerPool spawns N worker goroutines based on concurrency configuration
func (n *Notifier) spawnWorkerPool(ctx context.Context) {
	for i := 0; i < n.concurrency; i++ {
		n.wg.Add(1)
		go n.workerLoop(ctx, i)
	}

	n.logger.Info("Worker pool spawned",
		slog.Int("worker_count", n.concurrency),
	)
}

// workerLoop is the main processing loop for each worker goroutine
func (n *Notifier) workerLoop(ctx context.Context, workerNum int) {
	defer n.wg.Done()

	workerName := fmt.Sprintf("%s-%d", n.consumerID, workerNum)

	for {
		select {
		case <-n.stopChan:
			n.logger.Info("Worker goroutine stopping - stopChan closed",
				slog.String("worker_name", workerName),
			)
			return

		case <-ctx.Done():
			n.logger.Info("Worker goroutine stopping - context canceled",
				slog.String("worker_name", workerName),
			)
			return

		case delivery, ok := <-n.jobsChan:
			if !ok {
				return
			}

			requeue, err := n.processDelivery(ctx, delivery)
			if err != nil {
				n.logger.Error("Failed to process notification event",
					slog.String("worker_name", workerName),
					slog.String("error", err.Error()),
				)
				if nackErr := delivery.Nack(false, requeue); nackErr != nil {
					n.logger.Error("Failed to NACK message",
						slog.String("worker_name", workerName),
						slog.String("error", nackErr.Error()),
					)
				}
				continue
			}

			if ackErr := delivery.Ack(false); ackErr != nil {
				n.logger.Error("Failed to ACK message",
					slog.String("worker_name", workerName),
					slog.String("error", ackErr.Error()),
				)
			}
		}
	}
}

// processDelivery handles one notification event. The bool return says
// whether a failed delivery should be requeued: malformed payloads are
// dropped, database errors are retried.
func (n *Notifier) processDelivery(ctx context.Context, delivery amqp.Delivery) (bool, error) {
	var event domain.NotificationEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		return false, fmt.Errorf("malformed event payload: %w", err)
	}

	if _, err := uuid.Parse(event.NotificationID); err != nil {
		return false, fmt.Errorf("invalid notification_id %q: %w", event.NotificationID, err)
	}

	notification, err := n.storage.GetNotification(ctx, event.NotificationID)
	if err != nil {
		return true, fmt.Errorf("failed to load notification: %w", err)
	}

	if notification.DeliveredAt != nil {
		n.logger.Debug("Notification already delivered, skipping",
			slog.String("notification_id", notification.ID),
		)
		return false, nil
	}

	if err := n.storage.MarkDelivered(ctx, notification.ID); err != nil {
		return true, fmt.Errorf("failed to mark notification delivered: %w", err)
	}

	n.logger.Info("Notification delivered",
		slog.String("notification_id", notification.ID),
		slog.String("user_id", notification.UserID),
		slog.String("type", notification.Type),
	)

	return false, nil
}
