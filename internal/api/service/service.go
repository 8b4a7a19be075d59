package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stellargigs/stellargigs-be/internal/api/domain"
	"github.com/stellargigs/stellargigs-be/internal/escrow"
	"github.com/stellargigs/stellargigs-be/internal/stellar"
)

// JobStore is the persistence contract for jobs. Status-changing writes are
// conditioned on the previous status so concurrent transitions cannot race.
type JobStore interface {
	CreateJob(ctx context.Context, job *domain.Job) error
	GetJobByID(ctx context.Context, jobID string) (*domain.Job, error)
	ListOpenJobs(ctx context.Context) ([]domain.Job, error)
	ListJobsByEmployer(ctx context.Context, employerID string) ([]domain.Job, error)
	ListJobsByEmployee(ctx context.Context, employeeID string) ([]domain.Job, error)
	ClaimJob(ctx context.Context, jobID, employeeID string) error
	TransitionStatus(ctx context.Context, jobID, from, to string) error
	CompleteJob(ctx context.Context, jobID string) error
	CancelJob(ctx context.Context, jobID string) error
	DeleteJob(ctx context.Context, jobID string) error
	SetPaymentReservation(ctx context.Context, jobID, artifact string) error
	SetEscrowID(ctx context.Context, jobID, escrowID string) error
}

// WalletStore is the persistence contract for wallets.
type WalletStore interface {
	CreateWallet(ctx context.Context, wallet *domain.Wallet) error
	ListWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error)
	FirstWalletByUser(ctx context.Context, userID string) (*domain.Wallet, error)
	DeleteWallet(ctx context.Context, walletID, userID string) error
}

// ConversationStore is the persistence contract for conversations/messages.
type ConversationStore interface {
	FindConversationByPair(ctx context.Context, userA, userB string) (*domain.Conversation, error)
	CreateConversation(ctx context.Context, conv *domain.Conversation) error
	CreateMessage(ctx context.Context, msg *domain.Message) error
}

// NotificationStore is the persistence contract for notifications.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n *domain.Notification) error
	ListNotificationsByUser(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkNotificationsRead(ctx context.Context, userID string) (int64, error)
}

// ReviewStore is the persistence contract for the local review log.
type ReviewStore interface {
	HasReview(ctx context.Context, jobID, reviewerID string) (bool, error)
	CreateReview(ctx context.Context, review *domain.Review) error
	ListReviewsByReviewee(ctx context.Context, userID string) ([]domain.Review, error)
	RatingSummary(ctx context.Context, userID string) (float64, int64, error)
}

// TipStore is the persistence contract for the local tip log.
type TipStore interface {
	CreateTip(ctx context.Context, tip *domain.Tip) error
	ListTipsByRecipient(ctx context.Context, address string) ([]domain.Tip, error)
	TotalTipsReceived(ctx context.Context, address string) (decimal.Decimal, error)
}

// ChainGateway is the boundary with the settlement network: it builds
// unsigned artifacts and forwards signed ones. Signing itself happens in the
// client-held wallet, outside this system.
type ChainGateway interface {
	BuildJobPayment(ctx context.Context, jobID, from, to string, amount decimal.Decimal) (*stellar.Payment, error)
	BuildTip(ctx context.Context, from, to string, amount decimal.Decimal, token, memo string) (*stellar.Payment, error)
	SubmitTransaction(ctx context.Context, signedXDR string) (*stellar.SubmitResult, error)
	AccountBalance(ctx context.Context, address string) (*stellar.AccountBalance, error)
	Network() string
}

// EscrowService creates escrow records with the external escrow provider.
type EscrowService interface {
	CreateEscrow(ctx context.Context, req escrow.CreateEscrowRequest) (*escrow.Escrow, error)
}

// EventPublisher publishes notification events for asynchronous delivery.
type EventPublisher interface {
	Publish(ctx context.Context, body []byte, contentType string) error
}

// Config holds everything the service needs
type Config struct {
	Logger        *slog.Logger
	Jobs          JobStore
	Wallets       WalletStore
	Conversations ConversationStore
	Notifications NotificationStore
	Reviews       ReviewStore
	Tips          TipStore
	Chain         ChainGateway
	Escrow        EscrowService  // optional; claim skips escrow when nil
	Events        EventPublisher // optional; notifications stay DB-only when nil

	EscrowDeadline        time.Duration
	EscrowToken           string
	EscrowDisputeResolver string
	ReviewsContractID     string
}

// Service implements the job lifecycle and settlement flows over injected
// stores and gateways.
type Service struct {
	logger        *slog.Logger
	jobs          JobStore
	wallets       WalletStore
	conversations ConversationStore
	notifications NotificationStore
	reviews       ReviewStore
	tips          TipStore
	chain         ChainGateway
	escrow        EscrowService
	events        EventPublisher

	escrowDeadline        time.Duration
	escrowToken           string
	escrowDisputeResolver string
	reviewsContractID     string
}

// New creates a new Service instance
func New(cfg *Config) *Service {
	escrowDeadline := cfg.EscrowDeadline
	if escrowDeadline <= 0 {
		escrowDeadline = 30 * 24 * time.Hour
	}

	return &Service{
		logger:                cfg.Logger,
		jobs:                  cfg.Jobs,
		wallets:               cfg.Wallets,
		conversations:         cfg.Conversations,
		notifications:         cfg.Notifications,
		reviews:               cfg.Reviews,
		tips:                  cfg.Tips,
		chain:                 cfg.Chain,
		escrow:                cfg.Escrow,
		events:                cfg.Events,
		escrowDeadline:        escrowDeadline,
		escrowToken:           cfg.EscrowToken,
		escrowDisputeResolver: cfg.EscrowDisputeResolver,
		reviewsContractID:     cfg.ReviewsContractID,
	}
}
