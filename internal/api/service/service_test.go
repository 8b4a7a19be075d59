package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stellargigs/stellargigs-be/internal/api/domain"
	"github.com/stellargigs/stellargigs-be/internal/escrow"
	"github.com/stellargigs/stellargigs-be/internal/stellar"
)

// In-memory fakes mirroring the conditional-update semantics of the real
// storage layer.

type fakeJobStore struct {
	jobs map[string]*domain.Job
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[string]*domain.Job)}
}

func (f *fakeJobStore) CreateJob(_ context.Context, job *domain.Job) error {
	copied := *job
	f.jobs[job.ID] = &copied
	return nil
}

func (f *fakeJobStore) GetJobByID(_ context.Context, jobID string) (*domain.Job, error) {
	job, ok := f.jobs[jobID]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (f *fakeJobStore) ListOpenJobs(_ context.Context) ([]domain.Job, error) {
	var out []domain.Job
	for _, job := range f.jobs {
		if job.Status == domain.JobStatusOpen {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (f *fakeJobStore) ListJobsByEmployer(_ context.Context, employerID string) ([]domain.Job, error) {
	var out []domain.Job
	for _, job := range f.jobs {
		if job.EmployerID == employerID {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (f *fakeJobStore) ListJobsByEmployee(_ context.Context, employeeID string) ([]domain.Job, error) {
	var out []domain.Job
	for _, job := range f.jobs {
		if job.EmployeeID != nil && *job.EmployeeID == employeeID {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (f *fakeJobStore) ClaimJob(_ context.Context, jobID, employeeID string) error {
	job, ok := f.jobs[jobID]
	if !ok || job.Status != domain.JobStatusOpen {
		return domain.ErrJobNotAvailable
	}
	job.EmployeeID = &employeeID
	job.Status = domain.JobStatusInProgress
	return nil
}

func (f *fakeJobStore) TransitionStatus(_ context.Context, jobID, from, to string) error {
	job, ok := f.jobs[jobID]
	if !ok || job.Status != from {
		return domain.ErrInvalidTransition
	}
	job.Status = to
	return nil
}

func (f *fakeJobStore) CompleteJob(_ context.Context, jobID string) error {
	job, ok := f.jobs[jobID]
	if !ok || job.Status != domain.JobStatusSubmitted {
		return domain.ErrInvalidTransition
	}
	job.Status = domain.JobStatusCompleted
	job.PaymentReservation = nil
	return nil
}

func (f *fakeJobStore) CancelJob(_ context.Context, jobID string) error {
	job, ok := f.jobs[jobID]
	if !ok || (job.Status != domain.JobStatusInProgress && job.Status != domain.JobStatusSubmitted) {
		return domain.ErrInvalidTransition
	}
	job.Status = domain.JobStatusCancelled
	job.PaymentReservation = nil
	return nil
}

func (f *fakeJobStore) DeleteJob(_ context.Context, jobID string) error {
	job, ok := f.jobs[jobID]
	if !ok || job.Status != domain.JobStatusOpen {
		return domain.ErrInvalidTransition
	}
	delete(f.jobs, jobID)
	return nil
}

func (f *fakeJobStore) SetPaymentReservation(_ context.Context, jobID, artifact string) error {
	job, ok := f.jobs[jobID]
	if !ok {
		return domain.ErrJobNotFound
	}
	job.PaymentReservation = &artifact
	return nil
}

func (f *fakeJobStore) SetEscrowID(_ context.Context, jobID, escrowID string) error {
	job, ok := f.jobs[jobID]
	if !ok {
		return domain.ErrJobNotFound
	}
	job.EscrowID = &escrowID
	return nil
}

type fakeWalletStore struct {
	wallets map[string][]domain.Wallet // keyed by user id, insertion order
}

func newFakeWalletStore() *fakeWalletStore {
	return &fakeWalletStore{wallets: make(map[string][]domain.Wallet)}
}

func (f *fakeWalletStore) CreateWallet(_ context.Context, wallet *domain.Wallet) error {
	f.wallets[wallet.UserID] = append(f.wallets[wallet.UserID], *wallet)
	return nil
}

func (f *fakeWalletStore) ListWalletsByUser(_ context.Context, userID string) ([]domain.Wallet, error) {
	return f.wallets[userID], nil
}

func (f *fakeWalletStore) FirstWalletByUser(_ context.Context, userID string) (*domain.Wallet, error) {
	list := f.wallets[userID]
	if len(list) == 0 {
		return nil, domain.ErrWalletNotFound
	}
	copied := list[0]
	return &copied, nil
}

func (f *fakeWalletStore) DeleteWallet(_ context.Context, walletID, userID string) error {
	list := f.wallets[userID]
	for i, w := range list {
		if w.ID == walletID {
			f.wallets[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrWalletNotFound
}

func (f *fakeWalletStore) add(userID, address string) {
	f.wallets[userID] = append(f.wallets[userID], domain.Wallet{
		ID:        "wallet-" + userID,
		UserID:    userID,
		Address:   address,
		CreatedAt: time.Now(),
	})
}

type fakeConversationStore struct {
	conversations []domain.Conversation
	messages      []domain.Message
}

func (f *fakeConversationStore) FindConversationByPair(_ context.Context, userA, userB string) (*domain.Conversation, error) {
	for _, c := range f.conversations {
		if (c.UserA == userA && c.UserB == userB) || (c.UserA == userB && c.UserB == userA) {
			copied := c
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeConversationStore) CreateConversation(_ context.Context, conv *domain.Conversation) error {
	f.conversations = append(f.conversations, *conv)
	return nil
}

func (f *fakeConversationStore) CreateMessage(_ context.Context, msg *domain.Message) error {
	f.messages = append(f.messages, *msg)
	return nil
}

type fakeNotificationStore struct {
	notifications []domain.Notification
}

func (f *fakeNotificationStore) CreateNotification(_ context.Context, n *domain.Notification) error {
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeNotificationStore) ListNotificationsByUser(_ context.Context, userID string) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkNotificationsRead(_ context.Context, userID string) (int64, error) {
	var count int64
	for i := range f.notifications {
		if f.notifications[i].UserID == userID && !f.notifications[i].Read {
			f.notifications[i].Read = true
			count++
		}
	}
	return count, nil
}

type fakeReviewStore struct {
	reviews []domain.Review
}

func (f *fakeReviewStore) HasReview(_ context.Context, jobID, reviewerID string) (bool, error) {
	for _, r := range f.reviews {
		if r.JobID == jobID && r.ReviewerID == reviewerID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewStore) CreateReview(_ context.Context, review *domain.Review) error {
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f *fakeReviewStore) ListReviewsByReviewee(_ context.Context, userID string) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range f.reviews {
		if r.RevieweeID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewStore) RatingSummary(_ context.Context, userID string) (float64, int64, error) {
	var sum, count int64
	for _, r := range f.reviews {
		if r.RevieweeID == userID {
			sum += int64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

type fakeChain struct {
	buildErr  error
	submitErr error
	builds    int
	tipMemos  []string
}

func (f *fakeChain) BuildJobPayment(_ context.Context, jobID, from, to string, amount decimal.Decimal) (*stellar.Payment, error) {
	if f.buildErr != nil {
		return nil, f.buildErr
	}
	f.builds++
	return &stellar.Payment{
		XDR:     "built-" + jobID,
		From:    from,
		To:      to,
		Amount:  amount,
		Network: "TESTNET",
	}, nil
}

func (f *fakeChain) BuildTip(_ context.Context, from, to string, amount decimal.Decimal, token, memo string) (*stellar.Payment, error) {
	if f.buildErr != nil {
		return nil, f.buildErr
	}
	f.builds++
	f.tipMemos = append(f.tipMemos, memo)
	return &stellar.Payment{
		XDR:     "tip-" + token,
		From:    from,
		To:      to,
		Amount:  amount,
		Network: "TESTNET",
	}, nil
}

func (f *fakeChain) SubmitTransaction(_ context.Context, signedXDR string) (*stellar.SubmitResult, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &stellar.SubmitResult{Hash: "hash-" + signedXDR, Ledger: 777}, nil
}

func (f *fakeChain) AccountBalance(_ context.Context, _ string) (*stellar.AccountBalance, error) {
	return &stellar.AccountBalance{XLM: "10.0000000", USDC: "0.0000000"}, nil
}

func (f *fakeChain) Network() string { return "TESTNET" }

type fakeTipStore struct {
	tips []domain.Tip
}

func (f *fakeTipStore) CreateTip(_ context.Context, tip *domain.Tip) error {
	f.tips = append(f.tips, *tip)
	return nil
}

func (f *fakeTipStore) ListTipsByRecipient(_ context.Context, address string) ([]domain.Tip, error) {
	var out []domain.Tip
	for _, tip := range f.tips {
		if tip.ToAddress == address {
			out = append(out, tip)
		}
	}
	return out, nil
}

func (f *fakeTipStore) TotalTipsReceived(_ context.Context, address string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, tip := range f.tips {
		if tip.ToAddress == address {
			total = total.Add(tip.Amount)
		}
	}
	return total, nil
}

type fakeEscrow struct {
	err      error
	requests []escrow.CreateEscrowRequest
}

func (f *fakeEscrow) CreateEscrow(_ context.Context, req escrow.CreateEscrowRequest) (*escrow.Escrow, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.requests = append(f.requests, req)
	return &escrow.Escrow{EscrowID: "esc-1", XDR: "funding-xdr"}, nil
}

type fakePublisher struct {
	published [][]byte
}

func (f *fakePublisher) Publish(_ context.Context, body []byte, _ string) error {
	f.published = append(f.published, body)
	return nil
}

type testEnv struct {
	svc           *Service
	jobs          *fakeJobStore
	wallets       *fakeWalletStore
	conversations *fakeConversationStore
	notifications *fakeNotificationStore
	reviews       *fakeReviewStore
	tips          *fakeTipStore
	chain         *fakeChain
	escrow        *fakeEscrow
	events        *fakePublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		jobs:          newFakeJobStore(),
		wallets:       newFakeWalletStore(),
		conversations: &fakeConversationStore{},
		notifications: &fakeNotificationStore{},
		reviews:       &fakeReviewStore{},
		tips:          &fakeTipStore{},
		chain:         &fakeChain{},
		escrow:        &fakeEscrow{},
		events:        &fakePublisher{},
	}

	env.svc = New(&Config{
		Logger:                slog.New(slog.DiscardHandler),
		Jobs:                  env.jobs,
		Wallets:               env.wallets,
		Conversations:         env.conversations,
		Notifications:         env.notifications,
		Reviews:               env.reviews,
		Tips:                  env.tips,
		Chain:                 env.chain,
		Escrow:                env.escrow,
		Events:                env.events,
		EscrowToken:           "CTOKEN",
		EscrowDisputeResolver: "GRESOLVER",
		ReviewsContractID:     "CREVIEWS",
	})

	return env
}

func (e *testEnv) seedJob(status string, employeeID *string) *domain.Job {
	job := &domain.Job{
		ID:          "job-1",
		EmployerID:  "employer-1",
		EmployeeID:  employeeID,
		Title:       "Build landing page",
		Description: "A landing page for the launch",
		Price:       decimal.RequireFromString("50.00"),
		Currency:    "XLM",
		Status:      status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	e.jobs.jobs[job.ID] = job
	return job
}

func effectStatus(results []EffectResult, name string) string {
	for _, r := range results {
		if r.Name == name {
			return r.Status
		}
	}
	return ""
}
