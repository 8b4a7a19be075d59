package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stellargigs/stellargigs-be/internal/api/domain"
	"github.com/stellargigs/stellargigs-be/internal/stellar"
)

// SendTipInput carries the fields needed to issue a tip artifact. JobID is
// optional; a tip may reference the job it thanks for, or stand alone.
type SendTipInput struct {
	JobID   string
	From    string
	To      string
	Token   string
	Amount  string
	Message string
}

// SendTip builds an unsigned tip artifact for the sender's wallet to sign and
// records the tip locally so received/total queries work without a chain read.
func (s *Service) SendTip(ctx context.Context, in SendTipInput) (*stellar.Payment, error) {
	if in.From == "" || in.To == "" || in.Token == "" {
		return nil, domain.NewValidationError("from, to, token and amount are required")
	}

	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		return nil, domain.NewValidationError("amount must be a number")
	}
	if !amount.IsPositive() {
		return nil, domain.NewValidationError("amount must be positive")
	}

	memo := in.Message
	if memo == "" {
		memo = "Tip"
	}

	payment, err := s.chain.BuildTip(ctx, in.From, in.To, amount, in.Token, memo)
	if err != nil {
		return nil, &domain.PaymentGenerationError{Err: err}
	}

	tip := &domain.Tip{
		ID:          uuid.New().String(),
		FromAddress: in.From,
		ToAddress:   in.To,
		Amount:      amount,
		Token:       in.Token,
		Message:     in.Message,
		CreatedAt:   time.Now(),
	}
	if in.JobID != "" {
		jobID := in.JobID
		tip.JobID = &jobID
	}

	if err := s.tips.CreateTip(ctx, tip); err != nil {
		return nil, err
	}

	s.logger.Info("Tip artifact issued",
		slog.String("from", in.From),
		slog.String("to", in.To),
		slog.String("amount", amount.String()),
	)

	return payment, nil
}

// TipsReceived returns the tips recorded for an address.
func (s *Service) TipsReceived(ctx context.Context, address string) ([]domain.Tip, error) {
	return s.tips.ListTipsByRecipient(ctx, address)
}

// TotalTipsReceived returns the total amount tipped to an address.
func (s *Service) TotalTipsReceived(ctx context.Context, address string) (decimal.Decimal, error) {
	return s.tips.TotalTipsReceived(ctx, address)
}
