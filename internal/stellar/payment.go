package stellar

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	// StroopsPerUnit is the fixed-point scale of the network: 1 unit = 10^7 stroops.
	StroopsPerUnit = 10_000_000

	// maxMemoBytes is the network's text memo budget.
	maxMemoBytes = 28

	// txTimeoutSeconds bounds how long an unsigned artifact stays submittable.
	// Consumers must treat generated artifacts as short-lived and rebuild
	// stale ones.
	txTimeoutSeconds = 60
)

// Payment carries an unsigned payment artifact plus the metadata the signer
// needs to present to the user.
type Payment struct {
	XDR     string          `json:"xdr"`
	From    string          `json:"from"`
	To      string          `json:"to"`
	Amount  decimal.Decimal `json:"amount"`
	Network string          `json:"network"`
}

type paymentOperation struct {
	Type        string `json:"type"`
	Destination string `json:"destination"`
	Asset       string `json:"asset"`
	Amount      int64  `json:"amount"` // stroops
}

// paymentEnvelope is the XDR-equivalent transaction description that gets
// base64-encoded and handed to the client-held wallet for signing.
type paymentEnvelope struct {
	SourceAccount     string             `json:"source_account"`
	Sequence          int64              `json:"sequence"`
	Fee               int64              `json:"fee"`
	Operations        []paymentOperation `json:"operations"`
	Memo              string             `json:"memo,omitempty"`
	TimeoutSeconds    int                `json:"timeout_seconds"`
	NetworkPassphrase string             `json:"network_passphrase"`
}

// ToStroops converts a decimal amount to stroops, truncating toward zero.
func ToStroops(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(StroopsPerUnit)).IntPart()
}

// TruncateMemo trims a memo to the network's 28-byte budget without splitting
// a multi-byte rune.
func TruncateMemo(memo string) string {
	if len(memo) <= maxMemoBytes {
		return memo
	}
	cut := maxMemoBytes
	for cut > 0 && !utf8.RuneStart(memo[cut]) {
		cut--
	}
	return memo[:cut]
}

// BuildPaymentXDR builds an unsigned native-asset payment artifact moving
// amount from one address to another. The artifact embeds the source
// account's next sequence number, so it goes stale if the account submits
// anything else first.
func (c *Client) BuildPaymentXDR(ctx context.Context, from, to string, amount decimal.Decimal, memo string) (string, error) {
	return c.buildPaymentArtifact(ctx, from, to, amount, "native", memo)
}

func (c *Client) buildPaymentArtifact(ctx context.Context, from, to string, amount decimal.Decimal, asset, memo string) (string, error) {
	if !amount.IsPositive() {
		return "", fmt.Errorf("payment amount must be positive, got %s", amount)
	}

	seq, err := c.loadSequence(ctx, from)
	if err != nil {
		return "", fmt.Errorf("failed to load source account: %w", err)
	}

	envelope := paymentEnvelope{
		SourceAccount: from,
		Sequence:      seq + 1,
		Fee:           c.baseFee,
		Operations: []paymentOperation{
			{
				Type:        "payment",
				Destination: to,
				Asset:       asset,
				Amount:      ToStroops(amount),
			},
		},
		Memo:              TruncateMemo(memo),
		TimeoutSeconds:    txTimeoutSeconds,
		NetworkPassphrase: c.networkPassphrase,
	}

	raw, err := json.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("failed to encode payment envelope: %w", err)
	}

	xdr := base64.StdEncoding.EncodeToString(raw)

	c.logger.Debug("Payment artifact generated",
		slog.String("from", from),
		slog.String("to", to),
		slog.String("asset", asset),
		slog.Int64("stroops", envelope.Operations[0].Amount),
	)

	return xdr, nil
}

// BuildJobPayment builds the unsigned payment artifact that settles a job,
// with the job reference embedded in the memo.
func (c *Client) BuildJobPayment(ctx context.Context, jobID, from, to string, amount decimal.Decimal) (*Payment, error) {
	c.logger.Info("Generating job payment artifact",
		slog.String("job_id", jobID),
		slog.String("from", from),
		slog.String("to", to),
		slog.String("amount", amount.String()),
	)

	xdr, err := c.BuildPaymentXDR(ctx, from, to, amount, "Payment for job: "+jobID)
	if err != nil {
		return nil, err
	}

	return &Payment{
		XDR:     xdr,
		From:    from,
		To:      to,
		Amount:  amount,
		Network: c.network,
	}, nil
}

// BuildTip builds an unsigned tip artifact. Token selects the asset the tip
// settles in; an empty token means the native asset.
func (c *Client) BuildTip(ctx context.Context, from, to string, amount decimal.Decimal, token, memo string) (*Payment, error) {
	asset := token
	if asset == "" {
		asset = "native"
	}

	xdr, err := c.buildPaymentArtifact(ctx, from, to, amount, asset, memo)
	if err != nil {
		return nil, err
	}

	return &Payment{
		XDR:     xdr,
		From:    from,
		To:      to,
		Amount:  amount,
		Network: c.network,
	}, nil
}
