package escrow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Config holds escrow service connection configuration
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client talks to the external escrow-creation service. Escrow creation
// returns an escrow id plus an unsigned funding artifact the employer signs
// out-of-band.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// NewClient creates a new escrow service client
func NewClient(config *Config, logger *slog.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    config.BaseURL,
		apiKey:     config.APIKey,
		logger:     logger,
	}
}

// CreateEscrowRequest describes a single-release escrow between a freelancer
// (service provider / receiver) and an employer (approver).
type CreateEscrowRequest struct {
	ServiceProvider string `json:"service_provider"`
	Approver        string `json:"approver"`
	Receiver        string `json:"receiver"`
	DisputeResolver string `json:"dispute_resolver"`
	Deadline        int64  `json:"deadline"` // unix timestamp
	Amount          string `json:"amount"`   // stroops
	Token           string `json:"token"`    // token contract address
}

// Escrow is the service's response to a creation request.
type Escrow struct {
	EscrowID string `json:"escrow_id"`
	XDR      string `json:"xdr"`
}

// CreateEscrow asks the escrow service to deploy a single-release escrow and
// returns the escrow id with its unsigned funding artifact.
func (c *Client) CreateEscrow(ctx context.Context, req CreateEscrowRequest) (*Escrow, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode escrow request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/deployer/single-release", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build escrow request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call escrow service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("escrow service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var escrow Escrow
	if err := json.NewDecoder(resp.Body).Decode(&escrow); err != nil {
		return nil, fmt.Errorf("failed to decode escrow response: %w", err)
	}

	if escrow.EscrowID == "" {
		return nil, fmt.Errorf("escrow service returned no escrow id")
	}

	c.logger.Info("Escrow created",
		slog.String("escrow_id", escrow.EscrowID),
		slog.String("approver", req.Approver),
		slog.String("service_provider", req.ServiceProvider),
	)

	return &escrow, nil
}
