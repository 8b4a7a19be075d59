package stellar

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// Config holds Horizon connection configuration
type Config struct {
	HorizonURL        string
	NetworkPassphrase string
	Network           string // display name returned with artifacts, e.g. TESTNET
	BaseFee           int64
	Timeout           time.Duration
}

// Client talks to a Stellar Horizon server. It builds unsigned payment
// artifacts and forwards signed ones to the network; it never holds keys.
type Client struct {
	httpClient        *http.Client
	horizonURL        string
	networkPassphrase string
	network           string
	baseFee           int64
	logger            *slog.Logger
}

// NewClient creates a new Horizon client
func NewClient(config *Config, logger *slog.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseFee := config.BaseFee
	if baseFee <= 0 {
		baseFee = 100
	}

	return &Client{
		httpClient:        &http.Client{Timeout: timeout},
		horizonURL:        config.HorizonURL,
		networkPassphrase: config.NetworkPassphrase,
		network:           config.Network,
		baseFee:           baseFee,
		logger:            logger,
	}
}

// Network returns the display name of the configured network.
func (c *Client) Network() string {
	return c.network
}

type horizonAccount struct {
	AccountID string `json:"account_id"`
	Sequence  string `json:"sequence"`
	Balances  []struct {
		Balance     string `json:"balance"`
		AssetType   string `json:"asset_type"`
		AssetCode   string `json:"asset_code"`
		AssetIssuer string `json:"asset_issuer"`
	} `json:"balances"`
}

// loadAccount fetches the account record for an address from Horizon.
func (c *Client) loadAccount(ctx context.Context, address string) (*horizonAccount, error) {
	url := fmt.Sprintf("%s/accounts/%s", c.horizonURL, address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build account request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("account %s does not exist on the network", address)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("horizon returned status %d for account %s", resp.StatusCode, address)
	}

	var account horizonAccount
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("failed to decode account response: %w", err)
	}

	return &account, nil
}

// loadSequence returns the current sequence number for an address.
func (c *Client) loadSequence(ctx context.Context, address string) (int64, error) {
	account, err := c.loadAccount(ctx, address)
	if err != nil {
		return 0, err
	}

	seq, err := strconv.ParseInt(account.Sequence, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid sequence %q for account %s: %w", account.Sequence, address, err)
	}

	return seq, nil
}
