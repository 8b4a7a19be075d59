package stellar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// SubmitResult is the network's settlement reference for a submitted artifact.
type SubmitResult struct {
	Hash   string `json:"hash"`
	Ledger int64  `json:"ledger"`
}

type horizonProblem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Extras struct {
		ResultCodes struct {
			Transaction string   `json:"transaction"`
			Operations  []string `json:"operations"`
		} `json:"result_codes"`
	} `json:"extras"`
}

// SubmitTransaction forwards a signed artifact to the network. It is a pure
// pass-through: no job state is consulted or mutated here.
func (c *Client) SubmitTransaction(ctx context.Context, signedXDR string) (*SubmitResult, error) {
	if signedXDR == "" {
		return nil, fmt.Errorf("signed artifact is empty")
	}

	form := url.Values{}
	form.Set("tx", signedXDR)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.horizonURL+"/transactions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit transaction: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read submit response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var problem horizonProblem
		if err := json.Unmarshal(body, &problem); err == nil && problem.Extras.ResultCodes.Transaction != "" {
			return nil, fmt.Errorf("transaction rejected: %s (operations: %s)",
				problem.Extras.ResultCodes.Transaction,
				strings.Join(problem.Extras.ResultCodes.Operations, ","),
			)
		}
		return nil, fmt.Errorf("horizon returned status %d: %s", resp.StatusCode, string(body))
	}

	var result SubmitResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode submit response: %w", err)
	}

	c.logger.Info("Transaction submitted to network",
		slog.String("hash", result.Hash),
		slog.Int64("ledger", result.Ledger),
	)

	return &result, nil
}

// AccountBalance holds the native and USDC balances for an address.
type AccountBalance struct {
	XLM  string `json:"xlm"`
	USDC string `json:"usdc"`
}

// AccountBalance fetches the balances for an address from Horizon.
func (c *Client) AccountBalance(ctx context.Context, address string) (*AccountBalance, error) {
	account, err := c.loadAccount(ctx, address)
	if err != nil {
		return nil, err
	}

	balance := &AccountBalance{XLM: "0.0000000", USDC: "0.0000000"}
	for _, b := range account.Balances {
		switch {
		case b.AssetType == "native":
			balance.XLM = b.Balance
		case b.AssetCode == "USDC":
			balance.USDC = b.Balance
		}
	}

	return balance, nil
}
