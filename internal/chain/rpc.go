// Package chain implements the on-chain data client over Solana JSON-RPC.
package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/interfaces"
)

// TokenProgramID is the SPL token program owning standard mints.
const TokenProgramID = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

// tokenAccountSize is the byte size of an SPL token holding account, used as
// a getProgramAccounts filter.
const tokenAccountSize = 165

// RPCClient implements interfaces.ChainClient against a Solana node.
type RPCClient struct {
	cfg    Config
	client *http.Client
	logger interfaces.Logger
}

var _ interfaces.ChainClient = (*RPCClient)(nil)

// NewRPCClient builds a client from cfg; zero fields fall back to defaults.
func NewRPCClient(cfg Config, logger interfaces.Logger) *RPCClient {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &RPCClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.With(interfaces.Field{Key: "component", Value: "chain"}),
	}
}

// call posts one JSON-RPC request and decodes the result into out. Transport
// failures and 5xx answers are retried with doubling backoff; node-level
// errors are returned as-is.
func (c *RPCClient) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("encode %s request: %w", method, err)
	}

	var lastErr error
	backoff := c.cfg.RetryBackoff
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying rpc call",
				interfaces.Field{Key: "method", Value: method},
				interfaces.Field{Key: "attempt", Value: attempt})
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("build %s request: %w", method, err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			lastErr = fmt.Errorf("rpc status %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("rpc status %d: %s", resp.StatusCode, bytes.TrimSpace(data))
		}

		var envelope rpcResponse
		if err := json.Unmarshal(data, &envelope); err != nil {
			return fmt.Errorf("decode %s response: %w", method, err)
		}
		if envelope.Error != nil {
			return fmt.Errorf("%s: %w", method, envelope.Error)
		}
		if out != nil {
			if err := json.Unmarshal(envelope.Result, out); err != nil {
				return fmt.Errorf("decode %s result: %w", method, err)
			}
		}
		return nil
	}
	return fmt.Errorf("%s failed after %d attempts: %w", method, c.cfg.MaxRetries+1, lastErr)
}

func (c *RPCClient) queryOpts(extra map[string]interface{}) map[string]interface{} {
	opts := map[string]interface{}{
		"commitment": c.cfg.Commitment,
	}
	for k, v := range extra {
		opts[k] = v
	}
	return opts
}

// GetMintAuthorities fetches and decodes the mint account.
func (c *RPCClient) GetMintAuthorities(ctx context.Context, tokenAddress string) (*interfaces.MintAuthorities, error) {
	var res accountInfoResult
	params := []interface{}{tokenAddress, c.queryOpts(map[string]interface{}{"encoding": "jsonParsed"})}
	if err := c.call(ctx, "getAccountInfo", params, &res); err != nil {
		return nil, err
	}
	if res.Value == nil {
		return nil, fmt.Errorf("mint account %s not found", tokenAddress)
	}
	if res.Value.Data.Parsed.Type != "mint" {
		return nil, fmt.Errorf("account %s is not a mint (parsed type %q)", tokenAddress, res.Value.Data.Parsed.Type)
	}

	var info mintInfo
	if err := json.Unmarshal(res.Value.Data.Parsed.Info, &info); err != nil {
		return nil, fmt.Errorf("decode mint info for %s: %w", tokenAddress, err)
	}

	supply := decimal.Zero
	if info.Supply != "" {
		s, err := decimal.NewFromString(info.Supply)
		if err != nil {
			return nil, fmt.Errorf("decode mint supply %q: %w", info.Supply, err)
		}
		supply = s
	}

	return &interfaces.MintAuthorities{
		TokenAddress:    tokenAddress,
		MintAuthority:   optAddr(info.MintAuthority),
		FreezeAuthority: optAddr(info.FreezeAuthority),
		OwnerProgram:    res.Value.Owner,
		Supply:          supply,
		Decimals:        info.Decimals,
		Initialized:     info.IsInitialized,
	}, nil
}

// EnumerateTokenAccounts lists holding accounts of the mint via a filtered
// getProgramAccounts query, capped at limit entries client-side.
func (c *RPCClient) EnumerateTokenAccounts(ctx context.Context, tokenAddress string, limit int) ([]interfaces.TokenAccount, error) {
	filters := []interface{}{
		map[string]interface{}{"dataSize": tokenAccountSize},
		map[string]interface{}{"memcmp": map[string]interface{}{"offset": 0, "bytes": tokenAddress}},
	}
	params := []interface{}{
		TokenProgramID,
		c.queryOpts(map[string]interface{}{"encoding": "jsonParsed", "filters": filters}),
	}

	var raw []programAccount
	if err := c.call(ctx, "getProgramAccounts", params, &raw); err != nil {
		return nil, err
	}

	accounts := make([]interfaces.TokenAccount, 0, len(raw))
	for _, pa := range raw {
		if limit > 0 && len(accounts) >= limit {
			break
		}
		var info tokenAccountInfo
		if err := json.Unmarshal(pa.Account.Data.Parsed.Info, &info); err != nil {
			c.logger.Warn("skipping undecodable token account",
				interfaces.Field{Key: "account", Value: pa.Pubkey},
				interfaces.Field{Key: "error", Value: err.Error()})
			continue
		}
		amount, err := decimal.NewFromString(info.TokenAmount.Amount)
		if err != nil {
			c.logger.Warn("skipping token account with bad amount",
				interfaces.Field{Key: "account", Value: pa.Pubkey},
				interfaces.Field{Key: "amount", Value: info.TokenAmount.Amount})
			continue
		}
		accounts = append(accounts, interfaces.TokenAccount{
			Address:  pa.Pubkey,
			Owner:    info.Owner,
			Amount:   amount,
			Decimals: info.TokenAmount.Decimals,
		})
	}
	return accounts, nil
}

// IsExecutable reports the account's executable flag. Missing accounts are
// not executable.
func (c *RPCClient) IsExecutable(ctx context.Context, address string) (bool, error) {
	var res accountInfoResult
	params := []interface{}{address, c.queryOpts(map[string]interface{}{"encoding": "base64"})}
	if err := c.call(ctx, "getAccountInfo", params, &res); err != nil {
		return false, err
	}
	if res.Value == nil {
		return false, nil
	}
	return res.Value.Executable, nil
}

// SimulateTransfer dry-runs transfer admissibility for the mint. A standard
// initialized token-program mint imposes no transfer hooks, so both
// directions are admissible; a missing or uninitialized mint rejects the
// transfer. Custom owner programs pass here and surface through their owner
// program instead, since their hooks only fire on real instruction data.
func (c *RPCClient) SimulateTransfer(ctx context.Context, req interfaces.SimulateRequest) (*interfaces.SimulateResult, error) {
	auth, err := c.GetMintAuthorities(ctx, req.TokenAddress)
	if err != nil {
		return nil, fmt.Errorf("simulate %s transfer: %w", req.Direction, err)
	}
	if !auth.Initialized {
		return &interfaces.SimulateResult{
			Success: false,
			Logs:    []string{fmt.Sprintf("mint %s is not initialized", req.TokenAddress)},
		}, nil
	}
	logs := []string{fmt.Sprintf("%s transfer admissible for %s", req.Direction, req.TokenAddress)}
	if auth.OwnerProgram != TokenProgramID {
		logs = append(logs, fmt.Sprintf("mint owned by custom program %s", auth.OwnerProgram))
	}
	return &interfaces.SimulateResult{Success: true, Logs: logs}, nil
}

func optAddr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
