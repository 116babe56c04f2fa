package interfaces

import (
	"context"

	"github.com/shopspring/decimal"
)

// ChainClient is the minimal on-chain data surface the analyzers require.
// Implementations must be safe for concurrent use; every method honors the
// passed context for cancellation and deadlines.
type ChainClient interface {
	// GetMintAuthorities fetches the mint's authority and supply state.
	GetMintAuthorities(ctx context.Context, tokenAddress string) (*MintAuthorities, error)

	// EnumerateTokenAccounts lists accounts holding the mint, at most limit entries.
	// The enumeration is bounded, not exhaustive.
	EnumerateTokenAccounts(ctx context.Context, tokenAddress string, limit int) ([]TokenAccount, error)

	// IsExecutable reports whether the account at address is a program.
	IsExecutable(ctx context.Context, address string) (bool, error)

	// SimulateTransfer dry-runs a zero-value transfer of the mint in the given
	// direction without committing funds.
	SimulateTransfer(ctx context.Context, req SimulateRequest) (*SimulateResult, error)
}

// MintAuthorities is the decoded authority state of a mint account.
type MintAuthorities struct {
	TokenAddress string

	// MintAuthority and FreezeAuthority are nil when renounced.
	MintAuthority   *string
	FreezeAuthority *string

	// OwnerProgram is the program owning the mint account. Standard SPL mints
	// belong to the token program; anything else is a custom program.
	OwnerProgram string

	Supply      decimal.Decimal
	Decimals    uint8
	Initialized bool
}

// TokenAccount is one holder account of a mint. Amount is the raw integer
// amount before decimal shifting.
type TokenAccount struct {
	Address  string
	Owner    string
	Amount   decimal.Decimal
	Decimals uint8
}

// TransferDirection distinguishes the two legs of a honeypot probe.
type TransferDirection string

const (
	TransferBuy  TransferDirection = "buy"
	TransferSell TransferDirection = "sell"
)

type SimulateRequest struct {
	TokenAddress string
	Direction    TransferDirection
}

// SimulateResult reports the outcome of a dry-run. Success false with a nil
// error means the simulation executed and the transfer was rejected, which is
// a signal, not a failure of the probe itself.
type SimulateResult struct {
	Success bool
	Logs    []string
}
