package interfaces

import (
	"context"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
)

// The four analyzer contracts the scan orchestrator fans out to. Each returns
// a fully populated analysis or an error; the orchestrator is responsible for
// substituting the documented conservative default on error. Analyzers never
// panic across this boundary.

// HoneypotChecker probes whether the token can actually be sold.
type HoneypotChecker interface {
	CheckHoneypot(ctx context.Context, tokenAddress string) (*model.HoneypotCheck, error)
}

// OwnershipAnalyzer inspects mint, freeze and update authority state.
type OwnershipAnalyzer interface {
	AnalyzeOwnership(ctx context.Context, tokenAddress string) (*model.AuthorityAnalysis, error)
}

// HolderAnalyzer computes holder distribution statistics.
type HolderAnalyzer interface {
	AnalyzeHolderConcentration(ctx context.Context, tokenAddress string) (*model.HolderConcentration, error)
}

// LiquidityAnalyzer aggregates pool liquidity and lock state. marketCapUsd
// is 0 when the caller did not supply one.
type LiquidityAnalyzer interface {
	AnalyzeLiquidity(ctx context.Context, tokenAddress string, marketCapUsd float64) (*model.LiquidityAnalysis, error)
}
