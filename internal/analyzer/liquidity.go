package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/interfaces"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
)

// LiquidityAnalyzer aggregates pool liquidity across the configured sources
// and determines how much of it is locked. Pool discovery is as complete as
// the sources are; no completeness guarantee is made.
type LiquidityAnalyzer struct {
	source interfaces.LiquiditySource
	locks  interfaces.LockVerifier
	logger interfaces.Logger
}

var _ interfaces.LiquidityAnalyzer = (*LiquidityAnalyzer)(nil)

func NewLiquidityAnalyzer(source interfaces.LiquiditySource, locks interfaces.LockVerifier, logger interfaces.Logger) *LiquidityAnalyzer {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &LiquidityAnalyzer{
		source: source,
		locks:  locks,
		logger: logger.With(interfaces.Field{Key: "analyzer", Value: "liquidity"}),
	}
}

// AnalyzeLiquidity fetches the token's pools and computes total and locked
// liquidity. A pool counts as locked when the source says so or when its LP
// custodian is a verified lock program or a burn sink. marketCapUsd of 0
// means unknown; the best source-reported market cap is used instead.
func (l *LiquidityAnalyzer) AnalyzeLiquidity(ctx context.Context, tokenAddress string, marketCapUsd float64) (*model.LiquidityAnalysis, error) {
	pools, err := l.source.GetPools(ctx, tokenAddress)
	if err != nil {
		return nil, fmt.Errorf("analyze liquidity of %s: %w", tokenAddress, err)
	}

	analysis := &model.LiquidityAnalysis{
		TokenAddress: tokenAddress,
		AnalyzedAt:   time.Now().UTC(),
	}

	var (
		lockedUsd       float64
		sourceMarketCap float64
		furthestExpiry  *time.Time
	)
	for i := range pools {
		p := &pools[i]
		if !p.Locked && p.LpCustodian != "" && l.locks != nil {
			p.Locked = l.locks.IsVerifiedLockProgram(p.LpCustodian) || l.locks.IsBurnAddress(p.LpCustodian)
		}
		analysis.TotalLiquidityUsd += p.LiquidityUsd
		analysis.TotalLiquidityNative += p.LiquidityNative
		if p.Locked {
			lockedUsd += p.LiquidityUsd
			if p.LockExpiresAt != nil && (furthestExpiry == nil || p.LockExpiresAt.After(*furthestExpiry)) {
				furthestExpiry = p.LockExpiresAt
			}
		}
		if p.MarketCapUsd > sourceMarketCap {
			sourceMarketCap = p.MarketCapUsd
		}
	}
	analysis.Pools = pools

	if analysis.TotalLiquidityUsd > 0 {
		analysis.LockedPct = clampPct(lockedUsd / analysis.TotalLiquidityUsd * 100)
	}
	analysis.IsLocked = analysis.LockedPct > 0
	analysis.LockExpiresAt = furthestExpiry

	if marketCapUsd <= 0 {
		marketCapUsd = sourceMarketCap
	}
	if marketCapUsd > 0 {
		analysis.LiquidityRatio = analysis.TotalLiquidityUsd / marketCapUsd
	}

	l.logger.Debug("liquidity analyzed",
		interfaces.Field{Key: "token", Value: tokenAddress},
		interfaces.Field{Key: "pools", Value: len(pools)},
		interfaces.Field{Key: "total_usd", Value: analysis.TotalLiquidityUsd},
		interfaces.Field{Key: "locked_pct", Value: analysis.LockedPct})
	return analysis, nil
}
