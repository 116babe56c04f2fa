package scanner

import (
	"time"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
)

// Conservative defaults substituted when an analyzer fails. Three of the
// four assume the worst; the honeypot default deliberately does not, so a
// network failure alone never brands a token a honeypot.

// defaultHoneypot is the non-honeypot-biased default: sellable, untaxed,
// with the simulation marked as never having run.
func defaultHoneypot(tokenAddress string, cause error, now time.Time) *model.HoneypotCheck {
	return &model.HoneypotCheck{
		TokenAddress:   tokenAddress,
		IsHoneypot:     false,
		CanBuy:         true,
		CanSell:        true,
		TradingEnabled: true,
		SimulationResult: model.SimulationResult{
			Success: false,
			Error:   cause.Error(),
		},
		AnalyzedAt: now,
	}
}

// defaultAuthority assumes both authorities are still active: unknown
// ownership is treated as unrenounced.
func defaultAuthority(tokenAddress string, now time.Time) *model.AuthorityAnalysis {
	return &model.AuthorityAnalysis{
		TokenAddress:    tokenAddress,
		CanMint:         true,
		CanFreeze:       true,
		MintRenounced:   false,
		FreezeRenounced: false,
		UpdateRenounced: true,
		AnalyzedAt:      now,
	}
}

// defaultHolders reports an empty distribution. The low-holder-count penalty
// applies; concentration percentages stay unknown rather than invented.
func defaultHolders(tokenAddress string, now time.Time) *model.HolderConcentration {
	return &model.HolderConcentration{
		TokenAddress: tokenAddress,
		AnalyzedAt:   now,
	}
}

// defaultLiquidity reports zero liquidity, the maximum liquidity risk.
func defaultLiquidity(tokenAddress string, now time.Time) *model.LiquidityAnalysis {
	return &model.LiquidityAnalysis{
		TokenAddress: tokenAddress,
		AnalyzedAt:   now,
	}
}
