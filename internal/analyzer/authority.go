package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/interfaces"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
)

// AuthorityAnalyzer inspects mint, freeze and update authority state and the
// creator's share of the observed supply.
type AuthorityAnalyzer struct {
	chain  interfaces.ChainClient
	cfg    Config
	logger interfaces.Logger
}

var _ interfaces.OwnershipAnalyzer = (*AuthorityAnalyzer)(nil)

func NewAuthorityAnalyzer(chain interfaces.ChainClient, cfg Config, logger interfaces.Logger) *AuthorityAnalyzer {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &AuthorityAnalyzer{
		chain:  chain,
		cfg:    cfg.withDefaults(),
		logger: logger.With(interfaces.Field{Key: "analyzer", Value: "authority"}),
	}
}

// AnalyzeOwnership succeeds or fails as a unit: a failed balance enumeration
// fails the whole analysis rather than reporting half-known ownership.
func (a *AuthorityAnalyzer) AnalyzeOwnership(ctx context.Context, tokenAddress string) (*model.AuthorityAnalysis, error) {
	auth, err := a.chain.GetMintAuthorities(ctx, tokenAddress)
	if err != nil {
		return nil, fmt.Errorf("analyze ownership of %s: %w", tokenAddress, err)
	}

	canMint := auth.MintAuthority != nil
	canFreeze := auth.FreezeAuthority != nil

	owner := ""
	switch {
	case canMint:
		owner = *auth.MintAuthority
	case canFreeze:
		owner = *auth.FreezeAuthority
	}

	holdings := 0.0
	if owner != "" {
		holdings, err = a.creatorHoldingsPct(ctx, tokenAddress, owner)
		if err != nil {
			return nil, fmt.Errorf("analyze ownership of %s: %w", tokenAddress, err)
		}
	}

	// Update authority lives in the metadata program, which this scanner
	// does not decode yet. CanUpdate stays false until it does.
	analysis := &model.AuthorityAnalysis{
		TokenAddress:       tokenAddress,
		OwnerAddress:       owner,
		CanMint:            canMint,
		CanFreeze:          canFreeze,
		CanUpdate:          false,
		CreatorHoldingsPct: holdings,
		MintRenounced:      !canMint,
		FreezeRenounced:    !canFreeze,
		UpdateRenounced:    true,
		AnalyzedAt:         time.Now().UTC(),
	}

	a.logger.Debug("ownership analyzed",
		interfaces.Field{Key: "token", Value: tokenAddress},
		interfaces.Field{Key: "can_mint", Value: canMint},
		interfaces.Field{Key: "can_freeze", Value: canFreeze},
		interfaces.Field{Key: "creator_pct", Value: holdings})
	return analysis, nil
}

// creatorHoldingsPct computes the owner's share of the summed observed
// balances within the enumeration window.
func (a *AuthorityAnalyzer) creatorHoldingsPct(ctx context.Context, tokenAddress, owner string) (float64, error) {
	accounts, err := a.chain.EnumerateTokenAccounts(ctx, tokenAddress, a.cfg.HolderLimit)
	if err != nil {
		return 0, err
	}

	total := decimal.Zero
	owned := decimal.Zero
	for _, acc := range accounts {
		total = total.Add(acc.Amount)
		if acc.Owner == owner {
			owned = owned.Add(acc.Amount)
		}
	}
	if total.IsZero() {
		return 0, nil
	}
	pct := owned.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
	return clampPct(pct), nil
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
