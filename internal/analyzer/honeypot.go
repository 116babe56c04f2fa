package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/chain"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/interfaces"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
)

// TaxEstimator estimates buy/sell taxes as percentages. Standard mints have
// none; AMM-derived or program-level taxation plugs in here.
type TaxEstimator interface {
	EstimateTaxes(ctx context.Context, tokenAddress string) (buyTax, sellTax float64, err error)
}

// zeroTaxes is the default estimator: standard token-program mints cannot
// take a cut of transfers.
type zeroTaxes struct{}

func (zeroTaxes) EstimateTaxes(context.Context, string) (float64, float64, error) {
	return 0, 0, nil
}

// HoneypotChecker probes whether a token that can be bought can also be
// sold.
type HoneypotChecker struct {
	chain  interfaces.ChainClient
	taxes  TaxEstimator
	logger interfaces.Logger
}

var _ interfaces.HoneypotChecker = (*HoneypotChecker)(nil)

// NewHoneypotChecker builds the checker. A nil estimator means zero taxes.
func NewHoneypotChecker(chainClient interfaces.ChainClient, taxes TaxEstimator, logger interfaces.Logger) *HoneypotChecker {
	if taxes == nil {
		taxes = zeroTaxes{}
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &HoneypotChecker{
		chain:  chainClient,
		taxes:  taxes,
		logger: logger.With(interfaces.Field{Key: "analyzer", Value: "honeypot"}),
	}
}

// CheckHoneypot dry-runs a buy and then a sell. A simulation that executes
// and rejects the transfer short-circuits to a honeypot verdict; an error
// reaching the chain is returned to the caller, who substitutes the
// non-honeypot-biased default.
func (h *HoneypotChecker) CheckHoneypot(ctx context.Context, tokenAddress string) (*model.HoneypotCheck, error) {
	now := func() time.Time { return time.Now().UTC() }

	buy, err := h.chain.SimulateTransfer(ctx, interfaces.SimulateRequest{
		TokenAddress: tokenAddress,
		Direction:    interfaces.TransferBuy,
	})
	if err != nil {
		return nil, fmt.Errorf("honeypot buy simulation for %s: %w", tokenAddress, err)
	}
	if !buy.Success {
		hc := &model.HoneypotCheck{
			TokenAddress:   tokenAddress,
			CanBuy:         false,
			CanSell:        false,
			TradingEnabled: false,
			SimulationResult: model.SimulationResult{
				Success:      true,
				BuySimulated: true,
			},
			AnalyzedAt: now(),
		}
		hc.IsHoneypot = deriveHoneypot(hc)
		h.logger.Info("buy rejected", interfaces.Field{Key: "token", Value: tokenAddress})
		return hc, nil
	}

	sell, err := h.chain.SimulateTransfer(ctx, interfaces.SimulateRequest{
		TokenAddress: tokenAddress,
		Direction:    interfaces.TransferSell,
	})
	if err != nil {
		return nil, fmt.Errorf("honeypot sell simulation for %s: %w", tokenAddress, err)
	}
	if !sell.Success {
		hc := &model.HoneypotCheck{
			TokenAddress:   tokenAddress,
			CanBuy:         true,
			CanSell:        false,
			TradingEnabled: true,
			SimulationResult: model.SimulationResult{
				Success:       true,
				BuySimulated:  true,
				SellSimulated: true,
			},
			AnalyzedAt: now(),
		}
		hc.IsHoneypot = deriveHoneypot(hc)
		h.logger.Info("sell rejected", interfaces.Field{Key: "token", Value: tokenAddress})
		return hc, nil
	}

	// Both legs admissible; inspect restrictions and taxes. Custom owner
	// programs can install blacklist hooks that only fire on real
	// instruction data, so their presence is flagged, not simulated.
	auth, err := h.chain.GetMintAuthorities(ctx, tokenAddress)
	if err != nil {
		return nil, fmt.Errorf("honeypot restriction inspection for %s: %w", tokenAddress, err)
	}
	customProgram := auth.OwnerProgram != chain.TokenProgramID

	buyTax, sellTax, err := h.taxes.EstimateTaxes(ctx, tokenAddress)
	if err != nil {
		return nil, fmt.Errorf("honeypot tax estimation for %s: %w", tokenAddress, err)
	}

	hc := &model.HoneypotCheck{
		TokenAddress:   tokenAddress,
		CanBuy:         true,
		CanSell:        true,
		BuyTax:         buyTax,
		SellTax:        sellTax,
		TradingEnabled: true,
		HasBlacklist:   customProgram,
		HasWhitelist:   false,
		SimulationResult: model.SimulationResult{
			Success:       true,
			BuySimulated:  true,
			SellSimulated: true,
		},
		AnalyzedAt: now(),
	}
	hc.IsHoneypot = deriveHoneypot(hc)
	return hc, nil
}

// deriveHoneypot is the single place the verdict is computed from the other
// fields.
func deriveHoneypot(hc *model.HoneypotCheck) bool {
	return !hc.CanSell ||
		hc.SellTax > 50 ||
		!hc.TradingEnabled ||
		(hc.HasBlacklist && !hc.CanSell)
}
