package risk

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
)

// Generator maps analyzer results to findings: exactly one finding per check
// category, in canonical order. ID and timestamp sources are injected so
// findings are deterministic under test.
type Generator struct {
	newID func() string
	now   func() time.Time
}

// NewGenerator builds a generator. Nil arguments fall back to random UUIDs
// and the wall clock.
func NewGenerator(newID func() string, now func() time.Time) *Generator {
	if newID == nil {
		newID = uuid.NewString
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Generator{newID: newID, now: now}
}

// Generate produces the five findings for a scan. Skipped categories yield a
// not_applicable finding so the set is always complete.
func (g *Generator) Generate(in Input) []model.SecurityFinding {
	findings := make([]model.SecurityFinding, 0, len(model.AllCheckTypes()))
	for _, ct := range model.AllCheckTypes() {
		findings = append(findings, g.finding(ct, in))
	}
	return findings
}

func (g *Generator) finding(ct model.CheckType, in Input) model.SecurityFinding {
	f := model.SecurityFinding{
		ID:         g.newID(),
		CheckType:  ct,
		DetectedAt: g.now(),
	}
	if in.skipped(ct) || g.analysisFor(ct, in) == nil {
		f.Severity = model.SeverityInfo
		f.Result = model.ResultNotApplicable
		f.Title = fmt.Sprintf("%s check skipped", titleFor(ct))
		f.Description = "The check was excluded from this scan at the caller's request."
		return f
	}

	switch ct {
	case model.CheckHoneypot:
		g.honeypotFinding(&f, in.Honeypot)
	case model.CheckMintAuthority:
		g.mintFinding(&f, in.Authority)
	case model.CheckFreezeAuthority:
		g.freezeFinding(&f, in.Authority)
	case model.CheckHolderConcentration:
		g.holdersFinding(&f, in.Holders)
	case model.CheckLiquidityLock:
		g.liquidityFinding(&f, in.Liquidity, in.now())
	}
	return f
}

// analysisFor returns the analysis backing a check type, nil when absent.
func (g *Generator) analysisFor(ct model.CheckType, in Input) interface{} {
	switch ct {
	case model.CheckHoneypot:
		if in.Honeypot != nil {
			return in.Honeypot
		}
	case model.CheckMintAuthority, model.CheckFreezeAuthority:
		if in.Authority != nil {
			return in.Authority
		}
	case model.CheckHolderConcentration:
		if in.Holders != nil {
			return in.Holders
		}
	case model.CheckLiquidityLock:
		if in.Liquidity != nil {
			return in.Liquidity
		}
	}
	return nil
}

func titleFor(ct model.CheckType) string {
	switch ct {
	case model.CheckHoneypot:
		return "Honeypot"
	case model.CheckMintAuthority:
		return "Mint authority"
	case model.CheckFreezeAuthority:
		return "Freeze authority"
	case model.CheckHolderConcentration:
		return "Holder concentration"
	case model.CheckLiquidityLock:
		return "Liquidity lock"
	}
	return string(ct)
}

func (g *Generator) honeypotFinding(f *model.SecurityFinding, hc *model.HoneypotCheck) {
	f.Details = map[string]interface{}{
		"can_buy":         hc.CanBuy,
		"can_sell":        hc.CanSell,
		"buy_tax":         hc.BuyTax,
		"sell_tax":        hc.SellTax,
		"trading_enabled": hc.TradingEnabled,
	}
	switch {
	case hc.IsHoneypot:
		f.Severity = model.SeverityCritical
		f.Result = model.ResultFailed
		f.Title = "Token appears to be a honeypot"
		f.Description = "The sell simulation failed or selling is restricted; holders may be unable to exit."
		f.Recommendation = "Do not buy. Existing holders should attempt to exit through any available route."
	case hc.SellTax > 10 || hc.BuyTax > 10 || hc.HasBlacklist || hc.HasWhitelist:
		f.Severity = model.SeverityMedium
		f.Result = model.ResultWarning
		f.Title = "Transfer restrictions or high taxes detected"
		f.Description = "The token is sellable but carries tax or restriction hooks that can change without notice."
		f.Recommendation = "Verify the owner program and current tax rates before trading."
	default:
		f.Severity = model.SeverityInfo
		f.Result = model.ResultPassed
		f.Title = "No honeypot behavior detected"
		f.Description = "Buy and sell simulations both succeeded with no restriction hooks."
	}
}

func (g *Generator) mintFinding(f *model.SecurityFinding, a *model.AuthorityAnalysis) {
	f.Details = map[string]interface{}{
		"can_mint":             a.CanMint,
		"creator_holdings_pct": a.CreatorHoldingsPct,
	}
	if a.CanMint {
		f.Severity = model.SeverityHigh
		f.Result = model.ResultFailed
		f.Title = "Mint authority is active"
		f.Description = "The token supply can be inflated at will by the mint authority."
		f.Recommendation = "Treat the supply as uncapped until the authority is renounced."
	} else {
		f.Severity = model.SeverityInfo
		f.Result = model.ResultPassed
		f.Title = "Mint authority renounced"
		f.Description = "No further tokens can ever be minted."
	}
}

func (g *Generator) freezeFinding(f *model.SecurityFinding, a *model.AuthorityAnalysis) {
	f.Details = map[string]interface{}{
		"can_freeze": a.CanFreeze,
	}
	if a.CanFreeze {
		f.Severity = model.SeverityMedium
		f.Result = model.ResultFailed
		f.Title = "Freeze authority is active"
		f.Description = "Individual holder accounts can be frozen, blocking their transfers."
		f.Recommendation = "Confirm why the project retains the freeze authority."
	} else {
		f.Severity = model.SeverityInfo
		f.Result = model.ResultPassed
		f.Title = "Freeze authority renounced"
		f.Description = "Holder balances cannot be frozen."
	}
}

func (g *Generator) holdersFinding(f *model.SecurityFinding, h *model.HolderConcentration) {
	f.Details = map[string]interface{}{
		"total_holders":      h.TotalHolders,
		"largest_holder_pct": h.LargestHolderPct,
		"top10_pct":          h.Top10Pct,
	}
	switch {
	case h.IsConcentrated:
		f.Severity = model.SeverityHigh
		f.Result = model.ResultFailed
		f.Title = "Supply is dangerously concentrated"
		f.Description = fmt.Sprintf("The largest holder controls %.1f%% and the top ten %.1f%% of the observed supply.",
			h.LargestHolderPct, h.Top10Pct)
		f.Recommendation = "A single seller can collapse the price; size positions accordingly."
	case h.LargestHolderPct > 25 || h.Top10Pct > 50:
		f.Severity = model.SeverityMedium
		f.Result = model.ResultWarning
		f.Title = "Supply is moderately concentrated"
		f.Description = fmt.Sprintf("The largest holder controls %.1f%% of the observed supply.", h.LargestHolderPct)
	default:
		f.Severity = model.SeverityInfo
		f.Result = model.ResultPassed
		f.Title = "Supply is well distributed"
		f.Description = fmt.Sprintf("%d holders observed; the largest controls %.1f%%.", h.TotalHolders, h.LargestHolderPct)
	}
}

func (g *Generator) liquidityFinding(f *model.SecurityFinding, l *model.LiquidityAnalysis, now time.Time) {
	f.Details = map[string]interface{}{
		"total_liquidity_usd": l.TotalLiquidityUsd,
		"locked_pct":          l.LockedPct,
		"pool_count":          len(l.Pools),
	}
	soonest := SoonestLockExpiry(l)
	expiringSoon := soonest != nil && soonest.Sub(now) < lockExpiryHorizon
	switch {
	case l.TotalLiquidityUsd <= 0:
		f.Severity = model.SeverityCritical
		f.Result = model.ResultFailed
		f.Title = "No liquidity found"
		f.Description = "No pools with liquidity were discovered for this token."
		f.Recommendation = "The token may be untradeable or not yet listed; do not rely on being able to exit."
	case l.LockedPct <= 0:
		f.Severity = model.SeverityCritical
		f.Result = model.ResultFailed
		f.Title = "Liquidity is not locked"
		f.Description = fmt.Sprintf("$%.0f of liquidity can be withdrawn by the pool owners at any time.", l.TotalLiquidityUsd)
		f.Recommendation = "Unlocked liquidity enables a rug pull; verify the team's custody of LP tokens."
	case l.LockedPct < 80 || expiringSoon:
		f.Severity = model.SeverityMedium
		f.Result = model.ResultWarning
		f.Title = "Liquidity is only partially protected"
		f.Description = fmt.Sprintf("%.1f%% of liquidity is locked.", l.LockedPct)
		if expiringSoon {
			f.Description += fmt.Sprintf(" The nearest lock expires %s.", soonest.Format("2006-01-02"))
		}
	default:
		f.Severity = model.SeverityInfo
		f.Result = model.ResultPassed
		f.Title = "Liquidity is locked"
		f.Description = fmt.Sprintf("%.1f%% of $%.0f liquidity is locked.", l.LockedPct, l.TotalLiquidityUsd)
	}
}

// Tally counts findings by result.
func Tally(findings []model.SecurityFinding) (passed, failed, warning int) {
	for _, f := range findings {
		switch f.Result {
		case model.ResultPassed:
			passed++
		case model.ResultFailed:
			failed++
		case model.ResultWarning:
			warning++
		}
	}
	return passed, failed, warning
}
