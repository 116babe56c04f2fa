// Package risk turns the four analyzer results into the weighted overall
// risk score and the per-check findings. The weights, tier tables and level
// thresholds in this package are the canonical scoring policy; the package
// tests are its oracle.
package risk

import (
	"math"
	"time"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
)

// Weights of the four sub-scores in the overall score.
const (
	weightOwnership     = 0.30
	weightConcentration = 0.25
	weightLiquidity     = 0.30
	weightHoneypot      = 0.15
)

// Input carries the settled analyzer results into scoring and finding
// generation. A nil analysis means the corresponding check was skipped;
// degraded analyzers arrive with their conservative default filled in, not
// nil. Now anchors the lock-expiry horizon; zero means the wall clock.
type Input struct {
	Authority *model.AuthorityAnalysis
	Holders   *model.HolderConcentration
	Liquidity *model.LiquidityAnalysis
	Honeypot  *model.HoneypotCheck

	Skipped map[model.CheckType]bool

	Now time.Time
}

func (in Input) skipped(ct model.CheckType) bool {
	return in.Skipped[ct]
}

func (in Input) now() time.Time {
	if in.Now.IsZero() {
		return time.Now().UTC()
	}
	return in.Now
}

// Breakdown is the aggregated score with its per-analyzer components.
type Breakdown struct {
	OwnershipRisk     int `json:"ownership_risk"`
	ConcentrationRisk int `json:"concentration_risk"`
	LiquidityRisk     int `json:"liquidity_risk"`
	HoneypotRisk      int `json:"honeypot_risk"`

	OverallScore  int             `json:"overall_score"`
	SecurityScore int             `json:"security_score"`
	RiskLevel     model.RiskLevel `json:"risk_level"`
}

// Aggregate computes the weighted overall score from the sub-scores. Skipped
// checks contribute zero.
func Aggregate(in Input) Breakdown {
	b := Breakdown{
		OwnershipRisk:     OwnershipRisk(in),
		ConcentrationRisk: ConcentrationRisk(in.Holders),
		LiquidityRisk:     LiquidityRisk(in.Liquidity, in.now()),
		HoneypotRisk:      HoneypotRisk(in.Honeypot),
	}
	weighted := float64(b.OwnershipRisk)*weightOwnership +
		float64(b.ConcentrationRisk)*weightConcentration +
		float64(b.LiquidityRisk)*weightLiquidity +
		float64(b.HoneypotRisk)*weightHoneypot
	b.OverallScore = clampScore(int(math.Round(weighted)))
	b.SecurityScore = 100 - b.OverallScore
	b.RiskLevel = LevelFor(b.OverallScore)
	return b
}

// LevelFor maps a 0-100 score to the four-tier risk level.
func LevelFor(score int) model.RiskLevel {
	switch {
	case score >= 75:
		return model.RiskCritical
	case score >= 50:
		return model.RiskHigh
	case score >= 25:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// OwnershipRisk scores the authority analysis: +40 mintable, +30 freezable,
// +10 update authority active, +20 creator holding over half, +10 for a
// quarter to half. A skipped mint or freeze sub-check excludes its component.
func OwnershipRisk(in Input) int {
	a := in.Authority
	if a == nil {
		return 0
	}
	score := 0
	if a.CanMint && !in.skipped(model.CheckMintAuthority) {
		score += 40
	}
	if a.CanFreeze && !in.skipped(model.CheckFreezeAuthority) {
		score += 30
	}
	if a.CanUpdate {
		score += 10
	}
	switch {
	case a.CreatorHoldingsPct > 50:
		score += 20
	case a.CreatorHoldingsPct >= 25:
		score += 10
	}
	return clampScore(score)
}

// ConcentrationRisk scores the holder distribution: a base tier from the
// largest holder, plus top-ten concentration and low holder count penalties.
func ConcentrationRisk(h *model.HolderConcentration) int {
	if h == nil {
		return 0
	}
	score := 0
	switch {
	case h.LargestHolderPct > 80:
		score = 100
	case h.LargestHolderPct > 50:
		score = 80
	case h.LargestHolderPct > 25:
		score = 50
	case h.LargestHolderPct > 10:
		score = 25
	}
	switch {
	case h.Top10Pct > 90:
		score += 20
	case h.Top10Pct > 75:
		score += 15
	case h.Top10Pct > 50:
		score += 10
	}
	switch {
	case h.TotalHolders < 100:
		score += 20
	case h.TotalHolders < 500:
		score += 10
	}
	return clampScore(score)
}

// lockExpiryHorizon is how close the soonest lock expiry may be before it
// counts as an imminent unlock.
const lockExpiryHorizon = 30 * 24 * time.Hour

// LiquidityRisk scores the liquidity analysis. Zero liquidity is the maximum
// risk outright; otherwise penalties accumulate for weak locking, imminent
// unlock, a thin liquidity-to-market-cap ratio and a small absolute pool.
func LiquidityRisk(l *model.LiquidityAnalysis, now time.Time) int {
	if l == nil {
		return 0
	}
	if l.TotalLiquidityUsd <= 0 {
		return 100
	}
	score := 0
	switch {
	case l.LockedPct <= 0:
		score += 60
	case l.LockedPct < 50:
		score += 40
	case l.LockedPct < 80:
		score += 20
	}
	if soonest := SoonestLockExpiry(l); soonest != nil && soonest.Sub(now) < lockExpiryHorizon {
		score += 20
	}
	// The ratio penalty applies only when a market cap was known; an unknown
	// market cap leaves the ratio at zero and must not manufacture risk.
	if l.LiquidityRatio > 0 && l.LiquidityRatio < 0.05 {
		score += 20
	}
	switch {
	case l.TotalLiquidityUsd < 10_000:
		score += 30
	case l.TotalLiquidityUsd < 50_000:
		score += 15
	}
	return clampScore(score)
}

// HoneypotRisk is all-or-nothing: a honeypot verdict maxes the sub-score.
func HoneypotRisk(h *model.HoneypotCheck) int {
	if h == nil {
		return 0
	}
	if h.IsHoneypot {
		return 100
	}
	return 0
}

// SoonestLockExpiry returns the nearest expiry among locked pools, the first
// exit door for locked liquidity. The analysis itself reports the furthest
// expiry as the lock horizon.
func SoonestLockExpiry(l *model.LiquidityAnalysis) *time.Time {
	var soonest *time.Time
	for i := range l.Pools {
		p := &l.Pools[i]
		if !p.Locked || p.LockExpiresAt == nil {
			continue
		}
		if soonest == nil || p.LockExpiresAt.Before(*soonest) {
			soonest = p.LockExpiresAt
		}
	}
	return soonest
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
