package risk_test

import (
	"testing"
	"time"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/risk"
)

var scoreNow = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

func lockedPool(usd float64, expiresAt time.Time) model.Pool {
	return model.Pool{
		Address:       "Pool1111111111111111111111111111",
		Dex:           "raydium",
		LiquidityUsd:  usd,
		Locked:        true,
		LockExpiresAt: &expiresAt,
	}
}

// ─── Risk levels ────────────────────────────────────────────────────────

func TestLevelFor_Boundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score int
		want  model.RiskLevel
	}{
		{0, model.RiskLow},
		{24, model.RiskLow},
		{25, model.RiskMedium},
		{49, model.RiskMedium},
		{50, model.RiskHigh},
		{74, model.RiskHigh},
		{75, model.RiskCritical},
		{100, model.RiskCritical},
	}
	for _, tc := range cases {
		if got := risk.LevelFor(tc.score); got != tc.want {
			t.Errorf("LevelFor(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

// ─── Sub-scores ─────────────────────────────────────────────────────────

func TestOwnershipRisk_Tiers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		canMint    bool
		canFreeze  bool
		canUpdate  bool
		creatorPct float64
		want       int
	}{
		{"fully renounced", false, false, false, 0, 0},
		{"mintable only", true, false, false, 0, 40},
		{"freezable only", false, true, false, 0, 30},
		{"both authorities", true, true, false, 0, 70},
		{"update active", false, false, true, 0, 10},
		{"creator majority", false, false, false, 51, 20},
		{"creator quarter", false, false, false, 25, 10},
		{"creator at half", false, false, false, 50, 10},
		{"creator below quarter", false, false, false, 24.9, 0},
		{"everything", true, true, true, 90, 100},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			in := risk.Input{Authority: &model.AuthorityAnalysis{
				CanMint:            tc.canMint,
				CanFreeze:          tc.canFreeze,
				CanUpdate:          tc.canUpdate,
				CreatorHoldingsPct: tc.creatorPct,
			}}
			if got := risk.OwnershipRisk(in); got != tc.want {
				t.Errorf("OwnershipRisk = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestOwnershipRisk_SkippedSubChecks(t *testing.T) {
	t.Parallel()

	auth := &model.AuthorityAnalysis{CanMint: true, CanFreeze: true}

	in := risk.Input{
		Authority: auth,
		Skipped:   map[model.CheckType]bool{model.CheckMintAuthority: true},
	}
	if got := risk.OwnershipRisk(in); got != 30 {
		t.Errorf("ownership with mint skipped = %d, want 30", got)
	}

	in.Skipped = map[model.CheckType]bool{model.CheckFreezeAuthority: true}
	if got := risk.OwnershipRisk(in); got != 40 {
		t.Errorf("ownership with freeze skipped = %d, want 40", got)
	}
}

func TestConcentrationRisk_Tiers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		largest float64
		top10   float64
		holders int
		want    int
	}{
		{"dust holder, many wallets", 5, 8, 5000, 0},
		{"largest just above ten", 10.5, 15, 5000, 25},
		{"largest above quarter", 30, 40, 5000, 50},
		{"largest above half", 60, 50, 5000, 80},
		{"largest above eighty", 85, 90, 5000, 100},
		{"top ten above half", 5, 55, 5000, 10},
		{"top ten above three quarters", 5, 80, 5000, 15},
		{"top ten above ninety", 5, 95, 5000, 20},
		{"few holders", 5, 8, 400, 10},
		{"very few holders", 5, 8, 50, 20},
		{"worst case clamps", 90, 95, 3, 100},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := &model.HolderConcentration{
				LargestHolderPct: tc.largest,
				Top10Pct:         tc.top10,
				TotalHolders:     tc.holders,
			}
			if got := risk.ConcentrationRisk(h); got != tc.want {
				t.Errorf("ConcentrationRisk = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestLiquidityRisk_Tiers(t *testing.T) {
	t.Parallel()

	farExpiry := scoreNow.Add(400 * 24 * time.Hour)
	nearExpiry := scoreNow.Add(10 * 24 * time.Hour)

	cases := []struct {
		name string
		l    *model.LiquidityAnalysis
		want int
	}{
		{
			"zero liquidity short-circuits",
			&model.LiquidityAnalysis{TotalLiquidityUsd: 0},
			100,
		},
		{
			"fully locked far out",
			&model.LiquidityAnalysis{
				TotalLiquidityUsd: 200_000,
				LockedPct:         100,
				IsLocked:          true,
				Pools:             []model.Pool{lockedPool(200_000, farExpiry)},
			},
			0,
		},
		{
			"unlocked and large",
			&model.LiquidityAnalysis{TotalLiquidityUsd: 200_000, LockedPct: 0},
			60,
		},
		{
			"under half locked",
			&model.LiquidityAnalysis{TotalLiquidityUsd: 200_000, LockedPct: 40, IsLocked: true},
			40,
		},
		{
			"under eighty locked",
			&model.LiquidityAnalysis{TotalLiquidityUsd: 200_000, LockedPct: 70, IsLocked: true},
			20,
		},
		{
			"lock expiring soon",
			&model.LiquidityAnalysis{
				TotalLiquidityUsd: 200_000,
				LockedPct:         100,
				IsLocked:          true,
				Pools:             []model.Pool{lockedPool(200_000, nearExpiry)},
			},
			20,
		},
		{
			"thin ratio",
			&model.LiquidityAnalysis{TotalLiquidityUsd: 200_000, LockedPct: 100, IsLocked: true, LiquidityRatio: 0.01},
			20,
		},
		{
			"unknown market cap adds nothing",
			&model.LiquidityAnalysis{TotalLiquidityUsd: 200_000, LockedPct: 100, IsLocked: true, LiquidityRatio: 0},
			0,
		},
		{
			"tiny pool",
			&model.LiquidityAnalysis{TotalLiquidityUsd: 5_000, LockedPct: 100, IsLocked: true},
			30,
		},
		{
			"small pool",
			&model.LiquidityAnalysis{TotalLiquidityUsd: 30_000, LockedPct: 100, IsLocked: true},
			15,
		},
		{
			"everything wrong clamps",
			&model.LiquidityAnalysis{TotalLiquidityUsd: 5_000, LockedPct: 0, LiquidityRatio: 0.001},
			100,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := risk.LiquidityRisk(tc.l, scoreNow); got != tc.want {
				t.Errorf("LiquidityRisk = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestHoneypotRisk(t *testing.T) {
	t.Parallel()

	if got := risk.HoneypotRisk(&model.HoneypotCheck{IsHoneypot: true}); got != 100 {
		t.Errorf("honeypot risk = %d, want 100", got)
	}
	if got := risk.HoneypotRisk(&model.HoneypotCheck{IsHoneypot: false}); got != 0 {
		t.Errorf("non-honeypot risk = %d, want 0", got)
	}
	if got := risk.HoneypotRisk(nil); got != 0 {
		t.Errorf("skipped honeypot risk = %d, want 0", got)
	}
}

// ─── Aggregation scenarios ──────────────────────────────────────────────

// Mint authority active, freeze renounced, healthy distribution, $200k fully
// locked 400 days out, sellable: only ownership contributes.
func TestAggregate_ScenarioHealthyButMintable(t *testing.T) {
	t.Parallel()

	in := risk.Input{
		Authority: &model.AuthorityAnalysis{CanMint: true, CanFreeze: false},
		Holders: &model.HolderConcentration{
			LargestHolderPct: 10,
			Top10Pct:         20,
			TotalHolders:     5000,
		},
		Liquidity: &model.LiquidityAnalysis{
			TotalLiquidityUsd: 200_000,
			LockedPct:         100,
			IsLocked:          true,
			Pools:             []model.Pool{lockedPool(200_000, scoreNow.Add(400*24*time.Hour))},
		},
		Honeypot: &model.HoneypotCheck{CanBuy: true, CanSell: true, TradingEnabled: true},
		Now:      scoreNow,
	}

	b := risk.Aggregate(in)
	if b.OwnershipRisk != 40 || b.ConcentrationRisk != 0 || b.LiquidityRisk != 0 || b.HoneypotRisk != 0 {
		t.Fatalf("sub-scores = %d/%d/%d/%d, want 40/0/0/0",
			b.OwnershipRisk, b.ConcentrationRisk, b.LiquidityRisk, b.HoneypotRisk)
	}
	if b.OverallScore != 12 {
		t.Errorf("overall = %d, want 12", b.OverallScore)
	}
	if b.RiskLevel != model.RiskLow {
		t.Errorf("risk level = %s, want low", b.RiskLevel)
	}
	if b.SecurityScore != 88 {
		t.Errorf("security score = %d, want 88", b.SecurityScore)
	}
}

// Both authorities active, majority holder, no liquidity at all.
func TestAggregate_ScenarioRisky(t *testing.T) {
	t.Parallel()

	in := risk.Input{
		Authority: &model.AuthorityAnalysis{CanMint: true, CanFreeze: true},
		Holders: &model.HolderConcentration{
			LargestHolderPct: 60,
			Top10Pct:         50,
			TotalHolders:     5000,
			IsConcentrated:   true,
		},
		Liquidity: &model.LiquidityAnalysis{TotalLiquidityUsd: 0},
		Honeypot:  &model.HoneypotCheck{CanBuy: true, CanSell: true, TradingEnabled: true},
		Now:       scoreNow,
	}

	b := risk.Aggregate(in)
	if b.OwnershipRisk != 70 || b.ConcentrationRisk != 80 || b.LiquidityRisk != 100 || b.HoneypotRisk != 0 {
		t.Fatalf("sub-scores = %d/%d/%d/%d, want 70/80/100/0",
			b.OwnershipRisk, b.ConcentrationRisk, b.LiquidityRisk, b.HoneypotRisk)
	}
	if b.OverallScore != 71 {
		t.Errorf("overall = %d, want 71", b.OverallScore)
	}
	if b.RiskLevel != model.RiskHigh {
		t.Errorf("risk level = %s, want high", b.RiskLevel)
	}
}

// A honeypot verdict contributes its full weight regardless of other inputs.
func TestAggregate_ScenarioHoneypot(t *testing.T) {
	t.Parallel()

	in := risk.Input{
		Authority: &model.AuthorityAnalysis{},
		Holders:   &model.HolderConcentration{TotalHolders: 5000},
		Liquidity: &model.LiquidityAnalysis{
			TotalLiquidityUsd: 200_000,
			LockedPct:         100,
			IsLocked:          true,
		},
		Honeypot: &model.HoneypotCheck{IsHoneypot: true, CanBuy: true, CanSell: false, TradingEnabled: true},
		Now:      scoreNow,
	}

	b := risk.Aggregate(in)
	if b.HoneypotRisk != 100 {
		t.Fatalf("honeypot risk = %d, want 100", b.HoneypotRisk)
	}
	if b.OverallScore != 15 {
		t.Errorf("overall = %d, want 15 (honeypot weight alone)", b.OverallScore)
	}
}

func TestAggregate_SkippedChecksContributeZero(t *testing.T) {
	t.Parallel()

	in := risk.Input{
		Skipped: map[model.CheckType]bool{
			model.CheckHoneypot:            true,
			model.CheckMintAuthority:       true,
			model.CheckFreezeAuthority:     true,
			model.CheckHolderConcentration: true,
			model.CheckLiquidityLock:       true,
		},
		Now: scoreNow,
	}

	b := risk.Aggregate(in)
	if b.OverallScore != 0 {
		t.Errorf("overall with everything skipped = %d, want 0", b.OverallScore)
	}
	if b.SecurityScore != 100 {
		t.Errorf("security score = %d, want 100", b.SecurityScore)
	}
	if b.RiskLevel != model.RiskLow {
		t.Errorf("risk level = %s, want low", b.RiskLevel)
	}
}

func TestAggregate_SecurityScoreComplement(t *testing.T) {
	t.Parallel()

	// Sweep a few representative inputs and check the complement invariant.
	inputs := []risk.Input{
		{Authority: &model.AuthorityAnalysis{CanMint: true}, Now: scoreNow},
		{Liquidity: &model.LiquidityAnalysis{}, Now: scoreNow},
		{Honeypot: &model.HoneypotCheck{IsHoneypot: true}, Now: scoreNow},
		{
			Authority: &model.AuthorityAnalysis{CanMint: true, CanFreeze: true, CreatorHoldingsPct: 90},
			Holders:   &model.HolderConcentration{LargestHolderPct: 95, Top10Pct: 99, TotalHolders: 4},
			Liquidity: &model.LiquidityAnalysis{},
			Honeypot:  &model.HoneypotCheck{IsHoneypot: true},
			Now:       scoreNow,
		},
	}
	for i, in := range inputs {
		b := risk.Aggregate(in)
		if b.OverallScore < 0 || b.OverallScore > 100 {
			t.Errorf("input %d: overall %d out of range", i, b.OverallScore)
		}
		if b.SecurityScore != 100-b.OverallScore {
			t.Errorf("input %d: security %d != 100 - %d", i, b.SecurityScore, b.OverallScore)
		}
		if b.RiskLevel != risk.LevelFor(b.OverallScore) {
			t.Errorf("input %d: level %s does not match score %d", i, b.RiskLevel, b.OverallScore)
		}
	}
}
