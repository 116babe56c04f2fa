package history_test

import (
	"context"
	"testing"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
)

// ─── Drift preconditions ────────────────────────────────────────────────

func TestDrift_NeedsTwoScans(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx := context.Background()

	report, err := store.Drift(ctx, testMint)
	if err != nil || report != nil {
		t.Fatalf("empty store: got (%v, %v), want (nil, nil)", report, err)
	}

	if err := store.Save(ctx, testBundle(1, 12)); err != nil {
		t.Fatalf("save: %v", err)
	}
	report, err = store.Drift(ctx, testMint)
	if err != nil || report != nil {
		t.Fatalf("single scan: got (%v, %v), want (nil, nil)", report, err)
	}
}

// ─── Regressions ────────────────────────────────────────────────────────

func TestDrift_ReportsRegression(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx := context.Background()

	// Base scan is healthy; the newer one has an active mint authority.
	if err := store.Save(ctx, testBundle(1, 12)); err != nil {
		t.Fatalf("save base: %v", err)
	}
	if err := store.Save(ctx, testBundle(2, 71)); err != nil {
		t.Fatalf("save head: %v", err)
	}

	report, err := store.Drift(ctx, testMint)
	if err != nil {
		t.Fatalf("drift: %v", err)
	}
	if report == nil {
		t.Fatal("drift returned nil with two scans stored")
	}

	if report.BaseScanID != "scan-1" || report.HeadScanID != "scan-2" {
		t.Errorf("scan IDs = %q/%q, want scan-1/scan-2", report.BaseScanID, report.HeadScanID)
	}
	if report.ScoreDelta != 59 {
		t.Errorf("score delta = %d, want 59", report.ScoreDelta)
	}
	if report.BaseRiskLevel != model.RiskLow || report.HeadRiskLevel != model.RiskHigh {
		t.Errorf("levels = %q -> %q, want low -> high", report.BaseRiskLevel, report.HeadRiskLevel)
	}
	if !report.Regressed {
		t.Error("rising score was not flagged as regression")
	}

	if len(report.Changes) != 1 {
		t.Fatalf("got %d changes, want 1: %+v", len(report.Changes), report.Changes)
	}
	delta := report.Changes[0]
	if delta.CheckType != model.CheckMintAuthority {
		t.Errorf("changed check = %q, want mint_authority", delta.CheckType)
	}
	if delta.BaseResult != model.ResultPassed || delta.HeadResult != model.ResultFailed {
		t.Errorf("results = %q -> %q, want passed -> failed", delta.BaseResult, delta.HeadResult)
	}
	if delta.Direction != "regressed" {
		t.Errorf("direction = %q, want regressed", delta.Direction)
	}

	if len(report.SummaryDiff) == 0 {
		t.Fatal("summary diff is empty for differing scans")
	}
	var added, removed bool
	for _, chunk := range report.SummaryDiff {
		switch chunk.Type {
		case "added":
			added = true
		case "removed":
			removed = true
		case "unchanged":
		default:
			t.Errorf("unknown chunk type %q", chunk.Type)
		}
	}
	if !added || !removed {
		t.Error("summary diff lacks added/removed chunks")
	}
}

func TestDrift_ImprovementIsNotRegression(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testBundle(1, 71)); err != nil {
		t.Fatalf("save base: %v", err)
	}
	if err := store.Save(ctx, testBundle(2, 12)); err != nil {
		t.Fatalf("save head: %v", err)
	}

	report, err := store.Drift(ctx, testMint)
	if err != nil {
		t.Fatalf("drift: %v", err)
	}
	if report.ScoreDelta != -59 {
		t.Errorf("score delta = %d, want -59", report.ScoreDelta)
	}
	if report.Regressed {
		t.Error("improving score flagged as regression")
	}
	if len(report.Changes) != 1 || report.Changes[0].Direction != "improved" {
		t.Errorf("changes = %+v, want one improved mint_authority delta", report.Changes)
	}
}

func TestDrift_IdenticalScansHaveNoChanges(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testBundle(1, 12)); err != nil {
		t.Fatalf("save base: %v", err)
	}
	if err := store.Save(ctx, testBundle(2, 12)); err != nil {
		t.Fatalf("save head: %v", err)
	}

	report, err := store.Drift(ctx, testMint)
	if err != nil {
		t.Fatalf("drift: %v", err)
	}
	if report.ScoreDelta != 0 || report.Regressed {
		t.Errorf("identical scans: delta=%d regressed=%v", report.ScoreDelta, report.Regressed)
	}
	if len(report.Changes) != 0 {
		t.Errorf("identical scans produced deltas: %+v", report.Changes)
	}
	if len(report.SummaryDiff) != 0 {
		t.Errorf("identical summaries produced a diff: %+v", report.SummaryDiff)
	}
}

// ─── Moves into not_applicable ──────────────────────────────────────────

func TestDrift_SkippedCheckIsChangedNotRegressed(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testBundle(1, 12)); err != nil {
		t.Fatalf("save base: %v", err)
	}

	head := testBundle(2, 12)
	for i := range head.Check.Findings {
		if head.Check.Findings[i].CheckType == model.CheckLiquidityLock {
			head.Check.Findings[i].Result = model.ResultNotApplicable
		}
	}
	head.Check.PassedChecks = 4
	if err := store.Save(ctx, head); err != nil {
		t.Fatalf("save head: %v", err)
	}

	report, err := store.Drift(ctx, testMint)
	if err != nil {
		t.Fatalf("drift: %v", err)
	}
	if report.Regressed {
		t.Error("skip flagged as regression")
	}
	if len(report.Changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(report.Changes))
	}
	delta := report.Changes[0]
	if delta.CheckType != model.CheckLiquidityLock || delta.Direction != "changed" {
		t.Errorf("delta = %+v, want changed liquidity_lock", delta)
	}
}

// ─── Drift ignores other tokens ─────────────────────────────────────────

func TestDrift_ScopedToToken(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx := context.Background()

	other := testBundle(1, 40)
	other.Check.TokenAddress = "OtherMint11111111111111111111111111111111111"
	if err := store.Save(ctx, other); err != nil {
		t.Fatalf("save other: %v", err)
	}
	if err := store.Save(ctx, testBundle(2, 12)); err != nil {
		t.Fatalf("save: %v", err)
	}

	report, err := store.Drift(ctx, testMint)
	if err != nil || report != nil {
		t.Fatalf("one scan per token: got (%v, %v), want (nil, nil)", report, err)
	}
}
