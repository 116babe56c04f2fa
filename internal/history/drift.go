package history

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
)

// resultRank orders outcomes from best to worst. not_applicable is absent on
// purpose: moves in or out of it have no ordering.
var resultRank = map[model.CheckResult]int{
	model.ResultPassed:  0,
	model.ResultWarning: 1,
	model.ResultFailed:  2,
}

// compare builds the drift report between two stored scans. base is the older
// scan, head the newer one.
func compare(tokenAddress string, base, head *model.ScanRecord) *model.DriftReport {
	report := &model.DriftReport{
		TokenAddress:    tokenAddress,
		BaseScanID:      base.ID,
		HeadScanID:      head.ID,
		BaseCompletedAt: base.CompletedAt,
		HeadCompletedAt: head.CompletedAt,
		ScoreDelta:      head.RiskScore - base.RiskScore,
		BaseRiskLevel:   base.RiskLevel,
		HeadRiskLevel:   head.RiskLevel,
	}

	report.Changes = findingDeltas(base.Bundle, head.Bundle)
	report.Regressed = report.ScoreDelta > 0
	for _, delta := range report.Changes {
		if delta.Direction == "regressed" {
			report.Regressed = true
		}
	}

	report.SummaryDiff = diffChunks(renderSummary(base.Bundle), renderSummary(head.Bundle))
	return report
}

// findingDeltas lists the checks whose result or severity moved between the
// two bundles, in canonical check order.
func findingDeltas(base, head *model.ScanBundle) []model.FindingDelta {
	baseFindings := findingsByType(base)
	headFindings := findingsByType(head)

	var deltas []model.FindingDelta
	for _, ct := range model.AllCheckTypes() {
		bf, bok := baseFindings[ct]
		hf, hok := headFindings[ct]
		if !bok || !hok {
			continue
		}
		if bf.Result == hf.Result && bf.Severity == hf.Severity {
			continue
		}
		deltas = append(deltas, model.FindingDelta{
			CheckType:    ct,
			BaseResult:   bf.Result,
			HeadResult:   hf.Result,
			BaseSeverity: bf.Severity,
			HeadSeverity: hf.Severity,
			Direction:    direction(bf, hf),
		})
	}
	return deltas
}

func direction(base, head model.SecurityFinding) string {
	baseRank, baseOrdered := resultRank[base.Result]
	headRank, headOrdered := resultRank[head.Result]
	if !baseOrdered || !headOrdered {
		return "changed"
	}
	switch {
	case headRank > baseRank:
		return "regressed"
	case headRank < baseRank:
		return "improved"
	case head.Severity.WorseThan(base.Severity):
		return "regressed"
	case base.Severity.WorseThan(head.Severity):
		return "improved"
	default:
		return "changed"
	}
}

func findingsByType(bundle *model.ScanBundle) map[model.CheckType]model.SecurityFinding {
	out := make(map[model.CheckType]model.SecurityFinding)
	if bundle == nil || bundle.Check == nil {
		return out
	}
	for _, f := range bundle.Check.Findings {
		out[f.CheckType] = f
	}
	return out
}

// renderSummary flattens a bundle into stable plain text so two scans can be
// diffed line by line. Volatile fields (IDs, timestamps) are left out.
func renderSummary(bundle *model.ScanBundle) string {
	if bundle == nil || bundle.Check == nil {
		return ""
	}
	check := bundle.Check

	var b strings.Builder
	fmt.Fprintf(&b, "token %s\n", check.TokenAddress)
	fmt.Fprintf(&b, "risk %d (%s), security %d\n", check.RiskScore, check.RiskLevel, check.SecurityScore)
	fmt.Fprintf(&b, "checks: %d passed, %d failed, %d warnings of %d\n",
		check.PassedChecks, check.FailedChecks, check.WarningChecks, check.TotalChecks)
	for _, f := range check.Findings {
		fmt.Fprintf(&b, "%s: %s [%s] %s\n", f.CheckType, f.Result, f.Severity, f.Title)
	}

	if a := bundle.Authority; a != nil {
		fmt.Fprintf(&b, "authority: mint=%v freeze=%v creator=%.2f%%\n",
			a.CanMint, a.CanFreeze, a.CreatorHoldingsPct)
	}
	if h := bundle.Holders; h != nil {
		fmt.Fprintf(&b, "holders: %d total, largest %.2f%%, top10 %.2f%%\n",
			h.TotalHolders, h.LargestHolderPct, h.Top10Pct)
	}
	if l := bundle.Liquidity; l != nil {
		fmt.Fprintf(&b, "liquidity: $%.2f total, %.2f%% locked across %d pools\n",
			l.TotalLiquidityUsd, l.LockedPct, len(l.Pools))
	}
	if hp := bundle.Honeypot; hp != nil {
		fmt.Fprintf(&b, "honeypot: %v (sell tax %.2f%%)\n", hp.IsHoneypot, hp.SellTax)
	}
	return b.String()
}

// diffChunks computes a semantic text diff between the rendered summaries.
func diffChunks(base, head string) []model.DiffChunk {
	if base == head {
		return nil
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(base, head, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var chunks []model.DiffChunk
	for _, d := range diffs {
		var chunkType string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			chunkType = "added"
		case diffmatchpatch.DiffDelete:
			chunkType = "removed"
		case diffmatchpatch.DiffEqual:
			chunkType = "unchanged"
		}
		if strings.TrimSpace(d.Text) == "" {
			continue
		}
		chunks = append(chunks, model.DiffChunk{Type: chunkType, Content: d.Text})
	}
	return chunks
}
