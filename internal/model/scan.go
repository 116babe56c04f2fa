package model

import (
	"fmt"
	"time"
)

// CheckType identifies one of the five security checks. The set is closed:
// skip lists and findings only ever use these values.
type CheckType string

const (
	CheckHoneypot            CheckType = "honeypot"
	CheckMintAuthority       CheckType = "mint_authority"
	CheckFreezeAuthority     CheckType = "freeze_authority"
	CheckHolderConcentration CheckType = "holder_concentration"
	CheckLiquidityLock       CheckType = "liquidity_lock"
)

// AllCheckTypes returns the five check types in canonical finding order.
func AllCheckTypes() []CheckType {
	return []CheckType{
		CheckHoneypot,
		CheckMintAuthority,
		CheckFreezeAuthority,
		CheckHolderConcentration,
		CheckLiquidityLock,
	}
}

// ParseCheckType validates a raw string against the closed set.
func ParseCheckType(s string) (CheckType, error) {
	switch CheckType(s) {
	case CheckHoneypot, CheckMintAuthority, CheckFreezeAuthority,
		CheckHolderConcentration, CheckLiquidityLock:
		return CheckType(s), nil
	}
	return "", fmt.Errorf("unknown check type %q", s)
}

// RiskLevel is the four-tier classification derived from the risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Severity tags a finding. Ordered info < low < medium < high < critical.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// severityRank supports ordering comparisons between severities.
var severityRank = map[Severity]int{
	SeverityInfo:     0,
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// WorseThan reports whether s is a more severe tag than other.
func (s Severity) WorseThan(other Severity) bool {
	return severityRank[s] > severityRank[other]
}

// CheckResult is the outcome category of a single finding.
type CheckResult string

const (
	ResultPassed        CheckResult = "passed"
	ResultFailed        CheckResult = "failed"
	ResultWarning       CheckResult = "warning"
	ResultNotApplicable CheckResult = "not_applicable"
)

// ScanStatus is the lifecycle state of a scan.
type ScanStatus string

const (
	StatusPending   ScanStatus = "pending"
	StatusRunning   ScanStatus = "running"
	StatusCompleted ScanStatus = "completed"
	StatusFailed    ScanStatus = "failed"
)

// CanTransition reports whether the status machine allows moving to next.
// pending -> running -> {completed, failed}; terminal states are final.
func (s ScanStatus) CanTransition(next ScanStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusRunning
	case StatusRunning:
		return next == StatusCompleted || next == StatusFailed
	default:
		return false
	}
}

// SecurityFinding is one human-readable, severity-tagged check outcome.
// Immutable once created; exactly one finding exists per check category.
type SecurityFinding struct {
	ID        string    `json:"id"`
	CheckType CheckType `json:"check_type"`

	Severity Severity    `json:"severity"`
	Result   CheckResult `json:"result"`

	Title       string `json:"title"`
	Description string `json:"description"`

	// Details carries check-specific numbers for the presentation layer.
	Details map[string]interface{} `json:"details,omitempty"`

	Recommendation string `json:"recommendation,omitempty"`

	DetectedAt time.Time `json:"detected_at"`
}

// SecurityCheck is the aggregated scan result handed to callers.
type SecurityCheck struct {
	ID           string `json:"id"`
	TokenAddress string `json:"token_address"`

	RiskLevel RiskLevel `json:"risk_level"`

	// RiskScore is the weighted overall score in [0,100].
	// SecurityScore is always 100 - RiskScore.
	RiskScore     int `json:"risk_score"`
	SecurityScore int `json:"security_score"`

	Status ScanStatus `json:"status"`

	Findings []SecurityFinding `json:"findings"`

	// passed + failed + warning <= total == len(Findings); the slack is
	// not_applicable findings from skipped checks.
	PassedChecks  int `json:"passed_checks"`
	FailedChecks  int `json:"failed_checks"`
	WarningChecks int `json:"warning_checks"`
	TotalChecks   int `json:"total_checks"`

	// DegradedChecks names the checks whose analyzer failed and was replaced
	// by its conservative default.
	DegradedChecks []CheckType `json:"degraded_checks,omitempty"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ScanBundle is the complete serializable scan output: the aggregated check
// plus each analyzer's structured result. Analysis slots are nil only for
// skipped checks.
type ScanBundle struct {
	Check     *SecurityCheck       `json:"check"`
	Authority *AuthorityAnalysis   `json:"authority,omitempty"`
	Holders   *HolderConcentration `json:"holders,omitempty"`
	Liquidity *LiquidityAnalysis   `json:"liquidity,omitempty"`
	Honeypot  *HoneypotCheck       `json:"honeypot,omitempty"`
}
