package model

import "time"

// ScanRecord is a stored scan as the history store returns it.
type ScanRecord struct {
	// ID matches the SecurityCheck ID of the stored bundle.
	ID string `json:"id"`

	TokenAddress  string    `json:"token_address"`
	RiskScore     int       `json:"risk_score"`
	RiskLevel     RiskLevel `json:"risk_level"`
	SecurityScore int       `json:"security_score"`

	PassedChecks  int `json:"passed_checks"`
	FailedChecks  int `json:"failed_checks"`
	WarningChecks int `json:"warning_checks"`
	TotalChecks   int `json:"total_checks"`

	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`

	// Bundle is the full stored scan. Omitted by listing queries.
	Bundle *ScanBundle `json:"bundle,omitempty"`
}

// FindingDelta records how one check changed between two scans.
type FindingDelta struct {
	CheckType CheckType `json:"check_type"`

	BaseResult CheckResult `json:"base_result"`
	HeadResult CheckResult `json:"head_result"`

	BaseSeverity Severity `json:"base_severity"`
	HeadSeverity Severity `json:"head_severity"`

	// Direction is "regressed", "improved" or "changed" (result moved
	// without a clear ordering, e.g. into not_applicable).
	Direction string `json:"direction"`
}

// DiffChunk is a single change chunk of the rendered summary diff.
type DiffChunk struct {
	// Type is "added", "removed" or "unchanged".
	Type    string `json:"type"`
	Content string `json:"content"`
}

// DriftReport compares the two most recent scans of a token.
type DriftReport struct {
	TokenAddress string `json:"token_address"`

	BaseScanID string `json:"base_scan_id"`
	HeadScanID string `json:"head_scan_id"`

	BaseCompletedAt time.Time `json:"base_completed_at"`
	HeadCompletedAt time.Time `json:"head_completed_at"`

	// ScoreDelta is head risk score minus base risk score; positive means
	// the token got riskier.
	ScoreDelta int `json:"score_delta"`

	BaseRiskLevel RiskLevel `json:"base_risk_level"`
	HeadRiskLevel RiskLevel `json:"head_risk_level"`

	// Regressed is set when the score rose or any check moved to a worse
	// result or severity.
	Regressed bool `json:"regressed"`

	Changes []FindingDelta `json:"changes,omitempty"`

	// SummaryDiff is a chunked text diff of the rendered scan summaries.
	SummaryDiff []DiffChunk `json:"summary_diff,omitempty"`
}
