package server

// ScanRequest is the payload for starting a token scan.
type ScanRequest struct {
	TokenAddress string `json:"token_address" example:"So11111111111111111111111111111111111111112"`

	// MarketCapUsd, when positive, overrides the source-reported market cap
	// for the liquidity ratio.
	MarketCapUsd float64 `json:"market_cap_usd,omitempty" example:"1500000"`

	// SkipChecks lists check types to exclude from the scan.
	SkipChecks []string `json:"skip_checks,omitempty" example:"liquidity_lock"`

	// UseCache defaults to true; set false to force a fresh scan.
	UseCache *bool `json:"use_cache,omitempty" example:"true"`
}

// HealthResponse is the health probe payload.
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version" example:"0.3.1"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"not found"`
}
