package model

import "time"

// AuthorityAnalysis is the ownership picture of a mint: which authorities are
// still active and how much of the observed supply the creator retains.
type AuthorityAnalysis struct {
	TokenAddress string `json:"token_address"`

	// OwnerAddress is the active mint authority when one exists, otherwise
	// the active freeze authority, otherwise empty.
	OwnerAddress string `json:"owner_address,omitempty"`

	CanMint   bool `json:"can_mint"`
	CanFreeze bool `json:"can_freeze"`

	// CanUpdate tracks the metadata update authority. Always false until a
	// metadata-program lookup is implemented; kept in the model so the risk
	// policy and findings already account for it.
	CanUpdate bool `json:"can_update"`

	// CreatorHoldingsPct is the share of observed supply held by the active
	// authority, in [0,100]. Zero when every authority is renounced.
	CreatorHoldingsPct float64 `json:"creator_holdings_pct"`

	// MintRenounced is always the negation of CanMint, and symmetrically for
	// freeze and update. Kept explicit because the fields serialize.
	MintRenounced   bool `json:"mint_renounced"`
	FreezeRenounced bool `json:"freeze_renounced"`
	UpdateRenounced bool `json:"update_renounced"`

	AnalyzedAt time.Time `json:"analyzed_at"`
}

// IsRenounced reports whether the mint is fully decentralized: both mint and
// freeze authority given up.
func (a *AuthorityAnalysis) IsRenounced() bool {
	return a.MintRenounced && a.FreezeRenounced
}

// TopHolder is one entry of the holder leaderboard.
type TopHolder struct {
	Address string `json:"address"`

	// Balance is the UI amount (raw amount shifted by the mint's decimals).
	Balance float64 `json:"balance"`

	// Pct is this holder's share of the summed observed balances.
	Pct float64 `json:"pct"`

	// IsContract marks executable accounts (programs holding the token).
	IsContract bool `json:"is_contract"`

	// Label is an informational tag for well-known addresses (dex vaults,
	// lockers, burn sinks). Empty for unknown addresses.
	Label string `json:"label,omitempty"`
}

// HolderConcentration describes how the observed supply is distributed.
// Percentages are computed against the sum of enumerated balances, not the
// full circulating supply; the enumeration is bounded.
type HolderConcentration struct {
	TokenAddress string `json:"token_address"`

	TotalHolders int `json:"total_holders"`

	// Prefix concentration: share held by the top 10/20/50 holders.
	// Top10Pct <= Top20Pct <= Top50Pct <= 100 always holds.
	Top10Pct float64 `json:"top10_pct"`
	Top20Pct float64 `json:"top20_pct"`
	Top50Pct float64 `json:"top50_pct"`

	LargestHolderPct     float64 `json:"largest_holder_pct"`
	LargestHolderAddress string  `json:"largest_holder_address,omitempty"`

	// IsConcentrated flags dangerous distributions: largest holder above 50%
	// or top ten above 75%.
	IsConcentrated bool `json:"is_concentrated"`

	// TopHolders lists at most 50 holders, largest first.
	TopHolders []TopHolder `json:"top_holders,omitempty"`

	AnalyzedAt time.Time `json:"analyzed_at"`
}

// Pool is one liquidity pool trading the token on some DEX.
type Pool struct {
	Address   string `json:"address"`
	Dex       string `json:"dex"`
	BaseMint  string `json:"base_mint"`
	QuoteMint string `json:"quote_mint,omitempty"`

	LiquidityUsd    float64 `json:"liquidity_usd"`
	LiquidityNative float64 `json:"liquidity_native"`
	PriceUsd        float64 `json:"price_usd,omitempty"`
	Volume24hUsd    float64 `json:"volume_24h_usd,omitempty"`
	MarketCapUsd    float64 `json:"market_cap_usd,omitempty"`

	// LpCustodian is the address holding the pool's LP tokens when the
	// source reports one. Lock detection checks it against the verified
	// locker allowlist and burn addresses.
	LpCustodian   string     `json:"lp_custodian,omitempty"`
	Locked        bool       `json:"locked"`
	LockExpiresAt *time.Time `json:"lock_expires_at,omitempty"`
}

// LiquidityAnalysis aggregates pool liquidity and lock state for the token.
type LiquidityAnalysis struct {
	TokenAddress string `json:"token_address"`

	TotalLiquidityUsd    float64 `json:"total_liquidity_usd"`
	TotalLiquidityNative float64 `json:"total_liquidity_native"`

	// IsLocked is true exactly when LockedPct > 0.
	IsLocked  bool    `json:"is_locked"`
	LockedPct float64 `json:"locked_pct"`

	// LockExpiresAt is the furthest future expiry among locked pools. The
	// risk policy separately considers the soonest expiry.
	LockExpiresAt *time.Time `json:"lock_expires_at,omitempty"`

	Pools []Pool `json:"pools,omitempty"`

	// LiquidityRatio is liquidity divided by market cap, 0 when the market
	// cap is unknown.
	LiquidityRatio float64 `json:"liquidity_ratio"`

	AnalyzedAt time.Time `json:"analyzed_at"`
}

// SimulationResult records what the buy/sell dry-run actually did. Success
// false with both legs unsimulated means the probe never ran (degraded).
type SimulationResult struct {
	Success       bool   `json:"success"`
	BuySimulated  bool   `json:"buy_simulated"`
	SellSimulated bool   `json:"sell_simulated"`
	Error         string `json:"error,omitempty"`
}

// HoneypotCheck is the sellability verdict for a token. IsHoneypot is derived
// from the other fields by a fixed rule, never set independently.
type HoneypotCheck struct {
	TokenAddress string `json:"token_address"`

	IsHoneypot bool `json:"is_honeypot"`
	CanBuy     bool `json:"can_buy"`
	CanSell    bool `json:"can_sell"`

	// Taxes are percentages in [0,100].
	BuyTax  float64 `json:"buy_tax"`
	SellTax float64 `json:"sell_tax"`

	TradingEnabled bool `json:"trading_enabled"`
	HasBlacklist   bool `json:"has_blacklist"`
	HasWhitelist   bool `json:"has_whitelist"`

	SimulationResult SimulationResult `json:"simulation_result"`

	AnalyzedAt time.Time `json:"analyzed_at"`
}
