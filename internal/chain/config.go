package chain

import "time"

// Config controls the JSON-RPC client.
type Config struct {
	// Endpoint is the node's JSON-RPC URL.
	Endpoint string

	// Commitment level for queries: processed, confirmed or finalized.
	Commitment string

	// Timeout bounds one RPC round trip.
	Timeout time.Duration

	// MaxRetries is how many times a transient transport failure is retried.
	// Node-level errors (invalid params, unknown account) are never retried.
	MaxRetries int

	// RetryBackoff is the delay before the first retry, doubled per attempt.
	RetryBackoff time.Duration
}

// DefaultConfig returns production defaults against mainnet.
func DefaultConfig() Config {
	return Config{
		Endpoint:     "https://api.mainnet-beta.solana.com",
		Commitment:   "finalized",
		Timeout:      10 * time.Second,
		MaxRetries:   2,
		RetryBackoff: 250 * time.Millisecond,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Endpoint == "" {
		c.Endpoint = def.Endpoint
	}
	if c.Commitment == "" {
		c.Commitment = def.Commitment
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = def.RetryBackoff
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	return c
}
