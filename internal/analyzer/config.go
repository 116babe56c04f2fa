// Package analyzer implements the four independent risk analyzers. Each one
// turns raw chain or market data into a single structured analysis; scoring
// and finding generation live elsewhere.
package analyzer

// Config carries the analyzer-level tunables.
type Config struct {
	// HolderLimit bounds how many token accounts are enumerated per scan.
	// The concentration numbers are an approximation over this window.
	HolderLimit int

	// ContractCheckCap bounds how many top holders are probed for
	// executability, since each probe is an RPC round trip.
	ContractCheckCap int
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		HolderLimit:      1000,
		ContractCheckCap: 10,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.HolderLimit <= 0 {
		c.HolderLimit = def.HolderLimit
	}
	if c.ContractCheckCap <= 0 {
		c.ContractCheckCap = def.ContractCheckCap
	}
	return c
}

// topHoldersCap is the maximum length of the reported holder leaderboard.
const topHoldersCap = 50
