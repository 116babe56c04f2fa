package scanner

import "time"

// Config carries the orchestrator's timing policy.
type Config struct {
	// AnalyzerTimeout bounds each analyzer's run. A timed-out analyzer is
	// degraded to its conservative default.
	AnalyzerTimeout time.Duration

	// ScanTimeout bounds the whole scan. Exceeding it is fatal so a total
	// outage is never reported as an all-default low-risk result.
	ScanTimeout time.Duration
}

// DefaultConfig aligns the analyzer timeout with the chain client's default
// round-trip budget.
func DefaultConfig() Config {
	return Config{
		AnalyzerTimeout: 10 * time.Second,
		ScanTimeout:     30 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.AnalyzerTimeout <= 0 {
		c.AnalyzerTimeout = def.AnalyzerTimeout
	}
	if c.ScanTimeout <= 0 {
		c.ScanTimeout = def.ScanTimeout
	}
	return c
}
