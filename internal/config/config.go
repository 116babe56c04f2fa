// Package config loads the runtime configuration from the environment, with
// an optional .env file for development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/cache"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/chain"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/dex"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/scanner"
)

// Config is the assembled runtime configuration of the scanner daemon.
type Config struct {
	// RPCURL is the Solana JSON-RPC endpoint.
	RPCURL     string
	RPCTimeout time.Duration
	Commitment string

	DexScreenerURL string

	ScanTimeout     time.Duration
	AnalyzerTimeout time.Duration
	CacheTTL        time.Duration
	HolderLimit     int

	ListenAddr string

	// HistoryDB is the sqlite file for scan history; empty disables it.
	HistoryDB string

	// LabelsFile optionally overrides the embedded known-address table.
	LabelsFile string

	LogLevel string
}

// Load reads envFile (when non-empty) and then the process environment.
// Every value has a working default; a missing .env file is not an error.
func Load(envFile string) *Config {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	} else {
		_ = godotenv.Load()
	}

	chainDef := chain.DefaultConfig()
	scanDef := scanner.DefaultConfig()

	return &Config{
		RPCURL:     getEnv("RPC_URL", chainDef.Endpoint),
		RPCTimeout: getEnvDuration("RPC_TIMEOUT", chainDef.Timeout),
		Commitment: getEnv("RPC_COMMITMENT", chainDef.Commitment),

		DexScreenerURL: getEnv("DEXSCREENER_URL", dex.DefaultConfig().BaseURL),

		ScanTimeout:     getEnvDuration("SCAN_TIMEOUT", scanDef.ScanTimeout),
		AnalyzerTimeout: getEnvDuration("ANALYZER_TIMEOUT", scanDef.AnalyzerTimeout),
		CacheTTL:        getEnvDuration("CACHE_TTL", cache.DefaultTTL),
		HolderLimit:     getEnvInt("HOLDER_LIMIT", 1000),

		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),
		HistoryDB:  getEnv("HISTORY_DB", "scans.db"),
		LabelsFile: getEnv("LABELS_FILE", ""),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}

// getEnvDuration accepts Go duration strings ("30s", "5m") and falls back to
// plain seconds for bare integers.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return defaultVal
}
