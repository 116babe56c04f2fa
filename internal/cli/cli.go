package cli

import (
	"flag"
	"io"
	"strings"
)

// Args are the command-line arguments for one invocation. With -scan set the
// process runs a single scan and exits; otherwise it serves the HTTP API.
type Args struct {
	// EnvFile optionally points at a .env file to load before the process
	// environment.
	EnvFile string

	// Mint is the token address for one-shot mode; empty means serve.
	Mint string

	// Listen overrides the configured HTTP listen address.
	Listen string

	// LogLevel overrides the configured log level.
	LogLevel string

	// SkipChecks lists check types to exclude, from the -skip flag.
	SkipChecks []string

	// NoCache forces a fresh scan in one-shot mode.
	NoCache bool

	// MarketCapUsd overrides the source-reported market cap.
	MarketCapUsd float64

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// ParseArgs parses a slice of args and returns Args. Use in tests by passing
// arbitrary slices. The function is deterministic and does not read os.Args.
func ParseArgs(args []string) (*Args, error) {
	fs := flag.NewFlagSet("scanner-cli", flag.ContinueOnError)
	var (
		envFile   = fs.String("env", "", "Path to a .env file (optional)")
		mint      = fs.String("scan", "", "Token mint address for a one-shot scan; empty starts the API server")
		listen    = fs.String("listen", "", "HTTP listen address override")
		logLevel  = fs.String("log-level", "", "Log level override: debug|info|warn|error")
		skip      = fs.String("skip", "", "Comma-separated check types to skip")
		noCache   = fs.Bool("no-cache", false, "Bypass the result cache in one-shot mode")
		marketCap = fs.Float64("market-cap", 0, "Market cap in USD to use for the liquidity ratio (0=use source)")
	)

	// Keep Parse quiet in tests
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var skips []string
	for _, s := range strings.Split(*skip, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skips = append(skips, s)
		}
	}

	return &Args{
		EnvFile:      *envFile,
		Mint:         strings.TrimSpace(*mint),
		Listen:       *listen,
		LogLevel:     *logLevel,
		SkipChecks:   skips,
		NoCache:      *noCache,
		MarketCapUsd: *marketCap,
		RawArgs:      args,
	}, nil
}
