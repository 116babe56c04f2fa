package server

// Config holds the HTTP server settings.
type Config struct {
	// ListenAddr is the HTTP listen address for the API server (the CLI
	// one-shot mode uses the scanner in-process and does not require the
	// network).
	ListenAddr string
}

// DefaultConfig returns the standard listen address.
func DefaultConfig() Config {
	return Config{ListenAddr: ":8080"}
}
