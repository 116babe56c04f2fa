package interfaces

import (
	"context"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
)

// ScanStore persists completed scan bundles and serves history queries.
// Implementations should be safe for concurrent use.
type ScanStore interface {
	// Save stores a completed bundle. The bundle is stored as-is; the store
	// never mutates it.
	Save(ctx context.Context, bundle *model.ScanBundle) error

	// Latest returns the most recent stored scan for the token, or
	// (nil, nil) when none exists.
	Latest(ctx context.Context, tokenAddress string) (*model.ScanRecord, error)

	// Recent returns up to limit stored scans for the token, newest first.
	Recent(ctx context.Context, tokenAddress string, limit int) ([]*model.ScanRecord, error)

	// Drift compares the two most recent scans for the token. Returns
	// (nil, nil) when fewer than two scans are stored.
	Drift(ctx context.Context, tokenAddress string) (*model.DriftReport, error)

	// Close releases the underlying backend.
	Close() error
}
