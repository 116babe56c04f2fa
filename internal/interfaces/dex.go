package interfaces

import (
	"context"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
)

// LiquiditySource supplies the liquidity pools trading a mint. One
// implementation per market-data backend; completeness is not guaranteed by
// any single source.
type LiquiditySource interface {
	// Name identifies the source in logs and degraded-result reporting.
	Name() string

	// GetPools returns the pools this source knows for the token.
	GetPools(ctx context.Context, tokenAddress string) ([]model.Pool, error)
}
