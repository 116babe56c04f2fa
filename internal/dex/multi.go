package dex

import (
	"context"
	"errors"
	"fmt"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/interfaces"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
)

// MultiSource fans a pool query across several sources and merges the
// results. A source failing is tolerated as long as at least one source
// answers; only total failure is an error.
type MultiSource struct {
	sources []interfaces.LiquiditySource
	logger  interfaces.Logger
}

var _ interfaces.LiquiditySource = (*MultiSource)(nil)

// NewMultiSource wraps the given sources. At least one is required.
func NewMultiSource(logger interfaces.Logger, sources ...interfaces.LiquiditySource) (*MultiSource, error) {
	if len(sources) == 0 {
		return nil, errors.New("multi source needs at least one source")
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &MultiSource{sources: sources, logger: logger}, nil
}

func (m *MultiSource) Name() string { return "multi" }

// GetPools queries every source in order. Duplicate pool addresses from
// overlapping sources keep the first occurrence.
func (m *MultiSource) GetPools(ctx context.Context, tokenAddress string) ([]model.Pool, error) {
	var (
		pools    []model.Pool
		failures []error
		seen     = make(map[string]bool)
		answered bool
	)
	for _, src := range m.sources {
		got, err := src.GetPools(ctx, tokenAddress)
		if err != nil {
			m.logger.Warn("pool source failed",
				interfaces.Field{Key: "source", Value: src.Name()},
				interfaces.Field{Key: "token", Value: tokenAddress},
				interfaces.Field{Key: "error", Value: err.Error()})
			failures = append(failures, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		answered = true
		for _, p := range got {
			if p.Address != "" && seen[p.Address] {
				continue
			}
			if p.Address != "" {
				seen[p.Address] = true
			}
			pools = append(pools, p)
		}
	}
	if !answered {
		return nil, fmt.Errorf("all pool sources failed: %w", errors.Join(failures...))
	}
	return pools, nil
}
