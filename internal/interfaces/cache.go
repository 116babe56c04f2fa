package interfaces

import "github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"

// ResultCache memoizes complete scan bundles per token address under a TTL.
// Implementations must be safe for concurrent use and linearizable per key;
// a reader never observes a partially written entry. A failed or absent
// backend is indistinguishable from a miss.
type ResultCache interface {
	Get(tokenAddress string) (*model.ScanBundle, bool)
	Set(tokenAddress string, bundle *model.ScanBundle)
	Invalidate(tokenAddress string)
	Clear()
}
