package analyzer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/interfaces"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
)

// HolderAnalyzer computes the holder distribution of a mint from a bounded
// enumeration of token accounts. A holder is an owner wallet; multiple token
// accounts of one owner are merged.
type HolderAnalyzer struct {
	chain   interfaces.ChainClient
	labeler interfaces.AddressLabeler
	cfg     Config
	logger  interfaces.Logger
}

var _ interfaces.HolderAnalyzer = (*HolderAnalyzer)(nil)

func NewHolderAnalyzer(chain interfaces.ChainClient, labeler interfaces.AddressLabeler, cfg Config, logger interfaces.Logger) *HolderAnalyzer {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &HolderAnalyzer{
		chain:   chain,
		labeler: labeler,
		cfg:     cfg.withDefaults(),
		logger:  logger.With(interfaces.Field{Key: "analyzer", Value: "holders"}),
	}
}

type holderEntry struct {
	owner    string
	amount   decimal.Decimal
	decimals uint8
}

// AnalyzeHolderConcentration enumerates up to HolderLimit accounts and
// derives percentages against the sum of observed balances. The numbers are
// an approximation of full circulating supply when the mint has more
// accounts than the window.
func (h *HolderAnalyzer) AnalyzeHolderConcentration(ctx context.Context, tokenAddress string) (*model.HolderConcentration, error) {
	accounts, err := h.chain.EnumerateTokenAccounts(ctx, tokenAddress, h.cfg.HolderLimit)
	if err != nil {
		return nil, fmt.Errorf("analyze holders of %s: %w", tokenAddress, err)
	}

	byOwner := make(map[string]*holderEntry)
	total := decimal.Zero
	for _, acc := range accounts {
		if acc.Amount.IsZero() {
			continue
		}
		total = total.Add(acc.Amount)
		if e, ok := byOwner[acc.Owner]; ok {
			e.amount = e.amount.Add(acc.Amount)
		} else {
			byOwner[acc.Owner] = &holderEntry{owner: acc.Owner, amount: acc.Amount, decimals: acc.Decimals}
		}
	}

	analysis := &model.HolderConcentration{
		TokenAddress: tokenAddress,
		TotalHolders: len(byOwner),
		AnalyzedAt:   time.Now().UTC(),
	}
	if len(byOwner) == 0 || total.IsZero() {
		return analysis, nil
	}

	holders := make([]*holderEntry, 0, len(byOwner))
	for _, e := range byOwner {
		holders = append(holders, e)
	}
	sort.Slice(holders, func(i, j int) bool {
		if c := holders[i].amount.Cmp(holders[j].amount); c != 0 {
			return c > 0
		}
		return holders[i].owner < holders[j].owner
	})

	hundred := decimal.NewFromInt(100)
	pctOf := func(amount decimal.Decimal) float64 {
		return clampPct(amount.Div(total).Mul(hundred).InexactFloat64())
	}

	prefix := decimal.Zero
	for i, e := range holders {
		prefix = prefix.Add(e.amount)
		switch i + 1 {
		case 10:
			analysis.Top10Pct = pctOf(prefix)
		case 20:
			analysis.Top20Pct = pctOf(prefix)
		case 50:
			analysis.Top50Pct = pctOf(prefix)
		}
	}
	// Prefix windows larger than the holder set cover everything observed.
	whole := pctOf(total)
	if len(holders) < 10 {
		analysis.Top10Pct = whole
	}
	if len(holders) < 20 {
		analysis.Top20Pct = whole
	}
	if len(holders) < 50 {
		analysis.Top50Pct = whole
	}

	analysis.LargestHolderPct = pctOf(holders[0].amount)
	analysis.LargestHolderAddress = holders[0].owner
	analysis.IsConcentrated = analysis.LargestHolderPct > 50 || analysis.Top10Pct > 75

	analysis.TopHolders = h.leaderboard(ctx, holders, pctOf)
	return analysis, nil
}

// leaderboard builds the reported top-holder list. Executability probes are
// capped because each one costs an RPC round trip; a failed probe degrades
// to is_contract=false instead of failing the analysis.
func (h *HolderAnalyzer) leaderboard(ctx context.Context, holders []*holderEntry, pctOf func(decimal.Decimal) float64) []model.TopHolder {
	n := len(holders)
	if n > topHoldersCap {
		n = topHoldersCap
	}
	out := make([]model.TopHolder, 0, n)
	for i := 0; i < n; i++ {
		e := holders[i]
		th := model.TopHolder{
			Address: e.owner,
			Balance: e.amount.Shift(-int32(e.decimals)).InexactFloat64(),
			Pct:     pctOf(e.amount),
		}
		if h.labeler != nil {
			if label, ok := h.labeler.LabelFor(e.owner); ok {
				th.Label = label
			}
		}
		if i < h.cfg.ContractCheckCap {
			executable, err := h.chain.IsExecutable(ctx, e.owner)
			if err != nil {
				h.logger.Warn("executability probe failed",
					interfaces.Field{Key: "address", Value: e.owner},
					interfaces.Field{Key: "error", Value: err.Error()})
			} else {
				th.IsContract = executable
			}
		}
		out = append(out, th)
	}
	return out
}
