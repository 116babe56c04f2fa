// Package dex implements liquidity pool sources for the liquidity analyzer.
package dex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/interfaces"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
)

// Config controls the DexScreener source.
type Config struct {
	// BaseURL of the DexScreener API.
	BaseURL string

	// ChainID filters pairs to one chain.
	ChainID string

	// Timeout bounds one API round trip.
	Timeout time.Duration
}

// DefaultConfig targets the public API, Solana pairs only.
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://api.dexscreener.com",
		ChainID: "solana",
		Timeout: 10 * time.Second,
	}
}

// DexScreenerSource implements interfaces.LiquiditySource over the
// DexScreener token-pairs endpoint.
type DexScreenerSource struct {
	cfg    Config
	client *http.Client
	logger interfaces.Logger
}

var _ interfaces.LiquiditySource = (*DexScreenerSource)(nil)

// NewDexScreenerSource builds the source; zero config fields use defaults.
func NewDexScreenerSource(cfg Config, logger interfaces.Logger) *DexScreenerSource {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.ChainID == "" {
		cfg.ChainID = def.ChainID
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &DexScreenerSource{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.With(interfaces.Field{Key: "source", Value: "dexscreener"}),
	}
}

func (s *DexScreenerSource) Name() string { return "dexscreener" }

// Response shapes of /latest/dex/tokens/{address}. Prices come back as
// strings, liquidity as numbers.
type pairsResponse struct {
	Pairs []screenerPair `json:"pairs"`
}

type screenerPair struct {
	ChainID     string `json:"chainId"`
	DexID       string `json:"dexId"`
	PairAddress string `json:"pairAddress"`
	BaseToken   struct {
		Address string `json:"address"`
	} `json:"baseToken"`
	QuoteToken struct {
		Address string `json:"address"`
	} `json:"quoteToken"`
	PriceUsd  string `json:"priceUsd"`
	Liquidity struct {
		Usd  float64 `json:"usd"`
		Base float64 `json:"base"`
	} `json:"liquidity"`
	Volume struct {
		H24 float64 `json:"h24"`
	} `json:"volume"`
	MarketCap float64 `json:"marketCap"`
	Fdv       float64 `json:"fdv"`
}

// GetPools fetches and converts the token's pairs on the configured chain.
func (s *DexScreenerSource) GetPools(ctx context.Context, tokenAddress string) ([]model.Pool, error) {
	url := fmt.Sprintf("%s/latest/dex/tokens/%s", s.cfg.BaseURL, tokenAddress)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build dexscreener request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dexscreener request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read dexscreener response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dexscreener status %d", resp.StatusCode)
	}

	var parsed pairsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode dexscreener response: %w", err)
	}

	pools := make([]model.Pool, 0, len(parsed.Pairs))
	for _, pair := range parsed.Pairs {
		if pair.ChainID != s.cfg.ChainID {
			continue
		}
		pools = append(pools, s.toPool(pair))
	}
	s.logger.Debug("fetched pools",
		interfaces.Field{Key: "token", Value: tokenAddress},
		interfaces.Field{Key: "count", Value: len(pools)})
	return pools, nil
}

func (s *DexScreenerSource) toPool(pair screenerPair) model.Pool {
	price := 0.0
	if pair.PriceUsd != "" {
		if d, err := decimal.NewFromString(pair.PriceUsd); err == nil {
			price = d.InexactFloat64()
		} else {
			s.logger.Warn("unparseable priceUsd",
				interfaces.Field{Key: "pair", Value: pair.PairAddress},
				interfaces.Field{Key: "price_usd", Value: pair.PriceUsd})
		}
	}
	marketCap := pair.MarketCap
	if marketCap == 0 {
		marketCap = pair.Fdv
	}
	return model.Pool{
		Address:         pair.PairAddress,
		Dex:             pair.DexID,
		BaseMint:        pair.BaseToken.Address,
		QuoteMint:       pair.QuoteToken.Address,
		LiquidityUsd:    pair.Liquidity.Usd,
		LiquidityNative: pair.Liquidity.Base,
		PriceUsd:        price,
		Volume24hUsd:    pair.Volume.H24,
		MarketCapUsd:    marketCap,
	}
}
