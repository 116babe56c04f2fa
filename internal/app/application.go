// Package app wires the concrete components into a runnable application:
// chain client, liquidity sources, analyzers, cache, history store and the
// HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/analyzer"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/cache"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/chain"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/config"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/dex"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/history"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/interfaces"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/labels"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/scanner"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/server"
)

// Application is the assembled runtime: pass it into code that needs the
// shared services instead of using package-level state.
type Application struct {
	Config  *config.Config
	Logger  interfaces.Logger
	Scanner *scanner.Scanner
	Store   interfaces.ScanStore
	Server  *server.Server
}

// New builds every component from the configuration. The history store is
// optional: an empty HistoryDB disables persistence and the history API.
func New(cfg *config.Config, logger interfaces.Logger) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}

	rpc := chain.NewRPCClient(chain.Config{
		Endpoint:   cfg.RPCURL,
		Commitment: cfg.Commitment,
		Timeout:    cfg.RPCTimeout,
	}, logger)

	registry := labels.Default()
	if cfg.LabelsFile != "" {
		var err error
		registry, err = labels.Load(cfg.LabelsFile)
		if err != nil {
			return nil, fmt.Errorf("loading labels: %w", err)
		}
	}

	dexSource := dex.NewDexScreenerSource(dex.Config{BaseURL: cfg.DexScreenerURL}, logger)
	liquiditySource, err := dex.NewMultiSource(logger, dexSource)
	if err != nil {
		return nil, fmt.Errorf("building liquidity source: %w", err)
	}

	analyzerCfg := analyzer.Config{HolderLimit: cfg.HolderLimit}
	sc, err := scanner.New(scanner.Deps{
		Honeypot:  analyzer.NewHoneypotChecker(rpc, nil, logger),
		Ownership: analyzer.NewAuthorityAnalyzer(rpc, analyzerCfg, logger),
		Holders:   analyzer.NewHolderAnalyzer(rpc, registry, analyzerCfg, logger),
		Liquidity: analyzer.NewLiquidityAnalyzer(liquiditySource, registry, logger),
		Cache:     cache.New(cfg.CacheTTL, nil),
	}, scanner.Config{
		AnalyzerTimeout: cfg.AnalyzerTimeout,
		ScanTimeout:     cfg.ScanTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("building scanner: %w", err)
	}

	var store interfaces.ScanStore
	if cfg.HistoryDB != "" {
		store, err = history.Open(cfg.HistoryDB, logger)
		if err != nil {
			return nil, fmt.Errorf("opening history store: %w", err)
		}
	}

	srv, err := server.New(sc, store, server.Config{ListenAddr: cfg.ListenAddr}, logger)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("building server: %w", err)
	}

	return &Application{
		Config:  cfg,
		Logger:  logger,
		Scanner: sc,
		Store:   store,
		Server:  srv,
	}, nil
}

// Run serves the HTTP API until ctx is canceled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	httpSrv := a.Server.HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("http server listening", interfaces.Field{Key: "addr", Value: httpSrv.Addr})
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases long-lived resources.
func (a *Application) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
