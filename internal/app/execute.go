package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/cli"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/config"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/interfaces"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/logging"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/scanner"
)

// Execute is the shared entry point behind the binaries: parse args, load
// config, build the application, then either serve the API or run one scan.
func Execute(rawArgs []string) error {
	args, err := cli.ParseArgs(rawArgs)
	if err != nil {
		return err
	}

	cfg := config.Load(args.EnvFile)
	if args.Listen != "" {
		cfg.ListenAddr = args.Listen
	}
	if args.LogLevel != "" {
		cfg.LogLevel = args.LogLevel
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)

	a, err := New(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if args.Mint != "" {
		return scanOnce(ctx, a, args)
	}
	return a.Run(ctx)
}

// scanOnce runs a single scan and prints the bundle as indented JSON.
func scanOnce(ctx context.Context, a *Application, args *cli.Args) error {
	opts := scanner.DefaultOptions()
	opts.UseCache = !args.NoCache
	opts.MarketCapUsd = args.MarketCapUsd
	for _, raw := range args.SkipChecks {
		ct, err := model.ParseCheckType(raw)
		if err != nil {
			return err
		}
		opts.SkipChecks = append(opts.SkipChecks, ct)
	}

	bundle, err := a.Scanner.Scan(ctx, args.Mint, opts)
	if err != nil {
		return err
	}

	if a.Store != nil {
		if saveErr := a.Store.Save(ctx, bundle); saveErr != nil {
			a.Logger.Warn("persisting scan", interfaces.Field{Key: "error", Value: saveErr.Error()})
		}
	}

	out, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
