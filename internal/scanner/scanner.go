// Package scanner implements the scan orchestrator: the single public entry
// point that fans the four analyzers out concurrently, tolerates partial
// failure, aggregates the weighted score and findings, and caches the
// result.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/interfaces"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/risk"
)

var (
	// ErrAllAnalyzersFailed means every analyzer that ran degraded: total
	// data unavailability. The scan fails rather than report an all-default
	// low-risk score.
	ErrAllAnalyzersFailed = errors.New("all analyzers failed")

	// ErrScanDeadline means the overall scan deadline elapsed before the
	// analyzers settled.
	ErrScanDeadline = errors.New("scan deadline exceeded")
)

// Options controls a single scan. The zero value disables the cache; use
// DefaultOptions for the standard cache-first behavior.
type Options struct {
	// MarketCapUsd, when positive, overrides the source-reported market cap
	// for the liquidity ratio.
	MarketCapUsd float64

	// SkipChecks excludes checks from the scan. A skipped check runs no
	// analyzer, contributes zero risk and yields a not_applicable finding.
	SkipChecks []model.CheckType

	// UseCache serves a live cached bundle instead of recomputing.
	UseCache bool

	// Progress, when set, receives scan lifecycle events. It is called
	// sequentially from the scanning goroutine.
	Progress func(Event)
}

// DefaultOptions returns the standard cache-first options.
func DefaultOptions() Options {
	return Options{UseCache: true}
}

// EventType tags a progress event.
type EventType string

const (
	EventStatus EventType = "status"
	EventCheck  EventType = "check"
	EventResult EventType = "result"
)

// Event is one progress notification during a scan.
type Event struct {
	Type         EventType        `json:"type"`
	TokenAddress string           `json:"token_address"`
	Status       model.ScanStatus `json:"status,omitempty"`
	Analyzer     string           `json:"analyzer,omitempty"`
	Degraded     bool             `json:"degraded,omitempty"`
	Cached       bool             `json:"cached,omitempty"`
	Error        string           `json:"error,omitempty"`
}

// Deps are the orchestrator's injected collaborators. The four analyzers are
// required; everything else has a default.
type Deps struct {
	Honeypot  interfaces.HoneypotChecker
	Ownership interfaces.OwnershipAnalyzer
	Holders   interfaces.HolderAnalyzer
	Liquidity interfaces.LiquidityAnalyzer

	// Cache is optional; a nil cache means every scan recomputes.
	Cache interfaces.ResultCache

	// NewID defaults to random UUIDs; inject for deterministic scan and
	// finding IDs.
	NewID func() string

	// Now defaults to the UTC wall clock.
	Now func() time.Time
}

// Scanner drives the scan pipeline. Safe for concurrent use; the cache is
// the only shared mutable state.
type Scanner struct {
	deps   Deps
	cfg    Config
	gen    *risk.Generator
	logger interfaces.Logger
}

// New validates the dependencies and builds a scanner.
func New(deps Deps, cfg Config, logger interfaces.Logger) (*Scanner, error) {
	if deps.Honeypot == nil || deps.Ownership == nil || deps.Holders == nil || deps.Liquidity == nil {
		return nil, errors.New("scanner: all four analyzers are required")
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Scanner{
		deps:   deps,
		cfg:    cfg.withDefaults(),
		gen:    risk.NewGenerator(deps.NewID, deps.Now),
		logger: logger.With(interfaces.Field{Key: "component", Value: "scanner"}),
	}, nil
}

// settled is one analyzer's outcome after the join: it either ran to
// completion or degraded with a cause. Values land in the typed slots of
// scanState, never in shared aggregation.
type settled struct {
	ran  bool
	err  error
	name string
}

type scanState struct {
	authority *model.AuthorityAnalysis
	holders   *model.HolderConcentration
	liquidity *model.LiquidityAnalysis
	honeypot  *model.HoneypotCheck

	outcomes [4]settled
}

// Indexes into scanState.outcomes.
const (
	slotHoneypot = iota
	slotAuthority
	slotHolders
	slotLiquidity
)

// Scan runs the full pipeline for one token. It returns an error only for a
// syntactically invalid address, total analyzer failure or an exceeded scan
// deadline; single-analyzer failures degrade to conservative defaults.
func (s *Scanner) Scan(ctx context.Context, tokenAddress string, opts Options) (*model.ScanBundle, error) {
	if err := model.ValidateTokenAddress(tokenAddress); err != nil {
		return nil, err
	}

	emit := opts.Progress
	if emit == nil {
		emit = func(Event) {}
	}

	skipped := skipSet(opts.SkipChecks)
	log := s.logger.With(interfaces.Field{Key: "token", Value: tokenAddress})

	if opts.UseCache && s.deps.Cache != nil {
		if bundle, hit := s.deps.Cache.Get(tokenAddress); hit {
			log.Debug("cache hit")
			emit(Event{Type: EventResult, TokenAddress: tokenAddress, Status: model.StatusCompleted, Cached: true})
			return bundle, nil
		}
	}

	scanCtx, cancel := context.WithTimeout(ctx, s.cfg.ScanTimeout)
	defer cancel()

	startedAt := s.deps.Now()
	emit(Event{Type: EventStatus, TokenAddress: tokenAddress, Status: model.StatusRunning})

	state := s.fanOut(scanCtx, tokenAddress, opts.MarketCapUsd, skipped)

	ran, failed := 0, 0
	deadlineHit := false
	for _, o := range state.outcomes {
		if !o.ran {
			continue
		}
		ran++
		if o.err != nil {
			failed++
			if errors.Is(o.err, context.DeadlineExceeded) && scanCtx.Err() != nil {
				deadlineHit = true
			}
			log.Warn("analyzer degraded",
				interfaces.Field{Key: "analyzer", Value: o.name},
				interfaces.Field{Key: "error", Value: o.err.Error()})
		}
		emit(Event{
			Type:         EventCheck,
			TokenAddress: tokenAddress,
			Analyzer:     o.name,
			Degraded:     o.err != nil,
			Error:        errString(o.err),
		})
	}

	if deadlineHit {
		emit(Event{Type: EventStatus, TokenAddress: tokenAddress, Status: model.StatusFailed, Error: ErrScanDeadline.Error()})
		return nil, fmt.Errorf("scan of %s: %w", tokenAddress, ErrScanDeadline)
	}
	if ran > 0 && failed == ran {
		emit(Event{Type: EventStatus, TokenAddress: tokenAddress, Status: model.StatusFailed, Error: ErrAllAnalyzersFailed.Error()})
		return nil, fmt.Errorf("scan of %s: %w", tokenAddress, ErrAllAnalyzersFailed)
	}

	bundle := s.assemble(tokenAddress, startedAt, skipped, state)

	if s.deps.Cache != nil {
		s.deps.Cache.Set(tokenAddress, bundle)
	}

	log.Info("scan completed",
		interfaces.Field{Key: "risk_score", Value: bundle.Check.RiskScore},
		interfaces.Field{Key: "risk_level", Value: bundle.Check.RiskLevel},
		interfaces.Field{Key: "degraded", Value: len(bundle.Check.DegradedChecks)})
	emit(Event{Type: EventStatus, TokenAddress: tokenAddress, Status: model.StatusCompleted})
	return bundle, nil
}

// fanOut launches one goroutine per non-skipped analyzer and joins them all,
// settled-style: every outcome is collected, none aborts the others.
func (s *Scanner) fanOut(ctx context.Context, tokenAddress string, marketCap float64, skipped map[model.CheckType]bool) *scanState {
	state := &scanState{}

	var wg sync.WaitGroup
	run := func(slot int, name string, fn func(context.Context) error) {
		state.outcomes[slot] = settled{ran: true, name: name}
		wg.Add(1)
		go func() {
			defer wg.Done()
			actx, cancel := context.WithTimeout(ctx, s.cfg.AnalyzerTimeout)
			defer cancel()
			state.outcomes[slot].err = fn(actx)
		}()
	}

	if !skipped[model.CheckHoneypot] {
		run(slotHoneypot, "honeypot", func(actx context.Context) error {
			hc, err := s.deps.Honeypot.CheckHoneypot(actx, tokenAddress)
			state.honeypot = hc
			return err
		})
	}
	// The authority analyzer covers two checks; it runs while either is
	// still wanted.
	if !skipped[model.CheckMintAuthority] || !skipped[model.CheckFreezeAuthority] {
		run(slotAuthority, "authority", func(actx context.Context) error {
			a, err := s.deps.Ownership.AnalyzeOwnership(actx, tokenAddress)
			state.authority = a
			return err
		})
	}
	if !skipped[model.CheckHolderConcentration] {
		run(slotHolders, "holders", func(actx context.Context) error {
			h, err := s.deps.Holders.AnalyzeHolderConcentration(actx, tokenAddress)
			state.holders = h
			return err
		})
	}
	if !skipped[model.CheckLiquidityLock] {
		run(slotLiquidity, "liquidity", func(actx context.Context) error {
			l, err := s.deps.Liquidity.AnalyzeLiquidity(actx, tokenAddress, marketCap)
			state.liquidity = l
			return err
		})
	}

	wg.Wait()
	return state
}

// assemble substitutes defaults for degraded analyzers and builds the final
// bundle from findings and the aggregated score.
func (s *Scanner) assemble(tokenAddress string, startedAt time.Time, skipped map[model.CheckType]bool, state *scanState) *model.ScanBundle {
	now := s.deps.Now()
	var degraded []model.CheckType

	if o := state.outcomes[slotHoneypot]; o.ran && o.err != nil {
		state.honeypot = defaultHoneypot(tokenAddress, o.err, now)
		degraded = append(degraded, model.CheckHoneypot)
	}
	if o := state.outcomes[slotAuthority]; o.ran && o.err != nil {
		state.authority = defaultAuthority(tokenAddress, now)
		if !skipped[model.CheckMintAuthority] {
			degraded = append(degraded, model.CheckMintAuthority)
		}
		if !skipped[model.CheckFreezeAuthority] {
			degraded = append(degraded, model.CheckFreezeAuthority)
		}
	}
	if o := state.outcomes[slotHolders]; o.ran && o.err != nil {
		state.holders = defaultHolders(tokenAddress, now)
		degraded = append(degraded, model.CheckHolderConcentration)
	}
	if o := state.outcomes[slotLiquidity]; o.ran && o.err != nil {
		state.liquidity = defaultLiquidity(tokenAddress, now)
		degraded = append(degraded, model.CheckLiquidityLock)
	}

	in := risk.Input{
		Authority: state.authority,
		Holders:   state.holders,
		Liquidity: state.liquidity,
		Honeypot:  state.honeypot,
		Skipped:   skipped,
		Now:       now,
	}
	findings := s.gen.Generate(in)
	breakdown := risk.Aggregate(in)
	passed, failed, warning := risk.Tally(findings)

	completedAt := s.deps.Now()
	check := &model.SecurityCheck{
		ID:             s.deps.NewID(),
		TokenAddress:   tokenAddress,
		RiskLevel:      breakdown.RiskLevel,
		RiskScore:      breakdown.OverallScore,
		SecurityScore:  breakdown.SecurityScore,
		Status:         model.StatusCompleted,
		Findings:       findings,
		PassedChecks:   passed,
		FailedChecks:   failed,
		WarningChecks:  warning,
		TotalChecks:    len(findings),
		DegradedChecks: degraded,
		StartedAt:      startedAt,
		CompletedAt:    &completedAt,
	}

	return &model.ScanBundle{
		Check:     check,
		Authority: state.authority,
		Holders:   state.holders,
		Liquidity: state.liquidity,
		Honeypot:  state.honeypot,
	}
}

// GetCached returns the live cached bundle for the address, if any.
func (s *Scanner) GetCached(tokenAddress string) (*model.ScanBundle, bool) {
	if s.deps.Cache == nil {
		return nil, false
	}
	return s.deps.Cache.Get(tokenAddress)
}

// InvalidateCached drops the cached bundle for one address.
func (s *Scanner) InvalidateCached(tokenAddress string) {
	if s.deps.Cache != nil {
		s.deps.Cache.Invalidate(tokenAddress)
	}
}

// ClearCache drops every cached bundle.
func (s *Scanner) ClearCache() {
	if s.deps.Cache != nil {
		s.deps.Cache.Clear()
	}
}

func skipSet(skips []model.CheckType) map[model.CheckType]bool {
	set := make(map[model.CheckType]bool, len(skips))
	for _, ct := range skips {
		set[ct] = true
	}
	return set
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
