// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O or side effects.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/interfaces"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements interfaces.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...interfaces.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...interfaces.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...interfaces.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...interfaces.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...interfaces.Field) interfaces.Logger { return l }

// WarnCount returns how many warnings were recorded.
func (l *DummyLogger) WarnCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Warns)
}

// ─── ChainClient ───────────────────────────────────────────────────────

// FakeChain implements interfaces.ChainClient with canned responses.
// Zero value behaves like an empty, healthy chain. Set the Err fields to
// force failures, or Delay to hold every call until the context expires or
// the delay elapses.
type FakeChain struct {
	mu sync.Mutex

	Authorities    *interfaces.MintAuthorities
	AuthoritiesErr error

	Accounts    []interfaces.TokenAccount
	AccountsErr error

	// Executables maps address -> executable flag. Missing addresses are
	// reported as non-executable.
	Executables   map[string]bool
	ExecutableErr error

	// SimResults maps transfer direction to the canned result.
	SimResults map[interfaces.TransferDirection]*interfaces.SimulateResult
	SimErr     error

	Delay time.Duration

	Calls map[string]int
}

var _ interfaces.ChainClient = (*FakeChain)(nil)

func (f *FakeChain) record(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Calls == nil {
		f.Calls = make(map[string]int)
	}
	f.Calls[method]++
}

// CallCount returns how many times method was invoked.
func (f *FakeChain) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[method]
}

func (f *FakeChain) wait(ctx context.Context) error {
	if f.Delay <= 0 {
		return nil
	}
	select {
	case <-time.After(f.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *FakeChain) GetMintAuthorities(ctx context.Context, tokenAddress string) (*interfaces.MintAuthorities, error) {
	f.record("GetMintAuthorities")
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.AuthoritiesErr != nil {
		return nil, f.AuthoritiesErr
	}
	if f.Authorities == nil {
		return nil, fmt.Errorf("mint %s not found", tokenAddress)
	}
	auth := *f.Authorities
	auth.TokenAddress = tokenAddress
	return &auth, nil
}

func (f *FakeChain) EnumerateTokenAccounts(ctx context.Context, tokenAddress string, limit int) ([]interfaces.TokenAccount, error) {
	f.record("EnumerateTokenAccounts")
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.AccountsErr != nil {
		return nil, f.AccountsErr
	}
	if limit > 0 && len(f.Accounts) > limit {
		return f.Accounts[:limit], nil
	}
	return f.Accounts, nil
}

func (f *FakeChain) IsExecutable(ctx context.Context, address string) (bool, error) {
	f.record("IsExecutable")
	if err := f.wait(ctx); err != nil {
		return false, err
	}
	if f.ExecutableErr != nil {
		return false, f.ExecutableErr
	}
	return f.Executables[address], nil
}

func (f *FakeChain) SimulateTransfer(ctx context.Context, req interfaces.SimulateRequest) (*interfaces.SimulateResult, error) {
	f.record("SimulateTransfer")
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.SimErr != nil {
		return nil, f.SimErr
	}
	if res, ok := f.SimResults[req.Direction]; ok {
		return res, nil
	}
	return &interfaces.SimulateResult{Success: true}, nil
}

// ─── LiquiditySource ───────────────────────────────────────────────────

// FakeSource implements interfaces.LiquiditySource with a fixed pool list.
type FakeSource struct {
	SourceName string
	Pools      []model.Pool
	Err        error
	Delay      time.Duration
}

var _ interfaces.LiquiditySource = (*FakeSource)(nil)

func (f *FakeSource) Name() string {
	if f.SourceName == "" {
		return "fake"
	}
	return f.SourceName
}

func (f *FakeSource) GetPools(ctx context.Context, tokenAddress string) ([]model.Pool, error) {
	if f.Delay > 0 {
		select {
		case <-time.After(f.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Pools, nil
}

// ─── LockVerifier ──────────────────────────────────────────────────────

// FakeLocks implements interfaces.LockVerifier and interfaces.AddressLabeler
// from plain maps.
type FakeLocks struct {
	Programs map[string]bool
	Burns    map[string]bool
	Labels   map[string]string
}

var (
	_ interfaces.LockVerifier   = (*FakeLocks)(nil)
	_ interfaces.AddressLabeler = (*FakeLocks)(nil)
)

func (f *FakeLocks) IsVerifiedLockProgram(programAddress string) bool {
	return f.Programs[programAddress]
}

func (f *FakeLocks) IsBurnAddress(address string) bool {
	return f.Burns[address]
}

func (f *FakeLocks) LabelFor(address string) (string, bool) {
	v, ok := f.Labels[address]
	return v, ok
}

// ─── Clock and IDs ─────────────────────────────────────────────────────

// FixedClock is a manually advanced clock for TTL and timestamp tests.
type FixedClock struct {
	mu sync.Mutex
	t  time.Time
}

// NewFixedClock starts a clock at the given instant.
func NewFixedClock(at time.Time) *FixedClock {
	return &FixedClock{t: at}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// SeqIDs returns an ID source producing "<prefix>-1", "<prefix>-2", ...
// Deterministic replacement for uuid generation in tests.
func SeqIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
