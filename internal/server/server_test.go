package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/cache"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/history"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/scanner"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/server"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/testutil"
)

const testMint = "So11111111111111111111111111111111111111112"

// fakeAnalyzers backs the scanner with canned results for all four checks.
type fakeAnalyzers struct {
	mu    sync.Mutex
	calls int

	auth      *model.AuthorityAnalysis
	holders   *model.HolderConcentration
	liquidity *model.LiquidityAnalysis
	honeypot  *model.HoneypotCheck

	err error
}

func (f *fakeAnalyzers) record() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeAnalyzers) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeAnalyzers) AnalyzeOwnership(ctx context.Context, token string) (*model.AuthorityAnalysis, error) {
	f.record()
	return f.auth, f.err
}

func (f *fakeAnalyzers) AnalyzeHolderConcentration(ctx context.Context, token string) (*model.HolderConcentration, error) {
	f.record()
	return f.holders, f.err
}

func (f *fakeAnalyzers) AnalyzeLiquidity(ctx context.Context, token string, marketCap float64) (*model.LiquidityAnalysis, error) {
	f.record()
	return f.liquidity, f.err
}

func (f *fakeAnalyzers) CheckHoneypot(ctx context.Context, token string) (*model.HoneypotCheck, error) {
	f.record()
	return f.honeypot, f.err
}

// healthyAnalyzers yields an active-mint-authority-only scenario: risk 12.
func healthyAnalyzers() *fakeAnalyzers {
	expiry := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	return &fakeAnalyzers{
		auth: &model.AuthorityAnalysis{
			TokenAddress: testMint, CanMint: true, FreezeRenounced: true, UpdateRenounced: true,
		},
		holders: &model.HolderConcentration{
			TokenAddress: testMint, TotalHolders: 5000, LargestHolderPct: 10, Top10Pct: 20, Top20Pct: 30, Top50Pct: 40,
		},
		liquidity: &model.LiquidityAnalysis{
			TokenAddress: testMint, TotalLiquidityUsd: 200_000, LockedPct: 100, IsLocked: true,
			Pools: []model.Pool{{Address: "PoolAaa", Locked: true, LiquidityUsd: 200_000, LockExpiresAt: &expiry}},
		},
		honeypot: &model.HoneypotCheck{
			TokenAddress: testMint, CanBuy: true, CanSell: true, TradingEnabled: true,
			SimulationResult: model.SimulationResult{Success: true, BuySimulated: true, SellSimulated: true},
		},
	}
}

type serverFixture struct {
	server *server.Server
	fakes  *fakeAnalyzers
	clock  *testutil.FixedClock
}

func newTestServer(t *testing.T, fakes *fakeAnalyzers) *serverFixture {
	t.Helper()

	clock := testutil.NewFixedClock(time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC))
	sc, err := scanner.New(scanner.Deps{
		Honeypot:  fakes,
		Ownership: fakes,
		Holders:   fakes,
		Liquidity: fakes,
		Cache:     cache.New(5*time.Minute, clock.Now),
		NewID:     testutil.SeqIDs("id"),
		Now:       clock.Now,
	}, scanner.Config{}, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("scanner.New: %v", err)
	}

	store, err := history.Open(filepath.Join(t.TempDir(), "scans.db"), &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	s, err := server.New(sc, store, server.Config{ListenAddr: ":0"}, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("server.New: %v", err)
	}
	return &serverFixture{server: s, fakes: fakes, clock: clock}
}

func doJSON(t *testing.T, s http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON response: %v (body: %s)", err, rec.Body.String())
	}
}

func scanBody(mint string) string {
	return `{"token_address":"` + mint + `"}`
}

// ─── Health and CORS ────────────────────────────────────────────────────

func TestServer_Health(t *testing.T) {
	t.Parallel()
	fx := newTestServer(t, healthyAnalyzers())

	rec := doJSON(t, fx.server, "GET", "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var health server.HealthResponse
	decodeJSON(t, rec, &health)
	if health.Status != "ok" || health.Version != model.Version {
		t.Errorf("health = %+v", health)
	}
}

func TestServer_CORSHeaderPresent(t *testing.T) {
	t.Parallel()
	fx := newTestServer(t, healthyAnalyzers())

	rec := doJSON(t, fx.server, "GET", "/healthz", "")
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("CORS origin = %q, want *", origin)
	}
}

// ─── Scan endpoint ──────────────────────────────────────────────────────

func TestServer_Scan(t *testing.T) {
	t.Parallel()
	fx := newTestServer(t, healthyAnalyzers())

	rec := doJSON(t, fx.server, "POST", "/api/v1/scan", scanBody(testMint))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var bundle model.ScanBundle
	decodeJSON(t, rec, &bundle)
	if bundle.Check == nil {
		t.Fatal("bundle without check")
	}
	if bundle.Check.RiskScore != 12 || bundle.Check.RiskLevel != model.RiskLow {
		t.Errorf("risk = %d/%s, want 12/low", bundle.Check.RiskScore, bundle.Check.RiskLevel)
	}
	if len(bundle.Check.Findings) != 5 {
		t.Errorf("got %d findings, want 5", len(bundle.Check.Findings))
	}

	// A completed scan lands in history.
	rec = doJSON(t, fx.server, "GET", "/api/v1/tokens/"+testMint, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("latest after scan: status = %d: %s", rec.Code, rec.Body.String())
	}
	var latest model.ScanRecord
	decodeJSON(t, rec, &latest)
	if latest.ID != bundle.Check.ID {
		t.Errorf("stored scan ID = %q, want %q", latest.ID, bundle.Check.ID)
	}
}

func TestServer_ScanInvalidAddress(t *testing.T) {
	t.Parallel()
	fx := newTestServer(t, healthyAnalyzers())

	rec := doJSON(t, fx.server, "POST", "/api/v1/scan", scanBody("not-a-mint"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if fx.fakes.callCount() != 0 {
		t.Error("analyzer invoked for an invalid address")
	}
}

func TestServer_ScanBadJSON(t *testing.T) {
	t.Parallel()
	fx := newTestServer(t, healthyAnalyzers())

	rec := doJSON(t, fx.server, "POST", "/api/v1/scan", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestServer_ScanUnknownSkipCheck(t *testing.T) {
	t.Parallel()
	fx := newTestServer(t, healthyAnalyzers())

	rec := doJSON(t, fx.server, "POST", "/api/v1/scan",
		`{"token_address":"`+testMint+`","skip_checks":["rug_pull"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if fx.fakes.callCount() != 0 {
		t.Error("analyzer invoked despite invalid skip list")
	}
}

func TestServer_ScanSkipChecks(t *testing.T) {
	t.Parallel()
	fx := newTestServer(t, healthyAnalyzers())

	rec := doJSON(t, fx.server, "POST", "/api/v1/scan",
		`{"token_address":"`+testMint+`","skip_checks":["liquidity_lock"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var bundle model.ScanBundle
	decodeJSON(t, rec, &bundle)
	if bundle.Liquidity != nil {
		t.Error("skipped liquidity analysis still present")
	}
	tallied := bundle.Check.PassedChecks + bundle.Check.FailedChecks + bundle.Check.WarningChecks
	if tallied != 4 {
		t.Errorf("tallied checks = %d, want 4", tallied)
	}
}

func TestServer_ScanAllAnalyzersFailed(t *testing.T) {
	t.Parallel()
	fakes := healthyAnalyzers()
	fakes.err = errors.New("rpc unreachable")
	fx := newTestServer(t, fakes)

	rec := doJSON(t, fx.server, "POST", "/api/v1/scan", scanBody(testMint))
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502: %s", rec.Code, rec.Body.String())
	}
}

// ─── History endpoints ──────────────────────────────────────────────────

func TestServer_LatestNotFound(t *testing.T) {
	t.Parallel()
	fx := newTestServer(t, healthyAnalyzers())

	rec := doJSON(t, fx.server, "GET", "/api/v1/tokens/"+testMint, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestServer_HistoryInvalidMint(t *testing.T) {
	t.Parallel()
	fx := newTestServer(t, healthyAnalyzers())

	rec := doJSON(t, fx.server, "GET", "/api/v1/tokens/bogus/history", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestServer_HistoryListing(t *testing.T) {
	t.Parallel()
	fx := newTestServer(t, healthyAnalyzers())

	// Two scans with distinct timestamps; bypass the cache for the second.
	if rec := doJSON(t, fx.server, "POST", "/api/v1/scan", scanBody(testMint)); rec.Code != http.StatusOK {
		t.Fatalf("first scan: %d", rec.Code)
	}
	fx.clock.Advance(time.Minute)
	if rec := doJSON(t, fx.server, "POST", "/api/v1/scan",
		`{"token_address":"`+testMint+`","use_cache":false}`); rec.Code != http.StatusOK {
		t.Fatalf("second scan: %d", rec.Code)
	}

	rec := doJSON(t, fx.server, "GET", "/api/v1/tokens/"+testMint+"/history?limit=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var records []model.ScanRecord
	decodeJSON(t, rec, &records)
	if len(records) != 1 {
		t.Fatalf("got %d records with limit=1, want 1", len(records))
	}
	if records[0].Bundle != nil {
		t.Error("listing carries full bundles")
	}
}

func TestServer_DriftNeedsTwoScans(t *testing.T) {
	t.Parallel()
	fx := newTestServer(t, healthyAnalyzers())

	if rec := doJSON(t, fx.server, "POST", "/api/v1/scan", scanBody(testMint)); rec.Code != http.StatusOK {
		t.Fatalf("scan: %d", rec.Code)
	}

	rec := doJSON(t, fx.server, "GET", "/api/v1/tokens/"+testMint+"/drift", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestServer_Drift(t *testing.T) {
	t.Parallel()
	fx := newTestServer(t, healthyAnalyzers())

	if rec := doJSON(t, fx.server, "POST", "/api/v1/scan", scanBody(testMint)); rec.Code != http.StatusOK {
		t.Fatalf("first scan: %d", rec.Code)
	}

	// The token turns risky between scans.
	fx.fakes.auth.FreezeRenounced = false
	fx.fakes.auth.CanFreeze = true
	fx.clock.Advance(time.Minute)
	if rec := doJSON(t, fx.server, "POST", "/api/v1/scan",
		`{"token_address":"`+testMint+`","use_cache":false}`); rec.Code != http.StatusOK {
		t.Fatalf("second scan: %d", rec.Code)
	}

	rec := doJSON(t, fx.server, "GET", "/api/v1/tokens/"+testMint+"/drift", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var report model.DriftReport
	decodeJSON(t, rec, &report)
	if !report.Regressed {
		t.Error("activated freeze authority was not flagged as regression")
	}
	if report.ScoreDelta <= 0 {
		t.Errorf("score delta = %d, want positive", report.ScoreDelta)
	}
}

// ─── Cache endpoints ────────────────────────────────────────────────────

func TestServer_CacheLifecycle(t *testing.T) {
	t.Parallel()
	fx := newTestServer(t, healthyAnalyzers())

	rec := doJSON(t, fx.server, "GET", "/api/v1/cache/"+testMint, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("empty cache: status = %d, want 404", rec.Code)
	}

	if rec := doJSON(t, fx.server, "POST", "/api/v1/scan", scanBody(testMint)); rec.Code != http.StatusOK {
		t.Fatalf("scan: %d", rec.Code)
	}

	rec = doJSON(t, fx.server, "GET", "/api/v1/cache/"+testMint, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("after scan: status = %d", rec.Code)
	}

	rec = doJSON(t, fx.server, "DELETE", "/api/v1/cache/"+testMint, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("invalidate: status = %d, want 204", rec.Code)
	}
	rec = doJSON(t, fx.server, "GET", "/api/v1/cache/"+testMint, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("after invalidate: status = %d, want 404", rec.Code)
	}
}

func TestServer_ClearCache(t *testing.T) {
	t.Parallel()
	fx := newTestServer(t, healthyAnalyzers())

	if rec := doJSON(t, fx.server, "POST", "/api/v1/scan", scanBody(testMint)); rec.Code != http.StatusOK {
		t.Fatalf("scan: %d", rec.Code)
	}
	if rec := doJSON(t, fx.server, "DELETE", "/api/v1/cache", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("clear: status = %d, want 204", rec.Code)
	}
	if rec := doJSON(t, fx.server, "GET", "/api/v1/cache/"+testMint, ""); rec.Code != http.StatusNotFound {
		t.Errorf("after clear: status = %d, want 404", rec.Code)
	}
}

// ─── WebSocket scan streaming ───────────────────────────────────────────

func TestServer_ScanWebSocket(t *testing.T) {
	t.Parallel()
	fx := newTestServer(t, healthyAnalyzers())

	ts := httptest.NewServer(fx.server)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/scan/" + testMint
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Progress events stream first; the final frame is the full bundle.
	var sawRunning, sawCheck bool
	for i := 0; i < 20; i++ {
		var msg map[string]any
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read frame %d: %v", i, err)
		}
		if raw, ok := msg["check"]; ok {
			check := raw.(map[string]any)
			if got := check["risk_score"].(float64); got != 12 {
				t.Errorf("final bundle risk = %v, want 12", got)
			}
			if !sawRunning || !sawCheck {
				t.Errorf("bundle arrived before progress events (running=%v check=%v)", sawRunning, sawCheck)
			}
			return
		}
		switch msg["type"] {
		case "status":
			if msg["status"] == "running" {
				sawRunning = true
			}
		case "check":
			sawCheck = true
		}
	}
	t.Fatal("never received the final bundle frame")
}
