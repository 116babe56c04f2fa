// Package server exposes the scanner over HTTP and WebSocket: scan requests,
// stored history and drift queries, and cache administration.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/interfaces"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/scanner"
)

// Server is the HTTP + WebSocket API surface.
type Server struct {
	cfg      Config
	scanner  *scanner.Scanner
	store    interfaces.ScanStore
	router   chi.Router
	upgrader websocket.Upgrader
	logger   interfaces.Logger
}

// New builds the server around an existing scanner. store may be nil, which
// disables the history endpoints.
func New(sc *scanner.Scanner, store interfaces.ScanStore, cfg Config, logger interfaces.Logger) (*Server, error) {
	if sc == nil {
		return nil, errors.New("server: scanner is required")
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultConfig().ListenAddr
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}

	s := &Server{
		cfg:     cfg,
		scanner: sc,
		store:   store,
		router:  chi.NewRouter(),
		logger:  logger.With(interfaces.Field{Key: "component", Value: "server"}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: tighten for production
				return true
			},
		},
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/api/v1/scan", s.optionsHandler("POST"))
	r.Options("/api/v1/tokens/{mint}", s.optionsHandler("GET"))
	r.Options("/api/v1/tokens/{mint}/history", s.optionsHandler("GET"))
	r.Options("/api/v1/tokens/{mint}/drift", s.optionsHandler("GET"))
	r.Options("/api/v1/cache", s.optionsHandler("DELETE"))
	r.Options("/api/v1/cache/{mint}", s.optionsHandler("GET, DELETE"))
	r.Options("/ws/scan/{mint}", s.optionsHandler("GET"))

	// Scans
	r.Post("/api/v1/scan", s.handleScan)

	// History
	r.Get("/api/v1/tokens/{mint}", s.handleLatestScan)
	r.Get("/api/v1/tokens/{mint}/history", s.handleScanHistory)
	r.Get("/api/v1/tokens/{mint}/drift", s.handleScanDrift)

	// Cache administration
	r.Get("/api/v1/cache/{mint}", s.handleGetCached)
	r.Delete("/api/v1/cache/{mint}", s.handleInvalidateCached)
	r.Delete("/api/v1/cache", s.handleClearCache)

	// Health
	r.Get("/healthz", s.handleHealth)

	// WebSocket for scan progress
	r.Get("/ws/scan/{mint}", s.handleScanWS)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []interfaces.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, interfaces.Field{Key: "query", Value: q})
	}

	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch) {
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields, interfaces.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeScanError maps scan failures onto HTTP statuses: bad address is the
// caller's fault, deadline is a gateway timeout, and total analyzer failure
// means upstream data sources are down.
func (s *Server) writeScanError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidTokenAddress):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, scanner.ErrScanDeadline):
		writeError(w, http.StatusGatewayTimeout, err.Error())
	case errors.Is(err, scanner.ErrAllAnalyzersFailed):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// parseScanOptions turns a request body into scanner options, validating the
// skip list against the closed check-type set.
func parseScanOptions(req ScanRequest) (scanner.Options, error) {
	opts := scanner.DefaultOptions()
	opts.MarketCapUsd = req.MarketCapUsd
	if req.UseCache != nil {
		opts.UseCache = *req.UseCache
	}
	for _, raw := range req.SkipChecks {
		ct, err := model.ParseCheckType(raw)
		if err != nil {
			return scanner.Options{}, err
		}
		opts.SkipChecks = append(opts.SkipChecks, ct)
	}
	return opts, nil
}

// --- HTTP handlers ---

// Scans

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	opts, err := parseScanOptions(req)
	if err != nil {
		s.logger.Warn("rejecting scan request", interfaces.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bundle, err := s.scanner.Scan(r.Context(), req.TokenAddress, opts)
	if err != nil {
		s.logger.Warn("scan failed",
			interfaces.Field{Key: "token", Value: req.TokenAddress},
			interfaces.Field{Key: "error", Value: err.Error()})
		s.writeScanError(w, err)
		return
	}

	s.saveScan(r, bundle)

	s.logger.Info("scan served",
		interfaces.Field{Key: "token", Value: req.TokenAddress},
		interfaces.Field{Key: "risk_score", Value: bundle.Check.RiskScore})
	writeJSON(w, http.StatusOK, bundle)
}

// saveScan persists a completed bundle. Persistence failure never fails the
// request; the caller already has the result.
func (s *Server) saveScan(r *http.Request, bundle *model.ScanBundle) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(r.Context(), bundle); err != nil {
		s.logger.Warn("persisting scan",
			interfaces.Field{Key: "token", Value: bundle.Check.TokenAddress},
			interfaces.Field{Key: "error", Value: err.Error()})
	}
}

// History

func (s *Server) handleLatestScan(w http.ResponseWriter, r *http.Request) {
	mint := chi.URLParam(r, "mint")
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "scan history is not enabled")
		return
	}
	if err := model.ValidateTokenAddress(mint); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := s.store.Latest(r.Context(), mint)
	if err != nil {
		s.logger.Warn("loading latest scan", interfaces.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "no scans recorded for token")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleScanHistory(w http.ResponseWriter, r *http.Request) {
	mint := chi.URLParam(r, "mint")
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "scan history is not enabled")
		return
	}
	if err := model.ValidateTokenAddress(mint); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := 20
	if ls := r.URL.Query().Get("limit"); ls != "" {
		if v, err := strconv.Atoi(ls); err == nil && v > 0 {
			limit = v
		}
	}

	records, err := s.store.Recent(r.Context(), mint, limit)
	if err != nil {
		s.logger.Warn("loading scan history", interfaces.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []*model.ScanRecord{}
	}
	s.logger.Info("listed scan history",
		interfaces.Field{Key: "token", Value: mint},
		interfaces.Field{Key: "count", Value: len(records)})
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleScanDrift(w http.ResponseWriter, r *http.Request) {
	mint := chi.URLParam(r, "mint")
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "scan history is not enabled")
		return
	}
	if err := model.ValidateTokenAddress(mint); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.store.Drift(r.Context(), mint)
	if err != nil {
		s.logger.Warn("computing drift", interfaces.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "drift needs at least two recorded scans")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Cache

func (s *Server) handleGetCached(w http.ResponseWriter, r *http.Request) {
	mint := chi.URLParam(r, "mint")
	bundle, hit := s.scanner.GetCached(mint)
	if !hit {
		writeError(w, http.StatusNotFound, "no cached scan for token")
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (s *Server) handleInvalidateCached(w http.ResponseWriter, r *http.Request) {
	mint := chi.URLParam(r, "mint")
	s.scanner.InvalidateCached(mint)
	s.logger.Info("invalidated cached scan", interfaces.Field{Key: "token", Value: mint})
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	s.scanner.ClearCache()
	s.logger.Info("cleared scan cache")
	writeJSON(w, http.StatusNoContent, nil)
}

// Health

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: model.Version})
}

// WebSockets

// handleScanWS streams scan progress events over a WebSocket and finishes
// with the full bundle. Query parameters mirror the REST scan request:
// market_cap_usd, skip (repeatable) and use_cache.
func (s *Server) handleScanWS(w http.ResponseWriter, r *http.Request) {
	mint := chi.URLParam(r, "mint")

	opts := scanner.DefaultOptions()
	q := r.URL.Query()
	if mc := q.Get("market_cap_usd"); mc != "" {
		if v, err := strconv.ParseFloat(mc, 64); err == nil && v > 0 {
			opts.MarketCapUsd = v
		}
	}
	if uc := q.Get("use_cache"); uc == "false" {
		opts.UseCache = false
	}
	for _, raw := range q["skip"] {
		ct, err := model.ParseCheckType(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		opts.SkipChecks = append(opts.SkipChecks, ct)
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", interfaces.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	// Progress callbacks arrive sequentially from the scanning goroutine,
	// so writing to the connection here is safe.
	opts.Progress = func(ev scanner.Event) {
		_ = conn.WriteJSON(ev)
	}

	bundle, err := s.scanner.Scan(r.Context(), mint, opts)
	if err != nil {
		s.logger.Warn("websocket scan failed",
			interfaces.Field{Key: "token", Value: mint},
			interfaces.Field{Key: "error", Value: err.Error()})
		_ = conn.WriteJSON(ErrorResponse{Error: err.Error()})
		return
	}

	s.saveScan(r, bundle)
	_ = conn.WriteJSON(bundle)
}
