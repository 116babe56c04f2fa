// Package history persists completed scans in sqlite and reports how a
// token's risk picture drifted between consecutive scans.
package history

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/interfaces"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"

	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrIncompleteScan rejects bundles without a completed check; only finished
// scans belong in history.
var ErrIncompleteScan = errors.New("bundle has no completed check")

// timeLayout is fixed-width so the lexicographic ORDER BY on the stored text
// matches chronological order even for sub-second differences.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store implements interfaces.ScanStore on sqlite.
type Store struct {
	db     *sql.DB
	logger interfaces.Logger
}

var _ interfaces.ScanStore = (*Store)(nil)

// Open opens (or creates) the database at path and applies the schema.
func Open(path string, logger interfaces.Logger) (*Store, error) {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db %s: %w", path, err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	logger.Info("history store opened", interfaces.Field{Key: "path", Value: path})
	return &Store{db: db, logger: logger.With(interfaces.Field{Key: "component", Value: "history"})}, nil
}

func applySchema(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("set pragma %q: %w", pragma, err)
		}
	}
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Save stores a completed bundle. The bundle is serialized as-is.
func (s *Store) Save(ctx context.Context, bundle *model.ScanBundle) error {
	if bundle == nil || bundle.Check == nil || bundle.Check.CompletedAt == nil {
		return ErrIncompleteScan
	}
	check := bundle.Check

	raw, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("encode bundle for %s: %w", check.TokenAddress, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	// A cache-served bundle may be submitted again under the same scan ID;
	// the primary key dedupes it.
	_, err = tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO scans (id, token_address, risk_score, risk_level, security_score,
			passed_checks, failed_checks, warning_checks, total_checks,
			started_at, completed_at, bundle_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		check.ID, check.TokenAddress, check.RiskScore, string(check.RiskLevel), check.SecurityScore,
		check.PassedChecks, check.FailedChecks, check.WarningChecks, check.TotalChecks,
		check.StartedAt.UTC().Format(timeLayout),
		check.CompletedAt.UTC().Format(timeLayout),
		string(raw),
	)
	if err != nil {
		return fmt.Errorf("insert scan %s: %w", check.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	s.logger.Debug("scan saved",
		interfaces.Field{Key: "scan_id", Value: check.ID},
		interfaces.Field{Key: "token", Value: check.TokenAddress})
	return nil
}

// Latest returns the newest stored scan for the token with its full bundle,
// or (nil, nil) when none exists.
func (s *Store) Latest(ctx context.Context, tokenAddress string) (*model.ScanRecord, error) {
	records, err := s.query(ctx, tokenAddress, 1, true)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// Recent returns up to limit stored scans for the token, newest first,
// without their bundles.
func (s *Store) Recent(ctx context.Context, tokenAddress string, limit int) ([]*model.ScanRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.query(ctx, tokenAddress, limit, false)
}

func (s *Store) query(ctx context.Context, tokenAddress string, limit int, withBundle bool) ([]*model.ScanRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, token_address, risk_score, risk_level, security_score,
			passed_checks, failed_checks, warning_checks, total_checks,
			started_at, completed_at, bundle_json
		FROM scans
		WHERE token_address = ?
		ORDER BY completed_at DESC, id DESC
		LIMIT ?`, tokenAddress, limit)
	if err != nil {
		return nil, fmt.Errorf("query scans for %s: %w", tokenAddress, err)
	}
	defer rows.Close()

	var records []*model.ScanRecord
	for rows.Next() {
		rec, err := scanRow(rows, withBundle)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRow(rows *sql.Rows, withBundle bool) (*model.ScanRecord, error) {
	var (
		rec                                model.ScanRecord
		level, startedAt, completedAt, raw string
	)
	if err := rows.Scan(&rec.ID, &rec.TokenAddress, &rec.RiskScore, &level, &rec.SecurityScore,
		&rec.PassedChecks, &rec.FailedChecks, &rec.WarningChecks, &rec.TotalChecks,
		&startedAt, &completedAt, &raw); err != nil {
		return nil, fmt.Errorf("scan row: %w", err)
	}
	rec.RiskLevel = model.RiskLevel(level)

	var err error
	if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("parse started_at %q: %w", startedAt, err)
	}
	if rec.CompletedAt, err = time.Parse(time.RFC3339Nano, completedAt); err != nil {
		return nil, fmt.Errorf("parse completed_at %q: %w", completedAt, err)
	}

	if withBundle {
		var bundle model.ScanBundle
		if err := json.Unmarshal([]byte(raw), &bundle); err != nil {
			return nil, fmt.Errorf("decode bundle for scan %s: %w", rec.ID, err)
		}
		rec.Bundle = &bundle
	}
	return &rec, nil
}

// Drift compares the two most recent scans for the token. Returns (nil, nil)
// when fewer than two scans are stored.
func (s *Store) Drift(ctx context.Context, tokenAddress string) (*model.DriftReport, error) {
	records, err := s.query(ctx, tokenAddress, 2, true)
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}
	// query returns newest first; the drift reads base -> head.
	head, base := records[0], records[1]
	return compare(tokenAddress, base, head), nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
