// Package database provides the history store for gf2div.
//
// Every division a user runs (from the CLI, the TUI or the HTTP API) can
// be recorded here together with its full step trace, so it can be
// listed later and replayed without recomputing. The DBService struct
// implements Store on SQLite in WAL mode.
package database

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Mr-Dark-debug/gf2div/pkg/gf2"
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrNotFound is returned by GetDivision for an unknown id.
var ErrNotFound = errors.New("division not found")

// Store defines the interface for division history persistence.
type Store interface {
	// InsertDivision persists one division and sets its ID.
	InsertDivision(d *Division) error
	// BatchInsertDivisions inserts several divisions in a single transaction.
	BatchInsertDivisions(ds []*Division) error
	// GetDivision returns the division with the given id, or ErrNotFound.
	GetDivision(id int64) (*Division, error)
	// QueryDivisions returns divisions matching filter, newest first.
	QueryDivisions(filter DivisionFilter) ([]*Division, error)
	// CountDivisions returns the number of stored divisions.
	CountDivisions() (int, error)
	// GetStats returns aggregate figures over the whole history.
	GetStats() (*HistoryStats, error)
	// Close releases the database.
	Close() error
}

// ──────────────────────────────────────────────────────────────
// Domain Models
// ──────────────────────────────────────────────────────────────

// Source values for Division.Source.
const (
	SourceCLI    = "cli"
	SourceTUI    = "tui"
	SourceServer = "server"
)

// Division is one recorded run of the generator.
type Division struct {
	ID         int64      `json:"id"`
	Dividend   string     `json:"dividend"`
	Divisor    string     `json:"divisor"`
	Quotient   string     `json:"quotient"`
	Remainder  string     `json:"remainder"`
	StepCount  int        `json:"step_count"`
	Degenerate bool       `json:"degenerate"`
	Steps      []gf2.Step `json:"steps,omitempty"`
	Source     string     `json:"source"`
	CreatedAt  int64      `json:"created_at"` // Unix nanoseconds
}

// NewDivision records trace t as produced by source, stamped now.
func NewDivision(t gf2.Trace, source string) *Division {
	if source == "" {
		source = SourceCLI
	}
	return &Division{
		Dividend:   t.Dividend.String(),
		Divisor:    t.Divisor.String(),
		Quotient:   t.QuotientBits().String(),
		Remainder:  t.Remainder().String(),
		StepCount:  t.Len(),
		Degenerate: t.Degenerate,
		Steps:      t.Steps,
		Source:     source,
		CreatedAt:  time.Now().UnixNano(),
	}
}

// Trace rebuilds the stored trace. If the step payload is missing it is
// regenerated from the operands.
func (d *Division) Trace() (gf2.Trace, error) {
	dividend, err := gf2.Parse(d.Dividend)
	if err != nil {
		return gf2.Trace{}, fmt.Errorf("stored dividend: %w", err)
	}
	divisor, err := gf2.Parse(d.Divisor)
	if err != nil {
		return gf2.Trace{}, fmt.Errorf("stored divisor: %w", err)
	}
	if len(d.Steps) == 0 {
		return gf2.Generate(dividend, divisor), nil
	}
	return gf2.Trace{
		Dividend:   dividend,
		Divisor:    divisor,
		Degenerate: d.Degenerate,
		Steps:      d.Steps,
	}, nil
}

// DivisionFilter defines query parameters for history listing.
type DivisionFilter struct {
	Divisor *string `json:"divisor,omitempty"`
	Source  *string `json:"source,omitempty"`
	Since   *int64  `json:"since,omitempty"` // Unix nanoseconds
	Until   *int64  `json:"until,omitempty"` // Unix nanoseconds
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
	// WithSteps loads the step payload; listings usually leave it off.
	WithSteps bool `json:"with_steps"`
}

// HistoryStats holds aggregate statistics over the stored divisions.
type HistoryStats struct {
	TotalDivisions   int     `json:"total_divisions"`
	DistinctDivisors int     `json:"distinct_divisors"`
	Degenerate       int     `json:"degenerate"`
	ZeroRemainder    int     `json:"zero_remainder"`
	AvgSteps         float64 `json:"avg_steps"`
	TopDivisor       string  `json:"top_divisor,omitempty"`
	TopDivisorCount  int     `json:"top_divisor_count"`
	FirstAt          int64   `json:"first_at"`
	LastAt           int64   `json:"last_at"`
}

// ──────────────────────────────────────────────────────────────
// DBService Implementation
// ──────────────────────────────────────────────────────────────

// DBService implements the Store interface using SQLite.
// Access is serialized through a read-write mutex.
type DBService struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string

	stmtInsertDivision *sql.Stmt
}

// NewDBService opens (or creates) the database at path, applies the
// schema and prepares the insert statement.
//
// Use ":memory:" for an in-memory database in tests.
func NewDBService(path string) (*DBService, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=-16000", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database at %s: %w", path, err)
	}

	// One connection: SQLite has a single writer, and ":memory:" is
	// private to its connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	svc := &DBService{
		db:   db,
		path: path,
	}

	if err := svc.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	if err := svc.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing statements: %w", err)
	}

	return svc, nil
}

// Path returns the location the service was opened with.
func (s *DBService) Path() string { return s.path }

func (s *DBService) initSchema() error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("reading embedded schema: %w", err)
	}

	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}

	return nil
}

func (s *DBService) prepareStatements() error {
	var err error

	s.stmtInsertDivision, err = s.db.Prepare(`
		INSERT INTO divisions (dividend, divisor, quotient, remainder, step_count,
			degenerate, steps_json, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing InsertDivision: %w", err)
	}

	return nil
}

func divisionArgs(d *Division) ([]interface{}, error) {
	steps := d.Steps
	if steps == nil {
		steps = []gf2.Step{}
	}
	stepsJSON, err := json.Marshal(steps)
	if err != nil {
		return nil, fmt.Errorf("marshaling steps: %w", err)
	}
	if d.CreatedAt == 0 {
		d.CreatedAt = time.Now().UnixNano()
	}
	if d.Source == "" {
		d.Source = SourceCLI
	}
	return []interface{}{
		d.Dividend, d.Divisor, d.Quotient, d.Remainder, d.StepCount,
		d.Degenerate, string(stepsJSON), d.Source, d.CreatedAt,
	}, nil
}

// InsertDivision persists d and stores the new row id in d.ID.
func (s *DBService) InsertDivision(d *Division) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	args, err := divisionArgs(d)
	if err != nil {
		return err
	}

	res, err := s.stmtInsertDivision.Exec(args...)
	if err != nil {
		return fmt.Errorf("inserting division %s / %s: %w", d.Dividend, d.Divisor, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading division id: %w", err)
	}
	d.ID = id
	return nil
}

// BatchInsertDivisions inserts ds within a single transaction. Either
// all rows are written or none.
func (s *DBService) BatchInsertDivisions(ds []*Division) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning batch division transaction: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt := tx.Stmt(s.stmtInsertDivision)
	ids := make([]int64, len(ds))
	for i, d := range ds {
		args, err := divisionArgs(d)
		if err != nil {
			return err
		}
		res, err := stmt.Exec(args...)
		if err != nil {
			return fmt.Errorf("batch inserting division %s / %s: %w", d.Dividend, d.Divisor, err)
		}
		if ids[i], err = res.LastInsertId(); err != nil {
			return fmt.Errorf("reading division id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch division transaction: %w", err)
	}
	for i, d := range ds {
		d.ID = ids[i]
	}
	return nil
}

// GetDivision returns one division including its steps.
func (s *DBService) GetDivision(id int64) (*Division, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, dividend, divisor, quotient, remainder, step_count,
			degenerate, source, created_at, steps_json
		FROM divisions
		WHERE id = ?
	`, id)

	d, err := scanDivision(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("division %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying division %d: %w", id, err)
	}
	return d, nil
}

// QueryDivisions returns divisions matching the given filter criteria.
// Results are ordered by created_at descending (most recent first).
func (s *DBService) QueryDivisions(filter DivisionFilter) ([]*Division, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cols := `id, dividend, divisor, quotient, remainder, step_count, degenerate, source, created_at`
	if filter.WithSteps {
		cols += `, steps_json`
	}
	query := `SELECT ` + cols + ` FROM divisions WHERE 1=1`
	args := make([]interface{}, 0)

	if filter.Divisor != nil {
		query += ` AND divisor = ?`
		args = append(args, *filter.Divisor)
	}
	if filter.Source != nil {
		query += ` AND source = ?`
		args = append(args, *filter.Source)
	}
	if filter.Since != nil {
		query += ` AND created_at >= ?`
		args = append(args, *filter.Since)
	}
	if filter.Until != nil {
		query += ` AND created_at <= ?`
		args = append(args, *filter.Until)
	}

	query += ` ORDER BY created_at DESC, id DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	} else {
		query += ` LIMIT 100`
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying divisions: %w", err)
	}
	defer rows.Close()

	var out []*Division
	for rows.Next() {
		d, err := scanDivision(rows, filter.WithSteps)
		if err != nil {
			return nil, fmt.Errorf("scanning division row: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CountDivisions returns the number of stored divisions.
func (s *DBService) CountDivisions() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM divisions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting divisions: %w", err)
	}
	return n, nil
}

// GetStats returns aggregated statistics over the history.
func (s *DBService) GetStats() (*HistoryStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &HistoryStats{}

	err := s.db.QueryRow(`
		SELECT
			COUNT(*),
			COUNT(DISTINCT divisor),
			COALESCE(SUM(degenerate), 0),
			COALESCE(SUM(CASE WHEN remainder NOT LIKE '%1%' THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(step_count), 0),
			COALESCE(MIN(created_at), 0),
			COALESCE(MAX(created_at), 0)
		FROM divisions
	`).Scan(
		&stats.TotalDivisions, &stats.DistinctDivisors, &stats.Degenerate,
		&stats.ZeroRemainder, &stats.AvgSteps, &stats.FirstAt, &stats.LastAt,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history stats: %w", err)
	}

	if stats.TotalDivisions == 0 {
		return stats, nil
	}

	err = s.db.QueryRow(`
		SELECT divisor, COUNT(*) AS n
		FROM divisions
		GROUP BY divisor
		ORDER BY n DESC, divisor ASC
		LIMIT 1
	`).Scan(&stats.TopDivisor, &stats.TopDivisorCount)
	if err != nil {
		return nil, fmt.Errorf("querying top divisor: %w", err)
	}

	return stats, nil
}

// Close closes the prepared statement and the connection pool.
func (s *DBService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stmtInsertDivision != nil {
		s.stmtInsertDivision.Close()
	}
	return s.db.Close()
}

// ──────────────────────────────────────────────────────────────
// Scan Helpers
// ──────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDivision(row rowScanner, withSteps bool) (*Division, error) {
	d := &Division{}
	dest := []interface{}{
		&d.ID, &d.Dividend, &d.Divisor, &d.Quotient, &d.Remainder,
		&d.StepCount, &d.Degenerate, &d.Source, &d.CreatedAt,
	}
	var stepsJSON string
	if withSteps {
		dest = append(dest, &stepsJSON)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if withSteps && stepsJSON != "" {
		if err := json.Unmarshal([]byte(stepsJSON), &d.Steps); err != nil {
			return nil, fmt.Errorf("decoding steps of division %d: %w", d.ID, err)
		}
	}
	return d, nil
}
