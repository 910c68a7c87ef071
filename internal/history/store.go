package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"leadmirror/internal/config"
)

// Store persists completed transcription runs in SQLite so operators can audit
// past results without keeping audio around.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Entry is one recorded transcription run. Transcript text is not stored, only
// its size; the product treats call content as ephemeral.
type Entry struct {
	ID              int64
	RequestID       string
	FileName        string
	ContentHash     string
	SizeBytes       int64
	Format          string
	Strategy        string
	Confidence      float64
	QualityScore    float64
	DurationSeconds float64
	TextChars       int
	ProcessingMS    int64
	Degraded        bool
	ErrorMessage    string
	CreatedAt       time.Time
}

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.HistoryDBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS transcription_runs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        request_id TEXT NOT NULL,
        file_name TEXT,
        content_hash TEXT NOT NULL,
        size_bytes INTEGER NOT NULL DEFAULT 0,
        format TEXT,
        strategy TEXT,
        confidence REAL NOT NULL DEFAULT 0,
        quality_score REAL NOT NULL DEFAULT 0,
        duration_seconds REAL NOT NULL DEFAULT 0,
        text_chars INTEGER NOT NULL DEFAULT 0,
        processing_ms INTEGER NOT NULL DEFAULT 0,
        degraded INTEGER NOT NULL DEFAULT 0,
        error_message TEXT,
        created_at TEXT NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_runs_hash ON transcription_runs(content_hash);
    CREATE INDEX IF NOT EXISTS idx_runs_created ON transcription_runs(created_at);`

	if err := s.execWithoutResultRetry(ctx, schema); err != nil {
		return fmt.Errorf("init history schema: %w", err)
	}
	return nil
}

// Record inserts one completed (or failed) run.
func (s *Store) Record(ctx context.Context, entry Entry) (int64, error) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO transcription_runs (
            request_id, file_name, content_hash, size_bytes, format, strategy,
            confidence, quality_score, duration_seconds, text_chars,
            processing_ms, degraded, error_message, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RequestID,
		nullableString(entry.FileName),
		entry.ContentHash,
		entry.SizeBytes,
		nullableString(entry.Format),
		nullableString(entry.Strategy),
		entry.Confidence,
		entry.QualityScore,
		entry.DurationSeconds,
		entry.TextChars,
		entry.ProcessingMS,
		boolToInt(entry.Degraded),
		nullableString(entry.ErrorMessage),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// List returns the most recent runs, newest first. limit <= 0 applies a
// default of 50.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+runColumns+` FROM transcription_runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// FindByHash returns past runs for the same audio content, newest first.
func (s *Store) FindByHash(ctx context.Context, contentHash string) ([]Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+runColumns+` FROM transcription_runs WHERE content_hash = ? ORDER BY id DESC`,
		contentHash,
	)
	if err != nil {
		return nil, fmt.Errorf("find by hash: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Stats aggregates run counts and averages for diagnostics.
type Stats struct {
	Total         int
	Degraded      int
	Failed        int
	AvgConfidence float64
}

// Summarize computes aggregate statistics over all recorded runs.
func (s *Store) Summarize(ctx context.Context) (Stats, error) {
	row := s.db.QueryRowContext(ctx, `SELECT
        COUNT(1),
        COALESCE(SUM(degraded), 0),
        COALESCE(SUM(CASE WHEN error_message IS NOT NULL THEN 1 ELSE 0 END), 0),
        COALESCE(AVG(CASE WHEN error_message IS NULL THEN confidence END), 0)
    FROM transcription_runs`)

	var stats Stats
	if err := row.Scan(&stats.Total, &stats.Degraded, &stats.Failed, &stats.AvgConfidence); err != nil {
		return Stats{}, fmt.Errorf("summarize runs: %w", err)
	}
	return stats, nil
}

// Prune removes runs older than the cutoff and returns how many were deleted.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.execWithRetry(
		ctx,
		`DELETE FROM transcription_runs WHERE created_at < ?`,
		cutoff.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

const runColumns = "id, request_id, file_name, content_hash, size_bytes, format, strategy, confidence, quality_score, duration_seconds, text_chars, processing_ms, degraded, error_message, created_at"

func scanRun(scanner interface{ Scan(dest ...any) error }) (Entry, error) {
	var (
		entry        Entry
		fileName     sql.NullString
		format       sql.NullString
		strategy     sql.NullString
		errorMessage sql.NullString
		degraded     sql.NullInt64
		createdRaw   string
	)

	if err := scanner.Scan(
		&entry.ID,
		&entry.RequestID,
		&fileName,
		&entry.ContentHash,
		&entry.SizeBytes,
		&format,
		&strategy,
		&entry.Confidence,
		&entry.QualityScore,
		&entry.DurationSeconds,
		&entry.TextChars,
		&entry.ProcessingMS,
		&degraded,
		&errorMessage,
		&createdRaw,
	); err != nil {
		return Entry{}, err
	}

	entry.FileName = fileName.String
	entry.Format = format.String
	entry.Strategy = strategy.String
	entry.ErrorMessage = errorMessage.String
	entry.Degraded = degraded.Valid && degraded.Int64 != 0
	if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		entry.CreatedAt = created
	}
	return entry, nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx = ensureContext(ctx)
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) execWithoutResultRetry(ctx context.Context, query string, args ...any) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
