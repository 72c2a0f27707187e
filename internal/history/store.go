package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/asa/foundation/core/error"
)

// Status is the outcome of a recorded run
type Status string

const (
	StatusOK       Status = "OK"
	StatusRejected Status = "REJECTED"
)

// Entry represents a single recorded parse run
type Entry struct {
	ID        string                 `json:"id"`
	RunID     string                 `json:"run_id,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Command   string                 `json:"command"`
	Source    string                 `json:"source"`
	Input     string                 `json:"input"`
	Status    Status                 `json:"status"`
	Tokens    int                    `json:"tokens"`
	Functions int                    `json:"functions"`
	ErrorCode string                 `json:"error_code,omitempty"`
	Severity  string                 `json:"severity,omitempty"`
	Message   string                 `json:"message,omitempty"`
	Line      int                    `json:"line,omitempty"`
	Column    int                    `json:"column,omitempty"`
	Duration  time.Duration          `json:"duration"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Filter defines criteria for filtering entries
type Filter struct {
	Command string
	Status  Status
	Since   time.Time
	Limit   int
	Offset  int
}

// Stats summarizes the stored entries
type Stats struct {
	Total     int64            `json:"total"`
	ByStatus  map[string]int64 `json:"by_status"`
	ByCommand map[string]int64 `json:"by_command"`
	LastEntry time.Time        `json:"last_entry,omitempty"`
}

// Store defines the interface for history persistence
type Store interface {
	Record(ctx context.Context, entry *Entry) error
	Get(ctx context.Context, id string) (*Entry, error)
	Query(ctx context.Context, filter Filter) ([]*Entry, error)
	Stats(ctx context.Context) (*Stats, error)

	// Maintenance
	Vacuum(ctx context.Context) error
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// prepare assigns an ID and timestamp where missing
func prepare(entry *Entry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	entry.Timestamp = entry.Timestamp.UTC()
}

func notFound(id string) error {
	return mdwerror.New(fmt.Sprintf("history entry not found: %s", id)).
		WithCode(mdwerror.CodeNotFound).
		WithOperation("history.Get").
		WithDetail("id", id)
}

func storageError(err error, message, operation string) error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeStorageError).
		WithOperation(operation)
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// SQLiteConfig holds configuration for SQLite store
type SQLiteConfig struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./data/history.db",
	}
}

// NewSQLiteStore creates a new SQLite-based history store
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		cfg.Path = DefaultConfig().Path
	}

	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, storageError(err, "failed to create directory", "history.NewSQLiteStore")
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, storageError(err, "failed to open database", "history.NewSQLiteStore")
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, storageError(err, "failed to initialize schema", "history.NewSQLiteStore")
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		run_id TEXT,
		timestamp DATETIME NOT NULL,
		command TEXT NOT NULL,
		source TEXT NOT NULL,
		input TEXT NOT NULL,
		status TEXT NOT NULL,
		tokens INTEGER NOT NULL,
		functions INTEGER NOT NULL,
		error_code TEXT,
		severity TEXT,
		message TEXT,
		line INTEGER,
		col INTEGER,
		duration_ns INTEGER NOT NULL,
		metadata TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
	CREATE INDEX IF NOT EXISTS idx_runs_command ON runs(command);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores a run
func (s *SQLiteStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(entry)

	var metadataJSON []byte
	if entry.Metadata != nil {
		var err error
		if metadataJSON, err = json.Marshal(entry.Metadata); err != nil {
			return storageError(err, "failed to encode history metadata", "history.Record")
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, run_id, timestamp, command, source, input, status, tokens, functions,
			error_code, severity, message, line, col, duration_ns, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.RunID, entry.Timestamp, entry.Command, entry.Source, entry.Input, entry.Status,
		entry.Tokens, entry.Functions, entry.ErrorCode, entry.Severity, entry.Message, entry.Line, entry.Column,
		int64(entry.Duration), metadataJSON)

	if err != nil {
		return storageError(err, "failed to insert history entry", "history.Record")
	}

	return nil
}

const selectColumns = `SELECT id, run_id, timestamp, command, source, input, status, tokens, functions,
	error_code, severity, message, line, col, duration_ns, metadata FROM runs`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (*Entry, error) {
	var entry Entry
	var runID, errorCode, severity, message, metadataJSON sql.NullString
	var line, column sql.NullInt64
	var durationNS int64

	if err := row.Scan(&entry.ID, &runID, &entry.Timestamp, &entry.Command, &entry.Source, &entry.Input,
		&entry.Status, &entry.Tokens, &entry.Functions, &errorCode, &severity, &message, &line, &column,
		&durationNS, &metadataJSON); err != nil {
		return nil, err
	}

	entry.RunID = runID.String
	entry.ErrorCode = errorCode.String
	entry.Severity = severity.String
	entry.Message = message.String
	entry.Line = int(line.Int64)
	entry.Column = int(column.Int64)
	entry.Duration = time.Duration(durationNS)
	if metadataJSON.Valid && metadataJSON.String != "" {
		if err := json.Unmarshal([]byte(metadataJSON.String), &entry.Metadata); err != nil {
			return nil, mdwerror.Wrap(err, "failed to decode history metadata").
				WithCode(mdwerror.CodeStorageError).
				WithDetail("id", entry.ID)
		}
	}
	return &entry, nil
}

// Get returns the entry with the given ID
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, err := scanEntry(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, storageError(err, "failed to read history entry", "history.Get")
	}
	return entry, nil
}

// Query retrieves entries based on filter criteria, newest first
func (s *SQLiteStore) Query(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := selectColumns + ` WHERE 1=1`
	var args []interface{}

	if filter.Command != "" {
		query += " AND command = ?"
		args = append(args, filter.Command)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if !filter.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since.UTC())
	}

	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			query += " LIMIT -1"
		}
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError(err, "failed to query history", "history.Query")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, storageError(err, "failed to scan history entry", "history.Query")
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Stats returns history statistics
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{
		ByStatus:  make(map[string]int64),
		ByCommand: make(map[string]int64),
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&stats.Total); err != nil {
		return nil, storageError(err, "failed to count history entries", "history.Stats")
	}

	if err := s.countBy(ctx, "status", stats.ByStatus); err != nil {
		return nil, err
	}
	if err := s.countBy(ctx, "command", stats.ByCommand); err != nil {
		return nil, err
	}

	// Last entry time
	var lastEntry sql.NullString
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(timestamp) FROM runs`).Scan(&lastEntry); err != nil {
		return nil, storageError(err, "failed to read last history entry", "history.Stats")
	}
	if lastEntry.Valid {
		t, err := parseTimestamp(lastEntry.String)
		if err != nil {
			return nil, storageError(err, "failed to parse last history timestamp", "history.Stats")
		}
		stats.LastEntry = t
	}

	return stats, nil
}

func (s *SQLiteStore) countBy(ctx context.Context, column string, into map[string]int64) error {
	rows, err := s.db.QueryContext(ctx, `SELECT `+column+`, COUNT(*) FROM runs GROUP BY `+column)
	if err != nil {
		return storageError(err, "failed to group history entries", "history.Stats")
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return storageError(err, "failed to scan history statistics", "history.Stats")
		}
		into[key] = count
	}
	return rows.Err()
}

// parseTimestamp reads the text form go-sqlite3 writes for time.Time
func parseTimestamp(value string) (time.Time, error) {
	layouts := []string{
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02T15:04:05.999999999-07:00",
		"2006-01-02 15:04:05.999999999",
		time.RFC3339Nano,
	}
	var err error
	for _, layout := range layouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}

// Vacuum optimizes the database
func (s *SQLiteStore) Vacuum(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `VACUUM`); err != nil {
		return storageError(err, "failed to vacuum history", "history.Vacuum")
	}
	return nil
}

// Prune removes entries older than the specified duration
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan).UTC()

	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, storageError(err, "failed to prune history", "history.Prune")
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, storageError(err, "failed to count pruned entries", "history.Prune")
	}

	return deleted, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// MemoryStore is an in-memory implementation for testing
type MemoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
}

// NewMemoryStore creates a new in-memory history store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make([]*Entry, 0),
	}
}

// Record stores a run
func (s *MemoryStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(entry)
	s.entries = append(s.entries, entry)
	return nil
}

// Get returns the entry with the given ID
func (s *MemoryStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return nil, notFound(id)
}

// Query retrieves entries based on filter criteria, newest first
func (s *MemoryStore) Query(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		entry := s.entries[i]
		if filter.Command != "" && entry.Command != filter.Command {
			continue
		}
		if filter.Status != "" && entry.Status != filter.Status {
			continue
		}
		if !filter.Since.IsZero() && entry.Timestamp.Before(filter.Since) {
			continue
		}
		results = append(results, entry)
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(results) {
			return nil, nil
		}
		results = results[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(results) {
		results = results[:filter.Limit]
	}

	return results, nil
}

// Stats returns history statistics
func (s *MemoryStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{
		Total:     int64(len(s.entries)),
		ByStatus:  make(map[string]int64),
		ByCommand: make(map[string]int64),
	}
	for _, entry := range s.entries {
		stats.ByStatus[string(entry.Status)]++
		stats.ByCommand[entry.Command]++
		if entry.Timestamp.After(stats.LastEntry) {
			stats.LastEntry = entry.Timestamp
		}
	}
	return stats, nil
}

// Vacuum is a no-op for memory store
func (s *MemoryStore) Vacuum(ctx context.Context) error {
	return nil
}

// Prune removes old entries
func (s *MemoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	var deleted int64

	kept := make([]*Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		if entry.Timestamp.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, entry)
	}
	s.entries = kept

	return deleted, nil
}

// Close is a no-op for memory store
func (s *MemoryStore) Close() error {
	return nil
}
