package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	mdwerror "github.com/msto63/asa/foundation/core/error"
	mdwlog "github.com/msto63/asa/foundation/core/log"

	"github.com/msto63/asa/foundation/asa/parser"
)

func createTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(SQLiteConfig{Path: filepath.Join(t.TempDir(), "history.db")})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// stores runs a test against every Store implementation
func stores(t *testing.T, test func(t *testing.T, store Store)) {
	t.Run("sqlite", func(t *testing.T) { test(t, createTestSQLiteStore(t)) })
	t.Run("memory", func(t *testing.T) { test(t, NewMemoryStore()) })
}

func TestDefaultConfig(t *testing.T) {
	if cfg := DefaultConfig(); cfg.Path != "./data/history.db" {
		t.Errorf("Path = %v, want ./data/history.db", cfg.Path)
	}
}

func TestNewSQLiteStore_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	store, err := NewSQLiteStore(SQLiteConfig{Path: path})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer store.Close()

	if store.db == nil {
		t.Error("db should not be nil")
	}
}

func TestStore_RecordAndGet(t *testing.T) {
	stores(t, func(t *testing.T, store Store) {
		ctx := context.Background()

		entry := NewEntry("parse", "main.asa", "fn a(){return 1;}").
			Complete(10, 1, 3*time.Millisecond)
		entry.Metadata = map[string]interface{}{"rule": "program"}
		entry.RunID = "run-1"

		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		if _, err := uuid.Parse(entry.ID); err != nil {
			t.Errorf("ID %q is not a UUID: %v", entry.ID, err)
		}

		got, err := store.Get(ctx, entry.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Command != "parse" || got.Source != "main.asa" || got.Input != entry.Input {
			t.Errorf("Get() = %+v", got)
		}
		if got.Status != StatusOK || got.Tokens != 10 || got.Functions != 1 {
			t.Errorf("Get() status/tokens/functions = %v/%d/%d", got.Status, got.Tokens, got.Functions)
		}
		if got.Duration != 3*time.Millisecond {
			t.Errorf("Duration = %v, want 3ms", got.Duration)
		}
		if got.RunID != "run-1" {
			t.Errorf("RunID = %q, want run-1", got.RunID)
		}
		if got.Metadata["rule"] != "program" {
			t.Errorf("Metadata = %v", got.Metadata)
		}
		if !got.Timestamp.Equal(entry.Timestamp) {
			t.Errorf("Timestamp = %v, want %v", got.Timestamp, entry.Timestamp)
		}
	})
}

func TestStore_GetNotFound(t *testing.T) {
	stores(t, func(t *testing.T, store Store) {
		_, err := store.Get(context.Background(), "missing")
		if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
			t.Errorf("Get() error = %v, want NOT_FOUND", err)
		}
	})
}

func TestStore_Query(t *testing.T) {
	stores(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		base := time.Now().Add(-time.Hour)

		for i, command := range []string{"parse", "check", "parse", "parse"} {
			entry := NewEntry(command, "<stdin>", "")
			entry.Timestamp = base.Add(time.Duration(i) * time.Minute)
			if i == 2 {
				entry.Status = StatusRejected
			}
			if err := store.Record(ctx, entry); err != nil {
				t.Fatalf("Record() error = %v", err)
			}
		}

		all, err := store.Query(ctx, Filter{})
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if len(all) != 4 {
			t.Fatalf("Query() returned %d entries, want 4", len(all))
		}
		for i := 1; i < len(all); i++ {
			if all[i].Timestamp.After(all[i-1].Timestamp) {
				t.Errorf("entries not newest first at %d", i)
			}
		}

		parses, _ := store.Query(ctx, Filter{Command: "parse"})
		if len(parses) != 3 {
			t.Errorf("Command filter returned %d, want 3", len(parses))
		}

		rejected, _ := store.Query(ctx, Filter{Status: StatusRejected})
		if len(rejected) != 1 {
			t.Errorf("Status filter returned %d, want 1", len(rejected))
		}

		recent, _ := store.Query(ctx, Filter{Since: base.Add(90 * time.Second)})
		if len(recent) != 2 {
			t.Errorf("Since filter returned %d, want 2", len(recent))
		}

		page, _ := store.Query(ctx, Filter{Limit: 2, Offset: 1})
		if len(page) != 2 || !page[0].Timestamp.Equal(all[1].Timestamp) {
			t.Errorf("paged query = %d entries", len(page))
		}

		tail, _ := store.Query(ctx, Filter{Offset: 3})
		if len(tail) != 1 {
			t.Errorf("offset without limit returned %d, want 1", len(tail))
		}
	})
}

func TestStore_Stats(t *testing.T) {
	stores(t, func(t *testing.T, store Store) {
		ctx := context.Background()

		store.Record(ctx, NewEntry("parse", "a", ""))
		store.Record(ctx, NewEntry("parse", "b", "").Reject(mdwerror.New("boom").WithCode(mdwerror.CodeAsaSyntax), 0, 0))
		store.Record(ctx, NewEntry("tokens", "c", ""))

		stats, err := store.Stats(ctx)
		if err != nil {
			t.Fatalf("Stats() error = %v", err)
		}
		if stats.Total != 3 {
			t.Errorf("Total = %d, want 3", stats.Total)
		}
		if stats.ByStatus[string(StatusRejected)] != 1 || stats.ByStatus[string(StatusOK)] != 2 {
			t.Errorf("ByStatus = %v", stats.ByStatus)
		}
		if stats.ByCommand["parse"] != 2 || stats.ByCommand["tokens"] != 1 {
			t.Errorf("ByCommand = %v", stats.ByCommand)
		}
		if stats.LastEntry.IsZero() {
			t.Error("LastEntry should be set")
		}
	})
}

func TestStore_Prune(t *testing.T) {
	stores(t, func(t *testing.T, store Store) {
		ctx := context.Background()

		old := NewEntry("parse", "old", "")
		old.Timestamp = time.Now().Add(-48 * time.Hour)
		store.Record(ctx, old)
		store.Record(ctx, NewEntry("parse", "new", ""))

		deleted, err := store.Prune(ctx, 24*time.Hour)
		if err != nil {
			t.Fatalf("Prune() error = %v", err)
		}
		if deleted != 1 {
			t.Errorf("Prune() deleted %d, want 1", deleted)
		}

		remaining, _ := store.Query(ctx, Filter{})
		if len(remaining) != 1 || remaining[0].Source != "new" {
			t.Errorf("remaining = %v", remaining)
		}

		if err := store.Vacuum(ctx); err != nil {
			t.Errorf("Vacuum() error = %v", err)
		}
	})
}

func TestEntry_Reject(t *testing.T) {
	p, err := parser.New(parser.Options{Logger: mdwlog.Discard()})
	if err != nil {
		t.Fatalf("parser.New() error = %v", err)
	}
	_, perr := p.Parse("fn a(){return 1;")

	entry := NewEntry("parse", "<stdin>", "fn a(){return 1;").Reject(perr, 10, time.Millisecond)

	if entry.Status != StatusRejected {
		t.Errorf("Status = %v, want REJECTED", entry.Status)
	}
	if entry.ErrorCode != "ASA_SYNTAX" {
		t.Errorf("ErrorCode = %v, want ASA_SYNTAX", entry.ErrorCode)
	}
	if entry.Line != 1 || entry.Column != 17 {
		t.Errorf("position = %d:%d, want 1:17", entry.Line, entry.Column)
	}
	if entry.Message != perr.Error() {
		t.Errorf("Message = %q", entry.Message)
	}
	if entry.Severity != "low" {
		t.Errorf("Severity = %q, want low", entry.Severity)
	}
}

func TestSQLiteStore_RejectedRoundTrip(t *testing.T) {
	store := createTestSQLiteStore(t)
	ctx := context.Background()

	entry := NewEntry("check", "x.asa", "fn a(").
		Reject(mdwerror.New("too deep").WithCode(mdwerror.CodeAsaLimit), 3, time.Millisecond)
	if err := store.Record(ctx, entry); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, err := store.Get(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ErrorCode != "ASA_LIMIT" || got.Severity != "high" || got.Message != "too deep" {
		t.Errorf("Get() = code %q, severity %q, message %q", got.ErrorCode, got.Severity, got.Message)
	}
}

func TestSQLiteStore_MetadataErrors(t *testing.T) {
	store := createTestSQLiteStore(t)
	ctx := context.Background()

	bad := NewEntry("parse", "x.asa", "")
	bad.Metadata = map[string]interface{}{"rest": make(chan int)}
	if err := store.Record(ctx, bad); !mdwerror.HasCode(err, mdwerror.CodeStorageError) {
		t.Errorf("Record() with unencodable metadata error = %v", err)
	}

	entry := NewEntry("parse", "x.asa", "")
	entry.Metadata = map[string]interface{}{"rule": "number"}
	if err := store.Record(ctx, entry); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if _, err := store.db.ExecContext(ctx, `UPDATE runs SET metadata = '{' WHERE id = ?`, entry.ID); err != nil {
		t.Fatalf("corrupting metadata: %v", err)
	}

	if _, err := store.Get(ctx, entry.ID); !mdwerror.HasCode(err, mdwerror.CodeStorageError) {
		t.Errorf("Get() with corrupt metadata error = %v", err)
	}
	if _, err := store.Query(ctx, Filter{}); !mdwerror.HasCode(err, mdwerror.CodeStorageError) {
		t.Errorf("Query() with corrupt metadata error = %v", err)
	}
}

func TestSQLiteStore_ClosedDatabase(t *testing.T) {
	store := createTestSQLiteStore(t)
	store.Close()
	ctx := context.Background()

	if _, err := store.Stats(ctx); !mdwerror.HasCode(err, mdwerror.CodeStorageError) {
		t.Errorf("Stats() error = %v", err)
	}
	if _, err := store.Prune(ctx, time.Hour); !mdwerror.HasCode(err, mdwerror.CodeStorageError) {
		t.Errorf("Prune() error = %v", err)
	}
	if err := store.Vacuum(ctx); !mdwerror.HasCode(err, mdwerror.CodeStorageError) {
		t.Errorf("Vacuum() error = %v", err)
	}
}

// failingStore rejects every write
type failingStore struct {
	*MemoryStore
}

func (failingStore) Record(context.Context, *Entry) error {
	return storageError(errors.New("disk full"), "failed to insert history entry", "history.Record")
}

func TestRecorder_StoreFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelDebug, Format: mdwlog.FormatJSON, Output: &buf})
	recorder := NewRecorder(failingStore{NewMemoryStore()}, logger)

	entry := NewEntry("parse", "x.asa", "")
	entry.RunID = "run-7"
	recorder.Record(context.Background(), entry)

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log output %q: %v", buf.String(), err)
	}
	want := map[string]interface{}{
		"level":          "warn",
		"logger":         "history",
		"message":        "failed to record history entry",
		"error_code":     "STORAGE_ERROR",
		"error_severity": "low",
		"error_command":  "parse",
	}
	for k, v := range want {
		if line[k] != v {
			t.Errorf("log %s = %v, want %v", k, line[k], v)
		}
	}
}

func TestRecorder(t *testing.T) {
	store := NewMemoryStore()
	recorder := NewRecorder(store, mdwlog.Discard())

	recorder.Record(context.Background(), NewEntry("check", "x.asa", ""))

	entries, _ := store.Query(context.Background(), Filter{})
	if len(entries) != 1 {
		t.Fatalf("recorded %d entries, want 1", len(entries))
	}
	if recorder.Store() != Store(store) {
		t.Error("Store() should return the wrapped store")
	}

	var disabled *Recorder
	disabled.Record(context.Background(), NewEntry("check", "x.asa", ""))
	if disabled.Store() != nil || disabled.Close() != nil {
		t.Error("nil recorder should be a no-op")
	}
}
