package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"subreel/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(dir, "out")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Paths.HistoryDB = filepath.Join(dir, "history.db")
	return &cfg
}

func TestAddAndListRoundTrip(t *testing.T) {
	store, err := Open(testConfig(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	started := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	rec := Record{
		SessionID:      uuid.NewString(),
		StartedAt:      started,
		TranscriptPath: "/data/lesson.json",
		OutputPath:     "/data/out.webm",
		Frames:         180,
		Duration:       6,
		Status:         StatusCompleted,
	}
	if _, err := store.Add(context.Background(), rec); err != nil {
		t.Fatalf("Add: %v", err)
	}

	records, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.SessionID != rec.SessionID || got.Frames != 180 || got.Status != StatusCompleted {
		t.Fatalf("unexpected record %+v", got)
	}
	if !got.StartedAt.Equal(started) {
		t.Fatalf("unexpected start time %v", got.StartedAt)
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	store, err := Open(testConfig(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	for i := 0; i < 5; i++ {
		rec := Record{
			SessionID: uuid.NewString(),
			StartedAt: time.Now().UTC(),
			Frames:    i,
			Status:    StatusCompleted,
		}
		if _, err := store.Add(context.Background(), rec); err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
	}

	records, err := store.List(context.Background(), 3)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Frames != 4 {
		t.Fatalf("expected newest first, got frames=%d", records[0].Frames)
	}
}

func TestReopenExistingDatabase(t *testing.T) {
	cfg := testConfig(t)
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Add(context.Background(), Record{SessionID: uuid.NewString(), StartedAt: time.Now(), Status: StatusFailed, ErrorMessage: "encode failed"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	store.Close()

	reopened, err := Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	records, err := reopened.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 || records[0].Status != StatusFailed {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestClearRemovesAllSessions(t *testing.T) {
	store, err := Open(testConfig(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	for i := 0; i < 3; i++ {
		rec := Record{
			SessionID: uuid.NewString(),
			StartedAt: time.Now().UTC(),
			Status:    StatusCompleted,
		}
		if _, err := store.Add(context.Background(), rec); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	removed, err := store.Clear(context.Background())
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed, got %d", removed)
	}

	records, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty history, got %d records", len(records))
	}
}
