package log

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLogger_AppendAndReadAll(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	events := []LogEvent{
		{Event: EventAnalysisStarted, Transcript: "rolls.log", Reference: "Cidel"},
		{Event: EventRollCommitted, User: "Alice", DieSize: 6, Dice: 2, LineNum: 7},
		{Event: EventAnalysisComplete, RunID: "run-1", Rolls: 1, Dice: 2, Lines: 7, DurationMs: 12},
	}
	for _, e := range events {
		if err := logger.Append(e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if got[1].User != "Alice" || got[1].DieSize != 6 {
		t.Errorf("event[1] = %+v", got[1])
	}
	if got[0].Time.IsZero() {
		t.Error("Append should stamp zero times")
	}

	completed := Filter(got, EventAnalysisComplete)
	if len(completed) != 1 || completed[0].RunID != "run-1" {
		t.Errorf("Filter(complete) = %+v", completed)
	}
}

func TestLogger_KeepsExplicitTime(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	ts := time.Date(2022, 4, 3, 20, 0, 0, 0, time.UTC)
	if err := logger.Append(LogEvent{Time: ts, Event: EventAnalysisFailed, Kind: "FACE_COUNT_MISMATCH"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !got[0].Time.Equal(ts) {
		t.Errorf("Time = %v, want %v", got[0].Time, ts)
	}
}

func TestLogger_ReadAllMissingFile(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	events, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}

func TestLogger_ReadAllBadLine(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".rollcall", "log.jsonl"), []byte("{not json}\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := logger.ReadAll(); err == nil {
		t.Error("expected parse error, got nil")
	}
}
