package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/berth-dev/rollcall/internal/transcript"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRecords() []transcript.Record {
	return []transcript.Record{
		{User: "Alice", DieSize: 6, Faces: []int{3, 5}, DeclaredAt: 1, TotalAt: 6},
		{User: "Cidel", DieSize: 20, Faces: []int{17}, DeclaredAt: 7, TotalAt: 11},
		{User: "Alice", DieSize: 6, Faces: []int{1}, DeclaredAt: 12, TotalAt: 16},
	}
}

func TestCreateRun_RecordsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	run, err := s.CreateRun("20261018-120000", "session.log", "Cidel", sampleRecords())
	if err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}
	if run.ID == "" {
		t.Error("expected a generated run ID")
	}
	if run.Records != 3 {
		t.Errorf("Records = %d, want 3", run.Records)
	}

	got, err := s.Records(run.ID)
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if diff := cmp.Diff(sampleRecords(), got); diff != "" {
		t.Errorf("Records mismatch (-want +got):\n%s", diff)
	}
}

func TestGetRunByDir(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateRun("20261018-120000", "session.log", "Cidel", nil)
	if err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}

	got, err := s.GetRunByDir("20261018-120000")
	if err != nil {
		t.Fatalf("GetRunByDir failed: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatalf("GetRunByDir = %+v, want ID %s", got, created.ID)
	}
	if got.Transcript != "session.log" || got.Reference != "Cidel" {
		t.Errorf("unexpected run: %+v", got)
	}

	missing, err := s.GetRunByDir("19990101-000000")
	if err != nil {
		t.Fatalf("GetRunByDir failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown dir, got %+v", missing)
	}
}

func TestCreateRun_DuplicateDir(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreateRun("20261018-120000", "a.log", "Cidel", sampleRecords()); err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}
	if _, err := s.CreateRun("20261018-120000", "b.log", "Cidel", sampleRecords()); err == nil {
		t.Fatal("expected error for duplicate dir")
	}

	runs, err := s.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run after failed insert, got %d", len(runs))
	}
}

func TestListRuns(t *testing.T) {
	s := newTestStore(t)

	none, err := s.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no runs, got %+v", none)
	}

	dirs := []string{"20261016-080000", "20261017-080000", "20261018-080000"}
	for _, d := range dirs {
		if _, err := s.CreateRun(d, "session.log", "Cidel", nil); err != nil {
			t.Fatalf("CreateRun(%s) failed: %v", d, err)
		}
	}

	runs, err := s.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Dir != dirs[2] {
		t.Errorf("newest run = %s, want %s", runs[0].Dir, dirs[2])
	}
}

func TestDeleteRunsByDir(t *testing.T) {
	s := newTestStore(t)

	old, err := s.CreateRun("20260101-000000", "old.log", "Cidel", sampleRecords())
	if err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}
	if _, err := s.CreateRun("20261018-000000", "new.log", "Cidel", sampleRecords()); err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}

	n, err := s.DeleteRunsByDir([]string{"20260101-000000", "20250101-000000"})
	if err != nil {
		t.Fatalf("DeleteRunsByDir failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d runs, want 1", n)
	}

	recs, err := s.Records(old.ID)
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected rolls of deleted run to be gone, got %d", len(recs))
	}

	runs, err := s.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Dir != "20261018-000000" {
		t.Errorf("remaining runs = %+v", runs)
	}
}

func TestDeleteRunsByDir_Empty(t *testing.T) {
	s := newTestStore(t)
	n, err := s.DeleteRunsByDir(nil)
	if err != nil || n != 0 {
		t.Errorf("DeleteRunsByDir(nil) = %d, %v", n, err)
	}
}
