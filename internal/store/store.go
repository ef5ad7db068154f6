package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/berth-dev/rollcall/internal/transcript"
)

// FileName is the database file inside .rollcall/.
const FileName = "rolls.db"

// Store provides SQLite-backed persistence for runs and their roll records.
type Store struct {
	db *sql.DB
}

// NewStore opens the SQLite database at dbPath and creates tables if they don't exist.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		dir TEXT NOT NULL UNIQUE,
		transcript TEXT NOT NULL,
		reference TEXT NOT NULL,
		records INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS rolls (
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		user TEXT NOT NULL,
		die_size INTEGER NOT NULL,
		faces TEXT NOT NULL,
		decl_line INTEGER NOT NULL DEFAULT 0,
		total_line INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (run_id, seq),
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateRun stores a run and all of its records in one transaction.
func (s *Store) CreateRun(dir, transcriptPath, reference string, records []transcript.Record) (*Run, error) {
	run := &Run{
		ID:         uuid.New().String(),
		Dir:        dir,
		Transcript: transcriptPath,
		Reference:  reference,
		Records:    len(records),
		CreatedAt:  time.Now(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		`INSERT INTO runs (id, dir, transcript, reference, records, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Dir, run.Transcript, run.Reference, run.Records, run.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO rolls (run_id, seq, user, die_size, faces, decl_line, total_line)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return nil, fmt.Errorf("prepare roll insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, rec := range records {
		faces, err := json.Marshal(rec.Faces)
		if err != nil {
			return nil, fmt.Errorf("marshal faces: %w", err)
		}
		if _, err := stmt.Exec(run.ID, i, rec.User, rec.DieSize, string(faces), rec.DeclaredAt, rec.TotalAt); err != nil {
			return nil, fmt.Errorf("insert roll %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit run: %w", err)
	}

	return run, nil
}

// GetRunByDir retrieves a run by its directory name. Returns nil if absent.
func (s *Store) GetRunByDir(dir string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, dir, transcript, reference, records, created_at
		 FROM runs WHERE dir = ?`,
		dir,
	)
	return scanRun(row)
}

func scanRun(row *sql.Row) (*Run, error) {
	var run Run
	err := row.Scan(&run.ID, &run.Dir, &run.Transcript, &run.Reference, &run.Records, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	return &run, nil
}

// ListRuns returns the most recent runs, newest first. Run directory names
// are timestamps, so they order chronologically.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, dir, transcript, reference, records, created_at
		 FROM runs
		 ORDER BY dir DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Dir, &run.Transcript, &run.Reference, &run.Records, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return runs, nil
}

// Records retrieves the roll records of a run in their original order.
func (s *Store) Records(runID string) ([]transcript.Record, error) {
	rows, err := s.db.Query(
		`SELECT user, die_size, faces, decl_line, total_line
		 FROM rolls
		 WHERE run_id = ?
		 ORDER BY seq ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query rolls: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []transcript.Record
	for rows.Next() {
		var rec transcript.Record
		var faces string
		if err := rows.Scan(&rec.User, &rec.DieSize, &faces, &rec.DeclaredAt, &rec.TotalAt); err != nil {
			return nil, fmt.Errorf("scan roll: %w", err)
		}
		if err := json.Unmarshal([]byte(faces), &rec.Faces); err != nil {
			return nil, fmt.Errorf("decode faces: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return records, nil
}

// DeleteRunsByDir removes the runs stored under the given directory names,
// together with their rolls. Returns the number of runs deleted.
func (s *Store) DeleteRunsByDir(dirs []string) (int, error) {
	if len(dirs) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(dirs)), ",")
	args := make([]any, len(dirs))
	for i, d := range dirs {
		args[i] = d
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		`DELETE FROM rolls WHERE run_id IN (SELECT id FROM runs WHERE dir IN (`+placeholders+`))`,
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("delete rolls: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM runs WHERE dir IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("delete runs: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete: %w", err)
	}

	return int(n), nil
}
