package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const (
	HistoryFileName  = "history.db"
	sqliteTimeLayout = time.RFC3339Nano
)

type SQLiteHistory struct {
	db *sql.DB
}

func NewSQLiteHistory(db *sql.DB) (*SQLiteHistory, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteHistory{db: db}, nil
}

// OpenHistory opens the database at path and brings its schema up to date.
func OpenHistory(path string) (*SQLiteHistory, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	return NewSQLiteHistory(db)
}

func (h *SQLiteHistory) Close() error {
	return h.db.Close()
}

func (h *SQLiteHistory) RecordSession(ctx context.Context, in Session) error {
	if in.Outcome != OutcomeCompleted && in.Outcome != OutcomeReset {
		return fmt.Errorf("%w: outcome %q", ErrInvalidSession, in.Outcome)
	}
	if in.ElapsedSeconds < 0 || in.ElapsedSeconds > in.TotalSeconds {
		return fmt.Errorf("%w: elapsed %d of %d", ErrInvalidSession, in.ElapsedSeconds, in.TotalSeconds)
	}
	if strings.TrimSpace(in.ID) == "" {
		in.ID = uuid.NewString()
	}
	_, err := h.db.ExecContext(ctx, `
		INSERT INTO sessions (id, total_seconds, elapsed_seconds, outcome, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.TotalSeconds, in.ElapsedSeconds, string(in.Outcome), formatTime(in.StartedAt), formatTime(in.EndedAt),
	)
	return err
}

func (h *SQLiteHistory) ListSessions(ctx context.Context, filter SessionFilter) ([]Session, error) {
	query := `SELECT id, total_seconds, elapsed_seconds, outcome, started_at, ended_at FROM sessions`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.Outcome != "" {
		clauses = append(clauses, "outcome = ?")
		args = append(args, string(filter.Outcome))
	}
	if filter.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, formatTime(*filter.Since))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY ended_at DESC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Session, 0)
	for rows.Next() {
		item, scanErr := scanSession(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (h *SQLiteHistory) CountCompleted(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := h.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM sessions WHERE outcome = ? AND ended_at >= ?`,
		string(OutcomeCompleted), formatTime(since),
	).Scan(&n)
	return n, err
}

// Clear drops every recorded session by reverting the schema and applying it again.
func (h *SQLiteHistory) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := MigrateDown(h.db); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	if err := MigrateUp(h.db); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Times are stored as fixed-width UTC strings so text comparison orders them.
func formatTime(v time.Time) string {
	return v.UTC().Format("2006-01-02T15:04:05.000000000Z")
}

func parseTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	} else if offset > 0 {
		sql += " LIMIT -1"
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(s scanner) (Session, error) {
	var out Session
	var outcome, started, ended string
	if err := s.Scan(&out.ID, &out.TotalSeconds, &out.ElapsedSeconds, &outcome, &started, &ended); err != nil {
		return Session{}, err
	}
	startedAt, err := parseTime(started)
	if err != nil {
		return Session{}, err
	}
	endedAt, err := parseTime(ended)
	if err != nil {
		return Session{}, err
	}
	out.Outcome = SessionOutcome(outcome)
	out.StartedAt = startedAt
	out.EndedAt = endedAt
	return out, nil
}
