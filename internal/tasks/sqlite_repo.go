package tasks

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

// DefaultSQLiteDSN names a shared-cache in-memory database. It lives as
// long as at least one connection is open, so the repo pins one.
const DefaultSQLiteDSN = "file:tasks?mode=memory&cache=shared"

type SQLiteRepo struct {
	db  *sql.DB
	ids *IDGenerator
}

func NewSQLiteRepo(dsn string) (*SQLiteRepo, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one connection keeps the in-memory database alive and serializes writers
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteRepo{db: db, ids: NewIDGenerator()}, nil
}

func (r *SQLiteRepo) Close() error { return r.db.Close() }

// Create implements Repository.Create
func (r *SQLiteRepo) Create(ctx context.Context, title string) (Task, error) {
	t := Task{ID: r.ids.Next(), Title: title}
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title)
		VALUES (?, ?)
	`, t.ID, t.Title); err != nil {
		return Task{}, err
	}
	return t, nil
}

// List implements Repository.List in insertion order
func (r *SQLiteRepo) List(ctx context.Context) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title
		FROM tasks
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Delete implements Repository.Delete
func (r *SQLiteRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ApplyMigrations ensures schema exists
func (r *SQLiteRepo) ApplyMigrations(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS tasks (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id INTEGER NOT NULL UNIQUE,
	title TEXT NOT NULL DEFAULT ''
);
	`)
	return err
}
