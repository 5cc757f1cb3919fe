package tasks

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id           TEXT PRIMARY KEY,
	meeting_id   TEXT NOT NULL DEFAULT '',
	summary_id   TEXT NOT NULL DEFAULT '',
	title        TEXT NOT NULL,
	assignee     TEXT NOT NULL DEFAULT '',
	priority     TEXT NOT NULL DEFAULT 'medium',
	raw_deadline TEXT NOT NULL DEFAULT '',
	due_at       TIMESTAMP,
	status       TEXT NOT NULL DEFAULT 'pending',
	context      TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMP NOT NULL,
	updated_at   TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_status_due ON tasks (status, due_at);
`

// SQLStore persists tasks in a SQLite database. It satisfies the same Store
// contract as FileStore; the two are interchangeable behind the adapter.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLStore opens (creating if needed) a SQLite task store at path.
func OpenSQLStore(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open task db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init task schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Create persists a new task and assigns its ID when empty.
func (s *SQLStore) Create(t *Task) error {
	if t.ID == "" {
		t.ID = GenerateTaskID()
	}
	if t.Status == "" {
		t.Status = StatusPending
	}

	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	_, err := s.db.Exec(`INSERT INTO tasks
		(id, meeting_id, summary_id, title, assignee, priority, raw_deadline, due_at, status, context, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.MeetingID, t.SummaryID, t.Title, t.Assignee, string(t.Priority),
		t.RawDeadline, nullableTime(t.DueAt), string(t.Status), t.Context, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// Get reads a task by ID.
func (s *SQLStore) Get(id string) (*Task, error) {
	row := s.db.QueryRow(`SELECT id, meeting_id, summary_id, title, assignee, priority,
		raw_deadline, due_at, status, context, created_at, updated_at
		FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

// List returns tasks matching the filter, newest first.
func (s *SQLStore) List(f Filter) ([]*Task, error) {
	query := `SELECT id, meeting_id, summary_id, title, assignee, priority,
		raw_deadline, due_at, status, context, created_at, updated_at
		FROM tasks WHERE 1=1`
	var args []any
	if f.Status != "" {
		query += " AND status = ?"
		args = append(args, string(f.Status))
	}
	if f.MeetingID != "" {
		query += " AND meeting_id = ?"
		args = append(args, f.MeetingID)
	}
	if f.Assignee != "" {
		query += " AND assignee = ?"
		args = append(args, f.Assignee)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var out []*Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateStatus transitions a task's status, enforcing ValidTransition.
func (s *SQLStore) UpdateStatus(id string, to Status) error {
	t, err := s.Get(id)
	if err != nil {
		return err
	}
	if !ValidTransition(t.Status, to) {
		return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, t.Status, to)
	}

	res, err := s.db.Exec(`UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`,
		string(to), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateDueAt replaces a task's due time.
func (s *SQLStore) UpdateDueAt(id string, dueAt time.Time) error {
	res, err := s.db.Exec(`UPDATE tasks SET due_at = ?, updated_at = ? WHERE id = ?`,
		dueAt.UTC(), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPendingWithDue returns pending tasks with a due time, due_at ascending;
// equal due times order by task ID for deterministic reconciliation.
func (s *SQLStore) ListPendingWithDue() ([]*Task, error) {
	rows, err := s.db.Query(`SELECT id, meeting_id, summary_id, title, assignee, priority,
		raw_deadline, due_at, status, context, created_at, updated_at
		FROM tasks WHERE status = ? AND due_at IS NOT NULL
		ORDER BY due_at ASC, id ASC`, string(StatusPending))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var out []*Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Delete removes a task.
func (s *SQLStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*Task, error) {
	var t Task
	var priority, status string
	var dueAt sql.NullTime

	err := row.Scan(&t.ID, &t.MeetingID, &t.SummaryID, &t.Title, &t.Assignee, &priority,
		&t.RawDeadline, &dueAt, &status, &t.Context, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	t.Priority = Priority(priority)
	t.Status = Status(status)
	if dueAt.Valid {
		d := dueAt.Time
		t.DueAt = &d
	}
	return &t, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
