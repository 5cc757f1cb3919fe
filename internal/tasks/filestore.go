package tasks

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/scribelabs/minute/internal/storage/dirstore"
)

// FileStore persists tasks as directories with meta.json + history.jsonl.
type FileStore struct {
	ds *dirstore.DirStore
}

// NewFileStore creates a FileStore rooted at baseDir.
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{ds: dirstore.New(baseDir, "task")}
}

// Create persists a new task to disk.
func (fs *FileStore) Create(t *Task) error {
	fs.ds.Lock()
	defer fs.ds.Unlock()

	if t.ID == "" {
		t.ID = GenerateTaskID()
	}
	if t.Status == "" {
		t.Status = StatusPending
	}

	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	if err := fs.ds.EnsureDir(t.ID); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err := fs.ds.WriteMeta(t.ID, t); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// Get reads a task by ID.
func (fs *FileStore) Get(id string) (*Task, error) {
	fs.ds.RLock()
	defer fs.ds.RUnlock()

	return fs.read(id)
}

func (fs *FileStore) read(id string) (*Task, error) {
	var t Task
	if err := fs.ds.ReadMeta(id, &t); err != nil {
		if errors.Is(err, dirstore.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return &t, nil
}

// List returns tasks matching the filter, newest first.
func (fs *FileStore) List(f Filter) ([]*Task, error) {
	fs.ds.RLock()
	defer fs.ds.RUnlock()

	dirs, err := fs.ds.ListDirs()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var out []*Task
	for _, name := range dirs {
		var t Task
		if err := fs.ds.ReadMeta(name, &t); err != nil {
			continue // skip corrupted records
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.MeetingID != "" && t.MeetingID != f.MeetingID {
			continue
		}
		if f.Assignee != "" && t.Assignee != f.Assignee {
			continue
		}
		out = append(out, &t)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateStatus transitions a task's status and appends to its history log.
func (fs *FileStore) UpdateStatus(id string, to Status) error {
	fs.ds.Lock()
	defer fs.ds.Unlock()

	t, err := fs.read(id)
	if err != nil {
		return err
	}
	if !ValidTransition(t.Status, to) {
		return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, t.Status, to)
	}

	from := t.Status
	t.Status = to
	t.UpdatedAt = time.Now()

	if err := fs.ds.WriteMeta(id, t); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	// History is best-effort; the meta write is the source of truth.
	_ = fs.ds.AppendJSONL(id, "history.jsonl", StatusChange{Ts: t.UpdatedAt, From: from, To: to})
	return nil
}

// UpdateDueAt replaces a task's due time.
func (fs *FileStore) UpdateDueAt(id string, dueAt time.Time) error {
	fs.ds.Lock()
	defer fs.ds.Unlock()

	t, err := fs.read(id)
	if err != nil {
		return err
	}

	t.DueAt = &dueAt
	t.UpdatedAt = time.Now()

	if err := fs.ds.WriteMeta(id, t); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// ListPendingWithDue returns pending tasks with a due time, due_at ascending;
// equal due times order by task ID for deterministic reconciliation.
func (fs *FileStore) ListPendingWithDue() ([]*Task, error) {
	all, err := fs.List(Filter{Status: StatusPending})
	if err != nil {
		return nil, err
	}

	var out []*Task
	for _, t := range all {
		if t.DueAt != nil {
			out = append(out, t)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DueAt.Equal(*out[j].DueAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].DueAt.Before(*out[j].DueAt)
	})
	return out, nil
}

// Delete removes a task directory.
func (fs *FileStore) Delete(id string) error {
	fs.ds.Lock()
	defer fs.ds.Unlock()

	return fs.ds.RemoveDir(id)
}

// History reads a task's status transition log.
func (fs *FileStore) History(id string) ([]StatusChange, error) {
	fs.ds.RLock()
	defer fs.ds.RUnlock()

	return dirstore.LoadJSONL[StatusChange](fs.ds, id, "history.jsonl")
}
