package tasks

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

// runStoreSuite exercises the Store contract against any implementation.
func runStoreSuite(t *testing.T, store Store) {
	t.Helper()

	due := time.Date(2026, 5, 1, 23, 59, 59, 0, time.UTC)

	task := &Task{
		Title:    "Send report",
		Assignee: "Alice",
		Priority: PriorityHigh,
		DueAt:    &due,
	}
	if err := store.Create(task); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.ID == "" {
		t.Fatal("Create did not assign an ID")
	}
	if task.Status != StatusPending {
		t.Fatalf("new task status = %s, want pending", task.Status)
	}

	got, err := store.Get(task.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Send report" || got.Assignee != "Alice" {
		t.Errorf("Get = %+v", got)
	}
	if got.DueAt == nil || !got.DueAt.Equal(due) {
		t.Errorf("DueAt = %v, want %v", got.DueAt, due)
	}

	// Unknown ID.
	if _, err := store.Get("task_missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}
	if err := store.UpdateStatus("task_missing", StatusReminded); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateStatus missing = %v, want ErrNotFound", err)
	}

	// A task without a deadline is still a valid task.
	noDue := &Task{Title: "Think about hiring", Assignee: "Unassigned", Priority: PriorityMedium}
	if err := store.Create(noDue); err != nil {
		t.Fatalf("Create without due: %v", err)
	}

	// Pending-with-due listing excludes the deadline-less task and orders by
	// due ascending, then ID for ties.
	earlier := due.Add(-24 * time.Hour)
	second := &Task{Title: "Book room", Assignee: "Bob", Priority: PriorityLow, DueAt: &earlier}
	if err := store.Create(second); err != nil {
		t.Fatalf("Create second: %v", err)
	}

	pending, err := store.ListPendingWithDue()
	if err != nil {
		t.Fatalf("ListPendingWithDue: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("ListPendingWithDue = %d tasks, want 2", len(pending))
	}
	if pending[0].ID != second.ID {
		t.Errorf("expected earlier due first, got %s", pending[0].ID)
	}

	// Lifecycle: pending → reminded → completed.
	if err := store.UpdateStatus(task.ID, StatusReminded); err != nil {
		t.Fatalf("UpdateStatus reminded: %v", err)
	}
	if err := store.UpdateStatus(task.ID, StatusReminded); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("double remind = %v, want ErrInvalidTransition", err)
	}
	if err := store.UpdateStatus(task.ID, StatusCompleted); err != nil {
		t.Fatalf("UpdateStatus completed: %v", err)
	}
	if err := store.UpdateStatus(task.ID, StatusExpired); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("completed is terminal, got %v", err)
	}

	// Reminded task left the pending set.
	pending, err = store.ListPendingWithDue()
	if err != nil {
		t.Fatalf("ListPendingWithDue after transitions: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != second.ID {
		t.Errorf("pending after transitions = %+v", pending)
	}

	// Deadline edits.
	newDue := due.Add(48 * time.Hour)
	if err := store.UpdateDueAt(second.ID, newDue); err != nil {
		t.Fatalf("UpdateDueAt: %v", err)
	}
	got, err = store.Get(second.ID)
	if err != nil {
		t.Fatalf("Get after UpdateDueAt: %v", err)
	}
	if got.DueAt == nil || !got.DueAt.Equal(newDue) {
		t.Errorf("DueAt after edit = %v, want %v", got.DueAt, newDue)
	}

	// Filtered listing.
	byAssignee, err := store.List(Filter{Assignee: "Bob"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(byAssignee) != 1 || byAssignee[0].ID != second.ID {
		t.Errorf("List by assignee = %+v", byAssignee)
	}

	// Delete.
	if err := store.Delete(noDue.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(noDue.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
}

func TestFileStore(t *testing.T) {
	runStoreSuite(t, NewFileStore(t.TempDir()))
}

func TestSQLStore(t *testing.T) {
	store, err := OpenSQLStore(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("OpenSQLStore: %v", err)
	}
	defer store.Close()

	runStoreSuite(t, store)
}

func TestFileStore_History(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	due := time.Now().Add(time.Hour)
	task := &Task{Title: "x", Assignee: "a", Priority: PriorityMedium, DueAt: &due}
	if err := fs.Create(task); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := fs.UpdateStatus(task.ID, StatusReminded); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := fs.UpdateStatus(task.ID, StatusCompleted); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	history, err := fs.History(task.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].From != StatusPending || history[0].To != StatusReminded {
		t.Errorf("first change = %+v", history[0])
	}
	if history[1].To != StatusCompleted {
		t.Errorf("second change = %+v", history[1])
	}
}
