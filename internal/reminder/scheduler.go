// Package reminder maintains a durable, crash-tolerant schedule of task
// reminder firings. The in-memory schedule is a derived cache over the task
// store; reconciliation at startup rebuilds it, and reminders whose fire time
// passed while no scheduler was running are delivered late rather than lost.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/scribelabs/minute/internal/events"
	"github.com/scribelabs/minute/internal/tasks"
)

const (
	// DefaultInterval is the wake-check period. Deadlines are human-scale;
	// sub-minute precision is enough.
	DefaultInterval = 30 * time.Second
	// DefaultSweepSpec runs the overdue sweep daily at 09:00.
	DefaultSweepSpec = "0 9 * * *"
	// DefaultExpireAfter is how long past due a task may sit before the sweep
	// marks it expired. Expired tasks are never deleted.
	DefaultExpireAfter = 7 * 24 * time.Hour
	// reconcileEvery bounds how stale the in-memory schedule can get when
	// another process edits due times behind the daemon's back.
	reconcileEvery = 5 * time.Minute
)

// Config holds dependencies for the scheduler.
type Config struct {
	Store   tasks.Store
	Deliver Deliverer
	Bus     *events.Bus // optional
	Clock   Clock       // defaults to SystemClock
	// Interval between wake checks. Defaults to DefaultInterval.
	Interval time.Duration
	// SweepSpec is a cron expression for the overdue sweep. Empty disables it.
	SweepSpec string
	// ExpireAfter is the grace period past due before a task is marked
	// expired. Defaults to DefaultExpireAfter.
	ExpireAfter time.Duration
}

// entry is one scheduled firing. missed records that fire_at was already in
// the past when the entry was built (restart after due time).
type entry struct {
	taskID string
	fireAt time.Time
	missed bool
}

// Scheduler owns the in-memory schedule of (task, fire time) pairs and
// triggers the delivery collaborator exactly once per task per due time.
type Scheduler struct {
	store       tasks.Store
	deliver     Deliverer
	bus         *events.Bus
	clock       Clock
	interval    time.Duration
	expireAfter time.Duration
	sweep       cron.Schedule

	mu        sync.Mutex
	entries   map[string]entry
	nextSweep time.Time

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
	loopDone  chan struct{}
}

// New creates a Scheduler. It does not start the timing loop; call Reconcile
// and then Start.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Store == nil {
		return nil, errors.New("scheduler: store is required")
	}
	if cfg.Deliver == nil {
		cfg.Deliver = LogDeliverer{}
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.ExpireAfter <= 0 {
		cfg.ExpireAfter = DefaultExpireAfter
	}

	s := &Scheduler{
		store:       cfg.Store,
		deliver:     cfg.Deliver,
		bus:         cfg.Bus,
		clock:       cfg.Clock,
		interval:    cfg.Interval,
		expireAfter: cfg.ExpireAfter,
		entries:     make(map[string]entry),
		done:        make(chan struct{}),
		loopDone:    make(chan struct{}),
	}

	if cfg.SweepSpec != "" {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		schedule, err := parser.Parse(cfg.SweepSpec)
		if err != nil {
			return nil, fmt.Errorf("parse sweep spec %q: %w", cfg.SweepSpec, err)
		}
		s.sweep = schedule
	}

	return s, nil
}

// Reconcile rebuilds the in-memory schedule from persisted task state.
// It is idempotent: the same store snapshot always produces the same set of
// entries. Pending tasks already past due are flagged as missed reminders.
func (s *Scheduler) Reconcile() error {
	pending, err := s.store.ListPendingWithDue()
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	now := s.clock.Now()
	fresh := make(map[string]entry, len(pending))
	missed := 0
	for _, t := range pending {
		e := entry{taskID: t.ID, fireAt: *t.DueAt, missed: t.DueAt.Before(now)}
		if e.missed {
			missed++
		}
		fresh[t.ID] = e
	}

	s.mu.Lock()
	s.entries = fresh
	s.mu.Unlock()

	slog.Info("scheduler: reconciled", "entries", len(fresh), "missed", missed)
	return nil
}

// Start begins the background timing loop.
func (s *Scheduler) Start() {
	s.startOnce.Do(func() {
		go s.loop()
		slog.Info("scheduler started", "interval", s.interval)
	})
}

// Stop halts the timing loop and waits for it to exit.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		<-s.loopDone
		slog.Info("scheduler stopped")
	})
}

func (s *Scheduler) loop() {
	defer close(s.loopDone)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	lastReconcile := s.clock.Now()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := s.clock.Now()
			if now.Sub(lastReconcile) >= reconcileEvery {
				if err := s.Reconcile(); err != nil {
					slog.Error("scheduler: periodic reconcile", "error", err)
				}
				lastReconcile = now
			}
			s.Tick(context.Background(), now)
		}
	}
}

// Register inserts or replaces (by task ID) a schedule entry. Replacement is
// the mechanism for deadline edits; it never produces a second firing for the
// old fire time.
func (s *Scheduler) Register(taskID string, fireAt time.Time) {
	s.mu.Lock()
	s.entries[taskID] = entry{taskID: taskID, fireAt: fireAt}
	s.mu.Unlock()

	slog.Debug("scheduler: registered", "task_id", taskID, "fire_at", fireAt)
}

// Cancel removes a scheduled entry. Cancelling an unknown or already-consumed
// entry is a no-op.
func (s *Scheduler) Cancel(taskID string) {
	s.mu.Lock()
	_, ok := s.entries[taskID]
	delete(s.entries, taskID)
	s.mu.Unlock()

	if ok {
		slog.Debug("scheduler: cancelled", "task_id", taskID)
	}
}

// Entries returns a snapshot of the schedule, fire time ascending with ties
// broken by task ID.
func (s *Scheduler) Entries() []Reminder {
	s.mu.Lock()
	snapshot := make([]entry, 0, len(s.entries))
	for _, e := range s.entries {
		snapshot = append(snapshot, e)
	}
	s.mu.Unlock()

	sortEntries(snapshot)

	out := make([]Reminder, len(snapshot))
	for i, e := range snapshot {
		out[i] = Reminder{TaskID: e.taskID, DueAt: e.fireAt, Missed: e.missed}
	}
	return out
}

// Tick fires every entry whose fire time has passed, then runs the overdue
// sweep when its cron point has been reached. Exported so tests can drive
// time explicitly.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) {
	s.mu.Lock()
	var due []entry
	for _, e := range s.entries {
		if !e.fireAt.After(now) {
			due = append(due, e)
		}
	}
	s.mu.Unlock()

	// Equal fire times fire in ascending task ID order.
	sortEntries(due)

	for _, e := range due {
		s.fire(ctx, e)
	}

	s.runSweep(now)
}

// fire delivers one reminder. The schedule lock is never held across the
// delivery or store calls.
func (s *Scheduler) fire(ctx context.Context, e entry) {
	t, err := s.store.Get(e.taskID)
	switch {
	case errors.Is(err, tasks.ErrNotFound):
		slog.Warn("scheduler: task gone, dropping entry", "task_id", e.taskID)
		s.Cancel(e.taskID)
		return
	case err != nil:
		slog.Error("scheduler: read task", "task_id", e.taskID, "error", err)
		return // retried next tick
	}

	// The task moved on (completed, expired, or already reminded) outside the
	// scheduler; the entry is stale.
	if t.Status != tasks.StatusPending {
		s.Cancel(e.taskID)
		return
	}
	// The deadline was edited after this entry was built; Register replaced
	// semantics mean the current entry wins, but guard against a stale copy
	// captured before a concurrent replacement.
	if t.DueAt == nil || !t.DueAt.Equal(e.fireAt) {
		return
	}

	r := Reminder{
		TaskID:   t.ID,
		Title:    t.Title,
		Assignee: t.Assignee,
		DueAt:    e.fireAt,
		Missed:   e.missed,
	}
	if err := s.deliver.Deliver(ctx, r); err != nil {
		// The task stays pending and the entry stays scheduled; delivery is
		// retried on the next wake check.
		slog.Error("scheduler: delivery failed", "task_id", e.taskID, "error", err)
		return
	}

	if err := s.store.UpdateStatus(e.taskID, tasks.StatusReminded); err != nil {
		if errors.Is(err, tasks.ErrNotFound) {
			slog.Warn("scheduler: task gone after delivery", "task_id", e.taskID)
			s.Cancel(e.taskID)
			return
		}
		// Delivery happened but the status write failed; keeping the entry
		// trades a possible duplicate for never losing the reminded mark.
		slog.Error("scheduler: mark reminded", "task_id", e.taskID, "error", err)
		return
	}

	s.Cancel(e.taskID)

	if s.bus != nil {
		s.bus.Publish(events.NewReminderFired(t.ID, t.Title, e.fireAt, e.missed))
	}
	slog.Info("scheduler: reminder delivered", "task_id", t.ID, "missed", e.missed)
}

// runSweep marks tasks overdue beyond the grace period as expired.
func (s *Scheduler) runSweep(now time.Time) {
	if s.sweep == nil {
		return
	}

	s.mu.Lock()
	if s.nextSweep.IsZero() {
		s.nextSweep = s.sweep.Next(now)
	}
	if now.Before(s.nextSweep) {
		s.mu.Unlock()
		return
	}
	s.nextSweep = s.sweep.Next(now)
	s.mu.Unlock()

	cutoff := now.Add(-s.expireAfter)
	for _, status := range []tasks.Status{tasks.StatusPending, tasks.StatusReminded} {
		list, err := s.store.List(tasks.Filter{Status: status})
		if err != nil {
			slog.Error("scheduler: sweep list", "status", status, "error", err)
			continue
		}
		for _, t := range list {
			if t.DueAt == nil || t.DueAt.After(cutoff) {
				continue
			}
			if err := s.store.UpdateStatus(t.ID, tasks.StatusExpired); err != nil {
				slog.Error("scheduler: mark expired", "task_id", t.ID, "error", err)
				continue
			}
			s.Cancel(t.ID)
			if s.bus != nil {
				s.bus.Publish(events.NewTaskExpired(t.ID, *t.DueAt))
			}
			slog.Info("scheduler: task expired", "task_id", t.ID, "due_at", t.DueAt)
		}
	}
}

func sortEntries(es []entry) {
	sort.Slice(es, func(i, j int) bool {
		if es[i].fireAt.Equal(es[j].fireAt) {
			return es[i].taskID < es[j].taskID
		}
		return es[i].fireAt.Before(es[j].fireAt)
	})
}
