package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/scribelabs/minute/internal/events"
	"github.com/scribelabs/minute/internal/reminder"
)

// NewRemindCommand returns the reminder daemon subcommand.
func NewRemindCommand() *cli.Command {
	return &cli.Command{
		Name:  "remind",
		Usage: "Run the reminder daemon",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "once",
				Usage: "Fire due reminders once and exit instead of running the daemon",
			},
		},
		Action: runRemind,
	}
}

func runRemind(ctx context.Context, cmd *cli.Command) error {
	cfg := loadConfig(cmd)

	store, closeStore, err := openTaskStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	bus := events.NewBus(cfg.Events.BufferSize)
	defer bus.Close()

	sweepSpec := cfg.Reminder.SweepSpec
	if sweepSpec == "off" {
		sweepSpec = ""
	}

	sched, err := reminder.New(reminder.Config{
		Store:       store,
		Deliver:     reminder.LogDeliverer{},
		Bus:         bus,
		Interval:    cfg.Reminder.Interval.Duration(),
		SweepSpec:   sweepSpec,
		ExpireAfter: cfg.Reminder.ExpireAfter.Duration(),
	})
	if err != nil {
		return err
	}

	if err := sched.Reconcile(); err != nil {
		return fmt.Errorf("reminder daemon: %w", err)
	}

	entries := sched.Entries()
	fmt.Printf("Watching %d scheduled reminder(s).\n", len(entries))
	for _, e := range entries {
		marker := ""
		if e.Missed {
			marker = " (missed, will fire now)"
		}
		fmt.Printf("  %s due %s%s\n", e.TaskID, e.DueAt.Format("2006-01-02 15:04"), marker)
	}

	if cmd.Bool("once") {
		sched.Tick(ctx, time.Now())
		return nil
	}

	unsubscribe := bus.Subscribe(func(ev events.Event) {
		slog.Info("event", "type", ev.Type, "payload", ev.Payload)
	}, events.EventReminderFired, events.EventReminderMissed, events.EventTaskExpired)
	defer unsubscribe()

	sched.Start()
	defer sched.Stop()

	fmt.Println("Reminder daemon running. Ctrl-C to stop.")
	<-ctx.Done()
	fmt.Println("\nShutting down.")
	return nil
}
