package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/scribelabs/minute/internal/deadline"
	"github.com/scribelabs/minute/internal/tasks"
)

// NewTasksCommand returns the tasks subcommand.
func NewTasksCommand() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "Manage extracted action items",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List tasks",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status", Usage: "Filter by status (pending|reminded|completed|expired)"},
					&cli.StringFlag{Name: "assignee", Usage: "Filter by assignee"},
					&cli.StringFlag{Name: "meeting", Usage: "Filter by meeting id"},
				},
				Action: runTasksList,
			},
			{
				Name:      "show",
				Usage:     "Show task details",
				ArgsUsage: "<task_id>",
				Action:    runTasksShow,
			},
			{
				Name:      "complete",
				Usage:     "Mark a task completed",
				ArgsUsage: "<task_id>",
				Action:    runTasksComplete,
			},
			{
				Name:      "due",
				Usage:     "Set or change a task's deadline",
				ArgsUsage: "<task_id> <deadline phrase>",
				Action:    runTasksDue,
			},
			{
				Name:      "delete",
				Usage:     "Delete a task",
				ArgsUsage: "<task_id>",
				Action:    runTasksDelete,
			},
		},
		DefaultCommand: "list",
	}
}

func runTasksList(_ context.Context, cmd *cli.Command) error {
	cfg := loadConfig(cmd)
	store, closeStore, err := openTaskStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	filter := tasks.Filter{
		Status:    tasks.Status(cmd.String("status")),
		Assignee:  cmd.String("assignee"),
		MeetingID: cmd.String("meeting"),
	}
	list, err := store.List(filter)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	if len(list) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tDUE\tASSIGNEE\tTITLE")
	for _, t := range list {
		due := "-"
		if t.DueAt != nil {
			due = t.DueAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			t.Status,
			t.Priority,
			due,
			t.Assignee,
			t.Title,
		)
	}
	return w.Flush()
}

func runTasksShow(_ context.Context, cmd *cli.Command) error {
	taskID := cmd.Args().First()
	if taskID == "" {
		return fmt.Errorf("usage: minute tasks show <task_id>")
	}

	cfg := loadConfig(cmd)
	store, closeStore, err := openTaskStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	t, err := store.Get(taskID)
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}

	fmt.Printf("ID:          %s\n", t.ID)
	fmt.Printf("Title:       %s\n", t.Title)
	fmt.Printf("Status:      %s\n", t.Status)
	fmt.Printf("Priority:    %s\n", t.Priority)
	fmt.Printf("Assignee:    %s\n", t.Assignee)
	if t.MeetingID != "" {
		fmt.Printf("Meeting:     %s\n", t.MeetingID)
	}
	if t.RawDeadline != "" {
		fmt.Printf("Deadline:    %q\n", t.RawDeadline)
	}
	if t.DueAt != nil {
		fmt.Printf("Due:         %s\n", t.DueAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Created:     %s\n", t.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated:     %s\n", t.UpdatedAt.Format("2006-01-02 15:04:05"))

	if t.Context != "" {
		fmt.Printf("\nContext:\n%s\n", t.Context)
	}

	// Status history is only kept by the file backend.
	if fs, ok := store.(*tasks.FileStore); ok {
		history, _ := fs.History(taskID)
		if len(history) > 0 {
			fmt.Println("\nHistory:")
			for _, h := range history {
				fmt.Printf("  [%s] %s → %s\n", h.Ts.Format("2006-01-02 15:04:05"), h.From, h.To)
			}
		}
	}

	return nil
}

func runTasksComplete(_ context.Context, cmd *cli.Command) error {
	taskID := cmd.Args().First()
	if taskID == "" {
		return fmt.Errorf("usage: minute tasks complete <task_id>")
	}

	cfg := loadConfig(cmd)
	store, closeStore, err := openTaskStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.UpdateStatus(taskID, tasks.StatusCompleted); err != nil {
		return fmt.Errorf("complete task: %w", err)
	}

	fmt.Printf("Task %s completed.\n", taskID)
	return nil
}

func runTasksDue(_ context.Context, cmd *cli.Command) error {
	taskID := cmd.Args().First()
	phrase := cmd.Args().Get(1)
	if taskID == "" || phrase == "" {
		return fmt.Errorf("usage: minute tasks due <task_id> <deadline phrase>")
	}

	resolved := deadline.Normalize(phrase, time.Now())
	due := resolved.Time()
	if due == nil {
		return fmt.Errorf("could not understand deadline %q", phrase)
	}

	cfg := loadConfig(cmd)
	store, closeStore, err := openTaskStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.UpdateDueAt(taskID, *due); err != nil {
		return fmt.Errorf("update deadline: %w", err)
	}

	fmt.Printf("Task %s due %s.\n", taskID, due.Format("2006-01-02 15:04:05"))
	return nil
}

func runTasksDelete(_ context.Context, cmd *cli.Command) error {
	taskID := cmd.Args().First()
	if taskID == "" {
		return fmt.Errorf("usage: minute tasks delete <task_id>")
	}

	cfg := loadConfig(cmd)
	store, closeStore, err := openTaskStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Delete(taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	fmt.Printf("Task %s deleted.\n", taskID)
	return nil
}
