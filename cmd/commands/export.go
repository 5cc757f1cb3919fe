package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/scribelabs/minute/internal/export"
	"github.com/scribelabs/minute/internal/tasks"
)

// NewExportCommand returns the CSV export subcommand.
func NewExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export tasks or meetings as CSV",
		Commands: []*cli.Command{
			{
				Name:  "tasks",
				Usage: "Export tasks as CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status", Usage: "Filter by status"},
					&cli.StringFlag{Name: "meeting", Usage: "Filter by meeting id"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file (default stdout)"},
				},
				Action: runExportTasks,
			},
			{
				Name:  "meetings",
				Usage: "Export meetings as CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file (default stdout)"},
				},
				Action: runExportMeetings,
			},
		},
	}
}

// outWriter opens the --out file, or stdout when the flag is empty.
func outWriter(cmd *cli.Command) (*os.File, func() error, error) {
	path := cmd.String("out")
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}

func runExportTasks(_ context.Context, cmd *cli.Command) error {
	cfg := loadConfig(cmd)
	store, closeStore, err := openTaskStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	list, err := store.List(tasks.Filter{
		Status:    tasks.Status(cmd.String("status")),
		MeetingID: cmd.String("meeting"),
	})
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	w, closeOut, err := outWriter(cmd)
	if err != nil {
		return err
	}
	defer closeOut()

	if err := export.Tasks(w, list); err != nil {
		return err
	}
	if path := cmd.String("out"); path != "" {
		fmt.Fprintf(os.Stderr, "Exported %d task(s) to %s.\n", len(list), path)
	}
	return nil
}

func runExportMeetings(_ context.Context, cmd *cli.Command) error {
	cfg := loadConfig(cmd)
	store := openMeetingStore(cfg)

	list, err := store.List()
	if err != nil {
		return fmt.Errorf("list meetings: %w", err)
	}

	w, closeOut, err := outWriter(cmd)
	if err != nil {
		return err
	}
	defer closeOut()

	if err := export.Meetings(w, list); err != nil {
		return err
	}
	if path := cmd.String("out"); path != "" {
		fmt.Fprintf(os.Stderr, "Exported %d meeting(s) to %s.\n", len(list), path)
	}
	return nil
}
