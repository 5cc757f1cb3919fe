package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
)

// NewMeetingsCommand returns the meetings subcommand.
func NewMeetingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "meetings",
		Usage: "Browse processed meetings",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List processed meetings",
				Action: runMeetingsList,
			},
			{
				Name:      "show",
				Usage:     "Show a meeting's summary and tasks",
				ArgsUsage: "<meeting_id>",
				Action:    runMeetingsShow,
			},
			{
				Name:      "transcript",
				Usage:     "Print the stored transcript",
				ArgsUsage: "<meeting_id>",
				Action:    runMeetingsTranscript,
			},
			{
				Name:      "delete",
				Usage:     "Delete a meeting record (tasks are kept)",
				ArgsUsage: "<meeting_id>",
				Action:    runMeetingsDelete,
			},
		},
		DefaultCommand: "list",
	}
}

func runMeetingsList(_ context.Context, cmd *cli.Command) error {
	cfg := loadConfig(cmd)
	store := openMeetingStore(cfg)

	list, err := store.List()
	if err != nil {
		return fmt.Errorf("list meetings: %w", err)
	}

	if len(list) == 0 {
		fmt.Println("No meetings found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tTASKS\tTITLE")
	for _, m := range list {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			m.ID,
			m.CreatedAt.Format("2006-01-02 15:04"),
			len(m.TaskIDs),
			m.Title,
		)
	}
	return w.Flush()
}

func runMeetingsShow(_ context.Context, cmd *cli.Command) error {
	meetingID := cmd.Args().First()
	if meetingID == "" {
		return fmt.Errorf("usage: minute meetings show <meeting_id>")
	}

	cfg := loadConfig(cmd)
	store := openMeetingStore(cfg)

	m, err := store.Get(meetingID)
	if err != nil {
		return fmt.Errorf("get meeting: %w", err)
	}

	fmt.Printf("ID:          %s\n", m.ID)
	fmt.Printf("Title:       %s\n", m.Title)
	fmt.Printf("Created:     %s\n", m.CreatedAt.Format("2006-01-02 15:04:05"))
	if m.ModelUsed != "" {
		fmt.Printf("Model:       %s\n", m.ModelUsed)
	}
	fmt.Printf("Transcript:  %d chars\n", m.TranscriptChars)

	fmt.Printf("\nSummary:\n%s\n", m.Summary)

	if len(m.TaskIDs) > 0 {
		fmt.Printf("\nTasks (%d):\n", len(m.TaskIDs))
		for _, id := range m.TaskIDs {
			fmt.Printf("  %s\n", id)
		}
	}
	return nil
}

func runMeetingsTranscript(_ context.Context, cmd *cli.Command) error {
	meetingID := cmd.Args().First()
	if meetingID == "" {
		return fmt.Errorf("usage: minute meetings transcript <meeting_id>")
	}

	cfg := loadConfig(cmd)
	store := openMeetingStore(cfg)

	text, err := store.Transcript(meetingID)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	fmt.Println(text)
	return nil
}

func runMeetingsDelete(_ context.Context, cmd *cli.Command) error {
	meetingID := cmd.Args().First()
	if meetingID == "" {
		return fmt.Errorf("usage: minute meetings delete <meeting_id>")
	}

	cfg := loadConfig(cmd)
	store := openMeetingStore(cfg)

	if err := store.Delete(meetingID); err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}

	fmt.Printf("Meeting %s deleted.\n", meetingID)
	return nil
}
