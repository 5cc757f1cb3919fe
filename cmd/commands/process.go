package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/scribelabs/minute/internal/meetings"
	"github.com/scribelabs/minute/internal/models"
	"github.com/scribelabs/minute/internal/summarize"
	"github.com/scribelabs/minute/internal/transcript"
)

// NewProcessCommand returns the transcript processing subcommand.
func NewProcessCommand() *cli.Command {
	return &cli.Command{
		Name:      "process",
		Usage:     "Summarize a transcript and schedule its action items",
		ArgsUsage: "<transcript.txt|transcript.json>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "title",
				Aliases: []string{"t"},
				Usage:   "Meeting title (defaults to the file name)",
			},
		},
		Action: runProcess,
	}
}

func runProcess(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("usage: minute process <transcript file>")
	}

	text, err := transcript.Load(path)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("transcript %s is empty", path)
	}

	title := cmd.String("title")
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	cfg := loadConfig(cmd)

	taskStore, closeStore, err := openTaskStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	registry := models.NewRegistry(cfg.Models)
	processor := &meetings.Processor{
		Summarizer: summarize.New(registry, cfg.Summary.MaxTranscriptChars),
		Meetings:   openMeetingStore(cfg),
		Tasks:      taskStore,
	}

	result, err := processor.Process(ctx, title, text)
	if err != nil {
		return err
	}

	fmt.Printf("Meeting %s processed.\n\n", result.Meeting.ID)
	fmt.Printf("Summary:\n%s\n", result.Meeting.Summary)

	if len(result.Tasks) > 0 {
		fmt.Printf("\nAction items (%d):\n", len(result.Tasks))
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPRIORITY\tDUE\tASSIGNEE\tTASK")
		for _, t := range result.Tasks {
			due := "-"
			if t.DueAt != nil {
				due = t.DueAt.Format("2006-01-02 15:04")
			} else if t.RawDeadline != "" {
				due = fmt.Sprintf("? (%s)", t.RawDeadline)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Priority, due, t.Assignee, t.Title)
		}
		w.Flush()
	} else {
		fmt.Println("\nNo action items found.")
	}

	for _, f := range result.Failed {
		fmt.Fprintf(os.Stderr, "warning: task %q was not saved: %v\n", f.Title, f.Err)
	}

	if len(result.Tasks) > 0 {
		fmt.Println("\nRun `minute remind` to start the reminder daemon.")
	}
	return nil
}
