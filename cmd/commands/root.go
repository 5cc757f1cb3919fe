package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/scribelabs/minute/internal/config"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "minute",
		Usage: "Turn meeting transcripts into tracked action items with deadline reminders",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			NewInitCommand(),
			NewProcessCommand(),
			NewTasksCommand(),
			NewRemindCommand(),
			NewMeetingsCommand(),
			NewExportCommand(),
		},
	}
}
