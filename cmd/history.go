package main

import (
	"context"

	"github.com/desertthunder/moodtunes/internal/formatter"
	"github.com/urfave/cli/v3"
)

// History displays the stored compose and playlist history for a user.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	email, err := r.resolveEmail(cmd)
	if err != nil {
		return err
	}
	defer r.close()

	repo, err := r.historyRepo()
	if err != nil {
		return err
	}

	records, err := repo.ListByEmail(email, cmd.Int("limit"))
	if err != nil {
		return err
	}

	switch {
	case cmd.Bool("csv"):
		data, err := formatter.HistoryToCSV(records)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	case cmd.Bool("markdown"):
		return r.writePlain("%s", formatter.HistoryToMarkdown(records))
	default:
		return r.writePlain("%s", formatter.HistoryToText(records))
	}
}
