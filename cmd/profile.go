package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moodtunes/internal/formatter"
	"github.com/desertthunder/moodtunes/internal/shared"
	"github.com/desertthunder/moodtunes/internal/ui"
	"github.com/urfave/cli/v3"
)

// runForm drives a questionnaire to completion. Split out so tests can
// stub the interactive part.
var runForm = func(form *ui.FormModel) error {
	_, err := tea.NewProgram(form).Run()
	return err
}

// ProfileCreate runs the listening-habits questionnaire and saves the document.
func (r *Runner) ProfileCreate(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	email, err := r.resolveEmail(cmd)
	if err != nil {
		return err
	}

	store, err := r.profileStore(ctx)
	if err != nil {
		return err
	}
	defer r.close()

	form := ui.NewProfileForm()
	if err := runForm(form); err != nil {
		return fmt.Errorf("questionnaire failed: %w", err)
	}
	if !form.Done() {
		r.writePlain("Cancelled, nothing saved.\n")
		return nil
	}

	profile := form.Profile()
	profile.Touch(time.Now().UTC())

	if err := store.Save(ctx, email, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	r.logger.Info("profile saved", "email", email)
	r.writePlain("✓ Profile saved for %s\n", email)
	return nil
}

// ProfileShow displays the stored profile document.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	email, err := r.resolveEmail(cmd)
	if err != nil {
		return err
	}

	store, err := r.profileStore(ctx)
	if err != nil {
		return err
	}
	defer r.close()

	profile, err := store.Get(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}
	if profile == nil {
		return fmt.Errorf("%w: run 'moodtunes profile create' first", shared.ErrProfileNotFound)
	}

	switch {
	case cmd.Bool("json"):
		data, err := formatter.ProfileToJSON(profile)
		if err != nil {
			return err
		}
		return r.writePlain("%s\n", data)
	case cmd.Bool("markdown"):
		return r.writePlain("%s", formatter.ProfileToMarkdown(email, profile))
	default:
		return r.writePlain("%s", formatter.ProfileToText(email, profile))
	}
}

// ProfileMood runs the mood check-in and merges it into the document.
func (r *Runner) ProfileMood(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	email, err := r.resolveEmail(cmd)
	if err != nil {
		return err
	}

	store, err := r.profileStore(ctx)
	if err != nil {
		return err
	}
	defer r.close()

	form := ui.NewMoodForm()
	if err := runForm(form); err != nil {
		return fmt.Errorf("questionnaire failed: %w", err)
	}
	if !form.Done() {
		r.writePlain("Cancelled, nothing saved.\n")
		return nil
	}

	if err := store.MergeMood(ctx, email, form.Mood()); err != nil {
		return fmt.Errorf("failed to update mood: %w", err)
	}

	r.logger.Info("mood updated", "email", email)
	r.writePlain("✓ Mood updated for %s\n", email)
	return nil
}
