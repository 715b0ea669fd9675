package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/moodtunes/internal/auth"
	"github.com/desertthunder/moodtunes/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve wires every collaborator and runs the HTTP API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	if len(r.config.Users) == 0 {
		return fmt.Errorf("no users configured; edit the [users] table in config.toml")
	}

	predictor, err := r.predictor()
	if err != nil {
		return fmt.Errorf("failed to load genre model: %w", err)
	}

	store, err := r.profileStore(ctx)
	if err != nil {
		return err
	}
	defer r.close()

	engine, err := r.composeEngine(nil)
	if err != nil {
		return err
	}

	history, err := r.historyRepo()
	if err != nil {
		return err
	}

	host := r.config.Server.Host
	if cmd.String("host") != "" {
		host = cmd.String("host")
	}
	port := r.config.Server.Port
	if cmd.Int("port") != 0 {
		port = cmd.Int("port")
	}

	ttl := time.Duration(r.config.Server.SessionTTLMins) * time.Minute
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	authenticator := auth.NewAuthenticator(r.config.Users)
	sessions := auth.NewSessionManager(ttl)

	srv := server.New(authenticator, sessions, store, predictor, engine, history, r.logger)
	addr := fmt.Sprintf("%s:%d", host, port)

	return srv.Start(ctx, addr)
}
