package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodtunes/internal/auth"
	"github.com/desertthunder/moodtunes/internal/genre"
	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/profiles"
	"github.com/desertthunder/moodtunes/internal/repositories"
	"github.com/desertthunder/moodtunes/internal/services"
	"github.com/desertthunder/moodtunes/internal/shared"
	"github.com/desertthunder/moodtunes/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ProfileStore is the subset of the document store the CLI depends on.
type ProfileStore interface {
	Get(ctx context.Context, email string) (models.Profile, error)
	Save(ctx context.Context, email string, profile models.Profile) error
	MergeMood(ctx context.Context, email string, mood models.MoodUpdate) error
}

// Recorder persists history rows.
type Recorder interface {
	Create(record *models.TrackRecord) error
	ListByEmail(email string, limit int) ([]*models.TrackRecord, error)
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Collaborators left nil are constructed on demand from config, so tests can
// inject doubles while the real CLI wires live services lazily.
type Runner struct {
	config     *shared.Config
	logger     *log.Logger
	output     io.Writer
	store      ProfileStore
	generator  services.Generator
	catalog    services.Catalog
	player     tasks.Player
	classifier genre.Classifier
	history    Recorder
	db         *sql.DB

	disconnect func()
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Logger     *log.Logger
	Output     io.Writer
	Store      ProfileStore
	Generator  services.Generator
	Catalog    services.Catalog
	Player     tasks.Player
	Classifier genre.Classifier
	History    Recorder
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		logger:     opts.Logger,
		output:     opts.Output,
		store:      opts.Store,
		generator:  opts.Generator,
		catalog:    opts.Catalog,
		player:     opts.Player,
		classifier: opts.Classifier,
		history:    opts.History,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, profileCommand, musicCommand, historyCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// close releases lazily opened connections.
func (r *Runner) close() {
	if r.disconnect != nil {
		r.disconnect()
	}
	if r.db != nil {
		r.db.Close()
	}
}

// loadConfig reloads config from the command's --config flag when the file exists.
func (r *Runner) loadConfig(cmd *cli.Command) {
	path := cmd.String("config")
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, keeping current settings", "path", path, "error", err)
		return
	}
	r.config = config
}

// resolveEmail picks the acting user: the --email flag, or the only
// configured allow-list entry when unambiguous.
func (r *Runner) resolveEmail(cmd *cli.Command) (string, error) {
	if email := cmd.String("email"); email != "" {
		if !auth.ValidateEmail(email) {
			return "", fmt.Errorf("%w: %s is not a valid email address", shared.ErrInvalidArgument, email)
		}
		if _, ok := r.config.Users[email]; !ok {
			return "", fmt.Errorf("%w: %s is not a configured user", shared.ErrAuthFailed, email)
		}
		return email, nil
	}

	if len(r.config.Users) == 1 {
		for email := range r.config.Users {
			return email, nil
		}
	}

	emails := make([]string, 0, len(r.config.Users))
	for email := range r.config.Users {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return "", fmt.Errorf("%w: --email (configured users: %v)", shared.ErrMissingArgument, emails)
}

// profileStore returns the injected store or connects to the document store.
func (r *Runner) profileStore(ctx context.Context) (ProfileStore, error) {
	if r.store != nil {
		return r.store, nil
	}

	store, client, err := profiles.Connect(ctx, r.config.Credentials.Mongo)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	r.store = store
	r.disconnect = func() {
		if err := client.Disconnect(context.Background()); err != nil {
			r.logger.Warn("failed to disconnect document store", "error", err)
		}
	}
	return r.store, nil
}

// predictor builds the genre predictor, loading the model artifact if no
// classifier was injected. A missing artifact is startup-fatal for the
// music commands.
func (r *Runner) predictor() (*genre.Predictor, error) {
	if r.classifier == nil {
		model, err := genre.LoadModel(r.config.Model.Path)
		if err != nil {
			return nil, err
		}
		r.classifier = model
	}
	return genre.NewPredictor(r.classifier, r.logger), nil
}

// composeEngine wires the compose engine from config-backed services.
// The player decides what happens to a finished track: the CLI opens a
// browser, the web server passes nil and returns the URL to the client.
func (r *Runner) composeEngine(player tasks.Player) (*tasks.ComposeEngine, error) {
	if r.generator == nil {
		generator, err := services.NewBeatovenService(r.config.Credentials.Beatoven)
		if err != nil {
			return nil, err
		}
		r.generator = generator
	}
	if r.catalog == nil {
		catalog, err := services.NewSpotifyService(context.Background(), r.config.Credentials.Spotify)
		if err != nil {
			r.logger.Warn("spotify catalog unavailable", "error", err)
		} else {
			r.catalog = catalog
		}
	}

	return tasks.NewComposeEngine(r.generator, r.catalog, player, r.config.Credentials.Beatoven, r.logger), nil
}

// cliPlayer returns the injected player or the browser-backed default.
func (r *Runner) cliPlayer() tasks.Player {
	if r.player != nil {
		return r.player
	}
	return browserPlayer{}
}

// historyRepo returns the injected recorder or opens the local database.
func (r *Runner) historyRepo() (Recorder, error) {
	if r.history != nil {
		return r.history, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	r.db = db
	r.history = repositories.NewTrackRecordRepository(db)
	return r.history, nil
}

// record persists a history row, logging rather than failing the command.
func (r *Runner) record(record *models.TrackRecord) {
	repo, err := r.historyRepo()
	if err != nil {
		r.logger.Warn("history unavailable", "error", err)
		return
	}
	if err := repo.Create(record); err != nil {
		r.logger.Warn("failed to record history", "error", err)
	}
}

// browserPlayer plays tracks by opening the system browser.
type browserPlayer struct{}

func (browserPlayer) Play(url string) error {
	return shared.OpenBrowser(url)
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
