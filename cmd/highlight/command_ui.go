package main

import (
	"context"
	"flag"
	"io"

	"github.com/shivam-bit/highlight/internal/app"
	"github.com/shivam-bit/highlight/internal/config"
	"github.com/shivam-bit/highlight/internal/logging"
	"github.com/shivam-bit/highlight/internal/quickstart"
	"github.com/shivam-bit/highlight/internal/store"
	"github.com/shivam-bit/highlight/internal/types"
)

type UICommand struct {
	stderr     io.Writer
	loadConfig func() (config.CoreConfig, error)
	newClient  clientFactory
	runUI      func(opts app.Options) error
	openUILog  func() (io.WriteCloser, error)
}

func NewUICommand(stderr io.Writer, loadConfig func() (config.CoreConfig, error), newClient clientFactory, runUI func(opts app.Options) error, openUILog func() (io.WriteCloser, error)) *UICommand {
	return &UICommand{
		stderr:     stderr,
		loadConfig: loadConfig,
		newClient:  newClient,
		runUI:      runUI,
		openUILog:  openUILog,
	}
}

func (c *UICommand) Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	project := fs.String("project", "", "project id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	projectID, err := resolveProject(*project, cfg)
	if err != nil {
		return err
	}

	logger := logging.Nop()
	if c.openUILog != nil {
		if out, err := c.openUILog(); err == nil {
			defer out.Close()
			logger = logging.New(out, logging.ParseLevel(cfg.LogLevel()))
		}
	}
	logger = logger.With(logging.F("component", "ui"), logging.F("project_id", projectID))

	api, err := c.newClient(cfg, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	repo, err := openStateRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer repo.Close()
	state, err := repo.AppState().Load(ctx)
	if err != nil {
		logger.Warn("app state load failed", logging.F("err", err))
	}
	if state == nil || state.ProjectID != projectID {
		state = &types.AppState{
			ProjectID: projectID,
			Player: types.PlayerConfig{
				AutoPlaySessions:        cfg.UI.AutoPlay,
				ShowDetailedSessionView: cfg.UI.ShowDetails,
			},
		}
	}
	keymap := loadKeymap(ctx, logger)

	docs := ""
	if guide, ok := quickstart.Lookup("pino"); ok {
		docs = guide.Markdown(projectID)
	}

	return c.runUI(app.Options{
		API:                 api,
		ProjectID:           projectID,
		State:               state,
		StateStore:          repo.AppState(),
		Keymap:              keymap,
		Logger:              logger,
		LivePollInterval:    cfg.LivePollInterval(),
		ScrollCheckInterval: cfg.ScrollCheckInterval(),
		DocsMarkdown:        docs,
	})
}

func openStateRepository(ctx context.Context, cfg config.CoreConfig) (store.Repository, error) {
	statePath, err := config.StatePath()
	if err != nil {
		return nil, err
	}
	dbPath, err := config.StateDBPath()
	if err != nil {
		return nil, err
	}
	paths := store.RepositoryPaths{AppStatePath: statePath, DBPath: dbPath}
	repo, err := store.OpenRepository(paths, cfg.StateBackend())
	if err != nil {
		return nil, err
	}
	if err := store.SeedRepositoryFromFiles(ctx, repo, paths); err != nil {
		_ = repo.Close()
		return nil, err
	}
	return repo, nil
}

func loadKeymap(ctx context.Context, logger logging.Logger) *types.Keymap {
	path, err := config.KeymapPath()
	if err != nil {
		return nil
	}
	keymap, err := store.NewFileKeymapStore(path).Load(ctx)
	if err != nil {
		logger.Warn("keymap load failed", logging.F("path", path), logging.F("err", err))
		return nil
	}
	return keymap
}
