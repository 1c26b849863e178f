package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/vectortutor/internal/api"
	"github.com/abhisek/vectortutor/internal/app"
	"github.com/abhisek/vectortutor/internal/config"
	"github.com/abhisek/vectortutor/internal/logger"
	"github.com/abhisek/vectortutor/internal/session"
	"github.com/abhisek/vectortutor/internal/store"
)

// deps bundles what a study session needs.
type deps struct {
	cfg   config.Config
	log   *logger.Logger
	store *store.Store
	ctrl  *session.Controller
}

// Close releases everything opened by newDeps.
func (d *deps) Close() {
	d.ctrl.Close()
	if err := d.store.Close(); err != nil {
		d.log.Error("close journal failed", "error", err)
	}
	d.log.Sync()
}

// newDeps loads configuration, opens the journal and logger and builds the
// session controller on top of the backend client.
func newDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := openLogger(cfg)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		log.Error("open journal failed", "path", dbPath, "error", err)
		log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	client := api.New(api.Options{
		BaseURL: cfg.BackendURL,
		Retry: api.RetryConfig{
			MaxAttempts:    cfg.Retry.MaxAttempts,
			InitialWait:    cfg.Retry.InitialWait,
			MaxWait:        cfg.Retry.MaxWait,
			Multiplier:     cfg.Retry.Multiplier,
			AttemptTimeout: attemptTimeout(cfg),
		},
		EventRepo: st.EventRepo(),
		Logger:    log,
	})

	ctrl := session.NewController(client, session.Options{
		BackendURL: cfg.BackendURL,
		UserID:     cfg.UserID,
		Timeout:    cfg.Timeout,
		Logger:     log,
	})

	log.Info("session started", "backend", cfg.BackendURL, "user_id", cfg.UserID, "journal", dbPath)
	return &deps{cfg: cfg, log: log, store: st, ctrl: ctrl}, nil
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(cmd.Context(), app.Options{
		Controller: d.ctrl,
		EventRepo:  d.store.EventRepo(),
		Logger:     d.log,
		SkipSplash: noSplash,
	})
}
