package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/vectortutor/internal/config"
	"github.com/abhisek/vectortutor/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "vectortutor",
	Short: "Terminal study copilot",
	Long: `VectorTutor reads your notes, makes flashcards and quizzes, and answers
doubts from your own material. All generation happens on the study backend;
this client uploads material and presents the results.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("backend", "", "Backend base URL (overrides VECTORTUTOR_BACKEND_URL)")
	pf.String("user", "", "User id sent with every request")
	pf.Duration("timeout", 0, "Timeout for one operation, e.g. 30s")
	pf.String("db", "", "Path to the request journal (overrides VECTORTUTOR_DB)")
	pf.String("log-file", "", "Path to the log file (overrides VECTORTUTOR_LOG_FILE)")

	rootCmd.Flags().Bool("no-splash", false, "Start on the home screen")

	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(devserverCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration from .env, the environment and flags,
// in increasing priority.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}
	cfg := config.FromEnv()

	flags := cmd.Flags()
	if v, _ := flags.GetString("backend"); v != "" {
		cfg.BackendURL = v
	}
	if v, _ := flags.GetString("user"); v != "" {
		cfg.UserID = v
	}
	if v, _ := flags.GetDuration("timeout"); v > 0 {
		cfg.Timeout = v
	}
	if v, _ := flags.GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := flags.GetString("log-file"); v != "" {
		cfg.LogFile = v
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the journal path using --db / VECTORTUTOR_DB, then
// the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, config.EnsureDir(cfg.DBPath)
	}
	return config.DefaultDBPath()
}

// openLogger writes logs to a file since the terminal belongs to the UI.
func openLogger(cfg config.Config) (*logger.Logger, error) {
	path := cfg.LogFile
	if path == "" {
		var err error
		if path, err = config.DefaultLogPath(); err != nil {
			return nil, fmt.Errorf("resolve log path: %w", err)
		}
	} else if err := config.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return logger.New(cfg.LogMode, path)
}

// attemptTimeout bounds one try of a retried read so that the retries still
// fit inside the operation timeout. Writes are sent once and get the whole
// operation timeout.
func attemptTimeout(cfg config.Config) time.Duration {
	if cfg.Retry.MaxAttempts <= 1 {
		return cfg.Timeout
	}
	return cfg.Timeout / time.Duration(cfg.Retry.MaxAttempts)
}
