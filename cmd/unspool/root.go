package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/unspool/unspool/internal/app"
	"github.com/unspool/unspool/internal/config"
)

var (
	flagVerbose bool
	flagFormat  string
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "unspool",
		Short:         "Extract posts and reconstruct threads from X.com",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "output format: markdown, text, or html")

	root.AddCommand(
		newLoginCommand(),
		newLogoutCommand(),
		newThreadCommand(),
		newFeedCommand(),
		newWatchCommand(),
		newArchiveCommand(),
		newOpenCommand(),
		newDoctorCommand(),
	)
	return root
}

// newApp builds the shared application state for a command invocation.
func newApp() (*app.App, error) {
	log := newLogger()
	cfg := loadConfig(log)
	return app.New(cfg, log)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
}

// loadConfig reads the config file, creating a default one on first run.
func loadConfig(log *slog.Logger) *config.Config {
	cfg, err := config.Load()
	if err == nil {
		return cfg
	}
	cfg = config.Default()
	if os.IsNotExist(err) {
		if saveErr := cfg.Save(); saveErr != nil {
			log.Warn("could not save default config", "error", saveErr)
		} else if path, pathErr := config.Path(); pathErr == nil {
			log.Info("created default config", "path", path)
		}
	} else {
		log.Warn("could not load config, using defaults", "error", err)
	}
	return cfg
}
