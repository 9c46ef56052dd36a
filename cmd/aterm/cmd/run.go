package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/aterm-app/aterm/internal/app"
	"github.com/aterm-app/aterm/internal/config"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the terminal core headless (no desktop window)",
	Long: `Run the session core without the desktop shell: persisted workspaces
are loaded, their initial sessions spawn, and activity is tracked. Useful
for debugging the core and for keeping agent sessions alive over SSH.`,
	RunE: runHeadless,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger with pretty console output
	logLevel := slog.LevelInfo
	zerologLevel := zerolog.InfoLevel
	if verbose || cfg.Logging.Level == "debug" {
		logLevel = slog.LevelDebug
		zerologLevel = zerolog.DebugLevel
	}

	// Configure zerolog global logger for the internal packages
	zerolog.SetGlobalLevel(zerologLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.Kitchen,
	}))

	core, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to assemble terminal core: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := core.Start(ctx); err != nil {
		return fmt.Errorf("failed to start terminal core: %w", err)
	}

	snap := core.Registry().Snapshot()
	logger.Info("terminal core running",
		"workspaces", len(snap.Workspaces),
		"sessions", len(snap.Sessions),
		"tty", core.Supervisor().TTY(),
	)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")
	core.Stop()
	return nil
}
