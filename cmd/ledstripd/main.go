package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/ledstripd/internal/config"
	"github.com/jmylchreest/ledstripd/internal/led"
	"github.com/jmylchreest/ledstripd/internal/server"
	"github.com/jmylchreest/ledstripd/internal/utils"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("ledstripd", pflag.ContinueOnError)
	flags.String("config", "", "Path to config file")
	flags.String("log-level", config.LogLevelInfo, "Log level (debug, info, warn, error)")
	flags.String("log-format", config.LogFormatText, "Log format (text, json)")
	flags.String("listen", config.DefaultAPIListenAddress, "HTTP listen address")
	flags.String("driver", config.DriverNoop, "LED driver (noop, memory, ws281x)")
	flags.String("static-root", config.DefaultStaticRoot, "Directory holding the web client")
	flags.Bool("version", false, "Print version and exit")
	return flags
}

func main() {
	flags := newFlagSet()
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if v, _ := flags.GetBool("version"); v {
		fmt.Printf("ledstripd %s (commit %s, built %s)\n", version, commit, buildDate)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, flags); err != nil {
		utils.SetupErrorLogger().Error("ledstripd failed", "error", err)
		os.Exit(1)
	}
}

// run starts the daemon and blocks until ctx is cancelled.
func run(ctx context.Context, flags *pflag.FlagSet) error {
	configPath, _ := flags.GetString("config")
	cfg, err := config.Load(configPath, flags)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := utils.SetupLogger(cfg.Logging.Level, cfg.Logging.Format)
	utils.SetAsDefaultLogger(logger)

	logger.Info("Starting ledstripd",
		"version", version,
		"commit", commit,
		"buildDate", buildDate,
		"config", cfg.Path(),
	)

	device, err := led.New(cfg.Strip, logger)
	if err != nil {
		return fmt.Errorf("failed to initialise LED driver: %w", err)
	}
	defer func() {
		if err := device.Close(); err != nil {
			logger.Error("Failed to release LED driver", "error", err)
		}
	}()

	srv, err := server.New(logger, cfg, device, server.BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	if watcher := watchLogLevel(cfg, logger); watcher != nil {
		defer watcher.Stop()
	}

	<-ctx.Done()
	logger.Info("Shutting down...")
	srv.Stop()
	return nil
}

// watchLogLevel applies logging.level changes from the config file without a
// restart. Other keys need a restart. It returns nil when no file is in use.
func watchLogLevel(cfg *config.Config, logger *slog.Logger) *config.Watcher[*config.Config] {
	path := cfg.Path()
	if path == "" {
		return nil
	}

	watcher := config.NewWatcher(path, func(p string) (*config.Config, error) {
		return config.Load(p, nil)
	}, logger)
	watcher.OnReload(func(c *config.Config) {
		level := config.ValidateLogLevel(c.Logging.Level)
		if level == utils.CurrentLevel() {
			return
		}
		if err := utils.SetLevel(level); err != nil {
			logger.Warn("Ignoring log level from config", "level", c.Logging.Level, "error", err)
			return
		}
		logger.Info("Log level changed", "level", level)
	})

	if err := watcher.Start(); err != nil {
		logger.Warn("Config file changes will not be applied", "path", path, "error", err)
		return nil
	}
	return watcher
}
