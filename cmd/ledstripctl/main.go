package main

import (
	"os"

	"github.com/jmylchreest/ledstripd/cmd/ledstripctl/commands"
	"github.com/jmylchreest/ledstripd/internal/config"
	"github.com/jmylchreest/ledstripd/internal/utils"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	// Commands raise the level from --log-level before they run.
	logger := utils.SetupLogger(config.LogLevelWarn, config.LogFormatText)
	utils.SetAsDefaultLogger(logger)

	rootCmd := commands.NewRootCommand(logger, version, commit, buildDate)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
