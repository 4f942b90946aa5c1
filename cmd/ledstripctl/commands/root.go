package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/ledstripd/internal/config"
	"github.com/jmylchreest/ledstripd/internal/utils"
	"github.com/jmylchreest/ledstripd/pkg/client"
)

// NewRootCommand creates the root command. A client already on the context
// (tests) is used as is; otherwise one is built from --url.
func NewRootCommand(logger *slog.Logger, version, commit, buildDate string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ledstripctl",
		Short:         "Control a ledstripd LED strip",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			if err := utils.SetLevel(level); err != nil {
				return err
			}

			if _, err := getClient(cmd); err == nil {
				return nil
			}
			url, _ := cmd.Flags().GetString("url")
			c := client.NewHTTP(getLoggerFromCmd(cmd), url)
			cmd.SetContext(context.WithValue(cmd.Context(), ClientContextKey, c))
			return nil
		},
	}

	// Add global flags
	cmd.PersistentFlags().String("url", config.DefaultDeviceURL, "Base URL of the ledstripd HTTP API")
	cmd.PersistentFlags().String("log-level", config.LogLevelWarn, "Log level (debug, info, warn, error)")

	// Add commands
	cmd.AddCommand(newVersionCommand(version, commit, buildDate))
	cmd.AddCommand(NewStatusCommand())
	cmd.AddCommand(NewColorCommand())
	cmd.AddCommand(NewPresetsCommand())
	cmd.AddCommand(NewBrightnessCommand())
	cmd.AddCommand(NewPowerCommand())

	parent := context.Background()
	if logger != nil {
		parent = context.WithValue(parent, loggerContextKey{}, logger)
	}
	cmd.SetContext(parent)

	return cmd
}

// newVersionCommand creates the version command
func newVersionCommand(version, commit, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Client:\n")
			fmt.Printf("  Version:    %s\n", version)
			fmt.Printf("  Commit:     %s\n", commit)
			fmt.Printf("  Build Date: %s\n", buildDate)

			// Try to query the daemon for its version
			c, err := getClient(cmd)
			if err != nil {
				return
			}
			resp, err := c.GetVersion()
			if err != nil {
				fmt.Printf("\nDaemon: not reachable\n")
				return
			}
			fmt.Printf("\nDaemon:\n")
			if v, ok := resp["version"].(string); ok {
				fmt.Printf("  Version:    %s\n", v)
			}
			if c, ok := resp["commit"].(string); ok {
				fmt.Printf("  Commit:     %s\n", c)
			}
			if d, ok := resp["build_date"].(string); ok {
				fmt.Printf("  Build Date: %s\n", d)
			}
		},
	}
}
