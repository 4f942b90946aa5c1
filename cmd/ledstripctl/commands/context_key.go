package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/ledstripd/pkg/client"
)

// ClientContextKey is used for storing the client in context for commands.
// All command handlers and the main entry point must use this same key
// to ensure the client can be retrieved from the context.
var ClientContextKey = &struct{}{}

// getClient returns the client stored on the command context.
func getClient(cmd *cobra.Command) (client.ClientInterface, error) {
	if ctx := cmd.Context(); ctx != nil {
		if c, ok := ctx.Value(ClientContextKey).(client.ClientInterface); ok && c != nil {
			return c, nil
		}
	}
	return nil, fmt.Errorf("no client configured")
}
