package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// NewBrightnessCommand creates the brightness command
func NewBrightnessCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "brightness <0-255>",
		Short: "Set the global brightness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[0])
			if err != nil || value < 0 || value > 255 {
				return fmt.Errorf("invalid brightness %q: must be 0-255", args[0])
			}

			c, err := getClient(cmd)
			if err != nil {
				return err
			}
			if err := c.SetBrightness(value); err != nil {
				return fmt.Errorf("failed to set brightness: %w", err)
			}
			pterm.Success.Printf("Brightness set to %d\n", value)
			return nil
		},
	}
}

// NewPowerCommand creates the power command
func NewPowerCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "power <on|off>",
		Short:     "Switch the strip on or off",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var on bool
			switch strings.ToLower(args[0]) {
			case "on", "true", "1":
				on = true
			case "off", "false", "0":
				on = false
			default:
				return fmt.Errorf("invalid power state %q: use on or off", args[0])
			}

			c, err := getClient(cmd)
			if err != nil {
				return err
			}
			if err := c.SetPower(on); err != nil {
				return fmt.Errorf("failed to set power: %w", err)
			}
			pterm.Success.Printf("Power %s\n", onOff(on))
			return nil
		},
	}
}
