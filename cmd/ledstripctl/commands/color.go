package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Preset is a named color offered by the web client.
type Preset struct {
	Name    string
	R, G, B int
}

// Presets lists the quick colors in display order.
var Presets = []Preset{
	{"white", 255, 255, 255},
	{"red", 255, 0, 0},
	{"green", 0, 255, 0},
	{"blue", 0, 0, 255},
	{"yellow", 255, 255, 0},
	{"cyan", 0, 255, 255},
	{"magenta", 255, 0, 255},
	{"orange", 255, 165, 0},
	{"purple", 128, 0, 128},
	{"pink", 255, 192, 203},
}

// FindPreset looks a preset up by name, ignoring case.
func FindPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

func parseChannel(name, arg string) (int, error) {
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: must be an integer", name, arg)
	}
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("invalid %s value %d: must be 0-255", name, v)
	}
	return v, nil
}

// NewColorCommand creates the color command
func NewColorCommand() *cobra.Command {
	var preset string
	cmd := &cobra.Command{
		Use:   "color <r> <g> <b> | --preset <name>",
		Short: "Set the strip color",
		RunE: func(cmd *cobra.Command, args []string) error {
			var r, g, b int
			switch {
			case preset != "" && len(args) > 0:
				return fmt.Errorf("use either r g b or --preset, not both")
			case preset != "":
				p, ok := FindPreset(preset)
				if !ok {
					return fmt.Errorf("unknown preset %q (see 'ledstripctl presets')", preset)
				}
				r, g, b = p.R, p.G, p.B
			case len(args) == 3:
				var err error
				if r, err = parseChannel("red", args[0]); err != nil {
					return err
				}
				if g, err = parseChannel("green", args[1]); err != nil {
					return err
				}
				if b, err = parseChannel("blue", args[2]); err != nil {
					return err
				}
			default:
				return fmt.Errorf("expected 3 arguments (r g b) or --preset, got %d", len(args))
			}

			c, err := getClient(cmd)
			if err != nil {
				return err
			}
			if err := c.SetColor(r, g, b); err != nil {
				return fmt.Errorf("failed to set color: %w", err)
			}
			getLoggerFromCmd(cmd).Debug("Color set", "r", r, "g", g, "b", b)
			pterm.Success.Printf("Color set to %d, %d, %d\n", r, g, b)
			return nil
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", "Use a named preset color")
	return cmd
}

// NewPresetsCommand creates the presets command
func NewPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List preset colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := pterm.TableData{{"Name", "R", "G", "B"}}
			for _, p := range Presets {
				table = append(table, []string{p.Name, strconv.Itoa(p.R), strconv.Itoa(p.G), strconv.Itoa(p.B)})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
		},
	}
}
