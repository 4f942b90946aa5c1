package commands

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/jmylchreest/ledstripd/pkg/strip"
)

// onOff renders the power flag the way the CLI accepts it.
func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// StatusTableData returns the table data for a strip status
func StatusTableData(s strip.Status) pterm.TableData {
	return pterm.TableData{
		[]string{pterm.Bold.Sprint("Property"), pterm.Bold.Sprint("Value")},
		[]string{"Color", fmt.Sprintf("#%02x%02x%02x", s.R, s.G, s.B)},
		[]string{"Red", fmt.Sprintf("%d", s.R)},
		[]string{"Green", fmt.Sprintf("%d", s.G)},
		[]string{"Blue", fmt.Sprintf("%d", s.B)},
		[]string{"Brightness", fmt.Sprintf("%d (%d%%)", s.Brightness, int(s.Brightness)*100/255)},
		[]string{"Power", onOff(s.Power)},
	}
}

// StatusParseable returns the parseable key=value string for a strip status
func StatusParseable(s strip.Status) string {
	return fmt.Sprintf("r=%d g=%d b=%d brightness=%d power=%s", s.R, s.G, s.B, s.Brightness, onOff(s.Power))
}
