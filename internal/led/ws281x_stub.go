//go:build !ws281x

package led

import (
	"log/slog"

	"github.com/jmylchreest/ledstripd/internal/config"
	"github.com/jmylchreest/ledstripd/internal/errors"
)

// newWS281x is unavailable unless the binary is built with -tags ws281x,
// which needs the rpi_ws281x C library.
func newWS281x(cfg config.StripConfig, _ *slog.Logger) (Device, error) {
	return nil, errors.DeviceUnavailablef("driver %q not compiled in (build with -tags ws281x)", cfg.Driver)
}
