// Package led drives addressable LED strips.
package led

import (
	"fmt"
	"log/slog"

	"github.com/jmylchreest/ledstripd/internal/config"
)

// New creates the Device selected by cfg.Driver.
func New(cfg config.StripConfig, logger *slog.Logger) (Device, error) {
	if cfg.LEDCount <= 0 {
		return nil, fmt.Errorf("led: invalid led count %d", cfg.LEDCount)
	}

	switch cfg.Driver {
	case config.DriverNoop, "":
		logger.Info("led: using no-op driver", "leds", cfg.LEDCount)
		return newNoop(cfg.LEDCount, logger), nil
	case config.DriverMemory:
		logger.Info("led: using in-memory driver", "leds", cfg.LEDCount)
		return NewMemory(cfg.LEDCount), nil
	case config.DriverWS281x:
		return newWS281x(cfg, logger)
	default:
		return nil, fmt.Errorf("led: unknown driver %q", cfg.Driver)
	}
}
