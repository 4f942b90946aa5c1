// Package ap brings up the Wi-Fi access point the web client is reached through.
package ap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmylchreest/ledstripd/internal/config"
)

// AccessPoint is a hotspot the daemon owns for its lifetime.
type AccessPoint interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// New returns the access point described by cfg. A disabled config yields a
// no-op. The PSK is validated before anything is touched on the host.
func New(cfg config.APConfig, logger *slog.Logger) (AccessPoint, error) {
	if !cfg.Enabled {
		return disabled{logger: logger}, nil
	}
	if cfg.SSID == "" {
		return nil, fmt.Errorf("access point: ssid must not be empty")
	}
	if err := config.ValidatePSK(cfg.PSK); err != nil {
		return nil, fmt.Errorf("access point: %w", err)
	}
	return NewNetworkManager(cfg, logger), nil
}

type disabled struct {
	logger *slog.Logger
}

func (d disabled) Start(context.Context) error {
	d.logger.Info("ap: access point disabled")
	return nil
}

func (disabled) Stop(context.Context) error { return nil }
