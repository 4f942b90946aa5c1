package led

import (
	"log/slog"

	"github.com/jmylchreest/ledstripd/internal/config"
)

// noop implements Device for hosts without a strip attached
type noop struct {
	logger     *slog.Logger
	count      int
	color      Color
	brightness uint8
}

func newNoop(count int, logger *slog.Logger) *noop {
	return &noop{logger: logger, count: count}
}

func (n *noop) Fill(c Color) { n.color = c }

func (n *noop) SetBrightness(b uint8) { n.brightness = b }

// Show logs the frame but drives no hardware
func (n *noop) Show() error {
	n.logger.Debug("led: show (no-op)",
		"leds", n.count,
		"r", n.color.R,
		"g", n.color.G,
		"b", n.color.B,
		"brightness", n.brightness)
	return nil
}

func (n *noop) Len() int { return n.count }

func (n *noop) Name() string { return config.DriverNoop }

func (n *noop) Close() error { return nil }
