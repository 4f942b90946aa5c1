//go:build ws281x

package led

import (
	"log/slog"
	"strings"
	"sync"

	ws2811 "github.com/rpi-ws281x/rpi-ws281x-go"

	"github.com/jmylchreest/ledstripd/internal/config"
	"github.com/jmylchreest/ledstripd/internal/errors"
)

var stripTypes = map[string]int{
	"rgb": ws2811.WS2811StripRGB,
	"rbg": ws2811.WS2811StripRBG,
	"grb": ws2811.WS2811StripGRB,
	"gbr": ws2811.WS2811StripGBR,
	"brg": ws2811.WS2811StripBRG,
	"bgr": ws2811.WS2811StripBGR,
}

// ws281x drives a WS2811/WS2812B strip through the rpi_ws281x library.
type ws281x struct {
	mu     sync.Mutex
	dev    *ws2811.WS2811
	count  int
	logger *slog.Logger
}

func newWS281x(cfg config.StripConfig, logger *slog.Logger) (Device, error) {
	opt := ws2811.DefaultOptions
	opt.DmaNum = cfg.DMA
	opt.Channels[0].GpioPin = cfg.GPIOPin
	opt.Channels[0].LedCount = cfg.LEDCount
	opt.Channels[0].Brightness = config.MaxChannel
	opt.Channels[0].StripeType = stripTypes[strings.ToLower(cfg.StripType)]

	dev, err := ws2811.MakeWS2811(&opt)
	if err != nil {
		return nil, errors.DeviceUnavailablef("ws281x: %v", err)
	}
	if err := dev.Init(); err != nil {
		return nil, errors.DeviceUnavailablef("ws281x init on gpio %d: %v", cfg.GPIOPin, err)
	}

	logger.Info("led: ws281x strip initialised",
		"leds", cfg.LEDCount,
		"gpio", cfg.GPIOPin,
		"dma", cfg.DMA,
		"strip_type", cfg.StripType)

	return &ws281x{dev: dev, count: cfg.LEDCount, logger: logger}, nil
}

func (w *ws281x) Fill(c Color) {
	w.mu.Lock()
	defer w.mu.Unlock()
	leds := w.dev.Leds(0)
	v := c.Uint32()
	for i := range leds {
		leds[i] = v
	}
}

func (w *ws281x) SetBrightness(b uint8) {
	w.mu.Lock()
	w.dev.SetBrightness(0, int(b))
	w.mu.Unlock()
}

// Show renders the frame and waits for the DMA transfer to finish.
func (w *ws281x) Show() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.dev.Render(); err != nil {
		return errors.DeviceUnavailablef("ws281x render: %v", err)
	}
	if err := w.dev.Wait(); err != nil {
		return errors.DeviceUnavailablef("ws281x wait: %v", err)
	}
	return nil
}

func (w *ws281x) Len() int { return w.count }

func (w *ws281x) Name() string { return config.DriverWS281x }

func (w *ws281x) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dev.Fini()
	return nil
}
