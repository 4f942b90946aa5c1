package strip

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/ledstripd/internal/events"
	"github.com/jmylchreest/ledstripd/internal/led"
)

// DefaultQueueSize bounds the number of mutations waiting for the executor.
const DefaultQueueSize = 16

// ErrControllerStopped is returned by Update once Run has returned.
var ErrControllerStopped = errors.New("strip controller stopped")

// PushObserver is told about every frame pushed to the device.
type PushObserver interface {
	ObservePush(s State, d time.Duration, err error)
}

type request struct {
	value PropertyValue
	reply chan error
}

// Controller owns the strip state and the device. A single executor
// goroutine (Run) applies mutations one at a time, so the device always
// shows a state that existed at some point, and State never observes a
// half-applied mutation.
type Controller struct {
	logger   *slog.Logger
	device   led.Device
	bus      *events.Bus
	observer PushObserver

	mu    sync.RWMutex
	state State

	requests chan request
	done     chan struct{}
	started  chan struct{}
	runOnce  sync.Once
}

// NewController creates a controller in DefaultState. Call Run to start it.
func NewController(logger *slog.Logger, device led.Device) *Controller {
	return &Controller{
		logger:   logger,
		device:   device,
		state:    DefaultState(),
		requests: make(chan request, DefaultQueueSize),
		done:     make(chan struct{}),
		started:  make(chan struct{}),
	}
}

// SetEventBus publishes a strip.state_changed event after every mutation.
// Must be called before Run.
func (c *Controller) SetEventBus(bus *events.Bus) {
	c.bus = bus
}

// SetObserver registers a push observer. Must be called before Run.
func (c *Controller) SetObserver(o PushObserver) {
	c.observer = o
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Device returns the driven device.
func (c *Controller) Device() led.Device {
	return c.device
}

// Started is closed once Run has pushed the initial state.
func (c *Controller) Started() <-chan struct{} {
	return c.started
}

// Run pushes the current state and then applies queued mutations until ctx
// is cancelled. It must only be called once; later calls return immediately.
func (c *Controller) Run(ctx context.Context) {
	first := false
	c.runOnce.Do(func() { first = true })
	if !first {
		return
	}
	defer close(c.done)

	c.apply(c.State())
	close(c.started)
	c.logger.Info("strip: controller started", "driver", c.device.Name(), "leds", c.device.Len())

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("strip: controller stopped")
			return
		case req := <-c.requests:
			req.reply <- c.handle(req.value)
		}
	}
}

// Update queues a mutation and waits for it to be applied. It returns once
// the new state is visible through State and the frame has been pushed.
// If ctx ends while waiting, a mutation that was already queued still runs.
func (c *Controller) Update(ctx context.Context, v PropertyValue) error {
	req := request{value: v, reply: make(chan error, 1)}

	select {
	case c.requests <- req:
	case <-c.done:
		return ErrControllerStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.reply:
		return err
	case <-c.done:
		select {
		case err := <-req.reply:
			return err
		default:
			return ErrControllerStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) handle(v PropertyValue) error {
	c.mu.Lock()
	next := c.state
	v.Apply(&next)
	c.state = next
	c.mu.Unlock()

	c.logger.Info("strip: state updated",
		"property", v.PropertyName(),
		"r", next.R,
		"g", next.G,
		"b", next.B,
		"brightness", next.Brightness,
		"power", next.Power)

	c.apply(next)

	if c.bus != nil {
		c.bus.Publish(events.NewEvent(events.StripStateChanged, next.Status()))
	}
	return nil
}

// apply drives the device to s. A failed push is logged and reported but
// not retried; the next mutation pushes a full frame again.
func (c *Controller) apply(s State) {
	start := time.Now()
	if s.Power {
		c.device.Fill(led.RGB(s.R, s.G, s.B))
		c.device.SetBrightness(s.Brightness)
	} else {
		c.device.Fill(led.Off)
	}
	err := c.device.Show()
	elapsed := time.Since(start)

	if err != nil {
		c.logger.Error("strip: push failed", "driver", c.device.Name(), "error", err)
		if c.bus != nil {
			c.bus.Publish(events.NewEvent(events.StripPushFailed, map[string]string{"error": err.Error()}))
		}
	} else {
		c.logger.Debug("strip: frame pushed", "duration", elapsed)
	}

	if c.observer != nil {
		c.observer.ObservePush(s, elapsed, err)
	}
}
