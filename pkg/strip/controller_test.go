package strip

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/ledstripd/internal/events"
	"github.com/jmylchreest/ledstripd/internal/led"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type pushRecord struct {
	state State
	err   error
}

type recordingObserver struct {
	mu     sync.Mutex
	pushes []pushRecord
}

func (o *recordingObserver) ObservePush(s State, _ time.Duration, err error) {
	o.mu.Lock()
	o.pushes = append(o.pushes, pushRecord{state: s, err: err})
	o.mu.Unlock()
}

func (o *recordingObserver) all() []pushRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]pushRecord(nil), o.pushes...)
}

func startController(t *testing.T, dev led.Device) (*Controller, context.CancelFunc) {
	t.Helper()
	c := NewController(testLogger(), dev)
	ctx, cancel := context.WithCancel(context.Background())
	go c.Run(ctx)
	t.Cleanup(cancel)

	select {
	case <-c.Started():
	case <-time.After(2 * time.Second):
		t.Fatal("controller did not start")
	}
	return c, cancel
}

func TestDefaultState(t *testing.T) {
	s := DefaultState()
	assert.Equal(t, State{R: 255, G: 255, B: 255, Brightness: 128, Power: true}, s)
	assert.Equal(t, Status{R: 255, G: 255, B: 255, Brightness: 128, Power: true}, s.Status())
}

func TestRun_PushesInitialState(t *testing.T) {
	dev := led.NewMemory(60)
	startController(t, dev)

	frame := dev.Last()
	require.Len(t, frame.Pixels, 60)
	assert.Equal(t, led.RGB(255, 255, 255), frame.Pixels[0])
	assert.Equal(t, uint8(128), frame.Brightness)
	assert.Equal(t, 1, dev.Shows())
}

func TestUpdate_Color(t *testing.T) {
	dev := led.NewMemory(4)
	c, _ := startController(t, dev)

	require.NoError(t, c.Update(context.Background(), ColorValue{R: 255, G: 0, B: 128}))

	s := c.State()
	assert.Equal(t, uint8(255), s.R)
	assert.Equal(t, uint8(0), s.G)
	assert.Equal(t, uint8(128), s.B)
	assert.Equal(t, uint8(128), s.Brightness)
	assert.True(t, s.Power)

	for _, p := range dev.Last().Pixels {
		assert.Equal(t, led.RGB(255, 0, 128), p)
	}
}

func TestUpdate_Brightness(t *testing.T) {
	dev := led.NewMemory(4)
	c, _ := startController(t, dev)

	require.NoError(t, c.Update(context.Background(), BrightnessValue(200)))
	assert.Equal(t, uint8(200), c.State().Brightness)
	assert.Equal(t, uint8(200), dev.Last().Brightness)
}

func TestUpdate_PowerOffBlanksStripAndKeepsColor(t *testing.T) {
	dev := led.NewMemory(4)
	c, _ := startController(t, dev)

	require.NoError(t, c.Update(context.Background(), ColorValue{R: 10, G: 20, B: 30}))
	require.NoError(t, c.Update(context.Background(), PowerValue(false)))

	for _, p := range dev.Last().Output() {
		assert.Equal(t, led.Off, p)
	}
	s := c.State()
	assert.False(t, s.Power)
	assert.Equal(t, uint8(10), s.R)

	// Changes while off are remembered but stay dark
	require.NoError(t, c.Update(context.Background(), ColorValue{R: 1, G: 2, B: 3}))
	for _, p := range dev.Last().Output() {
		assert.Equal(t, led.Off, p)
	}

	require.NoError(t, c.Update(context.Background(), PowerValue(true)))
	assert.Equal(t, led.RGB(1, 2, 3), dev.Last().Pixels[0])
}

func TestUpdate_IsIdempotent(t *testing.T) {
	dev := led.NewMemory(2)
	c, _ := startController(t, dev)

	require.NoError(t, c.Update(context.Background(), BrightnessValue(42)))
	first := c.State()
	require.NoError(t, c.Update(context.Background(), BrightnessValue(42)))
	assert.Equal(t, first, c.State())
	assert.Equal(t, 3, dev.Shows())
}

func TestUpdate_PublishesEvent(t *testing.T) {
	dev := led.NewMemory(2)
	bus := events.NewBus()
	c := NewController(testLogger(), dev)
	c.SetEventBus(bus)

	got := make(chan events.Event, 4)
	bus.Subscribe(func(e events.Event) { got <- e })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	require.NoError(t, c.Update(context.Background(), PowerValue(false)))

	select {
	case e := <-got:
		assert.Equal(t, events.StripStateChanged, e.Type)
		assert.JSONEq(t, `{"r":255,"g":255,"b":255,"brightness":128,"power":false}`, string(e.Data))
	case <-time.After(time.Second):
		t.Fatal("no event published")
	}
}

func TestPushFailure_IsReportedAndStateKept(t *testing.T) {
	dev := led.NewMemory(2)
	obs := &recordingObserver{}
	bus := events.NewBus()
	failures := make(chan events.Event, 4)
	bus.Subscribe(func(e events.Event) {
		if e.Type == events.StripPushFailed {
			failures <- e
		}
	})

	c := NewController(testLogger(), dev)
	c.SetObserver(obs)
	c.SetEventBus(bus)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)
	<-c.Started()

	boom := errors.New("dma timeout")
	dev.FailShows(boom)

	require.NoError(t, c.Update(context.Background(), BrightnessValue(10)))
	assert.Equal(t, uint8(10), c.State().Brightness)

	pushes := obs.all()
	require.Len(t, pushes, 2)
	assert.NoError(t, pushes[0].err)
	assert.ErrorIs(t, pushes[1].err, boom)
	assert.Equal(t, uint8(10), pushes[1].state.Brightness)

	select {
	case <-failures:
	case <-time.After(time.Second):
		t.Fatal("no push failure event")
	}
}

func TestUpdate_ConcurrentMutationsAreSerialised(t *testing.T) {
	dev := led.NewMemory(8)
	c, _ := startController(t, dev)

	const workers = 20
	var wg sync.WaitGroup
	for i := range workers {
		wg.Go(func() {
			v := uint8(i * 10)
			assert.NoError(t, c.Update(context.Background(), ColorValue{R: v, G: v, B: v}))
		})
	}
	wg.Wait()

	// The final frame matches the final state exactly; no torn color.
	s := c.State()
	assert.True(t, s.R == s.G && s.G == s.B)
	for _, p := range dev.Last().Pixels {
		assert.Equal(t, led.RGB(s.R, s.G, s.B), p)
	}
	assert.Equal(t, workers+1, dev.Shows())
}

func TestUpdate_AfterStop(t *testing.T) {
	c, cancel := startController(t, led.NewMemory(2))
	cancel()
	<-c.done

	err := c.Update(context.Background(), PowerValue(false))
	assert.ErrorIs(t, err, ErrControllerStopped)
}

func TestUpdate_ContextCancelledBeforeQueued(t *testing.T) {
	c := NewController(testLogger(), led.NewMemory(2))
	// Fill the queue without an executor so the next send blocks.
	for range DefaultQueueSize {
		c.requests <- request{value: PowerValue(true), reply: make(chan error, 1)}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.Update(ctx, PowerValue(false)), context.DeadlineExceeded)
}

func TestRun_OnlyOnce(t *testing.T) {
	dev := led.NewMemory(2)
	c, _ := startController(t, dev)

	done := make(chan struct{})
	go func() {
		c.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second Run did not return")
	}
	assert.Equal(t, 1, dev.Shows())
}
