package mqtt

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

	"github.com/jmylchreest/ledstripd/internal/config"
	lserrors "github.com/jmylchreest/ledstripd/internal/errors"
	"github.com/jmylchreest/ledstripd/internal/events"
	"github.com/jmylchreest/ledstripd/pkg/strip"
)

type mockStrip struct {
	mu      sync.Mutex
	state   strip.State
	updates []strip.PropertyValue
}

func (m *mockStrip) State() strip.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *mockStrip) Update(_ context.Context, v strip.PropertyValue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, v)
	v.Apply(&m.state)
	return nil
}

type published struct {
	topic    string
	retained bool
	payload  string
}

type recorder struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (r *recorder) publish(topic string, retained bool, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, published{topic, retained, string(payload)})
	return r.err
}

func (r *recorder) all() []published {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]published(nil), r.msgs...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestBridge(prefix string) (*Bridge, *mockStrip, *recorder) {
	m := &mockStrip{state: strip.DefaultState()}
	rec := &recorder{}
	b := NewBridge(config.MQTTConfig{Broker: "tcp://localhost:1883", TopicPrefix: prefix}, m, testLogger())
	b.publish = rec.publish
	return b, m, rec
}

func TestTopic(t *testing.T) {
	b, _, _ := newTestBridge("home/ledstrip/")
	assert.Equal(t, "home/ledstrip/state", b.Topic("state"))
	assert.Equal(t, "home/ledstrip/set/+", b.Topic("set", "+"))

	b = NewBridge(config.MQTTConfig{}, nil, testLogger())
	assert.Equal(t, "ledstrip/availability", b.Topic("availability"))
}

func TestHandleCommand(t *testing.T) {
	b, m, _ := newTestBridge("ledstrip")
	ctx := context.Background()

	require.NoError(t, b.handleCommand(ctx, "ledstrip/set/color", []byte(`{"r":1,"g":2,"b":3}`)))
	require.NoError(t, b.handleCommand(ctx, "ledstrip/set/brightness", []byte(`{"value":500}`)))
	require.NoError(t, b.handleCommand(ctx, "ledstrip/set/power", []byte(`{"state":false}`)))

	assert.Equal(t, strip.State{R: 1, G: 2, B: 3, Brightness: 255, Power: false}, m.State())
	assert.Len(t, m.updates, 3)
}

func TestHandleCommand_Rejected(t *testing.T) {
	b, m, _ := newTestBridge("ledstrip")
	ctx := context.Background()

	err := b.handleCommand(ctx, "ledstrip/set/color", []byte(`{"r":1`))
	assert.True(t, lserrors.IsMalformedPayload(err))

	err = b.handleCommand(ctx, "ledstrip/set/power", []byte(`{}`))
	assert.True(t, lserrors.IsMissingField(err))

	err = b.handleCommand(ctx, "ledstrip/set/speed", []byte(`{"value":1}`))
	assert.Error(t, err)

	assert.Empty(t, m.updates)
}

func TestStateForwarding(t *testing.T) {
	b, _, rec := newTestBridge("ledstrip")
	bus := events.NewBus()
	b.attach(bus)
	t.Cleanup(b.Stop)

	bus.Publish(events.NewEvent(events.StripStateChanged, strip.Status{R: 9, G: 8, B: 7, Brightness: 6, Power: true}))
	bus.Publish(events.NewEvent(events.StripPushFailed, map[string]string{"error": "x"}))

	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, time.Second, 10*time.Millisecond)
	msg := rec.all()[0]
	assert.Equal(t, "ledstrip/state", msg.topic)
	assert.True(t, msg.retained)
	assert.JSONEq(t, `{"r":9,"g":8,"b":7,"brightness":6,"power":true}`, msg.payload)
}

func TestStateForwarding_PublishErrorIsNotFatal(t *testing.T) {
	b, _, rec := newTestBridge("ledstrip")
	rec.err = errors.New("broker down")
	b.attach(nil)
	t.Cleanup(b.Stop)

	b.enqueue(strip.DefaultState().Status())
	b.enqueue(strip.DefaultState().Status())
	require.Eventually(t, func() bool { return len(rec.all()) == 2 }, time.Second, 10*time.Millisecond)
}

func TestEnqueueDropsOldest(t *testing.T) {
	b, _, _ := newTestBridge("ledstrip")
	for i := 0; i < stateBuffer+3; i++ {
		b.enqueueRaw([]byte{byte(i)})
	}
	require.Len(t, b.states, stateBuffer)
	first := <-b.states
	assert.Equal(t, []byte{3}, first)
}

func TestStopIsIdempotent(t *testing.T) {
	b, _, _ := newTestBridge("ledstrip")
	bus := events.NewBus()
	b.attach(bus)
	assert.Equal(t, 1, bus.SubscriberCount())

	b.Stop()
	b.Stop()
	assert.Equal(t, 0, bus.SubscriberCount())
}
