// Package mqtt bridges the strip to an MQTT broker: state is published
// retained on every change and commands arrive on per-property topics.
package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/jmylchreest/ledstripd/internal/config"
	"github.com/jmylchreest/ledstripd/internal/events"
	"github.com/jmylchreest/ledstripd/pkg/strip"
)

// ErrConnectionFailed is returned when the broker cannot be reached in time.
var ErrConnectionFailed = errors.New("mqtt connection failed")

// stateBuffer bounds state messages waiting to be published; older states
// are dropped in favour of newer ones.
const stateBuffer = 8

// Updater is the part of the strip controller the bridge drives.
type Updater interface {
	State() strip.State
	Update(ctx context.Context, v strip.PropertyValue) error
}

type publishFunc func(topic string, retained bool, payload []byte) error

// Bridge connects one strip to one broker.
type Bridge struct {
	cfg    config.MQTTConfig
	strip  Updater
	logger *slog.Logger

	client  pahomqtt.Client
	publish publishFunc

	states      chan []byte
	unsubscribe func()
	stop        chan struct{}
	wg          sync.WaitGroup
	stopOnce    sync.Once
}

// NewBridge creates a bridge. Nothing is connected until Start.
func NewBridge(cfg config.MQTTConfig, s Updater, logger *slog.Logger) *Bridge {
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = config.DefaultMQTTTopicPrefix
	}
	return &Bridge{
		cfg:    cfg,
		strip:  s,
		logger: logger,
		states: make(chan []byte, stateBuffer),
		stop:   make(chan struct{}),
	}
}

// Topic joins parts under the configured prefix.
func (b *Bridge) Topic(parts ...string) string {
	return strings.Join(append([]string{strings.TrimSuffix(b.cfg.TopicPrefix, "/")}, parts...), "/")
}

// Start connects to the broker and begins forwarding state changes from bus.
func (b *Bridge) Start(ctx context.Context, bus *events.Bus) error {
	opts := buildClientOptions(b.cfg, b.Topic("availability"))
	opts.SetOnConnectHandler(func(c pahomqtt.Client) {
		b.onConnect(ctx, c)
	})
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		b.logger.Warn("mqtt: connection lost", "broker", b.cfg.Broker, "error", err)
	})

	b.client = pahomqtt.NewClient(opts)
	b.publish = func(topic string, retained bool, payload []byte) error {
		token := b.client.Publish(topic, qos, retained, payload)
		if !token.WaitTimeout(publishTimeout) {
			return fmt.Errorf("publishing to %s: timeout after %v", topic, publishTimeout)
		}
		return token.Error()
	}

	token := b.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		// Stop the background connect retries.
		b.client.Disconnect(0)
		return fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, connectTimeout)
	}
	if err := token.Error(); err != nil {
		b.client.Disconnect(0)
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	b.attach(bus)
	b.logger.Info("mqtt: bridge started", "broker", b.cfg.Broker, "prefix", b.cfg.TopicPrefix)
	return nil
}

// onConnect runs on the first connect and every reconnect.
func (b *Bridge) onConnect(ctx context.Context, c pahomqtt.Client) {
	commands := b.Topic("set", "+")
	c.Subscribe(commands, qos, func(_ pahomqtt.Client, msg pahomqtt.Message) {
		if err := b.handleCommand(ctx, msg.Topic(), msg.Payload()); err != nil {
			b.logger.Warn("mqtt: command rejected", "topic", msg.Topic(), "error", err)
		}
	})

	c.Publish(b.Topic("availability"), qos, true, payloadOnline)
	b.enqueue(b.strip.State().Status())
	b.logger.Debug("mqtt: connected", "broker", b.cfg.Broker, "subscribed", commands)
}

// attach subscribes to the bus and starts the publisher goroutine.
func (b *Bridge) attach(bus *events.Bus) {
	if bus != nil {
		b.unsubscribe = bus.Subscribe(func(e events.Event) {
			if e.Type == events.StripStateChanged {
				b.enqueueRaw(e.Data)
			}
		})
	}

	b.wg.Add(1)
	go b.publishLoop()
}

func (b *Bridge) enqueue(s strip.Status) {
	data, err := json.Marshal(s)
	if err != nil {
		return
	}
	b.enqueueRaw(data)
}

// enqueueRaw never blocks the bus; when the buffer is full the oldest
// pending state is discarded.
func (b *Bridge) enqueueRaw(data []byte) {
	for {
		select {
		case b.states <- data:
			return
		default:
		}
		select {
		case <-b.states:
		default:
		}
	}
}

func (b *Bridge) publishLoop() {
	defer b.wg.Done()
	topic := b.Topic("state")
	for {
		select {
		case <-b.stop:
			return
		case data := <-b.states:
			if err := b.publish(topic, true, data); err != nil {
				b.logger.Warn("mqtt: state publish failed", "topic", topic, "error", err)
			}
		}
	}
}

// handleCommand applies a payload received on <prefix>/set/<property>. The
// payload uses the same JSON bodies as the HTTP API.
func (b *Bridge) handleCommand(ctx context.Context, topic string, payload []byte) error {
	property := topic[strings.LastIndex(topic, "/")+1:]

	var (
		v   strip.PropertyValue
		err error
	)
	switch strip.PropertyName(property) {
	case strip.PropertyColor:
		var req strip.ColorRequest
		if req, err = strip.Decode[strip.ColorRequest](payload); err == nil {
			v, err = req.Value()
		}
	case strip.PropertyBrightness:
		var req strip.BrightnessRequest
		if req, err = strip.Decode[strip.BrightnessRequest](payload); err == nil {
			v, err = req.Property()
		}
	case strip.PropertyPower:
		var req strip.PowerRequest
		if req, err = strip.Decode[strip.PowerRequest](payload); err == nil {
			v, err = req.Property()
		}
	default:
		return fmt.Errorf("unknown property %q", property)
	}
	if err != nil {
		return err
	}

	b.logger.Debug("mqtt: command received", "property", property)
	return b.strip.Update(ctx, v)
}

// Stop publishes offline, disconnects and waits for the publisher to exit.
func (b *Bridge) Stop() {
	b.stopOnce.Do(func() {
		if b.unsubscribe != nil {
			b.unsubscribe()
		}
		close(b.stop)
		b.wg.Wait()

		if b.client != nil && b.client.IsConnected() {
			token := b.client.Publish(b.Topic("availability"), qos, true, payloadOffline)
			token.WaitTimeout(publishTimeout)
			b.client.Disconnect(disconnectQuiesce)
		}
		b.logger.Info("mqtt: bridge stopped")
	})
}
