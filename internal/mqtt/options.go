package mqtt

import (
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/jmylchreest/ledstripd/internal/config"
)

const (
	connectTimeout    = 10 * time.Second
	publishTimeout    = 5 * time.Second
	disconnectQuiesce = 500 // milliseconds
	keepAlive         = 60 * time.Second
	maxReconnect      = 2 * time.Minute

	qos = 1

	payloadOnline  = "online"
	payloadOffline = "offline"
)

// buildClientOptions creates paho options with auto-reconnect and a retained
// last-will on the availability topic.
func buildClientOptions(cfg config.MQTTConfig, availability string) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetMaxReconnectInterval(maxReconnect)
	opts.SetConnectTimeout(connectTimeout)
	opts.SetKeepAlive(keepAlive)
	// Commands block on the strip executor; don't stall the paho router.
	opts.SetOrderMatters(false)

	opts.SetWill(availability, payloadOffline, qos, true)
	return opts
}
