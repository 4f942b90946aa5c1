package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config represents the daemon configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Strip   StripConfig   `mapstructure:"strip"`
	AP      APConfig      `mapstructure:"ap"`
	Static  StaticConfig  `mapstructure:"static"`
	MDNS    MDNSConfig    `mapstructure:"mdns"`
	MQTT    MQTTConfig    `mapstructure:"mqtt"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`

	// Internal viper instance
	v *viper.Viper
}

// APIConfig represents the HTTP API configuration
type APIConfig struct {
	ListenAddress string `mapstructure:"listen_address"`
	RateLimit     int    `mapstructure:"rate_limit"` // requests per minute per IP, 0 disables
}

// StripConfig represents the LED strip driver configuration
type StripConfig struct {
	Driver    string `mapstructure:"driver"`
	LEDCount  int    `mapstructure:"led_count"`
	GPIOPin   int    `mapstructure:"gpio_pin"`
	DMA       int    `mapstructure:"dma"`
	StripType string `mapstructure:"strip_type"`
}

// APConfig represents the Wi-Fi access point configuration
type APConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Interface string `mapstructure:"interface"`
	SSID      string `mapstructure:"ssid"`
	PSK       string `mapstructure:"psk"`
}

// StaticConfig represents the static web client configuration
type StaticConfig struct {
	Root  string `mapstructure:"root"`
	Index string `mapstructure:"index"`
}

// MDNSConfig represents the mDNS advertisement configuration
type MDNSConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// MQTTConfig represents the optional MQTT bridge configuration.
// The bridge is disabled when Broker is empty.
type MQTTConfig struct {
	Broker      string `mapstructure:"broker"`
	ClientID    string `mapstructure:"client_id"`
	TopicPrefix string `mapstructure:"topic_prefix"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
}

// MetricsConfig represents the Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// flagBindings maps config keys to the command line flags that override them
var flagBindings = map[string]string{
	"logging.level":      "log-level",
	"logging.format":     "log-format",
	"api.listen_address": "listen",
	"strip.driver":       "driver",
	"static.root":        "static-root",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.listen_address", DefaultAPIListenAddress)
	v.SetDefault("api.rate_limit", DefaultRateLimit)

	v.SetDefault("strip.driver", DriverNoop)
	v.SetDefault("strip.led_count", DefaultLEDCount)
	v.SetDefault("strip.gpio_pin", DefaultGPIOPin)
	v.SetDefault("strip.dma", DefaultDMAChannel)
	v.SetDefault("strip.strip_type", DefaultStripType)

	v.SetDefault("ap.enabled", true)
	v.SetDefault("ap.interface", DefaultAPInterface)
	v.SetDefault("ap.ssid", DefaultAPSSID)
	v.SetDefault("ap.psk", DefaultAPPSK)

	v.SetDefault("static.root", DefaultStaticRoot)
	v.SetDefault("static.index", DefaultIndexFile)

	v.SetDefault("mdns.enabled", true)

	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.client_id", DefaultMQTTClientID)
	v.SetDefault("mqtt.topic_prefix", DefaultMQTTTopicPrefix)
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")

	v.SetDefault("metrics.enabled", true)

	v.SetDefault("logging.level", LogLevelInfo)
	v.SetDefault("logging.format", LogFormatText)
}

// Load loads configuration from a file, environment variables and flags.
// An empty configFile means the default XDG location; a missing file is not an error.
// flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigFile(GetDaemonConfigPath())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	} else {
		slog.Debug("Using config file", "path", v.ConfigFileUsed())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := New(v)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return cfg, nil
}

// New creates a config bound to an existing viper instance without reading it
func New(v *viper.Viper) *Config {
	return &Config{v: v}
}

// Path returns the config file in use, or an empty string if none was read
func (c *Config) Path() string {
	if c.v == nil {
		return ""
	}
	path := c.v.ConfigFileUsed()
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// Get retrieves a value from the configuration
func (c *Config) Get(key string) any {
	if c.v == nil {
		return nil
	}
	return c.v.Get(key)
}

// Validate checks the configuration for values the daemon cannot start with
func (c *Config) Validate() error {
	var errs []error

	switch c.Strip.Driver {
	case DriverNoop, DriverMemory, DriverWS281x:
	default:
		errs = append(errs, fmt.Errorf("strip.driver: unknown driver %q", c.Strip.Driver))
	}
	if c.Strip.LEDCount <= 0 {
		errs = append(errs, fmt.Errorf("strip.led_count: must be positive, got %d", c.Strip.LEDCount))
	}
	if _, ok := StripTypes[strings.ToLower(c.Strip.StripType)]; !ok {
		errs = append(errs, fmt.Errorf("strip.strip_type: unknown type %q", c.Strip.StripType))
	}

	if c.AP.Enabled {
		if c.AP.SSID == "" {
			errs = append(errs, errors.New("ap.ssid: must not be empty"))
		}
		if err := ValidatePSK(c.AP.PSK); err != nil {
			errs = append(errs, fmt.Errorf("ap.psk: %w", err))
		}
	}

	if c.API.ListenAddress == "" {
		errs = append(errs, errors.New("api.listen_address: must not be empty"))
	}
	if c.API.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("api.rate_limit: must not be negative, got %d", c.API.RateLimit))
	}

	if c.Static.Index == "" {
		errs = append(errs, errors.New("static.index: must not be empty"))
	}

	if c.MQTT.Broker != "" && c.MQTT.TopicPrefix == "" {
		errs = append(errs, errors.New("mqtt.topic_prefix: must not be empty when a broker is set"))
	}

	if ValidateLogLevel(c.Logging.Level) != strings.ToLower(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case LogFormatText, LogFormatJSON:
	default:
		errs = append(errs, fmt.Errorf("logging.format: unknown format %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}
