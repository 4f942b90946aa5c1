package config

import "time"

// Common constants shared between daemon and client
const (
	// ConfigDirName is the name of the config directory within XDG_CONFIG_HOME
	ConfigDirName = "ledstrip"

	// DaemonConfigFilename is the base filename for daemon config
	DaemonConfigFilename = "ledstripd.yaml"

	// EnvPrefix is the prefix for environment variable overrides (LEDSTRIP_API_LISTEN_ADDRESS, ...)
	EnvPrefix = "LEDSTRIP"

	// DefaultAPIListenAddress is the default HTTP API listen address
	DefaultAPIListenAddress = ":80"

	// DefaultDeviceURL is the address of the controller on its own access point
	DefaultDeviceURL = "http://192.168.4.1"

	// DefaultStaticRoot is where the web client is installed
	DefaultStaticRoot = "/var/lib/ledstripd/www"

	// DefaultIndexFile is served for directory requests
	DefaultIndexFile = "index.html"
)

// Access point defaults
const (
	// DefaultAPInterface is the wireless interface used for the access point
	DefaultAPInterface = "wlan0"

	// DefaultAPSSID is the network name of the access point
	DefaultAPSSID = "LED-Control"

	// DefaultAPPSK is the pre-shared key of the access point
	DefaultAPPSK = "12345678"

	// MinPSKLength is the minimum WPA2 passphrase length
	MinPSKLength = 8

	// MaxPSKLength is the maximum WPA2 passphrase length
	MaxPSKLength = 63
)

// Strip defaults
const (
	// DriverNoop logs pushes without touching hardware
	DriverNoop = "noop"

	// DriverMemory keeps the last pushed frame in memory
	DriverMemory = "memory"

	// DriverWS281x drives a WS2811/WS2812B strip through rpi_ws281x
	DriverWS281x = "ws281x"

	// DefaultLEDCount is the number of pixels on the strip
	DefaultLEDCount = 60

	// DefaultGPIOPin is the data pin (PWM0 on a Raspberry Pi)
	DefaultGPIOPin = 18

	// DefaultDMAChannel is the DMA channel used by rpi_ws281x
	DefaultDMAChannel = 10

	// DefaultStripType is the color order of the strip
	DefaultStripType = "grb"
)

// Light constraints
const (
	// MinChannel is the minimum value of a color channel or brightness
	MinChannel = 0

	// MaxChannel is the maximum value of a color channel or brightness
	MaxChannel = 255

	// DefaultChannel is the power-on value of each color channel
	DefaultChannel = 255

	// DefaultBrightness is the power-on brightness
	DefaultBrightness = 128
)

// HTTP and MQTT defaults
const (
	// DefaultRateLimit is the default number of API requests per minute per IP
	DefaultRateLimit = 120

	// DefaultMQTTClientID is the client ID used when connecting to a broker
	DefaultMQTTClientID = "ledstripd"

	// DefaultMQTTTopicPrefix is the root of the state and command topics
	DefaultMQTTTopicPrefix = "ledstrip"

	// DefaultShutdownTimeout bounds graceful HTTP shutdown
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultWatchDebounce delays config reloads after a file change
	DefaultWatchDebounce = 1500 * time.Millisecond
)

// Logging constants
const (
	// LogLevelDebug represents debug log level
	LogLevelDebug = "debug"

	// LogLevelInfo represents info log level
	LogLevelInfo = "info"

	// LogLevelWarn represents warning log level
	LogLevelWarn = "warn"

	// LogLevelError represents error log level
	LogLevelError = "error"

	// LogFormatText represents text log format
	LogFormatText = "text"

	// LogFormatJSON represents JSON log format
	LogFormatJSON = "json"
)
