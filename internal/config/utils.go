package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StripTypes lists the supported color orders
var StripTypes = map[string]struct{}{
	"rgb": {},
	"rbg": {},
	"grb": {},
	"gbr": {},
	"brg": {},
	"bgr": {},
}

// GetConfigBaseDir returns the base directory for configuration files
func GetConfigBaseDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		// For the system service, XDG_CONFIG_HOME is set to /etc/ledstripd
		if dir == "/etc/ledstripd" {
			return dir
		}
		return filepath.Join(dir, ConfigDirName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", ConfigDirName)
}

// GetConfigPath returns the full path to a configuration file
func GetConfigPath(filename string) string {
	return filepath.Join(GetConfigBaseDir(), filename)
}

// GetDaemonConfigPath returns the full path to the daemon configuration file
func GetDaemonConfigPath() string {
	return GetConfigPath(DaemonConfigFilename)
}

// ValidatePSK checks a WPA2 passphrase length
func ValidatePSK(psk string) error {
	if n := len(psk); n < MinPSKLength || n > MaxPSKLength {
		return fmt.Errorf("passphrase must be %d-%d characters, got %d", MinPSKLength, MaxPSKLength, n)
	}
	return nil
}

// ValidateLogLevel normalizes a log level, falling back to info for unknown values
func ValidateLogLevel(level string) string {
	switch strings.ToLower(level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return strings.ToLower(level)
	default:
		return LogLevelInfo
	}
}
