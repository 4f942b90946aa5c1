package ap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"

	"github.com/jmylchreest/ledstripd/internal/config"
)

const (
	nmDest          = "org.freedesktop.NetworkManager"
	nmPath          = dbus.ObjectPath("/org/freedesktop/NetworkManager")
	nmIface         = "org.freedesktop.NetworkManager"
	nmSettingsIface = "org.freedesktop.NetworkManager.Settings.Connection"
)

// Settings is a NetworkManager connection settings dictionary (a{sa{sv}}).
type Settings map[string]map[string]dbus.Variant

// BuildSettings returns the connection profile for a WPA2 hotspot with a
// shared IPv4 network.
func BuildSettings(cfg config.APConfig, id string) Settings {
	return Settings{
		"connection": {
			"id":             dbus.MakeVariant("ledstrip-" + cfg.SSID),
			"type":           dbus.MakeVariant("802-11-wireless"),
			"uuid":           dbus.MakeVariant(id),
			"interface-name": dbus.MakeVariant(cfg.Interface),
			"autoconnect":    dbus.MakeVariant(false),
		},
		"802-11-wireless": {
			"mode": dbus.MakeVariant("ap"),
			"ssid": dbus.MakeVariant([]byte(cfg.SSID)),
		},
		"802-11-wireless-security": {
			"key-mgmt": dbus.MakeVariant("wpa-psk"),
			"psk":      dbus.MakeVariant(cfg.PSK),
		},
		"ipv4": {
			"method": dbus.MakeVariant("shared"),
		},
		"ipv6": {
			"method": dbus.MakeVariant("ignore"),
		},
	}
}

// NetworkManager starts the hotspot through NetworkManager on the system bus.
type NetworkManager struct {
	cfg    config.APConfig
	logger *slog.Logger

	mu         sync.Mutex
	conn       *dbus.Conn
	profile    dbus.ObjectPath
	activeConn dbus.ObjectPath
}

// NewNetworkManager creates an access point backed by NetworkManager.
func NewNetworkManager(cfg config.APConfig, logger *slog.Logger) *NetworkManager {
	return &NetworkManager{cfg: cfg, logger: logger}
}

// Start adds a temporary hotspot profile and activates it on the configured interface.
func (n *NetworkManager) Start(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.activeConn != "" {
		return nil
	}

	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("connecting to system bus: %w", err)
	}

	nm := conn.Object(nmDest, nmPath)

	var device dbus.ObjectPath
	if err := nm.CallWithContext(ctx, nmIface+".GetDeviceByIpIface", 0, n.cfg.Interface).Store(&device); err != nil {
		conn.Close()
		return fmt.Errorf("looking up interface %s: %w", n.cfg.Interface, err)
	}

	settings := BuildSettings(n.cfg, uuid.NewString())
	var profile, active dbus.ObjectPath
	if err := nm.CallWithContext(ctx, nmIface+".AddAndActivateConnection", 0, settings, device, dbus.ObjectPath("/")).Store(&profile, &active); err != nil {
		conn.Close()
		return fmt.Errorf("activating access point %s: %w", n.cfg.SSID, err)
	}

	n.conn = conn
	n.profile = profile
	n.activeConn = active
	n.logger.Info("ap: access point started", "ssid", n.cfg.SSID, "interface", n.cfg.Interface, "connection", active)
	return nil
}

// Stop deactivates the hotspot and removes the profile Start created.
func (n *NetworkManager) Stop(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.conn == nil {
		return nil
	}
	defer func() {
		n.conn.Close()
		n.conn = nil
		n.profile = ""
		n.activeConn = ""
	}()

	var errs []error
	nm := n.conn.Object(nmDest, nmPath)
	if err := nm.CallWithContext(ctx, nmIface+".DeactivateConnection", 0, n.activeConn).Err; err != nil {
		errs = append(errs, fmt.Errorf("deactivating access point: %w", err))
	}
	if err := n.conn.Object(nmDest, n.profile).CallWithContext(ctx, nmSettingsIface+".Delete", 0).Err; err != nil {
		errs = append(errs, fmt.Errorf("deleting access point profile: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	n.logger.Info("ap: access point stopped", "ssid", n.cfg.SSID)
	return nil
}
