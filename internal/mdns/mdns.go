// Package mdns advertises the HTTP API on the local network.
package mdns

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"

	"github.com/grandcat/zeroconf"
)

const (
	serviceName = "_http._tcp"
	domain      = "local."
)

// Advertiser announces the daemon over mDNS until Shutdown.
type Advertiser struct {
	server *zeroconf.Server
	logger *slog.Logger
}

// Port extracts the TCP port from a listen address such as ":80" or "0.0.0.0:8080".
func Port(listenAddress string) (int, error) {
	_, portStr, err := net.SplitHostPort(listenAddress)
	if err != nil {
		return 0, fmt.Errorf("invalid listen address %q: %w", listenAddress, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("invalid port in listen address %q", listenAddress)
	}
	return port, nil
}

// TXT returns the TXT records published with the service.
func TXT(version string) []string {
	return []string{
		"path=/api/status",
		"api=/api/v1",
		"version=" + version,
	}
}

// InstanceName returns the advertised instance name: the access point SSID
// when there is one, otherwise derived from the hostname.
func InstanceName(ssid string) string {
	if ssid != "" {
		return ssid
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "ledstrip"
	}
	return "ledstripd-" + host
}

// Register announces the service on all multicast interfaces.
func Register(instance string, port int, version string, logger *slog.Logger) (*Advertiser, error) {
	server, err := zeroconf.Register(instance, serviceName, domain, port, TXT(version), nil)
	if err != nil {
		return nil, fmt.Errorf("registering mdns service: %w", err)
	}
	logger.Info("mdns: advertising service", "instance", instance, "service", serviceName, "port", port)
	return &Advertiser{server: server, logger: logger}, nil
}

// Shutdown withdraws the advertisement.
func (a *Advertiser) Shutdown() {
	if a == nil || a.server == nil {
		return
	}
	a.server.Shutdown()
	a.logger.Info("mdns: advertisement withdrawn")
}
