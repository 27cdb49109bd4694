package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
)

const (
	DefaultPort        = 54465
	DefaultBindAddress = "0.0.0.0"
	DefaultRoot        = "/workspace"
)

// Config holds the settings of one server process. It is built once at startup
// and never mutated afterwards.
type Config struct {
	// Port is the TCP port to listen on.
	Port int

	// BindAddress is the IP address to bind. Empty means all interfaces.
	BindAddress string

	// Root is the directory whose files are served.
	Root string

	// Quiet disables the per-request access log.
	Quiet bool

	// NoColor forces plain access log lines.
	NoColor bool
}

// Default returns the configuration of the reference deployment.
func Default() Config {
	return Config{
		Port:        DefaultPort,
		BindAddress: DefaultBindAddress,
		Root:        DefaultRoot,
	}
}

// Address returns the host:port pair the server listens on.
func (c Config) Address() string {
	return net.JoinHostPort(c.BindAddress, strconv.Itoa(c.Port))
}

// URL returns the address a local browser should open.
func (c Config) URL() string {
	return "http://" + net.JoinHostPort("localhost", strconv.Itoa(c.Port))
}

// Validate checks the port range, the bind address and that the root is an
// existing directory.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, c.Port)
	}
	if c.BindAddress != "" && net.ParseIP(c.BindAddress) == nil {
		return fmt.Errorf("%w: got %q", ErrInvalidBindAddress, c.BindAddress)
	}

	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("unable to use root %q: %w", c.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrRootNotDir, c.Root)
	}
	return nil
}
