package conductor

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultHost = "localhost"
	DefaultPort = "8080"
)

// Config holds the server endpoint. It is built once at startup and never
// mutated afterwards.
type Config struct {
	Host    string
	Port    string
	Timeout time.Duration // 0 disables the client timeout
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	return Config{
		Host: DefaultHost,
		Port: DefaultPort,
	}
}

// Validate checks that the host and port can form a base URL
func (c Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return fmt.Errorf("host must not be empty")
	}
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port '%s': must be an integer between 1 and 65535", c.Port)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout %v: must not be negative", c.Timeout)
	}
	return nil
}

// BaseURL returns the scheme and authority every request path is appended to
func (c Config) BaseURL() string {
	return "http://" + net.JoinHostPort(c.Host, c.Port)
}
