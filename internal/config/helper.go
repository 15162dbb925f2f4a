package config

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
)

// ValidatePort validates that a port number is valid
func ValidatePort(port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}

	return nil
}

// hostnameRegex validates hostnames according to RFC 1123
var hostnameRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?)*$`)

// ValidateHost validates that a host string is a valid IP address or hostname
func ValidateHost(host string) error {
	if host == "" {
		return fmt.Errorf("host cannot be empty")
	}

	if net.ParseIP(host) != nil {
		return nil
	}

	if len(host) > 253 || !hostnameRegex.MatchString(host) {
		return fmt.Errorf("host must be a valid IP address or hostname")
	}

	return nil
}

// Address joins a host and port into a dialable address
func Address(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
