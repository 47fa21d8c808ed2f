package httpserver

import (
	"errors"
	"fmt"
	"net"
)

// ListenFirst binds the first port from the list that is free. The index of
// the bound port is returned so callers can log which fallback was taken.
func ListenFirst(host string, ports []string) (net.Listener, int, error) {
	if len(ports) == 0 {
		return nil, -1, fmt.Errorf("no ports configured")
	}

	var errs []error
	for i, p := range ports {
		ln, err := net.Listen("tcp", net.JoinHostPort(host, p))
		if err == nil {
			return ln, i, nil
		}
		errs = append(errs, fmt.Errorf("port %s: %w", p, err))
	}
	return nil, -1, fmt.Errorf("all ports busy: %w", errors.Join(errs...))
}
