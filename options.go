// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"context"
	"net"
	"time"
)

// Client configuration options using the functional options pattern

// Username sets the username for API authentication
func Username(username string) func(*Client) {
	return func(c *Client) {
		c.username = username
	}
}

// Password sets the password for API authentication
func Password(password string) func(*Client) {
	return func(c *Client) {
		c.password = password
	}
}

// Port sets the API port (default: 8728, or 8729 with TLS)
func Port(port int) func(*Client) {
	return func(c *Client) {
		c.Port = port
	}
}

// TLS enables or disables the api-ssl service (default: disabled)
//
// When enabled and no explicit Port is given, the client connects to 8729.
func TLS(enabled bool) func(*Client) {
	return func(c *Client) {
		c.UseTLS = enabled
	}
}

// VerifyCertificate enables or disables TLS certificate verification (default: enabled)
//
// RouterOS ships with self-signed certificates; disable verification only in
// lab environments.
func VerifyCertificate(verify bool) func(*Client) {
	return func(c *Client) {
		c.VerifyCertificate = verify
	}
}

// TLSCA sets a PEM file with the CA used to verify the device certificate
func TLSCA(caPath string) func(*Client) {
	return func(c *Client) {
		c.tlsCA = caPath
	}
}

// ConnectTimeout sets the timeout for dialing and logging in (default: 30s)
func ConnectTimeout(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.ConnectTimeout = duration
	}
}

// OperationTimeout bounds each backend call that carries no context deadline
//
// Zero (the default) leaves calls unbounded, so a stalled device stalls the
// caller until its context is cancelled.
func OperationTimeout(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.OperationTimeout = duration
	}
}

// WithLogger sets a custom logger for the client
//
// Example:
//
//	logger := routeros.NewDefaultLogger(routeros.LogLevelDebug)
//	client, _ := routeros.NewClient("192.168.88.1",
//	    routeros.Username("admin"),
//	    routeros.WithLogger(logger))
func WithLogger(logger Logger) func(*Client) {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// DialFunc opens the transport connection to address ("host:port")
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// WithDialer replaces the TCP dialer, e.g. to tunnel through a jump host
// or to connect to an in-memory fake in tests.
func WithDialer(dial DialFunc) func(*Client) {
	return func(c *Client) {
		if dial != nil {
			c.dial = dial
		}
	}
}
