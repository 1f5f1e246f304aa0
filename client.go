// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Default client configuration values
const (
	DefaultPort              = 8728
	DefaultTLSPort           = 8729
	DefaultConnectTimeout    = 30 * time.Second
	DefaultUseTLS            = false
	DefaultVerifyCertificate = true
)

// Client is a backend talking to a device over the binary API
type Client struct {
	// conn is the logged-in session (lazy connection)
	conn    *Conn
	netConn net.Conn

	// closed is set by Close; the client cannot be reused afterwards
	closed bool

	// Mutex serializing conversations; the API runs one sentence at a time
	mu sync.Mutex

	// Connection parameters
	Target   string
	Port     int
	username string // unexported for security
	password string // unexported for security

	// TLS options
	UseTLS            bool
	VerifyCertificate bool
	tlsCA             string

	// Timeout configuration
	ConnectTimeout   time.Duration
	OperationTimeout time.Duration

	dial   DialFunc
	logger Logger
}

// NewClient creates a new API client for the device at target
//
// The client does NOT connect immediately. The TCP session is opened and
// logged in on the first operation (lazy connection). Use Ping() to verify
// connectivity explicitly.
//
// Example:
//
//	client, err := routeros.NewClient(
//	    "192.168.88.1",
//	    routeros.Username("admin"),
//	    routeros.Password("secret"),
//	)
//	if err != nil {
//	    log.Fatal(err)  // Configuration error
//	}
//	defer client.Close()
//
//	ports, err := routeros.Fetch[resources.BridgePort](ctx, client)
func NewClient(target string, opts ...func(*Client)) (*Client, error) {
	client := &Client{
		Target:            target,
		UseTLS:            DefaultUseTLS,
		VerifyCertificate: DefaultVerifyCertificate,
		ConnectTimeout:    DefaultConnectTimeout,
		logger:            &NoOpLogger{},
	}
	var d net.Dialer
	client.dial = d.DialContext

	for _, opt := range opts {
		opt(client)
	}

	if client.Port == 0 {
		client.Port = DefaultPort
		if client.UseTLS {
			client.Port = DefaultTLSPort
		}
	}

	if err := client.validateConfig(); err != nil {
		return nil, err
	}

	client.logger.Info(context.Background(), "RouterOS client created",
		"target", client.Target,
		"port", client.Port,
		"connection", "lazy")

	return client, nil
}

// NewClientWithConn returns a client running over an already established and
// authenticated transport. Disconnect and Close close rw if it is an io.Closer.
func NewClientWithConn(rw net.Conn, opts ...func(*Client)) *Client {
	client := &Client{
		Target:         rw.RemoteAddr().String(),
		ConnectTimeout: DefaultConnectTimeout,
		logger:         &NoOpLogger{},
		dial: func(context.Context, string, string) (net.Conn, error) {
			return nil, fmt.Errorf("connection supplied by caller was closed")
		},
	}
	for _, opt := range opts {
		opt(client)
	}
	client.netConn = rw
	client.conn = NewConn(rw, client.logger)
	return client
}

// validateConfig validates client configuration
//
// Validates:
//   - Non-empty target
//   - Port range (1-65535)
//   - Positive connect timeout, non-negative operation timeout
//   - TLS CA file exists (if provided)
func (c *Client) validateConfig() error {
	if strings.TrimSpace(c.Target) == "" {
		return fmt.Errorf("target address cannot be empty")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", c.Port)
	}

	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("connect timeout must be positive, got: %v", c.ConnectTimeout)
	}
	if c.OperationTimeout < 0 {
		return fmt.Errorf("operation timeout must not be negative, got: %v", c.OperationTimeout)
	}

	if c.UseTLS && !c.VerifyCertificate {
		c.logger.Warn(context.Background(), "TLS certificate verification disabled",
			"target", c.Target,
			"security_risk", "Man-in-the-Middle attacks possible")
	}
	if !c.UseTLS {
		c.logger.Debug(context.Background(), "TLS disabled - credentials are sent in clear text",
			"target", c.Target)
	}

	if c.tlsCA != "" {
		if _, err := os.Stat(c.tlsCA); err != nil {
			c.logger.Debug(context.Background(), "TLS CA validation failed",
				"path", c.tlsCA,
				"error", err.Error())
			return fmt.Errorf("TLS CA file not found: %s", filepath.Base(c.tlsCA))
		}
	}

	if !c.HasCredentials() {
		c.logger.Warn(context.Background(), "No credentials configured",
			"target", c.Target,
			"message", "device may reject login")
	}

	return nil
}

// HasCredentials reports whether a username is configured
func (c *Client) HasCredentials() bool {
	return c.username != ""
}

// address returns host:port, leaving explicit ports and IPv6 brackets intact
func (c *Client) address() string {
	if _, _, err := net.SplitHostPort(c.Target); err == nil {
		return c.Target
	}
	return net.JoinHostPort(strings.Trim(c.Target, "[]"), strconv.Itoa(c.Port))
}

func (c *Client) tlsConfig() (*tls.Config, error) {
	host, _, err := net.SplitHostPort(c.address())
	if err != nil {
		return nil, err
	}
	cfg := &tls.Config{
		ServerName:         host,
		InsecureSkipVerify: !c.VerifyCertificate, //nolint:gosec // opt-in via VerifyCertificate(false)
		MinVersion:         tls.VersionTLS12,
	}
	if c.tlsCA != "" {
		pem, err := os.ReadFile(c.tlsCA)
		if err != nil {
			return nil, fmt.Errorf("read TLS CA: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", filepath.Base(c.tlsCA))
		}
		cfg.RootCAs = pool
	}
	return cfg, nil
}

// ensureConnected dials and logs in if there is no session yet
//
// PRECONDITION: Caller must hold c.mu.
func (c *Client) ensureConnected(ctx context.Context) error {
	if c.closed {
		return ErrClientClosed
	}
	if c.conn != nil {
		return nil
	}

	c.logger.Debug(ctx, "Establishing RouterOS API connection",
		"target", c.Target,
		"port", c.Port,
		"tls", c.UseTLS)

	ctx, cancel := context.WithTimeout(ctx, c.ConnectTimeout)
	defer cancel()

	nc, err := c.dial(ctx, "tcp", c.address())
	if err != nil {
		return &OperationError{
			Operation:   "connect",
			Message:     "failed to establish connection",
			InternalMsg: err.Error(),
			Err:         err,
		}
	}
	if c.UseTLS {
		cfg, err := c.tlsConfig()
		if err != nil {
			_ = nc.Close()
			return err
		}
		tc := tls.Client(nc, cfg)
		if err := tc.HandshakeContext(ctx); err != nil {
			_ = nc.Close()
			return &OperationError{
				Operation:   "connect",
				Message:     "TLS handshake failed",
				InternalMsg: err.Error(),
				Err:         err,
			}
		}
		nc = tc
	}

	conn := NewConn(nc, c.logger)
	if err := conn.Login(ctx, c.username, c.password); err != nil {
		_ = nc.Close()
		c.logger.Error(ctx, "RouterOS login failed",
			"target", c.Target,
			"username", c.username,
			"error", err.Error())
		return &OperationError{
			Operation:   "login",
			Message:     "authentication failed",
			InternalMsg: err.Error(),
			Err:         err,
		}
	}

	c.netConn = nc
	c.conn = conn

	c.logger.Info(ctx, "RouterOS API connection established",
		"target", c.Target,
		"port", c.Port)

	return nil
}

// withConn runs fn on the logged-in session, holding the client lock.
//
// A transport error, a "!fatal" reply or an expired context drops the session
// so that the next call reconnects. After a "!fatal" the device closes the
// socket, and an abandoned sentence may still be answered.
func (c *Client) withConn(ctx context.Context, fn func(ctx context.Context, conn *Conn) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if c.OperationTimeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.OperationTimeout)
			defer cancel()
		}
	}
	if err := c.ensureConnected(ctx); err != nil {
		return err
	}

	err := fn(ctx, c.conn)
	if err != nil && (IsTransportError(err) || isFatal(err) || ctx.Err() != nil ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)) {
		c.logger.Warn(ctx, "dropping RouterOS session",
			"target", c.Target,
			"error", err.Error())
		c.dropLocked()
	}
	return err
}

// isFatal reports whether err carries a "!fatal" reply.
func isFatal(err error) bool {
	var trap *TrapError
	return errors.As(err, &trap) && trap.Fatal
}

// dropLocked closes the session. PRECONDITION: caller holds c.mu.
func (c *Client) dropLocked() {
	if c.netConn != nil {
		_ = c.netConn.Close()
	}
	c.netConn = nil
	c.conn = nil
}

// Disconnect closes the session but preserves client configuration
//
// Unlike Close(), the client stays usable: the next operation dials and
// logs in again.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.netConn == nil {
		return nil
	}
	err := c.netConn.Close()
	c.netConn = nil
	c.conn = nil

	c.logger.Info(context.Background(), "RouterOS connection disconnected",
		"target", c.Target,
		"reusable", true)
	return err
}

// Close closes the session and marks the client unusable (terminal operation)
//
// Safe to call multiple times (subsequent calls are no-ops).
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if c.netConn == nil {
		return nil
	}
	err := c.netConn.Close()
	c.netConn = nil
	c.conn = nil

	c.logger.Info(context.Background(), "RouterOS connection closed",
		"target", c.Target,
		"reusable", false)
	return err
}

// Ping verifies connectivity by reading the system identity
//
// This establishes the session if needed, so it also verifies the credentials.
func (c *Client) Ping(ctx context.Context) error {
	return c.withConn(ctx, func(ctx context.Context, conn *Conn) error {
		words, err := conn.TalkAll(ctx, Command{Path: "system/identity/print"})
		if err != nil {
			return err
		}
		return trapFromWords(words)
	})
}
