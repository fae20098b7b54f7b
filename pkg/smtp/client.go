// Package smtp is a minimal mail submission client. It speaks the SMTP
// wire protocol directly over a socket: greeting, EHLO, optional
// STARTTLS, AUTH LOGIN, envelope, dot-stuffed DATA and QUIT.
//
// Each Send opens one connection, delivers one message to one recipient
// and closes the connection. There is no pooling and no retry; callers
// decide what a failed delivery means for them.
package smtp

import (
	"context"
	"crypto/tls"
	"net"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/femi9outfit/storefront/pkg/smtp"

// Config holds the connection and sender settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// Secure dials straight into TLS. When false the session upgrades
	// with STARTTLS after the first EHLO.
	Secure    bool
	FromEmail string
	FromName  string
	// Timeout bounds each protocol step. Zero means no timeout.
	Timeout   time.Duration
	TLSConfig *tls.Config
}

// Configured reports whether every required setting is present.
func (c Config) Configured() bool {
	return c.Host != "" && c.Username != "" && c.Password != "" && c.FromEmail != ""
}

// Addr returns host:port for dialing.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Mail is a single plain-text message for one recipient.
type Mail struct {
	To      string
	Subject string
	Text    string
}

// Result reports whether the message was handed to the server.
type Result struct {
	Sent bool
}

// Dialer opens the underlying connection.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Client sends mail with a fixed configuration.
type Client struct {
	cfg    Config
	dialer Dialer
	now    func() time.Time
	tracer trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithDialer replaces the default net.Dialer.
func WithDialer(d Dialer) Option {
	return func(c *Client) {
		c.dialer = d
	}
}

// WithClock sets the time source used for the Date header.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a Client.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:    cfg,
		dialer: &net.Dialer{},
		now:    time.Now,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send delivers m over a fresh connection. When the client is not
// configured it logs a warning and returns an unsent Result without
// touching the network.
func (c *Client) Send(ctx context.Context, m Mail) (Result, error) {
	logger := log.Ctx(ctx)
	if !c.cfg.Configured() {
		logger.Warn().Msg("SMTP is not configured. Set SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS, SMTP_FROM_EMAIL.")
		return Result{Sent: false}, nil
	}

	ctx, span := c.tracer.Start(ctx, "smtp.Send", trace.WithAttributes(
		attribute.String("smtp.host", c.cfg.Host),
		attribute.Int("smtp.port", c.cfg.Port),
		attribute.Bool("smtp.secure", c.cfg.Secure),
	))
	defer span.End()

	s := &session{
		cfg:    c.cfg,
		mail:   m,
		date:   c.now(),
		dialer: c.dialer,
	}
	err := s.run(ctx)
	span.SetAttributes(attribute.String("smtp.state", s.state.String()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Debug().Err(err).Str("state", s.state.String()).Str("to", m.To).Msg("SMTP session failed")
		return Result{}, err
	}

	logger.Debug().Str("to", m.To).Str("subject", m.Subject).Msg("SMTP message sent")
	return Result{Sent: true}, nil
}
