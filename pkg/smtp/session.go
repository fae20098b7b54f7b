package smtp

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

// State is a step of the submission exchange.
type State int

const (
	StateConnect State = iota
	StateGreeting
	StateHello
	StateStartTLS
	StateRehello
	StateAuthMethod
	StateAuthUser
	StateAuthPass
	StateMailFrom
	StateRcptTo
	StateData
	StateBody
	StateQuit
	StateClosed
)

var stateNames = map[State]string{
	StateConnect:    "CONNECT",
	StateGreeting:   "GREETING",
	StateHello:      "HELLO",
	StateStartTLS:   "STARTTLS",
	StateRehello:    "REHELLO",
	StateAuthMethod: "AUTH_METHOD",
	StateAuthUser:   "AUTH_USER",
	StateAuthPass:   "AUTH_PASS",
	StateMailFrom:   "MAIL_FROM",
	StateRcptTo:     "RCPT_TO",
	StateData:       "DATA",
	StateBody:       "BODY",
	StateQuit:       "QUIT",
	StateClosed:     "CLOSED",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// acceptedCodes lists the reply codes that let each state advance.
var acceptedCodes = map[State][]int{
	StateGreeting:   {220},
	StateHello:      {250},
	StateStartTLS:   {220},
	StateRehello:    {250},
	StateAuthMethod: {334},
	StateAuthUser:   {334},
	StateAuthPass:   {235},
	StateMailFrom:   {250},
	StateRcptTo:     {250, 251},
	StateData:       {354},
	StateBody:       {250},
	StateQuit:       {221},
}

// AcceptedCodes returns the reply codes accepted in state s.
func AcceptedCodes(s State) []int {
	return append([]int(nil), acceptedCodes[s]...)
}

// Next returns the state following s. The STARTTLS pair is skipped when
// the connection was opened over TLS.
func (s State) Next(secure bool) State {
	switch s {
	case StateHello:
		if secure {
			return StateAuthMethod
		}
		return StateStartTLS
	case StateQuit, StateClosed:
		return StateClosed
	default:
		return s + 1
	}
}

// session is a single connect-to-quit exchange. It is never reused.
type session struct {
	cfg    Config
	mail   Mail
	date   time.Time
	dialer Dialer

	raw    net.Conn
	conn   net.Conn
	reader *LineReader
	state  State

	// mu orders deadline updates against context cancellation.
	mu sync.Mutex
}

func (s *session) run(ctx context.Context) (err error) {
	s.state = StateConnect
	if err := s.connect(ctx); err != nil {
		return err
	}

	stop := context.AfterFunc(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		_ = s.raw.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	defer func() {
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = fmt.Errorf("%w: %w", ctxErr, err)
			}
			s.abort()
			return
		}
		_ = s.conn.Close()
	}()

	for s.state = StateGreeting; s.state != StateClosed; s.state = s.state.Next(s.cfg.Secure) {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.setDeadline(ctx)
		if err := s.step(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) step(ctx context.Context) error {
	switch s.state {
	case StateGreeting:
		return s.await("greeting")
	case StateHello, StateRehello:
		return s.command("EHLO " + s.cfg.Host)
	case StateStartTLS:
		if err := s.command("STARTTLS"); err != nil {
			return err
		}
		return s.upgrade(ctx)
	case StateAuthMethod:
		return s.command("AUTH LOGIN")
	case StateAuthUser:
		return s.commandAs(encode(s.cfg.Username), "AUTH LOGIN <username>")
	case StateAuthPass:
		return s.commandAs(encode(s.cfg.Password), "AUTH LOGIN <password>")
	case StateMailFrom:
		return s.command("MAIL FROM:<" + s.cfg.FromEmail + ">")
	case StateRcptTo:
		return s.command("RCPT TO:<" + sanitizeHeader(s.mail.To) + ">")
	case StateData:
		return s.command("DATA")
	case StateBody:
		if _, err := io.WriteString(s.conn, BuildMessage(s.cfg, s.mail, s.date)); err != nil {
			return fmt.Errorf("smtp: write message body: %w", err)
		}
		return s.await("message body")
	case StateQuit:
		return s.command("QUIT")
	}
	return fmt.Errorf("smtp: no action for state %s", s.state)
}

func (s *session) command(line string) error {
	return s.commandAs(line, line)
}

func (s *session) commandAs(line, label string) error {
	_, err := exchange(s.conn, s.reader, line, label, acceptedCodes[s.state])
	return err
}

func (s *session) await(label string) error {
	_, err := await(s.reader, label, acceptedCodes[s.state])
	return err
}

func (s *session) connect(ctx context.Context) error {
	addr := s.cfg.Addr()
	conn, err := s.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp: connect %s: %w", addr, err)
	}
	s.raw = conn
	s.conn = conn

	if s.cfg.Secure {
		tc := tls.Client(conn, s.tlsConfig())
		if err := tc.HandshakeContext(ctx); err != nil {
			_ = conn.Close()
			return fmt.Errorf("smtp: tls handshake with %s: %w", addr, err)
		}
		s.conn = tc
	}
	s.reader = NewLineReader(s.conn)
	return nil
}

// upgrade switches the open connection to TLS in place. The previous
// reader is dropped along with anything it buffered.
func (s *session) upgrade(ctx context.Context) error {
	tc := tls.Client(s.conn, s.tlsConfig())
	if err := tc.HandshakeContext(ctx); err != nil {
		return fmt.Errorf("smtp: starttls handshake: %w", err)
	}
	s.conn = tc
	s.reader = NewLineReader(tc)
	return nil
}

func (s *session) tlsConfig() *tls.Config {
	var cfg *tls.Config
	if s.cfg.TLSConfig != nil {
		cfg = s.cfg.TLSConfig.Clone()
	} else {
		cfg = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	if cfg.ServerName == "" {
		cfg.ServerName = s.cfg.Host
	}
	return cfg
}

func (s *session) setDeadline(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		_ = s.raw.SetDeadline(time.Unix(1, 0))
		return
	}

	var deadline time.Time
	if s.cfg.Timeout > 0 {
		deadline = time.Now().Add(s.cfg.Timeout)
	}
	if dl, ok := ctx.Deadline(); ok && (deadline.IsZero() || dl.Before(deadline)) {
		deadline = dl
	}
	_ = s.raw.SetDeadline(deadline)
}

// abort drops the connection without a graceful shutdown.
func (s *session) abort() {
	if tc, ok := s.raw.(*net.TCPConn); ok {
		_ = tc.SetLinger(0)
	}
	_ = s.raw.Close()
}

func encode(v string) string {
	return base64.StdEncoding.EncodeToString([]byte(v))
}
