package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fenggwsx/slashdm/internal/protocol"
)

const (
	sessionMaxFrameBytes = 1 << 20
	handshakeTimeout     = 10 * time.Second
)

// Session holds the push connection to the server.
type Session struct {
	addr     string
	token    string
	conn     net.Conn
	encoder  *protocol.Encoder
	decoder  *protocol.Decoder
	messages chan protocol.Envelope
	cancelFn context.CancelFunc

	mu  sync.Mutex
	err error
}

// NewSession prepares a session for addr authenticated with token.
func NewSession(addr, token string) *Session {
	return &Session{
		addr:     addr,
		token:    token,
		messages: make(chan protocol.Envelope, 32),
	}
}

// Connect dials the server and completes the auth handshake.
func (s *Session) Connect(ctx context.Context) (protocol.AuthResponse, error) {
	var bound protocol.AuthResponse
	if s.addr == "" {
		return bound, errors.New("no push address configured")
	}
	if s.token == "" {
		return bound, errors.New("no token configured")
	}

	dialer := &net.Dialer{Timeout: handshakeTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", s.addr)
	if err != nil {
		return bound, err
	}
	s.conn = conn
	s.encoder = protocol.NewEncoder(conn)
	s.decoder = protocol.NewDecoder(conn, sessionMaxFrameBytes)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(handshakeTimeout)
	}
	_ = conn.SetDeadline(deadline)
	bound, err = s.handshake(ctx)
	if err != nil {
		_ = conn.Close()
		return bound, err
	}
	_ = conn.SetDeadline(time.Time{})

	readCtx, cancel := context.WithCancel(context.Background())
	s.cancelFn = cancel
	go s.readLoop(readCtx)
	return bound, nil
}

func (s *Session) handshake(ctx context.Context) (protocol.AuthResponse, error) {
	var bound protocol.AuthResponse
	request := protocol.Envelope{
		ID:        uuid.NewString(),
		Type:      protocol.MessageTypeAuthRequest,
		Timestamp: time.Now(),
		Token:     s.token,
	}
	if err := s.encoder.Encode(ctx, request); err != nil {
		return bound, err
	}

	env, err := s.decoder.Decode(ctx)
	if err != nil {
		return bound, err
	}
	ack, err := protocol.DecodePayload[protocol.AckPayload](env.Payload)
	if err != nil {
		return bound, fmt.Errorf("decode ack: %w", err)
	}
	if ack.Status != protocol.AckStatusOK {
		return bound, fmt.Errorf("handshake rejected: %s", ack.Reason)
	}

	env, err = s.decoder.Decode(ctx)
	if err != nil {
		return bound, err
	}
	if env.Type != protocol.MessageTypeAuthResponse {
		return bound, fmt.Errorf("unexpected %s frame during handshake", env.Type)
	}
	return protocol.DecodePayload[protocol.AuthResponse](env.Payload)
}

// Messages yields server pushes. It is closed when the connection ends.
func (s *Session) Messages() <-chan protocol.Envelope {
	return s.messages
}

// Err returns the error that ended the read loop, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close terminates the session.
func (s *Session) Close() error {
	if s.cancelFn != nil {
		s.cancelFn()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func (s *Session) readLoop(ctx context.Context) {
	defer close(s.messages)
	for {
		env, err := s.decoder.Decode(ctx)
		if err != nil {
			if ctx.Err() == nil {
				s.mu.Lock()
				s.err = err
				s.mu.Unlock()
			}
			return
		}
		if env.Type == protocol.MessageTypePing || env.Type == protocol.MessageTypePong {
			continue
		}
		select {
		case s.messages <- env:
		case <-ctx.Done():
			return
		}
	}
}
