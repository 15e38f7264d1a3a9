package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fenggwsx/slashdm/internal/protocol"
)

var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrSendBufferFull   = errors.New("send buffer full")
)

// frameWriter is the transport-specific half of a session.
type frameWriter interface {
	WriteEnvelope(ctx context.Context, env protocol.Envelope) error
	WritePing(ctx context.Context) error
}

// session tracks per-connection state and outbound delivery.
type session struct {
	id     string
	userID uint
	writer frameWriter
	sendCh chan protocol.Envelope

	mu     sync.Mutex
	closed bool
}

var _ Conn = (*session)(nil)

func newSession(userID uint, writer frameWriter, buffer int) *session {
	if buffer <= 0 {
		buffer = 1
	}
	return &session{
		id:     uuid.NewString(),
		userID: userID,
		writer: writer,
		sendCh: make(chan protocol.Envelope, buffer),
	}
}

func (s *session) ID() string {
	return s.id
}

func (s *session) UserID() uint {
	return s.userID
}

func (s *session) Push(env protocol.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrConnectionClosed
	}
	select {
	case s.sendCh <- env:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// writeLoop drains the send buffer and emits a ping every pingInterval. It
// returns on the first write error, on close, or when ctx ends.
func (s *session) writeLoop(ctx context.Context, pingInterval time.Duration) error {
	var tick <-chan time.Time
	if pingInterval > 0 {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env, ok := <-s.sendCh:
			if !ok {
				return nil
			}
			if err := s.writer.WriteEnvelope(ctx, env); err != nil {
				return err
			}
		case <-tick:
			if err := s.writer.WritePing(ctx); err != nil {
				return err
			}
		}
	}
}

func (s *session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.sendCh)
}

func newEnvelope(msgType protocol.MessageType, payload interface{}) protocol.Envelope {
	return protocol.Envelope{
		ID:        uuid.NewString(),
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}
