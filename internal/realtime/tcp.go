package realtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fenggwsx/slashdm/internal/config"
	"github.com/fenggwsx/slashdm/internal/metrics"
	"github.com/fenggwsx/slashdm/internal/protocol"
)

// TCPServer accepts framed push connections. The first frame of every
// connection must be an auth_request carrying a bearer credential.
type TCPServer struct {
	cfg           config.ServerConfig
	authenticator *Authenticator
	presence      *Presence
	log           zerolog.Logger

	listener  net.Listener
	closeOnce sync.Once
	readyOnce sync.Once
	ready     chan struct{}
}

// NewTCPServer constructs a push listener using the provided dependencies.
func NewTCPServer(cfg config.ServerConfig, authenticator *Authenticator, presence *Presence, log zerolog.Logger) *TCPServer {
	return &TCPServer{
		cfg:           cfg,
		authenticator: authenticator,
		presence:      presence,
		log:           log.With().Str("component", "push").Str("transport", metrics.TransportTCP).Logger(),
		ready:         make(chan struct{}),
	}
}

// Run listens on the configured address until the context is canceled.
func (s *TCPServer) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.PushAddr)
	if err != nil {
		s.markReady(nil)
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until the context is canceled.
func (s *TCPServer) Serve(ctx context.Context, listener net.Listener) error {
	s.markReady(listener)
	s.log.Info().Str("addr", listener.Addr().String()).Msg("push listener started")

	go func() {
		<-ctx.Done()
		s.closeOnce.Do(func() {
			_ = s.listener.Close()
		})
	}()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handleConnection(ctx, conn)
		}()
	}
}

// Addr returns the bound address once Serve has started, or nil when the
// listener could not be opened.
func (s *TCPServer) Addr() net.Addr {
	<-s.ready
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *TCPServer) markReady(listener net.Listener) {
	s.readyOnce.Do(func() {
		s.listener = listener
		close(s.ready)
	})
}

func (s *TCPServer) handleConnection(parentCtx context.Context, conn net.Conn) {
	defer conn.Close()

	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	remote := conn.RemoteAddr().String()
	decoder := protocol.NewDecoder(conn, s.cfg.MaxFrameBytes)
	writer := &tcpWriter{conn: conn, encoder: protocol.NewEncoder(conn), timeout: s.cfg.WriteTimeout}

	if s.cfg.HandshakeTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(s.cfg.HandshakeTimeout)); err != nil {
			s.log.Error().Err(err).Str("remote", remote).Msg("set read deadline")
			return
		}
	}
	env, err := decoder.Decode(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("remote", remote).Msg("handshake read failed")
		return
	}
	if env.Type != protocol.MessageTypeAuthRequest {
		metrics.RecordAuthFailure(metrics.TransportTCP)
		s.sendAck(ctx, writer, env.ID, protocol.AckStatusError, "authentication required")
		return
	}

	principal, err := s.authenticator.Authenticate(Handshake{
		AuthToken:  env.Token,
		QueryToken: metadataString(env.Metadata, protocol.MetadataToken),
	})
	if err != nil {
		metrics.RecordAuthFailure(metrics.TransportTCP)
		s.log.Warn().Err(err).Str("remote", remote).Msg("handshake rejected")
		s.sendAck(ctx, writer, env.ID, protocol.AckStatusError, "authentication failed")
		return
	}
	if err := conn.SetReadDeadline(time.Time{}); err != nil {
		return
	}

	sess := newSession(principal.UserID, writer, s.cfg.SendBuffer)
	s.sendAck(ctx, writer, env.ID, protocol.AckStatusOK, "")
	if err := writer.WriteEnvelope(ctx, newEnvelope(protocol.MessageTypeAuthResponse, protocol.AuthResponse{
		UserID:       principal.UserID,
		ConnectionID: sess.ID(),
	})); err != nil {
		s.log.Warn().Err(err).Str("remote", remote).Msg("auth response send failed")
		return
	}

	s.presence.Register(principal.UserID, sess)
	metrics.RecordConnectionOpened(metrics.TransportTCP)
	log := s.log.With().Uint("user_id", principal.UserID).Str("connection_id", sess.ID()).Logger()
	log.Info().Str("remote", remote).Msg("connection registered")
	defer func() {
		s.presence.Unregister(principal.UserID, sess)
		sess.close()
		metrics.RecordConnectionClosed(metrics.TransportTCP)
		log.Info().Msg("connection unregistered")
	}()

	go func() {
		if err := sess.writeLoop(ctx, s.cfg.PingInterval); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Msg("write loop ended")
		}
		cancel()
	}()

	for {
		env, err := decoder.Decode(ctx)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) && !errors.Is(err, context.Canceled) {
				log.Warn().Err(err).Msg("read failed")
			}
			return
		}
		if env.Type == protocol.MessageTypePing {
			if err := sess.Push(newEnvelope(protocol.MessageTypePong, nil)); err != nil {
				log.Warn().Err(err).Msg("pong dropped")
			}
		}
	}
}

func (s *TCPServer) sendAck(ctx context.Context, writer *tcpWriter, referenceID, status, reason string) {
	ack := newEnvelope(protocol.MessageTypeAck, protocol.AckPayload{
		ReferenceID: referenceID,
		Status:      status,
		Reason:      reason,
	})
	if err := writer.WriteEnvelope(ctx, ack); err != nil {
		s.log.Warn().Err(err).Msg("send ack")
	}
}

type tcpWriter struct {
	conn    net.Conn
	encoder *protocol.Encoder
	timeout time.Duration
}

func (w *tcpWriter) WriteEnvelope(ctx context.Context, env protocol.Envelope) error {
	if w.timeout > 0 {
		if err := w.conn.SetWriteDeadline(time.Now().Add(w.timeout)); err != nil {
			return err
		}
	}
	return w.encoder.Encode(ctx, env)
}

func (w *tcpWriter) WritePing(ctx context.Context) error {
	return w.WriteEnvelope(ctx, newEnvelope(protocol.MessageTypePing, nil))
}

func metadataString(metadata map[string]interface{}, key string) string {
	if metadata == nil {
		return ""
	}
	if value, ok := metadata[key]; ok {
		if s, ok := value.(string); ok {
			return s
		}
	}
	return ""
}
