package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/fenggwsx/slashdm/internal/apperr"
	"github.com/fenggwsx/slashdm/internal/auth"
	"github.com/fenggwsx/slashdm/internal/config"
	"github.com/fenggwsx/slashdm/internal/metrics"
	"github.com/fenggwsx/slashdm/internal/protocol"
)

// WebSocketHandler upgrades authenticated HTTP requests into push connections.
// Credentials come from the Authorization header or the token query parameter
// and are checked before the upgrade. Upgraded connections are hijacked from
// net/http, so they live until the client leaves or Shutdown is called.
type WebSocketHandler struct {
	cfg           config.ServerConfig
	authenticator *Authenticator
	presence      *Presence
	log           zerolog.Logger
	upgrader      websocket.Upgrader

	baseCtx  context.Context
	shutdown context.CancelFunc
}

// NewWebSocketHandler constructs the upgrade handler.
func NewWebSocketHandler(cfg config.ServerConfig, authenticator *Authenticator, presence *Presence, log zerolog.Logger) *WebSocketHandler {
	baseCtx, shutdown := context.WithCancel(context.Background())
	return &WebSocketHandler{
		cfg:           cfg,
		authenticator: authenticator,
		presence:      presence,
		log:           log.With().Str("component", "push").Str("transport", metrics.TransportWebSocket).Logger(),
		upgrader: websocket.Upgrader{
			HandshakeTimeout: cfg.HandshakeTimeout,
			ReadBufferSize:   4096,
			WriteBufferSize:  4096,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		baseCtx:  baseCtx,
		shutdown: shutdown,
	}
}

// Shutdown closes every upgraded connection and refuses later upgrades.
func (h *WebSocketHandler) Shutdown() {
	h.shutdown()
}

// Handle serves GET /v1/ws.
func (h *WebSocketHandler) Handle(c *gin.Context) {
	principal, err := h.authenticator.Authenticate(Handshake{
		AuthToken:  auth.BearerToken(c.GetHeader("Authorization")),
		QueryToken: c.Query(protocol.MetadataToken),
	})
	if err != nil {
		metrics.RecordAuthFailure(metrics.TransportWebSocket)
		message := "authentication failed"
		if appErr, ok := apperr.As(err); ok {
			message = appErr.Message
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": gin.H{
				"message": message,
				"type":    string(apperr.KindAuth),
			},
		})
		return
	}

	if h.baseCtx.Err() != nil {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("upgrade failed")
		return
	}
	h.serve(h.baseCtx, ws, principal)
}

func (h *WebSocketHandler) serve(parentCtx context.Context, ws *websocket.Conn, principal auth.Principal) {
	defer ws.Close()

	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()
	go func() {
		<-ctx.Done()
		_ = ws.Close()
	}()

	writer := &wsWriter{conn: ws, timeout: h.cfg.WriteTimeout}
	sess := newSession(principal.UserID, writer, h.cfg.SendBuffer)
	if err := writer.WriteEnvelope(ctx, newEnvelope(protocol.MessageTypeAuthResponse, protocol.AuthResponse{
		UserID:       principal.UserID,
		ConnectionID: sess.ID(),
	})); err != nil {
		h.log.Warn().Err(err).Msg("auth response send failed")
		return
	}

	h.presence.Register(principal.UserID, sess)
	metrics.RecordConnectionOpened(metrics.TransportWebSocket)
	log := h.log.With().Uint("user_id", principal.UserID).Str("connection_id", sess.ID()).Logger()
	log.Info().Msg("connection registered")
	defer func() {
		h.presence.Unregister(principal.UserID, sess)
		sess.close()
		metrics.RecordConnectionClosed(metrics.TransportWebSocket)
		log.Info().Msg("connection unregistered")
	}()

	go func() {
		if err := sess.writeLoop(ctx, h.cfg.PingInterval); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Msg("write loop ended")
		}
		cancel()
	}()

	if h.cfg.MaxFrameBytes > 0 {
		ws.SetReadLimit(int64(h.cfg.MaxFrameBytes))
	}
	for {
		msgType, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && ctx.Err() == nil {
				log.Warn().Err(err).Msg("read failed")
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		var env protocol.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			continue
		}
		if env.Type == protocol.MessageTypePing {
			if err := sess.Push(newEnvelope(protocol.MessageTypePong, nil)); err != nil {
				log.Warn().Err(err).Msg("pong dropped")
			}
		}
	}
}

// wsWriter serializes writes; gorilla connections allow one concurrent writer.
type wsWriter struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	timeout time.Duration
}

func (w *wsWriter) WriteEnvelope(_ context.Context, env protocol.Envelope) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timeout > 0 {
		if err := w.conn.SetWriteDeadline(time.Now().Add(w.timeout)); err != nil {
			return err
		}
	}
	return w.conn.WriteJSON(env)
}

func (w *wsWriter) WritePing(context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	deadline := time.Time{}
	if w.timeout > 0 {
		deadline = time.Now().Add(w.timeout)
	}
	return w.conn.WriteControl(websocket.PingMessage, nil, deadline)
}
