// Package httpapi exposes the chat operations and the WebSocket push endpoint over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/fenggwsx/slashdm/internal/auth"
	"github.com/fenggwsx/slashdm/internal/chat"
	"github.com/fenggwsx/slashdm/internal/config"
	"github.com/fenggwsx/slashdm/internal/realtime"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the HTTP server for the chat API.
type Server struct {
	cfg    config.ServerConfig
	engine *gin.Engine
	ws     *realtime.WebSocketHandler
	log    zerolog.Logger
}

// New builds the gin engine with every route mounted.
func New(
	cfg config.ServerConfig,
	log zerolog.Logger,
	verifier *auth.Verifier,
	svc *chat.Service,
	ws *realtime.WebSocketHandler,
	db Pinger,
) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	log = log.With().Str("component", "http").Logger()

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(log))

	registerCoreRoutes(engine, cfg, db)

	v1 := engine.Group("/v1")
	v1.GET("/ws", ws.Handle)
	registerChatRoutes(v1.Group("", auth.Middleware(verifier)), svc, log)

	return &Server{cfg: cfg, engine: engine, ws: ws, log: log}
}

// Handler exposes the engine for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Shutdown does not wait for hijacked connections.
	server.RegisterOnShutdown(s.ws.Shutdown)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.HTTPAddr).Msg("HTTP server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("context cancelled, shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func registerCoreRoutes(engine *gin.Engine, cfg config.ServerConfig, db Pinger) {
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": cfg.ServiceName,
			"status":  "ok",
		})
	})

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	engine.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		if status >= 400 {
			event = log.Warn()
		}
		if status >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request completed")
	}
}
