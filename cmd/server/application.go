package main

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/fenggwsx/slashdm/internal/config"
	"github.com/fenggwsx/slashdm/internal/httpapi"
	"github.com/fenggwsx/slashdm/internal/realtime"
)

// Application holds the long-running server components.
type Application struct {
	pushAddr   string
	httpServer *httpapi.Server
	pushServer *realtime.TCPServer
	presence   *realtime.Presence
	log        zerolog.Logger
}

// NewApplication creates a new application instance.
func NewApplication(cfg config.ServerConfig, httpServer *httpapi.Server, pushServer *realtime.TCPServer, presence *realtime.Presence, log zerolog.Logger) *Application {
	return &Application{
		pushAddr:   cfg.PushAddr,
		httpServer: httpServer,
		pushServer: pushServer,
		presence:   presence,
		log:        log,
	}
}

// Start runs the HTTP API and the push listener until ctx ends or either fails.
func (a *Application) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.httpServer.Run(ctx)
	})
	if a.pushAddr != "" {
		g.Go(func() error {
			return a.pushServer.Run(ctx)
		})
	} else {
		a.log.Info().Msg("push listener disabled")
	}

	err := g.Wait()
	a.log.Info().Int("online_users", a.presence.OnlineUsers()).Msg("servers stopped")
	return err
}
