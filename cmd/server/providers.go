package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/fenggwsx/slashdm/internal/auth"
	"github.com/fenggwsx/slashdm/internal/chat"
	"github.com/fenggwsx/slashdm/internal/config"
	"github.com/fenggwsx/slashdm/internal/httpapi"
	"github.com/fenggwsx/slashdm/internal/realtime"
	"github.com/fenggwsx/slashdm/internal/storage/gormstore"
)

// ProviderSet is the wire provider set for the server.
var ProviderSet = wire.NewSet(
	// Infrastructure
	ProvideStore,
	ProvideVerifier,

	// Realtime
	realtime.NewPresence,
	ProvideAuthenticator,
	ProvideBroadcaster,
	realtime.NewWebSocketHandler,
	realtime.NewTCPServer,

	// Domain
	ProvideChatService,

	// Interfaces
	ProvideHTTPServer,

	// Application
	NewApplication,
)

// ProvideStore opens the database and migrates the schema.
func ProvideStore(ctx context.Context, cfg config.ServerConfig, log zerolog.Logger) (*gormstore.Store, func(), error) {
	store, err := gormstore.Open(cfg.Database, log)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}
	return store, cleanup, nil
}

// ProvideVerifier provides the bearer token verifier.
func ProvideVerifier(ctx context.Context, cfg config.ServerConfig, log zerolog.Logger) (*auth.Verifier, func(), error) {
	verifier, err := auth.NewVerifier(ctx, cfg.JWT, log)
	if err != nil {
		return nil, nil, err
	}
	return verifier, verifier.Close, nil
}

// ProvideAuthenticator provides the connection authenticator.
func ProvideAuthenticator(verifier *auth.Verifier) *realtime.Authenticator {
	return realtime.NewAuthenticator(verifier)
}

// ProvideBroadcaster provides the chat update broadcaster.
func ProvideBroadcaster(store *gormstore.Store, presence *realtime.Presence, log zerolog.Logger) *realtime.Broadcaster {
	return realtime.NewBroadcaster(store, presence, log)
}

// ProvideChatService provides the chat service.
func ProvideChatService(store *gormstore.Store, broadcaster *realtime.Broadcaster, cfg config.ServerConfig, log zerolog.Logger) *chat.Service {
	return chat.NewService(store, store, broadcaster, cfg.MaxMessageLength, log)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(
	cfg config.ServerConfig,
	log zerolog.Logger,
	verifier *auth.Verifier,
	svc *chat.Service,
	ws *realtime.WebSocketHandler,
	store *gormstore.Store,
) *httpapi.Server {
	return httpapi.New(cfg, log, verifier, svc, ws, store)
}
