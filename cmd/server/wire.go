//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/fenggwsx/slashdm/internal/config"
)

// CreateApplication creates the application with all dependencies wired.
func CreateApplication(
	ctx context.Context,
	cfg config.ServerConfig,
	log zerolog.Logger,
) (*Application, func(), error) {
	wire.Build(ProviderSet)
	return nil, nil, nil
}
