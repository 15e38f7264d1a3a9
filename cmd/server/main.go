package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fenggwsx/slashdm/internal/auth"
	"github.com/fenggwsx/slashdm/internal/config"
	"github.com/fenggwsx/slashdm/internal/logger"
	"github.com/fenggwsx/slashdm/internal/storage/gormstore"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slashdm-server",
	Short: "SlashDM direct messaging server",
	Long: `slashdm-server serves the chat HTTP API, the WebSocket push endpoint and
the framed TCP push listener.

Examples:
  slashdm-server serve                  # Migrate and start all listeners
  slashdm-server migrate                # Apply the schema and exit
  slashdm-server token --user 1         # Mint a development token`,
	Version: version,
	RunE:    runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and push listeners",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE:  runMigrate,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token signed with the configured secret",
	RunE:  runToken,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().Uint("user", 0, "User id to place in the subject claim")
	tokenCmd.Flags().String("role", "user", "Role claim")
	_ = tokenCmd.MarkFlagRequired("user")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := CreateApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}
	defer cleanup()

	log.Info().
		Str("http_addr", cfg.HTTPAddr).
		Str("push_addr", cfg.PushAddr).
		Str("db_driver", cfg.Database.Driver).
		Msg("starting application")

	if err := app.Start(ctx); err != nil {
		log.Error().Err(err).Msg("application stopped with error")
		return err
	}

	log.Info().Msg("application exited cleanly")
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	store, err := gormstore.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info().Str("db_driver", cfg.Database.Driver).Msg("migrations applied")
	return nil
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required to mint tokens")
	}

	userID, err := cmd.Flags().GetUint("user")
	if err != nil {
		return err
	}
	if userID == 0 {
		return fmt.Errorf("--user must be positive")
	}
	role, err := cmd.Flags().GetString("role")
	if err != nil {
		return err
	}

	token, expiresAt, err := auth.NewToken(cfg.JWT, userID, role)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", expiresAt.UTC().Format("2006-01-02T15:04:05Z"))
	return nil
}
