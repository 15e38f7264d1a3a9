package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validServerConfig() ServerConfig {
	return ServerConfig{
		SendBuffer:       8,
		MaxFrameBytes:    1024,
		MaxMessageLength: 100,
		Database:         DatabaseConfig{Driver: DriverSQLite, DSN: "test.db"},
		JWT:              JWTConfig{Secret: "secret"},
	}
}

func TestLoadServerConfig(t *testing.T) {
	t.Run("should apply defaults under the prefix", func(t *testing.T) {
		req := require.New(t)
		t.Setenv("SLASHDM_JWT_SECRET", "secret")
		t.Setenv("SLASHDM_PUSH_ADDR", ":9100")

		cfg, err := LoadServerConfig()

		req.NoError(err)
		req.Equal(":8080", cfg.HTTPAddr)
		req.Equal(":9100", cfg.PushAddr)
		req.Equal(DriverSQLite, cfg.Database.Driver)
		req.Equal(24*time.Hour, cfg.JWT.Expiration)
		req.Equal(2000, cfg.MaxMessageLength)
	})

	t.Run("should fail without a signing secret or key set", func(t *testing.T) {
		req := require.New(t)
		t.Setenv("SLASHDM_JWT_SECRET", "")
		t.Setenv("SLASHDM_JWT_JWKS_URL", "")

		_, err := LoadServerConfig()

		req.ErrorContains(err, "JWT_SECRET or JWT_JWKS_URL is required")
	})
}

func TestServerConfig_Validate(t *testing.T) {
	t.Run("should accept a complete config", func(t *testing.T) {
		require.NoError(t, validServerConfig().Validate())
	})

	t.Run("should report every problem at once", func(t *testing.T) {
		req := require.New(t)
		cfg := validServerConfig()
		cfg.Database.Driver = "mysql"
		cfg.SendBuffer = 0
		cfg.MaxMessageLength = -1

		err := cfg.Validate()

		req.ErrorContains(err, `unsupported database driver "mysql"`)
		req.ErrorContains(err, "SEND_BUFFER must be positive")
		req.ErrorContains(err, "MAX_MESSAGE_LENGTH must be positive")
	})

	t.Run("should accept a key set url in place of a secret", func(t *testing.T) {
		cfg := validServerConfig()
		cfg.JWT = JWTConfig{JWKSURL: "https://issuer.example/jwks.json"}

		require.NoError(t, cfg.Validate())
	})
}

func TestClientConfig(t *testing.T) {
	t.Run("should read the token and defaults", func(t *testing.T) {
		req := require.New(t)
		t.Setenv("SLASHDM_TOKEN", "abc")

		cfg, err := LoadClientConfig()

		req.NoError(err)
		req.Equal("abc", cfg.Token)
		req.Equal("http://localhost:8080", cfg.APIURL)
		req.Equal(10*time.Second, cfg.RequestTimeout)
	})

	t.Run("should fall back to a slash prefix", func(t *testing.T) {
		req := require.New(t)

		req.Equal('/', ClientConfig{}.CommandPrefix())
		req.Equal('!', ClientConfig{Prefix: "!x"}.CommandPrefix())
	})
}
