package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	req := require.New(t)

	req.Equal(zerolog.InfoLevel, parseLevel(""))
	req.Equal(zerolog.DebugLevel, parseLevel("DEBUG"))
	req.Equal(zerolog.WarnLevel, parseLevel("warn"))
	req.Equal(zerolog.InfoLevel, parseLevel("chatty"))
}
