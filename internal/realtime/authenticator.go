package realtime

import (
	"errors"

	"github.com/fenggwsx/slashdm/internal/apperr"
	"github.com/fenggwsx/slashdm/internal/auth"
)

// Handshake carries the credential candidates presented when a connection opens.
type Handshake struct {
	// AuthToken is the dedicated auth field of the handshake.
	AuthToken string
	// QueryToken is the token query parameter or its framed equivalent.
	QueryToken string
}

// TokenVerifier validates a bearer credential.
type TokenVerifier interface {
	Verify(token string) (auth.Principal, error)
}

// Authenticator binds a connection to the user named by its credential.
type Authenticator struct {
	verifier TokenVerifier
}

// NewAuthenticator wires the verifier used for every handshake.
func NewAuthenticator(verifier TokenVerifier) *Authenticator {
	return &Authenticator{verifier: verifier}
}

// Authenticate picks the first non-empty candidate and verifies it. Every
// failure is terminal for the connection attempt.
func (a *Authenticator) Authenticate(h Handshake) (auth.Principal, error) {
	token := auth.FirstCredential(h.AuthToken, h.QueryToken)
	if token == "" {
		return auth.Principal{}, apperr.Auth("missing credential", auth.ErrMissingToken)
	}

	principal, err := a.verifier.Verify(token)
	if err != nil {
		if errors.Is(err, auth.ErrMissingToken) {
			return auth.Principal{}, apperr.Auth("missing credential", err)
		}
		return auth.Principal{}, apperr.Auth("invalid credential", err)
	}
	if principal.UserID == 0 {
		return auth.Principal{}, apperr.Auth("invalid credential", auth.ErrInvalidToken)
	}
	return principal, nil
}
