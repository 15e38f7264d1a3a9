package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/fenggwsx/slashdm/internal/config"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims represents JWT payload for authenticated users.
type Claims struct {
	UserID uint   `json:"uid,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Principal is the identity bound to a request or a live connection.
type Principal struct {
	UserID uint
	Role   string
}

// NewToken generates a signed HS256 JWT for the provided subject.
func NewToken(cfg config.JWTConfig, userID uint, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(cfg.Expiration)
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    cfg.Issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verifier checks signature, expiry and issuer of bearer tokens.
// HS256 with the shared secret is used unless a JWKS URL is configured.
type Verifier struct {
	cfg  config.JWTConfig
	jwks *keyfunc.JWKS
}

// NewVerifier initializes JWKS fetching when a JWKS URL is configured.
func NewVerifier(ctx context.Context, cfg config.JWTConfig, log zerolog.Logger) (*Verifier, error) {
	if strings.TrimSpace(cfg.JWKSURL) == "" {
		return &Verifier{cfg: cfg}, nil
	}

	options := keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Error().Err(err).Msg("jwks refresh error")
		},
	}
	jwks, err := keyfunc.Get(cfg.JWKSURL, options)
	if err != nil {
		return nil, fmt.Errorf("load jwks: %w", err)
	}
	return &Verifier{cfg: cfg, jwks: jwks}, nil
}

// Close stops the background JWKS refresh, if any.
func (v *Verifier) Close() {
	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}

// Verify validates the token string and returns the principal named by its subject.
func (v *Verifier) Verify(tokenString string) (Principal, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Principal{}, ErrMissingToken
	}

	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if v.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.cfg.Issuer))
	}

	keyFunc := v.secretKey
	if v.jwks != nil {
		keyFunc = v.jwks.Keyfunc
		opts = append(opts, jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}))
	} else {
		opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, keyFunc, opts...)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	userID, err := subjectUserID(claims)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return Principal{UserID: userID, Role: claims.Role}, nil
}

func (v *Verifier) secretKey(*jwt.Token) (interface{}, error) {
	return []byte(v.cfg.Secret), nil
}

func subjectUserID(claims *Claims) (uint, error) {
	if claims.Subject == "" {
		if claims.UserID == 0 {
			return 0, errors.New("token has no subject")
		}
		return claims.UserID, nil
	}
	parsed, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || parsed == 0 {
		return 0, fmt.Errorf("subject %q is not a user id", claims.Subject)
	}
	return uint(parsed), nil
}
