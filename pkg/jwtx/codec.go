package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalid covers every non-expiry verification failure: malformed
	// token, bad signature, wrong kind, issuer or audience mismatch. The
	// coarse granularity is deliberate so callers can't leak which
	// sub-check failed.
	ErrInvalid = errors.New("jwtx: invalid token")

	// ErrExpired reports a structurally valid token whose expiry is in the
	// past. Kept distinct from ErrInvalid for diagnostics only.
	ErrExpired = errors.New("jwtx: token expired")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrAudience    = errors.New("jwtx: audience mismatch")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// MinSecretLength is the minimum accepted HS256 secret length in bytes.
const MinSecretLength = 32

// Config carries everything a Codec needs to mint and verify tokens.
type Config struct {
	// AccessSecret and RefreshSecret are the HS256 signing secrets. They
	// must differ and each be at least MinSecretLength bytes.
	AccessSecret  string
	RefreshSecret string

	Issuer   string
	Audience []string

	// AccessTTL and RefreshTTL default to DefaultAccessTokenTTL and
	// DefaultRefreshTokenTTL when zero.
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now is injectable for tests. Defaults to time.Now.
	Now func() time.Time
}

// Codec signs and verifies HS256 session tokens. Access and refresh tokens
// use distinct secrets, so verification of one kind against the other's
// secret always fails.
type Codec struct {
	secrets    map[Kind][]byte
	issuer     string
	audience   []string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewCodec validates cfg and builds a Codec.
func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.AccessSecret) < MinSecretLength {
		return nil, fmt.Errorf("jwtx: access secret must be at least %d bytes", MinSecretLength)
	}
	if len(cfg.RefreshSecret) < MinSecretLength {
		return nil, fmt.Errorf("jwtx: refresh secret must be at least %d bytes", MinSecretLength)
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("jwtx: access and refresh secrets must differ")
	}

	c := &Codec{
		secrets: map[Kind][]byte{
			KindAccess:  []byte(cfg.AccessSecret),
			KindRefresh: []byte(cfg.RefreshSecret),
		},
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        cfg.Now,
	}
	if c.accessTTL <= 0 {
		c.accessTTL = DefaultAccessTokenTTL
	}
	if c.refreshTTL <= 0 {
		c.refreshTTL = DefaultRefreshTokenTTL
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c, nil
}

// TTL returns the configured lifetime for the given kind.
func (c *Codec) TTL(kind Kind) time.Duration {
	if kind == KindRefresh {
		return c.refreshTTL
	}
	return c.accessTTL
}

// Issue mints a signed token of the given kind for the user.
func (c *Codec) Issue(kind Kind, userID, email string) (string, error) {
	secret, ok := c.secrets[kind]
	if !ok {
		return "", fmt.Errorf("jwtx: unknown token kind %q", kind)
	}

	claims := NewClaims(kind, userID, email, c.TTL(kind), c.issuer, c.audience, c.now())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify parses a token against the secret for the expected kind and
// validates signature, kind, issuer, audience and temporal claims. It fails
// closed: every failure other than expiry maps to ErrInvalid.
func (c *Codec) Verify(raw string, kind Kind) (Claims, error) {
	secret, ok := c.secrets[kind]
	if !ok {
		return Claims{}, ErrInvalid
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalid
			}
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalid
	}

	if claims.TokenKind != string(kind) {
		return Claims{}, ErrInvalid
	}
	if err := claims.ValidateIssuer(c.issuer); err != nil {
		return Claims{}, ErrInvalid
	}
	if err := claims.ValidateAudience(c.audience); err != nil {
		return Claims{}, ErrInvalid
	}
	if err := claims.ValidateExpiry(c.now()); err != nil {
		if errors.Is(err, ErrExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalid
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalid
	}

	return claims, nil
}
