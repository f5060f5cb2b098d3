// Package apikeys mints and verifies API key secrets.
//
// A secret is "nxk_<tag>_<jwt>": the tag is the first eight hex digits of
// the key id and the JWT is HS256-signed with jti set to the key id and
// sub set to the owning storage namespace. Only the record describing the
// key is persisted; the secret itself is shown to the user once.
package apikeys

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SecretPrefix starts every secret.
const SecretPrefix = "nxk_"

const tagLen = 8

var (
	ErrMissingKey = errors.New("missing api key")
	ErrInvalidKey = errors.New("invalid api key")
)

// Claims identify the key and the namespace that owns it.
type Claims struct {
	jwt.RegisteredClaims
}

// KeyID returns the jti claim.
func (c *Claims) KeyID() string { return c.ID }

// Namespace returns the sub claim.
func (c *Claims) Namespace() string { return c.Subject }

// Signer mints and parses secrets with a shared HMAC key.
type Signer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewSigner returns a signer for secret, which must not be empty.
func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("signing secret required")
	}
	return &Signer{secret: []byte(secret), issuer: "nexusdocs", now: time.Now}, nil
}

// Mint returns a new secret for keyID owned by namespace.
func (s *Signer) Mint(namespace, keyID string) (string, error) {
	tag := Tag(keyID)
	if len(tag) < tagLen {
		return "", fmt.Errorf("key id %q too short", keyID)
	}
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   s.issuer,
			Subject:  namespace,
			ID:       keyID,
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing api key: %w", err)
	}
	return SecretPrefix + tag + "_" + token, nil
}

// Parse verifies secret and returns its claims. A leading "Bearer " is
// ignored.
func (s *Signer) Parse(secret string) (*Claims, error) {
	secret = strings.TrimSpace(strings.TrimPrefix(secret, "Bearer "))
	if secret == "" {
		return nil, ErrMissingKey
	}
	rest, ok := strings.CutPrefix(secret, SecretPrefix)
	if !ok {
		return nil, ErrInvalidKey
	}
	tag, token, ok := strings.Cut(rest, "_")
	if !ok {
		return nil, ErrInvalidKey
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ID == "" || claims.Subject == "" {
		return nil, ErrInvalidKey
	}
	if Tag(claims.ID) != tag {
		return nil, fmt.Errorf("%w: tag mismatch", ErrInvalidKey)
	}
	return claims, nil
}

// Tag returns the short form of keyID embedded in secrets.
func Tag(keyID string) string {
	tag := strings.ReplaceAll(keyID, "-", "")
	if len(tag) > tagLen {
		tag = tag[:tagLen]
	}
	return tag
}

// Prefix returns the displayable part of a secret: its first 12
// characters and an ellipsis.
func Prefix(secret string) string {
	const n = 12
	if len(secret) <= n {
		return secret + "..."
	}
	return secret[:n] + "..."
}
