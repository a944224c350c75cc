// Package token encodes and decodes the signed bearer tokens used for
// sessions. Tokens are standard JWTs (header.payload.signature, base64url
// segments) carrying sub, role, exp and a type discriminator, signed with an
// HMAC algorithm. Verification is inseparable from decoding: there is no way
// to obtain trusted claims from this package without the signature and expiry
// checks passing first.
package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Type discriminates the two token kinds. A token is issued with exactly one
// type and is never accepted where the other is required.
type Type string

const (
	TypeAccess  Type = "access"
	TypeRefresh Type = "refresh"
)

// Decode failure classes. Callers branch on these with errors.Is; every one
// of them means "do not trust this token".
var (
	ErrMalformed = errors.New("token is malformed")
	ErrSignature = errors.New("token signature is invalid")
	ErrExpired   = errors.New("token is expired")
)

// Claims is the full claim set carried by every issued token.
type Claims struct {
	Role string `json:"role"`
	Type Type   `json:"type"`
	jwt.RegisteredClaims
}

// Codec signs and verifies tokens with a fixed secret and algorithm, both
// injected from configuration.
type Codec struct {
	secret []byte
	method *jwt.SigningMethodHMAC
}

// NewCodec builds a Codec for the given HMAC algorithm (HS256, HS384, HS512).
func NewCodec(secret, algorithm string) (*Codec, error) {
	var method *jwt.SigningMethodHMAC
	switch algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("token: unsupported algorithm %q", algorithm)
	}
	return &Codec{secret: []byte(secret), method: method}, nil
}

// Sign issues a token of the given type for subject (the user id in string
// form) and role, expiring after ttl.
func (c *Codec) Sign(subject, role string, typ Type, ttl time.Duration) (string, error) {
	claims := Claims{
		Role: role,
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Verify checks signature then expiry and returns the claims. The returned
// error wraps exactly one of ErrMalformed, ErrSignature or ErrExpired.
// HMAC comparison inside jwt/v5 is constant-time.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != c.method.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}
	if !parsed.Valid {
		return nil, ErrSignature
	}
	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}

// PeekUnverified decodes the payload segment WITHOUT verifying the signature.
// The result is attacker-controlled: it exists only to enrich log lines after
// Verify has already failed, and must never feed an authorization decision.
func PeekUnverified(tokenString string) (map[string]any, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, ErrMalformed
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var claims map[string]any
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return claims, nil
}
