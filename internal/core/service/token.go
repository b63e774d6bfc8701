package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskhub/task-system/internal/core/domain"
)

// TokenClaims is the verified identity carried by a session token. Role must
// be re-derived from the token on every request; callers must not cache it
// across requests.
type TokenClaims struct {
	UserID string
	Role   string
}

// TokenIssuer issues and verifies HS256-signed session tokens. The signing
// secret is process-wide configuration; rotating it invalidates every
// outstanding token.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given identity, valid for the configured TTL
// from the moment of issuance.
func (i *TokenIssuer) Issue(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(i.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify parses and validates a token, returning the embedded identity.
// Failure modes map to distinct sentinels: ErrTokenExpired past expiry,
// ErrTokenMalformed for structurally invalid input or an unknown role claim,
// ErrTokenInvalid for a bad signature or wrong signing algorithm.
func (i *TokenIssuer) Verify(tokenString string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrTokenMalformed
		default:
			return nil, domain.ErrTokenInvalid
		}
	}
	if !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || !domain.ValidRole(role) {
		return nil, domain.ErrTokenMalformed
	}
	return &TokenClaims{UserID: sub, Role: role}, nil
}
