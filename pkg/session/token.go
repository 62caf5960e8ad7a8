package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/teaghor/storefront-backend/pkg/config"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// Claims is the typed guest-session token handed to storefront clients.
// The session ID keys the cart and any in-flight checkout flow.
type Claims struct {
	SessionID uuid.UUID `json:"sid"`
	jwt.RegisteredClaims
}

// Mint issues a signed guest token for a fresh session ID.
func Mint(cfg config.SessionConfig, now time.Time) (string, uuid.UUID, error) {
	return MintFor(cfg, now, uuid.New())
}

// MintFor issues a signed guest token carrying the provided session ID.
func MintFor(cfg config.SessionConfig, now time.Time, sessionID uuid.UUID) (string, uuid.UUID, error) {
	if cfg.Secret == "" {
		return "", uuid.Nil, fmt.Errorf("session secret is required")
	}
	if cfg.Issuer == "" {
		return "", uuid.Nil, fmt.Errorf("session issuer is required")
	}
	if cfg.TTLMinutes <= 0 {
		return "", uuid.Nil, fmt.Errorf("session ttl minutes must be positive")
	}
	if sessionID == uuid.Nil {
		return "", uuid.Nil, fmt.Errorf("session id is required")
	}

	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL())),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("signing session token: %w", err)
	}
	return signed, sessionID, nil
}

// Parse validates the token string and returns typed claims.
func Parse(cfg config.SessionConfig, tokenString string) (*Claims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		return nil, err
	}
	if claims.SessionID == uuid.Nil {
		return nil, fmt.Errorf("session token missing sid claim")
	}

	return claims, nil
}
