package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/subspace-wallet/internal/model"
)

const (
	issuer     = "walletd"
	typeAccess = "access"
)

// Claims are the access token claims. Subject holds the profile id.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"typ"`
}

// JWT implements model.TokenManager with HMAC-SHA256 signed tokens.
type JWT struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

var _ model.TokenManager = (*JWT)(nil)

// NewJWT creates a token manager issuing tokens valid for ttl.
func NewJWT(secretKey string, ttl time.Duration) *JWT {
	return &JWT{secretKey: []byte(secretKey), ttl: ttl, now: time.Now}
}

// GenerateAccessToken issues a token for profileID and returns its expiry in unix milliseconds.
func (j *JWT) GenerateAccessToken(profileID string) (string, int64, error) {
	now := j.now()
	expiresAt := now.Add(j.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   profileID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		TokenType: typeAccess,
	})

	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, expiresAt.UnixMilli(), nil
}

// ParseAccessToken validates token and returns the profile id it was issued for.
func (j *JWT) ParseAccessToken(tokenString string) (string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(j.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return "", model.ErrTokenExpired
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrTokenInvalid, err)
	}
	if claims.TokenType != typeAccess || claims.Subject == "" {
		return "", model.ErrTokenInvalid
	}
	return claims.Subject, nil
}
