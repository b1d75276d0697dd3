package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrMalformedToken = errors.New("malformed token")
)

// Claims are the identity facts carried by a session token.
type Claims struct {
	UserID    int64
	Username  string
	TokenID   string
	IssuedAt  time.Time
	NotBefore time.Time
	ExpiresAt time.Time
}

type tokenClaims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// Option configures a JWTManager.
type Option func(*JWTManager)

// WithClock overrides the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) Option {
	return func(m *JWTManager) {
		if now != nil {
			m.now = now
		}
	}
}

// JWTManager issues and verifies HS256 session tokens. The signing key is
// copied at construction and never changes afterwards; rotating it means
// building a new manager, which invalidates every outstanding token.
type JWTManager struct {
	secretKey     []byte
	tokenDuration time.Duration
	issuer        string
	now           func() time.Time
}

func NewJWTManager(secretKey string, tokenDuration time.Duration, issuer string, opts ...Option) *JWTManager {
	m := &JWTManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		issuer:        issuer,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GenerateToken signs a token for the given user, valid from now until now+duration.
func (m *JWTManager) GenerateToken(userID int64, username string) (string, error) {
	now := m.now()
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the signature and time bounds of a token and returns its claims.
//
// A token whose header or payload cannot be decoded yields ErrMalformedToken,
// an elapsed expiry yields ErrExpiredToken, and every other failure yields ErrInvalidToken.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(tokenString)

	var unverified tokenClaims
	if _, _, err := jwt.NewParser(jwt.WithStrictDecoding()).ParseUnverified(tokenString, &unverified); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	// Strict decoding rejects non-zero trailing bits in the signature segment,
	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &parsed, func(token *jwt.Token) (any, error) {
		return m.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(m.issuer),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if parsed.UserID <= 0 || strings.TrimSpace(parsed.Subject) == "" {
		return nil, fmt.Errorf("%w: missing identity claims", ErrInvalidToken)
	}

	claims := &Claims{
		UserID:    parsed.UserID,
		Username:  parsed.Subject,
		TokenID:   parsed.ID,
		ExpiresAt: parsed.ExpiresAt.Time.UTC(),
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	if parsed.NotBefore != nil {
		claims.NotBefore = parsed.NotBefore.Time.UTC()
	}
	return claims, nil
}

// GetTokenDuration reports how long an issued token stays valid.
func (m *JWTManager) GetTokenDuration() time.Duration {
	return m.tokenDuration
}
