package utils

import (
	"errors"                          // Error wrapping
	"expense_tracker/internal/domain" // Domain errors
	"fmt"                             // Error formatting
	"time"                            // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// TokenTTL is the fixed lifetime of an issued token
const TokenTTL = 24 * time.Hour

// JWT Claims
type Claims struct {
	UserID               string `json:"id"` // Custom claim for user ID
	jwt.RegisteredClaims        // Standard JWT claims
}

// GenerateJWT creates a JWT token for a given user ID
func GenerateJWT(userID, secret string) (string, error) {
	return generateJWT(userID, secret, time.Now())
}

func generateJWT(userID, secret string, issuedAt time.Time) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)), // Token expires in 24 hours
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a JWT token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	if claims.UserID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// TokenService issues and verifies stateless bearer tokens signed with a
// server-held secret. There is no revocation: a token stays valid until it
// expires.
type TokenService struct {
	secret string
}

// NewTokenService returns a TokenService signing with secret
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: secret}
}

// Issue mints a new token for userID
func (s *TokenService) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("issue token: empty user id")
	}
	return GenerateJWT(userID, s.secret)
}

// Verify returns the user id carried by token. Any failure (bad signature,
// malformed payload, elapsed expiry) is reported as domain.ErrForbidden.
func (s *TokenService) Verify(token string) (string, error) {
	claims, err := ParseJWT(token, s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrForbidden, err)
	}
	return claims.UserID, nil
}
