package utils

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultAccessTokenTTL = 12 * time.Hour
	tokenIssuer           = "geobike-shield-backend"
)

var (
	jwtMu          sync.RWMutex
	jwtSecretKey   []byte
	accessTokenTTL = DefaultAccessTokenTTL
)

// ErrJWTNotConfigured is returned when no signing secret was installed.
var ErrJWTNotConfigured = errors.New("jwt secret not configured")

// Claims defines the JWT claims structure. The JSON names mirror the
// session object the storefront keeps: rol, usuarioId, clienteId.
type Claims struct {
	UserID     int64  `json:"usuarioId"`
	Email      string `json:"email"`
	Role       string `json:"rol"`
	CustomerID *int64 `json:"clienteId,omitempty"`
	StaffID    *int64 `json:"personalId,omitempty"`
	jwt.RegisteredClaims
}

// ConfigureJWT installs the signing secret and access token lifetime.
func ConfigureJWT(secret string, ttl time.Duration) {
	jwtMu.Lock()
	defer jwtMu.Unlock()
	jwtSecretKey = []byte(secret)
	if ttl > 0 {
		accessTokenTTL = ttl
	}
}

func signingKey() ([]byte, time.Duration, error) {
	jwtMu.RLock()
	defer jwtMu.RUnlock()
	if len(jwtSecretKey) == 0 {
		return nil, 0, ErrJWTNotConfigured
	}
	return jwtSecretKey, accessTokenTTL, nil
}

// GenerateAccessToken signs the given identity. The registered claims are filled here.
func GenerateAccessToken(identity Claims) (string, time.Time, error) {
	key, ttl, err := signingKey()
	if err != nil {
		return "", time.Time{}, err
	}
	now := time.Now()
	expiresAt := now.Add(ttl)
	identity.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   Int64ToStr(identity.UserID),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    tokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &identity)
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ValidateToken parses and validates a JWT token string.
// It returns the claims if the token is valid, otherwise an error.
func ValidateToken(tokenString string) (*Claims, error) {
	key, _, err := signingKey()
	if err != nil {
		return nil, err
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
