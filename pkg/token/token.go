package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

// Manager issues and validates bearer tokens. The secret, signing algorithm
// and lifetime are injected once at startup rather than read from ambient env.
type Manager struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewManager builds a token manager. Unknown algorithm names fall back to HS256.
func NewManager(secret, algorithm string, ttl time.Duration) *Manager {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		method = jwt.SigningMethodHS256
	}
	return &Manager{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
	}
}

// Issue creates a signed token with the user id as subject.
func (m *Manager) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}

	t := jwt.NewWithClaims(m.method, claims)
	return t.SignedString(m.secret)
}

// Validate parses the token and returns the subject user id.
func (m *Manager) Validate(tokenString string) (uint, error) {
	if tokenString == "" {
		return 0, ErrMissingToken
	}

	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// Reject anything but HMAC to block algorithm confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !t.Valid {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(userID), nil
}
