package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ScopeClaims are the claims of a scope token. A scope plays the role of a
// browser origin: it owns one recipe collection and one shopping list.
type ScopeClaims struct {
	jwt.RegisteredClaims
	ScopeID string `json:"scope_id"`
}

// ScopeService issues and validates scope tokens.
type ScopeService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewScopeService(secret string, ttl time.Duration) *ScopeService {
	return &ScopeService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a token for a new scope.
func (s *ScopeService) Issue() (token, scopeID string, expiresAt time.Time, err error) {
	scopeID = newScopeID()
	token, expiresAt, err = s.IssueFor(scopeID)
	return token, scopeID, expiresAt, err
}

// IssueFor creates a fresh token for an existing scope.
func (s *ScopeService) IssueFor(scopeID string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := ScopeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   scopeID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		ScopeID: scopeID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign scope token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken parses a token and returns its claims.
func (s *ScopeService) ValidateToken(tokenString string) (*ScopeClaims, error) {
	claims := &ScopeClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScopeToken, err)
	}
	if !token.Valid || claims.ScopeID == "" {
		return nil, ErrInvalidScopeToken
	}
	return claims, nil
}
