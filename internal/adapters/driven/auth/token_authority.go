package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fieldworks/auth-core/internal/core/domain"
	"github.com/fieldworks/auth-core/internal/core/ports/driven"
)

// Ensure TokenAuthority implements the port
var _ driven.TokenAuthority = (*TokenAuthority)(nil)

// accessClaims wraps domain.AccessClaims for JWT compatibility
type accessClaims struct {
	AccountID string      `json:"account_id"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// refreshClaims wraps domain.RefreshClaims for JWT compatibility
type refreshClaims struct {
	AccountID string `json:"account_id"`
	jwt.RegisteredClaims
}

// Config holds the signing material and TTLs. Secrets are distinct so
// a leaked access secret cannot mint refresh tokens and vice versa.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// DefaultConfig returns the conventional TTLs: minutes for access
// tokens, days for refresh tokens.
func DefaultConfig(accessSecret, refreshSecret string) Config {
	return Config{
		AccessSecret:  accessSecret,
		RefreshSecret: refreshSecret,
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
}

// TokenAuthority signs and verifies HS256 tokens. Configuration is
// passed in once at construction; nothing is read from the environment
// during signing or verification.
type TokenAuthority struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenAuthority creates a new TokenAuthority
func NewTokenAuthority(cfg Config) *TokenAuthority {
	return &TokenAuthority{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
	}
}

// IssueAccess signs access claims with the access secret and TTL
func (a *TokenAuthority) IssueAccess(claims domain.AccessClaims) (string, error) {
	now := time.Now()
	jc := accessClaims{
		AccountID: claims.AccountID,
		Role:      claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.AccountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jc)
	return token.SignedString(a.accessSecret)
}

// IssueRefresh signs refresh claims with the refresh secret and TTL
func (a *TokenAuthority) IssueRefresh(claims domain.RefreshClaims) (string, error) {
	now := time.Now()
	jc := refreshClaims{
		AccountID: claims.AccountID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.AccountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.refreshTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jc)
	return token.SignedString(a.refreshSecret)
}

// VerifyAccess validates an access token and extracts its claims
func (a *TokenAuthority) VerifyAccess(tokenString string) (*domain.AccessClaims, error) {
	var claims accessClaims
	if err := a.parse(tokenString, &claims, a.accessSecret); err != nil {
		return nil, err
	}
	return &domain.AccessClaims{
		AccountID: claims.AccountID,
		Role:      claims.Role,
	}, nil
}

// VerifyRefresh validates a refresh token and extracts its claims
func (a *TokenAuthority) VerifyRefresh(tokenString string) (*domain.RefreshClaims, error) {
	var claims refreshClaims
	if err := a.parse(tokenString, &claims, a.refreshSecret); err != nil {
		return nil, err
	}
	return &domain.RefreshClaims{AccountID: claims.AccountID}, nil
}

// parse validates signature and expiry. Expiry is the only failure
// surfaced distinctly; everything else collapses into invalid.
func (a *TokenAuthority) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.ErrTokenExpired
		}
		return domain.ErrTokenInvalid
	}
	if !token.Valid {
		return domain.ErrTokenInvalid
	}
	return nil
}
