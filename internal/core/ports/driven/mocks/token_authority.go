package mocks

import (
	"encoding/base64"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/fieldworks/auth-core/internal/core/domain"
	"github.com/fieldworks/auth-core/internal/core/ports/driven"
)

// Ensure MockTokenAuthority implements TokenAuthority
var _ driven.TokenAuthority = (*MockTokenAuthority)(nil)

// MockTokenAuthority issues base64-encoded JSON tokens. NOT secure -
// only for testing. A per-issue nonce guarantees that two tokens for
// the same claims differ, so rotation is observable.
type MockTokenAuthority struct {
	// AccessTTL and RefreshTTL default to one hour when zero.
	// Set negative to mint already-expired tokens.
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	nonce atomic.Int64
}

// NewMockTokenAuthority creates a new MockTokenAuthority
func NewMockTokenAuthority() *MockTokenAuthority {
	return &MockTokenAuthority{}
}

type mockToken struct {
	Use       string `json:"use"` // "access" or "refresh"
	AccountID string `json:"account_id"`
	Role      string `json:"role,omitempty"`
	ExpiresAt int64  `json:"exp"`
	Nonce     int64  `json:"nonce"`
}

func (m *MockTokenAuthority) IssueAccess(claims domain.AccessClaims) (string, error) {
	ttl := m.AccessTTL
	if ttl == 0 {
		ttl = time.Hour
	}
	return m.encode(mockToken{
		Use:       "access",
		AccountID: claims.AccountID,
		Role:      string(claims.Role),
		ExpiresAt: time.Now().Add(ttl).Unix(),
		Nonce:     m.nonce.Add(1),
	})
}

func (m *MockTokenAuthority) IssueRefresh(claims domain.RefreshClaims) (string, error) {
	ttl := m.RefreshTTL
	if ttl == 0 {
		ttl = time.Hour
	}
	return m.encode(mockToken{
		Use:       "refresh",
		AccountID: claims.AccountID,
		ExpiresAt: time.Now().Add(ttl).Unix(),
		Nonce:     m.nonce.Add(1),
	})
}

func (m *MockTokenAuthority) VerifyAccess(token string) (*domain.AccessClaims, error) {
	tk, err := m.decode(token, "access")
	if err != nil {
		return nil, err
	}
	return &domain.AccessClaims{AccountID: tk.AccountID, Role: domain.Role(tk.Role)}, nil
}

func (m *MockTokenAuthority) VerifyRefresh(token string) (*domain.RefreshClaims, error) {
	tk, err := m.decode(token, "refresh")
	if err != nil {
		return nil, err
	}
	return &domain.RefreshClaims{AccountID: tk.AccountID}, nil
}

func (m *MockTokenAuthority) encode(tk mockToken) (string, error) {
	data, err := json.Marshal(tk)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

func (m *MockTokenAuthority) decode(token, use string) (*mockToken, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	var tk mockToken
	if err := json.Unmarshal(data, &tk); err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if tk.Use != use {
		return nil, domain.ErrTokenInvalid
	}
	if time.Now().Unix() > tk.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}
	return &tk, nil
}
