package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/fieldworks/auth-core/internal/core/domain"
)

func newTestAuthority() *TokenAuthority {
	return NewTokenAuthority(Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	})
}

func TestTokenAuthority_AccessRoundTrip(t *testing.T) {
	authority := newTestAuthority()

	token, err := authority.IssueAccess(domain.AccessClaims{
		AccountID: "acc-123",
		Role:      domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := authority.VerifyAccess(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.AccountID != "acc-123" {
		t.Errorf("expected account acc-123, got %s", claims.AccountID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("expected role ADMIN, got %s", claims.Role)
	}
}

func TestTokenAuthority_RefreshRoundTrip(t *testing.T) {
	authority := newTestAuthority()

	token, err := authority.IssueRefresh(domain.RefreshClaims{AccountID: "acc-123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := authority.VerifyRefresh(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.AccountID != "acc-123" {
		t.Errorf("expected account acc-123, got %s", claims.AccountID)
	}
}

func TestTokenAuthority_SecretsAreDistinct(t *testing.T) {
	authority := newTestAuthority()

	accessToken, err := authority.IssueAccess(domain.AccessClaims{AccountID: "acc-123", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	refreshToken, err := authority.IssueRefresh(domain.RefreshClaims{AccountID: "acc-123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A token signed with one secret must not verify under the other
	if _, err := authority.VerifyRefresh(accessToken); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for access token on refresh path, got %v", err)
	}
	if _, err := authority.VerifyAccess(refreshToken); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for refresh token on access path, got %v", err)
	}
}

func TestTokenAuthority_Expired(t *testing.T) {
	authority := NewTokenAuthority(Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     -time.Minute,
		RefreshTTL:    -time.Minute,
	})

	accessToken, err := authority.IssueAccess(domain.AccessClaims{AccountID: "acc-123", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := authority.VerifyAccess(accessToken); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}

	refreshToken, err := authority.IssueRefresh(domain.RefreshClaims{AccountID: "acc-123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := authority.VerifyRefresh(refreshToken); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenAuthority_TamperedAndGarbage(t *testing.T) {
	authority := newTestAuthority()

	token, err := authority.IssueAccess(domain.AccessClaims{AccountID: "acc-123", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"empty", ""},
		{"tampered signature", token[:len(token)-2] + "xx"},
		{"wrong secret", mustSign(t, "acc-123")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := authority.VerifyAccess(tt.token); !errors.Is(err, domain.ErrTokenInvalid) {
				t.Errorf("expected ErrTokenInvalid, got %v", err)
			}
		})
	}
}

// mustSign issues an access token under a foreign secret
func mustSign(t *testing.T, accountID string) string {
	t.Helper()
	foreign := NewTokenAuthority(Config{
		AccessSecret:  "somebody-elses-secret",
		RefreshSecret: "another-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Minute,
	})
	token, err := foreign.IssueAccess(domain.AccessClaims{AccountID: accountID, Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return token
}
