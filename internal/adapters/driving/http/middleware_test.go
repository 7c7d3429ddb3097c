package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fieldworks/auth-core/internal/core/domain"
	"github.com/fieldworks/auth-core/internal/core/ports/driving"
)

// mockSessionService implements driving.SessionService with
// overridable functions and a Verify call counter
type mockSessionService struct {
	verifyFn    func(ctx context.Context, token string) (*domain.AuthContext, error)
	verifyCalls int

	registerFn func(ctx context.Context, req domain.RegisterRequest) (*domain.AccountSummary, error)
	loginFn    func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error)
	refreshFn  func(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResult, error)
	logoutFn   func(ctx context.Context, accountID string) error
}

var _ driving.SessionService = (*mockSessionService)(nil)

func (m *mockSessionService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AccountSummary, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSessionService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSessionService) Refresh(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResult, error) {
	if m.refreshFn != nil {
		return m.refreshFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSessionService) Logout(ctx context.Context, accountID string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, accountID)
	}
	return nil
}

func (m *mockSessionService) Verify(ctx context.Context, token string) (*domain.AuthContext, error) {
	m.verifyCalls++
	if m.verifyFn != nil {
		return m.verifyFn(ctx, token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *mockSessionService) GetByID(ctx context.Context, id string) (*domain.AccountSummary, error) {
	return nil, errors.New("not implemented")
}

func (m *mockSessionService) List(ctx context.Context) ([]*domain.AccountSummary, error) {
	return nil, errors.New("not implemented")
}

func (m *mockSessionService) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.AccountSummary, error) {
	return nil, errors.New("not implemented")
}

func (m *mockSessionService) Delete(ctx context.Context, id string) error {
	return errors.New("not implemented")
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		verifyFn    func(ctx context.Context, token string) (*domain.AuthContext, error)
		wantStatus  int
		wantVerifys int
	}{
		{
			name:        "missing header rejected before verification",
			header:      "",
			wantStatus:  http.StatusUnauthorized,
			wantVerifys: 0,
		},
		{
			name:        "wrong scheme rejected before verification",
			header:      "Basic dXNlcjpwYXNz",
			wantStatus:  http.StatusUnauthorized,
			wantVerifys: 0,
		},
		{
			name:        "bare bearer keyword rejected",
			header:      "Bearer",
			wantStatus:  http.StatusUnauthorized,
			wantVerifys: 0,
		},
		{
			name:   "expired token",
			header: "Bearer some-token",
			verifyFn: func(ctx context.Context, token string) (*domain.AuthContext, error) {
				return nil, domain.ErrTokenExpired
			},
			wantStatus:  http.StatusUnauthorized,
			wantVerifys: 1,
		},
		{
			name:   "invalid token",
			header: "Bearer some-token",
			verifyFn: func(ctx context.Context, token string) (*domain.AuthContext, error) {
				return nil, domain.ErrTokenInvalid
			},
			wantStatus:  http.StatusUnauthorized,
			wantVerifys: 1,
		},
		{
			name:   "valid token",
			header: "Bearer some-token",
			verifyFn: func(ctx context.Context, token string) (*domain.AuthContext, error) {
				return &domain.AuthContext{AccountID: "acc-1", Email: "a@x.com", Role: domain.RoleUser}, nil
			},
			wantStatus:  http.StatusOK,
			wantVerifys: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &mockSessionService{verifyFn: tt.verifyFn}
			middleware := NewAuthMiddleware(sessions)

			var gotCtx *domain.AuthContext
			handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotCtx = GetAuthContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if sessions.verifyCalls != tt.wantVerifys {
				t.Errorf("expected %d Verify calls, got %d", tt.wantVerifys, sessions.verifyCalls)
			}
			if tt.wantStatus == http.StatusOK {
				if gotCtx == nil {
					t.Fatal("expected auth context to be attached")
				}
				if gotCtx.AccountID != "acc-1" {
					t.Errorf("expected identity acc-1, got %s", gotCtx.AccountID)
				}
			}
		})
	}
}

func TestAuthMiddleware_RequireAdmin(t *testing.T) {
	middleware := NewAuthMiddleware(&mockSessionService{})
	handler := middleware.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authCtx    *domain.AuthContext
		wantStatus int
	}{
		{"no auth context", nil, http.StatusUnauthorized},
		{"user role", &domain.AuthContext{AccountID: "acc-1", Role: domain.RoleUser}, http.StatusForbidden},
		{"admin role", &domain.AuthContext{AccountID: "acc-1", Role: domain.RoleAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tt.authCtx != nil {
				req = req.WithContext(context.WithValue(req.Context(), authContextKey, tt.authCtx))
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

type stubLimiter struct {
	allowed bool
	err     error
}

func (s *stubLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return s.allowed, s.err
}

func TestRateLimitMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("nil limiter passes through", func(t *testing.T) {
		handler := NewRateLimitMiddleware(nil).Handler(next)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/auth/login", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("within budget", func(t *testing.T) {
		handler := NewRateLimitMiddleware(&stubLimiter{allowed: true}).Handler(next)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/auth/login", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("over budget", func(t *testing.T) {
		handler := NewRateLimitMiddleware(&stubLimiter{allowed: false}).Handler(next)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/auth/login", nil))
		if rec.Code != http.StatusTooManyRequests {
			t.Errorf("expected 429, got %d", rec.Code)
		}
	})

	t.Run("limiter outage fails open", func(t *testing.T) {
		handler := NewRateLimitMiddleware(&stubLimiter{err: errors.New("redis down")}).Handler(next)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/auth/login", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{"valid", "Bearer abc123", "abc123", true},
		{"case-insensitive scheme", "bearer abc123", "abc123", true},
		{"missing", "", "", false},
		{"wrong scheme", "Basic abc123", "", false},
		{"no token", "Bearer", "", false},
		{"empty token", "Bearer   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			got, ok := extractBearerToken(req)
			if ok != tt.wantOK {
				t.Errorf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if got != tt.want {
				t.Errorf("expected token %q, got %q", tt.want, got)
			}
		})
	}
}
