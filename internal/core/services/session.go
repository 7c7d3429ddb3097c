package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fieldworks/auth-core/internal/core/domain"
	"github.com/fieldworks/auth-core/internal/core/ports/driven"
	"github.com/fieldworks/auth-core/internal/core/ports/driving"
)

// Ensure sessionService implements SessionService
var _ driving.SessionService = (*sessionService)(nil)

// sessionService implements the SessionService interface
type sessionService struct {
	accounts driven.AccountStore
	hasher   driven.PasswordHasher
	tokens   driven.TokenAuthority
	logger   *slog.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(
	accounts driven.AccountStore,
	hasher driven.PasswordHasher,
	tokens driven.TokenAuthority,
	logger *slog.Logger,
) driving.SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &sessionService{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates an account without issuing tokens
func (s *sessionService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AccountSummary, error) {
	if req.Email == "" || req.Name == "" || len(req.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}

	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidInput
	}

	email := normalizeEmail(req.Email)

	// Fast-path duplicate check; the store's unique constraint is the
	// authoritative one under concurrent registration
	if existing, _ := s.accounts.GetByEmail(ctx, email); existing != nil {
		return nil, domain.ErrEmailTaken
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return nil, domain.Internal("registration failed")
	}

	now := time.Now()
	account := &domain.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, s.storeErr(err, "create account")
	}

	return account.ToSummary(), nil
}

// Login verifies credentials and issues an access+refresh pair.
// Unknown email and wrong password collapse into the same error so
// callers cannot enumerate accounts.
func (s *sessionService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	account, err := s.accounts.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, s.storeErr(err, "login lookup")
	}

	if !s.hasher.Verify(req.Password, account.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(account)
	if err != nil {
		return nil, err
	}

	// Overwrites any prior refresh token: a concurrently active session
	// for this account becomes unusable on its next refresh
	if err := s.accounts.SetRefreshToken(ctx, account.ID, &pair.RefreshToken); err != nil {
		return nil, s.storeErr(err, "persist refresh token")
	}

	return &domain.LoginResult{Account: account.ToSummary(), Tokens: pair}, nil
}

// Refresh rotates the refresh token: the presented token must match
// the stored value exactly, and the stored value is overwritten with
// the newly issued one, so a once-used token cannot be replayed.
func (s *sessionService) Refresh(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResult, error) {
	if req.RefreshToken == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.tokens.VerifyRefresh(req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.AccountID == "" {
		return nil, domain.ErrTokenInvalid
	}

	account, err := s.accounts.Get(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, s.storeErr(err, "refresh lookup")
	}

	// Covers logout-then-reuse and rotation-then-reuse
	if account.RefreshToken == nil || *account.RefreshToken != req.RefreshToken {
		return nil, domain.ErrRefreshMismatch
	}

	pair, err := s.issuePair(account)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.SetRefreshToken(ctx, account.ID, &pair.RefreshToken); err != nil {
		return nil, s.storeErr(err, "rotate refresh token")
	}

	return &domain.LoginResult{Account: account.ToSummary(), Tokens: pair}, nil
}

// Logout clears the stored refresh token. Idempotent: logging out an
// account with no active session succeeds.
func (s *sessionService) Logout(ctx context.Context, accountID string) error {
	if _, err := s.accounts.Get(ctx, accountID); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrAccountNotFound
		}
		return s.storeErr(err, "logout lookup")
	}

	if err := s.accounts.SetRefreshToken(ctx, accountID, nil); err != nil {
		return s.storeErr(err, "clear refresh token")
	}
	return nil
}

// Verify validates an access token and returns the identity to attach
// to the request context. Access tokens are stateless: no stored value
// is consulted, only the account's current existence.
func (s *sessionService) Verify(ctx context.Context, accessToken string) (*domain.AuthContext, error) {
	if accessToken == "" {
		return nil, domain.ErrNoToken
	}

	claims, err := s.tokens.VerifyAccess(accessToken)
	if err != nil {
		return nil, err
	}
	if claims.AccountID == "" {
		return nil, domain.ErrTokenInvalid
	}

	account, err := s.accounts.Get(ctx, claims.AccountID)
	if err != nil {
		// Deleted account with a still-valid access token
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, s.storeErr(err, "verify lookup")
	}

	return &domain.AuthContext{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      account.Role,
	}, nil
}

// GetByID retrieves a sanitized account by ID
func (s *sessionService) GetByID(ctx context.Context, id string) (*domain.AccountSummary, error) {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return nil, s.storeErr(err, "get account")
	}
	return account.ToSummary(), nil
}

// List retrieves all accounts, sanitized
func (s *sessionService) List(ctx context.Context) ([]*domain.AccountSummary, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, s.storeErr(err, "list accounts")
	}

	summaries := make([]*domain.AccountSummary, 0, len(accounts))
	for _, account := range accounts {
		summaries = append(summaries, account.ToSummary())
	}
	return summaries, nil
}

// Update applies a partial patch to an account
func (s *sessionService) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.AccountSummary, error) {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return nil, s.storeErr(err, "update lookup")
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email == "" {
			return nil, domain.ErrInvalidInput
		}
		if email != account.Email {
			if other, _ := s.accounts.GetByEmail(ctx, email); other != nil && other.ID != id {
				return nil, domain.ErrEmailTaken
			}
			account.Email = email
		}
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		account.Name = name
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return nil, domain.ErrInvalidInput
		}
		passwordHash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			s.logger.Error("password hashing failed", "error", err)
			return nil, domain.Internal("update failed")
		}
		account.PasswordHash = passwordHash
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, domain.ErrInvalidInput
		}
		account.Role = *req.Role
	}
	account.UpdatedAt = time.Now()

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, s.storeErr(err, "update account")
	}

	return account.ToSummary(), nil
}

// Delete removes an account
func (s *sessionService) Delete(ctx context.Context, id string) error {
	if err := s.accounts.Delete(ctx, id); err != nil {
		return s.storeErr(err, "delete account")
	}
	return nil
}

// issuePair mints a fresh access+refresh token pair for the account
func (s *sessionService) issuePair(account *domain.Account) (domain.TokenPair, error) {
	accessToken, err := s.tokens.IssueAccess(domain.AccessClaims{
		AccountID: account.ID,
		Role:      account.Role,
	})
	if err != nil {
		s.logger.Error("access token signing failed", "error", err)
		return domain.TokenPair{}, domain.Internal("token issuance failed")
	}

	refreshToken, err := s.tokens.IssueRefresh(domain.RefreshClaims{
		AccountID: account.ID,
	})
	if err != nil {
		s.logger.Error("refresh token signing failed", "error", err)
		return domain.TokenPair{}, domain.Internal("token issuance failed")
	}

	return domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// storeErr passes domain errors through and shields storage-engine
// detail behind the internal kind
func (s *sessionService) storeErr(err error, op string) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	s.logger.Error("storage failure", "op", op, "error", err)
	return domain.Internal("storage failure")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
