package driving

import (
	"context"

	"github.com/fieldworks/auth-core/internal/core/domain"
)

// SessionService owns the account session state machine:
// Anonymous -> (register) -> Registered -> (login) -> Active session
// -> (refresh) -> Active session with rotated token -> (logout) ->
// Registered. It is the only writer of the stored refresh token.
type SessionService interface {
	// Register creates an account. Fails with domain.ErrEmailTaken if
	// the email is claimed. Issues no tokens.
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.AccountSummary, error)

	// Login verifies credentials, issues an access+refresh pair and
	// persists the refresh token, silently superseding any prior
	// session for the account.
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error)

	// Refresh exchanges a valid, currently-stored refresh token for a
	// new pair, rotating the stored value.
	Refresh(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResult, error)

	// Logout clears the stored refresh token. Idempotent.
	Logout(ctx context.Context, accountID string) error

	// Verify validates an access token and returns the identity for
	// request-context attachment. Fails if the account no longer exists.
	Verify(ctx context.Context, accessToken string) (*domain.AuthContext, error)

	// GetByID returns a sanitized account.
	GetByID(ctx context.Context, id string) (*domain.AccountSummary, error)

	// List returns all accounts, sanitized.
	List(ctx context.Context) ([]*domain.AccountSummary, error)

	// Update applies a partial patch, re-hashing a patched password.
	Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.AccountSummary, error)

	// Delete removes an account.
	Delete(ctx context.Context, id string) error
}
