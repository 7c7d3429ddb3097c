package driven

import (
	"context"

	"github.com/fieldworks/auth-core/internal/core/domain"
)

// AccountStore persists account records. It exclusively owns account
// persistence; the session service is the only writer of the
// refresh-token field.
type AccountStore interface {
	// Create inserts a new account.
	// Returns domain.ErrEmailTaken if the email is already claimed.
	Create(ctx context.Context, account *domain.Account) error

	// Get retrieves an account by ID.
	// Returns domain.ErrAccountNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Account, error)

	// GetByEmail retrieves an account by its unique email.
	// Returns domain.ErrAccountNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// List retrieves all accounts, newest first.
	List(ctx context.Context) ([]*domain.Account, error)

	// Update persists changed account fields.
	// Returns domain.ErrEmailTaken if a changed email collides.
	Update(ctx context.Context, account *domain.Account) error

	// SetRefreshToken overwrites the stored refresh token.
	// A nil token clears it (logout). Last write wins by design.
	SetRefreshToken(ctx context.Context, id string, token *string) error

	// Delete removes an account.
	// Returns domain.ErrAccountNotFound if absent.
	Delete(ctx context.Context, id string) error
}
