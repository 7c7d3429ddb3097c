package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/fieldworks/auth-core/internal/core/domain"
	"github.com/fieldworks/auth-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AccountStore = (*AccountStore)(nil)

// uniqueViolation is the PostgreSQL class 23 code for a unique
// constraint failure
const uniqueViolation = "23505"

// AccountStore implements driven.AccountStore using PostgreSQL
type AccountStore struct {
	db *DB
}

// NewAccountStore creates a new AccountStore
func NewAccountStore(db *DB) *AccountStore {
	return &AccountStore{db: db}
}

// Create inserts a new account row
func (s *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash, name, role, refresh_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(ctx, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.Name,
		string(account.Role),
		NullString(account.RefreshToken),
		account.CreatedAt,
		account.UpdatedAt,
	)
	return translateErr(err)
}

// Get retrieves an account by ID
func (s *AccountStore) Get(ctx context.Context, id string) (*domain.Account, error) {
	return s.getBy(ctx, "id", id)
}

// GetByEmail retrieves an account by email
func (s *AccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return s.getBy(ctx, "email", email)
}

func (s *AccountStore) getBy(ctx context.Context, column, value string) (*domain.Account, error) {
	query := `
		SELECT id, email, password_hash, name, role, refresh_token, created_at, updated_at
		FROM accounts
		WHERE ` + column + ` = $1
	`

	var account domain.Account
	var refreshToken sql.NullString

	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Name,
		&account.Role,
		&refreshToken,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	account.RefreshToken = StringPtr(refreshToken)
	return &account, nil
}

// List retrieves all accounts, newest first
func (s *AccountStore) List(ctx context.Context) ([]*domain.Account, error) {
	query := `
		SELECT id, email, password_hash, name, role, refresh_token, created_at, updated_at
		FROM accounts
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		var account domain.Account
		var refreshToken sql.NullString

		err := rows.Scan(
			&account.ID,
			&account.Email,
			&account.PasswordHash,
			&account.Name,
			&account.Role,
			&refreshToken,
			&account.CreatedAt,
			&account.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		account.RefreshToken = StringPtr(refreshToken)
		accounts = append(accounts, &account)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return accounts, nil
}

// Update persists changed account fields
func (s *AccountStore) Update(ctx context.Context, account *domain.Account) error {
	query := `
		UPDATE accounts
		SET email = $1, password_hash = $2, name = $3, role = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(ctx, query,
		account.Email,
		account.PasswordHash,
		account.Name,
		string(account.Role),
		account.UpdatedAt,
		account.ID,
	)
	if err != nil {
		return translateErr(err)
	}

	return requireRow(result)
}

// SetRefreshToken overwrites the stored refresh token.
// Concurrent writers race here: last commit wins, which is exactly the
// single-active-session behaviour the service relies on.
func (s *AccountStore) SetRefreshToken(ctx context.Context, id string, token *string) error {
	query := `UPDATE accounts SET refresh_token = $1 WHERE id = $2`
	result, err := s.db.ExecContext(ctx, query, NullString(token), id)
	if err != nil {
		return err
	}

	return requireRow(result)
}

// Delete removes an account
func (s *AccountStore) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM accounts WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return requireRow(result)
}

// requireRow maps a zero-row result to the not-found kind
func requireRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// translateErr maps a unique-constraint violation on the email column
// to the conflict kind; everything else passes through for the service
// layer to shield as internal
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrEmailTaken
	}
	return err
}
