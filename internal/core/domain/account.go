package domain

import "time"

// Role defines account permission level
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role is a member of the closed enumeration.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Account is the persisted credential record. RefreshToken holds the
// single currently-valid refresh credential: nil except between a
// successful login/refresh and the next logout/refresh.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	RefreshToken *string   `json:"-"` // Never serialize
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccountSummary provides a safe view of account data (no password
// hash, no refresh token). Built by explicit projection so a field
// added to Account cannot leak by accident.
type AccountSummary struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToSummary converts an Account to AccountSummary
func (a *Account) ToSummary() *AccountSummary {
	return &AccountSummary{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// IsAdmin checks if the account has admin privileges
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
