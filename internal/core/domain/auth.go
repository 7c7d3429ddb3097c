package domain

// AccessClaims is the payload of a short-lived access token.
// Access tokens are stateless: validity is signature plus expiry only.
type AccessClaims struct {
	AccountID string `json:"account_id"`
	Role      Role   `json:"role"`
}

// RefreshClaims is the payload of a long-lived refresh token.
// A refresh token is additionally checked against the value stored on
// the account row, which is what makes rotation and logout effective.
type RefreshClaims struct {
	AccountID string `json:"account_id"`
}

// AuthContext contains the verified identity attached to a request
// context by the auth middleware. Never carries the raw token or hash.
type AuthContext struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// IsAdmin checks if the authenticated account is an admin
func (a *AuthContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// RegisterRequest represents a registration attempt.
// Shape validation (email format, password length) happens at the
// transport layer before this reaches the core.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents a token refresh attempt
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenPair is returned after successful login or refresh. The refresh
// token is delivered here for separate transport; it is never embedded
// in the sanitized account payload.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResult couples a sanitized account with freshly issued tokens
type LoginResult struct {
	Account *AccountSummary
	Tokens  TokenPair
}

// UpdateRequest is a partial account patch. Nil fields are untouched.
// A patched password is re-hashed before persisting.
type UpdateRequest struct {
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *Role   `json:"role,omitempty"`
}
