package driven

import "github.com/fieldworks/auth-core/internal/core/domain"

// TokenAuthority signs and verifies access and refresh tokens.
// Access and refresh tokens use distinct secrets so a leaked secret
// compromises only one class of credential.
type TokenAuthority interface {
	// IssueAccess signs access claims with the short (minutes) TTL.
	IssueAccess(claims domain.AccessClaims) (string, error)

	// IssueRefresh signs refresh claims with the long (days) TTL.
	IssueRefresh(claims domain.RefreshClaims) (string, error)

	// VerifyAccess validates an access token.
	// Returns domain.ErrTokenExpired past TTL, domain.ErrTokenInvalid
	// for signature or format failures.
	VerifyAccess(token string) (*domain.AccessClaims, error)

	// VerifyRefresh validates a refresh token with the same failure
	// classification as VerifyAccess.
	VerifyRefresh(token string) (*domain.RefreshClaims, error)
}
