package domain

import "errors"

// ErrorKind classifies a domain failure. Kinds are mapped to transport
// status codes at the HTTP boundary, never inside the core.
type ErrorKind string

const (
	KindConflict     ErrorKind = "conflict"
	KindNotFound     ErrorKind = "not_found"
	KindUnauthorized ErrorKind = "unauthorized"
	KindValidation   ErrorKind = "validation_failed"
	KindInternal     ErrorKind = "internal"
)

// Error is the structured error carried across module boundaries.
// Code is a stable machine-readable identifier; Message is safe to
// return to clients and never contains credentials or raw tokens.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches another *Error by identity or, for bare kind probes
// (an Error with no Code), by kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code == "" {
		return e.Kind == t.Kind
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// KindOf extracts the kind from an error chain.
// Unrecognised errors are treated as internal failures.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Internal wraps an unexpected storage or crypto failure without
// leaking engine-specific detail to callers.
func Internal(message string) *Error {
	return &Error{Kind: KindInternal, Code: "internal", Message: message}
}

// Well-known domain errors - used across all layers
var (
	// ErrEmailTaken indicates the email is already registered
	ErrEmailTaken = &Error{Kind: KindConflict, Code: "email_taken", Message: "email already exists"}

	// ErrAccountNotFound indicates the referenced account does not exist
	ErrAccountNotFound = &Error{Kind: KindNotFound, Code: "account_not_found", Message: "account not found"}

	// ErrInvalidCredentials covers unknown email and wrong password alike,
	// so callers cannot enumerate registered accounts
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Code: "invalid_credentials", Message: "invalid credentials"}

	// ErrNoToken indicates a missing or malformed Authorization header
	ErrNoToken = &Error{Kind: KindUnauthorized, Code: "no_token", Message: "no token provided"}

	// ErrTokenExpired indicates the token is past its TTL
	ErrTokenExpired = &Error{Kind: KindUnauthorized, Code: "token_expired", Message: "token expired"}

	// ErrTokenInvalid indicates the token is malformed or its signature fails
	ErrTokenInvalid = &Error{Kind: KindUnauthorized, Code: "token_invalid", Message: "invalid token"}

	// ErrRefreshMismatch indicates a refresh token that no longer matches
	// the stored value (rotated, logged out, or forged)
	ErrRefreshMismatch = &Error{Kind: KindUnauthorized, Code: "refresh_mismatch", Message: "invalid refresh token"}

	// ErrInvalidInput indicates malformed input reaching the core.
	// Primary shape validation happens at the transport layer.
	ErrInvalidInput = &Error{Kind: KindValidation, Code: "invalid_input", Message: "invalid input"}

	// ErrForbidden indicates the account lacks permission for this action
	ErrForbidden = &Error{Kind: KindUnauthorized, Code: "forbidden", Message: "forbidden"}
)
