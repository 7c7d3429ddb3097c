package driven

import "context"

// RateLimiter throttles credential-guessing traffic on the public
// auth endpoints. Keys are caller-defined (client address).
type RateLimiter interface {
	// Allow records a hit for key and reports whether it is still
	// within the window budget.
	Allow(ctx context.Context, key string) (bool, error)
}
