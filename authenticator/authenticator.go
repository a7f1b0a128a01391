package authenticator

import (
	"context"
	"errors"
)

// ErrUnauthorized is returned when an identity assertion fails
// verification. No audit entry is written for it: there is no account
// context yet.
var ErrUnauthorized = errors.New("unauthorized")

// Identity is the verified result of an identity assertion.
type Identity struct {
	SubjectID string
	Email     string
}

// Verifier abstracts the identity oracle: it takes a raw bearer token and
// returns the verified subject, or ErrUnauthorized.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}
