package models

import (
	"time"
)

// Account tracks a user's credit balance, keyed by the subject identifier
// asserted by the identity provider. Accounts are provisioned on first
// contact and never deleted in normal operation.
type Account struct {
	ID        string    `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email,omitempty" db:"email"`
	Credits   int       `json:"credits" db:"credits"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AccountUpdate holds the fields an administrative update may change.
// Nil pointers mean "leave as is".
type AccountUpdate struct {
	Username *string
	Email    *string
}

// DefaultCreditGrant is the starting balance for newly provisioned accounts.
const DefaultCreditGrant = 10

// FallbackUsername is used when a new account has no email to derive a
// display name from.
const FallbackUsername = "user"
