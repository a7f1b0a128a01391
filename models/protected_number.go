package models

import "time"

// ProtectedNumber marks a lookup target as exempt from lookups regardless
// of the caller's credit balance.
type ProtectedNumber struct {
	Number    string    `json:"number"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultProtectedReason is returned when a protected entry was stored
// without an authored reason. Callers never see "protected" with a blank
// explanation.
const DefaultProtectedReason = "number protected by operator policy"
