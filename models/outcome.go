package models

import "encoding/json"

// LookupOutcome is the tagged result of one gated lookup request, decoded
// and validated once at the gateway boundary.
type LookupOutcome struct {
	Status  AuditStatus     `json:"status"`
	Result  json.RawMessage `json:"result,omitempty"`
	Reason  string          `json:"reason,omitempty"`
	Credits int             `json:"credits"`
}

// SuccessOutcome builds the outcome for a completed lookup.
func SuccessOutcome(result json.RawMessage, credits int) *LookupOutcome {
	return &LookupOutcome{Status: StatusSuccess, Result: result, Credits: credits}
}

// FailureOutcome builds the outcome for a lookup the upstream service
// failed to answer. The credit is spent regardless: the system charges
// for the attempt.
func FailureOutcome(credits int) *LookupOutcome {
	return &LookupOutcome{Status: StatusFailure, Credits: credits}
}

// DeniedOutcome builds the outcome for a protected target. Credits are
// untouched.
func DeniedOutcome(reason string, credits int) *LookupOutcome {
	return &LookupOutcome{Status: StatusDenied, Reason: reason, Credits: credits}
}

// InsufficientCreditOutcome builds the outcome for a caller whose balance
// cannot cover the request.
func InsufficientCreditOutcome() *LookupOutcome {
	return &LookupOutcome{Status: StatusInsufficientCredit, Reason: "insufficient credits"}
}
