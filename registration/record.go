// Package registration validates user registration candidates.
//
// One rule table backs both calling conventions: Validate/Check for a whole
// candidate on submit, and Form for per-field validation as values change.
// Street and city are required in ModeStrict and optional in ModeLenient;
// age is coerced from numeric text in both modes.
package registration

import (
	"fmt"
	"strings"
)

// Mode selects the address required-ness policy.
type Mode int

const (
	// ModeStrict requires a non-empty street and city.
	ModeStrict Mode = iota
	// ModeLenient accepts a missing or empty street and city.
	ModeLenient
)

func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeLenient:
		return "lenient"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps "strict" or "lenient" (case-insensitive) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict", "":
		return ModeStrict, nil
	case "lenient":
		return ModeLenient, nil
	default:
		return 0, fmt.Errorf("registration: unknown mode %q (want strict or lenient)", s)
	}
}

// Candidate is raw registration input, nested the same way as Record.
type Candidate = map[string]any

// Address is the validated postal address of a Record.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode"`
}

// Record is a fully validated registration.
type Record struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Age      int     `json:"age"`
	Address  Address `json:"address"`
}
