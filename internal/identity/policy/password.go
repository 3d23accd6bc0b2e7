package policy

import (
	"errors"
	"strings"
	"unicode"
)

// Canonical reason strings surfaced to clients alongside the stable error
// codes. Handlers must return these verbatim so API consumers can match on
// them.
const (
	WeakPasswordReason = "Password must be at least 8 characters long and " +
		"contain at least one uppercase letter, one digit and one special character"
	ContainsPIIReason = "Password must not contain your email or username"
)

var (
	// ErrWeakPassword reports a password failing the structural rules.
	ErrWeakPassword = errors.New("policy: weak password")

	// ErrPasswordContainsPII reports a password embedding the user's own
	// identifying text.
	ErrPasswordContainsPII = errors.New("policy: password contains user info")
)

// specialChars is the fixed special-character set the structural rule
// requires.
const specialChars = "!@#$%^&*()_+"

// minCandidateLen filters out short PII candidates. Substrings of three or
// fewer characters produce too many false positives on common letter runs.
const minCandidateLen = 3

// Profile carries the identifying fields a candidate password is checked
// against.
type Profile struct {
	Email    string
	Username string
	Name     string
}

// Validate applies the password policy to a candidate password. Rules run in
// order and short-circuit on the first failure: structural strength first,
// then PII containment. A nil return means the password passed both.
func Validate(password string, profile Profile) error {
	if err := validateStructure(password); err != nil {
		return err
	}
	return validatePIIContainment(password, profile)
}

func validateStructure(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}

	var hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}

	if !hasUpper || !hasDigit || !hasSpecial {
		return ErrWeakPassword
	}
	return nil
}

func validatePIIContainment(password string, profile Profile) error {
	lowered := strings.ToLower(password)

	for _, candidate := range piiCandidates(profile) {
		if strings.Contains(lowered, candidate) {
			return ErrPasswordContainsPII
		}
	}
	return nil
}

// piiCandidates builds the lowercase substrings a password must not contain:
// the local part of the email plus every whitespace-separated token of the
// username. Display-name tokens are deliberately not candidates; they are
// free-form text and reject too many legitimate passwords ("Test User" would
// ban any password starting with "Test"). Candidates at or below
// minCandidateLen are dropped.
func piiCandidates(profile Profile) []string {
	var candidates []string

	if local, _, found := strings.Cut(profile.Email, "@"); found && local != "" {
		candidates = append(candidates, local)
	}
	candidates = append(candidates, strings.Fields(profile.Username)...)

	out := candidates[:0]
	for _, c := range candidates {
		if len(c) > minCandidateLen {
			out = append(out, strings.ToLower(c))
		}
	}
	return out
}
