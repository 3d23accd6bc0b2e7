package policy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testProfile = Profile{
	Email:    "user@example.com",
	Username: "testuser",
	Name:     "Test User",
}

func TestValidate_AcceptsStrongPassword(t *testing.T) {
	t.Parallel()

	passwords := []string{
		"TestPassword1!",
		"Sup3r$ecretValue",
		"Xk9#mQpL2w",
		"A1!aaaaa", // exactly 8 chars
	}

	for _, pw := range passwords {
		require.NoError(t, Validate(pw, testProfile), "password %q should pass", pw)
	}
}

func TestValidate_RejectsWeakPasswords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
	}{
		{"too short", "Short1!"},
		{"no uppercase", "password123!"},
		{"no digit", "Password!"},
		{"no special character", "Password1"},
		{"empty", ""},
		{"special char outside fixed set", "Password1~"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.password, testProfile)
			require.ErrorIs(t, err, ErrWeakPassword)
		})
	}
}

func TestValidate_RejectsPIIContainment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
	}{
		{"contains username", "Testuser1!123"},
		{"contains email local part", "Meuser@example.com1233!"},
		{"contains email local part inside name-like password", "Test User1!123"},
		{"case-insensitive match", "TESTUSER9!abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.password, testProfile)
			require.ErrorIs(t, err, ErrPasswordContainsPII)
		})
	}
}

func TestValidate_NameTokensAreNotCandidates(t *testing.T) {
	t.Parallel()

	// The display name is free-form text and must not constrain the password:
	// "TestPassword1!" shares its "Test" prefix with the name "Test User" and
	// still has to pass.
	require.NoError(t, Validate("TestPassword1!", testProfile))

	profile := Profile{
		Email:    "someone@example.com",
		Username: "someone",
		Name:     "Zebra Quokka",
	}
	require.NoError(t, Validate("Zebra1!pass", profile))
}

func TestValidate_StructuralRuleRunsFirst(t *testing.T) {
	t.Parallel()

	// Contains the username but is also structurally weak; the structural
	// failure must win because the rules short-circuit in order.
	err := Validate("testuser", testProfile)
	require.ErrorIs(t, err, ErrWeakPassword)
}

func TestValidate_ShortCandidatesIgnored(t *testing.T) {
	t.Parallel()

	profile := Profile{
		Email:    "ab@example.com",
		Username: "cd",
		Name:     "Jo Li",
	}

	// "ab" and "cd" are both <=3 chars and must not trigger the PII rule even
	// though they appear in the password.
	require.NoError(t, Validate("Jocdab1!Li", profile))
}

func TestValidate_EmptyProfileFields(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate("Unrelated9!", Profile{}))
	require.NoError(t, Validate("Unrelated9!", Profile{Email: "noatsign"}))
}
