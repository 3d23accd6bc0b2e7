package domain

import "time"

// User is the persisted identity record. Email and Username are globally
// unique; uniqueness is enforced by the storage layer, not just the
// application-level pre-checks. PasswordHash is the argon2id PHC-encoded
// credential and must never appear in an outward-facing representation.
type User struct {
	ID           string // UUID
	Email        string
	Username     string
	Name         string
	PasswordHash string
	IsActive     bool
	IsSuperuser  bool
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegistrationRequest is the transient input to registration. It carries the
// plaintext password for the duration of a single call and is discarded after
// validation and hashing.
type RegistrationRequest struct {
	Email    string
	Username string
	Name     string
	Password string
}
