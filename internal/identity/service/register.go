package service

import (
	"context"
	"errors"
	"strings"

	"github.com/codelane/identity/internal/identity/domain"
	"github.com/codelane/identity/internal/identity/policy"
	"github.com/codelane/identity/internal/identity/store"
	"github.com/codelane/identity/pkg/cryptox"
	"github.com/codelane/identity/pkg/slogx"

	"github.com/google/uuid"
)

const (
	// MaxUsernameLength is the maximum accepted username length.
	MaxUsernameLength = 30

	// MaxNameLength is the maximum accepted display name length.
	MaxNameLength = 30
)

var (
	ErrEmailTaken    = errors.New("email_taken")
	ErrUsernameTaken = errors.New("username_taken")
	ErrMissingField  = errors.New("missing_field")
	ErrFieldTooLong  = errors.New("field_too_long")
)

// RegistrationService creates new user accounts. Password validation is
// delegated to the policy package and hashing to cryptox; the unique indexes
// on email and username remain the authoritative duplicate check.
type RegistrationService struct {
	Store store.Store
}

// Register validates the request, enforces the password policy, and persists
// a new user. Policy errors (policy.ErrWeakPassword, policy.ErrPasswordContainsPII)
// are returned unwrapped so callers can map them to their own error codes.
//
// The email and username existence lookups are a fast path only: two racing
// registrations for the same identifier are decided by the database unique
// constraints, which surface here as the same ErrEmailTaken/ErrUsernameTaken.
func (s *RegistrationService) Register(ctx context.Context, req domain.RegistrationRequest) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if err := validateRequest(req); err != nil {
		return domain.User{}, err
	}

	if _, err := s.Store.Users().GetUserByEmail(ctx, req.Email); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	if _, err := s.Store.Users().GetUserByUsername(ctx, req.Username); err == nil {
		return domain.User{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	if err := policy.Validate(req.Password, policy.Profile{
		Email:    req.Email,
		Username: req.Username,
		Name:     req.Name,
	}); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrEmailExists):
			return domain.User{}, ErrEmailTaken
		case errors.Is(err, store.ErrUsernameExists):
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}

	created, err := s.Store.Users().GetUserByID(ctx, user.ID)
	if err != nil {
		return domain.User{}, err
	}

	log.Info("user registered", "user_id", created.ID, "username", created.Username)
	return created, nil
}

func validateRequest(req domain.RegistrationRequest) error {
	if strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Username) == "" ||
		strings.TrimSpace(req.Name) == "" ||
		req.Password == "" {
		return ErrMissingField
	}
	if len(req.Username) > MaxUsernameLength || len(req.Name) > MaxNameLength {
		return ErrFieldTooLong
	}
	return nil
}
