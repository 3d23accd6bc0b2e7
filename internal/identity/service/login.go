package service

import (
	"context"
	"errors"
	"strings"

	"github.com/codelane/identity/internal/identity/domain"
	"github.com/codelane/identity/internal/identity/store"
	"github.com/codelane/identity/pkg/cryptox"
	"github.com/codelane/identity/pkg/jwtx"
	"github.com/codelane/identity/pkg/slogx"
)

var ErrBadCredentials = errors.New("bad_credentials")

// AuthService authenticates users and issues access tokens.
type AuthService struct {
	Store  store.Store
	Issuer *jwtx.Issuer
}

// Login verifies the supplied credentials and returns a signed access token.
// The login identifier is treated as an email address when it contains an '@',
// otherwise as a username. Unknown accounts, wrong passwords, and deactivated
// accounts all collapse into ErrBadCredentials so the response does not reveal
// which check failed.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, error) {
	log := slogx.FromContext(ctx)

	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return "", ErrBadCredentials
	}

	user, err := s.lookup(ctx, login)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrBadCredentials
		}
		return "", err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Info("login failed", "user_id", user.ID)
			return "", ErrBadCredentials
		}
		return "", err
	}

	if !user.IsActive {
		log.Info("login rejected for inactive user", "user_id", user.ID)
		return "", ErrBadCredentials
	}

	return s.Issuer.Issue(user.ID)
}

// CurrentUser resolves the authenticated user for a verified token subject.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

func (s *AuthService) lookup(ctx context.Context, login string) (domain.User, error) {
	if strings.Contains(login, "@") {
		return s.Store.Users().GetUserByEmail(ctx, login)
	}
	return s.Store.Users().GetUserByUsername(ctx, login)
}
