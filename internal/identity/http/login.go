package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/codelane/identity/internal/identity/service"
	"github.com/codelane/identity/pkg/httpx"
	"github.com/codelane/identity/pkg/slogx"
)

// LoginHandler serves POST /auth/login.
// Accepts application/x-www-form-urlencoded credentials in the OAuth2
// password-grant shape (username + password form fields).
type LoginHandler struct {
	AuthService *service.AuthService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		writeValidationError(w, []FieldError{{
			Loc:  []string{"body"},
			Msg:  "Expected application/x-www-form-urlencoded body",
			Type: "value_error",
		}})
		return
	}

	if err := r.ParseForm(); err != nil {
		writeValidationError(w, []FieldError{{
			Loc:  []string{"body"},
			Msg:  "Invalid form body",
			Type: "value_error",
		}})
		return
	}

	// The username field doubles as an email login.
	login := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	token, err := h.AuthService.Login(ctx, login, password)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			writeBusinessError(w, http.StatusBadRequest, CodeBadCredentials,
				"Incorrect username or password")
			return
		}
		log.Error("login failed", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
