package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/codelane/identity/internal/identity/domain"
	"github.com/codelane/identity/internal/identity/policy"
	"github.com/codelane/identity/internal/identity/service"
	"github.com/codelane/identity/pkg/httpx"
	"github.com/codelane/identity/pkg/slogx"
)

// RegisterHandler serves POST /auth/register.
type RegisterHandler struct {
	RegistrationService *service.RegistrationService
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var body registerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeValidationError(w, []FieldError{{
			Loc:  []string{"body"},
			Msg:  "Invalid JSON body",
			Type: "json_invalid",
		}})
		return
	}

	if fields := validateRegisterBody(body); len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}

	user, err := h.RegistrationService.Register(ctx, domain.RegistrationRequest{
		Email:    body.Email,
		Username: body.Username,
		Name:     body.Name,
		Password: body.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			writeBusinessError(w, http.StatusBadRequest, CodeUserAlreadyExists,
				"A user with this email already exists")
		case errors.Is(err, service.ErrUsernameTaken):
			writeBusinessError(w, http.StatusBadRequest, CodeUsernameAlreadyExists,
				"A user with this username already exists")
		case errors.Is(err, policy.ErrWeakPassword):
			writeBusinessError(w, http.StatusBadRequest, CodeInvalidPassword,
				policy.WeakPasswordReason)
		case errors.Is(err, policy.ErrPasswordContainsPII):
			writeBusinessError(w, http.StatusBadRequest, CodePasswordContainsPII,
				policy.ContainsPIIReason)
		case errors.Is(err, service.ErrMissingField), errors.Is(err, service.ErrFieldTooLong):
			// The service re-validates defensively; anything it catches that
			// slipped past the handler checks is still an input error.
			writeValidationError(w, []FieldError{{
				Loc:  []string{"body"},
				Msg:  "Invalid field value",
				Type: "value_error",
			}})
		default:
			log.Error("registration failed", "err", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, newUserResponse(user))
}

func validateRegisterBody(body registerRequest) []FieldError {
	var fields []FieldError

	required := []struct {
		name  string
		value string
	}{
		{"email", strings.TrimSpace(body.Email)},
		{"username", strings.TrimSpace(body.Username)},
		{"name", strings.TrimSpace(body.Name)},
		{"password", body.Password},
	}
	for _, f := range required {
		if f.value == "" {
			fields = append(fields, FieldError{
				Loc:  []string{"body", f.name},
				Msg:  "Field required",
				Type: "missing",
			})
		}
	}

	limited := []struct {
		name  string
		value string
		max   int
	}{
		{"username", body.Username, service.MaxUsernameLength},
		{"name", body.Name, service.MaxNameLength},
	}
	for _, f := range limited {
		if len(f.value) > f.max {
			fields = append(fields, FieldError{
				Loc:  []string{"body", f.name},
				Msg:  fmt.Sprintf("String should have at most %d characters", f.max),
				Type: "string_too_long",
			})
		}
	}

	if body.Email != "" && !isWellFormedEmail(body.Email) {
		fields = append(fields, FieldError{
			Loc:  []string{"body", "email"},
			Msg:  "value is not a valid email address",
			Type: "value_error",
		})
	}

	return fields
}

// isWellFormedEmail requires a non-empty local and domain part around a
// single '@'. Anything stricter is the mail server's problem.
func isWellFormedEmail(email string) bool {
	local, domain, found := strings.Cut(email, "@")
	if !found || local == "" || domain == "" {
		return false
	}
	return !strings.Contains(domain, "@")
}
