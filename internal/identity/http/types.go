package http

import (
	"net/http"

	"github.com/codelane/identity/internal/identity/domain"
	"github.com/codelane/identity/pkg/httpx"
)

// Stable business error codes surfaced in 400 responses.
const (
	CodeUserAlreadyExists     = "REGISTER_USER_ALREADY_EXISTS"
	CodeUsernameAlreadyExists = "REGISTER_USERNAME_ALREADY_EXISTS"
	CodeInvalidPassword       = "REGISTER_INVALID_PASSWORD"
	CodePasswordContainsPII   = "REGISTER_INVALID_PASSWORD_CONTAINS_USER_INFO"
	CodeBadCredentials        = "LOGIN_BAD_CREDENTIALS"
)

// UserResponse is the public representation of a user. The password hash is
// deliberately absent.
type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
	IsVerified  bool   `json:"is_verified"`
}

func newUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		Name:        u.Name,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		IsVerified:  u.IsVerified,
	}
}

// TokenResponse is returned by the login endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ErrorDetail carries a machine-readable code plus a human-readable reason.
type ErrorDetail struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// ErrorResponse wraps business failures: {"detail": {"code": ..., "reason": ...}}.
type ErrorResponse struct {
	Detail ErrorDetail `json:"detail"`
}

// FieldError describes a single request-body validation failure.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationErrorResponse wraps 422 responses: {"detail": [{loc, msg, type}...]}.
type ValidationErrorResponse struct {
	Detail []FieldError `json:"detail"`
}

// HealthChecks reports per-dependency status for the readiness probe.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is shared by the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

func writeBusinessError(w http.ResponseWriter, status int, code, reason string) {
	httpx.WriteJSON(w, status, ErrorResponse{Detail: ErrorDetail{Code: code, Reason: reason}})
}

func writeValidationError(w http.ResponseWriter, fields []FieldError) {
	httpx.WriteJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{Detail: fields})
}
