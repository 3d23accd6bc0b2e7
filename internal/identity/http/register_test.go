package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func postRegister(t *testing.T, env *testEnv, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

const validRegisterBody = `{
	"email": "user@example.com",
	"username": "testuser",
	"name": "Test User",
	"password": "TestPassword1!"
}`

func TestRegister_Created(t *testing.T) {
	env := newTestEnv(t)

	rec := postRegister(t, env, validRegisterBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	require.Equal(t, "user@example.com", resp.Email)
	require.Equal(t, "testuser", resp.Username)
	require.Equal(t, "Test User", resp.Name)
	require.True(t, resp.IsActive)
	require.False(t, resp.IsSuperuser)
	require.False(t, resp.IsVerified)

	// The raw body must never leak password material.
	require.NotContains(t, rec.Body.String(), "TestPassword1!")
	require.NotContains(t, rec.Body.String(), "password")
}

func TestRegister_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec := postRegister(t, env, `{"email": "user@example.com"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Detail, 3)

	missing := make(map[string]bool)
	for _, f := range resp.Detail {
		require.Equal(t, "Field required", f.Msg)
		require.Equal(t, []string{"body", f.Loc[1]}, f.Loc)
		missing[f.Loc[1]] = true
	}
	require.True(t, missing["username"])
	require.True(t, missing["name"])
	require.True(t, missing["password"])
}

func TestRegister_WhitespaceFieldsAreMissing(t *testing.T) {
	env := newTestEnv(t)

	rec := postRegister(t, env, `{
		"email": "user@example.com",
		"username": "testuser",
		"name": "   ",
		"password": "TestPassword1!"
	}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Detail, 1)
	require.Equal(t, []string{"body", "name"}, resp.Detail[0].Loc)
}

func TestRegister_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)

	rec := postRegister(t, env, `{not json`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRegister_MalformedEmail(t *testing.T) {
	env := newTestEnv(t)

	for _, email := range []string{"notanemail", "@gmail.com", "testuser@", "a@b@c"} {
		t.Run(email, func(t *testing.T) {
			rec := postRegister(t, env, `{
				"email": "`+email+`",
				"username": "testuser",
				"name": "Test User",
				"password": "TestPassword1!"
			}`)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var resp ValidationErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Len(t, resp.Detail, 1)
			require.Equal(t, []string{"body", "email"}, resp.Detail[0].Loc)
			require.Contains(t, resp.Detail[0].Msg, "not a valid email address")
		})
	}
}

func TestRegister_FieldTooLong(t *testing.T) {
	env := newTestEnv(t)

	long := strings.Repeat("a", 31)
	rec := postRegister(t, env, `{
		"email": "user@example.com",
		"username": "`+long+`",
		"name": "Test User",
		"password": "TestPassword1!"
	}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Detail, 1)
	require.Equal(t, []string{"body", "username"}, resp.Detail[0].Loc)
	require.Equal(t, "string_too_long", resp.Detail[0].Type)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	rec := postRegister(t, env, validRegisterBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postRegister(t, env, strings.Replace(validRegisterBody, "testuser", "otheruser", 1))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, CodeUserAlreadyExists, resp.Detail.Code)
	require.NotEmpty(t, resp.Detail.Reason)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)

	rec := postRegister(t, env, validRegisterBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postRegister(t, env, strings.Replace(validRegisterBody, "user@example.com", "other@example.com", 1))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, CodeUsernameAlreadyExists, resp.Detail.Code)
}

func TestRegister_WeakPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := postRegister(t, env, strings.Replace(validRegisterBody, "TestPassword1!", "weakpass", 1))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, CodeInvalidPassword, resp.Detail.Code)
	require.Contains(t, resp.Detail.Reason, "at least 8 characters")
}

func TestRegister_PasswordContainsUserInfo(t *testing.T) {
	env := newTestEnv(t)

	rec := postRegister(t, env, strings.Replace(validRegisterBody, "TestPassword1!", "Testuser1!123", 1))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, CodePasswordContainsPII, resp.Detail.Code)
}
