package http

import (
	"net/http"

	"github.com/codelane/identity/internal/identity/service"
	"github.com/codelane/identity/pkg/httpx"
	"github.com/codelane/identity/pkg/slogx"
)

// UserInfoHandler serves GET /auth/me for the authenticated user.
type UserInfoHandler struct {
	AuthService *service.AuthService
}

func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok || userID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.AuthService.CurrentUser(ctx, userID)
	if err != nil {
		log.Warn("failed to load user", "user_id", userID, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, newUserResponse(user))
}
