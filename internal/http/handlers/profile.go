package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/tkowalczyk/owasp-demo-be/internal/http/respond"
	"github.com/tkowalczyk/owasp-demo-be/internal/middleware"
	"github.com/tkowalczyk/owasp-demo-be/internal/models/dto"
	"github.com/tkowalczyk/owasp-demo-be/internal/storage"
)

// ProfileHandler serves the authenticated self-profile lookup. The identity
// always comes from the verified token, never from the request.
type ProfileHandler struct {
	store storage.UserStore
}

// NewProfileHandler constructs the handler.
func NewProfileHandler(store storage.UserStore) *ProfileHandler {
	return &ProfileHandler{store: store}
}

// Register attaches the profile route behind the auth gate.
func (h *ProfileHandler) Register(mux *http.ServeMux, gate func(http.Handler) http.Handler) {
	mux.Handle("GET /secure/profile", gate(http.HandlerFunc(h.handleProfile)))
}

func (h *ProfileHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized: no token provided")
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		respond.Error(w, http.StatusForbidden, "forbidden: invalid token")
		return
	}

	profile, err := h.store.FindProfileByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("profile lookup error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "an error occurred")
		return
	}

	respond.JSON(w, http.StatusOK, dto.ProfileResponse{
		ID:             profile.ID,
		Email:          profile.Email,
		FullName:       profile.FullName,
		LastFourDigits: lastFour(profile.CreditCard),
	})
}

func lastFour(card string) string {
	if len(card) <= 4 {
		return card
	}
	return card[len(card)-4:]
}
