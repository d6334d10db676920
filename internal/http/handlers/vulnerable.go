package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/tkowalczyk/owasp-demo-be/internal/http/respond"
	"github.com/tkowalczyk/owasp-demo-be/internal/models"
	"github.com/tkowalczyk/owasp-demo-be/internal/storage"
)

// VulnerableHandler serves the deliberately insecure endpoint family used as
// the baseline in the demo. Nothing here is a production code path: the
// search is injectable, the user lookup is an IDOR, and errors leak driver
// detail on purpose so the classroom can see what leaking looks like.
type VulnerableHandler struct {
	store storage.UserStore
}

// NewVulnerableHandler constructs the handler.
func NewVulnerableHandler(store storage.UserStore) *VulnerableHandler {
	return &VulnerableHandler{store: store}
}

// Register attaches the vulnerable routes. Note the absence of the auth gate.
func (h *VulnerableHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /vulnerable/search", h.handleSearch)
	mux.HandleFunc("GET /vulnerable/users/{id}", h.handleUserByID)
}

func (h *VulnerableHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	// VULNERABLE: the raw query string reaches the database unescaped.
	results, err := h.store.SearchByEmailUnsafe(r.Context(), req.Query)
	if err != nil {
		// VULNERABLE: surfaces the driver error to the client.
		respond.JSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Error executing query",
			"error":   err.Error(),
		})
		return
	}

	respond.JSON(w, http.StatusOK, map[string][]models.UserSummary{"results": results})
}

func (h *VulnerableHandler) handleUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	// VULNERABLE: no authentication, no ownership check; any caller can
	// read any user's full profile including the SSN.
	profile, err := h.store.FindUserWithProfileByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "User not found")
			return
		}
		respond.JSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Server error",
			"error":   err.Error(),
		})
		return
	}

	respond.JSON(w, http.StatusOK, profile)
}
