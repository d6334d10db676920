package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/tkowalczyk/owasp-demo-be/internal/http/respond"
	"github.com/tkowalczyk/owasp-demo-be/internal/models"
	"github.com/tkowalczyk/owasp-demo-be/internal/models/dto"
	"github.com/tkowalczyk/owasp-demo-be/internal/storage"
)

// SearchHandler serves the secure email search, the parameterized half of
// the SQL injection demonstration.
type SearchHandler struct {
	store storage.UserStore
}

// NewSearchHandler constructs the handler.
func NewSearchHandler(store storage.UserStore) *SearchHandler {
	return &SearchHandler{store: store}
}

// Register attaches the secure search route.
func (h *SearchHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /secure/search", h.handleSearch)
}

func (h *SearchHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.store.SearchByEmail(r.Context(), req.Query)
	if err != nil {
		log.Printf("search error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "an error occurred while processing your request")
		return
	}

	respond.JSON(w, http.StatusOK, map[string][]models.UserSummary{"results": results})
}
