package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"warbler/crud"
	"warbler/errs"
)

func (s *Server) registerUserRoutes(r *mux.Router) {
	// Get the profile data of a specific user.
	r.HandleFunc("/profile/{username}", s.maybeAuth(s.handleGetProfile)).Methods("GET")

	// Delete the authenticated user's account.
	r.HandleFunc("/account", s.requireAuth(s.handleDeleteAccount)).Methods("DELETE")
}

// handleGetProfile handles the route "GET /profile/{username}".
// It returns the user's profile: their data, messages, follow counts, and,
// for authenticated viewers, the follow and like flags.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	viewerID := 0
	if viewer := userFromContext(r.Context()); viewer != nil {
		viewerID = viewer.ID
	}

	profile, err := s.services.Profile.Profile(r.Context(), username, viewerID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(profile); err != nil {
		errs.LogError(r, err)
	}
}

// handleDeleteAccount handles the route "DELETE /account".
// It deletes the authenticated user's account. The user's messages, follows
// and likes go with it, atomically within the transaction.
func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	err := s.services.Transaction(r.Context(), func(tx *crud.Services) error {
		return tx.User.Delete(r.Context(), user.ID)
	})
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
