package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"warbler/crud"
	"warbler/domain"
	"warbler/errs"
)

func (s *Server) registerFollowRoutes(r *mux.Router) {
	r.HandleFunc("/follow/{followed_id:[0-9]+}", s.requireAuth(s.handleCreateFollow)).Methods("POST")
	r.HandleFunc("/follow/{followed_id:[0-9]+}", s.requireAuth(s.handleDeleteFollow)).Methods("DELETE")
}

// handleCreateFollow handles the route "POST /follow/{followed_id}".
// The authenticated user starts following the user with the given id.
// Following someone twice returns a conflict.
func (s *Server) handleCreateFollow(w http.ResponseWriter, r *http.Request) {
	followedID, err := strconv.Atoi(mux.Vars(r)["followed_id"])
	if err != nil || followedID <= 0 {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid id format."))
		return
	}

	follow := domain.Follow{
		FollowedUserID: followedID,
		FollowerUserID: userFromContext(r.Context()).ID,
	}

	err = s.services.Transaction(r.Context(), func(tx *crud.Services) error {
		return tx.Follow.Create(r.Context(), &follow)
	})
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(&follow); err != nil {
		errs.LogError(r, err)
	}
}

// handleDeleteFollow handles the route "DELETE /follow/{followed_id}".
// The authenticated user stops following the user with the given id.
// Unfollowing someone they don't follow is a no-op.
func (s *Server) handleDeleteFollow(w http.ResponseWriter, r *http.Request) {
	followedID, err := strconv.Atoi(mux.Vars(r)["followed_id"])
	if err != nil || followedID <= 0 {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid id format."))
		return
	}

	follow := domain.Follow{
		FollowedUserID: followedID,
		FollowerUserID: userFromContext(r.Context()).ID,
	}

	err = s.services.Transaction(r.Context(), func(tx *crud.Services) error {
		return tx.Follow.Delete(r.Context(), &follow)
	})
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
