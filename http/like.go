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

func (s *Server) registerLikeRoutes(r *mux.Router) {
	r.HandleFunc("/like/{message_id:[0-9]+}", s.requireAuth(s.handleCreateLike)).Methods("POST")
	r.HandleFunc("/like/{message_id:[0-9]+}", s.requireAuth(s.handleDeleteLike)).Methods("DELETE")
}

// handleCreateLike handles the route "POST /like/{message_id}".
// The authenticated user likes the message with the given id.
// Liking a message twice returns a conflict.
func (s *Server) handleCreateLike(w http.ResponseWriter, r *http.Request) {
	messageID, err := strconv.Atoi(mux.Vars(r)["message_id"])
	if err != nil || messageID <= 0 {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid id format."))
		return
	}

	like := domain.Like{
		UserID:    userFromContext(r.Context()).ID,
		MessageID: messageID,
	}

	err = s.services.Transaction(r.Context(), func(tx *crud.Services) error {
		return tx.Like.Create(r.Context(), &like)
	})
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(&like); err != nil {
		errs.LogError(r, err)
	}
}

// handleDeleteLike handles the route "DELETE /like/{message_id}".
// The authenticated user unlikes the message with the given id.
// Unliking a message they haven't liked is a no-op.
func (s *Server) handleDeleteLike(w http.ResponseWriter, r *http.Request) {
	messageID, err := strconv.Atoi(mux.Vars(r)["message_id"])
	if err != nil || messageID <= 0 {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid id format."))
		return
	}

	like := domain.Like{
		UserID:    userFromContext(r.Context()).ID,
		MessageID: messageID,
	}

	err = s.services.Transaction(r.Context(), func(tx *crud.Services) error {
		return tx.Like.Delete(r.Context(), &like)
	})
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
