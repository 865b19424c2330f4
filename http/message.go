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

func (s *Server) registerMessageRoutes(r *mux.Router) {
	// Post a new message.
	r.HandleFunc("/messages", s.requireAuth(s.handleCreateMessage)).Methods("POST")

	// Delete one of the user's own messages.
	r.HandleFunc("/messages/{message_id:[0-9]+}", s.requireAuth(s.handleDeleteMessage)).Methods("DELETE")

	// List the messages the user has liked.
	r.HandleFunc("/likes", s.requireAuth(s.handleLikedMessages)).Methods("GET")
}

// handleCreateMessage handles the route "POST /messages".
// It reads the message text from the json body and posts it as the
// authenticated user.
func (s *Server) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	var message domain.Message
	if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid message data."))
		return
	}
	message.ID = 0
	message.UserID = userFromContext(r.Context()).ID

	err := s.services.Transaction(r.Context(), func(tx *crud.Services) error {
		return tx.Message.Create(r.Context(), &message)
	})
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(&message); err != nil {
		errs.LogError(r, err)
	}
}

// handleDeleteMessage handles the route "DELETE /messages/{message_id}".
// Only the owner may delete a message. Its likes are removed with it.
func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	messageID, err := strconv.Atoi(mux.Vars(r)["message_id"])
	if err != nil || messageID <= 0 {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid id format."))
		return
	}
	user := userFromContext(r.Context())

	err = s.services.Transaction(r.Context(), func(tx *crud.Services) error {
		message, err := tx.Message.ByID(r.Context(), messageID)
		if err != nil {
			return err
		}
		if message.UserID != user.ID {
			return errs.Errorf(errs.EUNAUTHORIZED, "You are not allowed to delete this message.")
		}
		return tx.Message.Delete(r.Context(), message)
	})
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleLikedMessages handles the route "GET /likes".
// It returns all messages the authenticated user has liked.
func (s *Server) handleLikedMessages(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	messages, err := s.services.Like.LikedMessages(r.Context(), user.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(messages); err != nil {
		errs.LogError(r, err)
	}
}
