package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"warbler/crud"
	"warbler/domain"
	"warbler/errs"
)

func (s *Server) registerAuthRoutes(r *mux.Router) {
	// Create a new account.
	r.HandleFunc("/signup", s.handleSignup).Methods("POST")

	// Verify credentials and return the account.
	r.HandleFunc("/login", s.handleLogin).Methods("POST")
}

// handleSignup handles the route "POST /signup".
// It reads user data from the json body and creates the account inside a
// transaction. A duplicate username or email rolls the transaction back
// and returns a conflict.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var user domain.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid signup data."))
		return
	}

	err := s.services.Transaction(r.Context(), func(tx *crud.Services) error {
		return tx.User.Signup(r.Context(), &user)
	})
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(&user); err != nil {
		errs.LogError(r, err)
	}
}

// loginRequest is the json body of a login request.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin handles the route "POST /login".
// It verifies the submitted credentials and returns the user. Failures are
// always the same generic unauthorized response, whether the username was
// unknown or the password wrong.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid login data."))
		return
	}

	user, err := s.services.User.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(user); err != nil {
		errs.LogError(r, err)
	}
}
