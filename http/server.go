package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"warbler/crud"
	"warbler/domain"
	"warbler/errs"
)

// Server provides the http functionality of the app: routing, request
// handling and middleware. It authenticates requests and hands the work
// over to the crud services, wrapping every mutating request in one
// database transaction that commits on success and rolls back on error.
type Server struct {
	router   *mux.Router
	services *crud.Services
}

// NewServer returns a new instance of the server and registers all routes.
func NewServer(services *crud.Services) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		services: services,
	}

	s.registerAuthRoutes(s.router)
	s.registerUserRoutes(s.router)
	s.registerMessageRoutes(s.router)
	s.registerFollowRoutes(s.router)
	s.registerLikeRoutes(s.router)

	s.router.Use(setContentTypeJSON)
	return s
}

// ServeHTTP makes the server a http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run starts to listen and serve on the specified port.
func (s *Server) Run(port int) error {
	return http.ListenAndServe(fmt.Sprintf(":%d", port), s.router)
}

// The setContentTypeJSON middleware sets the content type to "application/json".
func setContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// requireAuth authenticates the request's basic-auth credentials and puts the
// user into the request context. There is no session state; every request
// carries its credentials. The store already collapses unknown-username and
// wrong-password into one generic error, so nothing leaks here either.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "Invalid credentials."))
			return
		}
		user, err := s.services.User.Authenticate(r.Context(), username, password)
		if err != nil {
			errs.ReturnError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(newContextWithUser(r.Context(), user)))
	}
}

// maybeAuth is like requireAuth, but lets unauthenticated requests through
// without a user in the context. Read-only routes use it so anonymous
// visitors can browse profiles.
func (s *Server) maybeAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		user, err := s.services.User.Authenticate(r.Context(), username, password)
		if err != nil {
			errs.ReturnError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(newContextWithUser(r.Context(), user)))
	}
}

type contextKey int

const userContextKey contextKey = 1

// newContextWithUser returns a copy of ctx carrying the authenticated user.
func newContextWithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// userFromContext returns the authenticated user, or nil for anonymous requests.
func userFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}
