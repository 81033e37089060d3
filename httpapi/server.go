package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/gourmoire/authkit"
	"github.com/gourmoire/authkit/middleware"
)

// Server wires the engine and the system of record into an HTTP router.
type Server struct {
	engine *authkit.Engine
	users  authkit.UserProvider
	log    *zap.Logger
}

// NewServer builds the HTTP surface. users is the same provider the engine
// was built with; the profile route reads it directly.
func NewServer(engine *authkit.Engine, users authkit.UserProvider, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		engine: engine,
		users:  users,
		log:    log,
	}
}

// Router returns the configured route tree.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	requireAuth := middleware.RequireAuth(s.engine)
	requireRefresh := middleware.RequireRefreshToken(s.engine)

	r.HandleFunc("/api/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.Handle("/api/auth/refresh", requireRefresh(http.HandlerFunc(s.handleRefresh))).Methods(http.MethodPost)
	r.Handle("/api/auth/logout", requireAuth(http.HandlerFunc(s.handleLogout))).Methods(http.MethodPost)
	r.Handle("/api/user/profile", requireAuth(http.HandlerFunc(s.handleProfile))).Methods(http.MethodGet)
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
	return r
}
