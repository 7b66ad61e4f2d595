package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/lecture-eval/pkg/audit"
	"github.com/doodlesbykumbi/lecture-eval/pkg/config"
	"github.com/doodlesbykumbi/lecture-eval/pkg/metrics"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/middleware"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store"
)

// Stores groups the storage backends the server reads and writes
type Stores struct {
	Users       store.UsersStore
	Lecturers   store.LecturersStore
	Evaluations store.EvaluationsStore
	Health      store.HealthStore
}

type Server struct {
	Router *mux.Router

	UsersStore       store.UsersStore
	LecturersStore   store.LecturersStore
	EvaluationsStore store.EvaluationsStore
	HealthStore      store.HealthStore

	Logger     *zap.Logger
	Metrics    *metrics.Metrics
	Auditor    *audit.Auditor
	AdminToken *middleware.AdminTokenAuthenticator

	config atomic.Pointer[config.EvalConfig]
	srv    *http.Server
}

func NewServer(
	stores Stores,
	cfg *config.EvalConfig,
	logger *zap.Logger,
	host string,
	port string,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := mux.NewRouter()
	s := &Server{
		Router:           router,
		UsersStore:       stores.Users,
		LecturersStore:   stores.Lecturers,
		EvaluationsStore: stores.Evaluations,
		HealthStore:      stores.Health,
		Logger:           logger,
		Metrics:          metrics.New(),
		Auditor:          audit.NewAuditor(nil, nil, logger, false),
	}
	s.config.Store(cfg)
	s.AdminToken = middleware.NewAdminTokenAuthenticator(func() string {
		return s.Config().AdminTokenSecret
	})

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	router.Use(s.Metrics.Middleware)

	s.srv = &http.Server{
		Addr:              net.JoinHostPort(host, port),
		WriteTimeout:      15 * time.Second,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Config returns the active configuration
func (s *Server) Config() *config.EvalConfig {
	return s.config.Load()
}

// SetConfig swaps the active configuration. CORS settings are read when the
// handler is built and need a restart to change.
func (s *Server) SetConfig(cfg *config.EvalConfig) {
	s.config.Store(cfg)
}

// Handler wraps the router with recovery, request IDs, access logging and CORS
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.Router
	h = corsHandler(s.Config().CORSAllowedOrigins)(h)
	h = middleware.AccessLog(s.Logger)(h)
	h = middleware.RequestID(h)
	h = middleware.Recover(s.Logger)(h)
	return h
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.srv.Addr
}

func (s *Server) Start() error {
	s.srv.Handler = s.Handler()
	return s.srv.ListenAndServe()
}

// StartWithListener serves on an existing listener
func (s *Server) StartWithListener(l net.Listener) error {
	s.srv.Handler = s.Handler()
	return s.srv.Serve(l)
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
