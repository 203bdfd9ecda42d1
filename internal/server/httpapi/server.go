// Package httpapi serves the vault over a JSON HTTP API under /api.
//
// Every response is an envelope {"error": <name or null>, "result": {...}}.
// The session token is read from "Authorization: Bearer <token>" or from an
// api_key query parameter.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/onepass/internal/logging"
	"github.com/dmitrijs2005/onepass/internal/server/ratelimit"
	"github.com/dmitrijs2005/onepass/internal/server/services"
	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address string
	keeper  services.KeeperService
	limiter *ratelimit.Limiter
	logger  logging.Logger
}

func NewHTTPServer(address string, k services.KeeperService, limiter *ratelimit.Limiter, l logging.Logger) *HTTPServer {
	if l == nil {
		l = logging.Nop{}
	}
	return &HTTPServer{
		address: address,
		keeper:  k,
		limiter: limiter,
		logger:  l.With("module", "http_server"),
	}
}

// Handler returns the router with all routes and middleware installed.
func (s *HTTPServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)

	a := r.PathPrefix("/api").Subrouter()
	a.HandleFunc("/ping", s.ping).Methods(http.MethodGet)

	a.Handle("/auth/login", s.throttle(http.HandlerFunc(s.login))).Methods(http.MethodPost)
	a.HandleFunc("/auth/logout", s.logout).Methods(http.MethodPost)
	a.HandleFunc("/auth/status", s.status).Methods(http.MethodGet)

	a.Handle("/user/add", s.throttle(http.HandlerFunc(s.register))).Methods(http.MethodPost)
	a.HandleFunc("/user", s.changePassword).Methods(http.MethodPut)
	a.HandleFunc("/user", s.deleteAccount).Methods(http.MethodDelete)

	a.HandleFunc("/vault", s.list).Methods(http.MethodGet)
	a.HandleFunc("/vault", s.add).Methods(http.MethodPost)
	a.HandleFunc("/vault/search", s.search).Methods(http.MethodGet)
	a.HandleFunc("/vault/{id:[0-9]+}", s.get).Methods(http.MethodGet)
	a.HandleFunc("/vault/{id:[0-9]+}", s.update).Methods(http.MethodPut)
	a.HandleFunc("/vault/{id:[0-9]+}", s.delete).Methods(http.MethodDelete)
	a.HandleFunc("/vault/{id:[0-9]+}/check", s.check).Methods(http.MethodGet)

	a.HandleFunc("/check-password", s.checkPassword).Methods(http.MethodPost)

	// subrouters do not inherit these from r
	for _, m := range []*mux.Router{r, a} {
		m.NotFoundHandler = http.HandlerFunc(notFound)
		m.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	}

	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "NotFound", nil)
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", nil)
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *HTTPServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve handles requests on lis until ctx is cancelled, then shuts down.
func (s *HTTPServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			s.logger.Error(sctx, "HTTP shutdown", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
