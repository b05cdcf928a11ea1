package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/torchlight/pkg/api/handlers"
	"github.com/cbodonnell/torchlight/pkg/api/middleware"
	"github.com/cbodonnell/torchlight/pkg/log"
	"github.com/cbodonnell/torchlight/pkg/repositories"
	"github.com/cbodonnell/torchlight/pkg/state"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port         int
	TLS          *TLSConfig
	StateManager state.StateManager
	Repository   repositories.Repository
}

// NewAPIServer creates a new http.Server for the read-only status API
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewRouter(opts.StateManager, opts.Repository),
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// NewRouter registers the API routes
func NewRouter(stateManager state.StateManager, repository repositories.Repository) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.NewLoggingMiddleware(), middleware.NewCORSMiddleware())
	r.HandleFunc("/healthz", handlers.HandleHealthz()).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/players", handlers.HandleListPlayers(stateManager)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/players/{clientID}", handlers.HandleGetPlayer(stateManager)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/inventories/{name}", handlers.HandleGetInventory(repository)).Methods(http.MethodGet, http.MethodOptions)
	return r
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
