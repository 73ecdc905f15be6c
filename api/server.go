package api

import (
	"context"
	"net/http"
	"time"
)

// Server represents the Kernel's HTTP API surface (spec §6) consumed
// by the gateway collaborator.
type Server struct {
	handlers   *Handlers
	httpServer *http.Server
}

// NewServer creates a new Server instance wired from deps and listening
// on addr.
func NewServer(addr string, deps Deps) *Server {
	handlers := NewHandlers(deps)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /status", handlers.HandleStatus)
	mux.HandleFunc("GET /health", handlers.HandleHealth)
	mux.HandleFunc("GET /doctor", handlers.HandleHealth)
	mux.HandleFunc("GET /swarm", handlers.HandleSwarm)
	mux.HandleFunc("GET /memory/search", handlers.HandleMemorySearch)
	mux.HandleFunc("GET /memory/stats", handlers.HandleMemoryStats)
	mux.HandleFunc("GET /policy/pending", handlers.HandlePolicyPending)
	mux.HandleFunc("POST /policy/approve/{id}", handlers.HandlePolicyApprove)
	mux.HandleFunc("POST /policy/reject/{id}", handlers.HandlePolicyReject)
	mux.HandleFunc("POST /auth", handlers.HandleAuth)

	return &Server{
		handlers: handlers,
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start starts the HTTP server. Blocks until the server is stopped or
// an error occurs.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handlers returns the Handlers for testing purposes.
func (s *Server) Handlers() *Handlers {
	return s.handlers
}
