// Package server exposes the analyzer, generator, deploy invoker and chat
// proxy over a local HTTP API, with an embedded single-page UI.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
)

// DefaultAddr binds to loopback only. The API shells out to the deploy
// CLI with the caller's credentials, so it must not be reachable from
// the network.
const DefaultAddr = "127.0.0.1:5886"

type Server struct {
	httpServer *http.Server
}

func New(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) Start() error {
	fmt.Fprintf(os.Stderr, "[server] listening on http://%s\n", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// NewMux wires all API routes onto a fresh mux. Handlers carries the
// injected components; there is no package-level state.
func NewMux(h *Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/analyze", h.handleAnalyze)
	mux.HandleFunc("POST /api/read-file", h.handleReadFile)
	mux.HandleFunc("POST /api/generate", h.handleGenerate)
	mux.HandleFunc("POST /api/login", h.handleLogin)
	mux.HandleFunc("POST /api/init-site", h.handleInitSite)
	mux.HandleFunc("POST /api/update-domain", h.handleUpdateDomain)
	mux.HandleFunc("POST /api/deploy", h.handleDeploy)
	mux.HandleFunc("POST /api/run-command", h.handleRunCommand)
	mux.HandleFunc("POST /api/chat", h.handleChat)
	mux.HandleFunc("POST /api/test-connection", h.handleTestConnection)

	mux.HandleFunc("GET /api/browse-folder", h.handleBrowseFolder)
	mux.HandleFunc("GET /api/list-teams", h.handleListTeams)
	mux.HandleFunc("GET /api/list-sites", h.handleListSites)
	mux.HandleFunc("GET /api/check-cli", h.handleCheckCLI)
	mux.HandleFunc("GET /api/history", h.handleHistory)

	mux.HandleFunc("GET /", h.handleIndex)

	return mux
}
