// Package server exposes the generation pipeline over HTTP: one endpoint to
// generate a document, one to download it, and a health check.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"reportforge/internal/config"
	"reportforge/internal/intelligence"
)

// Generator is the pipeline surface the server depends on.
type Generator interface {
	Generate(ctx context.Context, sections []intelligence.Section) ([]byte, error)
}

// Server wires the generation pipeline to HTTP routes.
type Server struct {
	cfg       *config.Config
	generator Generator
}

func New(cfg *config.Config, generator Generator) *Server {
	return &Server{cfg: cfg, generator: generator}
}

// Routes builds the router. Exposed separately so tests can drive the
// handlers through httptest without binding a port.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.HealthHandler).Methods("GET")
	r.HandleFunc("/generate-pdf", s.GenerateHandler).Methods("POST")
	r.HandleFunc("/download/{filename}", s.DownloadHandler).Methods("GET")

	return r
}

// ListenAndServe blocks serving HTTP on the configured host and port.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	log.Printf("reportforge server is running on %s", addr)
	return http.ListenAndServe(addr, s.Routes())
}
