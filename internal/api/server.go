// Package api is the HTTP surface of the reading service. It hands parsed
// section trees and navigation indexes to rendering collaborators, hosts
// reader sessions, and accepts fragment save requests.
package api

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/dgallion1/regreader/internal/config"
	"github.com/dgallion1/regreader/internal/docstore"
	"github.com/dgallion1/regreader/internal/pipeline"
	"github.com/dgallion1/regreader/internal/reader"
	"github.com/dgallion1/regreader/internal/render"
	"github.com/dgallion1/regreader/internal/section"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server is the HTTP API server for regreader.
type Server struct {
	router   chi.Router
	docs     *docstore.Store
	sessions *reader.SessionStore
	orch     *pipeline.Orchestrator
	parser   *section.Parser
	renderer *render.Renderer
	log      *slog.Logger
	cfg      config.Config

	mu        sync.Mutex
	recorders map[string]*scrollRecorder
}

// NewServer creates and configures the HTTP server.
func NewServer(docs *docstore.Store, sessions *reader.SessionStore, orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		docs:     docs,
		sessions: sessions,
		orch:     orch,
		parser:   section.NewParser(log),
		renderer: render.New(log),
		log:      log,
		cfg:      cfg,

		recorders: make(map[string]*scrollRecorder),
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/documents", s.handleCreateDocument)
		r.Post("/api/documents/upload", s.handleUploadDocument)
		r.Get("/api/documents", s.handleListDocuments)
		r.Get("/api/documents/{docID}", s.handleGetDocument)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)
		r.Get("/api/documents/{docID}/sections", s.handleSections)
		r.Get("/api/documents/{docID}/nav", s.handleNav)
		r.Get("/api/documents/{docID}/extract", s.handleExtract)

		r.Post("/api/documents/{docID}/fragments", s.handleSaveFragment)
		r.Get("/api/fragments/{jobID}", s.handleFragmentJob)

		r.Post("/api/readers", s.handleCreateReader)
		r.Get("/api/readers/{readerID}", s.handleReaderState)
		r.Delete("/api/readers/{readerID}", s.handleDeleteReader)
		r.Post("/api/readers/{readerID}/navigate", s.handleNavigate)
		r.Post("/api/readers/{readerID}/transition", s.handleTransitionDone)
		r.Post("/api/readers/{readerID}/expand-all", s.handleExpandAll)
		r.Post("/api/readers/{readerID}/collapse-all", s.handleCollapseAll)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
