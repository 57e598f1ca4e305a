package server

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"tailscale.com/client/local"

	"github.com/bradpignatello/wellivian/internal/coach"
	ouraingest "github.com/bradpignatello/wellivian/internal/ingest/oura"
	"github.com/bradpignatello/wellivian/internal/oura"
	"github.com/bradpignatello/wellivian/internal/pairing"
	"github.com/bradpignatello/wellivian/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db      *storage.DB
	ingest  *ouraingest.Provider
	wear    *oura.Client
	coach   *coach.Client
	muscles pairing.Map
	log     *slog.Logger
	apiKey  string
	lc      *local.Client
	router  chi.Router
}

// New creates a new Server with all routes configured. The wearable and
// coach clients may be nil; their endpoints then return 503.
func New(db *storage.DB, provider *ouraingest.Provider, wear *oura.Client, coachClient *coach.Client, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:      db,
		ingest:  provider,
		wear:    wear,
		coach:   coachClient,
		muscles: pairing.DefaultMap(),
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetTailscale switches identity resolution from the dev fallback to
// WhoIs lookups against the tsnet local client.
func (s *Server) SetTailscale(lc *local.Client) {
	s.lc = lc
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identity)

	// Sync endpoint (API key required)
	s.router.Route("/api/v1/ingest", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/oura", s.handleOuraIngest)
	})

	// Dashboard API endpoints (no extra auth — tsnet handles access)
	s.router.Get("/api/v1/workouts", s.handleQueryWorkouts)
	s.router.Post("/api/v1/workouts", s.handleCreateWorkout)
	s.router.Get("/api/v1/workouts/{id}", s.handleGetWorkout)
	s.router.Delete("/api/v1/workouts/{id}", s.handleDeleteWorkout)

	s.router.Get("/api/v1/exercises", s.handleListExercises)
	s.router.Get("/api/v1/exercises/{name}/history", s.handleExerciseHistory)
	s.router.Get("/api/v1/exercises/{name}/stats", s.handleExerciseStats)
	s.router.Get("/api/v1/exercises/{name}/suggestion", s.handleExerciseSuggestion)
	s.router.Get("/api/v1/exercises/{name}/pairings", s.handleExercisePairings)
	s.router.Get("/api/v1/pairing", s.handlePairing)

	s.router.Get("/api/v1/wearables/summary", s.handleWearableSummary)
	s.router.Get("/api/v1/wearables/{scope}", s.handleWearableRange)

	s.router.Post("/api/v1/chat", s.handleChat)

	s.router.Get("/api/v1/templates", s.handleQueryTemplates)
	s.router.Post("/api/v1/templates", s.handleCreateTemplate)
	s.router.Get("/api/v1/templates/{id}", s.handleGetTemplate)
	s.router.Delete("/api/v1/templates/{id}", s.handleDeleteTemplate)

	s.router.Get("/api/v1/me", s.handleMe)
	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/imports", s.handleImports)
}

// SetFrontend mounts the embedded SPA filesystem.
// Unmatched routes serve index.html for client-side routing.
func (s *Server) SetFrontend(webFS fs.FS) {
	fileServer := http.FileServerFS(webFS)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		// Try to serve the exact file first
		f, err := webFS.Open(r.URL.Path[1:]) // strip leading /
		if err == nil {
			f.Close()
			fileServer.ServeHTTP(w, r)
			return
		}
		// Fallback to index.html for SPA routing
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})
}
