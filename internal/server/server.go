// Package server provides the HTTP and WebSocket surface of the
// recitation tutor: the practice socket, the curriculum and progress
// API, the session history API, and the camera preview stream.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/naufalhakim/iqro-isyarat/internal/audio"
	"github.com/naufalhakim/iqro-isyarat/internal/capture"
	"github.com/naufalhakim/iqro-isyarat/internal/curriculum"
	"github.com/naufalhakim/iqro-isyarat/internal/server/api"
	"github.com/naufalhakim/iqro-isyarat/internal/stability"
	"github.com/naufalhakim/iqro-isyarat/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir  string
	Store      *store.Store
	Curriculum *curriculum.Curriculum
	Audio      *audio.Catalog
	Stability  stability.Config
	CooldownMs int64

	// Camera, when set, enables the MJPEG preview stream.
	Camera capture.Camera

	// Practice, when set, exposes the local camera session over the
	// progress API. Browser sessions opened through the practice socket
	// carry their own state and are unaffected.
	Practice api.PracticeController
}

// Server is the HTTP server for the recitation tutor.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Curriculum != nil {
		s.mux.Handle("/api/curriculum", api.NewCurriculumHandler(s.config.Curriculum))

		practiceHandler := NewPracticeHandler(PracticeConfig{
			Curriculum: s.config.Curriculum,
			Stability:  s.config.Stability,
			CooldownMs: s.config.CooldownMs,
			Store:      s.config.Store,
			Audio:      s.config.Audio,
		})
		s.mux.Handle("/api/practice", practiceHandler)
	}

	if s.config.Practice != nil {
		progressHandler := api.NewProgressHandler(s.config.Practice)
		s.mux.Handle("/api/state", progressHandler)
		s.mux.Handle("/api/goto", progressHandler)
		s.mux.Handle("/api/reset", progressHandler)
	}

	if s.config.Store != nil {
		sessionsHandler := api.NewSessionsHandler(s.config.Store)
		s.mux.Handle("/api/sessions", sessionsHandler)
		s.mux.Handle("/api/sessions/", sessionsHandler)
	}

	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}

	if s.config.Audio != nil {
		audioFS := http.FileServer(http.Dir(s.config.Audio.Dir()))
		s.mux.Handle("/audio/", http.StripPrefix("/audio/", audioFS))
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
