package api

import (
	"encoding/json"
	"net/http"

	"github.com/naufalhakim/iqro-isyarat/internal/engine"
)

// PracticeController is the slice of a practice session the progress
// API operates on.
type PracticeController interface {
	State() engine.State
	AyatChunks() []engine.ChunkStatus
	GoToAyat(index int)
	Reset()
}

// ProgressHandler exposes the local practice session over HTTP: state
// snapshots plus ayat navigation.
type ProgressHandler struct {
	practice PracticeController
}

// NewProgressHandler creates a ProgressHandler over the given controller.
func NewProgressHandler(p PracticeController) *ProgressHandler {
	return &ProgressHandler{practice: p}
}

type gotoRequest struct {
	Index int `json:"index"`
}

type stateResponse struct {
	State  engine.State         `json:"state"`
	Chunks []engine.ChunkStatus `json:"chunks"`
}

// ServeHTTP routes /api/state, /api/goto, and /api/reset.
func (h *ProgressHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/state":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.state(w)

	case "/api/goto":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.goTo(w, r)

	case "/api/reset":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.practice.Reset()
		h.state(w)

	default:
		http.NotFound(w, r)
	}
}

func (h *ProgressHandler) state(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, stateResponse{
		State:  h.practice.State(),
		Chunks: h.practice.AyatChunks(),
	})
}

// goTo jumps to an ayat. An out-of-range index leaves the position
// unchanged; the returned state shows what actually happened.
func (h *ProgressHandler) goTo(w http.ResponseWriter, r *http.Request) {
	var req gotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	h.practice.GoToAyat(req.Index)
	h.state(w)
}
