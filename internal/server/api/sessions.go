package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/naufalhakim/iqro-isyarat/internal/store"
)

// SessionsHandler serves the practice history recorded in the store.
type SessionsHandler struct {
	store *store.Store
}

// NewSessionsHandler creates a SessionsHandler with the given store.
func NewSessionsHandler(s *store.Store) *SessionsHandler {
	return &SessionsHandler{store: s}
}

// ServeHTTP routes session history requests.
// Expected paths: /api/sessions, /api/sessions/{id}, /api/sessions/{id}/attempts.
func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/sessions")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		h.list(w)
		return
	}

	if id, ok := strings.CutSuffix(path, "/attempts"); ok {
		h.attempts(w, id)
		return
	}

	h.get(w, path)
}

type sessionResponse struct {
	ID            string `json:"id"`
	ClientInfo    string `json:"client_info"`
	StartedAt     string `json:"started_at"`
	EndedAt       string `json:"ended_at,omitempty"`
	TotalAttempts int    `json:"total_attempts"`
}

type sessionDetailResponse struct {
	sessionResponse
	Stats store.AttemptStats `json:"stats"`
}

type listSessionsResponse struct {
	Sessions []sessionResponse `json:"sessions"`
}

type attemptResponse struct {
	ID         int64  `json:"id"`
	AyatIndex  int    `json:"ayat_index"`
	ChunkIndex int    `json:"chunk_index"`
	Chunk      string `json:"chunk"`
	Zona       int    `json:"zona"`
	Harakat    int    `json:"harakat"`
	Correct    bool   `json:"correct"`
	IsSyaddah  bool   `json:"is_syaddah"`
	CreatedAt  string `json:"created_at"`
}

type listAttemptsResponse struct {
	Attempts []attemptResponse `json:"attempts"`
}

func toSessionResponse(sess *store.Session) sessionResponse {
	resp := sessionResponse{
		ID:            sess.ID,
		ClientInfo:    sess.ClientInfo,
		StartedAt:     sess.StartedAt.Format(time.RFC3339),
		TotalAttempts: sess.TotalAttempts,
	}
	if sess.EndedAt.Valid {
		resp.EndedAt = sess.EndedAt.Time.Format(time.RFC3339)
	}
	return resp
}

// list handles GET /api/sessions.
func (h *SessionsHandler) list(w http.ResponseWriter) {
	sessions, err := h.store.Sessions().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	response := listSessionsResponse{
		Sessions: make([]sessionResponse, 0, len(sessions)),
	}
	for _, sess := range sessions {
		response.Sessions = append(response.Sessions, toSessionResponse(sess))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/sessions/{id}.
func (h *SessionsHandler) get(w http.ResponseWriter, id string) {
	sess, err := h.store.Sessions().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	stats, err := h.store.Attempts().StatsBySession(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get session stats")
		return
	}

	writeJSON(w, http.StatusOK, sessionDetailResponse{
		sessionResponse: toSessionResponse(sess),
		Stats:           stats,
	})
}

// attempts handles GET /api/sessions/{id}/attempts.
func (h *SessionsHandler) attempts(w http.ResponseWriter, id string) {
	if _, err := h.store.Sessions().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	attempts, err := h.store.Attempts().ListBySession(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list attempts")
		return
	}

	response := listAttemptsResponse{
		Attempts: make([]attemptResponse, 0, len(attempts)),
	}
	for _, a := range attempts {
		response.Attempts = append(response.Attempts, attemptResponse{
			ID:         a.ID,
			AyatIndex:  a.AyatIndex,
			ChunkIndex: a.ChunkIndex,
			Chunk:      a.Chunk,
			Zona:       a.Zona,
			Harakat:    a.Harakat,
			Correct:    a.Correct,
			IsSyaddah:  a.IsSyaddah,
			CreatedAt:  a.CreatedAt.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, response)
}
