// Package hook provides discovery and execution of external feedback
// hooks: small executables that react to practice events, such as
// lighting a lamp on a correct recitation or logging to a classroom
// dashboard.
package hook

import "encoding/json"

// Event names dispatched to hooks.
const (
	EventAttempt       = "attempt"
	EventAyatComplete  = "ayat_complete"
	EventSurahComplete = "surah_complete"
)

// Manifest describes a hook's metadata and the events it subscribes to.
type Manifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Executable  string   `json:"executable"`
	Events      []string `json:"events"`
}

// Request is the payload sent to a hook on its stdin.
type Request struct {
	Event      string `json:"event"`
	SessionID  string `json:"sessionId"`
	AyatIndex  int    `json:"ayatIndex"`
	ChunkIndex int    `json:"chunkIndex"`
	Chunk      string `json:"chunk"`
	Zona       int    `json:"zona"`
	Harakat    int    `json:"harakat"`
	Correct    bool   `json:"correct"`
	IsSyaddah  bool   `json:"isSyaddah"`
}

// Response is what a hook prints to its stdout.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Hook is a discovered hook with its manifest and location.
type Hook struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// Subscribed reports whether the hook listens for the given event. A
// manifest with no events listed receives everything.
func (h *Hook) Subscribed(event string) bool {
	if len(h.Manifest.Events) == 0 {
		return true
	}
	for _, e := range h.Manifest.Events {
		if e == event {
			return true
		}
	}
	return false
}
