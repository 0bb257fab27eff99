// Package engine sequences a learner through the curriculum, one
// confirmed gesture at a time.
package engine

import (
	"fmt"

	"github.com/naufalhakim/iqro-isyarat/internal/curriculum"
	"github.com/naufalhakim/iqro-isyarat/internal/stability"
)

// DefaultCooldownMs is the minimum gap between two confirmed
// evaluations. The stability tracker re-emits events every frame while
// a pose is held; the cooldown keeps one long hold from being scored
// repeatedly.
const DefaultCooldownMs = 500

// Status is the outcome of the most recent evaluation.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusCorrect Status = "correct"
	StatusWrong   Status = "wrong"
	StatusWaiting Status = "waiting"
)

// ChunkState is the progression state of one chunk in the current ayat.
type ChunkState string

const (
	ChunkPending ChunkState = "pending"
	ChunkCurrent ChunkState = "current"
	ChunkDone    ChunkState = "done"
)

// Result is what one call to Evaluate produced, consumed by the
// audio/animation collaborator. Evaluated is false when the call was
// suppressed (cooldown, release-debounce, or finished session) and no
// state changed.
type Result struct {
	Evaluated       bool               `json:"evaluated"`
	Correct         bool               `json:"correct"`
	AyatIndex       int                `json:"ayat_index"`
	ChunkIndex      int                `json:"chunk_index"`
	Chunk           string             `json:"chunk"`
	Expected        curriculum.Gesture `json:"expected"`
	ShouldPlayAudio bool               `json:"should_play_audio"`
	AyatComplete    bool               `json:"ayat_complete"`
	SurahComplete   bool               `json:"surah_complete"`
}

// State is a read-only snapshot for the progress renderer.
type State struct {
	AyatIndex     int     `json:"ayat_index"`
	ChunkIndex    int     `json:"chunk_index"`
	LastResult    Status  `json:"last_result"`
	Progress      float64 `json:"progress"`
	SurahComplete bool    `json:"surah_complete"`
}

// ChunkStatus pairs a chunk's text with its progression state.
type ChunkStatus struct {
	Text  string     `json:"text"`
	State ChunkState `json:"state"`
}

// Engine is the session-scoped finite-state sequencer. It is a
// single-writer state machine: one instance per learner session, no
// internal locking, callers feed events in order.
type Engine struct {
	curriculum *curriculum.Curriculum
	cooldownMs int64

	ayatIndex  int
	chunkIndex int
	lastResult Status

	lastConfirm       int64
	waitingForRelease bool
	lastSignature     string
}

// NewEngine creates an Engine over the given curriculum. A cooldown of
// zero or less selects the default.
func NewEngine(c *curriculum.Curriculum, cooldownMs int64) *Engine {
	if cooldownMs <= 0 {
		cooldownMs = DefaultCooldownMs
	}
	return &Engine{
		curriculum: c,
		cooldownMs: cooldownMs,
		lastResult: StatusIdle,
	}
}

// Evaluate scores one stable gesture event against the expected pose
// for the current chunk and advances on a correct match.
//
// Two guards keep a single sustained hold from advancing more than one
// chunk: evaluations within the cooldown of the previous confirmed one
// are suppressed outright, and after a correct match the engine waits
// for a release — events carrying the accepted signature are rejected
// until a differently-signed stable event arrives.
func (e *Engine) Evaluate(ev stability.StableZoneEvent) Result {
	if e.ayatIndex >= len(e.curriculum.Ayat) {
		return Result{SurahComplete: true}
	}

	if e.lastConfirm > 0 && ev.StableAt-e.lastConfirm < e.cooldownMs {
		return Result{}
	}

	signature := fmt.Sprintf("%d:%d", ev.Zona, ev.Harakat)
	if e.waitingForRelease {
		if signature == e.lastSignature {
			e.lastResult = StatusWaiting
			return Result{}
		}
		e.waitingForRelease = false
	}

	ayat := e.curriculum.Ayat[e.ayatIndex]
	chunk := ayat.Chunks[e.chunkIndex]
	expected := e.curriculum.Expected(chunk)

	result := Result{
		Evaluated:  true,
		AyatIndex:  e.ayatIndex,
		ChunkIndex: e.chunkIndex,
		Chunk:      chunk,
		Expected:   expected,
	}

	e.lastConfirm = ev.StableAt

	if ev.Zona != expected.Zona || ev.Harakat != expected.Harakat {
		e.lastResult = StatusWrong
		return result
	}

	e.lastResult = StatusCorrect
	e.waitingForRelease = true
	e.lastSignature = signature

	result.Correct = true
	result.ShouldPlayAudio = true

	e.chunkIndex++
	if e.chunkIndex >= len(ayat.Chunks) {
		result.AyatComplete = true
		e.ayatIndex++
		e.chunkIndex = 0
		if e.ayatIndex >= len(e.curriculum.Ayat) {
			result.SurahComplete = true
		}
	}

	return result
}

// GoToAyat jumps to the start of the given ayat. An out-of-range index
// is silently ignored. The caller must also reset the stability
// tracker so a stale held gesture cannot score against the new target.
func (e *Engine) GoToAyat(index int) {
	if index < 0 || index >= len(e.curriculum.Ayat) {
		return
	}
	e.ayatIndex = index
	e.chunkIndex = 0
	e.clearTransient()
}

// Reset returns the session to the first chunk of the first ayat.
func (e *Engine) Reset() {
	e.ayatIndex = 0
	e.chunkIndex = 0
	e.clearTransient()
}

func (e *Engine) clearTransient() {
	e.lastResult = StatusIdle
	e.lastConfirm = 0
	e.waitingForRelease = false
	e.lastSignature = ""
}

// GetState returns a snapshot of the engine. Progress is the completed
// share of all chunks in the curriculum; it only decreases on explicit
// Reset or GoToAyat.
func (e *Engine) GetState() State {
	completed := e.chunkIndex
	for i := 0; i < e.ayatIndex && i < len(e.curriculum.Ayat); i++ {
		completed += len(e.curriculum.Ayat[i].Chunks)
	}

	progress := 0.0
	if total := e.curriculum.TotalChunks(); total > 0 {
		progress = float64(completed) / float64(total)
	}

	return State{
		AyatIndex:     e.ayatIndex,
		ChunkIndex:    e.chunkIndex,
		LastResult:    e.lastResult,
		Progress:      progress,
		SurahComplete: e.ayatIndex >= len(e.curriculum.Ayat),
	}
}

// GetAyatChunks lists the chunks of the ayat being practiced with
// their per-chunk status. After surah completion it reports the last
// ayat with every chunk done.
func (e *Engine) GetAyatChunks() []ChunkStatus {
	if len(e.curriculum.Ayat) == 0 {
		return nil
	}

	idx := e.ayatIndex
	done := e.chunkIndex
	if idx >= len(e.curriculum.Ayat) {
		idx = len(e.curriculum.Ayat) - 1
		done = len(e.curriculum.Ayat[idx].Chunks)
	}

	chunks := e.curriculum.Ayat[idx].Chunks
	statuses := make([]ChunkStatus, len(chunks))
	for i, text := range chunks {
		state := ChunkPending
		switch {
		case i < done:
			state = ChunkDone
		case i == done:
			state = ChunkCurrent
		}
		statuses[i] = ChunkStatus{Text: text, State: state}
	}
	return statuses
}

// Curriculum exposes the engine's read-only curriculum.
func (e *Engine) Curriculum() *curriculum.Curriculum {
	return e.curriculum
}
