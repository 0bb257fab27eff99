// Package session wires the decode-stabilize-evaluate pipeline into
// one session-scoped object. One instance per learner session, owned
// by a single frame loop; no global state.
package session

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/naufalhakim/iqro-isyarat/internal/curriculum"
	"github.com/naufalhakim/iqro-isyarat/internal/engine"
	"github.com/naufalhakim/iqro-isyarat/internal/reading"
	"github.com/naufalhakim/iqro-isyarat/internal/stability"
	"github.com/naufalhakim/iqro-isyarat/internal/store"
)

// Config holds the pieces a session is built from.
type Config struct {
	Curriculum *curriculum.Curriculum
	Stability  stability.Config
	CooldownMs int64

	// Store is optional; when set, the session and every confirmed
	// attempt are logged.
	Store *store.Store

	// ClientInfo is a free-form origin note for the session log.
	ClientInfo string
}

// Update is what one processed frame produced: always a decoded frame
// snapshot and dwell progress, plus a stable event and an evaluation
// result on the frames where they occurred.
type Update struct {
	Frame    reading.DecodedFrame       `json:"frame"`
	Progress stability.Progress         `json:"progress"`
	Stable   *stability.StableZoneEvent `json:"stable,omitempty"`
	Result   *engine.Result             `json:"result,omitempty"`
}

// Session owns the per-learner pipeline state. Single-writer: frames
// must be processed in arrival order by one goroutine.
type Session struct {
	id       string
	tracker  *stability.Tracker
	engine   *engine.Engine
	store    *store.Store
	attempts int
}

// New creates a session and, when a store is configured, logs its start.
func New(config Config) (*Session, error) {
	s := &Session{
		id:      uuid.New().String(),
		tracker: stability.NewTracker(config.Stability),
		engine:  engine.NewEngine(config.Curriculum, config.CooldownMs),
		store:   config.Store,
	}

	if s.store != nil {
		err := s.store.Sessions().Create(&store.Session{
			ID:         s.id,
			ClientInfo: config.ClientInfo,
		})
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// ProcessFrame runs one decode-stabilize-evaluate cycle. Degenerate
// input degrades to an update with no stable event; it never fails.
func (s *Session) ProcessFrame(hands []reading.Hand, timestamp int64) Update {
	frame := reading.DecodeFrame(hands, timestamp)
	event := s.tracker.Update(frame)

	update := Update{
		Frame:    frame,
		Progress: s.tracker.GetProgress(),
		Stable:   event,
	}

	if event == nil {
		return update
	}

	result := s.engine.Evaluate(*event)
	if !result.Evaluated {
		return update
	}

	update.Result = &result
	s.attempts++
	s.recordAttempt(*event, result)

	return update
}

func (s *Session) recordAttempt(event stability.StableZoneEvent, result engine.Result) {
	if s.store == nil {
		return
	}

	err := s.store.Attempts().Create(&store.Attempt{
		SessionID:  s.id,
		AyatIndex:  result.AyatIndex,
		ChunkIndex: result.ChunkIndex,
		Chunk:      result.Chunk,
		Zona:       event.Zona,
		Harakat:    event.Harakat,
		Correct:    result.Correct,
		IsSyaddah:  event.IsSyaddah,
	})
	if err != nil {
		// A lost log row must not interrupt practice.
		log.Printf("record attempt: %v", err)
	}
}

// GoToAyat jumps the engine to an ayat and clears the dwell timers, so
// a gesture still held from before the jump cannot score against the
// new target.
func (s *Session) GoToAyat(index int) {
	s.engine.GoToAyat(index)
	s.tracker.Reset()
}

// Reset returns the session to the start of the curriculum.
func (s *Session) Reset() {
	s.engine.Reset()
	s.tracker.Reset()
}

// State returns the progression snapshot.
func (s *Session) State() engine.State {
	return s.engine.GetState()
}

// AyatChunks returns per-chunk status for the ayat being practiced.
func (s *Session) AyatChunks() []engine.ChunkStatus {
	return s.engine.GetAyatChunks()
}

// Curriculum returns the read-only curriculum this session runs over.
func (s *Session) Curriculum() *curriculum.Curriculum {
	return s.engine.Curriculum()
}

// Close finalizes the session log. Safe to call when no store is set.
func (s *Session) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Sessions().End(s.id, time.Now(), s.attempts)
}
