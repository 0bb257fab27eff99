package session

import (
	"path/filepath"
	"testing"

	"github.com/naufalhakim/iqro-isyarat/internal/curriculum"
	"github.com/naufalhakim/iqro-isyarat/internal/detector"
	"github.com/naufalhakim/iqro-isyarat/internal/reading"
	"github.com/naufalhakim/iqro-isyarat/internal/stability"
	"github.com/naufalhakim/iqro-isyarat/internal/store"
)

func testCurriculum() *curriculum.Curriculum {
	return &curriculum.Curriculum{
		Name: "test",
		Ayat: []curriculum.Ayat{
			{Number: 1, Chunks: []string{"bis", "mil"}},
			{Number: 2, Chunks: []string{"lah"}},
		},
		Mapping: map[string]curriculum.Gesture{
			"bis": {Zona: 1, Harakat: 1},
			"mil": {Zona: 2, Harakat: 1},
			"lah": {Zona: 2, Harakat: 2},
		},
	}
}

// gestureHands builds fixture hands holding the given finger counts.
func gestureHands(zona, harakat int) []reading.Hand {
	return []reading.Hand{
		reading.FromLandmarks(detector.FingerPoseLandmarks(zona)),
		reading.FromLandmarks(detector.MirrorLandmarks(detector.FingerPoseLandmarks(harakat))),
	}
}

func newTestSession(t *testing.T, st *store.Store) *Session {
	t.Helper()

	s, err := New(Config{
		Curriculum: testCurriculum(),
		Stability:  stability.DefaultConfig(),
		CooldownMs: 500,
		Store:      st,
		ClientInfo: "test",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestSession_ProcessFrame_FullCycle(t *testing.T) {
	s := newTestSession(t, nil)

	update := s.ProcessFrame(gestureHands(1, 1), 1000)
	if update.Frame.Right == nil || update.Frame.Left == nil {
		t.Fatal("frame readings missing")
	}
	if update.Stable != nil {
		t.Fatal("stable event before the dwell window")
	}
	if update.Result != nil {
		t.Fatal("result before the dwell window")
	}

	update = s.ProcessFrame(gestureHands(1, 1), 1700)
	if update.Stable == nil {
		t.Fatal("no stable event after the dwell window")
	}
	if update.Stable.Zona != 1 || update.Stable.Harakat != 1 {
		t.Errorf("stable event = (%d, %d), want (1, 1)", update.Stable.Zona, update.Stable.Harakat)
	}
	if update.Result == nil {
		t.Fatal("no result for the stable event")
	}
	if !update.Result.Correct || update.Result.Chunk != "bis" {
		t.Errorf("result = %+v, want correct bis", update.Result)
	}

	state := s.State()
	if state.AyatIndex != 0 || state.ChunkIndex != 1 {
		t.Errorf("state = (%d, %d), want (0, 1)", state.AyatIndex, state.ChunkIndex)
	}
}

func TestSession_ProcessFrame_SuppressedResultOmitted(t *testing.T) {
	s := newTestSession(t, nil)

	s.ProcessFrame(gestureHands(1, 1), 1000)
	s.ProcessFrame(gestureHands(1, 1), 1700)

	// Still held: the tracker re-emits, the engine suppresses, and the
	// update carries no result.
	update := s.ProcessFrame(gestureHands(1, 1), 1800)
	if update.Stable == nil {
		t.Fatal("no stable event while held")
	}
	if update.Result != nil {
		t.Error("suppressed evaluation surfaced as a result")
	}
}

func TestSession_ProcessFrame_NoHands(t *testing.T) {
	s := newTestSession(t, nil)

	update := s.ProcessFrame(nil, 1000)
	if update.Frame.Right != nil || update.Frame.Left != nil {
		t.Error("readings from an empty frame")
	}
	if update.Stable != nil || update.Result != nil {
		t.Error("event from an empty frame")
	}
}

func TestSession_GoToAyat_ResetsDwell(t *testing.T) {
	s := newTestSession(t, nil)

	s.ProcessFrame(gestureHands(2, 2), 1000)
	s.GoToAyat(1)

	// The held gesture matches the new target, but its dwell must
	// restart after the jump.
	update := s.ProcessFrame(gestureHands(2, 2), 1700)
	if update.Stable != nil {
		t.Error("stale dwell survived the ayat jump")
	}

	update = s.ProcessFrame(gestureHands(2, 2), 2400)
	if update.Result == nil || !update.Result.Correct {
		t.Error("held gesture did not score after re-dwelling")
	}
	if update.Result != nil && update.Result.Chunk != "lah" {
		t.Errorf("Chunk = %s, want lah", update.Result.Chunk)
	}
}

func TestSession_RecordsAttempts(t *testing.T) {
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer st.Close()

	s := newTestSession(t, st)

	sess, err := st.Sessions().GetByID(s.ID())
	if err != nil {
		t.Fatalf("session not logged at start: %v", err)
	}
	if sess.ClientInfo != "test" {
		t.Errorf("ClientInfo = %q, want test", sess.ClientInfo)
	}

	s.ProcessFrame(gestureHands(1, 1), 1000)
	s.ProcessFrame(gestureHands(1, 1), 1700)

	attempts, err := st.Attempts().ListBySession(s.ID())
	if err != nil {
		t.Fatalf("ListBySession() error = %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("len(attempts) = %d, want 1", len(attempts))
	}
	if attempts[0].Chunk != "bis" || !attempts[0].Correct {
		t.Errorf("attempt = %+v, want correct bis", attempts[0])
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	sess, err = st.Sessions().GetByID(s.ID())
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !sess.EndedAt.Valid {
		t.Error("session not finalized on Close()")
	}
	if sess.TotalAttempts != 1 {
		t.Errorf("TotalAttempts = %d, want 1", sess.TotalAttempts)
	}
}

func TestSession_NoStore(t *testing.T) {
	s := newTestSession(t, nil)

	s.ProcessFrame(gestureHands(1, 1), 1000)
	s.ProcessFrame(gestureHands(1, 1), 1700)

	if err := s.Close(); err != nil {
		t.Errorf("Close() without a store error = %v", err)
	}
}

func TestSession_Reset(t *testing.T) {
	s := newTestSession(t, nil)

	s.ProcessFrame(gestureHands(1, 1), 1000)
	s.ProcessFrame(gestureHands(1, 1), 1700)
	s.Reset()

	state := s.State()
	if state.AyatIndex != 0 || state.ChunkIndex != 0 {
		t.Errorf("state after Reset = (%d, %d), want (0, 0)", state.AyatIndex, state.ChunkIndex)
	}
	if state.Progress != 0 {
		t.Errorf("Progress after Reset = %f, want 0", state.Progress)
	}
}
