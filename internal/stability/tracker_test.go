package stability

import (
	"testing"

	"github.com/naufalhakim/iqro-isyarat/internal/reading"
)

// frameAt builds a decoded frame with the given channel values. A value
// of -1 leaves that hand absent.
func frameAt(ts int64, zona, harakat int, conf float64, fist bool) reading.DecodedFrame {
	f := reading.DecodedFrame{Timestamp: ts}
	if zona >= 0 {
		f.Right = &reading.HandReading{
			Role:        reading.RoleRight,
			Fingers:     zona,
			Orientation: reading.OrientationPalmUp,
			Confidence:  conf,
		}
	}
	if harakat >= 0 {
		f.Left = &reading.HandReading{
			Role:       reading.RoleLeft,
			Fingers:    harakat,
			Confidence: conf,
			IsFist:     fist,
		}
	}
	return f
}

func TestTracker_EmitsAfterDwell(t *testing.T) {
	tr := NewTracker(DefaultConfig())

	if ev := tr.Update(frameAt(0, 2, 3, 0.9, false)); ev != nil {
		t.Fatal("event before dwell window elapsed")
	}
	if ev := tr.Update(frameAt(350, 2, 3, 0.9, false)); ev != nil {
		t.Fatal("event at half the dwell window")
	}

	ev := tr.Update(frameAt(700, 2, 3, 0.9, false))
	if ev == nil {
		t.Fatal("no event after full dwell window")
	}
	if ev.Zona != 2 || ev.Harakat != 3 {
		t.Errorf("event = (%d, %d), want (2, 3)", ev.Zona, ev.Harakat)
	}
	if ev.StableAt != 700 {
		t.Errorf("StableAt = %d, want 700", ev.StableAt)
	}
	if ev.IsSyaddah {
		t.Error("IsSyaddah without a fist hold")
	}
}

func TestTracker_ReEmitsWhileHeld(t *testing.T) {
	tr := NewTracker(DefaultConfig())

	tr.Update(frameAt(0, 2, 3, 0.9, false))
	if tr.Update(frameAt(700, 2, 3, 0.9, false)) == nil {
		t.Fatal("no event after dwell")
	}

	// The cooldown downstream absorbs repeats; the tracker keeps emitting.
	if tr.Update(frameAt(750, 2, 3, 0.9, false)) == nil {
		t.Error("no event on a subsequent stable frame")
	}
}

func TestTracker_ValueChangeRestartsDwell(t *testing.T) {
	tr := NewTracker(DefaultConfig())

	tr.Update(frameAt(0, 2, 3, 0.9, false))
	tr.Update(frameAt(600, 4, 3, 0.9, false)) // zona changed late in the dwell

	if ev := tr.Update(frameAt(900, 4, 3, 0.9, false)); ev != nil {
		t.Fatal("event before the restarted dwell elapsed")
	}
	if ev := tr.Update(frameAt(1300, 4, 3, 0.9, false)); ev == nil {
		t.Fatal("no event after the restarted dwell elapsed")
	}
}

func TestTracker_SingleDifferingFrameResets(t *testing.T) {
	tr := NewTracker(DefaultConfig())

	tr.Update(frameAt(0, 2, 3, 0.9, false))
	tr.Update(frameAt(650, 5, 3, 0.9, false)) // one misread frame
	tr.Update(frameAt(680, 2, 3, 0.9, false))

	// Without the misread, 700 would have been stable.
	if ev := tr.Update(frameAt(700, 2, 3, 0.9, false)); ev != nil {
		t.Fatal("dwell survived a differing intermediate frame")
	}
	if ev := tr.Update(frameAt(1380, 2, 3, 0.9, false)); ev == nil {
		t.Fatal("no event after re-dwelling from the misread")
	}
}

func TestTracker_LowConfidenceReadsAsNone(t *testing.T) {
	tr := NewTracker(DefaultConfig())

	tr.Update(frameAt(0, 2, 3, 0.9, false))
	tr.Update(frameAt(400, 2, 3, 0.3, false)) // below threshold: both channels drop
	tr.Update(frameAt(450, 2, 3, 0.9, false))

	if ev := tr.Update(frameAt(800, 2, 3, 0.9, false)); ev != nil {
		t.Fatal("low-confidence frame did not restart the dwell")
	}
	if ev := tr.Update(frameAt(1150, 2, 3, 0.9, false)); ev == nil {
		t.Fatal("no event after re-dwelling")
	}
}

func TestTracker_RequiresBothChannels(t *testing.T) {
	tr := NewTracker(DefaultConfig())

	tr.Update(frameAt(0, 2, -1, 0.9, false))
	if ev := tr.Update(frameAt(800, 2, -1, 0.9, false)); ev != nil {
		t.Error("event with only the zone channel stable")
	}

	tr = NewTracker(DefaultConfig())
	tr.Update(frameAt(0, -1, 3, 0.9, false))
	if ev := tr.Update(frameAt(800, -1, 3, 0.9, false)); ev != nil {
		t.Error("event with only the harakat channel stable")
	}
}

func TestTracker_ZeroFingersNeverStable(t *testing.T) {
	tr := NewTracker(DefaultConfig())

	tr.Update(frameAt(0, 0, 0, 0.9, false))
	if ev := tr.Update(frameAt(900, 0, 0, 0.9, false)); ev != nil {
		t.Error("zero finger counts must not produce an event")
	}
}

func TestTracker_SyaddahHold(t *testing.T) {
	tr := NewTracker(DefaultConfig())

	tr.Update(frameAt(1000, 2, 1, 0.9, true))
	ev := tr.Update(frameAt(1700, 2, 1, 0.9, true))
	if ev == nil {
		t.Fatal("no event after dwell")
	}
	if ev.IsSyaddah {
		t.Error("IsSyaddah before the hold window elapsed")
	}

	ev = tr.Update(frameAt(2200, 2, 1, 0.9, true))
	if ev == nil {
		t.Fatal("no event at hold completion")
	}
	if !ev.IsSyaddah {
		t.Error("IsSyaddah not set after the full hold")
	}
}

func TestTracker_SyaddahHoldHardResets(t *testing.T) {
	tr := NewTracker(DefaultConfig())

	tr.Update(frameAt(1000, 2, 1, 0.9, true))
	tr.Update(frameAt(2100, 2, 1, 0.9, false)) // one open frame zeroes the hold
	ev := tr.Update(frameAt(2300, 2, 1, 0.9, true))
	if ev == nil {
		t.Fatal("no event")
	}
	if ev.IsSyaddah {
		t.Error("hold survived a non-fist frame")
	}

	ev = tr.Update(frameAt(3500, 2, 1, 0.9, true))
	if ev == nil {
		t.Fatal("no event")
	}
	if !ev.IsSyaddah {
		t.Error("IsSyaddah not set after a fresh full hold")
	}
}

func TestTracker_GetProgress(t *testing.T) {
	tr := NewTracker(DefaultConfig())

	p := tr.GetProgress()
	if p.Zona != 0 || p.Harakat != 0 || p.Syaddah != 0 {
		t.Errorf("initial progress = %+v, want zeros", p)
	}

	tr.Update(frameAt(1000, 2, 3, 0.9, true))
	tr.Update(frameAt(1350, 2, 3, 0.9, true))

	p = tr.GetProgress()
	if p.Zona != 0.5 {
		t.Errorf("Zona progress = %f, want 0.5", p.Zona)
	}
	if p.Harakat != 0.5 {
		t.Errorf("Harakat progress = %f, want 0.5", p.Harakat)
	}
	if p.Syaddah <= 0.2 || p.Syaddah >= 0.35 {
		t.Errorf("Syaddah progress = %f, want ~0.29", p.Syaddah)
	}

	tr.Update(frameAt(3000, 2, 3, 0.9, true))
	p = tr.GetProgress()
	if p.Zona != 1 || p.Harakat != 1 {
		t.Errorf("held progress = %+v, want capped at 1", p)
	}
}

func TestTracker_Reset(t *testing.T) {
	tr := NewTracker(DefaultConfig())

	tr.Update(frameAt(0, 2, 3, 0.9, true))
	tr.Update(frameAt(690, 2, 3, 0.9, true))
	tr.Reset()

	// The dwell must restart from scratch after a reset.
	tr.Update(frameAt(700, 2, 3, 0.9, true))
	if ev := tr.Update(frameAt(1000, 2, 3, 0.9, true)); ev != nil {
		t.Fatal("dwell survived Reset")
	}
	if ev := tr.Update(frameAt(1400, 2, 3, 0.9, true)); ev == nil {
		t.Fatal("no event after re-dwelling post-reset")
	}
}
