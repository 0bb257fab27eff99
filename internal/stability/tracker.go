// Package stability debounces noisy per-frame hand readings into
// discrete confirmed gesture events.
package stability

import (
	"github.com/naufalhakim/iqro-isyarat/internal/reading"
)

// Default dwell thresholds, overridable via Config.
const (
	DefaultMinConfidence   = 0.55
	DefaultZoneStabilityMs = 700
	DefaultSyaddahHoldMs   = 1200
)

// Config holds the tracker's dwell thresholds.
type Config struct {
	// MinConfidence is the minimum reading confidence for a channel to
	// accept a value this frame.
	MinConfidence float64

	// ZoneStabilityMs is how long both finger counts must hold before
	// a stable event is emitted.
	ZoneStabilityMs int64

	// SyaddahHoldMs is how long the harakat hand must stay a fist for
	// the syaddah flag to set.
	SyaddahHoldMs int64
}

// DefaultConfig returns a Config with the standard dwell windows.
func DefaultConfig() Config {
	return Config{
		MinConfidence:   DefaultMinConfidence,
		ZoneStabilityMs: DefaultZoneStabilityMs,
		SyaddahHoldMs:   DefaultSyaddahHoldMs,
	}
}

// StableZoneEvent is a confirmed, debounced joint reading of both
// hands, ready for curriculum evaluation. It exists only as a return
// value; nothing retains it across frames.
type StableZoneEvent struct {
	Zona        int                 `json:"zona"`
	Harakat     int                 `json:"harakat"`
	Orientation reading.Orientation `json:"orientation"`
	StableAt    int64               `json:"stable_at"`
	IsSyaddah   bool                `json:"is_syaddah"`
}

// Progress reports each channel's dwell completion ratio for HUD
// feedback. Values are in [0,1].
type Progress struct {
	Zona    float64 `json:"zona"`
	Harakat float64 `json:"harakat"`
	Syaddah float64 `json:"syaddah"`
}

// Tracker is a per-session state machine that debounces the zone and
// harakat channels independently and emits an event only when both are
// simultaneously stable. Single-writer: callers must feed frames in
// arrival order.
type Tracker struct {
	config Config

	lastZona     int
	lastHarakat  int
	zonaSince    int64
	harakatSince int64

	lastOrientation reading.Orientation
	fistStart       int64 // 0 = no hold in progress
	lastUpdate      int64
}

// NewTracker creates a Tracker with the given thresholds.
func NewTracker(config Config) *Tracker {
	t := &Tracker{config: config}
	t.Reset()
	return t
}

// Update consumes one decoded frame and returns a stable event when
// both channels have held their current positive values for the full
// dwell window, or nil otherwise.
//
// A channel's value is accepted only when the corresponding reading's
// confidence clears the minimum; otherwise the channel reads as none
// (-1) this frame, which restarts its dwell timer on the next change.
// While stable, an event is returned on every call; the progression
// engine's cooldown absorbs the repetition.
func (t *Tracker) Update(frame reading.DecodedFrame) *StableZoneEvent {
	now := frame.Timestamp
	t.lastUpdate = now

	zona := -1
	if frame.Right != nil && frame.Right.Confidence >= t.config.MinConfidence {
		zona = frame.Right.Fingers
		t.lastOrientation = frame.Right.Orientation
	}
	if zona != t.lastZona {
		t.lastZona = zona
		t.zonaSince = now
	}

	harakat := -1
	fist := false
	if frame.Left != nil && frame.Left.Confidence >= t.config.MinConfidence {
		harakat = frame.Left.Fingers
		fist = frame.Left.IsFist
	}
	if harakat != t.lastHarakat {
		t.lastHarakat = harakat
		t.harakatSince = now
	}

	// The syaddah hold is a hard dwell: one non-fist frame zeroes it,
	// it never merely pauses.
	if fist {
		if t.fistStart == 0 {
			t.fistStart = now
		}
	} else {
		t.fistStart = 0
	}

	zonaStable := t.lastZona > 0 && now-t.zonaSince >= t.config.ZoneStabilityMs
	harakatStable := t.lastHarakat > 0 && now-t.harakatSince >= t.config.ZoneStabilityMs
	if !zonaStable || !harakatStable {
		return nil
	}

	return &StableZoneEvent{
		Zona:        t.lastZona,
		Harakat:     t.lastHarakat,
		Orientation: t.lastOrientation,
		StableAt:    now,
		IsSyaddah:   t.fistStart > 0 && now-t.fistStart >= t.config.SyaddahHoldMs,
	}
}

// GetProgress reports dwell completion per channel as of the last
// update. Purely observational.
func (t *Tracker) GetProgress() Progress {
	return Progress{
		Zona:    t.dwellRatio(t.lastZona, t.zonaSince, t.config.ZoneStabilityMs),
		Harakat: t.dwellRatio(t.lastHarakat, t.harakatSince, t.config.ZoneStabilityMs),
		Syaddah: t.holdRatio(),
	}
}

func (t *Tracker) dwellRatio(value int, since, window int64) float64 {
	if value <= 0 || window <= 0 {
		return 0
	}
	ratio := float64(t.lastUpdate-since) / float64(window)
	if ratio > 1 {
		return 1
	}
	if ratio < 0 {
		return 0
	}
	return ratio
}

func (t *Tracker) holdRatio() float64 {
	if t.fistStart == 0 || t.config.SyaddahHoldMs <= 0 {
		return 0
	}
	ratio := float64(t.lastUpdate-t.fistStart) / float64(t.config.SyaddahHoldMs)
	if ratio > 1 {
		return 1
	}
	return ratio
}

// Reset clears all timers and last-seen values. Called whenever the
// curriculum position changes externally, so a stale held gesture is
// never evaluated against a new expected target.
func (t *Tracker) Reset() {
	t.lastZona = -1
	t.lastHarakat = -1
	t.zonaSince = 0
	t.harakatSince = 0
	t.lastOrientation = reading.OrientationUnknown
	t.fistStart = 0
}
