// Package reading turns raw hand landmark sets into semantic per-frame
// hand readings: finger counts, palm orientation, fist state and a
// confidence score, with canonical left/right role assignment.
package reading

import (
	"github.com/naufalhakim/iqro-isyarat/internal/detector"
)

// Role identifies which curriculum channel a hand controls.
type Role string

const (
	// RoleRight is the zone hand: its finger count selects the zona.
	RoleRight Role = "right"
	// RoleLeft is the harakat hand: its finger count selects the
	// harakat, and its fist hold drives the syaddah signal.
	RoleLeft Role = "left"
)

// Orientation classifies the facing direction of the palm.
type Orientation string

const (
	OrientationPalmUp    Orientation = "palm_up"
	OrientationPalmDown  Orientation = "palm_down"
	OrientationPalmLeft  Orientation = "palm_left"
	OrientationPalmRight Orientation = "palm_right"
	OrientationFist      Orientation = "fist"
	OrientationUnknown   Orientation = "unknown"
)

// Hand is one detected hand as consumed by the decoder: a landmark
// point list (normally 21 entries) plus the normalized advisory
// handedness classification.
type Hand struct {
	Points   []detector.Point3D
	Advisory Advisory
}

// FromLandmarks adapts a detector result into a decoder input.
func FromLandmarks(h detector.HandLandmarks) Hand {
	points := make([]detector.Point3D, detector.NumLandmarks)
	copy(points, h.Points[:])

	score := h.Score
	if score <= 0 {
		score = defaultAdvisoryScore
	}

	return Hand{
		Points: points,
		Advisory: Advisory{
			Label: normalizeLabel(h.Handedness),
			Score: score,
		},
	}
}

// HandReading is the semantic reading derived from one hand in one
// frame. Recomputed every frame, never mutated in place.
type HandReading struct {
	Role        Role               `json:"role"`
	Fingers     int                `json:"fingers"`
	Orientation Orientation        `json:"orientation"`
	IsFist      bool               `json:"is_fist"`
	Confidence  float64            `json:"confidence"`
	Points      []detector.Point3D `json:"-"`
}

// DecodedFrame is the canonical reading of one processed camera frame.
// Either hand may be absent. Consumed immediately by the stability
// tracker and rendered as a HUD snapshot.
type DecodedFrame struct {
	Right     *HandReading `json:"right,omitempty"`
	Left      *HandReading `json:"left,omitempty"`
	Timestamp int64        `json:"timestamp"`
}
