package reading

import (
	"math"

	"github.com/naufalhakim/iqro-isyarat/internal/detector"
)

// DecodeFrame composes role assignment and per-hand analysis into one
// canonical reading for a processed frame.
//
// Hands with fewer than 21 landmark points are treated as absent. Each
// reading's confidence is min(advisory score, computed confidence) —
// a conservative combination, since neither source alone is trusted.
// At most one reading per role survives; the first hand assigned a
// role wins.
func DecodeFrame(hands []Hand, timestamp int64) DecodedFrame {
	frame := DecodedFrame{Timestamp: timestamp}

	valid := make([]Hand, 0, len(hands))
	for _, h := range hands {
		if len(h.Points) < detector.NumLandmarks {
			continue
		}
		valid = append(valid, h)
	}

	rightIdx, leftIdx := AssignRoles(valid)
	if rightIdx >= 0 {
		frame.Right = readHand(valid[rightIdx], RoleRight)
	}
	if leftIdx >= 0 {
		frame.Left = readHand(valid[leftIdx], RoleLeft)
	}

	return frame
}

func readHand(h Hand, role Role) *HandReading {
	r := &HandReading{
		Role:        role,
		Fingers:     CountFingers(h.Points, role),
		Orientation: DetectOrientation(h.Points),
		Confidence:  math.Min(h.Advisory.Score, Confidence(h.Points)),
		Points:      h.Points,
	}

	// The fist hold only means something on the harakat hand.
	if role == RoleLeft {
		r.IsFist = IsFist(h.Points)
	}

	return r
}
