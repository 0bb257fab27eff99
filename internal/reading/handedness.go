package reading

import "github.com/naufalhakim/iqro-isyarat/internal/detector"

// AssignRoles decides which detected hand controls which channel.
//
// The detector's advisory handedness labels are NOT consulted: under a
// mirrored front-facing preview the advisory classification is wrong
// often enough to be useless, so roles are assigned purely by wrist
// position. With two hands, the one further toward the left edge of
// the (mirrored) image is the zone hand and the other the harakat
// hand. A lone hand is the zone hand when its wrist sits left of the
// frame midpoint, otherwise the harakat hand.
//
// Returns the index in hands assigned each role, or -1 when no hand
// holds that role. Extra hands beyond the first two are ignored.
func AssignRoles(hands []Hand) (rightIdx, leftIdx int) {
	rightIdx, leftIdx = -1, -1

	switch len(hands) {
	case 0:
		return rightIdx, leftIdx
	case 1:
		if wristX(hands[0]) < 0.5 {
			return 0, -1
		}
		return -1, 0
	default:
		if wristX(hands[0]) < wristX(hands[1]) {
			return 0, 1
		}
		return 1, 0
	}
}

func wristX(h Hand) float64 {
	if len(h.Points) <= detector.Wrist {
		return 0.5
	}
	return h.Points[detector.Wrist].X
}
