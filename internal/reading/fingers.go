package reading

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/naufalhakim/iqro-isyarat/internal/detector"
)

// thumbClosedTolerance is the maximum horizontal gap between thumb tip
// and IP joint for the thumb to count as curled in the orientation
// fist test.
const thumbClosedTolerance = 0.04

// fingerTipPIP pairs the tip and PIP landmark indices of the four
// non-thumb fingers.
var fingerTipPIP = [4][2]int{
	{detector.IndexTip, detector.IndexPIP},
	{detector.MiddleTip, detector.MiddlePIP},
	{detector.RingTip, detector.RingPIP},
	{detector.PinkyTip, detector.PinkyPIP},
}

// CountFingers returns how many digits are extended (0-5).
//
// The four non-thumb fingers are extended when the fingertip sits above
// its PIP joint (image y grows downward, so "above" is a smaller y).
// The thumb moves horizontally, and the mirrored preview reverses the
// anatomical horizontal sense, so the tip/IP comparison flips with the
// assigned role. Fails soft: a landmark set with fewer than 21 points
// reads as zero fingers.
func CountFingers(points []detector.Point3D, role Role) int {
	if len(points) < detector.NumLandmarks {
		return 0
	}

	count := 0
	for _, fp := range fingerTipPIP {
		if points[fp[0]].Y < points[fp[1]].Y {
			count++
		}
	}

	tip := points[detector.ThumbTip]
	ip := points[detector.ThumbIP]
	if role == RoleRight {
		if tip.X < ip.X {
			count++
		}
	} else {
		if tip.X > ip.X {
			count++
		}
	}

	return count
}

// curledDigits counts curled digits out of five: the four fingers by
// the PIP test plus the thumb when its tip is nearly horizontally
// coincident with the IP joint.
func curledDigits(points []detector.Point3D) int {
	curled := 0
	for _, fp := range fingerTipPIP {
		if points[fp[0]].Y > points[fp[1]].Y {
			curled++
		}
	}
	if math.Abs(points[detector.ThumbTip].X-points[detector.ThumbIP].X) < thumbClosedTolerance {
		curled++
	}
	return curled
}

// DetectOrientation classifies the palm's facing direction.
//
// A pose with at least four of five digits curled short-circuits to
// fist before any plane computation. Otherwise the palm normal is the
// cross product of two in-palm vectors (wrist to middle knuckle, index
// knuckle to pinky knuckle) and the dominant axis of that normal picks
// the direction; depth-dominant normals are resolved by the vertical
// sense of the wrist-to-middle-knuckle vector.
func DetectOrientation(points []detector.Point3D) Orientation {
	if len(points) < detector.NumLandmarks {
		return OrientationUnknown
	}

	if curledDigits(points) >= 4 {
		return OrientationFist
	}

	spine := vecBetween(points[detector.Wrist], points[detector.MiddleMCP])
	across := vecBetween(points[detector.IndexMCP], points[detector.PinkyMCP])
	normal := r3.Cross(spine, across)

	ax := math.Abs(normal.X)
	ay := math.Abs(normal.Y)
	az := math.Abs(normal.Z)

	switch {
	case az >= ax && az >= ay:
		// Palm facing toward or away from the camera; fall back to
		// whether the fingers point up or down.
		if spine.Y < 0 {
			return OrientationPalmUp
		}
		return OrientationPalmDown
	case ax >= ay:
		if normal.X < 0 {
			return OrientationPalmLeft
		}
		return OrientationPalmRight
	default:
		if normal.Y < 0 {
			return OrientationPalmUp
		}
		return OrientationPalmDown
	}
}

// IsFist reports whether the hand is balled into a fist for the
// syaddah signal: at least three of the four non-thumb fingers curled.
// This is deliberately looser than the orientation fist test, since a
// sustained emphasis hold should not drop out on one marginal finger.
func IsFist(points []detector.Point3D) bool {
	if len(points) < detector.NumLandmarks {
		return false
	}

	curled := 0
	for _, fp := range fingerTipPIP {
		if points[fp[0]].Y > points[fp[1]].Y {
			curled++
		}
	}
	return curled >= 3
}

func vecBetween(from, to detector.Point3D) r3.Vec {
	return r3.Vec{
		X: to.X - from.X,
		Y: to.Y - from.Y,
		Z: to.Z - from.Z,
	}
}
