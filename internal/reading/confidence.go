package reading

import (
	"gonum.org/v1/gonum/stat"

	"github.com/naufalhakim/iqro-isyarat/internal/detector"
)

// Bounding-box spread limits. A hand filling less of the frame than
// minSpread is too far away (or the tracker is jittering on a few
// points); more than maxSpread means the hand is too close to read.
const (
	minSpread = 0.12
	maxSpread = 0.70

	// depthVarianceGain scales how quickly z-spread erodes confidence.
	// A flat, camera-facing hand has near-uniform depth.
	depthVarianceGain = 50.0
)

// Confidence estimates how reliable a landmark set is, in [0,1].
// It combines a 2D bounding-box spread score with a depth-uniformity
// score multiplicatively. Returns 0 for malformed input.
func Confidence(points []detector.Point3D) float64 {
	if len(points) < detector.NumLandmarks {
		return 0
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	zs := make([]float64, 0, len(points))

	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
		zs = append(zs, p.Z)
	}

	spread := maxX - minX
	if dy := maxY - minY; dy > spread {
		spread = dy
	}

	spreadScore := 1.0
	switch {
	case spread <= 0:
		spreadScore = 0
	case spread < minSpread:
		spreadScore = spread / minSpread
	case spread > maxSpread:
		spreadScore = maxSpread / spread
	}

	depthScore := 1.0 / (1.0 + depthVarianceGain*stat.Variance(zs, nil))

	return clamp01(spreadScore * depthScore)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
