package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests and camera-less setups to control detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Fixture geometry. Poses are placed on the left half of the mirrored
// image (wrist x < 0.5), which is where the zone hand sits. Use
// MirrorLandmarks to obtain the matching harakat-hand pose.
const (
	poseCenterX = 0.30

	extendedPIPDepth = 0.50
	extendedTipY     = 0.34
	curledTipY       = 0.66
)

// fingerColumns are the x offsets from the pose center for the
// index, middle, ring and pinky columns.
var fingerColumns = [4]float64{0.08, 0.03, -0.02, -0.07}

// fingerJoints are the MCP/PIP/DIP/Tip landmark indices per finger.
var fingerJoints = [4][4]int{
	{IndexMCP, IndexPIP, IndexDIP, IndexTip},
	{MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip},
	{RingMCP, RingPIP, RingDIP, RingTip},
	{PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip},
}

// FingerPoseLandmarks returns a zone-hand pose holding up the given
// number of fingers (0-5). Counts 1-4 raise index through pinky in
// order; a count of 5 additionally extends the thumb.
func FingerPoseLandmarks(count int) HandLandmarks {
	h := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	h.Points[Wrist] = Point3D{X: poseCenterX + 0.02, Y: 0.85}

	h.Points[ThumbCMC] = Point3D{X: poseCenterX + 0.12, Y: 0.78}
	h.Points[ThumbMCP] = Point3D{X: poseCenterX + 0.14, Y: 0.70}
	h.Points[ThumbIP] = Point3D{X: poseCenterX + 0.15, Y: 0.62}
	if count >= 5 {
		// Extended thumb swings toward the image edge: tip left of IP.
		h.Points[ThumbTip] = Point3D{X: poseCenterX + 0.08, Y: 0.56}
	} else {
		// Closed thumb tucks against the IP joint.
		h.Points[ThumbTip] = Point3D{X: poseCenterX + 0.155, Y: 0.56}
	}

	for f := 0; f < 4; f++ {
		x := poseCenterX + fingerColumns[f]
		joints := fingerJoints[f]

		h.Points[joints[0]] = Point3D{X: x, Y: 0.60}
		h.Points[joints[1]] = Point3D{X: x, Y: extendedPIPDepth}

		if f < count {
			h.Points[joints[2]] = Point3D{X: x, Y: 0.42}
			h.Points[joints[3]] = Point3D{X: x, Y: extendedTipY}
		} else {
			h.Points[joints[2]] = Point3D{X: x - 0.01, Y: 0.58}
			h.Points[joints[3]] = Point3D{X: x - 0.02, Y: curledTipY}
		}
	}

	return h
}

// OpenPalmLandmarks returns a zone-hand pose with all five digits extended.
func OpenPalmLandmarks() HandLandmarks {
	return FingerPoseLandmarks(5)
}

// FistPoseLandmarks returns a zone-hand pose with every digit curled.
func FistPoseLandmarks() HandLandmarks {
	return FingerPoseLandmarks(0)
}

// MirrorLandmarks flips a pose horizontally around the image midline.
// The result sits on the right half of the frame with the thumb sense
// reversed, which is the harakat-hand counterpart of a zone-hand pose.
func MirrorLandmarks(h HandLandmarks) HandLandmarks {
	m := h
	if m.Handedness == "Right" {
		m.Handedness = "Left"
	} else if m.Handedness == "Left" {
		m.Handedness = "Right"
	}
	for i := range m.Points {
		m.Points[i].X = 1.0 - m.Points[i].X
	}
	return m
}
