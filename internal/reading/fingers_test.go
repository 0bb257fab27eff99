package reading

import (
	"testing"

	"github.com/naufalhakim/iqro-isyarat/internal/detector"
)

func TestCountFingers_ZoneHand(t *testing.T) {
	for want := 0; want <= 5; want++ {
		pose := detector.FingerPoseLandmarks(want)
		got := CountFingers(pose.PointSlice(), RoleRight)
		if got != want {
			t.Errorf("FingerPoseLandmarks(%d): CountFingers = %d, want %d", want, got, want)
		}
	}
}

func TestCountFingers_HarakatHand(t *testing.T) {
	// The mirrored pose reverses the thumb's horizontal sense; the
	// role-aware comparison must still read the same count.
	for want := 0; want <= 5; want++ {
		pose := detector.MirrorLandmarks(detector.FingerPoseLandmarks(want))
		got := CountFingers(pose.PointSlice(), RoleLeft)
		if got != want {
			t.Errorf("mirrored FingerPoseLandmarks(%d): CountFingers = %d, want %d", want, got, want)
		}
	}
}

func TestCountFingers_WrongRoleMiscountsThumb(t *testing.T) {
	// Reading a zone-hand five-finger pose with the harakat role flips
	// the thumb test, so the extended thumb is missed.
	pose := detector.OpenPalmLandmarks()
	got := CountFingers(pose.PointSlice(), RoleLeft)
	if got != 4 {
		t.Errorf("CountFingers with swapped role = %d, want 4", got)
	}
}

func TestCountFingers_ShortInput(t *testing.T) {
	points := detector.OpenPalmLandmarks().PointSlice()[:10]
	if got := CountFingers(points, RoleRight); got != 0 {
		t.Errorf("CountFingers with %d points = %d, want 0", len(points), got)
	}
}

func TestDetectOrientation(t *testing.T) {
	tests := []struct {
		name   string
		points []detector.Point3D
		want   Orientation
	}{
		{
			name:   "open palm facing camera reads palm up",
			points: detector.OpenPalmLandmarks().PointSlice(),
			want:   OrientationPalmUp,
		},
		{
			name:   "all digits curled reads fist",
			points: detector.FistPoseLandmarks().PointSlice(),
			want:   OrientationFist,
		},
		{
			name:   "one finger up is not a fist",
			points: detector.FingerPoseLandmarks(2).PointSlice(),
			want:   OrientationPalmUp,
		},
		{
			name:   "short input reads unknown",
			points: detector.OpenPalmLandmarks().PointSlice()[:5],
			want:   OrientationUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectOrientation(tt.points); got != tt.want {
				t.Errorf("DetectOrientation = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDetectOrientation_FistWithOneFingerUp(t *testing.T) {
	// Four of five digits curled still short-circuits to fist.
	pose := detector.FingerPoseLandmarks(1)
	if got := DetectOrientation(pose.PointSlice()); got != OrientationFist {
		t.Errorf("DetectOrientation with one finger up = %s, want %s", got, OrientationFist)
	}
}

func TestIsFist(t *testing.T) {
	tests := []struct {
		name    string
		fingers int
		want    bool
	}{
		{"all curled", 0, true},
		{"one marginal finger still holds", 1, true},
		{"two fingers up", 2, false},
		{"open palm", 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pose := detector.FingerPoseLandmarks(tt.fingers)
			if got := IsFist(pose.PointSlice()); got != tt.want {
				t.Errorf("IsFist(%d fingers) = %v, want %v", tt.fingers, got, tt.want)
			}
		})
	}
}

func TestIsFist_ShortInput(t *testing.T) {
	if IsFist(nil) {
		t.Error("IsFist(nil) = true, want false")
	}
}
