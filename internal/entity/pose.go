package entity

// Pose landmark indices following the MediaPipe Pose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose = iota
	LeftEyeInner
	LeftEye
	LeftEyeOuter
	RightEyeInner
	RightEye
	RightEyeOuter
	LeftEar
	RightEar
	MouthLeft
	MouthRight
	LeftShoulder
	RightShoulder
	LeftElbow
	RightElbow
	LeftWrist
	RightWrist
	LeftPinky
	RightPinky
	LeftIndex
	RightIndex
	LeftThumb
	RightThumb
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle
	LeftHeel
	RightHeel
	LeftFootIndex
	RightFootIndex
	NumLandmarks
)

// Point is a 2D landmark position in normalized image coordinates (0.0-1.0).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LandmarkFrame is one frame of pose-estimation output: a fixed set of 33
// landmark slots, nil where the model did not detect the landmark this frame.
type LandmarkFrame struct {
	FrameNumber int64
	Points      [NumLandmarks]*Point
}

// Landmark returns the landmark at index i and whether it was detected.
func (f *LandmarkFrame) Landmark(i int) (Point, bool) {
	if i < 0 || i >= NumLandmarks || f.Points[i] == nil {
		return Point{}, false
	}
	return *f.Points[i], true
}
