package entity

// Rendering labels for the two repetition phases.
const (
	StageUp   = "UP"
	StageDown = "DOWN"
)

// AngleSample holds the three joint angles computed for one frame, in whole
// degrees within [0, 180].
type AngleSample struct {
	Knee float64 `json:"knee_angle"`
	Hip  float64 `json:"hip_angle"`
	Heel float64 `json:"heel_angle"`
}

// RepSnapshot is the angle sample and extrema frozen the instant a repetition
// completed. Showing is true until the display timeout reverts consumers to
// the live view.
type RepSnapshot struct {
	AngleSample
	MinKneeAngle   float64 `json:"min_knee_angle"`
	MaxKneeAngle   float64 `json:"max_knee_angle"`
	MaxHipAngle    float64 `json:"max_hip_angle"`
	MaxHeelAngle   float64 `json:"max_heel_angle"`
	MaxKneeForward float64 `json:"max_knee_forward"`
	Showing        bool    `json:"is_showing"`
}

// SquatResult is the per-frame output record handed to the rendering client.
type SquatResult struct {
	RepCount    int          `json:"rep_count"`
	Stage       string       `json:"stage"`
	LiveAngles  AngleSample  `json:"live_angles"`
	LastRep     *RepSnapshot `json:"last_rep,omitempty"`
	Warnings    []string     `json:"warnings"`
	FrameNumber int64        `json:"frame_number"`
}
