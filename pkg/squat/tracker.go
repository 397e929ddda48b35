package squat

import (
	"math"

	"SquatSense/internal/entity"
)

// Knee-angle hysteresis thresholds driving the phase machine. The gap between
// them is the debounce: once a boundary is crossed the angle must cross the
// other boundary before the phase can flip again.
const (
	descendThreshold = 85 // UP -> DESCENDING once the knee angle exceeds this
	ascendThreshold  = 30 // DESCENDING -> UP once the knee angle drops below this
)

// Neutral extrema values, restored at the start of every repetition.
const (
	neutralMinKnee     = 360
	neutralKneeForward = -1
)

// repState is the per-repetition state owned by the analyzer: the phase flag,
// the extrema accumulated since the current descent began, and the
// at-most-once warning guards.
type repState struct {
	descending     bool
	minKneeAngle   float64
	maxKneeAngle   float64
	maxHipAngle    float64
	maxHeelAngle   float64
	maxKneeForward float64

	warnedTooDeep bool
	warnedShallow bool
}

func newRepState() repState {
	return repState{
		minKneeAngle:   neutralMinKnee,
		maxKneeForward: neutralKneeForward,
	}
}

// apply feeds one angle sample into the phase machine and reports whether it
// completed a repetition. kneeX is the knee landmark's horizontal position,
// tracked as forward-travel extremum for the (currently inactive) knee-travel
// form rule.
func (s *repState) apply(sample entity.AngleSample, kneeX float64) bool {
	if s.descending {
		s.minKneeAngle = math.Min(s.minKneeAngle, sample.Knee)
		s.maxKneeAngle = math.Max(s.maxKneeAngle, sample.Knee)
		s.maxHipAngle = math.Max(s.maxHipAngle, sample.Hip)
		s.maxHeelAngle = math.Max(s.maxHeelAngle, sample.Heel)
		s.maxKneeForward = math.Max(s.maxKneeForward, kneeX)

		if sample.Knee < ascendThreshold {
			s.descending = false
			return true
		}
		return false
	}

	if sample.Knee > descendThreshold {
		s.descending = true
		s.minKneeAngle = sample.Knee
		s.maxKneeAngle = sample.Knee
		s.maxHipAngle = sample.Hip
		s.maxHeelAngle = sample.Heel
		s.maxKneeForward = kneeX
	}
	return false
}

// resetForNextRep restores the neutral extrema and clears the warning guards.
// The phase flag is left untouched; completion already set it to UP.
func (s *repState) resetForNextRep() {
	s.minKneeAngle = neutralMinKnee
	s.maxKneeAngle = 0
	s.maxHipAngle = 0
	s.maxHeelAngle = 0
	s.maxKneeForward = neutralKneeForward
	s.warnedTooDeep = false
	s.warnedShallow = false
}
