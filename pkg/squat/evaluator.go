package squat

// Depth thresholds on the deepest knee angle reached during a repetition.
const (
	tooDeepThreshold  = 140
	minDepthThreshold = 100
)

// Form warning messages.
const (
	WarnTooDeep       = "too deep, protect your knees"
	WarnNotDeepEnough = "not deep enough, go deeper"
)

// evaluateForm inspects a completed repetition's extrema and returns the
// warnings raised, at most one per rule per repetition. Only the two depth
// rules are active; knee-forward-travel and back-angle checks are not enabled,
// but the extrema they would need (maxKneeForward, maxHipAngle) are tracked
// and exported so they can be added without changing the tracker.
func evaluateForm(s *repState) []string {
	var warnings []string

	switch {
	case s.maxKneeAngle > tooDeepThreshold:
		if !s.warnedTooDeep {
			s.warnedTooDeep = true
			warnings = append(warnings, WarnTooDeep)
		}
	case s.maxKneeAngle < minDepthThreshold:
		if !s.warnedShallow {
			s.warnedShallow = true
			warnings = append(warnings, WarnNotDeepEnough)
		}
	}

	return warnings
}
