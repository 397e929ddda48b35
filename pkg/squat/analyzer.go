// Package squat implements the real-time squat repetition counter and form
// evaluator: joint angles computed from pose landmarks, a hysteresis phase
// machine over the knee angle, per-repetition extrema, depth warnings and
// timed expiry of the transient display state.
package squat

import (
	"sync"
	"time"

	"SquatSense/internal/entity"
	"SquatSense/pkg/clock"
)

// Analyzer is the single owner of all per-session squat state: the repetition
// phase machine, the counter, the active warnings and the last-rep snapshot.
// Every access goes through one mutex, so frame processing, state reads and
// external resets may come from different goroutines.
type Analyzer struct {
	mu    sync.Mutex
	clock clock.Clock

	state       repState
	repCount    int
	live        entity.AngleSample
	lastFrame   int64
	snapshot    entity.RepSnapshot
	hasSnapshot bool
	snapshotGen uint64

	warnings      []string
	lastWarningAt time.Time
}

// New returns an analyzer in the UP phase with neutral extrema. A nil clock
// falls back to real time.
func New(c clock.Clock) *Analyzer {
	if c == nil {
		c = clock.Real{}
	}
	return &Analyzer{
		clock: c,
		state: newRepState(),
	}
}

// ProcessFrame runs one landmark frame through the engine and returns the
// resulting output record. Frames with missing or degenerate landmarks are
// skipped entirely: no state mutates and the prior state is echoed back.
func (a *Analyzer) ProcessFrame(frame entity.LandmarkFrame) entity.SquatResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.expireWarningsLocked()
	a.lastFrame = frame.FrameNumber

	sample, knee, ok := sampleFrame(&frame)
	if !ok {
		return a.resultLocked()
	}

	a.live = sample
	if a.state.apply(sample, knee.X) {
		a.completeRepLocked(sample)
	}
	return a.resultLocked()
}

// State returns the current output record without consuming a frame.
func (a *Analyzer) State() entity.SquatResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.expireWarningsLocked()
	return a.resultLocked()
}

// Reset zeroes the repetition counter, restores neutral extrema, clears the
// warnings and the snapshot, and invalidates any pending display expiry.
// Calling it twice is the same as calling it once.
func (a *Analyzer) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.repCount = 0
	a.state = newRepState()
	a.live = entity.AngleSample{}
	a.snapshot = entity.RepSnapshot{}
	a.hasSnapshot = false
	a.warnings = nil
	a.lastWarningAt = time.Time{}
	a.snapshotGen++
}

// Close invalidates any pending expiry task. The analyzer must not be used
// after Close.
func (a *Analyzer) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.snapshotGen++
}

// completeRepLocked runs the DESCENDING -> UP transition: count, freeze the
// snapshot, evaluate form, reset the per-rep state and arm the display expiry.
func (a *Analyzer) completeRepLocked(sample entity.AngleSample) {
	a.repCount++

	a.snapshot = entity.RepSnapshot{
		AngleSample:    sample,
		MinKneeAngle:   a.state.minKneeAngle,
		MaxKneeAngle:   a.state.maxKneeAngle,
		MaxHipAngle:    a.state.maxHipAngle,
		MaxHeelAngle:   a.state.maxHeelAngle,
		MaxKneeForward: a.state.maxKneeForward,
		Showing:        true,
	}
	a.hasSnapshot = true

	if warns := evaluateForm(&a.state); len(warns) > 0 {
		a.warnings = append(a.warnings, warns...)
		a.lastWarningAt = a.clock.Now()
	}

	a.state.resetForNextRep()
	a.scheduleSnapshotExpiryLocked()
}

func (a *Analyzer) resultLocked() entity.SquatResult {
	res := entity.SquatResult{
		RepCount:    a.repCount,
		Stage:       entity.StageUp,
		LiveAngles:  a.live,
		Warnings:    make([]string, 0, len(a.warnings)),
		FrameNumber: a.lastFrame,
	}
	res.Warnings = append(res.Warnings, a.warnings...)
	if a.state.descending {
		res.Stage = entity.StageDown
	}
	if a.hasSnapshot {
		snap := a.snapshot
		res.LastRep = &snap
	}
	return res
}

// sampleFrame computes the knee, hip and heel angles for a frame. ok is false
// when any required landmark is absent or a joint triple degenerates to
// coincident points; such frames must not reach the tracker.
func sampleFrame(frame *entity.LandmarkFrame) (entity.AngleSample, entity.Point, bool) {
	shoulder, ok := frame.Landmark(entity.RightShoulder)
	if !ok {
		return entity.AngleSample{}, entity.Point{}, false
	}
	hip, ok := frame.Landmark(entity.RightHip)
	if !ok {
		return entity.AngleSample{}, entity.Point{}, false
	}
	knee, ok := frame.Landmark(entity.RightKnee)
	if !ok {
		return entity.AngleSample{}, entity.Point{}, false
	}
	ankle, ok := frame.Landmark(entity.RightAnkle)
	if !ok {
		return entity.AngleSample{}, entity.Point{}, false
	}
	heel, ok := frame.Landmark(entity.RightHeel)
	if !ok {
		return entity.AngleSample{}, entity.Point{}, false
	}
	foot, ok := frame.Landmark(entity.RightFootIndex)
	if !ok {
		return entity.AngleSample{}, entity.Point{}, false
	}

	if coincident(hip, knee) || coincident(ankle, knee) ||
		coincident(shoulder, hip) ||
		coincident(ankle, heel) || coincident(foot, heel) {
		return entity.AngleSample{}, entity.Point{}, false
	}

	sample := entity.AngleSample{
		Knee: JointAngle(hip, knee, ankle),
		Hip:  JointAngle(shoulder, hip, knee),
		Heel: JointAngle(ankle, heel, foot),
	}
	return sample, knee, true
}

func coincident(a, b entity.Point) bool {
	return a.X == b.X && a.Y == b.Y
}
