package squat

import "time"

// Display timeouts for transient UI state.
const (
	snapshotTTL = 3000 * time.Millisecond // last-rep snapshot reverts to live view
	warningTTL  = 2000 * time.Millisecond // warnings cleared, measured from the last one
)

// scheduleSnapshotExpiryLocked arms the last-rep display timeout. The
// generation counter makes the pending task cancellable: bumping it (here, or
// in Reset/Close) orphans every earlier task, so at most one scheduled expiry
// is ever live and a stale fire can never resurrect cleared state. The timer
// itself is never stopped; an orphaned task fires, fails the generation check
// and exits.
func (a *Analyzer) scheduleSnapshotExpiryLocked() {
	a.snapshotGen++
	gen := a.snapshotGen

	t := a.clock.NewTimer(snapshotTTL)
	go func() {
		<-t.C()
		a.expireSnapshot(gen)
	}()
}

func (a *Analyzer) expireSnapshot(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if gen != a.snapshotGen {
		return // superseded or reset since this task was scheduled
	}
	a.snapshot.Showing = false
}

// expireWarningsLocked clears the active warnings once the timeout since the
// last emitted warning has elapsed. Evaluated on every frame tick rather than
// via a dedicated timer.
func (a *Analyzer) expireWarningsLocked() {
	if a.lastWarningAt.IsZero() {
		return
	}
	if a.clock.Since(a.lastWarningAt) > warningTTL {
		a.warnings = nil
		a.lastWarningAt = time.Time{}
	}
}
