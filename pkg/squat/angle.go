package squat

import (
	"math"

	"SquatSense/internal/entity"
)

// JointAngle returns the joint angle at vertex b in whole degrees, using the
// supplementary convention: 180 minus the angle between the vectors b->a and
// b->c. A straight joint (a, b, c collinear with b in the middle) reads 0 and
// a fully folded joint reads 180, so a deeper squat yields a larger knee angle.
func JointAngle(a, b, c entity.Point) float64 {
	bax := a.X - b.X
	bay := a.Y - b.Y
	bcx := c.X - b.X
	bcy := c.Y - b.Y

	magBA := math.Hypot(bax, bay)
	magBC := math.Hypot(bcx, bcy)
	if magBA == 0 || magBC == 0 {
		// Coincident points leave the angle undefined; report a fully
		// folded joint instead of dividing by zero. Frame sampling drops
		// degenerate triples before they reach the tracker, so this value
		// only surfaces to direct callers.
		return 180
	}

	cos := (bax*bcx + bay*bcy) / (magBA * magBC)
	// Clamp before Acos: accumulated floating-point error can push the
	// cosine of near-collinear vectors past +/-1 and yield NaN.
	cos = math.Max(-1, math.Min(1, cos))

	interior := math.Acos(cos) * 180 / math.Pi
	return math.Round(180 - interior)
}
