package squat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"SquatSense/internal/entity"
)

func TestJointAngleRightAngle(t *testing.T) {
	a := entity.Point{X: 0, Y: 0}
	b := entity.Point{X: 1, Y: 0}
	c := entity.Point{X: 1, Y: 1}

	assert.Equal(t, float64(90), JointAngle(a, b, c))
}

func TestJointAngleStraightJoint(t *testing.T) {
	a := entity.Point{X: 0, Y: 0}
	b := entity.Point{X: 0.5, Y: 0}
	c := entity.Point{X: 1, Y: 0}

	assert.Equal(t, float64(0), JointAngle(a, b, c))
}

func TestJointAngleFoldedJoint(t *testing.T) {
	a := entity.Point{X: 0, Y: 0}
	b := entity.Point{X: 1, Y: 0}
	c := entity.Point{X: 0.1, Y: 0}

	assert.Equal(t, float64(180), JointAngle(a, b, c))
}

func TestJointAngleCoincidentPoints(t *testing.T) {
	p := entity.Point{X: 0.5, Y: 0.5}
	other := entity.Point{X: 0.7, Y: 0.2}

	assert.Equal(t, float64(180), JointAngle(p, p, other))
	assert.Equal(t, float64(180), JointAngle(other, p, p))
}

func TestJointAngleSymmetry(t *testing.T) {
	a := entity.Point{X: 0.12, Y: 0.81}
	b := entity.Point{X: 0.47, Y: 0.55}
	c := entity.Point{X: 0.9, Y: 0.73}

	assert.Equal(t, JointAngle(a, b, c), JointAngle(c, b, a))
}

func TestJointAngleWithinRange(t *testing.T) {
	points := []entity.Point{
		{X: 0.1, Y: 0.2}, {X: 0.9, Y: 0.1}, {X: 0.5, Y: 0.5},
		{X: 0.3, Y: 0.8}, {X: 0.7, Y: 0.6}, {X: 0.2, Y: 0.9},
	}

	for _, a := range points {
		for _, b := range points {
			for _, c := range points {
				angle := JointAngle(a, b, c)
				assert.GreaterOrEqual(t, angle, float64(0))
				assert.LessOrEqual(t, angle, float64(180))
			}
		}
	}
}
