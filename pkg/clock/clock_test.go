package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockNowAndAdvance(t *testing.T) {
	start := time.Unix(1700000000, 0)
	m := NewMock(start)

	assert.Equal(t, start, m.Now())

	m.Advance(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), m.Now())
}

func TestMockSince(t *testing.T) {
	start := time.Unix(1700000000, 0)
	m := NewMock(start)

	m.Advance(3 * time.Second)
	assert.Equal(t, 3*time.Second, m.Since(start))
}

func TestMockTimerFiresAfterDeadline(t *testing.T) {
	m := NewMock(time.Unix(1700000000, 0))
	timer := m.NewTimer(100 * time.Millisecond)

	m.Advance(50 * time.Millisecond)
	select {
	case <-timer.C():
		t.Fatal("timer fired before its deadline")
	default:
	}

	m.Advance(50 * time.Millisecond)
	select {
	case fired := <-timer.C():
		assert.Equal(t, m.Now(), fired)
	default:
		t.Fatal("timer did not fire at its deadline")
	}
}

func TestMockTimerFiresOnce(t *testing.T) {
	m := NewMock(time.Unix(1700000000, 0))
	timer := m.NewTimer(time.Millisecond)

	m.Advance(time.Second)
	m.Advance(time.Second)

	<-timer.C()
	select {
	case <-timer.C():
		t.Fatal("timer fired twice")
	default:
	}
}

func TestRealTimer(t *testing.T) {
	timer := Real{}.NewTimer(time.Millisecond)

	select {
	case <-timer.C():
	case <-time.After(time.Second):
		t.Fatal("real timer did not fire")
	}
}

func TestRealNowAndSince(t *testing.T) {
	c := Real{}
	before := c.Now()

	require.False(t, before.IsZero())
	assert.GreaterOrEqual(t, c.Since(before), time.Duration(0))
}
