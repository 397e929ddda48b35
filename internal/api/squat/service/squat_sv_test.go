package squatService

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SquatSense/internal/api/squat"
	"SquatSense/internal/entity"
	"SquatSense/pkg/clock"
	"SquatSense/pkg/utils"
)

type stubPoseDetector struct {
	frame *entity.LandmarkFrame
	err   error
}

func (s *stubPoseDetector) ProcessFrame(_ []byte) (*entity.LandmarkFrame, error) {
	return s.frame, s.err
}
func (s *stubPoseDetector) IsConnected() bool { return s.err == nil }
func (s *stubPoseDetector) Reconnect() error  { return s.err }
func (s *stubPoseDetector) Close()            {}

func newTestService(detector *stubPoseDetector) ISquatService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	if detector == nil {
		detector = &stubPoseDetector{}
	}
	return NewSquatService(logger, clock.NewMock(time.Unix(1700000000, 0)), detector, utils.New())
}

// frameAtKnee builds a frame whose right knee reads the given angle, with the
// torso and foot joints held neutral.
func frameAtKnee(frameNumber int64, kneeDeg float64) entity.LandmarkFrame {
	theta := (180 - kneeDeg) * math.Pi / 180

	points := map[int]entity.Point{
		entity.RightShoulder:  {X: 0.5, Y: 0.2},
		entity.RightHip:       {X: 0.5, Y: 0.4},
		entity.RightKnee:      {X: 0.5, Y: 0.6},
		entity.RightAnkle:     {X: 0.5 + 0.2*math.Sin(theta), Y: 0.6 - 0.2*math.Cos(theta)},
		entity.RightHeel:      {},
		entity.RightFootIndex: {},
	}
	ankle := points[entity.RightAnkle]
	points[entity.RightHeel] = entity.Point{X: ankle.X, Y: ankle.Y + 0.05}
	points[entity.RightFootIndex] = entity.Point{X: ankle.X + 0.05, Y: ankle.Y + 0.05}

	var f entity.LandmarkFrame
	f.FrameNumber = frameNumber
	for i, p := range points {
		q := p
		f.Points[i] = &q
	}
	return f
}

func TestCreateSessionGeneratesUniqueIDs(t *testing.T) {
	s := newTestService(nil)

	first, err := s.CreateSession(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := s.CreateSession(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestProcessFrameUnknownSession(t *testing.T) {
	s := newTestService(nil)

	_, err := s.ProcessFrame("nonexistent", entity.LandmarkFrame{})
	assert.ErrorIs(t, err, squat.ErrSessionNotFound)
}

func TestProcessFrameCountsRepetition(t *testing.T) {
	s := newTestService(nil)

	id, err := s.CreateSession(context.Background())
	require.NoError(t, err)

	res, err := s.ProcessFrame(id, frameAtKnee(1, 110))
	require.NoError(t, err)
	assert.Equal(t, entity.StageDown, res.Stage)

	res, err = s.ProcessFrame(id, frameAtKnee(2, 20))
	require.NoError(t, err)
	assert.Equal(t, entity.StageUp, res.Stage)
	assert.Equal(t, 1, res.RepCount)
}

func TestProcessVideoFrame(t *testing.T) {
	frame := frameAtKnee(1, 110)
	s := newTestService(&stubPoseDetector{frame: &frame})

	id, err := s.CreateSession(context.Background())
	require.NoError(t, err)

	res, err := s.ProcessVideoFrame(context.Background(), id, []byte("jpeg bytes"))
	require.NoError(t, err)
	assert.Equal(t, entity.StageDown, res.Stage)
}

func TestProcessVideoFrameDetectorFailure(t *testing.T) {
	s := newTestService(&stubPoseDetector{err: errors.New("connection refused")})

	id, err := s.CreateSession(context.Background())
	require.NoError(t, err)

	_, err = s.ProcessVideoFrame(context.Background(), id, []byte("jpeg bytes"))
	assert.ErrorIs(t, err, squat.ErrPoseServiceUnavailable)
}

func TestResetSession(t *testing.T) {
	s := newTestService(nil)

	id, err := s.CreateSession(context.Background())
	require.NoError(t, err)

	_, err = s.ProcessFrame(id, frameAtKnee(1, 110))
	require.NoError(t, err)
	_, err = s.ProcessFrame(id, frameAtKnee(2, 20))
	require.NoError(t, err)

	require.NoError(t, s.ResetSession(id))

	res, err := s.SessionState(id)
	require.NoError(t, err)
	assert.Equal(t, 0, res.RepCount)
	assert.Equal(t, entity.StageUp, res.Stage)
	assert.Nil(t, res.LastRep)

	assert.ErrorIs(t, s.ResetSession("nonexistent"), squat.ErrSessionNotFound)
}

func TestCloseSession(t *testing.T) {
	s := newTestService(nil)

	id, err := s.CreateSession(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.CloseSession(id))

	_, err = s.SessionState(id)
	assert.ErrorIs(t, err, squat.ErrSessionNotFound)

	assert.ErrorIs(t, s.CloseSession(id), squat.ErrSessionNotFound)
}
