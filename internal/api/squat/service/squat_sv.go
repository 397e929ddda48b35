package squatService

import (
	"golang.org/x/net/context"

	"SquatSense/internal/api/squat"
	"SquatSense/internal/entity"
	"SquatSense/pkg/log"
	squatPkg "SquatSense/pkg/squat"
)

func (s *squatService) CreateSession(ctx context.Context) (string, error) {
	id, err := s.utils.NewULIDFromTimestamp(s.clock.Now())
	if err != nil {
		s.log.WithFields(log.Fields{
			"error": err.Error(),
		}).Error("Failed to generate session ID")
		return "", err
	}

	s.mu.Lock()
	s.sessions[id] = squatPkg.New(s.clock)
	s.mu.Unlock()

	s.log.WithFields(log.Fields{
		"session_id": id,
	}).Debug("Squat session created")

	return id, nil
}

func (s *squatService) analyzer(sessionID string) (*squatPkg.Analyzer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.sessions[sessionID]
	if !ok {
		return nil, squat.ErrSessionNotFound
	}
	return a, nil
}

func (s *squatService) ProcessFrame(sessionID string, frame entity.LandmarkFrame) (*entity.SquatResult, error) {
	a, err := s.analyzer(sessionID)
	if err != nil {
		return nil, err
	}

	result := a.ProcessFrame(frame)
	return &result, nil
}

func (s *squatService) ProcessVideoFrame(ctx context.Context, sessionID string, frame []byte) (*entity.SquatResult, error) {
	a, err := s.analyzer(sessionID)
	if err != nil {
		return nil, err
	}

	landmarks, err := s.poseDetector.ProcessFrame(frame)
	if err != nil {
		s.log.WithFields(log.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Pose estimation failed")
		return nil, squat.ErrPoseServiceUnavailable
	}

	result := a.ProcessFrame(*landmarks)
	return &result, nil
}

func (s *squatService) ResetSession(sessionID string) error {
	a, err := s.analyzer(sessionID)
	if err != nil {
		return err
	}

	a.Reset()

	s.log.WithFields(log.Fields{
		"session_id": sessionID,
	}).Debug("Squat session reset")

	return nil
}

func (s *squatService) SessionState(sessionID string) (*entity.SquatResult, error) {
	a, err := s.analyzer(sessionID)
	if err != nil {
		return nil, err
	}

	result := a.State()
	return &result, nil
}

func (s *squatService) CloseSession(sessionID string) error {
	s.mu.Lock()
	a, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	if !ok {
		return squat.ErrSessionNotFound
	}

	a.Close()

	s.log.WithFields(log.Fields{
		"session_id": sessionID,
	}).Debug("Squat session closed")

	return nil
}
