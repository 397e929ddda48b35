package squatService

import (
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"SquatSense/internal/entity"
	"SquatSense/pkg/clock"
	"SquatSense/pkg/posedetect"
	"SquatSense/pkg/squat"
	"SquatSense/pkg/utils"
)

type ISquatService interface {
	CreateSession(ctx context.Context) (string, error)
	ProcessFrame(sessionID string, frame entity.LandmarkFrame) (*entity.SquatResult, error)
	ProcessVideoFrame(ctx context.Context, sessionID string, frame []byte) (*entity.SquatResult, error)
	ResetSession(sessionID string) error
	SessionState(sessionID string) (*entity.SquatResult, error)
	CloseSession(sessionID string) error
}

type squatService struct {
	log          *logrus.Logger
	clock        clock.Clock
	poseDetector posedetect.IPoseDetector
	utils        utils.IUtils

	mu       sync.RWMutex
	sessions map[string]*squat.Analyzer
}

func NewSquatService(
	log *logrus.Logger,
	clk clock.Clock,
	poseDetector posedetect.IPoseDetector,
	utils utils.IUtils,
) ISquatService {
	if clk == nil {
		clk = clock.Real{}
	}
	return &squatService{
		log:          log,
		clock:        clk,
		poseDetector: poseDetector,
		utils:        utils,
		sessions:     make(map[string]*squat.Analyzer),
	}
}
