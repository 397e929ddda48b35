package squat

import "SquatSense/internal/entity"

// WebSocket envelope message types.
const (
	MessageTypeFrame = "frame"
	MessageTypeReset = "reset"
)

type PointDTO struct {
	X float64 `json:"x" validate:"min=0,max=1"`
	Y float64 `json:"y" validate:"min=0,max=1"`
}

// FrameEnvelope is a text message on the analysis WebSocket: either a
// landmark frame to analyze or a reset command. Landmark slots the pose model
// did not detect arrive as null.
type FrameEnvelope struct {
	Type        string      `json:"type" validate:"required,oneof=frame reset"`
	FrameNumber int64       `json:"frame_number" validate:"min=0"`
	Landmarks   []*PointDTO `json:"landmarks" validate:"max=33,dive,omitempty"`
}

// IngestFrameRequest is the REST body for frame ingestion on detached
// sessions.
type IngestFrameRequest struct {
	FrameNumber int64       `json:"frame_number" validate:"min=0"`
	Landmarks   []*PointDTO `json:"landmarks" validate:"required,max=33,dive,omitempty"`
}

type SessionCreatedResponse struct {
	SessionID string `json:"session_id"`
}

// toLandmarkFrame converts the wire payload into the engine's fixed-shape
// frame. Entries beyond the 33 known slots are dropped.
func toLandmarkFrame(frameNumber int64, landmarks []*PointDTO) entity.LandmarkFrame {
	frame := entity.LandmarkFrame{FrameNumber: frameNumber}
	for i, p := range landmarks {
		if i >= entity.NumLandmarks {
			break
		}
		if p == nil {
			continue
		}
		frame.Points[i] = &entity.Point{X: p.X, Y: p.Y}
	}
	return frame
}

func (e FrameEnvelope) LandmarkFrame() entity.LandmarkFrame {
	return toLandmarkFrame(e.FrameNumber, e.Landmarks)
}

func (r IngestFrameRequest) LandmarkFrame() entity.LandmarkFrame {
	return toLandmarkFrame(r.FrameNumber, r.Landmarks)
}
