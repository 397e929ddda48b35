package squatHandler

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"

	"SquatSense/internal/api/squat"
	contextPkg "SquatSense/pkg/context"
	"SquatSense/pkg/handlerUtil"
	"SquatSense/pkg/log"
)

// handleWebSocket drives one analysis session for the lifetime of the
// connection. Text messages carry JSON envelopes (landmark frames or a reset
// command); binary messages carry raw camera frames that are forwarded to the
// external pose-estimation service first.
func (h *SquatHandler) handleWebSocket(c *websocket.Conn) {
	h.log.Info("Squat analysis WebSocket client connected")
	defer h.log.Info("Squat analysis WebSocket client disconnected")

	sessionID, err := h.squatService.CreateSession(context.Background())
	if err != nil {
		h.log.Errorf("Error creating squat session: %v", err)
		return
	}
	defer h.squatService.CloseSession(sessionID)

	if err := c.WriteJSON(squat.SessionCreatedResponse{SessionID: sessionID}); err != nil {
		h.log.Errorf("Error sending session handshake: %v", err)
		return
	}

	c.SetPingHandler(func(data string) error {
		h.log.Debug("Received ping, sending pong")
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	maxReadTimeout := 60 * time.Second

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Squat WebSocket error: %v", err)
			} else {
				h.log.Info("Squat WebSocket connection closed")
			}
			break
		}

		switch messageType {
		case websocket.TextMessage:
			if !h.handleEnvelope(c, sessionID, message) {
				return
			}
		case websocket.BinaryMessage:
			if !h.handleVideoFrame(c, sessionID, message) {
				return
			}
		default:
			h.log.Warnf("Received unexpected message type: %d", messageType)
		}
	}
}

// handleEnvelope processes one text message. The return value is false when
// the connection is no longer usable.
func (h *SquatHandler) handleEnvelope(c *websocket.Conn, sessionID string, message []byte) bool {
	var env squat.FrameEnvelope
	if err := json.Unmarshal(message, &env); err != nil {
		h.log.Errorf("Error parsing frame envelope: %v", err)
		return h.writeError(c, "invalid frame envelope")
	}

	if err := h.validator.Struct(env); err != nil {
		h.log.Warnf("Frame envelope failed validation: %v", err)
		return h.writeError(c, "invalid frame envelope: "+err.Error())
	}

	switch env.Type {
	case squat.MessageTypeFrame:
		result, err := h.squatService.ProcessFrame(sessionID, env.LandmarkFrame())
		if err != nil {
			h.log.Errorf("Error processing landmark frame: %v", err)
			return h.writeError(c, err.Error())
		}
		return h.writeResult(c, result)

	case squat.MessageTypeReset:
		if err := h.squatService.ResetSession(sessionID); err != nil {
			h.log.Errorf("Error resetting squat session: %v", err)
			return h.writeError(c, err.Error())
		}
		result, err := h.squatService.SessionState(sessionID)
		if err != nil {
			h.log.Errorf("Error reading session state: %v", err)
			return h.writeError(c, err.Error())
		}
		return h.writeResult(c, result)
	}

	return h.writeError(c, "unknown message type")
}

func (h *SquatHandler) handleVideoFrame(c *websocket.Conn, sessionID string, frame []byte) bool {
	result, err := h.squatService.ProcessVideoFrame(context.Background(), sessionID, frame)
	if err != nil {
		h.log.Errorf("Error processing video frame: %v", err)
		return h.writeError(c, err.Error())
	}
	return h.writeResult(c, result)
}

func (h *SquatHandler) writeResult(c *websocket.Conn, result interface{}) bool {
	if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
		h.log.Errorf("Error setting write deadline: %v", err)
		return false
	}
	if err := c.WriteJSON(result); err != nil {
		h.log.Errorf("Error writing JSON response: %v", err)
		return false
	}
	if err := c.SetWriteDeadline(time.Time{}); err != nil {
		h.log.Errorf("Error resetting write deadline: %v", err)
		return false
	}
	return true
}

func (h *SquatHandler) writeError(c *websocket.Conn, message string) bool {
	if err := c.WriteJSON(map[string]string{"error": message}); err != nil {
		h.log.Errorf("Error sending error response: %v", err)
		return false
	}
	return true
}

func (h *SquatHandler) CreateSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing create session request")

	sessionID, err := h.squatService.CreateSession(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_session")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusCreated, squat.SessionCreatedResponse{
		SessionID: sessionID,
	})
}

func (h *SquatHandler) IngestFrame(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("session ID is required"), ctx.Path())
	}

	var req squat.IngestFrameRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.squatService.ProcessFrame(id, req.LandmarkFrame())
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_frame")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
}

func (h *SquatHandler) SessionState(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("session ID is required"), ctx.Path())
	}

	result, err := h.squatService.SessionState(id)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "session_state")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
}

func (h *SquatHandler) ResetSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing reset session request")

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("session ID is required"), ctx.Path())
	}

	if err := h.squatService.ResetSession(id); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "reset_session")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
		"message": "Session reset successfully",
	})
}

func (h *SquatHandler) CloseSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("session ID is required"), ctx.Path())
	}

	if err := h.squatService.CloseSession(id); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "close_session")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
		"message": "Session closed successfully",
	})
}
