package squatHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	squatService "SquatSense/internal/api/squat/service"
	"SquatSense/internal/middleware"
)

type SquatHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	squatService squatService.ISquatService
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ss squatService.ISquatService,
) *SquatHandler {
	return &SquatHandler{
		log:          log,
		validator:    validator,
		middleware:   middleware,
		squatService: ss,
	}
}

func (h *SquatHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	squat := srv.Group("/squat")
	squat.Use("/ws", wsMiddleware)
	squat.Get("/ws", websocket.New(h.handleWebSocket))

	squat.Use("/sessions", h.middleware.NewRateLimiter)

	squat.Post("/sessions", h.CreateSession)
	squat.Get("/sessions/:id", h.SessionState)
	squat.Post("/sessions/:id/frames", h.IngestFrame)
	squat.Post("/sessions/:id/reset", h.ResetSession)
	squat.Delete("/sessions/:id", h.CloseSession)
}
