package measurementHandler

import (
	measurementService "FashionistAI/internal/api/measurement/service"
	"FashionistAI/internal/middleware"
	"FashionistAI/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type MeasurementHandler struct {
	log                *logrus.Logger
	validator          *validator.Validate
	middleware         middleware.Middleware
	measurementService measurementService.IMeasurementService
	utils              utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ms measurementService.IMeasurementService,
	utils utils.IUtils,
) *MeasurementHandler {
	return &MeasurementHandler{
		log:                log,
		validator:          validator,
		middleware:         middleware,
		measurementService: ms,
		utils:              utils,
	}
}

func (h *MeasurementHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	measurement := srv.Group("/measurement")
	measurement.Post("/analyze", h.middleware.NewRateLimiter, h.Analyze)
	measurement.Use("/ws", wsMiddleware)
	measurement.Get("/ws", websocket.New(h.handleAnalyzeWebSocket))
}
