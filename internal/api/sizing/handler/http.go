package sizingHandler

import (
	sizingService "FashionistAI/internal/api/sizing/service"
	"FashionistAI/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SizingHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	sizingService sizingService.ISizingService
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ss sizingService.ISizingService,
) *SizingHandler {
	return &SizingHandler{
		log:           log,
		validator:     validator,
		middleware:    middleware,
		sizingService: ss,
	}
}

func (h *SizingHandler) Start(srv fiber.Router) {
	sizing := srv.Group("/sizing")
	sizing.Post("/recommend", h.middleware.NewRateLimiter, h.Recommend)
	sizing.Get("/brands", h.ListBrands)
}
