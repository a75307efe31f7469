package config

import (
	measurementHandler "FashionistAI/internal/api/measurement/handler"
	measurementService "FashionistAI/internal/api/measurement/service"
	sizingHandler "FashionistAI/internal/api/sizing/handler"
	sizingRepository "FashionistAI/internal/api/sizing/repository"
	sizingService "FashionistAI/internal/api/sizing/service"
	"FashionistAI/internal/middleware"
	"FashionistAI/pkg/posedetector"
	"FashionistAI/pkg/redis"
	"FashionistAI/pkg/utils"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"os"
)

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	handlers     []handler
	poseDetector posedetector.IPoseDetector
	redisServer  redis.IRedis
	sizingRepo   sizingRepository.Repository
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithPoseDetector(poseDetector posedetector.IPoseDetector) ServerOption {
	return func(s *Server) error {
		s.poseDetector = poseDetector
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSizeCharts() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before size charts")
		}

		chartsDir := os.Getenv("SIZE_CHARTS_DIR")
		if chartsDir == "" {
			chartsDir = "./size_charts"
		}

		repo, err := sizingRepository.New(s.log, chartsDir)
		if err != nil {
			s.log.Errorf("Failed to load size charts: %v", err)
			return fmt.Errorf("failed to load size charts: %w", err)
		}
		s.sizingRepo = repo
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Measurement Domain
	measurementServices := measurementService.NewMeasurementService(s.log, s.poseDetector, s.redisServer)
	measurementHandlers := measurementHandler.New(s.log, s.validator, s.middleware, measurementServices, s.utils)

	// Sizing Domain
	sizingServices := sizingService.NewSizingService(s.log, s.sizingRepo)
	sizingHandlers := sizingHandler.New(s.log, s.validator, s.middleware, sizingServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, measurementHandlers, sizingHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	if err := s.engine.Listen(fmt.Sprintf(":%s", port)); err != nil {
		if s.poseDetector != nil {
			s.poseDetector.Close()
		}
		return err
	}

	return nil
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		poseStatus := "inactive"
		if s.poseDetector != nil && s.poseDetector.IsConnected() {
			poseStatus = "active"
		}
		return ctx.JSON(fiber.Map{
			"message":     "Server is Healthy!",
			"pose_status": poseStatus,
		})
	})
}
