package handlerUtil

import (
	"FashionistAI/internal/api/measurement"
	"FashionistAI/internal/api/sizing"
	"FashionistAI/pkg/log"
	"FashionistAI/pkg/response"
	"errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) && !isDomainError(err) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	// Measurement domain errors
	if errors.Is(err, measurement.ErrInvalidHeight) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid height supplied")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Height is required and must be between 1 and 250 cm",
			"code":    "INVALID_HEIGHT",
		})
	}

	if errors.Is(err, measurement.ErrInsufficientKeypoints) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Insufficient keypoints for calibration")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "The photo does not show enough of the body to calibrate measurements",
			"code":    "INSUFFICIENT_KEYPOINTS",
		})
	}

	if errors.Is(err, measurement.ErrNoSubjectDetected) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("No subject detected in photo")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Could not detect a person in the photo",
			"code":    "NO_SUBJECT_DETECTED",
		})
	}

	if errors.Is(err, measurement.ErrMissingFrontImage) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Front image missing")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A front-view photo is required",
			"code":    "MISSING_FRONT_IMAGE",
		})
	}

	if errors.Is(err, measurement.ErrDetectorUnavailable) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Pose detection service unavailable")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "Pose detection service is unavailable, try again later",
			"code":    "DETECTOR_UNAVAILABLE",
		})
	}

	// Sizing domain errors
	if errors.Is(err, sizing.ErrUnknownBrand) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Unknown brand")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Brand not found in size reference data",
			"code":    "UNKNOWN_BRAND",
		})
	}

	if errors.Is(err, sizing.ErrUnknownCategory) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Unknown category")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Category not found for this brand",
			"code":    "UNKNOWN_CATEGORY",
		})
	}

	if errors.Is(err, sizing.ErrNoChartsLoaded) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("No size charts loaded")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Size reference data is not available",
			"code":    "NO_CHARTS_LOADED",
		})
	}

	if errors.Is(err, sizing.ErrMissingRequired) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Required measurements missing")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Chest and waist circumference measurements are required",
			"code":    "MISSING_REQUIRED_MEASUREMENTS",
		})
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func isDomainError(err error) bool {
	domainErrors := []error{
		measurement.ErrInvalidHeight,
		measurement.ErrInsufficientKeypoints,
		measurement.ErrNoSubjectDetected,
		measurement.ErrMissingFrontImage,
		measurement.ErrDetectorUnavailable,
		sizing.ErrUnknownBrand,
		sizing.ErrUnknownCategory,
		sizing.ErrNoChartsLoaded,
		sizing.ErrMissingRequired,
	}
	for _, domainErr := range domainErrors {
		if errors.Is(err, domainErr) {
			return true
		}
	}
	return false
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
