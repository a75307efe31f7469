package measurementHandler

import (
	"FashionistAI/internal/api/measurement"
	contextPkg "FashionistAI/pkg/context"
	"FashionistAI/pkg/handlerUtil"
	"FashionistAI/pkg/log"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *MeasurementHandler) Analyze(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 15*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing body analysis request")

	var frontFrame, sideFrame []byte
	var heightCm float64

	file, err := ctx.FormFile("front_image")
	if err == nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"file_name":  file.Filename,
			"file_size":  file.Size,
		}).Debug("Processing file upload")

		heightCm, err = strconv.ParseFloat(ctx.FormValue("height"), 64)
		if err != nil {
			return errHandler.Handle(ctx, requestID, measurement.ErrInvalidHeight, ctx.Path(), "parse_height")
		}

		frontFrame, err = h.readImageFile(file)
		if err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_front_image")
		}

		if sideFile, sideErr := ctx.FormFile("side_image"); sideErr == nil {
			sideFrame, err = h.readImageFile(sideFile)
			if err != nil {
				return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_side_image")
			}
		}
	} else {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
		}).Debug("Processing JSON request")

		var req measurement.AnalyzeRequest
		if err := ctx.BodyParser(&req); err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
		}

		if err := h.validator.Struct(req); err != nil {
			return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
		}

		heightCm = req.HeightCm

		frontFrame, err = h.utils.DecodeBase64Image(req.FrontImageBase64)
		if err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "decode_front_image")
		}

		if req.SideImageBase64 != "" {
			sideFrame, err = h.utils.DecodeBase64Image(req.SideImageBase64)
			if err != nil {
				return errHandler.Handle(ctx, requestID, err, ctx.Path(), "decode_side_image")
			}
		}
	}

	result, err := h.measurementService.Analyze(c, frontFrame, sideFrame, heightCm)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "analyze_body")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id":         requestID,
			"path":               ctx.Path(),
			"overall_confidence": result.OverallConfidence,
			"two_view":           len(sideFrame) > 0,
		}).Info("Body analysis successful")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, measurement.AnalyzeResponse{
			Data: *result,
		})
	}
}

func (h *MeasurementHandler) readImageFile(file *multipart.FileHeader) ([]byte, error) {
	if err := h.utils.ValidateImageFile(file); err != nil {
		return nil, err
	}

	content, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer content.Close()

	return h.utils.ReadFileBytes(content)
}
