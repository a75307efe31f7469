package sizingHandler

import (
	"FashionistAI/internal/api/sizing"
	contextPkg "FashionistAI/pkg/context"
	"FashionistAI/pkg/handlerUtil"
	"FashionistAI/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *SizingHandler) Recommend(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing size recommendation request")

	var req sizing.RecommendRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.sizingService.Recommend(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "recommend_size")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"brand":      req.BrandName,
			"category":   req.Category,
		}).Info("Size recommendation successful")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *SizingHandler) ListBrands(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c := contextPkg.FromFiberCtx(ctx)

	errHandler := handlerUtil.New(h.log)

	brands := h.sizingService.ListBrands(c)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"count":      len(brands),
	}).Debug("Listing size chart brands")

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, sizing.BrandsResponse{
		Brands: brands,
	})
}
