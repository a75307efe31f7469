package sizing

import (
	"FashionistAI/pkg/response"
	"net/http"
)

var (
	ErrUnknownBrand    = response.NewError(http.StatusNotFound, "brand not found in size reference data")
	ErrUnknownCategory = response.NewError(http.StatusNotFound, "category not found for this brand")
	ErrNoChartsLoaded  = response.NewError(http.StatusInternalServerError, "no size charts loaded")
	ErrMissingRequired = response.NewError(http.StatusBadRequest, "chest and waist circumference are required")
)
