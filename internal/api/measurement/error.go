package measurement

import (
	"FashionistAI/pkg/response"
	"net/http"
)

var (
	ErrInvalidHeight         = response.NewError(http.StatusBadRequest, "height must be a positive number of at most 250 cm")
	ErrInsufficientKeypoints = response.NewError(http.StatusBadRequest, "not enough reliable keypoints to calibrate the photo")
	ErrNoSubjectDetected     = response.NewError(http.StatusNotFound, "could not detect a person in the photo")
	ErrMissingFrontImage     = response.NewError(http.StatusBadRequest, "front image is required")
	ErrDetectorUnavailable   = response.NewError(http.StatusServiceUnavailable, "pose detection service unavailable")
)
