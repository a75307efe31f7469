package measurementService

import (
	"FashionistAI/internal/api/measurement"
	"FashionistAI/internal/entity"
	"math"
)

const (
	// Joints below this confidence are treated as undetected.
	reliableConfidence = 0.3

	maxHeightCm    = 250.0
	minPixelHeight = 20.0

	// The topmost/bottommost keypoints are not the head crown or the
	// sole, so the raw pixel extent is inflated by empirical margins.
	// Fallback anchors sit further from the body's true extremes and
	// get larger margins.
	headMarginFrac     = 0.05
	shoulderMarginFrac = 0.18
	footMarginFrac     = 0.02
	kneeMarginFrac     = 0.12
)

// Calibrate derives the cm-per-pixel scale factor of one photo from
// the subject's known height and the detected vertical pixel extent.
// Pure function: no state is read or written.
func (s *measurementService) Calibrate(keypoints *entity.KeypointSet, knownHeightCm float64) (entity.ScaleFactor, error) {
	if math.IsNaN(knownHeightCm) || math.IsInf(knownHeightCm, 0) ||
		knownHeightCm <= 0 || knownHeightCm > maxHeightCm {
		return entity.ScaleFactor{}, measurement.ErrInvalidHeight
	}

	topY, topMargin, ok := topAnchor(keypoints)
	if !ok {
		return entity.ScaleFactor{}, measurement.ErrInsufficientKeypoints
	}

	bottomY, bottomMargin, ok := bottomAnchor(keypoints)
	if !ok {
		return entity.ScaleFactor{}, measurement.ErrInsufficientKeypoints
	}

	rawPixels := math.Abs(bottomY - topY)
	if rawPixels < minPixelHeight {
		return entity.ScaleFactor{}, measurement.ErrInsufficientKeypoints
	}

	adjustedPixels := rawPixels * (1 + topMargin + bottomMargin)

	return entity.ScaleFactor{CmPerPixel: knownHeightCm / adjustedPixels}, nil
}

// topAnchor picks the topmost reliable head keypoint (nose or eyes),
// falling back to the shoulder midpoint when the head is not detected.
func topAnchor(keypoints *entity.KeypointSet) (y float64, margin float64, ok bool) {
	headJoints := []entity.JointName{entity.JointNose, entity.JointLeftEye, entity.JointRightEye}

	found := false
	topY := math.Inf(1)
	for _, name := range headJoints {
		kp, reliable := keypoints.Reliable(name, reliableConfidence)
		if !reliable {
			continue
		}
		if kp.Y < topY {
			topY = kp.Y
		}
		found = true
	}
	if found {
		return topY, headMarginFrac, true
	}

	mid, midOK := midpointY(keypoints, entity.JointLeftShoulder, entity.JointRightShoulder)
	if midOK {
		return mid, shoulderMarginFrac, true
	}

	return 0, 0, false
}

// bottomAnchor prefers the ankle midpoint, then the knee midpoint.
func bottomAnchor(keypoints *entity.KeypointSet) (y float64, margin float64, ok bool) {
	if mid, midOK := midpointY(keypoints, entity.JointLeftAnkle, entity.JointRightAnkle); midOK {
		return mid, footMarginFrac, true
	}
	if mid, midOK := midpointY(keypoints, entity.JointLeftKnee, entity.JointRightKnee); midOK {
		return mid, kneeMarginFrac, true
	}
	return 0, 0, false
}

func midpointY(keypoints *entity.KeypointSet, left, right entity.JointName) (float64, bool) {
	l, lok := keypoints.Reliable(left, reliableConfidence)
	r, rok := keypoints.Reliable(right, reliableConfidence)
	if !lok || !rok {
		return 0, false
	}
	return (l.Y + r.Y) / 2, true
}
