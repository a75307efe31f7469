package measurementService

import (
	"FashionistAI/internal/api/measurement"
	"FashionistAI/internal/entity"
	"FashionistAI/pkg/posedetector"
	redisPkg "FashionistAI/pkg/redis"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/net/context"
)

const detectionCacheTTL = 10 * time.Minute

// Analyze runs the full pipeline for one request: pose detection per
// image, scale calibration, measurement estimation and confidence
// aggregation. A missing or unusable side frame degrades to
// single-view estimation; a missing subject in the front frame is a
// hard failure.
func (s *measurementService) Analyze(ctx context.Context, frontFrame []byte, sideFrame []byte, heightCm float64) (*entity.AnalysisResult, error) {
	if len(frontFrame) == 0 {
		return nil, measurement.ErrMissingFrontImage
	}

	frontDetection, err := s.detectWithCache(ctx, frontFrame, entity.ViewFront)
	if err != nil {
		if errors.Is(err, posedetector.ErrNoSubject) {
			return nil, measurement.ErrNoSubjectDetected
		}
		s.log.Errorf("pose detection failed for front frame: %v", err)
		return nil, measurement.ErrDetectorUnavailable
	}

	var sideKeypoints *entity.KeypointSet
	if len(sideFrame) > 0 {
		sideDetection, err := s.detectWithCache(ctx, sideFrame, entity.ViewSide)
		if err != nil {
			// The side view only refines circumferences; losing it is
			// not fatal.
			s.log.Warnf("side frame unusable, falling back to single view: %v", err)
		} else {
			sideKeypoints = sideDetection.Keypoints
		}
	}

	scale, err := s.Calibrate(frontDetection.Keypoints, heightCm)
	if err != nil {
		return nil, err
	}

	measurements := s.Estimate(frontDetection.Keypoints, sideKeypoints, scale)

	return &entity.AnalysisResult{
		Measurements:      measurements,
		OverallConfidence: s.Aggregate(measurements),
		Scale:             scale,
		MeshData:          frontDetection.MeshData,
	}, nil
}

type cachedDetection struct {
	Keypoints *entity.KeypointSet `json:"keypoints"`
	MeshData  json.RawMessage     `json:"mesh_data,omitempty"`
}

// detectWithCache consults the redis cache before calling the pose
// service; identical frames skip a detector round trip. Cache
// failures degrade silently to a live call.
func (s *measurementService) detectWithCache(ctx context.Context, frame []byte, view entity.View) (*posedetector.Detection, error) {
	key := detectionCacheKey(frame, view)

	if s.cache != nil {
		if payload, err := s.cache.GetDetection(ctx, key); err == nil {
			var cached cachedDetection
			if err := json.Unmarshal(payload, &cached); err == nil && cached.Keypoints != nil {
				return &posedetector.Detection{
					Keypoints: cached.Keypoints,
					MeshData:  cached.MeshData,
				}, nil
			}
			s.log.Warnf("discarding undecodable cached detection for key %s", key)
		} else if !errors.Is(err, redisPkg.ErrCacheMiss) {
			s.log.Warnf("detection cache lookup failed: %v", err)
		}
	}

	detection, err := s.poseDetector.DetectPose(frame, view)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		payload, err := json.Marshal(cachedDetection{
			Keypoints: detection.Keypoints,
			MeshData:  detection.MeshData,
		})
		if err == nil {
			if err := s.cache.SetDetection(ctx, key, payload, detectionCacheTTL); err != nil {
				s.log.Warnf("failed to cache detection: %v", err)
			}
		}
	}

	return detection, nil
}

func detectionCacheKey(frame []byte, view entity.View) string {
	digest := sha256.Sum256(frame)
	return fmt.Sprintf("pose:%s:%s", view, hex.EncodeToString(digest[:]))
}
