package measurementService

import (
	"FashionistAI/internal/api/measurement"
	"FashionistAI/internal/entity"
	"FashionistAI/pkg/posedetector"
	redisPkg "FashionistAI/pkg/redis"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDetector struct {
	detections map[entity.View]*posedetector.Detection
	errs       map[entity.View]error
	calls      map[entity.View]int
}

func newStubDetector() *stubDetector {
	return &stubDetector{
		detections: make(map[entity.View]*posedetector.Detection),
		errs:       make(map[entity.View]error),
		calls:      make(map[entity.View]int),
	}
}

func (d *stubDetector) DetectPose(frame []byte, view entity.View) (*posedetector.Detection, error) {
	d.calls[view]++
	if err := d.errs[view]; err != nil {
		return nil, err
	}
	return d.detections[view], nil
}

func (d *stubDetector) IsConnected() bool { return true }
func (d *stubDetector) Reconnect() error  { return nil }
func (d *stubDetector) Close()            {}

type fakeCache struct {
	store map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (c *fakeCache) SetDetection(ctx context.Context, key string, payload []byte, expiration time.Duration) error {
	c.store[key] = payload
	return nil
}

func (c *fakeCache) GetDetection(ctx context.Context, key string) ([]byte, error) {
	payload, ok := c.store[key]
	if !ok {
		return nil, redisPkg.ErrCacheMiss
	}
	return payload, nil
}

func (c *fakeCache) DeleteDetection(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func newAnalyzeService(detector posedetector.IPoseDetector, cache redisPkg.IRedis) IMeasurementService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewMeasurementService(logger, detector, cache)
}

func TestAnalyzeMissingFrontImage(t *testing.T) {
	svc := newAnalyzeService(newStubDetector(), nil)

	result, err := svc.Analyze(context.Background(), nil, nil, 175)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, measurement.ErrMissingFrontImage)
}

func TestAnalyzeNoSubjectDetected(t *testing.T) {
	detector := newStubDetector()
	detector.errs[entity.ViewFront] = posedetector.ErrNoSubject
	svc := newAnalyzeService(detector, nil)

	result, err := svc.Analyze(context.Background(), []byte("front"), nil, 175)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, measurement.ErrNoSubjectDetected)
}

func TestAnalyzeDetectorUnavailable(t *testing.T) {
	detector := newStubDetector()
	detector.errs[entity.ViewFront] = errors.New("dial tcp: connection refused")
	svc := newAnalyzeService(detector, nil)

	result, err := svc.Analyze(context.Background(), []byte("front"), nil, 175)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, measurement.ErrDetectorUnavailable)
}

func TestAnalyzeFrontOnly(t *testing.T) {
	detector := newStubDetector()
	detector.detections[entity.ViewFront] = &posedetector.Detection{
		Keypoints: standardFrontPose(),
		MeshData:  json.RawMessage(`{"vertices":[]}`),
	}
	svc := newAnalyzeService(detector, nil)

	result, err := svc.Analyze(context.Background(), []byte("front"), nil, 175)

	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Measurements, len(entity.MeasurementOrder))
	for i, name := range entity.MeasurementOrder {
		assert.Equal(t, name, result.Measurements[i].Name)
	}
	assert.Positive(t, result.Scale.CmPerPixel)
	assert.Positive(t, result.OverallConfidence)
	assert.JSONEq(t, `{"vertices":[]}`, string(result.MeshData))

	chest, ok := result.Measurement(entity.MeasurementChestCircumference)
	require.True(t, ok)
	assert.LessOrEqual(t, chest.Confidence, singleViewConfidenceCap)
}

func TestAnalyzeSideViewRefinesCircumferences(t *testing.T) {
	detector := newStubDetector()
	detector.detections[entity.ViewFront] = &posedetector.Detection{Keypoints: standardFrontPose()}
	detector.detections[entity.ViewSide] = &posedetector.Detection{Keypoints: sidePose(0.9)}
	svc := newAnalyzeService(detector, nil)

	result, err := svc.Analyze(context.Background(), []byte("front"), []byte("side"), 175)

	require.NoError(t, err)
	chest, ok := result.Measurement(entity.MeasurementChestCircumference)
	require.True(t, ok)
	assert.Greater(t, chest.Confidence, singleViewConfidenceCap)
}

func TestAnalyzeSideFailureDegradesToSingleView(t *testing.T) {
	detector := newStubDetector()
	detector.detections[entity.ViewFront] = &posedetector.Detection{Keypoints: standardFrontPose()}
	detector.errs[entity.ViewSide] = errors.New("read timeout")
	svc := newAnalyzeService(detector, nil)

	result, err := svc.Analyze(context.Background(), []byte("front"), []byte("side"), 175)

	require.NoError(t, err)
	require.NotNil(t, result)
	chest, ok := result.Measurement(entity.MeasurementChestCircumference)
	require.True(t, ok)
	assert.LessOrEqual(t, chest.Confidence, singleViewConfidenceCap)
}

func TestAnalyzeInvalidHeightSurfaces(t *testing.T) {
	detector := newStubDetector()
	detector.detections[entity.ViewFront] = &posedetector.Detection{Keypoints: standardFrontPose()}
	svc := newAnalyzeService(detector, nil)

	_, err := svc.Analyze(context.Background(), []byte("front"), nil, -5)

	assert.ErrorIs(t, err, measurement.ErrInvalidHeight)
}

func TestAnalyzeReusesCachedDetection(t *testing.T) {
	detector := newStubDetector()
	detector.detections[entity.ViewFront] = &posedetector.Detection{Keypoints: standardFrontPose()}
	cache := newFakeCache()
	svc := newAnalyzeService(detector, cache)

	frame := []byte("identical front frame")
	first, err := svc.Analyze(context.Background(), frame, nil, 175)
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), frame, nil, 175)
	require.NoError(t, err)

	assert.Equal(t, 1, detector.calls[entity.ViewFront])
	assert.Equal(t, first.Measurements, second.Measurements)
	assert.InDelta(t, first.Scale.CmPerPixel, second.Scale.CmPerPixel, 1e-9)
}

func TestAnalyzeDistinctFramesBypassCache(t *testing.T) {
	detector := newStubDetector()
	detector.detections[entity.ViewFront] = &posedetector.Detection{Keypoints: standardFrontPose()}
	cache := newFakeCache()
	svc := newAnalyzeService(detector, cache)

	_, err := svc.Analyze(context.Background(), []byte("frame a"), nil, 175)
	require.NoError(t, err)
	_, err = svc.Analyze(context.Background(), []byte("frame b"), nil, 175)
	require.NoError(t, err)

	assert.Equal(t, 2, detector.calls[entity.ViewFront])
}
