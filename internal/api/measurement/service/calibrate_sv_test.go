package measurementService

import (
	"FashionistAI/internal/api/measurement"
	"FashionistAI/internal/entity"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalibrateRejectsInvalidHeight(t *testing.T) {
	svc := newTestService()
	keypoints := standardFrontPose()

	for _, height := range []float64{0, -10, 250.5, 9000, math.NaN(), math.Inf(1)} {
		_, err := svc.Calibrate(keypoints, height)
		assert.ErrorIs(t, err, measurement.ErrInvalidHeight, "height %v", height)
	}
}

func TestCalibrateAcceptsBoundaryHeight(t *testing.T) {
	svc := newTestService()

	scale, err := svc.Calibrate(standardFrontPose(), 250)
	require.NoError(t, err)
	assert.Greater(t, scale.CmPerPixel, 0.0)
}

func TestCalibrateFailsWhenAllKeypointsUnreliable(t *testing.T) {
	svc := newTestService()

	keypoints := buildKeypointSet(entity.ViewFront, map[entity.JointName]testPoint{
		entity.JointNose:       {100, 35, 0.1},
		entity.JointLeftAnkle:  {90, 432, 0.2},
		entity.JointRightAnkle: {110, 432, 0.25},
	})

	_, err := svc.Calibrate(keypoints, 175)
	assert.ErrorIs(t, err, measurement.ErrInsufficientKeypoints)
}

func TestCalibrateNoseToAnkles(t *testing.T) {
	svc := newTestService()

	keypoints := buildKeypointSet(entity.ViewFront, map[entity.JointName]testPoint{
		entity.JointNose:       {100, 35, 0.95},
		entity.JointLeftAnkle:  {90, 432, 0.9},
		entity.JointRightAnkle: {110, 432, 0.9},
	})

	scale, err := svc.Calibrate(keypoints, 175)
	require.NoError(t, err)

	// Raw extent 397px, inflated by the head (5%) and foot (2%)
	// margins: 175 / (397 * 1.07).
	assert.InDelta(t, 175.0/(397.0*1.07), scale.CmPerPixel, 1e-9)
}

func TestCalibrateScaleHalvesWhenPixelExtentDoubles(t *testing.T) {
	svc := newTestService()

	near := buildKeypointSet(entity.ViewFront, map[entity.JointName]testPoint{
		entity.JointNose:       {100, 100, 0.95},
		entity.JointLeftAnkle:  {100, 500, 0.9},
		entity.JointRightAnkle: {100, 500, 0.9},
	})
	far := buildKeypointSet(entity.ViewFront, map[entity.JointName]testPoint{
		entity.JointNose:       {100, 100, 0.95},
		entity.JointLeftAnkle:  {100, 300, 0.9},
		entity.JointRightAnkle: {100, 300, 0.9},
	})

	nearScale, err := svc.Calibrate(near, 180)
	require.NoError(t, err)
	farScale, err := svc.Calibrate(far, 180)
	require.NoError(t, err)

	assert.InDelta(t, farScale.CmPerPixel/2, nearScale.CmPerPixel, 1e-9)
}

func TestCalibrateFallsBackToShouldersAndKnees(t *testing.T) {
	svc := newTestService()

	keypoints := buildKeypointSet(entity.ViewFront, map[entity.JointName]testPoint{
		entity.JointLeftShoulder:  {60, 80, 0.8},
		entity.JointRightShoulder: {140, 80, 0.8},
		entity.JointLeftKnee:      {65, 320, 0.7},
		entity.JointRightKnee:     {135, 320, 0.7},
	})

	scale, err := svc.Calibrate(keypoints, 175)
	require.NoError(t, err)

	// Shoulder (18%) and knee (12%) fallback margins apply.
	assert.InDelta(t, 175.0/(240.0*1.30), scale.CmPerPixel, 1e-9)
}

func TestCalibrateRequiresBothMidpointJoints(t *testing.T) {
	svc := newTestService()

	// Only one ankle and one knee: no usable bottom anchor.
	keypoints := buildKeypointSet(entity.ViewFront, map[entity.JointName]testPoint{
		entity.JointNose:      {100, 35, 0.95},
		entity.JointLeftAnkle: {90, 432, 0.9},
		entity.JointLeftKnee:  {95, 320, 0.9},
	})

	_, err := svc.Calibrate(keypoints, 175)
	assert.ErrorIs(t, err, measurement.ErrInsufficientKeypoints)
}

func TestCalibrateRejectsTinyPixelExtent(t *testing.T) {
	svc := newTestService()

	keypoints := buildKeypointSet(entity.ViewFront, map[entity.JointName]testPoint{
		entity.JointNose:       {100, 100, 0.95},
		entity.JointLeftAnkle:  {100, 110, 0.9},
		entity.JointRightAnkle: {100, 110, 0.9},
	})

	_, err := svc.Calibrate(keypoints, 175)
	assert.ErrorIs(t, err, measurement.ErrInsufficientKeypoints)
}
