package measurementService

import (
	"FashionistAI/internal/entity"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateEqualWeights(t *testing.T) {
	svc := newTestService()

	overall := svc.Aggregate([]entity.Measurement{
		{Name: entity.MeasurementShoulderWidth, Confidence: 0.9},
		{Name: entity.MeasurementArmLength, Confidence: 0.6},
		{Name: entity.MeasurementLegLength, Confidence: 0.75},
	})

	assert.InDelta(t, 0.75, overall, 1e-9)
}

func TestAggregateZeroConfidenceDragsMeanDown(t *testing.T) {
	svc := newTestService()

	withFailure := svc.Aggregate([]entity.Measurement{
		{Confidence: 0.8},
		{Confidence: 0.6},
		{Confidence: 0},
	})
	withoutFailure := svc.Aggregate([]entity.Measurement{
		{Confidence: 0.8},
		{Confidence: 0.6},
	})

	assert.InDelta(t, (0.8+0.6)/3, withFailure, 1e-9)
	assert.Less(t, withFailure, withoutFailure)
}

func TestAggregateEmpty(t *testing.T) {
	svc := newTestService()
	assert.Zero(t, svc.Aggregate(nil))
}
