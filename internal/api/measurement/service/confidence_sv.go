package measurementService

import "FashionistAI/internal/entity"

// Aggregate rolls the per-measurement confidences into one overall
// score: an equal-weight mean where a failed measurement counts as 0.
// A partially failed analysis must report visibly lower trust, so
// zeros are deliberately not filtered out.
func (s *measurementService) Aggregate(measurements []entity.Measurement) float64 {
	if len(measurements) == 0 {
		return 0
	}

	var sum float64
	for _, m := range measurements {
		sum += m.Confidence
	}
	return sum / float64(len(measurements))
}
