package sizingService

import (
	"FashionistAI/internal/api/sizing"
	"FashionistAI/internal/entity"
	contextPkg "FashionistAI/pkg/context"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// Recommend matches the supplied measurements against the brand's
// size tables for the given category, one lookup per gender. For each
// table the first entry (chart order, smallest size first) whose
// every declared range contains the corresponding measurement wins,
// so overlapping sizes resolve to the smaller label. No fitting entry
// means a nil recommendation for that gender, not an error.
func (s *sizingService) Recommend(ctx context.Context, req sizing.RecommendRequest) (*sizing.RecommendResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	measurements := make(map[entity.MeasurementName]float64, len(req.Measurements))
	for name, value := range req.Measurements {
		measurements[entity.MeasurementName(name)] = value
	}

	if _, ok := measurements[entity.MeasurementChestCircumference]; !ok {
		return nil, sizing.ErrMissingRequired
	}
	if _, ok := measurements[entity.MeasurementWaistCircumference]; !ok {
		return nil, sizing.ErrMissingRequired
	}

	if len(s.sizingRepo.Brands()) == 0 {
		return nil, sizing.ErrNoChartsLoaded
	}

	tables, err := s.sizingRepo.CategoryTables(req.BrandName, req.Category)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"brand":      req.BrandName,
			"category":   req.Category,
			"error":      err.Error(),
		}).Warn("Size chart lookup failed")
		return nil, err
	}

	result := &sizing.RecommendResponse{
		Brand:    req.BrandName,
		Category: req.Category,
	}
	result.Recommendations.MaleSize = firstFit(measurements, tables[entity.GenderMale])
	result.Recommendations.FemaleSize = firstFit(measurements, tables[entity.GenderFemale])

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"brand":      req.BrandName,
		"category":   req.Category,
	}).Debug("Size recommendation computed")

	return result, nil
}

// firstFit returns the label of the first size entry whose every
// declared range contains the matching measurement. An entry that
// declares a range for a measurement the caller did not supply does
// not fit.
func firstFit(measurements map[entity.MeasurementName]float64, entries []entity.SizeEntry) *string {
	for _, entry := range entries {
		if fits(measurements, entry) {
			label := entry.Label
			return &label
		}
	}
	return nil
}

func fits(measurements map[entity.MeasurementName]float64, entry entity.SizeEntry) bool {
	for name, valueRange := range entry.Ranges {
		value, ok := measurements[name]
		if !ok || !valueRange.Contains(value) {
			return false
		}
	}
	return true
}

// ListBrands returns the loaded brand names. The repository keeps
// them sorted, so repeated calls see the same order.
func (s *sizingService) ListBrands(ctx context.Context) []string {
	return s.sizingRepo.Brands()
}
