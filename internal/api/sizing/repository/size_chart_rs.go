package sizingRepository

import (
	"FashionistAI/internal/api/sizing"
	"FashionistAI/internal/entity"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

// chartFile mirrors the on-disk layout: one JSON file per brand,
// categories keyed by gender, size entries ordered smallest first.
type chartFile struct {
	Brand      string                             `json:"brand,omitempty"`
	Categories map[string]map[string][]chartEntry `json:"categories"`
}

type chartEntry struct {
	Label string    `json:"label"`
	Unit  string    `json:"unit,omitempty"`
	Chest []float64 `json:"chest,omitempty"`
	Waist []float64 `json:"waist,omitempty"`
}

func loadCharts(log *logrus.Logger, chartsDir string) (map[string]entity.BrandChart, []string, error) {
	entries, err := os.ReadDir(chartsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read size charts directory %s: %w", chartsDir, err)
	}

	charts := make(map[string]entity.BrandChart)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}

		path := filepath.Join(chartsDir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read size chart %s: %w", path, err)
		}

		var file chartFile
		if err := jsoniter.Unmarshal(data, &file); err != nil {
			return nil, nil, fmt.Errorf("failed to parse size chart %s: %w", path, err)
		}

		brand := strings.TrimSuffix(e.Name(), ".json")
		chart, err := makeBrandChart(brand, file)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid size chart %s: %w", path, err)
		}

		charts[brand] = chart
		log.Infof("Loaded size chart for brand %q (%d gender tables)", brand, len(chart.Categories))
	}

	if len(charts) == 0 {
		log.Warnf("No size charts found in %s", chartsDir)
	}

	brands := make([]string, 0, len(charts))
	for brand := range charts {
		brands = append(brands, brand)
	}
	sort.Strings(brands)

	return charts, brands, nil
}

func makeBrandChart(brand string, file chartFile) (entity.BrandChart, error) {
	chart := entity.BrandChart{
		Brand:      brand,
		Categories: make(map[entity.Gender]map[string][]entity.SizeEntry, len(file.Categories)),
	}

	for genderKey, categories := range file.Categories {
		gender := entity.Gender(genderKey)
		if gender != entity.GenderMale && gender != entity.GenderFemale {
			return entity.BrandChart{}, fmt.Errorf("unknown gender key %q", genderKey)
		}

		chart.Categories[gender] = make(map[string][]entity.SizeEntry, len(categories))
		for category, rawEntries := range categories {
			sizeEntries := make([]entity.SizeEntry, 0, len(rawEntries))
			for _, raw := range rawEntries {
				entry, err := makeSizeEntry(raw)
				if err != nil {
					return entity.BrandChart{}, fmt.Errorf("category %q size %q: %w", category, raw.Label, err)
				}
				sizeEntries = append(sizeEntries, entry)
			}
			chart.Categories[gender][category] = sizeEntries
		}
	}

	return chart, nil
}

func makeSizeEntry(raw chartEntry) (entity.SizeEntry, error) {
	if raw.Label == "" {
		return entity.SizeEntry{}, fmt.Errorf("missing size label")
	}

	entry := entity.SizeEntry{
		Label:  raw.Label,
		Ranges: make(map[entity.MeasurementName]entity.MeasurementRange),
	}

	if err := addRange(entry.Ranges, entity.MeasurementChestCircumference, raw.Chest); err != nil {
		return entity.SizeEntry{}, err
	}
	if err := addRange(entry.Ranges, entity.MeasurementWaistCircumference, raw.Waist); err != nil {
		return entity.SizeEntry{}, err
	}

	if len(entry.Ranges) == 0 {
		return entity.SizeEntry{}, fmt.Errorf("no measurement ranges declared")
	}

	return entry, nil
}

func addRange(ranges map[entity.MeasurementName]entity.MeasurementRange, name entity.MeasurementName, bounds []float64) error {
	if len(bounds) == 0 {
		return nil
	}
	if len(bounds) != 2 || bounds[0] > bounds[1] {
		return fmt.Errorf("range for %s must be [min, max]", name)
	}
	ranges[name] = entity.MeasurementRange{MinCm: bounds[0], MaxCm: bounds[1]}
	return nil
}

// Brands returns the loaded brand names in sorted order. The backing
// slice is copied so callers cannot disturb the reference data.
func (r *repository) Brands() []string {
	out := make([]string, len(r.brands))
	copy(out, r.brands)
	return out
}

func (r *repository) Chart(brand string) (entity.BrandChart, bool) {
	chart, ok := r.charts[brand]
	return chart, ok
}

// CategoryTables returns the per-gender size tables of one brand and
// category. A gender without that category is simply absent from the
// result; a category absent from every gender is an error.
func (r *repository) CategoryTables(brand, category string) (map[entity.Gender][]entity.SizeEntry, error) {
	chart, ok := r.charts[brand]
	if !ok {
		return nil, sizing.ErrUnknownBrand
	}

	tables := make(map[entity.Gender][]entity.SizeEntry, 2)
	for gender, categories := range chart.Categories {
		if entries, ok := categories[category]; ok {
			tables[gender] = entries
		}
	}

	if len(tables) == 0 {
		return nil, sizing.ErrUnknownCategory
	}

	return tables, nil
}
