package sizingRepository

import (
	"FashionistAI/internal/entity"
	"github.com/sirupsen/logrus"
)

// Repository serves the immutable size-chart reference data. Charts
// are loaded once from disk at construction; every accessor after
// that is read-only, so concurrent use needs no locking.
type Repository interface {
	Brands() []string
	Chart(brand string) (entity.BrandChart, bool)
	CategoryTables(brand, category string) (map[entity.Gender][]entity.SizeEntry, error)
}

func New(log *logrus.Logger, chartsDir string) (Repository, error) {
	charts, brands, err := loadCharts(log, chartsDir)
	if err != nil {
		return nil, err
	}

	return &repository{
		log:    log,
		charts: charts,
		brands: brands,
	}, nil
}

type repository struct {
	log    *logrus.Logger
	charts map[string]entity.BrandChart
	brands []string
}
