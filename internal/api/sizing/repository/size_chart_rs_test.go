package sizingRepository

import (
	"FashionistAI/internal/api/sizing"
	"FashionistAI/internal/entity"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) Repository {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	repo, err := New(logger, "testdata")
	require.NoError(t, err)
	return repo
}

func TestBrandsSortedAndCopied(t *testing.T) {
	repo := newTestRepository(t)

	brands := repo.Brands()
	require.Equal(t, []string{"acme", "northtrail"}, brands)

	brands[0] = "mutated"
	assert.Equal(t, []string{"acme", "northtrail"}, repo.Brands())
}

func TestChartLookup(t *testing.T) {
	repo := newTestRepository(t)

	chart, ok := repo.Chart("acme")
	require.True(t, ok)
	assert.Equal(t, "acme", chart.Brand)

	maleTops := chart.Categories[entity.GenderMale]["tops"]
	require.Len(t, maleTops, 3)
	assert.Equal(t, "S", maleTops[0].Label)
	assert.Equal(t, entity.MeasurementRange{MinCm: 86, MaxCm: 91},
		maleTops[0].Ranges[entity.MeasurementChestCircumference])

	_, ok = repo.Chart("nobody")
	assert.False(t, ok)
}

func TestCategoryTables(t *testing.T) {
	repo := newTestRepository(t)

	tables, err := repo.CategoryTables("acme", "tops")
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Len(t, tables[entity.GenderMale], 3)
	assert.Len(t, tables[entity.GenderFemale], 2)
}

func TestCategoryTablesSingleGender(t *testing.T) {
	repo := newTestRepository(t)

	tables, err := repo.CategoryTables("acme", "bottoms")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Contains(t, tables, entity.GenderMale)
	assert.NotContains(t, tables, entity.GenderFemale)
}

func TestCategoryTablesUnknownBrand(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.CategoryTables("nobody", "tops")
	assert.ErrorIs(t, err, sizing.ErrUnknownBrand)
}

func TestCategoryTablesUnknownCategory(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.CategoryTables("acme", "hats")
	assert.ErrorIs(t, err, sizing.ErrUnknownCategory)
}

func TestBottomsEntriesDeclareNoChestRange(t *testing.T) {
	repo := newTestRepository(t)

	tables, err := repo.CategoryTables("acme", "bottoms")
	require.NoError(t, err)
	for _, entry := range tables[entity.GenderMale] {
		assert.NotContains(t, entry.Ranges, entity.MeasurementChestCircumference)
		assert.Contains(t, entry.Ranges, entity.MeasurementWaistCircumference)
	}
}

func writeChart(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadRejectsInvalidRange(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	dir := t.TempDir()
	writeChart(t, dir, "bad.json", `{
		"categories": {
			"male": {
				"tops": [{ "label": "M", "chest": [97, 91] }]
			}
		}
	}`)

	_, err := New(logger, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be [min, max]")
}

func TestLoadRejectsUnknownGender(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	dir := t.TempDir()
	writeChart(t, dir, "bad.json", `{
		"categories": {
			"kids": {
				"tops": [{ "label": "M", "chest": [91, 97] }]
			}
		}
	}`)

	_, err := New(logger, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown gender")
}

func TestLoadRejectsEntryWithoutRanges(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	dir := t.TempDir()
	writeChart(t, dir, "bad.json", `{
		"categories": {
			"male": {
				"tops": [{ "label": "M" }]
			}
		}
	}`)

	_, err := New(logger, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no measurement ranges")
}

func TestLoadMissingDirectory(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	_, err := New(logger, filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestLoadIgnoresNonChartFiles(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	dir := t.TempDir()
	writeChart(t, dir, "README.md", "not a chart")
	writeChart(t, dir, "acme.json", `{
		"categories": {
			"male": {
				"tops": [{ "label": "M", "chest": [91, 97] }]
			}
		}
	}`)

	repo, err := New(logger, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"acme"}, repo.Brands())
}
