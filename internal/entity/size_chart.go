package entity

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// MeasurementRange is an inclusive [min, max] interval in centimeters.
type MeasurementRange struct {
	MinCm float64 `json:"min_cm"`
	MaxCm float64 `json:"max_cm"`
}

func (r MeasurementRange) Contains(valueCm float64) bool {
	return valueCm >= r.MinCm && valueCm <= r.MaxCm
}

// SizeEntry is one size label with the measurement ranges a body must
// fall into to fit it. Entries are authored smallest size first.
type SizeEntry struct {
	Label  string                               `json:"label"`
	Ranges map[MeasurementName]MeasurementRange `json:"ranges"`
}

// BrandChart is the full size table of one brand: gender, then
// category (tops, bottoms, ...), then ordered size entries. Loaded
// once at startup and never mutated afterwards.
type BrandChart struct {
	Brand      string                         `json:"brand"`
	Categories map[Gender]map[string][]SizeEntry `json:"categories"`
}
