package sizing

type RecommendRequest struct {
	Measurements map[string]float64 `json:"measurements" validate:"required"`
	BrandName    string             `json:"brand_name" validate:"required"`
	Category     string             `json:"category" validate:"required"`
}

// Recommendation carries at most one size label per gender table. A
// nil size means the measurements fit none of that gender's sizes,
// which is a valid outcome and distinct from an unknown brand or
// category.
type Recommendation struct {
	MaleSize   *string `json:"male_size"`
	FemaleSize *string `json:"female_size"`
}

type RecommendResponse struct {
	Brand           string         `json:"brand"`
	Category        string         `json:"category"`
	Recommendations Recommendation `json:"recommendations"`
}

type BrandsResponse struct {
	Brands []string `json:"brands"`
}
