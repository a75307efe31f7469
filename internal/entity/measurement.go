package entity

import "encoding/json"

type MeasurementName string

const (
	MeasurementShoulderWidth      MeasurementName = "shoulder_width"
	MeasurementChestCircumference MeasurementName = "chest_circumference"
	MeasurementWaistCircumference MeasurementName = "waist_circumference"
	MeasurementArmLength          MeasurementName = "arm_length"
	MeasurementLegLength          MeasurementName = "leg_length"
)

// MeasurementOrder fixes the order measurements are reported in.
var MeasurementOrder = []MeasurementName{
	MeasurementShoulderWidth,
	MeasurementChestCircumference,
	MeasurementWaistCircumference,
	MeasurementArmLength,
	MeasurementLegLength,
}

// Measurement is one estimated physical quantity. Confidence 0 means
// the value could not be computed; ValueCm is then the 0 sentinel and
// must not be read as a real length.
type Measurement struct {
	Name       MeasurementName `json:"name"`
	ValueCm    float64         `json:"value_cm"`
	Confidence float64         `json:"confidence"`
}

// ScaleFactor converts pixel distances of one analyzed image into
// centimeters. CmPerPixel is strictly positive for a valid factor.
type ScaleFactor struct {
	CmPerPixel float64 `json:"cm_per_pixel"`
}

// Cm converts a pixel distance to centimeters.
func (s ScaleFactor) Cm(pixels float64) float64 {
	return pixels * s.CmPerPixel
}

// AnalysisResult aggregates one analysis request. MeshData is an
// opaque payload forwarded from the pose service when it produced a
// body mesh; this service never inspects it. Results live only for
// the request/response cycle.
type AnalysisResult struct {
	Measurements      []Measurement   `json:"measurements"`
	OverallConfidence float64         `json:"overall_confidence"`
	Scale             ScaleFactor     `json:"scale"`
	MeshData          json.RawMessage `json:"mesh_data,omitempty"`
}

// Measurement returns the named measurement from the result, if present.
func (r *AnalysisResult) Measurement(name MeasurementName) (Measurement, bool) {
	for _, m := range r.Measurements {
		if m.Name == name {
			return m, true
		}
	}
	return Measurement{}, false
}
