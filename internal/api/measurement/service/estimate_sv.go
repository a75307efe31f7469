package measurementService

import (
	"FashionistAI/internal/entity"
	"math"
)

// Circumference cannot be observed from a frontal 2D skeleton, so a
// frontal width is converted with empirical ratios. With a side view
// the width and a depth proxy feed an elliptical perimeter instead.
const (
	chestWidthRatio = 2.7
	waistWidthRatio = 3.0

	// Fraction of the frontal half-width the torso half-depth amounts
	// to at the chest and waist bands, before cross-view correction.
	chestDepthFactor = 0.75
	waistDepthFactor = 0.85

	// The cross-view torso ratio is clamped; outside this band the
	// side view is considered mis-shot.
	depthRatioMin = 0.4
	depthRatioMax = 1.0

	// Single-view circumference is a coarser model and reports lower
	// trust.
	singleViewPenalty       = 0.8
	singleViewConfidenceCap = 0.6
)

var leftArmChain = []entity.JointName{entity.JointLeftShoulder, entity.JointLeftElbow, entity.JointLeftWrist}
var rightArmChain = []entity.JointName{entity.JointRightShoulder, entity.JointRightElbow, entity.JointRightWrist}
var leftLegChain = []entity.JointName{entity.JointLeftHip, entity.JointLeftKnee, entity.JointLeftAnkle}
var rightLegChain = []entity.JointName{entity.JointRightHip, entity.JointRightKnee, entity.JointRightAnkle}

// Estimate computes every supported measurement from the front view,
// refining circumferences with the side view when one is given. A
// measurement whose keypoints are missing comes back with value 0 and
// confidence 0 instead of failing the whole set.
func (s *measurementService) Estimate(front *entity.KeypointSet, side *entity.KeypointSet, scale entity.ScaleFactor) []entity.Measurement {
	measurements := make([]entity.Measurement, 0, len(entity.MeasurementOrder))

	for _, name := range entity.MeasurementOrder {
		var m entity.Measurement
		switch name {
		case entity.MeasurementShoulderWidth:
			m = spanMeasurement(name, front, entity.JointLeftShoulder, entity.JointRightShoulder, scale)
		case entity.MeasurementChestCircumference:
			m = circumferenceMeasurement(name, front, side, scale,
				entity.JointLeftShoulder, entity.JointRightShoulder, chestWidthRatio, chestDepthFactor)
		case entity.MeasurementWaistCircumference:
			m = circumferenceMeasurement(name, front, side, scale,
				entity.JointLeftHip, entity.JointRightHip, waistWidthRatio, waistDepthFactor)
		case entity.MeasurementArmLength:
			m = limbMeasurement(name, front, leftArmChain, rightArmChain, scale)
		case entity.MeasurementLegLength:
			m = limbMeasurement(name, front, leftLegChain, rightLegChain, scale)
		}
		measurements = append(measurements, m)
	}

	return measurements
}

func pixelDistance(a, b entity.Keypoint) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func notComputable(name entity.MeasurementName) entity.Measurement {
	return entity.Measurement{Name: name, ValueCm: 0, Confidence: 0}
}

// spanMeasurement is the straight-line distance between two joints.
func spanMeasurement(name entity.MeasurementName, set *entity.KeypointSet, left, right entity.JointName, scale entity.ScaleFactor) entity.Measurement {
	l, lok := set.Reliable(left, reliableConfidence)
	r, rok := set.Reliable(right, reliableConfidence)
	if !lok || !rok {
		return notComputable(name)
	}

	return entity.Measurement{
		Name:       name,
		ValueCm:    scale.Cm(pixelDistance(l, r)),
		Confidence: math.Min(l.Confidence, r.Confidence),
	}
}

// chainLength sums consecutive segment distances of a joint chain.
// The chain only counts when every joint in it is reliable; its
// confidence is the weakest joint.
func chainLength(set *entity.KeypointSet, chain []entity.JointName) (pixels float64, confidence float64, ok bool) {
	confidence = 1.0
	joints := make([]entity.Keypoint, 0, len(chain))
	for _, name := range chain {
		kp, reliable := set.Reliable(name, reliableConfidence)
		if !reliable {
			return 0, 0, false
		}
		confidence = math.Min(confidence, kp.Confidence)
		joints = append(joints, kp)
	}

	for i := 1; i < len(joints); i++ {
		pixels += pixelDistance(joints[i-1], joints[i])
	}
	return pixels, confidence, true
}

// limbMeasurement measures one limb chain per side and emits the side
// with the higher chain confidence. Sides are never averaged: pixel
// detection is asymmetric enough that the most confident chain beats
// the mean. The left side wins exact ties.
func limbMeasurement(name entity.MeasurementName, set *entity.KeypointSet, leftChain, rightChain []entity.JointName, scale entity.ScaleFactor) entity.Measurement {
	leftPx, leftConf, leftOK := chainLength(set, leftChain)
	rightPx, rightConf, rightOK := chainLength(set, rightChain)

	switch {
	case !leftOK && !rightOK:
		return notComputable(name)
	case leftOK && (!rightOK || leftConf >= rightConf):
		return entity.Measurement{Name: name, ValueCm: scale.Cm(leftPx), Confidence: leftConf}
	default:
		return entity.Measurement{Name: name, ValueCm: scale.Cm(rightPx), Confidence: rightConf}
	}
}

// circumferenceMeasurement estimates a torso circumference from a
// frontal width proxy. Single view: width times an empirical ratio,
// with discounted confidence. Front+side: Ramanujan's ellipse
// perimeter over the half-width and a half-depth derived from the
// shoulder-to-hip pixel ratio between the two views. Fusion never
// reports less trust than the single-view path.
func circumferenceMeasurement(name entity.MeasurementName, front, side *entity.KeypointSet, scale entity.ScaleFactor,
	left, right entity.JointName, widthRatio, depthFactor float64) entity.Measurement {

	l, lok := front.Reliable(left, reliableConfidence)
	r, rok := front.Reliable(right, reliableConfidence)
	if !lok || !rok {
		return notComputable(name)
	}

	widthCm := scale.Cm(pixelDistance(l, r))
	frontConf := math.Min(l.Confidence, r.Confidence)
	singleConf := math.Min(frontConf*singleViewPenalty, singleViewConfidenceCap)

	depthRatio, sideConf, fused := crossViewDepthRatio(front, side)
	if !fused {
		return entity.Measurement{
			Name:       name,
			ValueCm:    widthCm * widthRatio,
			Confidence: singleConf,
		}
	}

	a := widthCm / 2
	b := a * depthRatio * depthFactor

	fusedConf := math.Min(frontConf, sideConf)
	if fusedConf < singleConf {
		fusedConf = singleConf
	}

	return entity.Measurement{
		Name:       name,
		ValueCm:    ellipsePerimeter(a, b),
		Confidence: fusedConf,
	}
}

// crossViewDepthRatio compares the shoulder-to-hip pixel extent of
// the side view against the front view. The 17-point topology has no
// front/back torso landmarks, so this ratio is the only depth signal
// the side view offers.
func crossViewDepthRatio(front, side *entity.KeypointSet) (ratio float64, confidence float64, ok bool) {
	if side == nil {
		return 0, 0, false
	}

	frontTorso, frontConf, frontOK := torsoExtent(front)
	sideTorso, sideConf, sideOK := torsoExtent(side)
	if !frontOK || !sideOK || frontTorso <= 0 {
		return 0, 0, false
	}

	ratio = sideTorso / frontTorso
	if ratio < depthRatioMin {
		ratio = depthRatioMin
	} else if ratio > depthRatioMax {
		ratio = depthRatioMax
	}

	return ratio, math.Min(frontConf, sideConf), true
}

// torsoExtent is the pixel distance between the shoulder midpoint and
// the hip midpoint of one view.
func torsoExtent(set *entity.KeypointSet) (pixels float64, confidence float64, ok bool) {
	ls, ok1 := set.Reliable(entity.JointLeftShoulder, reliableConfidence)
	rs, ok2 := set.Reliable(entity.JointRightShoulder, reliableConfidence)
	lh, ok3 := set.Reliable(entity.JointLeftHip, reliableConfidence)
	rh, ok4 := set.Reliable(entity.JointRightHip, reliableConfidence)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return 0, 0, false
	}

	shoulderMid := entity.Keypoint{X: (ls.X + rs.X) / 2, Y: (ls.Y + rs.Y) / 2}
	hipMid := entity.Keypoint{X: (lh.X + rh.X) / 2, Y: (lh.Y + rh.Y) / 2}

	confidence = math.Min(math.Min(ls.Confidence, rs.Confidence), math.Min(lh.Confidence, rh.Confidence))
	return pixelDistance(shoulderMid, hipMid), confidence, true
}

// ellipsePerimeter is Ramanujan's second approximation,
// C ≈ π(a+b)(1 + 3h/(10+sqrt(4-3h))) with h = ((a-b)/(a+b))^2.
func ellipsePerimeter(a, b float64) float64 {
	if a+b == 0 {
		return 0
	}
	h := math.Pow((a-b)/(a+b), 2)
	return math.Pi * (a + b) * (1 + 3*h/(10+math.Sqrt(4-3*h)))
}
