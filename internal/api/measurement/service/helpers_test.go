package measurementService

import (
	"FashionistAI/internal/entity"

	"github.com/sirupsen/logrus"
)

func newTestService() IMeasurementService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewMeasurementService(logger, nil, nil)
}

type testPoint struct {
	x, y, conf float64
}

func buildKeypointSet(view entity.View, points map[entity.JointName]testPoint) *entity.KeypointSet {
	set := entity.NewKeypointSet(view)
	for name, p := range points {
		set.Points[name] = entity.Keypoint{Name: name, X: p.x, Y: p.y, Confidence: p.conf}
	}
	return set
}

// standardFrontPose is a fully detected frontal subject: nose at y=35,
// ankles at y=432, shoulders 80px apart.
func standardFrontPose() *entity.KeypointSet {
	return buildKeypointSet(entity.ViewFront, map[entity.JointName]testPoint{
		entity.JointNose:          {100, 35, 0.95},
		entity.JointLeftEye:       {95, 30, 0.9},
		entity.JointRightEye:      {105, 30, 0.9},
		entity.JointLeftEar:       {90, 33, 0.85},
		entity.JointRightEar:      {110, 33, 0.85},
		entity.JointLeftShoulder:  {60, 75, 0.9},
		entity.JointRightShoulder: {140, 75, 0.9},
		entity.JointLeftElbow:     {55, 120, 0.9},
		entity.JointRightElbow:    {145, 120, 0.9},
		entity.JointLeftWrist:     {50, 165, 0.9},
		entity.JointRightWrist:    {150, 165, 0.9},
		entity.JointLeftHip:       {70, 200, 0.9},
		entity.JointRightHip:      {130, 200, 0.9},
		entity.JointLeftKnee:      {65, 320, 0.9},
		entity.JointRightKnee:     {135, 320, 0.9},
		entity.JointLeftAnkle:     {60, 432, 0.9},
		entity.JointRightAnkle:    {140, 432, 0.9},
	})
}
