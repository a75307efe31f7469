package measurementService

import (
	"FashionistAI/internal/entity"
	"FashionistAI/pkg/posedetector"
	redisPkg "FashionistAI/pkg/redis"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IMeasurementService interface {
	Analyze(ctx context.Context, frontFrame []byte, sideFrame []byte, heightCm float64) (*entity.AnalysisResult, error)
	Calibrate(keypoints *entity.KeypointSet, knownHeightCm float64) (entity.ScaleFactor, error)
	Estimate(front *entity.KeypointSet, side *entity.KeypointSet, scale entity.ScaleFactor) []entity.Measurement
	Aggregate(measurements []entity.Measurement) float64
}

type measurementService struct {
	log          *logrus.Logger
	poseDetector posedetector.IPoseDetector
	cache        redisPkg.IRedis
}

func NewMeasurementService(
	log *logrus.Logger,
	poseDetector posedetector.IPoseDetector,
	cache redisPkg.IRedis,
) IMeasurementService {
	return &measurementService{
		log:          log,
		poseDetector: poseDetector,
		cache:        cache,
	}
}
