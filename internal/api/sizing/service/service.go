package sizingService

import (
	"FashionistAI/internal/api/sizing"
	sizingRepository "FashionistAI/internal/api/sizing/repository"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type ISizingService interface {
	Recommend(ctx context.Context, req sizing.RecommendRequest) (*sizing.RecommendResponse, error)
	ListBrands(ctx context.Context) []string
}

type sizingService struct {
	log        *logrus.Logger
	sizingRepo sizingRepository.Repository
}

func NewSizingService(
	log *logrus.Logger,
	sizingRepo sizingRepository.Repository,
) ISizingService {
	return &sizingService{
		log:        log,
		sizingRepo: sizingRepo,
	}
}
