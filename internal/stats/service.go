package stats

import (
	"context"
	"fmt"
	"time"

	"hallbook/pkg/cache"
	"hallbook/pkg/logger"
)

// dashboardCacheKey holds the aggregated admin dashboard
const (
	dashboardCacheKey = "stats:dashboard"
	dashboardCacheTTL = 1 * time.Minute
)

type Service interface {
	TrackVisit(ctx context.Context, page, userAgent string)
	GetDashboard(ctx context.Context) (*Dashboard, error)

	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// TrackVisit records a page view. Tracking is fire-and-forget: a failed insert
// is logged and never surfaces to the request that triggered it.
func (s *service) TrackVisit(ctx context.Context, page, userAgent string) {
	if err := s.repo.RecordVisit(ctx, page, userAgent, time.Now()); err != nil {
		s.log.WarnContext(ctx, "failed to record visit", "page", page, "error", err)
	}
}

func (s *service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	if s.cacheService != nil {
		var cached Dashboard
		if err := s.cacheService.Get(ctx, dashboardCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	dashboard, err := s.repo.GetDashboard(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, dashboardCacheKey, dashboard, dashboardCacheTTL); err != nil {
			s.log.WarnContext(ctx, "failed to cache dashboard", "error", err)
		}
	}

	return dashboard, nil
}
