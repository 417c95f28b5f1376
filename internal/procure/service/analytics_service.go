package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/procureflow/procureflow/internal/procure/repository"
	"github.com/redis/go-redis/v9"
)

const dashboardCacheKey = "analytics:dashboard"
const dashboardCacheTTL = 60 * time.Second

// AnalyticsService dashboard rollups, cached briefly in Redis. Runs without a
// cache when no Redis client is configured.
type AnalyticsService struct {
	analyticsRepo *repository.AnalyticsRepository
	rdb           *redis.Client
}

func NewAnalyticsService(analyticsRepo *repository.AnalyticsRepository, rdb *redis.Client) *AnalyticsService {
	return &AnalyticsService{analyticsRepo: analyticsRepo, rdb: rdb}
}

// Dashboard returns the pipeline metrics, from cache when fresh.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*repository.DashboardMetrics, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, dashboardCacheKey).Result()
		if err == nil {
			var m repository.DashboardMetrics
			if json.Unmarshal([]byte(cached), &m) == nil {
				return &m, nil
			}
		}
	}

	m, err := s.analyticsRepo.CollectDashboardMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(m); err == nil {
			s.rdb.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL)
		}
	}
	return m, nil
}

// Invalidate drops the cached dashboard after a pipeline write.
func (s *AnalyticsService) Invalidate(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, dashboardCacheKey)
	}
}
