// Package services holds process-level services that sit beside the itinerary domain.
package services

import (
	"context"
	"time"

	"github.com/corkphoto/itinerary-backend/config"
	"github.com/corkphoto/itinerary-backend/logger"
	"github.com/corkphoto/itinerary-backend/types"
	"go.uber.org/zap"
)

const componentTimeout = 2 * time.Second

// DatabasePinger is satisfied by *pgxpool.Pool.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

type HealthService struct {
	db        DatabasePinger
	redis     config.RedisPinger
	version   string
	startTime time.Time
	log       *zap.SugaredLogger
}

func NewHealthService(db DatabasePinger, redis config.RedisPinger, version string) *HealthService {
	return &HealthService{
		db:        db,
		redis:     redis,
		version:   version,
		startTime: time.Now(),
		log:       logger.GetLogger(),
	}
}

// CheckHealth reports DOWN when the database is unreachable. Redis only backs rate limiting,
// so losing it degrades the service instead.
func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := map[string]types.HealthComponent{
		types.ComponentDatabase: h.checkDatabase(ctx),
		types.ComponentRedis:    h.checkRedis(ctx),
	}

	status := types.HealthStatusUp
	switch {
	case components[types.ComponentDatabase].Status != types.HealthStatusUp:
		status = types.HealthStatusDown
	case components[types.ComponentRedis].Status != types.HealthStatusUp:
		status = types.HealthStatusDegraded
	}

	return types.HealthCheck{
		Status:     status,
		Components: components,
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
	}
}

func (h *HealthService) checkDatabase(ctx context.Context) types.HealthComponent {
	ctx, cancel := context.WithTimeout(ctx, componentTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Errorw("Database health check failed", "error", err)
		return types.HealthComponent{Status: types.HealthStatusDown, Details: "Database connection failed"}
	}
	return types.HealthComponent{Status: types.HealthStatusUp}
}

func (h *HealthService) checkRedis(ctx context.Context) types.HealthComponent {
	ctx, cancel := context.WithTimeout(ctx, componentTimeout)
	defer cancel()

	if err := h.redis.Ping(ctx).Err(); err != nil {
		h.log.Warnw("Redis health check failed", "error", err)
		return types.HealthComponent{Status: types.HealthStatusDown, Details: "Redis connection failed"}
	}
	return types.HealthComponent{Status: types.HealthStatusUp}
}
