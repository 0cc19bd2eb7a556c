package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corkphoto/itinerary-backend/types"
	"github.com/go-redis/redismock/v9"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHealthService(t *testing.T) {
	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer db.Close()
	rdb, _ := redismock.NewClientMock()

	service := NewHealthService(db, rdb, "1.2.3")

	assert.Equal(t, "1.2.3", service.version)
	assert.NotNil(t, service.log)
	assert.WithinDuration(t, time.Now(), service.startTime, time.Second)
}

func TestHealthService_CheckHealth(t *testing.T) {
	tests := []struct {
		name       string
		dbErr      error
		redisErr   error
		wantStatus types.HealthStatus
		wantDB     types.HealthStatus
		wantRedis  types.HealthStatus
	}{
		{"all up", nil, nil, types.HealthStatusUp, types.HealthStatusUp, types.HealthStatusUp},
		{"redis down degrades", nil, errors.New("connection refused"), types.HealthStatusDegraded, types.HealthStatusUp, types.HealthStatusDown},
		{"database down", errors.New("no route to host"), nil, types.HealthStatusDown, types.HealthStatusDown, types.HealthStatusUp},
		{"both down", errors.New("no route to host"), errors.New("connection refused"), types.HealthStatusDown, types.HealthStatusDown, types.HealthStatusDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer db.Close()
			rdb, redisMock := redismock.NewClientMock()

			ping := db.ExpectPing()
			if tt.dbErr != nil {
				ping.WillReturnError(tt.dbErr)
			}
			if tt.redisErr != nil {
				redisMock.ExpectPing().SetErr(tt.redisErr)
			} else {
				redisMock.ExpectPing().SetVal("PONG")
			}

			health := NewHealthService(db, rdb, "test").CheckHealth(context.Background())

			assert.Equal(t, tt.wantStatus, health.Status)
			assert.Equal(t, tt.wantDB, health.Components[types.ComponentDatabase].Status)
			assert.Equal(t, tt.wantRedis, health.Components[types.ComponentRedis].Status)
			assert.Equal(t, "test", health.Version)
			assert.NotEmpty(t, health.Timestamp)
			assert.NoError(t, db.ExpectationsWereMet())
			assert.NoError(t, redisMock.ExpectationsWereMet())
		})
	}
}
