package config

import (
	"context"
	"crypto/tls"
	"fmt"
	"math"
	"time"

	"github.com/corkphoto/itinerary-backend/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const defaultConnMaxLife = time.Hour

// ConfigurePostgresPool builds a pgxpool.Config from DatabaseConfig, logging only
// non-sensitive connection details.
func ConfigurePostgresPool(cfg *DatabaseConfig) (*pgxpool.Config, error) {
	log := logger.GetLogger()

	connStr := cfg.URL()

	log.Infow("Connecting to database",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.Name,
		"sslmode", cfg.SSLMode,
		"connection_string", logger.MaskConnectionString(connStr))

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	if cfg.SSLMode == "require" || cfg.SSLMode == "verify-full" {
		poolConfig.ConnConfig.TLSConfig = &tls.Config{
			ServerName: cfg.Host,
			MinVersion: tls.VersionTLS12,
		}
	}

	connMaxLife, err := time.ParseDuration(cfg.ConnMaxLife)
	if err != nil {
		log.Warnw("Invalid connection max lifetime, using default", "value", cfg.ConnMaxLife, "default", defaultConnMaxLife, "error", err)
		connMaxLife = defaultConnMaxLife
	}

	poolConfig.MaxConns = int32(math.Min(float64(max(cfg.MaxOpenConns, 1)), float64(math.MaxInt32)))
	poolConfig.MinConns = int32(math.Min(float64(max(cfg.MaxIdleConns, 0)), float64(poolConfig.MaxConns)))
	poolConfig.MaxConnLifetime = connMaxLife
	poolConfig.HealthCheckPeriod = 30 * time.Second
	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second

	log.Infow("Configured database connection pool",
		"max_conns", poolConfig.MaxConns,
		"min_conns", poolConfig.MinConns,
		"max_conn_lifetime", connMaxLife.String())

	return poolConfig, nil
}

// ConfigureRedisOptions builds redis.Options from RedisConfig.
func ConfigureRedisOptions(cfg *RedisConfig) *redis.Options {
	log := logger.GetLogger()

	redisOptions := &redis.Options{
		Addr:            cfg.Address,
		Password:        cfg.Password,
		DB:              cfg.DB,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		ConnMaxLifetime: time.Hour,
		MaxRetries:      3,
		MinRetryBackoff: 100 * time.Millisecond,
		MaxRetryBackoff: 2 * time.Second,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
	}

	if cfg.UseTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	log.Infow("Configuring Redis connection",
		"address", cfg.Address,
		"db", cfg.DB,
		"pool_size", cfg.PoolSize,
		"use_tls", cfg.UseTLS)

	return redisOptions
}

// RedisPinger is the part of a redis client TestRedisConnection needs.
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// TestRedisConnection pings Redis up to attempts times, waiting delay between failures.
func TestRedisConnection(ctx context.Context, client RedisPinger, attempts int, delay time.Duration) error {
	log := logger.GetLogger()

	var err error
	for i := 0; i < attempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err = client.Ping(pingCtx).Err()
		cancel()

		if err == nil {
			if i > 0 {
				log.Infow("Connected to Redis after retries", "attempt", i+1)
			}
			return nil
		}

		if i < attempts-1 {
			log.Warnw("Failed to ping Redis, retrying", "error", err, "attempt", i+1, "max_attempts", attempts)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return fmt.Errorf("failed to ping Redis after %d attempts: %w", attempts, err)
}
