package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Environment:    EnvDevelopment,
			Port:           "8080",
			AllowedOrigins: []string{"*"},
			JwtSecretKey:   testJWTSecret,
		},
		Database: DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "pw", Name: "itinerary"},
		Redis:    RedisConfig{Address: "localhost:6379"},
		RateLimit: RateLimitConfig{
			MutationsPerMinute: 60,
			WindowSeconds:      60,
		},
		Itinerary: ItineraryConfig{
			RandomMinStops:     2,
			RandomMaxStops:     8,
			DefaultRandomStops: 5,
			DefaultTripName:    "My trip",
			RandomTripName:     "Random trip",
		},
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", testJWTSecret)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 2, cfg.Itinerary.RandomMinStops)
	assert.Equal(t, 8, cfg.Itinerary.RandomMaxStops)
	assert.Equal(t, 5, cfg.Itinerary.DefaultRandomStops)
	assert.Equal(t, "My trip", cfg.Itinerary.DefaultTripName)
	assert.Equal(t, "Random trip", cfg.Itinerary.RandomTripName)
	assert.Equal(t, 60, cfg.RateLimit.MutationsPerMinute)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", testJWTSecret)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("ITINERARY_RANDOM_MAX_STOPS", "6")
	t.Setenv("RATE_LIMIT_MUTATIONS_PER_MINUTE", "10")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6, cfg.Itinerary.RandomMaxStops)
	assert.Equal(t, 10, cfg.RateLimit.MutationsPerMinute)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	env := "JWT_SECRET_KEY=" + testJWTSecret + "\nITINERARY_DEFAULT_TRIP_NAME=Weekend away\nPORT=7070\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Chdir(dir)

	// Register restoration, then unset so the .env values are not shadowed.
	t.Setenv("ITINERARY_DEFAULT_TRIP_NAME", "")
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("PORT", "9191")
	require.NoError(t, os.Unsetenv("ITINERARY_DEFAULT_TRIP_NAME"))
	require.NoError(t, os.Unsetenv("JWT_SECRET_KEY"))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "Weekend away", cfg.Itinerary.DefaultTripName)
	assert.Equal(t, "9191", cfg.Server.Port, "process environment wins over .env")
}

func TestLoadConfig_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "too-short")

	cfg, err := LoadConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"short jwt secret", func(c *Config) { c.Server.JwtSecretKey = "short" }, "JWT secret key"},
		{"bad origin", func(c *Config) { c.Server.AllowedOrigins = []string{"not a url"} }, "invalid allowed origin"},
		{"explicit origin", func(c *Config) { c.Server.AllowedOrigins = []string{"https://corkphoto.ie"} }, ""},
		{"missing db host", func(c *Config) { c.Database.Host = "" }, "database host"},
		{"missing redis", func(c *Config) { c.Redis.Address = "" }, "redis address"},
		{"zero rate limit", func(c *Config) { c.RateLimit.MutationsPerMinute = 0 }, "mutations per minute"},
		{"zero window", func(c *Config) { c.RateLimit.WindowSeconds = 0 }, "window seconds"},
		{"min below two", func(c *Config) { c.Itinerary.RandomMinStops = 1 }, "minimum stops"},
		{"max below min", func(c *Config) { c.Itinerary.RandomMaxStops = 1; c.Itinerary.RandomMinStops = 2 }, "maximum stops"},
		{"default outside range", func(c *Config) { c.Itinerary.DefaultRandomStops = 9 }, "default random stops"},
		{"blank trip name", func(c *Config) { c.Itinerary.DefaultTripName = "  " }, "default trip name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_URL(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss word", Name: "itinerary"}
	assert.Equal(t, "postgres://app:p%40ss+word@db:5432/itinerary?sslmode=disable", c.URL())

	c.SSLMode = "require"
	assert.Contains(t, c.URL(), "sslmode=require")
}
