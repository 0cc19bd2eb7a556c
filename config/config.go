// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/corkphoto/itinerary-backend/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	minJWTLength = 32
	// Random trips below two stops are not trips.
	minRandomStopsFloor = 2
	maxTripNameLength   = 120
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT"`
	Port           string      `mapstructure:"PORT"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS"`
	Version        string      `mapstructure:"VERSION"`
	JwtSecretKey   string      `mapstructure:"JWT_SECRET_KEY"`
}

// DatabaseConfig holds PostgreSQL database connection details.
type DatabaseConfig struct {
	Host         string `mapstructure:"HOST"`
	Port         int    `mapstructure:"PORT"`
	User         string `mapstructure:"USER"`
	Password     string `mapstructure:"PASSWORD"`
	Name         string `mapstructure:"NAME"`
	SSLMode      string `mapstructure:"SSL_MODE"`
	MaxOpenConns int    `mapstructure:"MAX_OPEN_CONNS"`
	MaxIdleConns int    `mapstructure:"MAX_IDLE_CONNS"`
	ConnMaxLife  string `mapstructure:"CONN_MAX_LIFE"`
}

// URL returns a postgres:// connection URL for golang-migrate.
func (c *DatabaseConfig) URL() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		sslmode,
	)
}

// RedisConfig holds Redis connection details.
type RedisConfig struct {
	Address      string `mapstructure:"ADDRESS"`
	Password     string `mapstructure:"PASSWORD"`
	DB           int    `mapstructure:"DB"`
	UseTLS       bool   `mapstructure:"USE_TLS"`
	PoolSize     int    `mapstructure:"POOL_SIZE"`
	MinIdleConns int    `mapstructure:"MIN_IDLE_CONNS"`
}

// RateLimitConfig limits how often one user may mutate itineraries.
type RateLimitConfig struct {
	MutationsPerMinute int `mapstructure:"MUTATIONS_PER_MINUTE"`
	WindowSeconds      int `mapstructure:"WINDOW_SECONDS"`
}

// ItineraryConfig holds trip defaults and random trip bounds.
type ItineraryConfig struct {
	RandomMinStops     int    `mapstructure:"RANDOM_MIN_STOPS"`
	RandomMaxStops     int    `mapstructure:"RANDOM_MAX_STOPS"`
	DefaultRandomStops int    `mapstructure:"DEFAULT_RANDOM_STOPS"`
	DefaultTripName    string `mapstructure:"DEFAULT_TRIP_NAME"`
	RandomTripName     string `mapstructure:"RANDOM_TRIP_NAME"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server    ServerConfig    `mapstructure:"SERVER"`
	Database  DatabaseConfig  `mapstructure:"DATABASE"`
	Redis     RedisConfig     `mapstructure:"REDIS"`
	RateLimit RateLimitConfig `mapstructure:"RATE_LIMIT"`
	Itinerary ItineraryConfig `mapstructure:"ITINERARY"`
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// applies defaults, unmarshals and validates it. A .env file in the working
// directory is read first when present; real environment variables win.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	if err := godotenv.Load(); err != nil {
		log.Debugw("No .env file loaded, using environment only", "error", err)
	}

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.VERSION", "dev")
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "")
	v.SetDefault("DATABASE.NAME", "itinerary_dev")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE.MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE.CONN_MAX_LIFE", "1h")
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("REDIS.POOL_SIZE", 5)
	v.SetDefault("REDIS.MIN_IDLE_CONNS", 1)
	v.SetDefault("RATE_LIMIT.MUTATIONS_PER_MINUTE", 60)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 60)
	v.SetDefault("ITINERARY.RANDOM_MIN_STOPS", 2)
	v.SetDefault("ITINERARY.RANDOM_MAX_STOPS", 8)
	v.SetDefault("ITINERARY.DEFAULT_RANDOM_STOPS", 5)
	v.SetDefault("ITINERARY.DEFAULT_TRIP_NAME", "My trip")
	v.SetDefault("ITINERARY.RANDOM_TRIP_NAME", "Random trip")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.JWT_SECRET_KEY", "JWT_SECRET_KEY"},
		{"SERVER.VERSION", "VERSION"},
		{"DATABASE.HOST", "DB_HOST"},
		{"DATABASE.PORT", "DB_PORT"},
		{"DATABASE.USER", "DB_USER"},
		{"DATABASE.PASSWORD", "DB_PASSWORD"},
		{"DATABASE.NAME", "DB_NAME"},
		{"DATABASE.SSL_MODE", "DB_SSL_MODE"},
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		{"RATE_LIMIT.MUTATIONS_PER_MINUTE", "RATE_LIMIT_MUTATIONS_PER_MINUTE"},
		{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
		{"ITINERARY.RANDOM_MIN_STOPS", "ITINERARY_RANDOM_MIN_STOPS"},
		{"ITINERARY.RANDOM_MAX_STOPS", "ITINERARY_RANDOM_MAX_STOPS"},
		{"ITINERARY.DEFAULT_RANDOM_STOPS", "ITINERARY_DEFAULT_RANDOM_STOPS"},
		{"ITINERARY.DEFAULT_TRIP_NAME", "ITINERARY_DEFAULT_TRIP_NAME"},
		{"ITINERARY.RANDOM_TRIP_NAME", "ITINERARY_RANDOM_TRIP_NAME"},
	}
	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", v.GetString("SERVER.ENVIRONMENT"),
		"server_port", v.GetString("SERVER.PORT"),
		"db_host", v.GetString("DATABASE.HOST"),
		"allowed_origins", v.GetStringSlice("SERVER.ALLOWED_ORIGINS"),
		"random_stops", fmt.Sprintf("%d..%d", v.GetInt("ITINERARY.RANDOM_MIN_STOPS"), v.GetInt("ITINERARY.RANDOM_MAX_STOPS")),
	)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("Configuration validated successfully")
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if len(cfg.Server.JwtSecretKey) < minJWTLength {
		return fmt.Errorf("JWT secret key must be at least %d characters long", minJWTLength)
	}
	if !slices.Contains(cfg.Server.AllowedOrigins, "*") {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	if cfg.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if cfg.Database.Password == "" {
		log.Warn("Database password is not set. Ensure this is intended (e.g., using trusted auth).")
	}
	if cfg.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}

	if cfg.Redis.Address == "" {
		return fmt.Errorf("redis address is required")
	}

	if cfg.RateLimit.MutationsPerMinute <= 0 {
		return fmt.Errorf("rate limit mutations per minute must be positive")
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit window seconds must be positive")
	}

	return validateItinerary(&cfg.Itinerary)
}

func validateItinerary(cfg *ItineraryConfig) error {
	if cfg.RandomMinStops < minRandomStopsFloor {
		return fmt.Errorf("random trip minimum stops must be at least %d", minRandomStopsFloor)
	}
	if cfg.RandomMaxStops < cfg.RandomMinStops {
		return fmt.Errorf("random trip maximum stops (%d) is below the minimum (%d)", cfg.RandomMaxStops, cfg.RandomMinStops)
	}
	if cfg.DefaultRandomStops < cfg.RandomMinStops || cfg.DefaultRandomStops > cfg.RandomMaxStops {
		return fmt.Errorf("default random stops must be within %d..%d", cfg.RandomMinStops, cfg.RandomMaxStops)
	}
	for field, name := range map[string]string{"default trip name": cfg.DefaultTripName, "random trip name": cfg.RandomTripName} {
		name = strings.TrimSpace(name)
		if name == "" || len(name) > maxTripNameLength {
			return fmt.Errorf("%s must be 1..%d characters", field, maxTripNameLength)
		}
	}
	return nil
}
