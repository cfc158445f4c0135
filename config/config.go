package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"ulascansenturk/weather-dashboard/internal/format"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendValkey   = "valkey"
	BackendMemory   = "memory"
)

type Config struct {
	ServiceName   string
	ServerAddress string

	DBName     string
	DBPassword string
	DBUser     string
	DBPort     string
	DBHost     string

	Env         string
	LogLevel    string
	HTTPTimeout int32

	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	UpstreamTimeout    time.Duration
	UpstreamRPS        float64
	UpstreamBurst      int
	CacheTTL           time.Duration

	DefaultCity  string
	DefaultUnits format.UnitMode
	RecentsKey   string

	StorageBackend string
	SQLitePath     string
	ValkeyAddr     string
}

func LoadConfig() (*Config, error) {
	return Load(".")
}

// Load reads .env from dir, then the environment. Environment variables win.
func Load(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVICE_NAME", "weather-dashboard")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:3000")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("HTTP_TIMEOUT", 15)
	v.SetDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("UPSTREAM_TIMEOUT", 10*time.Second)
	v.SetDefault("UPSTREAM_RPS", 1)
	v.SetDefault("UPSTREAM_BURST", 5)
	v.SetDefault("CACHE_TTL", time.Minute)
	v.SetDefault("DEFAULT_CITY", "London")
	v.SetDefault("DEFAULT_UNITS", string(format.Metric))
	v.SetDefault("RECENTS_KEY", "recentCities")
	v.SetDefault("STORAGE_BACKEND", BackendSQLite)
	v.SetDefault("SQLITE_PATH", "weather-dashboard.db")
	v.SetDefault("VALKEY_ADDR", "localhost:6379")

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Msg("No .env file found, using environment variables only")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Config file loaded")
	}

	units, err := format.ParseUnitMode(v.GetString("DEFAULT_UNITS"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_UNITS: %w", err)
	}

	config := &Config{
		ServiceName:        v.GetString("SERVICE_NAME"),
		ServerAddress:      v.GetString("SERVER_ADDRESS"),
		DBName:             v.GetString("DATABASE_NAME"),
		DBPassword:         v.GetString("DATABASE_PASSWORD"),
		DBUser:             v.GetString("DATABASE_USER"),
		DBPort:             v.GetString("DATABASE_PORT"),
		DBHost:             v.GetString("DATABASE_HOST"),
		Env:                v.GetString("ENV"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		HTTPTimeout:        v.GetInt32("HTTP_TIMEOUT"),
		OpenWeatherAPIKey:  v.GetString("OPENWEATHER_API_KEY"),
		OpenWeatherBaseURL: v.GetString("OPENWEATHER_BASE_URL"),
		UpstreamTimeout:    v.GetDuration("UPSTREAM_TIMEOUT"),
		UpstreamRPS:        v.GetFloat64("UPSTREAM_RPS"),
		UpstreamBurst:      v.GetInt("UPSTREAM_BURST"),
		CacheTTL:           v.GetDuration("CACHE_TTL"),
		DefaultCity:        v.GetString("DEFAULT_CITY"),
		DefaultUnits:       units,
		RecentsKey:         v.GetString("RECENTS_KEY"),
		StorageBackend:     v.GetString("STORAGE_BACKEND"),
		SQLitePath:         v.GetString("SQLITE_PATH"),
		ValkeyAddr:         v.GetString("VALKEY_ADDR"),
	}

	switch config.StorageBackend {
	case BackendSQLite, BackendPostgres, BackendValkey, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", config.StorageBackend)
	}

	return config, nil
}

func (c *Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}
