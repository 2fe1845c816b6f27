package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	WeatherAPIKey string
	// Language is passed to the API as-is and selects the locale catalog.
	Language string
	BaseURL  string

	LocalesDir string

	// HTTPTimeout of 0 means the request never times out.
	HTTPTimeout time.Duration
	// SpinnerDelay is how long the progress indicator spins before the request.
	SpinnerDelay time.Duration

	LogLevel string

	Port          string
	WatchInterval time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	// Only a malformed .env is reported.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("INFO: error loading .env file: %v", err)
	}
	return fromEnv(newEnv())
}

func newEnv() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("TOOL_LANGUAGE", "en")
	v.SetDefault("WEATHER_API_BASE_URL", "http://api.weatherapi.com")
	v.SetDefault("LOCALES_DIR", "locales")
	v.SetDefault("HTTP_TIMEOUT", "0")
	v.SetDefault("SPINNER_DELAY", "1s")
	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("PORT", "8080")
	v.SetDefault("WATCH_INTERVAL", "15m")
	return v
}

func fromEnv(v *viper.Viper) (*AppConfig, error) {
	cfg := &AppConfig{
		WeatherAPIKey: v.GetString("API_KEY"),
		Language:      strings.TrimSpace(v.GetString("TOOL_LANGUAGE")),
		BaseURL:       strings.TrimRight(v.GetString("WEATHER_API_BASE_URL"), "/"),
		LocalesDir:    v.GetString("LOCALES_DIR"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		Port:          v.GetString("PORT"),
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}

	var err error
	if cfg.HTTPTimeout, err = duration(v, "HTTP_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.SpinnerDelay, err = duration(v, "SPINNER_DELAY"); err != nil {
		return nil, err
	}
	if cfg.WatchInterval, err = duration(v, "WATCH_INTERVAL"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// duration parses key as a Go duration. A bare "0" is accepted.
func duration(v *viper.Viper, key string) (time.Duration, error) {
	s := strings.TrimSpace(v.GetString(key))
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}
