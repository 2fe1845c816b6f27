package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"go.uber.org/zap"

	"github.com/i474232898/weather-cli/internal/cli"
	"github.com/i474232898/weather-cli/internal/config"
	"github.com/i474232898/weather-cli/internal/locale"
	"github.com/i474232898/weather-cli/internal/logging"
	"github.com/i474232898/weather-cli/internal/weather"
	"github.com/i474232898/weather-cli/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	catalog, fellBack, err := locale.Load(cfg.LocalesDir, cfg.Language)
	if err != nil {
		logger.Fatal("failed to load translations", zap.Error(err))
	}
	if fellBack {
		fmt.Fprintf(os.Stderr, "Translation file for '%s' not found. Falling back to English.\n", cfg.Language)
	}

	if cfg.WeatherAPIKey == "" {
		logger.Warn("API_KEY is not set; requests will be rejected upstream")
	}

	// Timeout 0 keeps the request unbounded unless HTTP_TIMEOUT is set.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	provider := providers.NewWeatherAPIProvider(httpClient, cfg.BaseURL, cfg.WeatherAPIKey, cfg.Language)

	app := &cli.App{
		Config:  cfg,
		Catalog: catalog,
		Service: weather.NewService(provider, logger),
		Logger:  logger,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		NewIndicator: func() cli.Indicator {
			return spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, app, os.Args[1:])
	stop()
	_ = logger.Sync()
	os.Exit(code)
}
