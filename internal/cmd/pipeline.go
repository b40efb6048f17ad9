package cmd

import (
	"fmt"
	"io"

	"github.com/Digital-Shane/like-that/internal/config"
	"github.com/Digital-Shane/like-that/internal/dispatch"
	"github.com/Digital-Shane/like-that/internal/intent"
	"github.com/Digital-Shane/like-that/internal/log"
	"github.com/Digital-Shane/like-that/internal/provider"
	"github.com/Digital-Shane/like-that/internal/provider/tmdb"
	"github.com/hashicorp/go-hclog"
)

// loadConfig reads the config file and applies the persistent flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logJSON {
		cfg.LogJSON = true
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, out io.Writer) hclog.Logger {
	return log.New(log.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON, Output: out})
}

// newDispatcher wires the classifier and both TMDB gateways.
func newDispatcher(cfg *config.Config, logger hclog.Logger, recorder dispatch.Recorder) (*dispatch.Dispatcher, error) {
	if err := cfg.Validate(); err != nil {
		path, _ := config.ConfigPath()
		return nil, fmt.Errorf("invalid configuration (%s): %w", path, err)
	}

	gen, err := intent.NewOpenAIGenerator(intent.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	})
	if err != nil {
		return nil, err
	}
	classifier := intent.NewClassifier(intent.Config{
		Generator:   gen,
		Temperature: cfg.OpenAITemperature,
		Logger:      logger,
	})

	client, err := tmdb.New(tmdb.Options{
		APIKey:            cfg.TMDBAPIKey,
		Language:          cfg.TMDBLanguage,
		GenreLanguage:     cfg.TMDBGenreLanguage,
		RequestsPerWindow: cfg.TMDBRequestsPerWindow,
		Window:            cfg.Window(),
		Workers:           cfg.TMDBWorkerCount,
		Logger:            logger,
	})
	if err != nil {
		return nil, err
	}

	registry, err := provider.NewRegistry(client.Movies(), client.Shows())
	if err != nil {
		return nil, err
	}

	return dispatch.New(classifier, registry, dispatch.Options{Logger: logger, Recorder: recorder}), nil
}
