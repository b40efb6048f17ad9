package intent

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// DefaultTemperature keeps model output close to deterministic.
const DefaultTemperature float32 = 0.1

// Generator returns the most likely completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
}

// Config for classifier.
type Config struct {
	Generator   Generator
	Temperature float32
	Logger      hclog.Logger
}

// Classifier classifies media queries.
type Classifier struct {
	gen         Generator
	temperature float32
	logger      hclog.Logger
}

// NewClassifier creates a new intent classifier.
func NewClassifier(cfg Config) *Classifier {
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Classifier{
		gen:         cfg.Generator,
		temperature: temperature,
		logger:      logger.Named("intent"),
	}
}

// Classify asks the model for the intent behind query. Every failure wraps
// ErrClassification.
func (c *Classifier) Classify(ctx context.Context, query string) (Intent, error) {
	if c.gen == nil {
		return Intent{}, fmt.Errorf("%w: no text generator configured", ErrClassification)
	}

	reply, err := c.gen.Generate(ctx, BuildPrompt(query), c.temperature)
	if err != nil {
		return Intent{}, fmt.Errorf("%w: text generation: %w", ErrClassification, err)
	}

	span, err := ExtractJSON(reply)
	if err != nil {
		c.logger.Debug("unparsable model reply", "reply", reply)
		return Intent{}, err
	}

	in, err := ParseIntent(span)
	if err != nil {
		c.logger.Debug("unparsable model reply", "reply", reply)
		return Intent{}, err
	}

	c.logger.Debug("intent detected", "intent", in.Intent, "title", in.MovieTitle, "genre", in.Genre, "media_type", in.MediaType)
	return in, nil
}
