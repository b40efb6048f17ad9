// Package dispatch runs one natural-language media query through intent
// classification and the matching provider gateway.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Digital-Shane/like-that/internal/intent"
	"github.com/Digital-Shane/like-that/internal/media"
	"github.com/Digital-Shane/like-that/internal/provider"
	"github.com/hashicorp/go-hclog"
)

var (
	// ErrInvalidQuery is returned for an empty or whitespace-only query.
	ErrInvalidQuery = errors.New("query is required")
	// ErrUnknownIntent is returned when the classified tag is not recognized.
	ErrUnknownIntent = errors.New("unknown intent")
	// ErrMediaNotFound is returned when a title search comes back empty.
	ErrMediaNotFound = errors.New("media not found")
)

// Classifier turns a query into an Intent.
type Classifier interface {
	Classify(ctx context.Context, query string) (intent.Intent, error)
}

// Recorder receives the outcome of every classified query. Tag is empty when
// classification itself failed.
type Recorder interface {
	Record(tag intent.Tag, err error)
}

// Options for the dispatcher.
type Options struct {
	Logger   hclog.Logger
	Recorder Recorder
}

// Dispatcher routes classified queries to provider gateways. It holds no
// per-request state and is safe for concurrent use.
type Dispatcher struct {
	classifier Classifier
	registry   *provider.Registry
	logger     hclog.Logger
	recorder   Recorder
}

// New creates a dispatcher over the gateways in registry.
func New(classifier Classifier, registry *provider.Registry, opts Options) *Dispatcher {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Dispatcher{
		classifier: classifier,
		registry:   registry,
		logger:     logger.Named("dispatch"),
		recorder:   opts.Recorder,
	}
}

// Handle classifies query and runs the operation it asks for. The query is
// classified exactly as given. Any failure aborts the whole pipeline; no
// partial envelope is ever returned.
func (d *Dispatcher) Handle(ctx context.Context, query string) (Envelope, error) {
	if strings.TrimSpace(query) == "" {
		return Envelope{}, ErrInvalidQuery
	}

	start := time.Now()
	in, err := d.classifier.Classify(ctx, query)
	if err != nil {
		d.finish("", "", start, err)
		return Envelope{}, err
	}

	kind := media.ParseKind(in.MediaType)
	env, err := d.run(ctx, in, kind)
	d.finish(in.Intent, kind, start, err)
	if err != nil {
		return Envelope{}, err
	}
	return env, nil
}

func (d *Dispatcher) run(ctx context.Context, in intent.Intent, kind media.Kind) (Envelope, error) {
	if !in.Intent.Known() {
		return Envelope{}, fmt.Errorf("%w: %q", ErrUnknownIntent, in.Intent)
	}

	gw, ok := d.registry.Get(kind)
	if !ok {
		return Envelope{}, fmt.Errorf("%w: no gateway for %s", provider.ErrUnavailable, kind)
	}

	switch in.Intent {
	case intent.FindSimilar:
		rec, err := findTitle(ctx, gw, in.MovieTitle)
		if err != nil {
			return Envelope{}, err
		}
		items, err := gw.GetSimilar(ctx, rec.ID)
		if err != nil {
			return Envelope{}, err
		}
		return list(similarTitle(kind, rec.NativeTitle()), items), nil

	case intent.FindByDialogue:
		rec, err := findTitle(ctx, gw, in.MovieTitle)
		if err != nil {
			return Envelope{}, err
		}
		s, err := gw.GetByID(ctx, rec.ID)
		if err != nil {
			return Envelope{}, err
		}
		return single(s), nil

	default: // intent.TopByGenre
		items, err := gw.GetTopByGenre(ctx, in.Genre)
		if err != nil {
			return Envelope{}, err
		}
		return list(topByGenreTitle(kind, in.Genre), items), nil
	}
}

func findTitle(ctx context.Context, gw provider.Gateway, title string) (*media.Record, error) {
	rec, err := gw.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %s %q", ErrMediaNotFound, gw.Kind(), title)
	}
	return rec, nil
}

func (d *Dispatcher) finish(tag intent.Tag, kind media.Kind, start time.Time, err error) {
	if d.recorder != nil {
		d.recorder.Record(tag, err)
	}
	if err != nil {
		d.logger.Warn("query failed", "intent", tag, "media_type", kind, "duration", time.Since(start), "error", err)
		return
	}
	d.logger.Info("query handled", "intent", tag, "media_type", kind, "duration", time.Since(start))
}
