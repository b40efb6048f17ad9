package tmdb

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Digital-Shane/like-that/internal/provider"
	"github.com/hashicorp/go-hclog"
	"github.com/ryanbradynd05/go-tmdb"
)

const (
	providerName = "tmdb"

	// Vote-count floors for top-by-genre discovery.
	movieMinVoteCount = 500
	tvMinVoteCount    = 200

	sortByRatingDesc = "vote_average.desc"
)

// ErrInvalidAPIKey is returned by New when no API key is configured.
var ErrInvalidAPIKey = errors.New("invalid API key")

// TMDBClient interface for testing (matches *tmdb.TMDb exactly)
type TMDBClient interface {
	SearchMovie(name string, options map[string]string) (*tmdb.MovieSearchResults, error)
	SearchTv(name string, options map[string]string) (*tmdb.TvSearchResults, error)
	GetMovieInfo(id int, options map[string]string) (*tmdb.Movie, error)
	GetTvInfo(id int, options map[string]string) (*tmdb.TV, error)
	GetMovieSimilar(id int, options map[string]string) (*tmdb.MoviePagedResults, error)
	GetTvSimilar(id int, options map[string]string) (*tmdb.TvPagedResults, error)
	GetMovieGenres(options map[string]string) (*tmdb.Genre, error)
	GetTvGenres(options map[string]string) (*tmdb.Genre, error)
	DiscoverMovie(options map[string]string) (*tmdb.MoviePagedResults, error)
	DiscoverTV(options map[string]string) (*tmdb.TvPagedResults, error)
}

// Options configures a Client.
type Options struct {
	APIKey string
	// Language is sent with every request.
	Language string
	// GenreLanguage is used for genre list lookups so classified English
	// genre names can be matched.
	GenreLanguage string
	// RequestsPerWindow and Window bound outbound request rate. A zero
	// RequestsPerWindow disables throttling.
	RequestsPerWindow int
	Window            time.Duration
	// Workers bounds concurrent detail fetches when enriching similar movies.
	Workers int
	Logger  hclog.Logger
}

// Client is the shared TMDB connection behind the movie and TV gateways.
type Client struct {
	api           TMDBClient
	language      string
	genreLanguage string
	workers       int
	limiter       *rateLimiter
	logger        hclog.Logger
}

// New creates a Client backed by the TMDB REST API.
func New(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, ErrInvalidAPIKey
	}

	api := tmdb.Init(tmdb.Config{
		APIKey:   opts.APIKey,
		Proxies:  nil,
		UseProxy: false,
	})

	return NewWithClient(api, opts), nil
}

// NewWithClient creates a Client around an existing TMDBClient.
func NewWithClient(api TMDBClient, opts Options) *Client {
	c := &Client{
		api:           api,
		language:      opts.Language,
		genreLanguage: opts.GenreLanguage,
		workers:       opts.Workers,
		logger:        opts.Logger,
	}
	if c.language == "" {
		c.language = "fa-IR"
	}
	if c.genreLanguage == "" {
		c.genreLanguage = "en-US"
	}
	if c.workers <= 0 {
		c.workers = 10
	}
	if c.logger == nil {
		c.logger = hclog.NewNullLogger()
	}
	c.logger = c.logger.Named(providerName)

	if opts.RequestsPerWindow > 0 {
		window := opts.Window
		if window <= 0 {
			window = 10 * time.Second
		}
		c.limiter = newRateLimiter(opts.RequestsPerWindow, window)
	}

	return c
}

// Movies returns the movie gateway.
func (c *Client) Movies() *Movies {
	return &Movies{client: c}
}

// Shows returns the TV gateway.
func (c *Client) Shows() *Shows {
	return &Shows{client: c}
}

// options returns the base request options carrying the configured language.
func (c *Client) options() map[string]string {
	return map[string]string{"language": c.language}
}

// call runs one TMDB request under the rate limiter and maps its failure.
// The underlying binding has no context support, so ctx only gates the
// start of the request.
func (c *Client) call(ctx context.Context, op string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.limiter != nil {
		if err := c.limiter.wait(ctx); err != nil {
			return err
		}
	}

	start := time.Now()
	if err := fn(); err != nil {
		mapped := mapError(err)
		c.logger.Warn("request failed", "op", op, "error", err)
		return mapped
	}
	c.logger.Trace("request complete", "op", op, "duration", time.Since(start))
	return nil
}

// mapError maps TMDB errors to provider errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "401") || strings.Contains(errStr, "unauthorized") {
		return &provider.ProviderError{
			Provider: providerName,
			Code:     "AUTH_FAILED",
			Message:  "TMDB authentication failed: " + err.Error(),
			Retry:    false,
			Err:      err,
		}
	}
	if strings.Contains(errStr, "429") || strings.Contains(errStr, "rate limit") {
		return &provider.ProviderError{
			Provider:   providerName,
			Code:       "RATE_LIMITED",
			Message:    "TMDB rate limit exceeded",
			Retry:      true,
			RetryAfter: 10,
			Err:        err,
		}
	}
	if strings.Contains(errStr, "503") || strings.Contains(errStr, "unavailable") {
		return &provider.ProviderError{
			Provider:   providerName,
			Code:       "UNAVAILABLE",
			Message:    "TMDB service unavailable",
			Retry:      true,
			RetryAfter: 30,
			Err:        err,
		}
	}

	return &provider.ProviderError{
		Provider: providerName,
		Code:     "UNKNOWN",
		Message:  "TMDB error: " + err.Error(),
		Retry:    false,
		Err:      err,
	}
}

// findGenreID resolves a genre by case-insensitive exact name.
func findGenreID(list *tmdb.Genre, name string) (int, bool) {
	if list == nil {
		return 0, false
	}
	for _, g := range list.Genres {
		if strings.EqualFold(g.Name, name) {
			return g.ID, true
		}
	}
	return 0, false
}
