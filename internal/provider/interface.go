package provider

import (
	"context"
	"errors"

	"github.com/Digital-Shane/like-that/internal/media"
)

var (
	// ErrUnavailable marks any failed call to a metadata provider.
	ErrUnavailable = errors.New("metadata provider unavailable")
	// ErrGenreNotFound is returned when a genre name has no exact match in the
	// provider's genre list.
	ErrGenreNotFound = errors.New("genre not found")
)

// Gateway is the set of lookups the dispatcher runs against one media kind.
// Implementations must be safe for concurrent use.
type Gateway interface {
	// Kind reports which media kind this gateway serves.
	Kind() media.Kind

	// FindByTitle returns the first search hit in its raw shape, or nil when
	// the search came back empty.
	FindByTitle(ctx context.Context, title string) (*media.Record, error)

	// GetByID fetches and formats a full detail record.
	GetByID(ctx context.Context, id int) (media.Summary, error)

	// GetSimilar returns the provider's similar list for id, formatted.
	GetSimilar(ctx context.Context, id int) ([]media.Summary, error)

	// GetTopByGenre returns the highest rated titles of a genre, resolved by
	// case-insensitive exact name.
	GetTopByGenre(ctx context.Context, genre string) ([]media.Summary, error)
}

// ProviderError represents an error from a provider
type ProviderError struct {
	Provider   string
	Code       string
	Message    string
	Retry      bool
	RetryAfter int // Seconds to wait before retry
	Err        error
}

func (e *ProviderError) Error() string {
	return e.Message
}

// Unwrap exposes ErrUnavailable along with the underlying cause.
func (e *ProviderError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnavailable}
	}
	return []error{ErrUnavailable, e.Err}
}
