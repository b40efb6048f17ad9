package tmdb

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Digital-Shane/like-that/internal/media"
	"github.com/Digital-Shane/like-that/internal/provider"
	"github.com/ryanbradynd05/go-tmdb"
	"golang.org/x/sync/errgroup"
)

// Movies is the provider.Gateway for TMDB movies.
type Movies struct {
	client *Client
}

var _ provider.Gateway = (*Movies)(nil)

// Kind returns media.KindMovie.
func (m *Movies) Kind() media.Kind {
	return media.KindMovie
}

// FindByTitle searches movies by title and returns the first hit.
func (m *Movies) FindByTitle(ctx context.Context, title string) (*media.Record, error) {
	var results *tmdb.MovieSearchResults
	err := m.client.call(ctx, "search_movie", func() (err error) {
		results, err = m.client.api.SearchMovie(title, m.client.options())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("search movie %q: %w", title, err)
	}

	recs := movieSearchRecords(results)
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// GetByID fetches full movie details.
func (m *Movies) GetByID(ctx context.Context, id int) (media.Summary, error) {
	var movie *tmdb.Movie
	err := m.client.call(ctx, "movie_info", func() (err error) {
		movie, err = m.client.api.GetMovieInfo(id, m.client.options())
		return err
	})
	if err != nil {
		return media.Summary{}, fmt.Errorf("get movie %d: %w", id, err)
	}
	if movie == nil {
		return media.Summary{}, fmt.Errorf("get movie %d: %w", id, emptyResponse("movie_info"))
	}
	return media.Format(movieRecord(movie), media.KindMovie), nil
}

// GetSimilar returns movies similar to id. Similar listings carry no genre
// objects, so every entry is re-fetched by id; the fetches run concurrently
// and the result keeps the listing order.
func (m *Movies) GetSimilar(ctx context.Context, id int) ([]media.Summary, error) {
	var results *tmdb.MoviePagedResults
	err := m.client.call(ctx, "movie_similar", func() (err error) {
		results, err = m.client.api.GetMovieSimilar(id, m.client.options())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("similar movies %d: %w", id, err)
	}

	recs := moviePagedRecords(results)
	out := make([]media.Summary, len(recs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.client.workers)
	for i, rec := range recs {
		g.Go(func() error {
			s, err := m.GetByID(gctx, rec.ID)
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("similar movies %d: %w", id, err)
	}

	return out, nil
}

// GetTopByGenre returns the best rated movies of a genre with at least
// movieMinVoteCount votes.
func (m *Movies) GetTopByGenre(ctx context.Context, genre string) ([]media.Summary, error) {
	var genres *tmdb.Genre
	err := m.client.call(ctx, "movie_genres", func() (err error) {
		genres, err = m.client.api.GetMovieGenres(map[string]string{"language": m.client.genreLanguage})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("movie genres: %w", err)
	}

	genreID, ok := findGenreID(genres, genre)
	if !ok {
		return nil, fmt.Errorf("movie genre %q: %w", genre, provider.ErrGenreNotFound)
	}

	opts := m.client.options()
	opts["with_genres"] = strconv.Itoa(genreID)
	opts["sort_by"] = sortByRatingDesc
	opts["vote_count.gte"] = strconv.Itoa(movieMinVoteCount)

	var results *tmdb.MoviePagedResults
	err = m.client.call(ctx, "discover_movie", func() (err error) {
		results, err = m.client.api.DiscoverMovie(opts)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("discover movies in %q: %w", genre, err)
	}

	return media.FormatAll(moviePagedRecords(results), media.KindMovie), nil
}

// emptyResponse reports a detail call that returned neither data nor error.
func emptyResponse(op string) error {
	return &provider.ProviderError{
		Provider: providerName,
		Code:     "EMPTY_RESPONSE",
		Message:  "TMDB returned an empty response for " + op,
	}
}
