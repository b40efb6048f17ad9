package tmdb

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Digital-Shane/like-that/internal/media"
	"github.com/Digital-Shane/like-that/internal/provider"
	"github.com/ryanbradynd05/go-tmdb"
)

// Shows is the provider.Gateway for TMDB TV series.
type Shows struct {
	client *Client
}

var _ provider.Gateway = (*Shows)(nil)

// Kind returns media.KindTV.
func (s *Shows) Kind() media.Kind {
	return media.KindTV
}

// FindByTitle searches TV series by name and returns the first hit.
func (s *Shows) FindByTitle(ctx context.Context, title string) (*media.Record, error) {
	var results *tmdb.TvSearchResults
	err := s.client.call(ctx, "search_tv", func() (err error) {
		results, err = s.client.api.SearchTv(title, s.client.options())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("search tv %q: %w", title, err)
	}

	recs := tvSearchRecords(results)
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// GetByID fetches full series details.
func (s *Shows) GetByID(ctx context.Context, id int) (media.Summary, error) {
	var show *tmdb.TV
	err := s.client.call(ctx, "tv_info", func() (err error) {
		show, err = s.client.api.GetTvInfo(id, s.client.options())
		return err
	})
	if err != nil {
		return media.Summary{}, fmt.Errorf("get tv %d: %w", id, err)
	}
	if show == nil {
		return media.Summary{}, fmt.Errorf("get tv %d: %w", id, emptyResponse("tv_info"))
	}
	return media.Format(tvRecord(show), media.KindTV), nil
}

// GetSimilar returns series similar to id. Unlike movies, entries are
// formatted as listed, without a per-item detail fetch.
func (s *Shows) GetSimilar(ctx context.Context, id int) ([]media.Summary, error) {
	var results *tmdb.TvPagedResults
	err := s.client.call(ctx, "tv_similar", func() (err error) {
		results, err = s.client.api.GetTvSimilar(id, s.client.options())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("similar tv %d: %w", id, err)
	}

	return media.FormatAll(tvPagedRecords(results), media.KindTV), nil
}

// GetTopByGenre returns the best rated series of a genre with at least
// tvMinVoteCount votes.
func (s *Shows) GetTopByGenre(ctx context.Context, genre string) ([]media.Summary, error) {
	var genres *tmdb.Genre
	err := s.client.call(ctx, "tv_genres", func() (err error) {
		genres, err = s.client.api.GetTvGenres(map[string]string{"language": s.client.genreLanguage})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("tv genres: %w", err)
	}

	genreID, ok := findGenreID(genres, genre)
	if !ok {
		return nil, fmt.Errorf("tv genre %q: %w", genre, provider.ErrGenreNotFound)
	}

	opts := s.client.options()
	opts["with_genres"] = strconv.Itoa(genreID)
	opts["sort_by"] = sortByRatingDesc
	opts["vote_count.gte"] = strconv.Itoa(tvMinVoteCount)

	var results *tmdb.TvPagedResults
	err = s.client.call(ctx, "discover_tv", func() (err error) {
		results, err = s.client.api.DiscoverTV(opts)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("discover tv in %q: %w", genre, err)
	}

	return media.FormatAll(tvPagedRecords(results), media.KindTV), nil
}
