package tmdb

import (
	"github.com/Digital-Shane/like-that/internal/media"
	"github.com/ryanbradynd05/go-tmdb"
)

// Conversion functions

func movieRecord(movie *tmdb.Movie) media.Record {
	rec := media.Record{
		ID:          movie.ID,
		Title:       movie.Title,
		Overview:    movie.Overview,
		PosterPath:  movie.PosterPath,
		ReleaseDate: movie.ReleaseDate,
		VoteAverage: float32(movie.VoteAverage),
		VoteCount:   uint32(movie.VoteCount),
		Genres:      make([]media.Genre, 0, len(movie.Genres)),
	}
	for _, g := range movie.Genres {
		rec.Genres = append(rec.Genres, media.Genre{ID: g.ID, Name: g.Name})
	}
	return rec
}

func movieShortRecord(movie tmdb.MovieShort) media.Record {
	return media.Record{
		ID:          movie.ID,
		Title:       movie.Title,
		Overview:    movie.Overview,
		PosterPath:  movie.PosterPath,
		ReleaseDate: movie.ReleaseDate,
		VoteAverage: float32(movie.VoteAverage),
		VoteCount:   uint32(movie.VoteCount),
	}
}

func movieSearchRecords(results *tmdb.MovieSearchResults) []media.Record {
	if results == nil {
		return nil
	}
	recs := make([]media.Record, 0, len(results.Results))
	for _, m := range results.Results {
		recs = append(recs, movieShortRecord(m))
	}
	return recs
}

func moviePagedRecords(results *tmdb.MoviePagedResults) []media.Record {
	if results == nil {
		return nil
	}
	recs := make([]media.Record, 0, len(results.Results))
	for _, m := range results.Results {
		recs = append(recs, movieShortRecord(m))
	}
	return recs
}

func tvRecord(show *tmdb.TV) media.Record {
	rec := media.Record{
		ID:           show.ID,
		Name:         show.Name,
		Overview:     show.Overview,
		PosterPath:   show.PosterPath,
		FirstAirDate: show.FirstAirDate,
		VoteAverage:  float32(show.VoteAverage),
		VoteCount:    uint32(show.VoteCount),
		Genres:       make([]media.Genre, 0, len(show.Genres)),
	}
	for _, g := range show.Genres {
		rec.Genres = append(rec.Genres, media.Genre{ID: g.ID, Name: g.Name})
	}
	return rec
}

// TV search results in the binding carry no overview, and no TV listing
// embeds genres, so those fields fall back to the formatter's placeholders.

func tvSearchRecords(results *tmdb.TvSearchResults) []media.Record {
	if results == nil {
		return nil
	}
	recs := make([]media.Record, 0, len(results.Results))
	for _, s := range results.Results {
		recs = append(recs, media.Record{
			ID:           s.ID,
			Name:         s.Name,
			PosterPath:   s.PosterPath,
			FirstAirDate: s.FirstAirDate,
			VoteAverage:  float32(s.VoteAverage),
			VoteCount:    uint32(s.VoteCount),
		})
	}
	return recs
}

func tvPagedRecords(results *tmdb.TvPagedResults) []media.Record {
	if results == nil {
		return nil
	}
	recs := make([]media.Record, 0, len(results.Results))
	for _, s := range results.Results {
		recs = append(recs, media.Record{
			ID:           s.ID,
			Name:         s.Name,
			Overview:     s.Overview,
			PosterPath:   s.PosterPath,
			FirstAirDate: s.FirstAirDate,
			VoteAverage:  float32(s.VoteAverage),
			VoteCount:    uint32(s.VoteCount),
		})
	}
	return recs
}
