package media

const (
	// PosterBaseURL is the TMDB image CDN root.
	PosterBaseURL = "https://image.tmdb.org/t/p/"
	// PosterSize is the size variant appended to PosterBaseURL.
	PosterSize = "w500"
	// PlaceholderPosterURL is used when a record has no poster.
	PlaceholderPosterURL = "https://via.placeholder.com/500x750.png?text=No+Image"
	// NoOverview is used when a record has no overview ("no summary found").
	NoOverview = "خلاصه‌ای یافت نشد."
)

// Format normalizes a provider record of the given kind into a Summary.
// Missing fields degrade to their placeholders; Format never fails.
func Format(rec Record, kind Kind) Summary {
	s := Summary{
		ID:          rec.ID,
		Overview:    rec.Overview,
		PosterURL:   PosterURL(rec.PosterPath),
		VoteAverage: rec.VoteAverage,
		Genres:      make([]string, 0, len(rec.Genres)),
	}

	if kind == KindTV {
		s.Title = rec.Name
		s.ReleaseDate = rec.FirstAirDate
	} else {
		s.Title = rec.Title
		s.ReleaseDate = rec.ReleaseDate
	}

	if s.Overview == "" {
		s.Overview = NoOverview
	}

	for _, g := range rec.Genres {
		s.Genres = append(s.Genres, g.Name)
	}

	return s
}

// FormatAll formats every record in order.
func FormatAll(recs []Record, kind Kind) []Summary {
	out := make([]Summary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Format(rec, kind))
	}
	return out
}

// PosterURL builds the absolute poster URL for a TMDB path fragment.
func PosterURL(path string) string {
	if path == "" {
		return PlaceholderPosterURL
	}
	return PosterBaseURL + PosterSize + path
}
