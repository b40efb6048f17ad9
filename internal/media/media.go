package media

import "strings"

// Kind identifies which provider schema a record belongs to.
type Kind string

const (
	KindMovie Kind = "movie"
	KindTV    Kind = "tv"
)

// ParseKind resolves a classified media type. Anything other than "tv",
// including the empty string, falls back to KindMovie.
func ParseKind(s string) Kind {
	if strings.EqualFold(strings.TrimSpace(s), string(KindTV)) {
		return KindTV
	}
	return KindMovie
}

// Genre is a provider genre entry.
type Genre struct {
	ID   int
	Name string
}

// Record is a provider media record in its native shape. Movies populate
// Title and ReleaseDate, TV shows populate Name and FirstAirDate. Genres is
// nil when the provider response did not embed genre objects, which is the
// case for search, similar and discover listings.
type Record struct {
	ID           int
	Title        string
	Name         string
	Overview     string
	PosterPath   string
	ReleaseDate  string
	FirstAirDate string
	VoteAverage  float32
	VoteCount    uint32
	Genres       []Genre
}

// NativeTitle returns the movie title, or the show name when the record has
// no title.
func (r Record) NativeTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// Summary is the normalized media record returned to callers.
type Summary struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	PosterURL   string   `json:"poster_path"`
	ReleaseDate string   `json:"release_date"`
	VoteAverage float32  `json:"vote_average"`
	Genres      []string `json:"genres"`
}
