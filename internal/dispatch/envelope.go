package dispatch

import "github.com/Digital-Shane/like-that/internal/media"

// EnvelopeType tags the shape of Envelope.Data.
type EnvelopeType string

const (
	// SingleMovie envelopes carry one media.Summary.
	SingleMovie EnvelopeType = "single_movie"
	// MovieList envelopes carry a title and an ordered []media.Summary.
	MovieList EnvelopeType = "movie_list"
)

// Envelope is the result of one handled query.
type Envelope struct {
	Type  EnvelopeType `json:"type"`
	Title string       `json:"title,omitempty"`
	Data  any          `json:"data"`
}

func single(s media.Summary) Envelope {
	return Envelope{Type: SingleMovie, Data: s}
}

func list(title string, items []media.Summary) Envelope {
	if items == nil {
		items = []media.Summary{}
	}
	return Envelope{Type: MovieList, Title: title, Data: items}
}

// Single returns the summary of a single_movie envelope.
func (e Envelope) Single() (media.Summary, bool) {
	s, ok := e.Data.(media.Summary)
	return s, ok && e.Type == SingleMovie
}

// Items returns the summaries of a movie_list envelope.
func (e Envelope) Items() ([]media.Summary, bool) {
	items, ok := e.Data.([]media.Summary)
	return items, ok && e.Type == MovieList
}

func similarTitle(kind media.Kind, title string) string {
	if kind == media.KindTV {
		return "سریال‌های مشابه " + title
	}
	return "فیلم‌های مشابه " + title
}

func topByGenreTitle(kind media.Kind, genre string) string {
	if kind == media.KindTV {
		return "برترین سریال‌های ژانر " + genre
	}
	return "برترین فیلم‌های ژانر " + genre
}
