// Package intent turns a free-text media query into a typed Intent using a
// text-generation model.
package intent

import "errors"

// ErrClassification is returned when the model reply cannot be turned into
// an Intent.
var ErrClassification = errors.New("intent classification failed")

// Tag names the operation a query asks for.
type Tag string

const (
	FindByDialogue Tag = "find_movie_by_dialogue"
	TopByGenre     Tag = "get_top_by_genre"
	FindSimilar    Tag = "find_similar_movies"
)

// Tags lists every recognized tag.
var Tags = []Tag{FindByDialogue, TopByGenre, FindSimilar}

// Known reports whether t is one of the recognized tags.
func (t Tag) Known() bool {
	switch t {
	case FindByDialogue, TopByGenre, FindSimilar:
		return true
	}
	return false
}

// Intent is the classified form of one query. Fields other than Intent are
// optional and MediaType is left as the model returned it.
type Intent struct {
	Intent     Tag    `json:"intent"`
	MovieTitle string `json:"movieTitle,omitempty"`
	Genre      string `json:"genre,omitempty"`
	MediaType  string `json:"mediaType,omitempty"`
}
