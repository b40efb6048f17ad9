package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/Digital-Shane/like-that/internal/intent"
	"github.com/Digital-Shane/like-that/internal/media"
	"github.com/Digital-Shane/like-that/internal/provider"
	"github.com/google/go-cmp/cmp"
)

// mockClassifier returns a fixed intent or error
type mockClassifier struct {
	in  intent.Intent
	err error

	gotQuery string
}

func (m *mockClassifier) Classify(ctx context.Context, query string) (intent.Intent, error) {
	m.gotQuery = query
	return m.in, m.err
}

// mockGateway implements provider.Gateway with function fields
type mockGateway struct {
	kind              media.Kind
	findByTitleFunc   func(ctx context.Context, title string) (*media.Record, error)
	getByIDFunc       func(ctx context.Context, id int) (media.Summary, error)
	getSimilarFunc    func(ctx context.Context, id int) ([]media.Summary, error)
	getTopByGenreFunc func(ctx context.Context, genre string) ([]media.Summary, error)

	calls []string
}

var errNotImplemented = errors.New("not implemented")

func (m *mockGateway) Kind() media.Kind { return m.kind }

func (m *mockGateway) FindByTitle(ctx context.Context, title string) (*media.Record, error) {
	m.calls = append(m.calls, "FindByTitle:"+title)
	if m.findByTitleFunc != nil {
		return m.findByTitleFunc(ctx, title)
	}
	return nil, errNotImplemented
}

func (m *mockGateway) GetByID(ctx context.Context, id int) (media.Summary, error) {
	m.calls = append(m.calls, "GetByID")
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return media.Summary{}, errNotImplemented
}

func (m *mockGateway) GetSimilar(ctx context.Context, id int) ([]media.Summary, error) {
	m.calls = append(m.calls, "GetSimilar")
	if m.getSimilarFunc != nil {
		return m.getSimilarFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockGateway) GetTopByGenre(ctx context.Context, genre string) ([]media.Summary, error) {
	m.calls = append(m.calls, "GetTopByGenre:"+genre)
	if m.getTopByGenreFunc != nil {
		return m.getTopByGenreFunc(ctx, genre)
	}
	return nil, errNotImplemented
}

// recorderFunc adapts a function to Recorder
type recorderFunc func(tag intent.Tag, err error)

func (f recorderFunc) Record(tag intent.Tag, err error) { f(tag, err) }

var (
	terminator = media.Summary{
		ID:          218,
		Title:       "The Terminator",
		Overview:    "A cyborg assassin is sent back in time.",
		PosterURL:   "https://image.tmdb.org/t/p/w500/qvktm0BHcnmDpul4Hz01GIazWPr.jpg",
		ReleaseDate: "1984-10-26",
		VoteAverage: 7.7,
		Genres:      []string{"Action"},
	}
	dramas = []media.Summary{
		{ID: 1396, Title: "Breaking Bad", VoteAverage: 8.9, Genres: []string{}},
		{ID: 1399, Title: "Game of Thrones", VoteAverage: 8.5, Genres: []string{}},
	}
)

func newDispatcher(t *testing.T, c Classifier, gws ...provider.Gateway) *Dispatcher {
	t.Helper()
	reg, err := provider.NewRegistry(gws...)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return New(c, reg, Options{})
}

func TestHandle_Dialogue(t *testing.T) {
	movies := &mockGateway{
		kind: media.KindMovie,
		findByTitleFunc: func(ctx context.Context, title string) (*media.Record, error) {
			return &media.Record{ID: 218, Title: "The Terminator"}, nil
		},
		getByIDFunc: func(ctx context.Context, id int) (media.Summary, error) {
			if id != 218 {
				t.Errorf("GetByID(%d), want 218", id)
			}
			return terminator, nil
		},
	}
	c := &mockClassifier{in: intent.Intent{Intent: intent.FindByDialogue, MovieTitle: "The Terminator", MediaType: "movie"}}
	d := newDispatcher(t, c, movies, &mockGateway{kind: media.KindTV})

	got, err := d.Handle(context.Background(), "  I'll be back  ")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	want := Envelope{Type: SingleMovie, Data: terminator}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Handle() mismatch (-want +got):\n%s", diff)
	}
	if c.gotQuery != "  I'll be back  " {
		t.Errorf("classified query = %q, want it unchanged", c.gotQuery)
	}
	if diff := cmp.Diff([]string{"FindByTitle:The Terminator", "GetByID"}, movies.calls); diff != "" {
		t.Errorf("gateway calls mismatch (-want +got):\n%s", diff)
	}
}

func TestHandle_TopByGenre(t *testing.T) {
	tests := []struct {
		name      string
		mediaType string
		wantKind  media.Kind
		wantTitle string
	}{
		{name: "tv", mediaType: "tv", wantKind: media.KindTV, wantTitle: "برترین سریال‌های ژانر Drama"},
		{name: "movie", mediaType: "movie", wantKind: media.KindMovie, wantTitle: "برترین فیلم‌های ژانر Drama"},
		{name: "absent_defaults_to_movie", mediaType: "", wantKind: media.KindMovie, wantTitle: "برترین فیلم‌های ژانر Drama"},
		{name: "invalid_defaults_to_movie", mediaType: "anime", wantKind: media.KindMovie, wantTitle: "برترین فیلم‌های ژانر Drama"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var used media.Kind
			gateway := func(kind media.Kind) *mockGateway {
				return &mockGateway{
					kind: kind,
					getTopByGenreFunc: func(ctx context.Context, genre string) ([]media.Summary, error) {
						used = kind
						return dramas, nil
					},
				}
			}
			c := &mockClassifier{in: intent.Intent{Intent: intent.TopByGenre, Genre: "Drama", MediaType: tt.mediaType}}
			d := newDispatcher(t, c, gateway(media.KindMovie), gateway(media.KindTV))

			got, err := d.Handle(context.Background(), "بهترین سریال های درام")
			if err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if used != tt.wantKind {
				t.Errorf("gateway kind = %q, want %q", used, tt.wantKind)
			}

			want := Envelope{Type: MovieList, Title: tt.wantTitle, Data: dramas}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Handle() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandle_TopByGenreKeepsClassifiedName(t *testing.T) {
	var gotGenre string
	movies := &mockGateway{
		kind: media.KindMovie,
		getTopByGenreFunc: func(ctx context.Context, genre string) ([]media.Summary, error) {
			gotGenre = genre
			return nil, nil
		},
	}
	c := &mockClassifier{in: intent.Intent{Intent: intent.TopByGenre, Genre: "science fiction"}}
	d := newDispatcher(t, c, movies)

	got, err := d.Handle(context.Background(), "best sci-fi")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if gotGenre != "science fiction" {
		t.Errorf("genre = %q, want %q", gotGenre, "science fiction")
	}
	if got.Title != "برترین فیلم‌های ژانر science fiction" {
		t.Errorf("Title = %q", got.Title)
	}
	items, ok := got.Items()
	if !ok || items == nil || len(items) != 0 {
		t.Errorf("Items() = %v, %v, want empty non-nil list", items, ok)
	}
}

func TestHandle_Similar(t *testing.T) {
	tests := []struct {
		name      string
		kind      media.Kind
		rec       media.Record
		wantTitle string
	}{
		{
			name:      "movie",
			kind:      media.KindMovie,
			rec:       media.Record{ID: 949, Title: "Heat"},
			wantTitle: "فیلم‌های مشابه Heat",
		},
		{
			name:      "tv",
			kind:      media.KindTV,
			rec:       media.Record{ID: 1396, Name: "Breaking Bad"},
			wantTitle: "سریال‌های مشابه Breaking Bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &mockGateway{
				kind: tt.kind,
				findByTitleFunc: func(ctx context.Context, title string) (*media.Record, error) {
					rec := tt.rec
					return &rec, nil
				},
				getSimilarFunc: func(ctx context.Context, id int) ([]media.Summary, error) {
					if id != tt.rec.ID {
						t.Errorf("GetSimilar(%d), want %d", id, tt.rec.ID)
					}
					return dramas, nil
				},
			}
			c := &mockClassifier{in: intent.Intent{Intent: intent.FindSimilar, MovieTitle: "whatever", MediaType: string(tt.kind)}}
			d := newDispatcher(t, c, gw)

			got, err := d.Handle(context.Background(), "something like it")
			if err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			want := Envelope{Type: MovieList, Title: tt.wantTitle, Data: dramas}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Handle() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandle_Errors(t *testing.T) {
	providerErr := &provider.ProviderError{Provider: "tmdb", Code: "UNKNOWN", Message: "TMDB error"}
	notFound := func(ctx context.Context, title string) (*media.Record, error) { return nil, nil }
	found := func(ctx context.Context, title string) (*media.Record, error) {
		return &media.Record{ID: 1, Title: "Heat"}, nil
	}

	tests := []struct {
		name       string
		query      string
		classifier *mockClassifier
		gateway    *mockGateway
		wantErr    error
		wantCalls  []string
	}{
		{
			name:       "empty_query",
			query:      "   ",
			classifier: &mockClassifier{},
			gateway:    &mockGateway{kind: media.KindMovie},
			wantErr:    ErrInvalidQuery,
		},
		{
			name:       "classification_failure",
			query:      "q",
			classifier: &mockClassifier{err: intent.ErrClassification},
			gateway:    &mockGateway{kind: media.KindMovie},
			wantErr:    intent.ErrClassification,
		},
		{
			name:       "unknown_intent",
			query:      "q",
			classifier: &mockClassifier{in: intent.Intent{Intent: "recommend_snacks"}},
			gateway:    &mockGateway{kind: media.KindMovie},
			wantErr:    ErrUnknownIntent,
		},
		{
			name:       "absent_intent",
			query:      "q",
			classifier: &mockClassifier{in: intent.Intent{MovieTitle: "Heat"}},
			gateway:    &mockGateway{kind: media.KindMovie},
			wantErr:    ErrUnknownIntent,
		},
		{
			name:       "dialogue_title_not_found",
			query:      "q",
			classifier: &mockClassifier{in: intent.Intent{Intent: intent.FindByDialogue, MovieTitle: "Nope"}},
			gateway:    &mockGateway{kind: media.KindMovie, findByTitleFunc: notFound},
			wantErr:    ErrMediaNotFound,
			wantCalls:  []string{"FindByTitle:Nope"},
		},
		{
			name:       "similar_title_not_found",
			query:      "q",
			classifier: &mockClassifier{in: intent.Intent{Intent: intent.FindSimilar, MovieTitle: "Nope"}},
			gateway:    &mockGateway{kind: media.KindMovie, findByTitleFunc: notFound},
			wantErr:    ErrMediaNotFound,
			wantCalls:  []string{"FindByTitle:Nope"},
		},
		{
			name:       "search_failure",
			query:      "q",
			classifier: &mockClassifier{in: intent.Intent{Intent: intent.FindSimilar, MovieTitle: "Heat"}},
			gateway: &mockGateway{kind: media.KindMovie, findByTitleFunc: func(ctx context.Context, title string) (*media.Record, error) {
				return nil, providerErr
			}},
			wantErr:   provider.ErrUnavailable,
			wantCalls: []string{"FindByTitle:Heat"},
		},
		{
			name:       "similar_failure",
			query:      "q",
			classifier: &mockClassifier{in: intent.Intent{Intent: intent.FindSimilar, MovieTitle: "Heat"}},
			gateway: &mockGateway{kind: media.KindMovie, findByTitleFunc: found, getSimilarFunc: func(ctx context.Context, id int) ([]media.Summary, error) {
				return nil, providerErr
			}},
			wantErr:   provider.ErrUnavailable,
			wantCalls: []string{"FindByTitle:Heat", "GetSimilar"},
		},
		{
			name:       "detail_failure",
			query:      "q",
			classifier: &mockClassifier{in: intent.Intent{Intent: intent.FindByDialogue, MovieTitle: "Heat"}},
			gateway: &mockGateway{kind: media.KindMovie, findByTitleFunc: found, getByIDFunc: func(ctx context.Context, id int) (media.Summary, error) {
				return media.Summary{}, providerErr
			}},
			wantErr:   provider.ErrUnavailable,
			wantCalls: []string{"FindByTitle:Heat", "GetByID"},
		},
		{
			name:       "genre_not_found",
			query:      "q",
			classifier: &mockClassifier{in: intent.Intent{Intent: intent.TopByGenre, Genre: "Dram"}},
			gateway: &mockGateway{kind: media.KindMovie, getTopByGenreFunc: func(ctx context.Context, genre string) ([]media.Summary, error) {
				return nil, provider.ErrGenreNotFound
			}},
			wantErr:   provider.ErrGenreNotFound,
			wantCalls: []string{"GetTopByGenre:Dram"},
		},
		{
			name:       "no_gateway_for_kind",
			query:      "q",
			classifier: &mockClassifier{in: intent.Intent{Intent: intent.TopByGenre, Genre: "Drama", MediaType: "tv"}},
			gateway:    &mockGateway{kind: media.KindMovie},
			wantErr:    provider.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDispatcher(t, tt.classifier, tt.gateway)

			got, err := d.Handle(context.Background(), tt.query)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Handle() error = %v, want %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(Envelope{}, got); diff != "" {
				t.Errorf("Handle() returned partial envelope (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantCalls, tt.gateway.calls); diff != "" {
				t.Errorf("gateway calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandle_Recorder(t *testing.T) {
	type outcome struct {
		Tag intent.Tag
		OK  bool
	}
	var (
		mu   sync.Mutex
		seen []outcome
	)
	rec := recorderFunc(func(tag intent.Tag, err error) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, outcome{Tag: tag, OK: err == nil})
	})

	movies := &mockGateway{
		kind: media.KindMovie,
		getTopByGenreFunc: func(ctx context.Context, genre string) ([]media.Summary, error) {
			if genre == "Drama" {
				return dramas, nil
			}
			return nil, provider.ErrGenreNotFound
		},
	}
	reg, err := provider.NewRegistry(movies)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	c := &mockClassifier{}
	d := New(c, reg, Options{Recorder: rec})

	c.in = intent.Intent{Intent: intent.TopByGenre, Genre: "Drama"}
	_, _ = d.Handle(context.Background(), "q")
	c.in = intent.Intent{Intent: intent.TopByGenre, Genre: "Dram"}
	_, _ = d.Handle(context.Background(), "q")
	c.in, c.err = intent.Intent{}, intent.ErrClassification
	_, _ = d.Handle(context.Background(), "q")
	// Rejected before classification, so nothing is recorded.
	_, _ = d.Handle(context.Background(), "")

	want := []outcome{
		{Tag: intent.TopByGenre, OK: true},
		{Tag: intent.TopByGenre, OK: false},
		{Tag: "", OK: false},
	}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("recorded outcomes mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvelopeJSON(t *testing.T) {
	tests := []struct {
		name string
		env  Envelope
		want string
	}{
		{
			name: "single_has_no_title",
			env:  single(media.Summary{ID: 1, Title: "Heat", Genres: []string{}}),
			want: `{"type":"single_movie","data":{"id":1,"title":"Heat","overview":"","poster_path":"","release_date":"","vote_average":0,"genres":[]}}`,
		},
		{
			name: "empty_list_is_not_null",
			env:  list("فیلم‌های مشابه Heat", nil),
			want: `{"type":"movie_list","title":"فیلم‌های مشابه Heat","data":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.env)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEnvelopeAccessors(t *testing.T) {
	s := single(terminator)
	if got, ok := s.Single(); !ok || got.ID != 218 {
		t.Errorf("Single() = %v, %v", got, ok)
	}
	if _, ok := s.Items(); ok {
		t.Error("Items() ok = true on single_movie envelope")
	}

	l := list("t", dramas)
	if got, ok := l.Items(); !ok || len(got) != 2 {
		t.Errorf("Items() = %v, %v", got, ok)
	}
	if _, ok := l.Single(); ok {
		t.Error("Single() ok = true on movie_list envelope")
	}
}
