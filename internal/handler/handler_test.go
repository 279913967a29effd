package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Sandy4321/MovieRecommend/internal/models"
	"github.com/Sandy4321/MovieRecommend/internal/service"
	"github.com/Sandy4321/MovieRecommend/internal/social"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const testSecret = "test-secret"

type stubUsers struct {
	ids      []int
	err      error
	progress []int
	lastOpts service.UserOptions
	titles   []string
}

func (s *stubUsers) RecommendForUser(_ context.Context, _ int, opts service.UserOptions) ([]int, error) {
	s.lastOpts = opts
	if opts.Progress != nil {
		for _, n := range s.progress {
			opts.Progress(n)
		}
	}
	return s.ids, s.err
}

func (s *stubUsers) SimilarUsersFor(_ context.Context, _ int, opts service.UserOptions) ([]int, error) {
	s.lastOpts = opts
	return s.ids, s.err
}

func (s *stubUsers) RecommendFromHistory(_ context.Context, titles []string, _ service.ProgressFunc) ([]int, error) {
	s.titles = titles
	return s.ids, s.err
}

type stubMovies struct {
	indexed, overlap []int
	err              error
	calls            []string
}

func (s *stubMovies) RecommendForMovie(context.Context, int) ([]int, error) {
	s.calls = append(s.calls, "indexed")
	return s.indexed, s.err
}

func (s *stubMovies) SimilarByTagOverlap(context.Context, int, service.ProgressFunc) ([]int, error) {
	s.calls = append(s.calls, "overlap")
	return s.overlap, s.err
}

func (s *stubMovies) ByTagContents(context.Context, []string) ([]int, error) {
	return s.indexed, s.err
}

func (s *stubMovies) ByGenres(context.Context, []string, int) ([]int, error) {
	return s.indexed, s.err
}

type stubProfiles struct {
	ids []int
	err error
}

func (s *stubProfiles) RecommendForProfile(context.Context, string, bool) ([]int, error) {
	return s.ids, s.err
}

func (s *stubProfiles) Fuse(context.Context, map[string]int, map[string]int) ([]int, error) {
	return s.ids, s.err
}

type stubRankings struct{}

func (stubRankings) Movies(_ context.Context, metric, _ string) ([]int, error) {
	if metric != service.MetricTopRated && metric != service.MetricMostPopular {
		return nil, fmt.Errorf("%w: %q", service.ErrUnknownMetric, metric)
	}
	return []int{3, 1}, nil
}

func (stubRankings) Actors(context.Context) ([]string, error) {
	return []string{"Tom Hanks"}, nil
}

func (stubRankings) Rebuild(context.Context) (int, error) { return 7, nil }

type stubBatch struct{}

func (stubBatch) PrecomputeSimilarMovies(_ context.Context, opts service.BatchOptions) (*service.BatchReport, error) {
	if opts.Shards > 0 && opts.Shard >= opts.Shards {
		return nil, service.ErrBadShard
	}
	return &service.BatchReport{RunID: "run-1", Selected: 3, Stored: 3}, nil
}

type stubLookup map[int]*models.Movie

func (s stubLookup) FindByID(_ context.Context, id int) (*models.Movie, error) {
	return s[id], nil
}

func (s stubLookup) FindByTitle(_ context.Context, title string) (*models.Movie, error) {
	for _, m := range s {
		if m.Title == title {
			return m, nil
		}
	}
	return nil, nil
}

type fixture struct {
	users    *stubUsers
	movies   *stubMovies
	profiles *stubProfiles
	server   http.Handler
}

func newFixture(ping Pinger) *fixture {
	f := &fixture{
		users:    &stubUsers{ids: []int{2, 1}},
		movies:   &stubMovies{indexed: []int{10}, overlap: []int{11, 12}},
		profiles: &stubProfiles{ids: []int{5}},
	}
	catalog := stubLookup{
		1: {MovieID: 1, Title: "Toy Story", IMDbID: 114709},
		2: {MovieID: 2, Title: "Jumanji", TitleFull: "Jumanji (1995)"},
	}
	present := NewPresenter(catalog)
	f.server = NewRouter(RouterConfig{
		Recommend:     NewRecommendHandler(f.users, f.movies, f.profiles, present),
		Movies:        NewMovieHandler(catalog),
		Rankings:      NewRankingsHandler(stubRankings{}, present),
		Admin:         NewAdminHandler(f.users, f.movies, stubBatch{}, stubRankings{}),
		Ping:          ping,
		JWTSecret:     testSecret,
		ScanTimeout:   time.Second,
		ScanRateLimit: 1000,
	})
	return f
}

func (f *fixture) do(t *testing.T, method, target, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func token(t *testing.T, role string) string {
	t.Helper()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ops",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + s
}

func TestUserRecommendations(t *testing.T) {
	f := newFixture(nil)

	rec := f.do(t, http.MethodGet, "/users/7/recommendations?expand=true&refresh=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	got := decode[models.Recommendation](t, rec)
	if got.Recommender != "user" || got.Subject != "7" {
		t.Errorf("envelope = %+v", got)
	}
	want := []models.RecItem{
		{MovieID: 2, Title: "Jumanji (1995)"},
		{MovieID: 1, Title: "Toy Story", IMDb: "tt0114709"},
	}
	if !reflect.DeepEqual(got.Items, want) {
		t.Errorf("items = %+v, want %+v", got.Items, want)
	}
	if !f.users.lastOpts.Refresh {
		t.Error("refresh flag not passed through")
	}

	if rec := f.do(t, http.MethodGet, "/users/abc/recommendations", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d", rec.Code)
	}
}

func TestUserRecommendations_EmptyIsArray(t *testing.T) {
	f := newFixture(nil)
	f.users.ids = nil

	rec := f.do(t, http.MethodGet, "/users/7/recommendations", "")
	if !strings.Contains(rec.Body.String(), `"movieIds":[]`) {
		t.Errorf("body = %s, want empty movieIds array", rec.Body)
	}
}

func TestPostHistory(t *testing.T) {
	f := newFixture(nil)

	rec := f.do(t, http.MethodPost, "/recommendations/history", `{"titles":["Heat","Casino"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if !reflect.DeepEqual(f.users.titles, []string{"Heat", "Casino"}) {
		t.Errorf("titles = %v", f.users.titles)
	}

	for _, body := range []string{`{"titles":[]}`, `{"titles":[""]}`, `not json`} {
		if rec := f.do(t, http.MethodPost, "/recommendations/history", body); rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestPostFusionValidation(t *testing.T) {
	f := newFixture(nil)

	if rec := f.do(t, http.MethodPost, "/recommendations/profile", `{"actors":{"Tom Hanks":2},"tags":{"space":1}}`); rec.Code != http.StatusOK {
		t.Errorf("status = %d, body %s", rec.Code, rec.Body)
	}
	if rec := f.do(t, http.MethodPost, "/recommendations/profile", `{"actors":{"Tom Hanks":0}}`); rec.Code != http.StatusBadRequest {
		t.Errorf("zero count status = %d, want 400", rec.Code)
	}
}

func TestSimilarMoviesStrategy(t *testing.T) {
	f := newFixture(nil)

	tests := []struct {
		query  string
		status int
		ids    []int
	}{
		{"", http.StatusOK, []int{10}},
		{"?strategy=indexed", http.StatusOK, []int{10}},
		{"?strategy=exhaustive", http.StatusOK, []int{11, 12}},
		{"?strategy=magic", http.StatusBadRequest, nil},
	}
	for _, tt := range tests {
		rec := f.do(t, http.MethodGet, "/movies/5/similar"+tt.query, "")
		if rec.Code != tt.status {
			t.Errorf("%q: status = %d, want %d", tt.query, rec.Code, tt.status)
			continue
		}
		if tt.ids != nil {
			if got := decode[models.Recommendation](t, rec); !reflect.DeepEqual(got.MovieIDs, tt.ids) {
				t.Errorf("%q: ids = %v, want %v", tt.query, got.MovieIDs, tt.ids)
			}
		}
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("fetch: %w", social.ErrUnavailable), http.StatusBadGateway},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{fmt.Errorf("scan users: %w", context.Canceled), StatusClientClosedRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		f := newFixture(nil)
		f.profiles.err = tt.err
		rec := f.do(t, http.MethodGet, "/profiles/@rebel/recommendations", "")
		if rec.Code != tt.status {
			t.Errorf("%v: status = %d, want %d", tt.err, rec.Code, tt.status)
		}
	}
}

func TestRankings(t *testing.T) {
	f := newFixture(nil)

	rec := f.do(t, http.MethodGet, "/rankings/movies?metric=most_popular&genre=Drama", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decode[models.Recommendation](t, rec)
	if got.Recommender != "most_popular" || got.Subject != "Drama" || !reflect.DeepEqual(got.MovieIDs, []int{3, 1}) {
		t.Errorf("ranking = %+v", got)
	}

	if rec := f.do(t, http.MethodGet, "/rankings/movies?metric=best", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown metric status = %d, want 400", rec.Code)
	}
	if rec := f.do(t, http.MethodGet, "/rankings/actors", ""); rec.Code != http.StatusOK {
		t.Errorf("actors status = %d", rec.Code)
	}
}

func TestAdminRoutes(t *testing.T) {
	f := newFixture(nil)

	if rec := f.do(t, http.MethodPost, "/admin/rankings/rebuild", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", rec.Code)
	}
	if rec := f.do(t, http.MethodPost, "/admin/rankings/rebuild", "", "Authorization", token(t, "viewer")); rec.Code != http.StatusForbidden {
		t.Errorf("viewer status = %d, want 403", rec.Code)
	}

	admin := token(t, RoleAdmin)
	rec := f.do(t, http.MethodPost, "/admin/rankings/rebuild", "", "Authorization", admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin status = %d, body %s", rec.Code, rec.Body)
	}
	if got := decode[models.RebuildRankingsResult](t, rec); got.Lists != 7 {
		t.Errorf("lists = %d, want 7", got.Lists)
	}

	rec = f.do(t, http.MethodPost, "/admin/users/3/similar-users", "", "Authorization", admin)
	if rec.Code != http.StatusOK || !f.users.lastOpts.Refresh {
		t.Errorf("similar users: status %d, refresh %v", rec.Code, f.users.lastOpts.Refresh)
	}

	rec = f.do(t, http.MethodPost, "/admin/batch/similar-movies", `{"shard":0,"shards":2,"parallelism":4}`, "Authorization", admin)
	if rec.Code != http.StatusOK {
		t.Errorf("batch status = %d, body %s", rec.Code, rec.Body)
	}
	rec = f.do(t, http.MethodPost, "/admin/batch/similar-movies", `{"shard":2,"shards":2}`, "Authorization", admin)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad shard status = %d, want 400", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	if rec := newFixture(nil).do(t, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}

	down := newFixture(func(context.Context) error { return errors.New("no primary") })
	rec := down.do(t, http.MethodGet, "/health", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if got := decode[HealthResponse](t, rec); got.Status != "degraded" {
		t.Errorf("health = %+v", got)
	}
}

func TestUserRecommendationsWS(t *testing.T) {
	f := newFixture(nil)
	f.users.progress = []int{1000, 2000}
	srv := httptest.NewServer(f.server)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/users/7/ws/recommendations"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var types []string
	var last progressMessage
	for {
		var msg progressMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		types = append(types, msg.Type)
		last = msg
	}

	if want := []string{"start", "progress", "progress", "result"}; !reflect.DeepEqual(types, want) {
		t.Fatalf("messages = %v, want %v", types, want)
	}
	if last.Result == nil || !reflect.DeepEqual(last.Result.MovieIDs, []int{2, 1}) {
		t.Errorf("result = %+v", last.Result)
	}
}

func TestMovieLookup(t *testing.T) {
	f := newFixture(nil)

	tests := []struct {
		name   string
		target string
		status int
		want   int
	}{
		{"by id", "/movies/1", http.StatusOK, 1},
		{"unknown id", "/movies/99", http.StatusNotFound, 0},
		{"bad id", "/movies/abc", http.StatusBadRequest, 0},
		{"by title", "/movies?title=Jumanji", http.StatusOK, 2},
		{"unknown title", "/movies?title=Heat", http.StatusNotFound, 0},
		{"missing title", "/movies", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, tt.target, "")
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body)
			}
			if tt.want != 0 {
				if got := decode[models.Movie](t, rec); got.MovieID != tt.want {
					t.Errorf("movie = %d, want %d", got.MovieID, tt.want)
				}
			}
		})
	}
}

func TestAdminJobsLogSubject(t *testing.T) {
	var buf bytes.Buffer
	h := NewAdminHandler(&stubUsers{}, &stubMovies{}, stubBatch{}, stubRankings{})
	h.log = zerolog.New(&buf)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(JWTAuth(testSecret))
		r.Use(AdminOnly())
		MountAdminRoutes(r, h)
	})

	req := httptest.NewRequest(http.MethodPost, "/admin/rankings/rebuild", nil)
	req.Header.Set("Authorization", token(t, RoleAdmin))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	line := buf.String()
	if !strings.Contains(line, `"subject":"ops"`) || !strings.Contains(line, `"path":"/admin/rankings/rebuild"`) {
		t.Errorf("audit line = %q", line)
	}
}
