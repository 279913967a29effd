package service

import (
	"context"
	"errors"
	"iter"
	"slices"
	"sync"

	"github.com/Sandy4321/MovieRecommend/internal/models"
)

var errStore = errors.New("store failure")

type fakeMovies struct {
	mu      sync.Mutex
	byID    map[int]*models.Movie
	order   []int
	writes  map[int][]int
	failSet map[int]bool
	scanErr error
}

func newFakeMovies(ms ...*models.Movie) *fakeMovies {
	f := &fakeMovies{byID: map[int]*models.Movie{}, writes: map[int][]int{}, failSet: map[int]bool{}}
	for _, m := range ms {
		f.byID[m.MovieID] = m
		f.order = append(f.order, m.MovieID)
	}
	return f
}

func (f *fakeMovies) FindByID(_ context.Context, id int) (*models.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id], nil
}

func (f *fakeMovies) FindByTitle(_ context.Context, title string) (*models.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.order {
		if f.byID[id].Title == title {
			return f.byID[id], nil
		}
	}
	return nil, nil
}

func (f *fakeMovies) scan(keep func(*models.Movie) bool) iter.Seq2[*models.Movie, error] {
	return func(yield func(*models.Movie, error) bool) {
		if f.scanErr != nil {
			yield(nil, f.scanErr)
			return
		}
		f.mu.Lock()
		ids := slices.Clone(f.order)
		f.mu.Unlock()
		for _, id := range ids {
			f.mu.Lock()
			m := f.byID[id]
			f.mu.Unlock()
			if keep(m) && !yield(m, nil) {
				return
			}
		}
	}
}

func (f *fakeMovies) Scan(context.Context) iter.Seq2[*models.Movie, error] {
	return f.scan(func(*models.Movie) bool { return true })
}

func (f *fakeMovies) ScanTagged(context.Context) iter.Seq2[*models.Movie, error] {
	return f.scan((*models.Movie).HasTags)
}

func (f *fakeMovies) SetSimilarMovies(_ context.Context, id int, ids []int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSet[id] {
		return errStore
	}
	f.writes[id] = ids
	if m, ok := f.byID[id]; ok {
		cp := *m
		cp.SimilarMovies = ids
		f.byID[id] = &cp
	}
	return nil
}

type fakeUsers struct {
	byID    map[int]*models.User
	order   []int
	writes  map[int][]int
	scans   int
	failSet bool
}

func newFakeUsers(us ...*models.User) *fakeUsers {
	f := &fakeUsers{byID: map[int]*models.User{}, writes: map[int][]int{}}
	for _, u := range us {
		f.byID[u.UserID] = u
		f.order = append(f.order, u.UserID)
	}
	return f
}

func (f *fakeUsers) FindByID(_ context.Context, id int) (*models.User, error) {
	return f.byID[id], nil
}

func (f *fakeUsers) Scan(context.Context) iter.Seq2[*models.User, error] {
	f.scans++
	return func(yield func(*models.User, error) bool) {
		for _, id := range f.order {
			if !yield(f.byID[id], nil) {
				return
			}
		}
	}
}

func (f *fakeUsers) SetSimilarUsers(_ context.Context, id int, ids []int) error {
	if f.failSet {
		return errStore
	}
	f.writes[id] = ids
	return nil
}

type fakeTags struct {
	byID map[int]*models.Tag
}

func newFakeTags(ts ...*models.Tag) *fakeTags {
	f := &fakeTags{byID: map[int]*models.Tag{}}
	for _, t := range ts {
		f.byID[t.TagID] = t
	}
	return f
}

func (f *fakeTags) FindByID(_ context.Context, id int) (*models.Tag, error) {
	return f.byID[id], nil
}

func (f *fakeTags) FindByContent(_ context.Context, content string) (*models.Tag, error) {
	for _, t := range f.byID {
		if t.Content == content {
			return t, nil
		}
	}
	return nil, nil
}

type fakeGenres map[string]*models.Genre

func (f fakeGenres) FindByName(_ context.Context, name string) (*models.Genre, error) {
	return f[name], nil
}

type fakeActors struct {
	byName map[string]*models.Actor
	order  []string
}

func newFakeActors(as ...*models.Actor) *fakeActors {
	f := &fakeActors{byName: map[string]*models.Actor{}}
	for _, a := range as {
		f.byName[a.Name] = a
		f.order = append(f.order, a.Name)
	}
	return f
}

func (f *fakeActors) FindByName(_ context.Context, name string) (*models.Actor, error) {
	return f.byName[name], nil
}

func (f *fakeActors) Scan(context.Context) iter.Seq2[*models.Actor, error] {
	return func(yield func(*models.Actor, error) bool) {
		for _, n := range f.order {
			if !yield(f.byName[n], nil) {
				return
			}
		}
	}
}

type fakeProfiles struct {
	byHandle map[string]*models.Profile
	upserts  int
}

func (f *fakeProfiles) FindByHandle(_ context.Context, handle string) (*models.Profile, error) {
	return f.byHandle[handle], nil
}

func (f *fakeProfiles) Upsert(_ context.Context, p *models.Profile) error {
	if f.byHandle == nil {
		f.byHandle = map[string]*models.Profile{}
	}
	f.byHandle[p.Handle] = p
	f.upserts++
	return nil
}

type fakeRankings map[string]*models.Ranking

func (f fakeRankings) Get(_ context.Context, name string) (*models.Ranking, error) {
	return f[name], nil
}

func (f fakeRankings) Put(_ context.Context, rk *models.Ranking) error {
	f[rk.Name] = rk
	return nil
}

type fakeSource struct {
	profiles map[string]*models.Profile
	err      error
	calls    int
}

func (f *fakeSource) FetchProfile(_ context.Context, handle string) (*models.Profile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[handle]
	if !ok {
		return nil, errNotFoundUpstream
	}
	return p, nil
}

type splitSegmenter map[string][]string

func (s splitSegmenter) Segment(_ context.Context, hashtag string) ([]string, error) {
	return s[hashtag], nil
}

// ratings builds a rating list where every listed movie gets score.
func ratings(score float64, mids ...int) []models.Rating {
	out := make([]models.Rating, len(mids))
	for i, mid := range mids {
		out[i] = models.Rating{MovieID: mid, Rating: score}
	}
	return out
}

func ptr[T any](v T) *T { return &v }
