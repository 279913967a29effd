package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Sandy4321/MovieRecommend/internal/models"

	"github.com/rs/zerolog"
)

func batchFixture() (*BatchService, *fakeMovies) {
	var ms []*models.Movie
	refs := make([]models.MovieRef, 0, 6)
	for mid := 1; mid <= 6; mid++ {
		ms = append(ms, &models.Movie{MovieID: mid, Genres: []string{"Drama"}})
		refs = append(refs, models.MovieRef{MovieID: mid})
	}
	movies := newFakeMovies(ms...)
	genres := fakeGenres{"Drama": {Name: "Drama", Popular: 6, RelevantMovie: refs}}
	content := NewContentService(movies, newFakeTags(), genres, testParams(), 0, zerolog.Nop())
	return NewBatchService(movies, content, zerolog.Nop()), movies
}

func TestPrecomputeSimilarMovies(t *testing.T) {
	svc, movies := batchFixture()

	report, err := svc.PrecomputeSimilarMovies(context.Background(), BatchOptions{Shard: 0, Shards: 2, Parallelism: 3})
	if err != nil {
		t.Fatalf("PrecomputeSimilarMovies() error: %v", err)
	}
	if report.RunID == "" {
		t.Error("RunID is empty")
	}
	if report.Scanned != 6 || report.Selected != 3 || report.Stored != 3 || report.Failed != 0 {
		t.Errorf("report = %+v", report)
	}
	for _, mid := range []int{2, 4, 6} {
		ids := movies.writes[mid]
		if len(ids) != 5 {
			t.Errorf("movie %d: stored %v, want the 5 other movies", mid, ids)
		}
		for _, id := range ids {
			if id == mid {
				t.Errorf("movie %d lists itself", mid)
			}
		}
	}
	for _, mid := range []int{1, 3, 5} {
		if _, ok := movies.writes[mid]; ok {
			t.Errorf("movie %d belongs to another shard", mid)
		}
	}
}

func TestPrecomputeSimilarMovies_SkipsMemoUnlessRefresh(t *testing.T) {
	svc, movies := batchFixture()
	movies.byID[2].SimilarMovies = []int{1}

	report, err := svc.PrecomputeSimilarMovies(context.Background(), BatchOptions{Shard: 0, Shards: 2})
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if report.Skipped != 1 || report.Stored != 2 {
		t.Errorf("report = %+v, want 1 skipped 2 stored", report)
	}

	report, err = svc.PrecomputeSimilarMovies(context.Background(), BatchOptions{Shard: 0, Shards: 2, Refresh: true})
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if report.Skipped != 0 || report.Stored != 3 {
		t.Errorf("refresh report = %+v, want 3 stored", report)
	}
}

func TestPrecomputeSimilarMovies_FailuresCounted(t *testing.T) {
	svc, movies := batchFixture()
	movies.failSet[3] = true

	report, err := svc.PrecomputeSimilarMovies(context.Background(), BatchOptions{Parallelism: 2})
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if report.Selected != 6 || report.Stored != 5 || report.Failed != 1 {
		t.Errorf("report = %+v, want 5 stored 1 failed", report)
	}
}

func TestPrecomputeSimilarMovies_BadShard(t *testing.T) {
	svc, _ := batchFixture()
	for _, opts := range []BatchOptions{{Shard: 2, Shards: 2}, {Shard: -1, Shards: 3}, {Shard: 1}} {
		if _, err := svc.PrecomputeSimilarMovies(context.Background(), opts); !errors.Is(err, ErrBadShard) {
			t.Errorf("%+v: error = %v, want ErrBadShard", opts, err)
		}
	}
}

func TestPrecomputeSimilarMovies_ScanError(t *testing.T) {
	svc, movies := batchFixture()
	movies.scanErr = errStore
	if _, err := svc.PrecomputeSimilarMovies(context.Background(), BatchOptions{}); !errors.Is(err, errStore) {
		t.Errorf("error = %v, want errStore", err)
	}
}
