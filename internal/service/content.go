package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Sandy4321/MovieRecommend/internal/metrics"
	"github.com/Sandy4321/MovieRecommend/internal/models"
	"github.com/Sandy4321/MovieRecommend/internal/ranking"
	"github.com/Sandy4321/MovieRecommend/internal/scoring"
	"github.com/Sandy4321/MovieRecommend/internal/similarity"

	"github.com/rs/zerolog"
)

// SimilarMoviesK bounds the exhaustive tag-overlap neighbourhood.
const SimilarMoviesK = 10

// ContentService finds movies related to a movie, a set of tags or a set of
// genres from content metadata only.
type ContentService struct {
	movies        MovieStore
	tags          TagStore
	genres        GenreStore
	params        scoring.Params
	progressEvery int
	logger        zerolog.Logger
}

func NewContentService(
	movies MovieStore,
	tags TagStore,
	genres GenreStore,
	params scoring.Params,
	progressEvery int,
	logger zerolog.Logger,
) *ContentService {
	return &ContentService{
		movies:        movies,
		tags:          tags,
		genres:        genres,
		params:        params,
		progressEvery: progressEvery,
		logger:        logger.With().Str("component", "content").Logger(),
	}
}

// RecommendForMovie returns the similar_movies memo when present; otherwise
// TF-IDF aggregation over the movie's tags, or over its genres when it has no
// tags. The computed list is not written back (see BatchService).
func (s *ContentService) RecommendForMovie(ctx context.Context, movieID int) (ids []int, err error) {
	defer func(start time.Time) { metrics.ObserveRecommend("movie", start, len(ids), err) }(time.Now())

	m, err := s.movies.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find movie %d: %w", movieID, err)
	}
	if m == nil {
		return []int{}, nil
	}
	if len(m.SimilarMovies) > 0 {
		metrics.Memo("movie", true)
		return m.SimilarMovies, nil
	}
	metrics.Memo("movie", false)

	return s.computeForMovie(ctx, m.MovieID, m.TagIDs(), m.Genres)
}

func (s *ContentService) computeForMovie(ctx context.Context, movieID int, tagIDs []int, genres []string) ([]int, error) {
	if len(tagIDs) > 0 {
		return s.ByTags(ctx, tagIDs, movieID)
	}
	s.logger.Debug().Int("mid", movieID).Msg("no tags, falling back to genres")
	return s.ByGenres(ctx, genres, movieID)
}

// SimilarByTagOverlap is the exhaustive strategy: it compares the movie's tag
// set against every tagged movie and keeps the SimilarMoviesK closest. The
// result is memoized on the movie. A stored list is returned as is; otherwise
// untagged or unknown movies yield nothing.
func (s *ContentService) SimilarByTagOverlap(ctx context.Context, movieID int, progress ProgressFunc) (ids []int, err error) {
	defer func(start time.Time) { metrics.ObserveRecommend("movie_overlap", start, len(ids), err) }(time.Now())

	target, err := s.movies.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find movie %d: %w", movieID, err)
	}
	if target == nil {
		return []int{}, nil
	}
	// a stored list wins even for an untagged movie (batch genre fallback)
	if len(target.SimilarMovies) > 0 {
		metrics.Memo("movie", true)
		return target.SimilarMovies, nil
	}
	if !target.HasTags() {
		return []int{}, nil
	}
	metrics.Memo("movie", false)

	start := time.Now()
	want := similarity.NewSet(target.TagIDs()...)
	top := ranking.NewTopK[int](SimilarMoviesK)
	scanned := 0

	for m, err := range s.movies.ScanTagged(ctx) {
		if err != nil {
			return nil, fmt.Errorf("scan movies: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		scanned++
		if s.progressEvery > 0 && scanned%s.progressEvery == 0 {
			s.logger.Debug().Int("scanned", scanned).Dur("elapsed", time.Since(start)).Msg("movie scan progress")
			if progress != nil {
				progress(scanned)
			}
		}

		if m.MovieID == target.MovieID || !m.HasTags() {
			continue
		}
		top.Push(m.MovieID, similarity.Cosine(want, similarity.NewSet(m.TagIDs()...)))
	}
	if progress != nil {
		progress(scanned)
	}

	ids = top.DrainIDs()
	if len(ids) > 0 {
		if err := s.movies.SetSimilarMovies(ctx, target.MovieID, ids); err != nil {
			metrics.MemoWrites.WithLabelValues("movie", "error").Inc()
			s.logger.Warn().Err(err).Int("mid", target.MovieID).Msg("storing similar movies failed")
		} else {
			metrics.MemoWrites.WithLabelValues("movie", "ok").Inc()
		}
	}
	return ids, nil
}

// ByTags sums, for every movie related to one of tagIDs, its relevance to the
// tag weighted by the tag's inverse document frequency. excludeID is left out
// of the result (<= 0 excludes nothing); unknown tags are skipped.
func (s *ContentService) ByTags(ctx context.Context, tagIDs []int, excludeID int) ([]int, error) {
	scores := make(map[int]float64)
	for _, tid := range tagIDs {
		tag, err := s.tags.FindByID(ctx, tid)
		if err != nil {
			return nil, fmt.Errorf("find tag %d: %w", tid, err)
		}
		if tag == nil {
			continue
		}
		if err := s.addTag(scores, tag.Content, tag.Popular, tag.RelevantMovie, excludeID); err != nil {
			return nil, err
		}
	}
	return ranking.SelectTop(scores, DefaultK), nil
}

// ByTagContents is ByTags addressed by tag text.
func (s *ContentService) ByTagContents(ctx context.Context, contents []string) (ids []int, err error) {
	defer func(start time.Time) { metrics.ObserveRecommend("tags", start, len(ids), err) }(time.Now())

	scores := make(map[int]float64)
	for _, content := range contents {
		tag, err := s.tags.FindByContent(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("find tag %q: %w", content, err)
		}
		if tag == nil {
			continue
		}
		if err := s.addTag(scores, tag.Content, tag.Popular, tag.RelevantMovie, 0); err != nil {
			return nil, err
		}
	}
	return ranking.SelectTop(scores, DefaultK), nil
}

func (s *ContentService) addTag(scores map[int]float64, content string, df int, related []models.MovieRelevance, excludeID int) error {
	for _, rel := range related {
		if excludeID > 0 && rel.MovieID == excludeID {
			continue
		}
		w, err := s.params.Tag(rel.Relevance, df)
		if err != nil {
			return fmt.Errorf("tag %q: %w", content, err)
		}
		scores[rel.MovieID] += w
	}
	return nil
}

// ByGenres sums the genre inverse document frequency of every genre a movie
// shares with genres. excludeID is left out; unknown genres are skipped.
func (s *ContentService) ByGenres(ctx context.Context, genres []string, excludeID int) ([]int, error) {
	scores := make(map[int]float64)
	for _, name := range genres {
		g, err := s.genres.FindByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("find genre %q: %w", name, err)
		}
		if g == nil {
			continue
		}
		w, err := s.params.Genre(g.Popular)
		if err != nil {
			return nil, fmt.Errorf("genre %q: %w", name, err)
		}
		for _, ref := range g.RelevantMovie {
			if excludeID > 0 && ref.MovieID == excludeID {
				continue
			}
			scores[ref.MovieID] += w
		}
	}
	return ranking.SelectTop(scores, DefaultK), nil
}
