package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Sandy4321/MovieRecommend/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrBadShard rejects a shard outside [0, Shards).
var ErrBadShard = errors.New("shard out of range")

// BatchOptions selects the slice of the catalogue one batch run handles.
type BatchOptions struct {
	Shard       int
	Shards      int  // <= 1 means a single shard
	Parallelism int  // <= 0 means 1
	Refresh     bool // recompute movies that already have a memo
}

// BatchReport summarizes one run.
type BatchReport struct {
	RunID    string        `json:"runId"`
	Scanned  int           `json:"scanned"`
	Selected int           `json:"selected"`
	Skipped  int64         `json:"skipped"`
	Stored   int64         `json:"stored"`
	Failed   int64         `json:"failed"`
	Elapsed  time.Duration `json:"elapsed"`
}

// BatchService precomputes the similar_movies memo offline so that
// RecommendForMovie is answered from the store.
type BatchService struct {
	movies  MovieStore
	content *ContentService
	logger  zerolog.Logger
}

func NewBatchService(movies MovieStore, content *ContentService, logger zerolog.Logger) *BatchService {
	return &BatchService{
		movies:  movies,
		content: content,
		logger:  logger.With().Str("component", "batch").Logger(),
	}
}

// PrecomputeSimilarMovies computes and stores the indexed TF-IDF neighbours of
// every movie in the shard. A movie that fails is logged and counted; only
// cancellation or a broken scan aborts the run.
func (s *BatchService) PrecomputeSimilarMovies(ctx context.Context, opts BatchOptions) (*BatchReport, error) {
	if opts.Shards <= 1 {
		opts.Shards = 1
	}
	if opts.Shard < 0 || opts.Shard >= opts.Shards {
		return nil, fmt.Errorf("%w: %d of %d", ErrBadShard, opts.Shard, opts.Shards)
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = 1
	}

	report := &BatchReport{RunID: uuid.NewString()}
	log := s.logger.With().Str("run", report.RunID).Int("shard", opts.Shard).Int("shards", opts.Shards).Logger()
	log.Info().Int("parallelism", opts.Parallelism).Bool("refresh", opts.Refresh).Msg("similar movies batch started")
	start := time.Now()

	var skipped, stored, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallelism)

	for m, err := range s.movies.Scan(gctx) {
		if err != nil {
			_ = g.Wait()
			return nil, fmt.Errorf("scan movies: %w", err)
		}
		if gctx.Err() != nil {
			break
		}
		report.Scanned++
		if m.MovieID%opts.Shards != opts.Shard {
			continue
		}
		report.Selected++
		if !opts.Refresh && len(m.SimilarMovies) > 0 {
			skipped.Add(1)
			continue
		}

		movieID, tagIDs, genres := m.MovieID, m.TagIDs(), m.Genres
		g.Go(func() error {
			ids, err := s.content.computeForMovie(gctx, movieID, tagIDs, genres)
			if err == nil && len(ids) > 0 {
				err = s.movies.SetSimilarMovies(gctx, movieID, ids)
			}
			switch {
			case gctx.Err() != nil:
				return gctx.Err()
			case err != nil:
				failed.Add(1)
				metrics.MemoWrites.WithLabelValues("movie", "error").Inc()
				log.Warn().Err(err).Int("mid", movieID).Msg("similar movies failed")
			case len(ids) == 0:
				skipped.Add(1)
			default:
				stored.Add(1)
				metrics.MemoWrites.WithLabelValues("movie", "ok").Inc()
			}
			return nil
		})
	}

	err := g.Wait()
	report.Skipped, report.Stored, report.Failed = skipped.Load(), stored.Load(), failed.Load()
	report.Elapsed = time.Since(start)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		log.Warn().Err(err).Int64("stored", report.Stored).Msg("similar movies batch aborted")
		return report, err
	}

	log.Info().
		Int("scanned", report.Scanned).
		Int("selected", report.Selected).
		Int64("stored", report.Stored).
		Int64("skipped", report.Skipped).
		Int64("failed", report.Failed).
		Dur("elapsed", report.Elapsed).
		Msg("similar movies batch finished")
	return report, nil
}
