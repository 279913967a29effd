package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Sandy4321/MovieRecommend/internal/models"
	"github.com/Sandy4321/MovieRecommend/internal/ranking"

	"github.com/rs/zerolog"
)

const (
	MetricTopRated    = "top_rated"    // by IMDb rating
	MetricMostPopular = "most_popular" // by IMDb votes

	// AllGenres addresses the cross-genre movie lists.
	AllGenres = "all"

	OverallRankingK = 100
	GenreRankingK   = 30
	ActorRankingK   = 100
)

// ErrUnknownMetric rejects a movie list metric other than the two above.
var ErrUnknownMetric = errors.New("unknown ranking metric")

// MovieRankingName is the stored name of a movie list, e.g.
// "movies:top_rated:Drama".
func MovieRankingName(metric, genre string) string {
	return "movies:" + metric + ":" + genre
}

// ActorRankingName is the stored name of the most-popular actor list.
const ActorRankingName = "actors:most_popular"

// RankingService precomputes and serves top-rated and most-popular lists.
type RankingService struct {
	movies   MovieStore
	actors   ActorStore
	rankings RankingStore
	logger   zerolog.Logger
}

func NewRankingService(movies MovieStore, actors ActorStore, rankings RankingStore, logger zerolog.Logger) *RankingService {
	return &RankingService{
		movies:   movies,
		actors:   actors,
		rankings: rankings,
		logger:   logger.With().Str("component", "rankings").Logger(),
	}
}

// movieBoards keeps one pair of bounded heaps per scope.
type movieBoards struct {
	rated, voted *ranking.TopK[int]
}

func newMovieBoards(k int) *movieBoards {
	return &movieBoards{rated: ranking.NewTopK[int](k), voted: ranking.NewTopK[int](k)}
}

func (b *movieBoards) push(m *models.Movie) {
	if m.IMDbRating != nil {
		b.rated.Push(m.MovieID, *m.IMDbRating)
	}
	if m.IMDbVotes != nil {
		b.voted.Push(m.MovieID, float64(*m.IMDbVotes))
	}
}

// Rebuild recomputes every list from one movie scan and one actor scan and
// stores them. It returns the number of lists written.
func (s *RankingService) Rebuild(ctx context.Context) (int, error) {
	start := time.Now()
	now := start.UTC()

	overall := newMovieBoards(OverallRankingK)
	perGenre := make(map[string]*movieBoards)

	scanned := 0
	for m, err := range s.movies.Scan(ctx) {
		if err != nil {
			return 0, fmt.Errorf("scan movies: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		scanned++

		overall.push(m)
		for _, g := range m.Genres {
			b, ok := perGenre[g]
			if !ok {
				b = newMovieBoards(GenreRankingK)
				perGenre[g] = b
			}
			b.push(m)
		}
	}

	actors := ranking.NewTopK[string](ActorRankingK)
	for a, err := range s.actors.Scan(ctx) {
		if err != nil {
			return 0, fmt.Errorf("scan actors: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		actors.Push(a.Name, float64(a.Popular))
	}

	lists := []*models.Ranking{
		{Name: MovieRankingName(MetricTopRated, AllGenres), MovieIDs: overall.rated.DrainIDs(), UpdatedAt: now},
		{Name: MovieRankingName(MetricMostPopular, AllGenres), MovieIDs: overall.voted.DrainIDs(), UpdatedAt: now},
		{Name: ActorRankingName, Actors: actors.DrainIDs(), UpdatedAt: now},
	}
	genres := make([]string, 0, len(perGenre))
	for g := range perGenre {
		genres = append(genres, g)
	}
	slices.Sort(genres)
	for _, g := range genres {
		b := perGenre[g]
		lists = append(lists,
			&models.Ranking{Name: MovieRankingName(MetricTopRated, g), MovieIDs: b.rated.DrainIDs(), UpdatedAt: now},
			&models.Ranking{Name: MovieRankingName(MetricMostPopular, g), MovieIDs: b.voted.DrainIDs(), UpdatedAt: now},
		)
	}

	for _, rk := range lists {
		if err := s.rankings.Put(ctx, rk); err != nil {
			return 0, fmt.Errorf("store ranking %s: %w", rk.Name, err)
		}
	}

	s.logger.Info().
		Int("movies", scanned).
		Int("genres", len(genres)).
		Int("lists", len(lists)).
		Dur("elapsed", time.Since(start)).
		Msg("rankings rebuilt")
	return len(lists), nil
}

// Movies returns a stored movie list. An empty genre means AllGenres; an
// unknown list is empty.
func (s *RankingService) Movies(ctx context.Context, metric, genre string) ([]int, error) {
	if metric != MetricTopRated && metric != MetricMostPopular {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	if genre == "" {
		genre = AllGenres
	}
	rk, err := s.rankings.Get(ctx, MovieRankingName(metric, genre))
	if err != nil {
		return nil, fmt.Errorf("get ranking: %w", err)
	}
	if rk == nil || rk.MovieIDs == nil {
		return []int{}, nil
	}
	return rk.MovieIDs, nil
}

// Actors returns the most-popular actors, most popular first.
func (s *RankingService) Actors(ctx context.Context) ([]string, error) {
	rk, err := s.rankings.Get(ctx, ActorRankingName)
	if err != nil {
		return nil, fmt.Errorf("get ranking: %w", err)
	}
	if rk == nil || rk.Actors == nil {
		return []string{}, nil
	}
	return rk.Actors, nil
}
