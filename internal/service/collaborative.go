package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Sandy4321/MovieRecommend/internal/metrics"
	"github.com/Sandy4321/MovieRecommend/internal/models"
	"github.com/Sandy4321/MovieRecommend/internal/ranking"
	"github.com/Sandy4321/MovieRecommend/internal/similarity"

	"github.com/rs/zerolog"
)

const (
	// MinLiked is the smallest liked set considered enough signal, for the
	// target as well as for every candidate neighbour.
	MinLiked = 5
	// SimilarUsersK is the neighbourhood size.
	SimilarUsersK = 10
	// DefaultK is the length of every recommendation list.
	DefaultK = 20
)

// CollaborativeService recommends what similar users liked.
type CollaborativeService struct {
	users         UserStore
	movies        MovieStore
	progressEvery int
	logger        zerolog.Logger
}

func NewCollaborativeService(users UserStore, movies MovieStore, progressEvery int, logger zerolog.Logger) *CollaborativeService {
	return &CollaborativeService{
		users:         users,
		movies:        movies,
		progressEvery: progressEvery,
		logger:        logger.With().Str("component", "collaborative").Logger(),
	}
}

// UserOptions tune a per-user request.
type UserOptions struct {
	// Refresh ignores the similar_users memo and recomputes it.
	Refresh bool
	// Progress, when set, is called during the user scan.
	Progress ProgressFunc
}

// FindSimilarUsers scans every user and returns the SimilarUsersK whose liked
// sets are closest (cosine) to liked, most similar first. excludeID <= 0
// excludes nobody. Fewer than MinLiked liked movies yield an empty list.
func (s *CollaborativeService) FindSimilarUsers(ctx context.Context, liked similarity.Set[int], excludeID int, progress ProgressFunc) ([]int, error) {
	if liked.Len() < MinLiked {
		s.logger.Debug().Int("liked", liked.Len()).Msg("not enough rating history")
		return []int{}, nil
	}

	start := time.Now()
	top := ranking.NewTopK[int](SimilarUsersK)
	scanned := 0

	for u, err := range s.users.Scan(ctx) {
		if err != nil {
			return nil, fmt.Errorf("scan users: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		scanned++
		if s.progressEvery > 0 && scanned%s.progressEvery == 0 {
			s.logger.Debug().
				Int("scanned", scanned).
				Dur("elapsed", time.Since(start)).
				Msg("user scan progress")
			if progress != nil {
				progress(scanned)
			}
		}

		if excludeID > 0 && u.UserID == excludeID {
			continue
		}
		candidate := similarity.NewSet(u.Liked()...)
		if candidate.Len() < MinLiked {
			continue
		}
		top.Push(u.UserID, similarity.Cosine(liked, candidate))
	}
	if progress != nil {
		progress(scanned)
	}

	ids := top.DrainIDs()
	s.logger.Debug().
		Int("scanned", scanned).
		Int("found", len(ids)).
		Dur("elapsed", time.Since(start)).
		Msg("similar users computed")
	return ids, nil
}

// SimilarUsersFor resolves the neighbourhood of a stored user: the memo when
// present, otherwise a fresh scan whose non-empty result is written back.
// An unknown user has no neighbours.
func (s *CollaborativeService) SimilarUsersFor(ctx context.Context, userID int, opts UserOptions) ([]int, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", userID, err)
	}
	if u == nil {
		return []int{}, nil
	}
	return s.similarUsers(ctx, u, opts)
}

func (s *CollaborativeService) similarUsers(ctx context.Context, u *models.User, opts UserOptions) ([]int, error) {
	if !opts.Refresh && len(u.SimilarUsers) > 0 {
		metrics.Memo("user", true)
		return u.SimilarUsers, nil
	}
	metrics.Memo("user", false)

	ids, err := s.FindSimilarUsers(ctx, similarity.NewSet(u.Liked()...), u.UserID, opts.Progress)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		if err := s.users.SetSimilarUsers(ctx, u.UserID, ids); err != nil {
			// the list is still valid for this request
			metrics.MemoWrites.WithLabelValues("user", "error").Inc()
			s.logger.Warn().Err(err).Int("uid", u.UserID).Msg("storing similar users failed")
		} else {
			metrics.MemoWrites.WithLabelValues("user", "ok").Inc()
		}
	}
	return ids, nil
}

// RecommendForUser returns up to DefaultK movies liked by the user's
// neighbours and absent from the user's own history, ranked by how many
// neighbours liked them.
func (s *CollaborativeService) RecommendForUser(ctx context.Context, userID int, opts UserOptions) (ids []int, err error) {
	defer func(start time.Time) { metrics.ObserveRecommend("user", start, len(ids), err) }(time.Now())

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", userID, err)
	}
	if u == nil {
		s.logger.Debug().Int("uid", userID).Msg("user not found")
		return []int{}, nil
	}

	neighbours, err := s.similarUsers(ctx, u, opts)
	if err != nil {
		return nil, err
	}
	return s.aggregate(ctx, neighbours, similarity.NewSet(u.History()...))
}

// RecommendFromHistory recommends for an anonymous viewer described by the
// titles they watched. Unknown titles are ignored; every resolved title counts
// as both liked and already seen.
func (s *CollaborativeService) RecommendFromHistory(ctx context.Context, titles []string, progress ProgressFunc) (ids []int, err error) {
	defer func(start time.Time) { metrics.ObserveRecommend("history", start, len(ids), err) }(time.Now())

	history := similarity.NewSet[int]()
	for _, title := range titles {
		m, err := s.movies.FindByTitle(ctx, title)
		if err != nil {
			return nil, fmt.Errorf("find movie %q: %w", title, err)
		}
		if m == nil {
			s.logger.Debug().Str("title", title).Msg("unknown title skipped")
			continue
		}
		history.Add(m.MovieID)
	}

	neighbours, err := s.FindSimilarUsers(ctx, history, 0, progress)
	if err != nil {
		return nil, err
	}
	if len(neighbours) == 0 {
		return []int{}, nil
	}
	return s.aggregate(ctx, neighbours, history)
}

// aggregate counts, for every movie liked by a neighbour and not in seen, how
// many neighbours liked it. Individual similarity scores are not used.
func (s *CollaborativeService) aggregate(ctx context.Context, neighbours []int, seen similarity.Set[int]) ([]int, error) {
	counts := make(map[int]float64)
	for _, uid := range neighbours {
		n, err := s.users.FindByID(ctx, uid)
		if err != nil {
			return nil, fmt.Errorf("find user %d: %w", uid, err)
		}
		if n == nil {
			continue
		}
		for _, mid := range n.Liked() {
			if !seen.Has(mid) {
				counts[mid]++
			}
		}
	}
	return ranking.SelectTop(counts, DefaultK), nil
}
