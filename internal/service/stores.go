package service

import (
	"context"
	"iter"

	"github.com/Sandy4321/MovieRecommend/internal/models"
)

// The recommenders only depend on these read/write contracts; the Mongo
// repositories implement them. Finders return (nil, nil) for a missing key.

type MovieStore interface {
	FindByID(ctx context.Context, movieID int) (*models.Movie, error)
	FindByTitle(ctx context.Context, title string) (*models.Movie, error)
	Scan(ctx context.Context) iter.Seq2[*models.Movie, error]
	ScanTagged(ctx context.Context) iter.Seq2[*models.Movie, error]
	SetSimilarMovies(ctx context.Context, movieID int, ids []int) error
}

type UserStore interface {
	FindByID(ctx context.Context, userID int) (*models.User, error)
	Scan(ctx context.Context) iter.Seq2[*models.User, error]
	SetSimilarUsers(ctx context.Context, userID int, ids []int) error
}

type TagStore interface {
	FindByID(ctx context.Context, tagID int) (*models.Tag, error)
	FindByContent(ctx context.Context, content string) (*models.Tag, error)
}

type GenreStore interface {
	FindByName(ctx context.Context, name string) (*models.Genre, error)
}

type ActorStore interface {
	FindByName(ctx context.Context, name string) (*models.Actor, error)
	Scan(ctx context.Context) iter.Seq2[*models.Actor, error]
}

type ProfileStore interface {
	FindByHandle(ctx context.Context, handle string) (*models.Profile, error)
	Upsert(ctx context.Context, p *models.Profile) error
}

type RankingStore interface {
	Get(ctx context.Context, name string) (*models.Ranking, error)
	Put(ctx context.Context, rk *models.Ranking) error
}

// ProgressFunc is told how many documents a full scan has read so far.
type ProgressFunc func(scanned int)
