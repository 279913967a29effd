package repository

import (
	"context"
	"iter"

	"github.com/Sandy4321/MovieRecommend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MovieRepository struct {
	col *mongo.Collection
}

func NewMovieRepository(d *mongo.Database) *MovieRepository {
	return &MovieRepository{col: d.Collection("movie")}
}

func (r *MovieRepository) FindByID(ctx context.Context, movieID int) (*models.Movie, error) {
	return findOne[models.Movie](ctx, r.col, bson.M{"mid": movieID})
}

func (r *MovieRepository) FindByTitle(ctx context.Context, title string) (*models.Movie, error) {
	return findOne[models.Movie](ctx, r.col, bson.M{"title": title})
}

// Scan streams every movie.
func (r *MovieRepository) Scan(ctx context.Context) iter.Seq2[*models.Movie, error] {
	return scan[models.Movie](ctx, r.col, bson.M{})
}

// ScanTagged streams the movies that carry a tag vector.
func (r *MovieRepository) ScanTagged(ctx context.Context) iter.Seq2[*models.Movie, error] {
	filter := bson.M{"tags.0": bson.M{"$exists": true}}
	return scan[models.Movie](ctx, r.col, filter)
}

// SetSimilarMovies upserts the similar_movies memo.
func (r *MovieRepository) SetSimilarMovies(ctx context.Context, movieID int, ids []int) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"mid": movieID},
		bson.M{"$set": bson.M{"similar_movies": ids}},
		upsert,
	)
	return err
}
