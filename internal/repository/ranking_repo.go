package repository

import (
	"context"
	"time"

	"github.com/Sandy4321/MovieRecommend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type RankingRepository struct {
	col *mongo.Collection
}

func NewRankingRepository(d *mongo.Database) *RankingRepository {
	return &RankingRepository{col: d.Collection("rankings")}
}

func (r *RankingRepository) Get(ctx context.Context, name string) (*models.Ranking, error) {
	return findOne[models.Ranking](ctx, r.col, bson.M{"name": name})
}

// Put replaces the stored list for rk.Name.
func (r *RankingRepository) Put(ctx context.Context, rk *models.Ranking) error {
	if rk.UpdatedAt.IsZero() {
		rk.UpdatedAt = time.Now().UTC()
	}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"name": rk.Name},
		bson.M{"$set": bson.M{
			"movie_ids":  rk.MovieIDs,
			"actors":     rk.Actors,
			"updated_at": rk.UpdatedAt,
		}},
		upsert,
	)
	return err
}
