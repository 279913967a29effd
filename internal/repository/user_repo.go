package repository

import (
	"context"
	"iter"

	"github.com/Sandy4321/MovieRecommend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(d *mongo.Database) *UserRepository {
	return &UserRepository{col: d.Collection("user_rate")}
}

func (r *UserRepository) FindByID(ctx context.Context, userID int) (*models.User, error) {
	return findOne[models.User](ctx, r.col, bson.M{"uid": userID})
}

// Scan streams every user's ratings. The memo field is not needed by the
// similarity scan and is left out of the projection.
func (r *UserRepository) Scan(ctx context.Context) iter.Seq2[*models.User, error] {
	opts := options.Find().SetProjection(bson.M{"uid": 1, "ratings": 1})
	return scan[models.User](ctx, r.col, bson.M{}, opts)
}

// SetSimilarUsers upserts the similar_users memo.
func (r *UserRepository) SetSimilarUsers(ctx context.Context, userID int, ids []int) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"uid": userID},
		bson.M{"$set": bson.M{"similar_users": ids}},
		upsert,
	)
	return err
}
