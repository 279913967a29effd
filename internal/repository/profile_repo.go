package repository

import (
	"context"

	"github.com/Sandy4321/MovieRecommend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(d *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: d.Collection("user_profiles")}
}

func (r *ProfileRepository) FindByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	return findOne[models.Profile](ctx, r.col, bson.M{"screen_name": handle})
}

// Upsert stores a profile fetched from the extraction service.
func (r *ProfileRepository) Upsert(ctx context.Context, p *models.Profile) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"screen_name": p.Handle},
		bson.M{"$set": bson.M{
			"extracted_users": p.Mentions,
			"extracted_tags":  p.Hashtags,
		}},
		upsert,
	)
	return err
}
