package repository

import (
	"context"
	"iter"

	"github.com/Sandy4321/MovieRecommend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TagRepository struct {
	col *mongo.Collection
}

func NewTagRepository(d *mongo.Database) *TagRepository {
	return &TagRepository{col: d.Collection("tag")}
}

func (r *TagRepository) FindByID(ctx context.Context, tagID int) (*models.Tag, error) {
	return findOne[models.Tag](ctx, r.col, bson.M{"tid": tagID})
}

func (r *TagRepository) FindByContent(ctx context.Context, content string) (*models.Tag, error) {
	return findOne[models.Tag](ctx, r.col, bson.M{"content": content})
}

// Scan streams every tag id and content, without the relevance lists; the
// dictionary segmenter builds its vocabulary from it.
func (r *TagRepository) Scan(ctx context.Context) iter.Seq2[*models.Tag, error] {
	opts := options.Find().SetProjection(bson.M{"tid": 1, "content": 1, "popular": 1})
	return scan[models.Tag](ctx, r.col, bson.M{}, opts)
}

type GenreRepository struct {
	col *mongo.Collection
}

func NewGenreRepository(d *mongo.Database) *GenreRepository {
	return &GenreRepository{col: d.Collection("genres_list")}
}

func (r *GenreRepository) FindByName(ctx context.Context, name string) (*models.Genre, error) {
	return findOne[models.Genre](ctx, r.col, bson.M{"genre": name})
}

type ActorRepository struct {
	col *mongo.Collection
}

func NewActorRepository(d *mongo.Database) *ActorRepository {
	return &ActorRepository{col: d.Collection("actors_list")}
}

func (r *ActorRepository) FindByName(ctx context.Context, name string) (*models.Actor, error) {
	return findOne[models.Actor](ctx, r.col, bson.M{"actor": name})
}

// Scan streams every actor that has a popularity.
func (r *ActorRepository) Scan(ctx context.Context) iter.Seq2[*models.Actor, error] {
	return scan[models.Actor](ctx, r.col, bson.M{"popular": bson.M{"$exists": true}})
}
