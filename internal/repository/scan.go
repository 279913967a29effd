package repository

import (
	"context"
	"errors"
	"iter"

	"github.com/Sandy4321/MovieRecommend/internal/metrics"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// scan streams the documents matching filter one at a time. The cursor is
// closed when the consumer stops ranging or the sequence ends; a decode or
// cursor error is yielded once and ends the sequence.
func scan[T any](ctx context.Context, col *mongo.Collection, filter any, opts ...*options.FindOptions) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		cur, err := col.Find(ctx, filter, opts...)
		if err != nil {
			yield(nil, err)
			return
		}
		defer cur.Close(ctx)

		scanned := metrics.ScannedDocuments.WithLabelValues(col.Name())
		for cur.Next(ctx) {
			scanned.Inc()
			var doc T
			if err := cur.Decode(&doc); err != nil {
				yield(nil, err)
				return
			}
			if !yield(&doc, nil) {
				return
			}
		}
		if err := cur.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// findOne decodes the single document matching filter; (nil, nil) when absent.
func findOne[T any](ctx context.Context, col *mongo.Collection, filter any) (*T, error) {
	var doc T
	err := col.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

var upsert = options.Update().SetUpsert(true)
