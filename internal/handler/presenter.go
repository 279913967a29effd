package handler

import (
	"context"
	"time"

	"github.com/Sandy4321/MovieRecommend/internal/models"
)

// MovieLookup resolves ids for display.
type MovieLookup interface {
	FindByID(ctx context.Context, movieID int) (*models.Movie, error)
}

// Presenter wraps ranked ids into the response envelope and, on request,
// expands them to titles and IMDb codes.
type Presenter struct {
	movies MovieLookup
	now    func() time.Time
}

func NewPresenter(movies MovieLookup) *Presenter {
	return &Presenter{movies: movies, now: time.Now}
}

func (p *Presenter) Present(ctx context.Context, recommender, subject string, ids []int, expand bool) (*models.Recommendation, error) {
	if ids == nil {
		ids = []int{}
	}
	rec := &models.Recommendation{
		Recommender: recommender,
		Subject:     subject,
		MovieIDs:    ids,
		GeneratedAt: p.now().UTC(),
	}
	if !expand || p.movies == nil {
		return rec, nil
	}

	rec.Items = make([]models.RecItem, 0, len(ids))
	for _, id := range ids {
		item := models.RecItem{MovieID: id}
		m, err := p.movies.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if m != nil {
			item.Title = m.DisplayTitle()
			if m.IMDbID > 0 {
				item.IMDb = m.IMDbCode()
			}
		}
		rec.Items = append(rec.Items, item)
	}
	return rec, nil
}
