// Package social resolves social-media handles into the profile footprint the
// fusion recommender consumes, and splits hashtags into candidate tag words.
package social

import (
	"context"
	"errors"

	"github.com/Sandy4321/MovieRecommend/internal/models"
)

var (
	// ErrUnavailable is returned while the extraction service is failing or
	// its circuit is open.
	ErrUnavailable = errors.New("social: extraction service unavailable")
	// ErrProfileNotFound means the handle does not exist upstream.
	ErrProfileNotFound = errors.New("social: profile not found")
)

// ProfileSource fetches a live profile for a handle.
type ProfileSource interface {
	FetchProfile(ctx context.Context, handle string) (*models.Profile, error)
}

// Segmenter splits a hashtag such as "StarWarsFan" into words.
type Segmenter interface {
	Segment(ctx context.Context, hashtag string) ([]string, error)
}
