package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/Sandy4321/MovieRecommend/internal/cache"
	"github.com/Sandy4321/MovieRecommend/internal/metrics"
	"github.com/Sandy4321/MovieRecommend/internal/models"
	"github.com/Sandy4321/MovieRecommend/internal/ranking"
	"github.com/Sandy4321/MovieRecommend/internal/scoring"
	"github.com/Sandy4321/MovieRecommend/internal/social"

	"github.com/rs/zerolog"
)

// FusionService recommends from a social profile by summing the TF-IDF
// evidence of the actors it mentions and the tags its hashtags contain.
type FusionService struct {
	profiles  ProfileStore
	tags      TagStore
	actors    ActorStore
	source    social.ProfileSource
	segmenter social.Segmenter
	params    scoring.Params
	logger    zerolog.Logger
}

func NewFusionService(
	profiles ProfileStore,
	tags TagStore,
	actors ActorStore,
	source social.ProfileSource,
	segmenter social.Segmenter,
	params scoring.Params,
	logger zerolog.Logger,
) *FusionService {
	return &FusionService{
		profiles:  profiles,
		tags:      tags,
		actors:    actors,
		source:    source,
		segmenter: segmenter,
		params:    params,
		logger:    logger.With().Str("component", "fusion").Logger(),
	}
}

func profileCacheKey(handle string) string {
	return "rec:profile:" + handle
}

// Fuse scores every movie related to a mentioned tag or actor. Both maps hold
// mention counts keyed by tag content and actor name; unknown keys are
// skipped. Contributions are additive across tags and actors.
func (s *FusionService) Fuse(ctx context.Context, actors map[string]int, tags map[string]int) (ids []int, err error) {
	defer func(start time.Time) { metrics.ObserveRecommend("fusion", start, len(ids), err) }(time.Now())

	scores, err := s.fusedScores(ctx, actors, tags)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Int("candidates", len(scores)).Msg("fused profile evidence")
	return ranking.SelectTop(scores, DefaultK), nil
}

// fusedScores visits keys in sorted order so that float sums, and therefore
// ties, are reproducible.
func (s *FusionService) fusedScores(ctx context.Context, actors map[string]int, tags map[string]int) (map[int]float64, error) {
	scores := make(map[int]float64)
	if err := s.addTags(ctx, scores, tags); err != nil {
		return nil, err
	}
	if err := s.addActors(ctx, scores, actors); err != nil {
		return nil, err
	}
	return scores, nil
}

func (s *FusionService) addTags(ctx context.Context, scores map[int]float64, tags map[string]int) error {
	for _, content := range slices.Sorted(maps.Keys(tags)) {
		mentions := tags[content]
		tag, err := s.tags.FindByContent(ctx, content)
		if err != nil {
			return fmt.Errorf("find tag %q: %w", content, err)
		}
		if tag == nil {
			continue
		}
		for _, rel := range tag.RelevantMovie {
			w, err := s.params.MentionedTag(rel.Relevance, mentions, tag.Popular)
			if err != nil {
				return fmt.Errorf("tag %q: %w", content, err)
			}
			scores[rel.MovieID] += w
		}
	}
	return nil
}

func (s *FusionService) addActors(ctx context.Context, scores map[int]float64, actors map[string]int) error {
	for _, name := range slices.Sorted(maps.Keys(actors)) {
		mentions := actors[name]
		actor, err := s.actors.FindByName(ctx, name)
		if err != nil {
			return fmt.Errorf("find actor %q: %w", name, err)
		}
		if actor == nil {
			continue
		}
		w, err := s.params.MentionedActor(mentions, actor.Popular)
		if err != nil {
			return fmt.Errorf("actor %q: %w", name, err)
		}
		for _, ref := range actor.RelevantMovie {
			scores[ref.MovieID] += w
		}
	}
	return nil
}

// RecommendForProfile resolves handle to a profile and fuses its evidence.
// Results are cached per handle; refresh skips the cached read and replaces
// or drops the entry.
func (s *FusionService) RecommendForProfile(ctx context.Context, handle string, refresh bool) ([]int, error) {
	// 1) Cache Redis
	key := profileCacheKey(handle)
	if !refresh {
		var cached []int
		if ok, err := cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		} else if err != nil {
			s.logger.Warn().Err(err).Str("handle", handle).Msg("cache read failed")
		}
	}

	// 2) Profile: stored, else live
	p, err := s.resolveProfile(ctx, handle)
	if err != nil {
		return nil, err
	}
	if p == nil {
		// a refresh must not leave a list cached for a profile that is gone
		if refresh {
			if err := cache.Delete(ctx, key); err != nil {
				s.logger.Warn().Err(err).Str("handle", handle).Msg("cache delete failed")
			}
		}
		return []int{}, nil
	}

	// 3) Evidence
	actors, err := s.MentionedActors(ctx, p)
	if err != nil {
		return nil, err
	}
	tags, err := s.MentionedTags(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().
		Str("handle", handle).
		Int("actors", len(actors)).
		Int("tags", len(tags)).
		Msg("profile evidence extracted")

	// 4) Fuse and cache
	ids, err := s.Fuse(ctx, actors, tags)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, key, ids, 0); err != nil {
		s.logger.Warn().Err(err).Str("handle", handle).Msg("cache write failed")
	}
	return ids, nil
}

// resolveProfile returns the stored profile, or fetches and stores it. A
// handle unknown upstream yields (nil, nil).
func (s *FusionService) resolveProfile(ctx context.Context, handle string) (*models.Profile, error) {
	p, err := s.profiles.FindByHandle(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("find profile %s: %w", handle, err)
	}
	if p != nil {
		return p, nil
	}
	if s.source == nil {
		return nil, nil
	}

	p, err = s.source.FetchProfile(ctx, handle)
	switch {
	case errors.Is(err, social.ErrProfileNotFound):
		metrics.ProfileFetches.WithLabelValues("not_found").Inc()
		return nil, nil
	case err != nil:
		metrics.ProfileFetches.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetch profile %s: %w", handle, err)
	}
	metrics.ProfileFetches.WithLabelValues("ok").Inc()

	p.Handle = handle
	if err := s.profiles.Upsert(ctx, p); err != nil {
		s.logger.Warn().Err(err).Str("handle", handle).Msg("storing fetched profile failed")
	}
	return p, nil
}

// MentionedActors counts the profile's mentions that name a known actor.
func (s *FusionService) MentionedActors(ctx context.Context, p *models.Profile) (map[string]int, error) {
	out := make(map[string]int)
	known := make(map[string]bool)
	for _, m := range p.Mentions {
		ok, seen := known[m.Name]
		if !seen {
			actor, err := s.actors.FindByName(ctx, m.Name)
			if err != nil {
				return nil, fmt.Errorf("find actor %q: %w", m.Name, err)
			}
			ok = actor != nil
			known[m.Name] = ok
		}
		if ok {
			out[m.Name]++
		}
	}
	return out, nil
}

// MentionedTags segments every hashtag and counts the words that are known
// tag contents.
func (s *FusionService) MentionedTags(ctx context.Context, p *models.Profile) (map[string]int, error) {
	out := make(map[string]int)
	if s.segmenter == nil {
		return out, nil
	}

	known := make(map[string]bool)
	for _, hashtag := range p.Hashtags {
		words, err := s.segmenter.Segment(ctx, hashtag)
		if err != nil {
			return nil, fmt.Errorf("segment %q: %w", hashtag, err)
		}
		for _, w := range words {
			ok, seen := known[w]
			if !seen {
				tag, err := s.tags.FindByContent(ctx, w)
				if err != nil {
					return nil, fmt.Errorf("find tag %q: %w", w, err)
				}
				ok = tag != nil
				known[w] = ok
			}
			if ok {
				out[w]++
			}
		}
	}
	return out, nil
}
