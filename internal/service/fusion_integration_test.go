//go:build integration

package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/Sandy4321/MovieRecommend/internal/cache"
	"github.com/Sandy4321/MovieRecommend/internal/config"
	"github.com/Sandy4321/MovieRecommend/internal/testinfra"

	"github.com/rs/zerolog"
)

func TestRecommendForProfile_Cache(t *testing.T) {
	ctx := context.Background()
	addr := testinfra.StartRedis(t)
	if err := cache.InitRedis(ctx, config.RedisConfig{Addr: addr, TTL: time.Minute}); err != nil {
		t.Fatalf("InitRedis() error: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })

	profiles, tags, actors := fusionFixture()
	source := &fakeSource{}
	svc := NewFusionService(profiles, tags, actors, source, testSegmenter(), testParams(), zerolog.Nop())
	want := []int{100, 103, 101, 102}

	got, err := svc.RecommendForProfile(ctx, "rebel", false)
	if err != nil || !reflect.DeepEqual(got, want) {
		t.Fatalf("first call = %v, %v; want %v", got, err, want)
	}

	var cached []int
	if ok, err := cache.GetJSON(ctx, profileCacheKey("rebel"), &cached); err != nil || !ok || !reflect.DeepEqual(cached, want) {
		t.Fatalf("cached = %v (ok=%v, err=%v), want %v", cached, ok, err, want)
	}

	// the profile disappears from the store: a cached read never looks it up
	delete(profiles.byHandle, "rebel")
	got, err = svc.RecommendForProfile(ctx, "rebel", false)
	if err != nil || !reflect.DeepEqual(got, want) {
		t.Errorf("cached call = %v, %v; want %v", got, err, want)
	}
	if source.calls != 0 {
		t.Errorf("live fetches = %d, want 0", source.calls)
	}

	// refresh skips the cache, finds nothing and drops the stale entry
	got, err = svc.RecommendForProfile(ctx, "rebel", true)
	if err != nil || len(got) != 0 {
		t.Errorf("refresh = %v, %v; want empty", got, err)
	}
	if source.calls != 1 {
		t.Errorf("live fetches = %d, want 1", source.calls)
	}
	if ok, _ := cache.GetJSON(ctx, profileCacheKey("rebel"), &cached); ok {
		t.Errorf("stale entry still cached: %v", cached)
	}
	got, err = svc.RecommendForProfile(ctx, "rebel", false)
	if err != nil || len(got) != 0 {
		t.Errorf("after refresh = %v, %v; want empty", got, err)
	}
}
