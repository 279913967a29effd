package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/Sandy4321/MovieRecommend/docs" // swagger docs

	"github.com/Sandy4321/MovieRecommend/internal/cache"
	"github.com/Sandy4321/MovieRecommend/internal/config"
	"github.com/Sandy4321/MovieRecommend/internal/db"
	"github.com/Sandy4321/MovieRecommend/internal/handler"
	"github.com/Sandy4321/MovieRecommend/internal/logging"
	"github.com/Sandy4321/MovieRecommend/internal/repository"
	"github.com/Sandy4321/MovieRecommend/internal/service"
	"github.com/Sandy4321/MovieRecommend/internal/social"
)

// @title MovieRecommend API
// @version 1.0
// @description Collaborative, content-based and social-profile movie recommendations over MongoDB.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logging.Logger()
		boot.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	log := logging.Component("api")
	if err := cfg.CheckAdminSecret(); err != nil {
		log.Fatal().Err(err).Msg("admin routes")
	}
	if cfg.HTTP.JWTSecret == config.PlaceholderJWTSecret {
		log.Warn().Msg("admin routes accept tokens signed with the development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Mongo and Redis
	if err := db.InitMongo(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("mongo")
	}
	defer func() { _ = db.Close(context.Background()) }()
	if err := cache.InitRedis(ctx, cfg.Redis); err != nil {
		log.Fatal().Err(err).Msg("redis")
	}
	defer func() { _ = cache.Close() }()

	// repos
	database := db.DB()
	movieRepo := repository.NewMovieRepository(database)
	userRepo := repository.NewUserRepository(database)
	tagRepo := repository.NewTagRepository(database)
	genreRepo := repository.NewGenreRepository(database)
	actorRepo := repository.NewActorRepository(database)
	profileRepo := repository.NewProfileRepository(database)
	rankingRepo := repository.NewRankingRepository(database)

	// social collaborators: remote service when configured, local vocabulary otherwise
	var (
		source    social.ProfileSource
		segmenter social.Segmenter
	)
	if cfg.Social.BaseURL != "" {
		client := social.NewClient(social.ClientConfig{
			BaseURL:   cfg.Social.BaseURL,
			Timeout:   cfg.Social.Timeout,
			RatePerS:  cfg.Social.RatePerS,
			Burst:     cfg.Social.Burst,
			MaxErrors: cfg.Social.MaxErrors,
		}, logging.Logger())
		source, segmenter = client, client
	} else {
		dict, err := loadVocabulary(ctx, tagRepo)
		if err != nil {
			log.Fatal().Err(err).Msg("load tag vocabulary")
		}
		log.Info().Int("words", dict.Len()).Msg("no extraction service configured, using tag vocabulary")
		segmenter = dict
	}

	// services
	params := cfg.ScoringParams()
	logger := logging.Logger()
	collabSvc := service.NewCollaborativeService(userRepo, movieRepo, cfg.Scan.ProgressInterval, logger)
	contentSvc := service.NewContentService(movieRepo, tagRepo, genreRepo, params, cfg.Scan.ProgressInterval, logger)
	fusionSvc := service.NewFusionService(profileRepo, tagRepo, actorRepo, source, segmenter, params, logger)
	rankingSvc := service.NewRankingService(movieRepo, actorRepo, rankingRepo, logger)
	batchSvc := service.NewBatchService(movieRepo, contentSvc, logger)

	// handlers
	present := handler.NewPresenter(movieRepo)
	router := handler.NewRouter(handler.RouterConfig{
		Recommend:     handler.NewRecommendHandler(collabSvc, contentSvc, fusionSvc, present),
		Movies:        handler.NewMovieHandler(movieRepo),
		Rankings:      handler.NewRankingsHandler(rankingSvc, present),
		Admin:         handler.NewAdminHandler(collabSvc, contentSvc, batchSvc, rankingSvc),
		Ping:          db.Ping,
		JWTSecret:     cfg.HTTP.JWTSecret,
		ScanTimeout:   cfg.Scan.Timeout,
		ScanRateLimit: cfg.HTTP.ScanRateLimit,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().
		Str("port", cfg.HTTP.Port).
		Str("corpus", cfg.Corpus.Version).
		Bool("cache", cache.Enabled()).
		Msg("http listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server")
	}
	log.Info().Msg("stopped")
}

func loadVocabulary(ctx context.Context, tags *repository.TagRepository) (*social.DictionarySegmenter, error) {
	var words []string
	for t, err := range tags.Scan(ctx) {
		if err != nil {
			return nil, err
		}
		words = append(words, t.Content)
	}
	return social.NewDictionarySegmenter(words), nil
}
