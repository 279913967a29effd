// Command batch runs the offline jobs: precomputing similar-movie memos for
// one shard of the catalogue, or rebuilding the ranking lists.
//
//	batch similar-movies -shard 0 -shards 4 -parallelism 8
//	batch rankings
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/Sandy4321/MovieRecommend/internal/config"
	"github.com/Sandy4321/MovieRecommend/internal/db"
	"github.com/Sandy4321/MovieRecommend/internal/logging"
	"github.com/Sandy4321/MovieRecommend/internal/repository"
	"github.com/Sandy4321/MovieRecommend/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd, args := os.Args[1], os.Args[2:]

	cfg, err := config.Load()
	if err != nil {
		boot := logging.Logger()
		boot.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	log := logging.Component("batch")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.InitMongo(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("mongo")
	}
	defer func() { _ = db.Close(context.Background()) }()

	database := db.DB()
	movieRepo := repository.NewMovieRepository(database)

	switch cmd {
	case "similar-movies":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		shard := fs.Int("shard", envInt("SHARD_ID", 0), "shard handled by this run")
		shards := fs.Int("shards", envInt("SHARDS", 1), "total number of shards")
		parallelism := fs.Int("parallelism", cfg.Batch.Parallelism, "movies computed concurrently")
		refresh := fs.Bool("refresh", false, "recompute movies that already have a memo")
		_ = fs.Parse(args)

		content := service.NewContentService(
			movieRepo,
			repository.NewTagRepository(database),
			repository.NewGenreRepository(database),
			cfg.ScoringParams(),
			cfg.Scan.ProgressInterval,
			logging.Logger(),
		)
		batch := service.NewBatchService(movieRepo, content, logging.Logger())

		report, err := batch.PrecomputeSimilarMovies(ctx, service.BatchOptions{
			Shard:       *shard,
			Shards:      *shards,
			Parallelism: *parallelism,
			Refresh:     *refresh,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("similar-movies")
		}
		log.Info().
			Str("run_id", report.RunID).
			Int("selected", report.Selected).
			Int64("stored", report.Stored).
			Int64("skipped", report.Skipped).
			Int64("failed", report.Failed).
			Dur("elapsed", report.Elapsed).
			Msg("similar-movies done")

	case "rankings":
		rankings := service.NewRankingService(
			movieRepo,
			repository.NewActorRepository(database),
			repository.NewRankingRepository(database),
			logging.Logger(),
		)
		n, err := rankings.Rebuild(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("rankings")
		}
		log.Info().Int("lists", n).Msg("rankings rebuilt")

	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: batch similar-movies [-shard N -shards M -parallelism P -refresh] | batch rankings")
}

// envInt lets container deployments set the shard through the environment.
func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
