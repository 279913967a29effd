package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig carries everything the HTTP surface needs.
type RouterConfig struct {
	Recommend *RecommendHandler
	Movies    *MovieHandler
	Rankings  *RankingsHandler
	Admin     *AdminHandler
	Ping      Pinger

	JWTSecret     string
	ScanTimeout   time.Duration
	ScanRateLimit int // requests per minute per IP
}

// NewRouter builds the chi router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger())
	r.Use(middleware.Recoverer)

	// =============
	// Public routes
	// =============
	r.Get("/health", Health(cfg.Ping))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Post("/recommendations/tags", cfg.Recommend.PostTags)
	r.Post("/recommendations/genres", cfg.Recommend.PostGenres)
	r.Post("/recommendations/profile", cfg.Recommend.PostFusion)
	r.Get("/profiles/{handle}/recommendations", cfg.Recommend.GetProfileRecommendations)

	r.Get("/movies", cfg.Movies.FindByTitle)
	r.Get("/movies/{id}", cfg.Movies.GetMovie)

	r.Get("/rankings/movies", cfg.Rankings.GetMovies)
	r.Get("/rankings/actors", cfg.Rankings.GetActors)

	// =======================================
	// Routes that may scan a whole collection
	// =======================================
	r.Group(func(r chi.Router) {
		r.Use(ScanRateLimit(cfg.ScanRateLimit))
		r.Use(ScanTimeout(cfg.ScanTimeout))

		r.Get("/users/{id}/recommendations", cfg.Recommend.GetUserRecommendations)
		r.Get("/users/{id}/similar-users", cfg.Recommend.GetSimilarUsers)
		r.Get("/users/{id}/ws/recommendations", cfg.Recommend.GetUserRecommendationsWS)
		r.Post("/recommendations/history", cfg.Recommend.PostHistory)
		r.Get("/movies/{id}/similar", cfg.Recommend.GetSimilarMovies)
	})

	// =====================
	// Admin routes with JWT
	// =====================
	r.Group(func(r chi.Router) {
		r.Use(JWTAuth(cfg.JWTSecret))
		r.Use(AdminOnly())
		MountAdminRoutes(r, cfg.Admin)
	})

	return r
}
