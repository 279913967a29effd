package handler

import (
	"context"
	"net/http"

	"github.com/Sandy4321/MovieRecommend/internal/logging"
	"github.com/Sandy4321/MovieRecommend/internal/models"
	"github.com/Sandy4321/MovieRecommend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// BatchRunner precomputes the similar_movies memo.
type BatchRunner interface {
	PrecomputeSimilarMovies(ctx context.Context, opts service.BatchOptions) (*service.BatchReport, error)
}

// RankingBuilder rebuilds the stored rankings.
type RankingBuilder interface {
	Rebuild(ctx context.Context) (int, error)
}

// AdminHandler exposes the maintenance jobs that refresh memoized results.
type AdminHandler struct {
	users    UserRecommender
	movies   MovieRecommender
	batch    BatchRunner
	rankings RankingBuilder
	log      zerolog.Logger
}

func NewAdminHandler(users UserRecommender, movies MovieRecommender, batch BatchRunner, rankings RankingBuilder) *AdminHandler {
	return &AdminHandler{
		users:    users,
		movies:   movies,
		batch:    batch,
		rankings: rankings,
		log:      logging.Component("admin"),
	}
}

// audit records which token subject started a job.
func (h *AdminHandler) audit(r *http.Request) *zerolog.Event {
	return h.log.Info().
		Str("subject", SubjectFromContext(r.Context())).
		Str("path", r.URL.Path)
}

// @Summary Recompute a user's similar users
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path int true "user id"
// @Success 200 {array} int
// @Router /admin/users/{id}/similar-users [post]
func (h *AdminHandler) PostSimilarUsers(w http.ResponseWriter, r *http.Request) {
	uid, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid user id")
		return
	}
	h.audit(r).Int("uid", uid).Msg("similar users recompute requested")
	ids, err := h.users.SimilarUsersFor(r.Context(), uid, service.UserOptions{Refresh: true})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

// @Summary Compute a movie's tag-overlap neighbours
// @Description Runs the exhaustive scan; the result is stored on the movie. An existing list is returned as is.
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path int true "movie id"
// @Success 200 {array} int
// @Router /admin/movies/{id}/similar [post]
func (h *AdminHandler) PostSimilarMovies(w http.ResponseWriter, r *http.Request) {
	mid, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid movie id")
		return
	}
	ids, err := h.movies.SimilarByTagOverlap(r.Context(), mid, nil)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

// @Summary Precompute similar movies for a shard
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.BatchRequest true "shard selection"
// @Success 200 {object} service.BatchReport
// @Failure 400 {object} ErrorResponse
// @Router /admin/batch/similar-movies [post]
func (h *AdminHandler) PostBatch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	h.audit(r).
		Int("shard", req.Shard).
		Int("shards", req.Shards).
		Bool("refresh", req.Refresh).
		Msg("similar movies batch requested")
	report, err := h.batch.PrecomputeSimilarMovies(r.Context(), service.BatchOptions{
		Shard:       req.Shard,
		Shards:      req.Shards,
		Parallelism: req.Parallelism,
		Refresh:     req.Refresh,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// @Summary Rebuild rankings
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.RebuildRankingsResult
// @Router /admin/rankings/rebuild [post]
func (h *AdminHandler) PostRebuildRankings(w http.ResponseWriter, r *http.Request) {
	h.audit(r).Msg("rankings rebuild requested")
	n, err := h.rankings.Rebuild(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.RebuildRankingsResult{Lists: n})
}

// MountAdminRoutes registers the admin endpoints on r.
func MountAdminRoutes(r chi.Router, h *AdminHandler) {
	r.Route("/admin", func(r chi.Router) {
		r.Post("/users/{id}/similar-users", h.PostSimilarUsers)
		r.Post("/movies/{id}/similar", h.PostSimilarMovies)
		r.Post("/batch/similar-movies", h.PostBatch)
		r.Post("/rankings/rebuild", h.PostRebuildRankings)
	})
}
