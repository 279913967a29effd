package handler

import (
	"context"
	"net/http"

	"github.com/Sandy4321/MovieRecommend/internal/service"
)

// RankingReader serves precomputed lists.
type RankingReader interface {
	Movies(ctx context.Context, metric, genre string) ([]int, error)
	Actors(ctx context.Context) ([]string, error)
}

type RankingsHandler struct {
	rankings RankingReader
	present  *Presenter
}

func NewRankingsHandler(rankings RankingReader, present *Presenter) *RankingsHandler {
	return &RankingsHandler{rankings: rankings, present: present}
}

// @Summary Movie rankings
// @Tags rankings
// @Produce json
// @Param metric query string false "top_rated (default) or most_popular"
// @Param genre query string false "genre name; all genres when empty"
// @Param expand query bool false "include titles and IMDb codes"
// @Success 200 {object} models.Recommendation
// @Failure 400 {object} ErrorResponse
// @Router /rankings/movies [get]
func (h *RankingsHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = service.MetricTopRated
	}
	genre := r.URL.Query().Get("genre")
	if genre == "" {
		genre = service.AllGenres
	}

	ids, err := h.rankings.Movies(r.Context(), metric, genre)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec, err := h.present.Present(r.Context(), metric, genre, ids, queryBool(r, "expand"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// @Summary Most popular actors
// @Tags rankings
// @Produce json
// @Success 200 {array} string
// @Router /rankings/actors [get]
func (h *RankingsHandler) GetActors(w http.ResponseWriter, r *http.Request) {
	names, err := h.rankings.Actors(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}
