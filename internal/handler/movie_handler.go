package handler

import (
	"context"
	"net/http"

	"github.com/Sandy4321/MovieRecommend/internal/models"
)

// MovieCatalog is the read side of the `movie` collection.
type MovieCatalog interface {
	MovieLookup
	FindByTitle(ctx context.Context, title string) (*models.Movie, error)
}

type MovieHandler struct {
	movies MovieCatalog
}

func NewMovieHandler(movies MovieCatalog) *MovieHandler { return &MovieHandler{movies: movies} }

// @Summary Get movie
// @Tags movies
// @Produce json
// @Param id path int true "movie id"
// @Success 200 {object} models.Movie
// @Failure 404 {object} ErrorResponse
// @Router /movies/{id} [get]
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid movie id")
		return
	}
	m, err := h.movies.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if m == nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "movie not found"})
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// @Summary Find movie by exact title
// @Tags movies
// @Produce json
// @Param title query string true "exact title, as used by /recommendations/history"
// @Success 200 {object} models.Movie
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /movies [get]
func (h *MovieHandler) FindByTitle(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		badRequest(w, "title is required")
		return
	}
	m, err := h.movies.FindByTitle(r.Context(), title)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if m == nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "movie not found"})
		return
	}
	writeJSON(w, http.StatusOK, m)
}
