package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Sandy4321/MovieRecommend/internal/logging"
	"github.com/Sandy4321/MovieRecommend/internal/models"
	"github.com/Sandy4321/MovieRecommend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// UserRecommender is the collaborative recommender.
type UserRecommender interface {
	RecommendForUser(ctx context.Context, userID int, opts service.UserOptions) ([]int, error)
	SimilarUsersFor(ctx context.Context, userID int, opts service.UserOptions) ([]int, error)
	RecommendFromHistory(ctx context.Context, titles []string, progress service.ProgressFunc) ([]int, error)
}

// MovieRecommender is the content-based recommender.
type MovieRecommender interface {
	RecommendForMovie(ctx context.Context, movieID int) ([]int, error)
	SimilarByTagOverlap(ctx context.Context, movieID int, progress service.ProgressFunc) ([]int, error)
	ByTagContents(ctx context.Context, contents []string) ([]int, error)
	ByGenres(ctx context.Context, genres []string, excludeID int) ([]int, error)
}

// ProfileRecommender is the social-profile fusion recommender.
type ProfileRecommender interface {
	RecommendForProfile(ctx context.Context, handle string, refresh bool) ([]int, error)
	Fuse(ctx context.Context, actors map[string]int, tags map[string]int) ([]int, error)
}

type RecommendHandler struct {
	users    UserRecommender
	movies   MovieRecommender
	profiles ProfileRecommender
	present  *Presenter
}

func NewRecommendHandler(users UserRecommender, movies MovieRecommender, profiles ProfileRecommender, present *Presenter) *RecommendHandler {
	return &RecommendHandler{users: users, movies: movies, profiles: profiles, present: present}
}

func (h *RecommendHandler) respond(w http.ResponseWriter, r *http.Request, recommender, subject string, ids []int, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec, err := h.present.Present(r.Context(), recommender, subject, ids, queryBool(r, "expand"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// @Summary Recommendations for a user
// @Description Movies liked by the user's most similar users and not yet rated by them.
// @Tags recommend
// @Produce json
// @Param id path int true "user id"
// @Param refresh query bool false "ignore the stored similar-users list"
// @Param expand query bool false "include titles and IMDb codes"
// @Success 200 {object} models.Recommendation
// @Failure 400 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse
// @Router /users/{id}/recommendations [get]
func (h *RecommendHandler) GetUserRecommendations(w http.ResponseWriter, r *http.Request) {
	uid, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid user id")
		return
	}
	ids, err := h.users.RecommendForUser(r.Context(), uid, service.UserOptions{Refresh: queryBool(r, "refresh")})
	h.respond(w, r, "user", strconv.Itoa(uid), ids, err)
}

// @Summary Similar users
// @Tags recommend
// @Produce json
// @Param id path int true "user id"
// @Param refresh query bool false "recompute even if stored"
// @Success 200 {array} int
// @Router /users/{id}/similar-users [get]
func (h *RecommendHandler) GetSimilarUsers(w http.ResponseWriter, r *http.Request) {
	uid, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid user id")
		return
	}
	ids, err := h.users.SimilarUsersFor(r.Context(), uid, service.UserOptions{Refresh: queryBool(r, "refresh")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

// @Summary Recommendations from a watch history
// @Tags recommend
// @Accept json
// @Produce json
// @Param body body models.HistoryRequest true "watched titles"
// @Success 200 {object} models.Recommendation
// @Failure 400 {object} ErrorResponse
// @Router /recommendations/history [post]
func (h *RecommendHandler) PostHistory(w http.ResponseWriter, r *http.Request) {
	var req models.HistoryRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	ids, err := h.users.RecommendFromHistory(r.Context(), req.Titles, nil)
	h.respond(w, r, "history", strings.Join(req.Titles, "|"), ids, err)
}

// @Summary Recommendations for tags
// @Tags recommend
// @Accept json
// @Produce json
// @Param body body models.TagsRequest true "tag contents"
// @Success 200 {object} models.Recommendation
// @Failure 400 {object} ErrorResponse
// @Router /recommendations/tags [post]
func (h *RecommendHandler) PostTags(w http.ResponseWriter, r *http.Request) {
	var req models.TagsRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	ids, err := h.movies.ByTagContents(r.Context(), req.Tags)
	h.respond(w, r, "tags", strings.Join(req.Tags, "|"), ids, err)
}

// @Summary Recommendations for genres
// @Tags recommend
// @Accept json
// @Produce json
// @Param body body models.GenresRequest true "genres"
// @Success 200 {object} models.Recommendation
// @Failure 400 {object} ErrorResponse
// @Router /recommendations/genres [post]
func (h *RecommendHandler) PostGenres(w http.ResponseWriter, r *http.Request) {
	var req models.GenresRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	ids, err := h.movies.ByGenres(r.Context(), req.Genres, 0)
	h.respond(w, r, "genres", strings.Join(req.Genres, "|"), ids, err)
}

// @Summary Recommendations from profile evidence
// @Description Fuses actor and tag mention counts into one ranked list.
// @Tags recommend
// @Accept json
// @Produce json
// @Param body body models.FusionRequest true "mention counts"
// @Success 200 {object} models.Recommendation
// @Failure 400 {object} ErrorResponse
// @Router /recommendations/profile [post]
func (h *RecommendHandler) PostFusion(w http.ResponseWriter, r *http.Request) {
	var req models.FusionRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	ids, err := h.profiles.Fuse(r.Context(), req.Actors, req.Tags)
	h.respond(w, r, "fusion", "", ids, err)
}

// @Summary Movies similar to a movie
// @Tags recommend
// @Produce json
// @Param id path int true "movie id"
// @Param strategy query string false "indexed (default) or exhaustive"
// @Param expand query bool false "include titles and IMDb codes"
// @Success 200 {object} models.Recommendation
// @Failure 400 {object} ErrorResponse
// @Router /movies/{id}/similar [get]
func (h *RecommendHandler) GetSimilarMovies(w http.ResponseWriter, r *http.Request) {
	mid, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid movie id")
		return
	}

	var (
		ids []int
		err error
	)
	switch strategy := r.URL.Query().Get("strategy"); strategy {
	case "", "indexed":
		ids, err = h.movies.RecommendForMovie(r.Context(), mid)
	case "exhaustive":
		ids, err = h.movies.SimilarByTagOverlap(r.Context(), mid, nil)
	default:
		badRequest(w, "unknown strategy "+strconv.Quote(strategy))
		return
	}
	h.respond(w, r, "movie", strconv.Itoa(mid), ids, err)
}

// @Summary Recommendations for a social handle
// @Description Uses the stored profile, or fetches it from the extraction service.
// @Tags recommend
// @Produce json
// @Param handle path string true "screen name"
// @Param refresh query bool false "bypass the cache"
// @Param expand query bool false "include titles and IMDb codes"
// @Success 200 {object} models.Recommendation
// @Failure 502 {object} ErrorResponse
// @Router /profiles/{handle}/recommendations [get]
func (h *RecommendHandler) GetProfileRecommendations(w http.ResponseWriter, r *http.Request) {
	handle := strings.TrimPrefix(chi.URLParam(r, "handle"), "@")
	if handle == "" {
		badRequest(w, "missing handle")
		return
	}
	ids, err := h.profiles.RecommendForProfile(r.Context(), handle, queryBool(r, "refresh"))
	h.respond(w, r, "profile", handle, ids, err)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// progressMessage is streamed while the user scan runs.
type progressMessage struct {
	Type    string                 `json:"type"`
	Scanned int                    `json:"scanned,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Result  *models.Recommendation `json:"result,omitempty"`
}

// @Summary Recommendations for a user over WebSocket
// @Description Streams {"type":"progress","scanned":n} while similar users are computed, then one "result" message.
// @Tags recommend
// @Param id path int true "user id"
// @Param refresh query bool false "ignore the stored similar-users list"
// @Param expand query bool false "include titles and IMDb codes"
// @Router /users/{id}/ws/recommendations [get]
func (h *RecommendHandler) GetUserRecommendationsWS(w http.ResponseWriter, r *http.Request) {
	uid, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid user id")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	log := logging.Component("ws").With().Int("uid", uid).Logger()
	send := func(msg progressMessage) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(msg); err != nil {
			log.Debug().Err(err).Msg("websocket write failed")
			return false
		}
		return true
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if !send(progressMessage{Type: "start"}) {
		return
	}

	ids, err := h.users.RecommendForUser(ctx, uid, service.UserOptions{
		Refresh: queryBool(r, "refresh"),
		Progress: func(scanned int) {
			// a dead client stops the scan
			if !send(progressMessage{Type: "progress", Scanned: scanned}) {
				cancel()
			}
		},
	})
	if err != nil {
		send(progressMessage{Type: "error", Error: err.Error()})
		return
	}

	rec, err := h.present.Present(ctx, "user", strconv.Itoa(uid), ids, queryBool(r, "expand"))
	if err != nil {
		send(progressMessage{Type: "error", Error: err.Error()})
		return
	}
	send(progressMessage{Type: "result", Result: rec})
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"),
		time.Now().Add(time.Second))
}
