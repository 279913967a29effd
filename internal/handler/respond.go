package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Sandy4321/MovieRecommend/internal/logging"
	"github.com/Sandy4321/MovieRecommend/internal/service"
	"github.com/Sandy4321/MovieRecommend/internal/social"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
)

var validate = validator.New()

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= 500 {
		log := logging.Component("http")
		log.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Msg("request failed")
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// StatusClientClosedRequest answers a request whose client went away before
// the result was ready (nginx's 499). Nothing reads the body.
const StatusClientClosedRequest = 499

func statusFor(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest
	case errors.Is(err, social.ErrUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, service.ErrUnknownMetric), errors.Is(err, service.ErrBadShard):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var errBadBody = errors.New("invalid request body")

// decodeBody decodes and validates a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errBadBody
	}
	if err := validate.Struct(dst); err != nil {
		return err
	}
	return nil
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg})
}

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryBool(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}
