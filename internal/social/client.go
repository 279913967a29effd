package social

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Sandy4321/MovieRecommend/internal/models"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// ClientConfig configures the HTTP extraction client.
type ClientConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RatePerS  float64
	Burst     int
	MaxErrors uint32 // consecutive failures before the circuit opens
}

// Client talks to the remote text-analytics service. It implements both
// ProfileSource and Segmenter.
type Client struct {
	base    string
	http    *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]byte]
	logger  zerolog.Logger
}

// errNotFound marks a 404 so the breaker does not count it as a failure.
var errNotFound = errors.New("not found")

func NewClient(cfg ClientConfig, logger zerolog.Logger) *Client {
	c := &Client{
		base:    strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerS), cfg.Burst),
		logger:  logger.With().Str("component", "social").Logger(),
	}

	maxErrors := cfg.MaxErrors
	if maxErrors == 0 {
		maxErrors = 5
	}
	c.cb = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "social-extraction",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxErrors
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})
	return c
}

// FetchProfile returns the extracted profile of handle.
func (c *Client) FetchProfile(ctx context.Context, handle string) (*models.Profile, error) {
	body, err := c.get(ctx, "/profiles/"+url.PathEscape(handle))
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, handle)
		}
		return nil, err
	}

	var p models.Profile
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", handle, err)
	}
	if p.Handle == "" {
		p.Handle = handle
	}
	return &p, nil
}

type segmentResponse struct {
	Words []string `json:"words"`
}

// Segment asks the service to split hashtag into words.
func (c *Client) Segment(ctx context.Context, hashtag string) ([]string, error) {
	body, err := c.get(ctx, "/segment?hashtag="+url.QueryEscape(hashtag))
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var resp segmentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode segmentation of %q: %w", hashtag, err)
	}
	return resp.Words, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := c.cb.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, errNotFound
		case resp.StatusCode >= 300:
			return nil, fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	})

	switch {
	case err == nil:
		return body, nil
	case errors.Is(err, errNotFound):
		return nil, err
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	case ctx.Err() != nil:
		return nil, ctx.Err()
	default:
		c.logger.Debug().Err(err).Str("path", path).Msg("extraction request failed")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}
