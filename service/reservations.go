package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"lumiere-booking-cli/model"
)

const (
	defaultBaseURL     = "https://seat-reservation-assessment-v1.onrender.com/api"
	defaultMaxAttempts = 3
	defaultRetryBase   = 200 * time.Millisecond
	defaultRetryCap    = 1200 * time.Millisecond
)

// Client wraps HTTP access to the remote reservation service.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxAttempts int
	retryBase   time.Duration
	retryCap    time.Duration
	logger      *zap.Logger
}

// Options tunes a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL     string
	MaxAttempts int
	Logger      *zap.Logger
}

// APIError is returned when the service responds with a non-2xx status, or
// with a zero StatusCode when the request never reached the service.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return "reservation api error"
	}
	if e.Message != "" {
		return e.Message
	}
	if e.StatusCode == 0 {
		return fmt.Sprintf("network request failed: %s", e.Body)
	}
	return fmt.Sprintf("reservation api error: %s: %s", e.Status, e.Body)
}

// IsNotFound reports whether the error represents a 404 from the service.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// NewClient creates a new API client. If httpClient is nil, a default client
// is used.
func NewClient(httpClient *http.Client, opts Options) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = defaultMaxAttempts
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		maxAttempts: maxAttempts,
		retryBase:   defaultRetryBase,
		retryCap:    defaultRetryCap,
		logger:      logger,
	}
}

// GetMovies returns the catalog of movies, each embedding its shows.
func (c *Client) GetMovies(ctx context.Context) ([]model.Movie, error) {
	endpoint := fmt.Sprintf("%s/movies", c.baseURL)

	var movies []model.Movie
	if err := c.getJSON(ctx, endpoint, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetMovieById looks a movie up in the catalog. The service exposes no
// per-movie endpoint, so this filters the full list.
func (c *Client) GetMovieById(ctx context.Context, id string) (model.Movie, error) {
	if id == "" {
		return model.Movie{}, errors.New("movie id is required")
	}
	movies, err := c.GetMovies(ctx)
	if err != nil {
		return model.Movie{}, err
	}
	for _, movie := range movies {
		if movie.Id == id {
			return movie, nil
		}
	}
	return model.Movie{}, fmt.Errorf("movie with id %s not found", id)
}

// GetTheatres returns the list of theatres.
func (c *Client) GetTheatres(ctx context.Context) ([]model.Theatre, error) {
	endpoint := fmt.Sprintf("%s/theatres", c.baseURL)

	var theatres []model.Theatre
	if err := c.getJSON(ctx, endpoint, &theatres); err != nil {
		return nil, err
	}
	return theatres, nil
}

// GetSeatsByShow fetches the seat list with per-show reservation status.
// Results are never cached; availability is only trusted at fetch time.
func (c *Client) GetSeatsByShow(ctx context.Context, showId string) ([]model.Seat, error) {
	if showId == "" {
		return nil, errors.New("show id is required")
	}
	endpoint := fmt.Sprintf("%s/seats/by-show/%s", c.baseURL, url.PathEscape(showId))

	var seats []model.Seat
	if err := c.getJSON(ctx, endpoint, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

// CreateReservation submits a reservation. The request is sent exactly once:
// the service hands out no idempotency keys, so a retry could double-book.
func (c *Client) CreateReservation(ctx context.Context, req model.ReservationRequest) (model.ReservationResponse, error) {
	if req.ShowId == "" || len(req.SeatIds) == 0 {
		return model.ReservationResponse{}, errors.New("show id and seat ids are required")
	}
	endpoint := fmt.Sprintf("%s/reservations", c.baseURL)

	var res model.ReservationResponse
	if err := c.postJSON(ctx, endpoint, req, &res); err != nil {
		return model.ReservationResponse{}, err
	}
	return res, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	maxAttempts := c.maxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		res, err := c.httpClient.Do(req)
		if err != nil {
			if c.shouldRetryNetworkError(err) && attempt < maxAttempts {
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return &APIError{Endpoint: endpoint, Body: err.Error()}
		}

		if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
			apiErr := readAPIError(res, endpoint)
			if c.shouldRetryStatus(res.StatusCode) && attempt < maxAttempts {
				c.logger.Warn("retrying catalog fetch",
					zap.String("endpoint", endpoint),
					zap.Int("status", res.StatusCode),
					zap.Int("attempt", attempt),
				)
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return apiErr
		}

		dec := json.NewDecoder(res.Body)
		err = dec.Decode(out)
		_ = res.Body.Close()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decode response from %s: %w", endpoint, err)
		}
		return nil
	}

	return errors.New("request failed after retries")
}

// postJSON performs a single POST attempt with no retry.
func (c *Client) postJSON(ctx context.Context, endpoint string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Endpoint: endpoint, Body: err.Error()}
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return readAPIError(res, endpoint)
	}

	dec := json.NewDecoder(res.Body)
	err = dec.Decode(out)
	_ = res.Body.Close()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return nil
}

func readAPIError(res *http.Response, endpoint string) *APIError {
	snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
	_ = res.Body.Close()

	apiErr := &APIError{
		StatusCode: res.StatusCode,
		Status:     res.Status,
		Endpoint:   endpoint,
		Body:       strings.TrimSpace(string(snippet)),
	}
	var wire struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(snippet, &wire); err == nil && strings.TrimSpace(wire.Message) != "" {
		apiErr.Message = strings.TrimSpace(wire.Message)
	}
	return apiErr
}

func (c *Client) shouldRetryStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func (c *Client) shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (c *Client) waitRetry(ctx context.Context, attempt int) error {
	delay := c.retryDelay(attempt)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) retryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := c.retryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	cap := c.retryCap
	if cap <= 0 {
		cap = defaultRetryCap
	}

	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= cap/2 {
			return cap
		}
		delay *= 2
	}
	if delay > cap {
		return cap
	}
	return delay
}
