package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cineseat-cli/config"
	"cineseat-cli/model"
)

const (
	defaultMovieBaseURL   = "https://api.cineseat.app/v1"
	defaultTheaterBaseURL = "https://api.cineseat.app/v1"
	defaultUserAgent      = "cineseat-cli/1.0"
	defaultMaxAttempts    = 3
	defaultRetryBase      = 200 * time.Millisecond
	defaultRetryCap       = 1200 * time.Millisecond
)

// Client wraps HTTP access to the movie and theater catalog APIs.
type Client struct {
	httpClient  *http.Client
	movieURL    string
	theaterURL  string
	userAgent   string
	maxAttempts int
	retryBase   time.Duration
	retryCap    time.Duration
}

// APIError is returned when the catalog API responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "catalog api error"
	}
	return fmt.Sprintf("catalog api error: %s: %s", e.Status, e.Body)
}

// IsNotFound reports whether the error represents a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// NewClient creates a new API client. If httpClient is nil, a default
// client is used.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	return &Client{
		httpClient:  httpClient,
		movieURL:    defaultMovieBaseURL,
		theaterURL:  defaultTheaterBaseURL,
		userAgent:   defaultUserAgent,
		maxAttempts: defaultMaxAttempts,
		retryBase:   defaultRetryBase,
		retryCap:    defaultRetryCap,
	}
}

// NewClientFromConfig creates a client pointed at the configured endpoints.
func NewClientFromConfig(cfg *config.Config) *Client {
	c := NewClient(nil)
	if cfg != nil {
		if strings.TrimSpace(cfg.MovieAPIBaseURL) != "" {
			c.movieURL = cfg.MovieAPIBaseURL
		}
		if strings.TrimSpace(cfg.TheaterAPIBaseURL) != "" {
			c.theaterURL = cfg.TheaterAPIBaseURL
		}
	}
	return c
}

type movieRecord struct {
	Id          string  `json:"id"`
	Title       string  `json:"title"`
	VoteAverage float64 `json:"vote_average"`
	Runtime     string  `json:"runtime"`
	GenreNames  string  `json:"genres"`
	Language    string  `json:"original_language"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
	Cast        string  `json:"cast"`
	Director    string  `json:"director"`
	TrailerUrl  string  `json:"trailer_url"`
}

type moviesResponse struct {
	Page    int           `json:"page"`
	Results []movieRecord `json:"results"`
}

// GetNowPlaying fetches the movie catalog for a region and page.
func (c *Client) GetNowPlaying(ctx context.Context, region string, page int) ([]model.Movie, error) {
	if strings.TrimSpace(region) == "" {
		return nil, errors.New("region is required")
	}
	if page < 1 {
		page = 1
	}
	endpoint := fmt.Sprintf("%s/movies/now-playing?region=%s&page=%d",
		c.movieURL, url.QueryEscape(region), page)

	var payload moviesResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if len(payload.Results) == 0 {
		return nil, errors.New("no movies found")
	}

	movies := make([]model.Movie, 0, len(payload.Results))
	for _, record := range payload.Results {
		movies = append(movies, model.Movie{
			Id:          record.Id,
			Title:       record.Title,
			Rating:      record.VoteAverage,
			Duration:    record.Runtime,
			Genre:       record.GenreNames,
			Language:    record.Language,
			PosterPath:  record.PosterPath,
			ReleaseDate: record.ReleaseDate,
			Overview:    record.Overview,
			Cast:        splitNames(record.Cast),
			Director:    record.Director,
			TrailerUrl:  record.TrailerUrl,
		})
	}
	return movies, nil
}

func splitNames(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
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
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		res, err := c.httpClient.Do(req)
		if err != nil {
			if c.shouldRetryNetworkError(err) && attempt < maxAttempts {
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return fmt.Errorf("request failed: %w", err)
		}

		if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
			snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
			_ = res.Body.Close()

			apiErr := &APIError{
				StatusCode: res.StatusCode,
				Status:     res.Status,
				Endpoint:   endpoint,
				Body:       strings.TrimSpace(string(snippet)),
			}
			if c.shouldRetryStatus(res.StatusCode) && attempt < maxAttempts {
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
