// ABOUTME: Minimal Strava API client for activity import
// ABOUTME: Handles OAuth token refresh and paginated activity listing with retry
package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/minakami/minakami/internal/config"
	"github.com/minakami/minakami/internal/util"
)

const (
	defaultBaseURL = "https://www.strava.com"
	perPage        = 100
)

// SummaryActivity is the subset of Strava's activity summary we import.
type SummaryActivity struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	SportType      string  `json:"sport_type"`
	StartDate      string  `json:"start_date"` // RFC3339
	ElapsedTime    int64   `json:"elapsed_time"`
	MovingTime     int64   `json:"moving_time"`
	Distance       float64 `json:"distance"`
	Calories       float64 `json:"calories"`
	AverageHR      float64 `json:"average_heartrate"`
	MaxHR          float64 `json:"max_heartrate"`
	TotalElevation float64 `json:"total_elevation_gain"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

// Client talks to the Strava v3 API with a refresh-token credential.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	refreshToken string
	maxRetries   int
	retryDelay   time.Duration

	accessToken string
	expiresAt   time.Time
}

// NewClient creates a client from config. All three Strava credentials
// are required.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.StravaClientID == "" || cfg.StravaClientSecret == "" || cfg.StravaRefreshToken == "" {
		return nil, fmt.Errorf("Strava credentials are required (STRAVA_CLIENT_ID, STRAVA_CLIENT_SECRET, STRAVA_REFRESH_TOKEN)")
	}
	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		baseURL:      defaultBaseURL,
		clientID:     cfg.StravaClientID,
		clientSecret: cfg.StravaClientSecret,
		refreshToken: cfg.StravaRefreshToken,
		maxRetries:   cfg.MaxRetries,
		retryDelay:   cfg.RetryDelay,
	}, nil
}

// SetBaseURL points the client at a different API host, used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimSuffix(u, "/")
}

// ensureToken exchanges the refresh token for an access token when the
// cached one is missing or about to expire.
func (c *Client) ensureToken(ctx context.Context) error {
	if c.accessToken != "" && time.Until(c.expiresAt) > time.Minute {
		return nil
	}

	form := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"grant_type":    {"refresh_token"},
		"refresh_token": {c.refreshToken},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("token refresh failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("token refresh failed: status %d: %s", resp.StatusCode, body)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return fmt.Errorf("token refresh failed: %w", err)
	}

	c.accessToken = tok.AccessToken
	c.expiresAt = time.Unix(tok.ExpiresAt, 0)
	if tok.RefreshToken != "" {
		c.refreshToken = tok.RefreshToken
	}
	return nil
}

// ListActivities fetches all athlete activities after the given time,
// following pagination until a short page.
func (c *Client) ListActivities(ctx context.Context, after time.Time) ([]SummaryActivity, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	var all []SummaryActivity
	for page := 1; ; page++ {
		batch, err := c.listPage(ctx, after, page)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < perPage {
			return all, nil
		}
	}
}

func (c *Client) listPage(ctx context.Context, after time.Time, page int) ([]SummaryActivity, error) {
	q := url.Values{
		"per_page": {strconv.Itoa(perPage)},
		"page":     {strconv.Itoa(page)},
	}
	if !after.IsZero() {
		q.Set("after", strconv.FormatInt(after.Unix(), 10))
	}

	var batch []SummaryActivity
	err := util.Retry(ctx, c.maxRetries, c.retryDelay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			c.baseURL+"/api/v3/athlete/activities?"+q.Encode(), nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.accessToken)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("activity list failed: status %d: %s", resp.StatusCode, body)
		}

		batch = batch[:0]
		return json.NewDecoder(resp.Body).Decode(&batch)
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}
