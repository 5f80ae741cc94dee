// Package portalclient is the Go client for the portal service. Besides
// the HTTP calls it carries the session-side logic the web client used to
// own: the view filter (category/search/grouping) and the optimistic
// favorites policy.
package portalclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/longkeutn/cong-thong-tin-sht/internal/entity"
)

const (
	defaultTimeout      = 5 * time.Second
	defaultRetryWaitMax = 5 * time.Second
)

type Client struct {
	read    *http.Client
	write   *http.Client
	baseURL string
	email   string
}

// NewClient builds a portal client acting as the given identity. The read
// path retries transport failures; the write path never does, because a
// toggle that silently reached the backend would be flipped back by its
// retry.
func NewClient(baseURL, email string) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = defaultRetryWaitMax
	retryClient.HTTPClient.Timeout = defaultTimeout

	retryClient.Logger = nil

	return &Client{
		read:    retryClient.StandardClient(),
		write:   &http.Client{Timeout: defaultTimeout},
		baseURL: baseURL,
		email:   email,
	}
}

// PortalData performs the one-shot session load.
func (c *Client) PortalData(ctx context.Context) (entity.PortalData, error) {
	var data entity.PortalData

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/portal", nil)
	if err != nil {
		return data, fmt.Errorf("build request: %w", err)
	}

	c.setIdentity(req)

	resp, err := c.read.Do(req)
	if err != nil {
		return data, fmt.Errorf("%w: %w", entity.ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return data, fmt.Errorf("%w: unexpected status %d", entity.ErrDataUnavailable, resp.StatusCode)
	}

	err = json.NewDecoder(resp.Body).Decode(&data)
	if err != nil {
		return data, fmt.Errorf("%w: decode response: %w", entity.ErrDataUnavailable, err)
	}

	return data, nil
}

type toggleRequest struct {
	AppID string `json:"appId"`
}

type toggleResponse struct {
	Favorites []string `json:"favorites"`
}

// ToggleFavorite sends one toggle round-trip. A backend that echoes a
// non-empty set yields an authoritative outcome; an empty echo is
// unconfirmed, since a degraded backend that only acknowledges writes is
// indistinguishable from a user with zero favorites.
func (c *Client) ToggleFavorite(ctx context.Context, appID string) (ToggleOutcome, error) {
	body, err := json.Marshal(toggleRequest{AppID: appID})
	if err != nil {
		return Unconfirmed(), fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/api/favorites/toggle", bytes.NewReader(body))
	if err != nil {
		return Unconfirmed(), fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	c.setIdentity(req)

	resp, err := c.write.Do(req)
	if err != nil {
		return Unconfirmed(), fmt.Errorf("%w: %w", entity.ErrSyncFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Unconfirmed(), fmt.Errorf("%w: unexpected status %d", entity.ErrSyncFailure, resp.StatusCode)
	}

	var tr toggleResponse

	err = json.NewDecoder(resp.Body).Decode(&tr)
	if err != nil {
		return Unconfirmed(), fmt.Errorf("%w: decode response: %w", entity.ErrSyncFailure, err)
	}

	if len(tr.Favorites) == 0 {
		return Unconfirmed(), nil
	}

	return Authoritative(tr.Favorites), nil
}

func (c *Client) setIdentity(req *http.Request) {
	if c.email != "" {
		req.Header.Set("X-Auth-Request-Email", c.email)
	}
}
