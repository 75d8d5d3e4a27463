// Package twitter is a minimal Twitter API v2 client covering the recent
// tweet search the verifier needs.
package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	apperrors "social-verifier-backend/internal/common/errors"
	"social-verifier-backend/internal/features/verify/models"
)

const defaultBaseURL = "https://api.twitter.com"

type Client struct {
	httpClient *http.Client
	baseURL    string
	bearer     string
}

func NewClient(bearerToken string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: defaultBaseURL,
		bearer:  bearerToken,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(bearerToken, baseURL string) *Client {
	c := NewClient(bearerToken)
	c.baseURL = baseURL
	return c
}

type tweet struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type searchResponse struct {
	Data []tweet `json:"data"`
	Meta struct {
		ResultCount int `json:"result_count"`
	} `json:"meta"`
}

// RecentPosts returns the handle's recent tweets in API order. The search is
// scoped with a from: operator, so every returned post is authored by the
// queried handle. An unknown handle or an empty result comes back as an empty
// slice, not an error; provider failures are mapped to SOURCE_NOT_FOUND.
func (c *Client) RecentPosts(ctx context.Context, handle string) ([]models.Post, error) {
	query := url.Values{}
	query.Set("query", "from:"+handle)
	endpoint := fmt.Sprintf("%s/2/tweets/search/recent?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSourceNotFound, "building twitter request")
	}
	req.Header.Set("Authorization", "Bearer "+c.bearer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSourceNotFound, "twitter request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSourceNotFound, "reading twitter response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Newf(apperrors.ErrCodeSourceNotFound, "twitter api returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSourceNotFound, "decoding twitter response")
	}

	posts := make([]models.Post, 0, len(parsed.Data))
	for _, t := range parsed.Data {
		posts = append(posts, models.Post{
			ID:           t.ID,
			Text:         t.Text,
			AuthorHandle: handle,
		})
	}
	return posts, nil
}
