package collect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const apifyBaseURL = "https://api.apify.com/v2"

// Actor runs block until the scrape finishes; Google Places crawls in
// particular can take minutes.
const apifyRunTimeout = 5 * time.Minute

// ApifyClient calls Apify actors through the synchronous run endpoint that
// returns dataset items directly.
type ApifyClient struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewApifyClient returns a client for the given API token.
func NewApifyClient(token string) *ApifyClient {
	return &ApifyClient{
		client:  &http.Client{Timeout: apifyRunTimeout},
		baseURL: apifyBaseURL,
		token:   token,
	}
}

// NewApifyClientAt is NewApifyClient with a custom endpoint, for tests.
func NewApifyClientAt(baseURL, token string) *ApifyClient {
	c := NewApifyClient(token)
	c.baseURL = baseURL
	return c
}

// RunActor starts an actor synchronously and decodes the resulting dataset
// items into out, which must be a pointer to a slice.
func (a *ApifyClient) RunActor(ctx context.Context, actorID string, input, out any) error {
	if a.token == "" {
		return fmt.Errorf("apify actor %s: no API token configured", actorID)
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("apify actor %s: encode input: %w", actorID, err)
	}

	endpoint := fmt.Sprintf("%s/acts/%s/run-sync-get-dataset-items?token=%s",
		a.baseURL, url.PathEscape(actorID), url.QueryEscape(a.token))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("apify actor %s: build request: %w", actorID, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("apify actor %s: %w", actorID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("apify actor %s: status %d: %s", actorID, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("apify actor %s: decode items: %w", actorID, err)
	}
	return nil
}
