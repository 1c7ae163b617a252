// Package fragstore talks to the external collection service that persists
// section fragments a user saves. The storage format beyond the JSON
// envelope is the collection service's concern.
package fragstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client communicates with the fragment store HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fragment is one saved section: the verbatim extracted text plus the
// reference it was extracted by and the caller's classification tag.
type Fragment struct {
	DocID     string `json:"doc_id"`
	SectionID string `json:"section_id"`
	Title     string `json:"title"`
	Level     int    `json:"level"`
	Tag       string `json:"tag"`
	Body      string `json:"body"`
}

// RetryableError indicates a transient store failure worth retrying.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("fragment store status %d: %s", e.StatusCode, e.Message)
}

// SaveFragment stores a fragment under the given id. Rate limiting and
// server errors come back as RetryableError; anything else is permanent.
func (c *Client) SaveFragment(ctx context.Context, id string, frag Fragment) error {
	body, err := json.Marshal(frag)
	if err != nil {
		return fmt.Errorf("marshal fragment: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/fragments/"+id, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("save fragment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		return nil
	}
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return &RetryableError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
	return fmt.Errorf("save fragment %s: status %d: %s", id, resp.StatusCode, string(respBody))
}

// Close releases any resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
