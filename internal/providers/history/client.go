// Package history implements the "on this day" events API client
// (https://history.muffinlabs.com). This is the fetch orchestrator boundary:
// transient transport failures are retried here so the core filter stays
// free of I/O concerns.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandevgo/kommissar/internal/core"
	"github.com/sandevgo/kommissar/pkg/retry"
)

type Client struct {
	client  *http.Client
	baseURL string
	retrier *retry.Retrier
}

func NewClient(baseURL string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		retrier: retry.NewDefaultRetrier(),
	}
}

// FetchEvents returns the raw event batch for a month/day. Network errors
// and 5xx responses are retried with backoff; 4xx and malformed payloads
// fail immediately.
func (c *Client) FetchEvents(ctx context.Context, month, day int) ([]core.RawEvent, error) {
	var events []core.RawEvent
	var permanent error

	err := c.retrier.Do(ctx, func() error {
		result, err := c.fetchOnce(ctx, month, day)
		if err != nil {
			if isRetriable(err) {
				return err
			}
			permanent = err
			return nil
		}
		events = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	if permanent != nil {
		return nil, permanent
	}
	return events, nil
}

func (c *Client) fetchOnce(ctx context.Context, month, day int) ([]core.RawEvent, error) {
	url := fmt.Sprintf("%s/%d/%d", c.baseURL, month, day)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", core.AppUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &core.FetchError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &core.FetchError{Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &core.FetchError{StatusCode: resp.StatusCode}
	}

	var result struct {
		Date string `json:"date"`
		Data struct {
			Events []core.RawEvent `json:"Events"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidResponse, err)
	}
	if result.Data.Events == nil {
		return nil, core.ErrInvalidResponse
	}

	return result.Data.Events, nil
}

func isRetriable(err error) bool {
	var fetchErr *core.FetchError
	if !errors.As(err, &fetchErr) {
		return false
	}
	return fetchErr.StatusCode == 0 || fetchErr.StatusCode >= http.StatusInternalServerError
}
