package history

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/kommissar/internal/core"
	"github.com/sandevgo/kommissar/pkg/retry"
)

func newTestClient(baseURL string) *Client {
	c := NewClient(baseURL)
	// No backoff delays in tests.
	c.retrier = retry.NewRetrier(&retry.Config{MaxRetries: 2})
	return c
}

func TestFetchEvents(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"date": "November 7",
			"data": {
				"Events": [
					{"date": "November 7", "text": "The October Revolution begins", "year": "1917"},
					{"date": "November 7", "text": "Something else happened", "year": "1867"}
				]
			}
		}`)
	}))
	defer server.Close()

	events, err := newTestClient(server.URL).FetchEvents(context.Background(), 11, 7)
	require.NoError(t, err)

	assert.Equal(t, "/11/7", gotPath)
	require.Len(t, events, 2)
	assert.Equal(t, core.RawEvent{Date: "November 7", Text: "The October Revolution begins", Year: "1917"}, events[0])
}

func TestFetchEvents_MissingEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"date": "November 7", "data": {}}`)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchEvents(context.Background(), 11, 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidResponse)
}

func TestFetchEvents_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchEvents(context.Background(), 11, 7)
	assert.ErrorIs(t, err, core.ErrInvalidResponse)
}

func TestFetchEvents_ClientErrorNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchEvents(context.Background(), 2, 30)
	require.Error(t, err)

	var fetchErr *core.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Equal(t, 1, calls)
}

func TestFetchEvents_ServerErrorRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"data": {"Events": [{"date": "May 1", "text": "May Day", "year": "1890"}]}}`)
	}))
	defer server.Close()

	events, err := newTestClient(server.URL).FetchEvents(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, 2, calls)
}
