package core

import (
	"errors"
	"fmt"
)

// ErrInvalidResponse means the events API answered 2xx but the payload is
// missing data.Events.
var ErrInvalidResponse = errors.New("invalid response format from history API")

// ErrNoRelevantEvents is kept for callers that bypass the filter's fallback
// path; with the fallback in place the filter itself never returns it.
var ErrNoRelevantEvents = errors.New("no relevant events found for today")

// ErrImageDecode means the image API answered but the artifact payload could
// not be decoded into an image.
var ErrImageDecode = errors.New("no image data in response")

// FetchError is a network-level or non-2xx failure from the events API.
// It aborts the whole load operation.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("events API returned http %d", e.StatusCode)
	}
	return fmt.Sprintf("events API request failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ImageGenerationError is a per-event failure from the image API. It never
// aborts the batch; the event stays retriable.
type ImageGenerationError struct {
	StatusCode int
	Message    string
}

func (e *ImageGenerationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("failed to generate image: %s", e.Message)
	}
	return fmt.Sprintf("failed to generate image: http %d", e.StatusCode)
}
