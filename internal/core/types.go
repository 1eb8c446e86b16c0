package core

import "context"

const (
	AppName      = "Kommissar's Digest"
	AppUserAgent = "KommissarDigest/0.1"
	AppVersion   = "0.1.0"
)

// RawEvent is one entry from the events API, untouched. Year arrives as a
// string ("1917", sometimes with qualifiers) and is only parsed at the
// filtering boundary.
type RawEvent struct {
	Date string `json:"date"`
	Text string `json:"text"`
	Year string `json:"year"`
}

// HistoricalEvent is the canonical event shape exposed past the filter.
// ImageURL stays empty until image generation succeeds for the event.
type HistoricalEvent struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Year        int    `json:"year"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// StabilityPrompt is the paired positive/negative prompt sent to the
// image-generation API.
type StabilityPrompt struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt"`
}

// EventSource fetches the raw "on this day" events for a month/day.
type EventSource interface {
	FetchEvents(ctx context.Context, month, day int) ([]RawEvent, error)
}

// ImageGenerator turns a prompt pair into a displayable image payload
// (a data URI in the current implementation).
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt StabilityPrompt) (string, error)
}
