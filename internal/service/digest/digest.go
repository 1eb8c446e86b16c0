// Package digest owns the event collection and drives the image pipeline.
// Image requests go out strictly one at a time in score order: the image API
// is paid and rate-limited, so the loop favors backpressure over speed.
package digest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sandevgo/kommissar/internal/core"
	"github.com/sandevgo/kommissar/internal/promptgen"
	"github.com/sandevgo/kommissar/internal/relevance"
	"github.com/sandevgo/kommissar/pkg/log"
)

// ErrBatchReplaced reports that a concurrent load superseded the event
// batch while a per-event image request was in flight.
var ErrBatchReplaced = errors.New("event batch replaced during image generation")

// PromptBuilder maps an event to the prompt pair sent to the image API.
type PromptBuilder func(core.HistoricalEvent) core.StabilityPrompt

// StructuredPrompt is the default era/style prompt builder.
func StructuredPrompt(event core.HistoricalEvent) core.StabilityPrompt {
	return promptgen.Synthesize(event.Description, event.Year)
}

// EventState is one event plus its image pipeline status. Error is only
// meaningful in StatusError; Event.ImageURL is only set in StatusReady.
type EventState struct {
	Event  core.HistoricalEvent `json:"event"`
	Status Status               `json:"status"`
	Error  string               `json:"error,omitempty"`
}

// State is the full snapshot handed to the presentation layer. LoadError is
// set when the last load attempt failed; the events then hold the previous
// successful batch (possibly none).
type State struct {
	Events    []EventState `json:"events"`
	LoadError string       `json:"loadError,omitempty"`
}

type Service struct {
	source      core.EventSource
	images      core.ImageGenerator
	buildPrompt PromptBuilder

	mu      sync.Mutex
	events  []EventState
	batch   uint64
	loadErr string
}

func NewService(source core.EventSource, images core.ImageGenerator, buildPrompt PromptBuilder) *Service {
	if buildPrompt == nil {
		buildPrompt = StructuredPrompt
	}
	return &Service{
		source:      source,
		images:      images,
		buildPrompt: buildPrompt,
	}
}

// Load fetches and filters the events for a month/day, replacing the
// current collection. An events-API failure aborts the whole load and is
// also recorded in the snapshot for the presentation layer.
func (s *Service) Load(ctx context.Context, month, day int) error {
	logger := log.FromCtx(ctx)
	logger.Info().Int("month", month).Int("day", day).Msg("loading events")

	raw, err := s.source.FetchEvents(ctx, month, day)
	if err != nil {
		s.mu.Lock()
		s.loadErr = err.Error()
		s.mu.Unlock()
		return fmt.Errorf("fetch events: %w", err)
	}

	events := relevance.Filter(ctx, raw)

	states := make([]EventState, len(events))
	for i, event := range events {
		states[i] = EventState{Event: event, Status: StatusIdle}
	}

	s.mu.Lock()
	s.events = states
	s.batch++
	s.loadErr = ""
	s.mu.Unlock()

	logger.Info().Int("scanned", len(raw)).Int("retained", len(events)).Msg("events loaded")
	return nil
}

// LoadToday loads the batch for the current calendar day.
func (s *Service) LoadToday(ctx context.Context) error {
	now := time.Now()
	return s.Load(ctx, int(now.Month()), now.Day())
}

// GenerateImages walks the collection serially, one in-flight request at a
// time, in the score-descending order the filter produced. One event's
// failure never stops the rest; only context cancellation or a concurrent
// Load replacing the batch does.
func (s *Service) GenerateImages(ctx context.Context) {
	s.mu.Lock()
	count := len(s.events)
	batch := s.batch
	s.mu.Unlock()

	for i := 0; i < count; i++ {
		if ctx.Err() != nil {
			return
		}
		s.generateOne(ctx, i, batch)
	}
}

// RetryImage re-runs image generation for a single event, re-entering
// loading from either terminal state, and returns the resulting state of
// that event. ErrBatchReplaced means a concurrent load superseded the batch
// mid-request and the result was discarded.
func (s *Service) RetryImage(ctx context.Context, index int) (EventState, error) {
	s.mu.Lock()
	count := len(s.events)
	batch := s.batch
	s.mu.Unlock()

	if index < 0 || index >= count {
		return EventState{}, fmt.Errorf("event index %d out of range", index)
	}
	state, ok := s.generateOne(ctx, index, batch)
	if !ok {
		return EventState{}, ErrBatchReplaced
	}
	return state, nil
}

// generateOne runs one image request for events[index] of the given batch.
// The result is discarded when another Load replaced the batch while the
// request was in flight: stamping it onto whichever event now occupies the
// index would skip that event's loading state and attach the wrong image.
// Returns the event's resulting state, false when the batch was superseded.
func (s *Service) generateOne(ctx context.Context, index int, batch uint64) (EventState, bool) {
	logger := log.FromCtx(ctx)

	s.mu.Lock()
	if batch != s.batch || index >= len(s.events) {
		s.mu.Unlock()
		return EventState{}, false
	}
	state := &s.events[index]
	state.Status = StatusLoading
	state.Error = ""
	state.Event.ImageURL = ""
	event := state.Event
	s.mu.Unlock()

	// The API call happens without the lock so readers see the loading
	// state while the request is in flight.
	imageURL, err := s.images.GenerateImage(ctx, s.buildPrompt(event))

	s.mu.Lock()
	defer s.mu.Unlock()
	if batch != s.batch || index >= len(s.events) {
		logger.Debug().Int("event", index).Msg("batch replaced mid-request, result discarded")
		return EventState{}, false
	}
	state = &s.events[index]
	if err != nil {
		state.Status = StatusError
		state.Error = err.Error()
		logger.Error().Err(err).Int("event", index).Str("text", event.Description).Msg("image generation failed")
		return *state, true
	}
	state.Status = StatusReady
	state.Event.ImageURL = imageURL
	logger.Info().Int("event", index).Int("year", event.Year).Msg("image generated")
	return *state, true
}

// Refresh is load-then-generate, the unit behind the user-facing retry.
func (s *Service) Refresh(ctx context.Context, month, day int) error {
	if err := s.Load(ctx, month, day); err != nil {
		return err
	}
	s.GenerateImages(ctx)
	return nil
}

// Snapshot returns a copy of the current state for the presentation layer.
func (s *Service) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]EventState, len(s.events))
	copy(events, s.events)
	return State{Events: events, LoadError: s.loadErr}
}

// ShareText formats the share string for one event.
func (s *Service) ShareText(index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.events) {
		return "", fmt.Errorf("event index %d out of range", index)
	}
	event := s.events[index].Event
	return fmt.Sprintf("%d: %s\n\nShared from %s", event.Year, event.Description, core.AppName), nil
}

// Start implements srv.Service: load today's digest and generate images.
// A load failure is kept in the snapshot rather than killing the process;
// the transport's refresh endpoint is the retry affordance.
func (s *Service) Start(ctx context.Context) error {
	if err := s.LoadToday(ctx); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("initial load failed")
		return nil
	}
	s.GenerateImages(ctx)
	return nil
}

func (s *Service) Shutdown(ctx context.Context) error {
	return nil
}
