package relevance

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/sandevgo/kommissar/internal/core"
	"github.com/sandevgo/kommissar/pkg/log"
)

// RelevanceThreshold is the minimum score an event needs to survive
// filtering. Half-weight partial matches make fractional scores possible, so
// 2.0 means "at least one mid-weight exact hit or two weak signals".
const RelevanceThreshold = 2.0

// ScoredEvent pairs a raw event with its score and match trace. Transient:
// built per filtering pass, never stored.
type ScoredEvent struct {
	Raw   core.RawEvent
	Score float64
	Trace []string
}

// Filter scores a batch of raw events, keeps those at or above the
// threshold sorted by descending score (stable, so equal scores keep input
// order), and maps them to the canonical event shape. An empty result is
// replaced by the fixed fallback set so the caller always has something to
// render.
func Filter(ctx context.Context, rawEvents []core.RawEvent) []core.HistoricalEvent {
	logger := log.FromCtx(ctx)

	var retained []ScoredEvent
	for _, raw := range rawEvents {
		score, trace := Score(raw.Text)
		if score < RelevanceThreshold {
			continue
		}
		logger.Debug().
			Float64("score", score).
			Strs("trace", trace).
			Str("text", raw.Text).
			Msg("event retained")
		retained = append(retained, ScoredEvent{Raw: raw, Score: score, Trace: trace})
	}

	sort.SliceStable(retained, func(i, j int) bool {
		return retained[i].Score > retained[j].Score
	})

	var events []core.HistoricalEvent
	for _, se := range retained {
		year, err := strconv.Atoi(se.Raw.Year)
		if err != nil {
			logger.Warn().Str("year", se.Raw.Year).Str("text", se.Raw.Text).Msg("dropping event with unparsable year")
			continue
		}
		events = append(events, core.HistoricalEvent{
			Date:        se.Raw.Date,
			Description: se.Raw.Text,
			Year:        year,
		})
	}

	if len(events) == 0 {
		logger.Info().Int("scanned", len(rawEvents)).Msg("no relevant events today, using fallback set")
		return FallbackEvents(time.Now())
	}
	return events
}

// FallbackEvents is the fixed placeholder set returned when no event clears
// the threshold, dated to the given day so the feed still reads as "today".
func FallbackEvents(now time.Time) []core.HistoricalEvent {
	date := now.Format("January 2")
	return []core.HistoricalEvent{
		{
			Date:        date,
			Description: "The Paris Commune governs the city, the first seizure of power by the working class",
			Year:        1871,
		},
		{
			Date:        date,
			Description: "The October Revolution brings the Bolsheviks to power in Petrograd",
			Year:        1917,
		},
		{
			Date:        date,
			Description: "Construction of the Berlin Wall begins, dividing the city overnight",
			Year:        1961,
		},
	}
}
