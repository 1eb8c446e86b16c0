package relevance

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/sandevgo/kommissar/internal/core"
)

func TestFilterRetainsAndSorts(t *testing.T) {
	ctx := context.Background()
	raw := []core.RawEvent{
		{Date: "November 7", Text: "Lenin spoke to the crowd", Year: "1917"},
		{Date: "November 7", Text: "A new bridge opened in town", Year: "1905"},
		{Date: "November 7", Text: "Communist uprising in Petrograd", Year: "1917"},
		{Date: "November 7", Text: "Stalin addressed the delegates", Year: "1936"},
	}

	events := Filter(ctx, raw)

	want := []core.HistoricalEvent{
		{Date: "November 7", Description: "Communist uprising in Petrograd", Year: 1917},
		{Date: "November 7", Description: "Lenin spoke to the crowd", Year: 1917},
		{Date: "November 7", Description: "Stalin addressed the delegates", Year: 1936},
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("Filter() = %+v, want %+v", events, want)
	}
}

func TestFilterStableOnEqualScores(t *testing.T) {
	ctx := context.Background()
	// Both score exactly 2 (one leader exact match); input order must hold.
	raw := []core.RawEvent{
		{Date: "March 5", Text: "Stalin gave a speech", Year: "1946"},
		{Date: "March 5", Text: "Trotsky gave a speech", Year: "1927"},
	}

	events := Filter(ctx, raw)

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Description != "Stalin gave a speech" || events[1].Description != "Trotsky gave a speech" {
		t.Errorf("equal-score events reordered: %+v", events)
	}
}

func TestFilterFallback(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		raw  []core.RawEvent
	}{
		{"empty batch", nil},
		{
			"all below threshold",
			[]core.RawEvent{
				{Date: "June 1", Text: "A famous painter was born", Year: "1844"},
				{Date: "June 1", Text: "A great war began in Europe", Year: "1914"},
			},
		},
		{
			"retained event with unparsable year",
			[]core.RawEvent{
				{Date: "June 1", Text: "Communist party founded", Year: "circa 1921"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := Filter(ctx, tt.raw)
			if len(events) == 0 {
				t.Fatal("Filter must never return an empty sequence")
			}
			for _, e := range events {
				if e.Description == "" || e.Year == 0 {
					t.Errorf("fallback event missing content: %+v", e)
				}
			}
		})
	}
}

func TestFallbackEvents(t *testing.T) {
	now := time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC)
	first := FallbackEvents(now)
	second := FallbackEvents(now)

	if !reflect.DeepEqual(first, second) {
		t.Error("fallback set must be deterministic for a fixed day")
	}
	if len(first) == 0 {
		t.Fatal("fallback set must not be empty")
	}
	for _, e := range first {
		if e.Date != "March 5" {
			t.Errorf("fallback event dated %q, want %q", e.Date, "March 5")
		}
		if e.ImageURL != "" {
			t.Errorf("fallback event must start without an image: %+v", e)
		}
	}
}
