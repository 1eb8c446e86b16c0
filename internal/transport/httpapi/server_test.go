package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sandevgo/kommissar/internal/core"
	"github.com/sandevgo/kommissar/internal/service/digest"
)

type stubSource struct{ events []core.RawEvent }

func (s *stubSource) FetchEvents(ctx context.Context, month, day int) ([]core.RawEvent, error) {
	return s.events, nil
}

type stubGenerator struct{}

func (stubGenerator) GenerateImage(ctx context.Context, prompt core.StabilityPrompt) (string, error) {
	return "data:image/png;base64,AAAA", nil
}

func newTestServer(t *testing.T) (*httptest.Server, *digest.Service) {
	t.Helper()
	source := &stubSource{events: []core.RawEvent{
		{Date: "November 7", Text: "Communist uprising in Petrograd", Year: "1917"},
	}}
	service := digest.NewService(source, stubGenerator{}, nil)
	if err := service.Load(context.Background(), 11, 7); err != nil {
		t.Fatalf("Load: %v", err)
	}

	api := NewServer(":0", service)
	ts := httptest.NewServer(api.handler())
	t.Cleanup(ts.Close)
	return ts, service
}

func TestHandleDigest(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/digest")
	if err != nil {
		t.Fatalf("GET /api/digest: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var state digest.State
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(state.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(state.Events))
	}
	if state.Events[0].Event.Description != "Communist uprising in Petrograd" {
		t.Errorf("unexpected event: %+v", state.Events[0])
	}
}

func TestHandleRetryImage(t *testing.T) {
	ts, service := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/digest/events/0/image", "application/json", nil)
	if err != nil {
		t.Fatalf("POST retry: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var state digest.EventState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.Event.ImageURL == "" {
		t.Error("retry did not produce an image")
	}
	if service.Snapshot().Events[0].Event.ImageURL == "" {
		t.Error("service state not updated")
	}
}

func TestHandleRetryImageOutOfRange(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/digest/events/7/image", "application/json", nil)
	if err != nil {
		t.Fatalf("POST retry: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestHandleShare(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/digest/events/0/share")
	if err != nil {
		t.Fatalf("GET share: %v", err)
	}
	defer resp.Body.Close()

	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(payload["text"], "1917: Communist uprising in Petrograd") {
		t.Errorf("share text = %q", payload["text"])
	}
	if !strings.Contains(payload["text"], "Shared from Kommissar's Digest") {
		t.Errorf("share text missing attribution: %q", payload["text"])
	}
}

func TestHandleRefreshAccepted(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/digest/refresh", "application/json", nil)
	if err != nil {
		t.Fatalf("POST refresh: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		t.Errorf("status = %d, want 202", resp.StatusCode)
	}
}
