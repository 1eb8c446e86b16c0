// Package stability implements the Stability AI text-to-image client. One
// request per event, never retried automatically: the API is paid, retries
// are user-triggered.
package stability

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandevgo/kommissar/internal/core"
)

type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	engine  string
}

func NewClient(baseURL, apiKey, engine string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		engine:  engine,
	}
}

type textPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

// GenerateImage renders the prompt pair into a PNG and returns it as a data
// URI. Non-2xx responses and empty artifact lists surface as
// *core.ImageGenerationError with the upstream message when present.
func (c *Client) GenerateImage(ctx context.Context, prompt core.StabilityPrompt) (string, error) {
	payload := map[string]any{
		"text_prompts": []textPrompt{
			{Text: prompt.Prompt, Weight: 1},
			{Text: prompt.NegativePrompt, Weight: -1},
		},
		"cfg_scale": 7,
		"height":    1024,
		"width":     1024,
		"steps":     30,
		"samples":   1,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}

	url := fmt.Sprintf("%s/v1/generation/%s/text-to-image", c.baseURL, c.engine)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var upstream struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(data, &upstream)
		return "", &core.ImageGenerationError{StatusCode: resp.StatusCode, Message: upstream.Message}
	}

	var result struct {
		Artifacts []struct {
			Base64 string `json:"base64"`
		} `json:"artifacts"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if len(result.Artifacts) == 0 || result.Artifacts[0].Base64 == "" {
		return "", &core.ImageGenerationError{StatusCode: resp.StatusCode, Message: "no image data in response"}
	}

	encoded := result.Artifacts[0].Base64
	if _, err := base64.StdEncoding.DecodeString(encoded); err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrImageDecode, err)
	}

	return "data:image/png;base64," + encoded, nil
}
