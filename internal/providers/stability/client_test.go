package stability

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/kommissar/internal/core"
)

const testEngine = "stable-diffusion-xl-1024-v1-0"

func TestGenerateImage(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("fake png bytes"))

	var gotPath, gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprintf(w, `{"artifacts": [{"base64": %q}]}`, encoded)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testEngine)
	prompt := core.StabilityPrompt{Prompt: "a scene", NegativePrompt: "no watermarks"}

	uri, err := client.GenerateImage(context.Background(), prompt)
	require.NoError(t, err)

	assert.Equal(t, "data:image/png;base64,"+encoded, uri)
	assert.Equal(t, "/v1/generation/"+testEngine+"/text-to-image", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)

	assert.Equal(t, float64(7), gotBody["cfg_scale"])
	assert.Equal(t, float64(1024), gotBody["height"])
	assert.Equal(t, float64(1024), gotBody["width"])
	assert.Equal(t, float64(30), gotBody["steps"])
	assert.Equal(t, float64(1), gotBody["samples"])

	prompts, ok := gotBody["text_prompts"].([]any)
	require.True(t, ok)
	require.Len(t, prompts, 2)
	positive := prompts[0].(map[string]any)
	negative := prompts[1].(map[string]any)
	assert.Equal(t, "a scene", positive["text"])
	assert.Equal(t, float64(1), positive["weight"])
	assert.Equal(t, "no watermarks", negative["text"])
	assert.Equal(t, float64(-1), negative["weight"])
}

func TestGenerateImage_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"message": "invalid prompt"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testEngine)
	_, err := client.GenerateImage(context.Background(), core.StabilityPrompt{Prompt: "x"})
	require.Error(t, err)

	var genErr *core.ImageGenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, http.StatusBadRequest, genErr.StatusCode)
	assert.Equal(t, "invalid prompt", genErr.Message)
}

func TestGenerateImage_NoArtifacts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"artifacts": []}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testEngine)
	_, err := client.GenerateImage(context.Background(), core.StabilityPrompt{Prompt: "x"})

	var genErr *core.ImageGenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "no image data in response", genErr.Message)
}

func TestGenerateImage_BadBase64(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"artifacts": [{"base64": "%%% not base64 %%%"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testEngine)
	_, err := client.GenerateImage(context.Background(), core.StabilityPrompt{Prompt: "x"})
	assert.ErrorIs(t, err, core.ErrImageDecode)
}
