package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiDefaultModel = "gemini-1.5-flash"

// GeminiAIProvider performs a real handshake against the Gemini API. The
// user's API key from settings takes precedence over the server-wide key.
type GeminiAIProvider struct {
	apiKey string
}

// NewGeminiAIProvider creates a Gemini-backed provider with a server-wide
// fallback API key (may be empty).
func NewGeminiAIProvider(apiKey string) *GeminiAIProvider {
	return &GeminiAIProvider{apiKey: apiKey}
}

// Name identifies the provider implementation
func (p *GeminiAIProvider) Name() string {
	return "gemini"
}

// Probe counts tokens on a one-word prompt as a cheap authenticated
// round-trip and measures the elapsed time.
func (p *GeminiAIProvider) Probe(ctx context.Context, cfg map[string]string) (*ProbeResult, error) {
	key := cfg["apiKey"]
	if key == "" {
		key = p.apiKey
	}
	started := time.Now()
	if key == "" {
		return &ProbeResult{
			Success: false,
			Latency: time.Since(started).Milliseconds(),
			Message: "gemini handshake failed: no API key configured",
		}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return &ProbeResult{
			Success: false,
			Latency: time.Since(started).Milliseconds(),
			Message: fmt.Sprintf("gemini handshake failed: %v", err),
		}, nil
	}
	defer client.Close()

	modelName := cfg["model"]
	if modelName == "" {
		modelName = geminiDefaultModel
	}

	model := client.GenerativeModel(modelName)
	if _, err := model.CountTokens(ctx, genai.Text("ping")); err != nil {
		return &ProbeResult{
			Success: false,
			Latency: time.Since(started).Milliseconds(),
			Message: fmt.Sprintf("gemini handshake failed: %v", err),
		}, nil
	}

	return &ProbeResult{
		Success: true,
		Latency: time.Since(started).Milliseconds(),
		Message: fmt.Sprintf("gemini handshake OK (%s)", modelName),
	}, nil
}
