package provider

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// MockAIProvider simulates a provider handshake without any outbound call.
// Latency is synthesized in the 20-170ms range and success depends only on
// whether an API key is configured.
type MockAIProvider struct {
	mu  sync.Mutex
	rng *rand.Rand

	// sleep is swapped out in tests to avoid real delays
	sleep func(ctx context.Context, d time.Duration) error
}

// NewMockAIProvider creates a mock provider seeded from the current time.
func NewMockAIProvider() *MockAIProvider {
	return &MockAIProvider{
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep: sleepCtx,
	}
}

// Name identifies the provider implementation
func (p *MockAIProvider) Name() string {
	return "mock"
}

// Probe synthesizes a handshake result from the configuration alone.
func (p *MockAIProvider) Probe(ctx context.Context, cfg map[string]string) (*ProbeResult, error) {
	p.mu.Lock()
	latency := 20 + p.rng.Int63n(151)
	p.mu.Unlock()

	if err := p.sleep(ctx, time.Duration(latency)*time.Millisecond); err != nil {
		return nil, err
	}

	name := cfg["provider"]
	if name == "" {
		name = "AI provider"
	}
	if cfg["apiKey"] == "" {
		return &ProbeResult{
			Success: false,
			Latency: latency,
			Message: fmt.Sprintf("%s handshake failed: no API key configured", name),
		}, nil
	}
	return &ProbeResult{
		Success: true,
		Latency: latency,
		Message: fmt.Sprintf("%s handshake OK", name),
	}, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
