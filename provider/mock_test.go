package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFastMock() *MockAIProvider {
	p := NewMockAIProvider()
	p.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return p
}

func TestMockProbeLatencyRange(t *testing.T) {
	p := newFastMock()
	cfg := map[string]string{"provider": "openai", "apiKey": "sk-test"}

	for i := 0; i < 100; i++ {
		result, err := p.Probe(context.Background(), cfg)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Latency, int64(20))
		assert.LessOrEqual(t, result.Latency, int64(170))
	}
}

func TestMockProbeSuccessDependsOnAPIKey(t *testing.T) {
	p := newFastMock()
	ctx := context.Background()

	result, err := p.Probe(ctx, map[string]string{"provider": "openai"})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "no API key")

	result, err = p.Probe(ctx, map[string]string{"provider": "openai", "apiKey": "sk-test"})
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestMockProbeHonorsCancellation(t *testing.T) {
	p := NewMockAIProvider()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Probe(ctx, map[string]string{"apiKey": "sk-test"})
	assert.Error(t, err)
}

func TestMockChainDataPairs(t *testing.T) {
	chain := NewMockChainData()

	pairs, err := chain.DexPairs(context.Background())
	require.NoError(t, err)
	require.Len(t, pairs, 4)

	tickers := make([]string, 0, len(pairs))
	for _, p := range pairs {
		tickers = append(tickers, p.Ticker)
		assert.NotEmpty(t, p.Price)
		assert.NotEmpty(t, p.Change24h)
	}
	assert.Equal(t, []string{"ALPHA", "SENTI", "OMNI", "WRITER"}, tickers)
}
