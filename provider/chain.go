package provider

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// MockChainData serves a simulated DEX pair listing. Base prices are fixed
// and each call applies a small random walk so the board looks alive.
type MockChainData struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockChainData creates a chain-data mock seeded from the current time.
func NewMockChainData() *MockChainData {
	return &MockChainData{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

var basePairs = []DexPair{
	{ID: "1", Name: "Alpha Trader", Ticker: "ALPHA", Price: "14.20 BCH", MarketCap: "14,200 BCH", Change24h: "+12.5%", Holders: 128, Volume24h: "450 BCH", Description: "High-frequency arbitrage trading agent.", RiskScore: 24},
	{ID: "2", Name: "Sentiment Bot", Ticker: "SENTI", Price: "5.40 BCH", MarketCap: "5,400 BCH", Change24h: "-2.1%", Holders: 85, Volume24h: "120 BCH", Description: "Social media sentiment analysis and reporting.", RiskScore: 12},
	{ID: "3", Name: "DeFi Omni", Ticker: "OMNI", Price: "42.00 BCH", MarketCap: "42,000 BCH", Change24h: "+5.8%", Holders: 342, Volume24h: "1,200 BCH", Description: "Cross-protocol yield farming optimizer.", RiskScore: 45},
	{ID: "4", Name: "Content Gen", Ticker: "WRITER", Price: "2.10 BCH", MarketCap: "2,100 BCH", Change24h: "+0.5%", Holders: 42, Volume24h: "15 BCH", Description: "Autonomous content generation for blogs.", RiskScore: 8},
}

// DexPairs returns the simulated pair list with jittered 24h change.
func (m *MockChainData) DexPairs(ctx context.Context) ([]DexPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pairs := make([]DexPair, len(basePairs))
	copy(pairs, basePairs)
	for i := range pairs {
		change := m.rng.Float64()*30 - 15
		pairs[i].Change24h = fmt.Sprintf("%+.1f%%", change)
	}
	return pairs, nil
}
