package provider

import "context"

// ProbeResult is the outcome of a connector handshake test.
type ProbeResult struct {
	Success bool   `json:"success"`
	Latency int64  `json:"latency"`
	Message string `json:"message"`
}

// AIProvider is the external AI integration used by the settings
// test-connector flow. Probe performs a handshake against the configured
// provider and reports success and round-trip latency in milliseconds.
type AIProvider interface {
	// Name identifies the provider implementation
	Name() string

	// Probe tests the connection using the user's AI configuration
	// (provider, apiKey, model keys).
	Probe(ctx context.Context, cfg map[string]string) (*ProbeResult, error)
}

// DexPair is one entry of the exchange pair listing.
type DexPair struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Ticker      string  `json:"ticker"`
	Price       string  `json:"price"`
	MarketCap   string  `json:"marketCap"`
	Change24h   string  `json:"change24h"`
	Holders     int     `json:"holders"`
	Volume24h   string  `json:"volume24h"`
	Description string  `json:"description"`
	RiskScore   float64 `json:"riskScore"`
}

// ChainData is the on-chain market data capability. The demo deployment
// serves a simulated pair list; a real deployment would back this with an
// indexer or DEX API.
type ChainData interface {
	DexPairs(ctx context.Context) ([]DexPair, error)
}
