package models

import "time"

// AgentStatus represents the lifecycle status of an agent
type AgentStatus string

const (
	AgentStatusActive    AgentStatus = "active"
	AgentStatusInactive  AgentStatus = "inactive"
	AgentStatusOnline    AgentStatus = "online"
	AgentStatusGraduated AgentStatus = "graduated"
)

// Agent represents a user-owned autonomous bot record. The tokenomics
// fields (Ticker, Supply, Liquidity, BondingCurveProgress) are optional
// and only present for agents created through the token launchpad flow.
type Agent struct {
	ID                   string      `json:"id"`
	AgentID              string      `json:"agentId,omitempty"`
	UserID               string      `json:"userId"`
	Name                 string      `json:"name"`
	Type                 string      `json:"type"`
	Category             string      `json:"category,omitempty"`
	Ticker               string      `json:"ticker,omitempty"`
	Supply               string      `json:"supply,omitempty"`
	Liquidity            string      `json:"liquidity,omitempty"`
	BondingCurveProgress float64     `json:"bondingCurveProgress"`
	Status               AgentStatus `json:"status,omitempty"`
	CreatedAt            time.Time   `json:"createdAt"`
	SynchronizedAt       time.Time   `json:"synchronizedAt"`
}

// Wallet represents a personal or agent-managed wallet. Uniqueness is by
// (address, userId); re-submission merges fields into the existing record.
type Wallet struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Name           string    `json:"name,omitempty"`
	Address        string    `json:"address"`
	Balance        string    `json:"balance,omitempty"`
	AgentID        string    `json:"agentId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	SynchronizedAt time.Time `json:"synchronizedAt"`
}
