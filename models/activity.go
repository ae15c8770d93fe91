package models

import (
	"encoding/json"
	"time"
)

// CommandStatus represents the status of a remote command
type CommandStatus string

const (
	CommandStatusPending  CommandStatus = "pending"
	CommandStatusExecuted CommandStatus = "executed"
)

// Log is an append-only activity entry. Logs are stored newest-first and
// truncated to the most recent 20 when exposed publicly.
type Log struct {
	ID        string    `json:"id"`
	AgentName string    `json:"agentName"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// Command is a remote directive issued against an agent. It is created
// pending and later resolved with an explicit status or "executed".
type Command struct {
	ID      string        `json:"id"`
	AgentID string        `json:"agentId"`
	Command string        `json:"command"`
	Status  CommandStatus `json:"status"`
	UserID  string        `json:"userId"`
}

// ActionType classifies a simulated autonomous execution
type ActionType string

const (
	ActionTypeTrade     ActionType = "trade"
	ActionTypeRebalance ActionType = "rebalance"
	ActionTypeSignal    ActionType = "signal"
)

// ValidActionType reports whether t is one of the accepted action types.
func ValidActionType(t ActionType) bool {
	switch t {
	case ActionTypeTrade, ActionTypeRebalance, ActionTypeSignal:
		return true
	}
	return false
}

// Action is an append-only audit record of a simulated agent execution.
// Payload is opaque JSON supplied by the caller.
type Action struct {
	ID        string          `json:"id"`
	AgentID   string          `json:"agentId"`
	AgentName string          `json:"agentName"`
	Type      ActionType      `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}
