package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"agentstudio-backend/models"
	"agentstudio-backend/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// publicLogLimit caps the log feed exposed on the public endpoint.
const publicLogLimit = 20

// liquidityPlaces is the scale of all liquidity arithmetic.
const liquidityPlaces = 4

// AgentService handles business logic for agents, commands, actions and
// the simulated market.
type AgentService struct {
	store store.Store
}

// AgentServiceOption is a functional option for AgentService
type AgentServiceOption func(*AgentService)

// WithAgentStore sets the backing store
func WithAgentStore(s store.Store) AgentServiceOption {
	return func(a *AgentService) {
		a.store = s
	}
}

// NewAgentService creates a new agent service
func NewAgentService(opts ...AgentServiceOption) *AgentService {
	s := &AgentService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AgentInput carries the fields of an agent upsert. Zero-valued fields are
// left untouched on merge.
type AgentInput struct {
	AgentID              string   `json:"agentId"`
	Name                 string   `json:"name"`
	Type                 string   `json:"type"`
	Category             string   `json:"category"`
	Ticker               string   `json:"ticker"`
	Supply               string   `json:"supply"`
	Liquidity            string   `json:"liquidity"`
	BondingCurveProgress *float64 `json:"bondingCurveProgress"`
	Status               string   `json:"status"`
}

// ListAgents returns the caller's agents in stored order.
func (s *AgentService) ListAgents(ctx context.Context, userID string) ([]models.Agent, error) {
	var out []models.Agent
	err := s.store.View(ctx, func(doc *models.Document) error {
		out = make([]models.Agent, 0)
		for _, a := range doc.Agents {
			if a.UserID == userID {
				out = append(out, a)
			}
		}
		return nil
	})
	return out, err
}

// UpsertAgent creates or merges an agent record. Identity is (agentId,
// userId) when the caller supplied an agentId, otherwise (name, userId);
// a match shallow-merges the incoming fields over the stored record. Every
// sync appends a log entry naming the agent's type and ticker.
func (s *AgentService) UpsertAgent(ctx context.Context, user *models.User, in AgentInput) (*models.Agent, error) {
	if in.Name == "" && in.AgentID == "" {
		return nil, errValidation("Agent name required")
	}

	liquidity := ""
	if in.Liquidity != "" {
		d, err := decimal.NewFromString(in.Liquidity)
		if err != nil {
			return nil, errValidation("Invalid liquidity value")
		}
		liquidity = d.StringFixed(liquidityPlaces)
	}

	now := time.Now().UTC()
	var result models.Agent
	err := s.store.Update(ctx, func(doc *models.Document) error {
		idx := -1
		for i, a := range doc.Agents {
			if a.UserID != user.ID {
				continue
			}
			if in.AgentID != "" {
				if a.AgentID == in.AgentID {
					idx = i
					break
				}
				continue
			}
			if a.Name == in.Name {
				idx = i
				break
			}
		}

		if idx < 0 {
			agent := models.Agent{
				ID:        uuid.NewString(),
				AgentID:   in.AgentID,
				UserID:    user.ID,
				Name:      in.Name,
				Type:      in.Type,
				Category:  in.Category,
				Ticker:    in.Ticker,
				Supply:    in.Supply,
				Liquidity: liquidity,
				Status:    models.AgentStatusActive,
				CreatedAt: now,
			}
			if agent.Liquidity == "" {
				agent.Liquidity = decimal.Zero.StringFixed(liquidityPlaces)
			}
			if in.Status != "" {
				agent.Status = models.AgentStatus(in.Status)
			}
			if in.BondingCurveProgress != nil {
				agent.BondingCurveProgress = *in.BondingCurveProgress
			}
			agent.SynchronizedAt = now
			doc.Agents = append(doc.Agents, agent)
			result = agent
		} else {
			agent := doc.Agents[idx]
			if in.Name != "" {
				agent.Name = in.Name
			}
			if in.Type != "" {
				agent.Type = in.Type
			}
			if in.Category != "" {
				agent.Category = in.Category
			}
			if in.Ticker != "" {
				agent.Ticker = in.Ticker
			}
			if in.Supply != "" {
				agent.Supply = in.Supply
			}
			if liquidity != "" {
				agent.Liquidity = liquidity
			}
			if in.Status != "" {
				agent.Status = models.AgentStatus(in.Status)
			}
			if in.BondingCurveProgress != nil {
				agent.BondingCurveProgress = *in.BondingCurveProgress
			}
			agent.SynchronizedAt = now
			doc.Agents[idx] = agent
			result = agent
		}

		doc.PrependLog(syncLog(result))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AgentConfig returns the owning user's AI and connector configuration for
// one of their agents.
func (s *AgentService) AgentConfig(ctx context.Context, user *models.User, agentID string) (*models.Settings, error) {
	found := false
	err := s.store.View(ctx, func(doc *models.Document) error {
		if findAgent(doc, user.ID, agentID) >= 0 {
			found = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	settings := user.Settings
	if settings.AI == nil {
		settings.AI = map[string]string{}
	}
	if settings.Connectors == nil {
		settings.Connectors = map[string]string{}
	}
	return &settings, nil
}

// IssueCommand records a remote directive against an agent: a pending
// command plus a log entry describing the dispatch.
func (s *AgentService) IssueCommand(ctx context.Context, user *models.User, agentID, command string) (*models.Log, *models.Command, error) {
	if agentID == "" || command == "" {
		return nil, nil, errValidation("agentId and command required")
	}

	var (
		entry models.Log
		cmd   models.Command
	)
	err := s.store.Update(ctx, func(doc *models.Document) error {
		idx := findAgent(doc, user.ID, agentID)
		if idx < 0 {
			return ErrNotFound
		}
		agent := doc.Agents[idx]

		entry = models.Log{
			ID:        uuid.NewString(),
			AgentName: agent.Name,
			Action:    fmt.Sprintf("Remote command issued: %s", command),
			Timestamp: time.Now().UTC(),
		}
		cmd = models.Command{
			ID:      uuid.NewString(),
			AgentID: agentID,
			Command: command,
			Status:  models.CommandStatusPending,
			UserID:  user.ID,
		}
		doc.PrependLog(entry)
		doc.Commands = append(doc.Commands, cmd)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &entry, &cmd, nil
}

// ListCommands returns every command recorded for an agent.
func (s *AgentService) ListCommands(ctx context.Context, agentID string) ([]models.Command, error) {
	var out []models.Command
	err := s.store.View(ctx, func(doc *models.Document) error {
		out = make([]models.Command, 0)
		for _, c := range doc.Commands {
			if c.AgentID == agentID {
				out = append(out, c)
			}
		}
		return nil
	})
	return out, err
}

// ResolveCommand flips a command's status, defaulting to "executed" when
// the caller does not supply one. There is no transition guard: a resolved
// command can be resolved again with a different status.
func (s *AgentService) ResolveCommand(ctx context.Context, commandID, status string) error {
	next := models.CommandStatus(status)
	if next == "" {
		next = models.CommandStatusExecuted
	}
	return s.store.Update(ctx, func(doc *models.Document) error {
		for i, c := range doc.Commands {
			if c.ID == commandID {
				doc.Commands[i].Status = next
				return nil
			}
		}
		return ErrNotFound
	})
}

// AdjustLiquidity applies `liquidity ± amount` as fixed-point decimal
// arithmetic on the agent's string-encoded balance, rounded to 4 places.
// The amount must be a finite positive number and a removal may not drive
// the balance negative.
func (s *AgentService) AdjustLiquidity(ctx context.Context, user *models.User, agentID string, amount float64, action string) (string, error) {
	if action != "add" && action != "remove" {
		return "", errValidation("action must be add or remove")
	}
	if err := validAmount(amount); err != nil {
		return "", err
	}
	delta := decimal.NewFromFloat(amount)

	var current string
	err := s.store.Update(ctx, func(doc *models.Document) error {
		idx := findAgent(doc, user.ID, agentID)
		if idx < 0 {
			return ErrNotFound
		}
		agent := doc.Agents[idx]

		balance := decimal.Zero
		if agent.Liquidity != "" {
			parsed, err := decimal.NewFromString(agent.Liquidity)
			if err == nil {
				balance = parsed
			}
		}

		if action == "add" {
			balance = balance.Add(delta)
		} else {
			balance = balance.Sub(delta)
			if balance.IsNegative() {
				return ErrInsufficientFunds
			}
		}

		agent.Liquidity = balance.StringFixed(liquidityPlaces)
		doc.Agents[idx] = agent
		current = agent.Liquidity

		doc.PrependLog(models.Log{
			ID:        uuid.NewString(),
			AgentName: agent.Name,
			Action:    fmt.Sprintf("Liquidity %s: %s BCH (now %s)", action, delta.StringFixed(liquidityPlaces), current),
			Timestamp: time.Now().UTC(),
		})
		return nil
	})
	if err != nil {
		return "", err
	}
	return current, nil
}

// ExecuteAction records a simulated autonomous execution for an agent and
// returns the audit record.
func (s *AgentService) ExecuteAction(ctx context.Context, user *models.User, agentID string, actionType string, payload json.RawMessage) (*models.Action, error) {
	typ := models.ActionType(actionType)
	if !models.ValidActionType(typ) {
		return nil, errValidation("type must be trade, rebalance or signal")
	}

	var record models.Action
	err := s.store.Update(ctx, func(doc *models.Document) error {
		idx := findAgent(doc, user.ID, agentID)
		if idx < 0 {
			return ErrNotFound
		}
		agent := doc.Agents[idx]

		record = models.Action{
			ID:        uuid.NewString(),
			AgentID:   agentID,
			AgentName: agent.Name,
			Type:      typ,
			Payload:   payload,
			Timestamp: time.Now().UTC(),
		}
		doc.Actions = append(doc.Actions, record)
		doc.PrependLog(models.Log{
			ID:        uuid.NewString(),
			AgentName: agent.Name,
			Action:    fmt.Sprintf("Executed autonomous %s action", typ),
			Timestamp: record.Timestamp,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarketInteract advances the agent's bonding-curve progress by amount*10,
// clamped at 100. Crossing 100 flips the agent's status to graduated.
func (s *AgentService) MarketInteract(ctx context.Context, user *models.User, agentID, action string, amount float64) (*models.Agent, error) {
	if action == "" {
		return nil, errValidation("action required")
	}
	if err := validAmount(amount); err != nil {
		return nil, err
	}

	var result models.Agent
	err := s.store.Update(ctx, func(doc *models.Document) error {
		idx := findAgent(doc, user.ID, agentID)
		if idx < 0 {
			return ErrNotFound
		}
		agent := doc.Agents[idx]

		agent.BondingCurveProgress += amount * 10
		if agent.BondingCurveProgress >= 100 {
			agent.BondingCurveProgress = 100
			agent.Status = models.AgentStatusGraduated
		}
		doc.Agents[idx] = agent
		result = agent

		doc.PrependLog(models.Log{
			ID:        uuid.NewString(),
			AgentName: agent.Name,
			Action:    fmt.Sprintf("Market interaction %s: bonding curve at %.0f%%", action, agent.BondingCurveProgress),
			Timestamp: time.Now().UTC(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// PublicAgents returns every agent across all users.
func (s *AgentService) PublicAgents(ctx context.Context) ([]models.Agent, error) {
	var out []models.Agent
	err := s.store.View(ctx, func(doc *models.Document) error {
		out = make([]models.Agent, len(doc.Agents))
		copy(out, doc.Agents)
		return nil
	})
	return out, err
}

// RecentLogs returns at most the latest 20 log entries, newest first.
func (s *AgentService) RecentLogs(ctx context.Context) ([]models.Log, error) {
	var out []models.Log
	err := s.store.View(ctx, func(doc *models.Document) error {
		n := len(doc.Logs)
		if n > publicLogLimit {
			n = publicLogLimit
		}
		out = make([]models.Log, n)
		copy(out, doc.Logs[:n])
		return nil
	})
	return out, err
}

// findAgent locates a user's agent by caller-supplied agentId or internal
// id. Returns -1 when no record matches. An empty agentID never matches:
// records created without a caller-supplied AgentID store "" there, and an
// empty lookup must not silently resolve to one of them.
func findAgent(doc *models.Document, userID, agentID string) int {
	if agentID == "" {
		return -1
	}
	for i, a := range doc.Agents {
		if a.UserID != userID {
			continue
		}
		if a.AgentID == agentID || a.ID == agentID {
			return i
		}
	}
	return -1
}

// validAmount rejects the NaN/negative inputs the original service let
// through into its balances.
func validAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return errValidation("amount must be a finite number")
	}
	if amount <= 0 {
		return errValidation("amount must be positive")
	}
	return nil
}

func syncLog(agent models.Agent) models.Log {
	action := fmt.Sprintf("Agent synchronized (type: %s)", agent.Type)
	if agent.Ticker != "" {
		action = fmt.Sprintf("Agent synchronized (type: %s, ticker: %s)", agent.Type, agent.Ticker)
	}
	return models.Log{
		ID:        uuid.NewString(),
		AgentName: agent.Name,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
}
