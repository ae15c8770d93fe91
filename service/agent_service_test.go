package service

import (
	"context"
	"fmt"
	"testing"

	"agentstudio-backend/models"
	"agentstudio-backend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAgentFixture(t *testing.T) (*AgentService, *models.User, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	auth := NewAuthService(WithAuthStore(st))
	user, err := auth.Register(context.Background(), "owner@example.com", "secret123")
	require.NoError(t, err)
	return NewAgentService(WithAgentStore(st)), user, st
}

func TestUpsertAgentMergesByNameAndOwner(t *testing.T) {
	agents, user, st := newAgentFixture(t)
	ctx := context.Background()

	first, err := agents.UpsertAgent(ctx, user, AgentInput{Name: "Alpha", Type: "trader"})
	require.NoError(t, err)
	assert.Equal(t, "0.0000", first.Liquidity)
	assert.Equal(t, models.AgentStatusActive, first.Status)

	second, err := agents.UpsertAgent(ctx, user, AgentInput{Name: "Alpha", Type: "arbitrage", Ticker: "ALP"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "arbitrage", second.Type)
	assert.Equal(t, "ALP", second.Ticker)

	err = st.View(ctx, func(doc *models.Document) error {
		assert.Len(t, doc.Agents, 1, "upsert must not duplicate the agent")
		return nil
	})
	require.NoError(t, err)
}

func TestUpsertAgentMatchesByAgentID(t *testing.T) {
	agents, user, st := newAgentFixture(t)
	ctx := context.Background()

	_, err := agents.UpsertAgent(ctx, user, AgentInput{AgentID: "ag-001", Name: "Alpha", Type: "trader"})
	require.NoError(t, err)

	renamed, err := agents.UpsertAgent(ctx, user, AgentInput{AgentID: "ag-001", Name: "Alpha Prime"})
	require.NoError(t, err)
	assert.Equal(t, "Alpha Prime", renamed.Name)

	err = st.View(ctx, func(doc *models.Document) error {
		assert.Len(t, doc.Agents, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestUpsertAgentAppendsSyncLog(t *testing.T) {
	agents, user, st := newAgentFixture(t)
	ctx := context.Background()

	_, err := agents.UpsertAgent(ctx, user, AgentInput{Name: "Alpha", Type: "trader", Ticker: "ALP"})
	require.NoError(t, err)

	err = st.View(ctx, func(doc *models.Document) error {
		require.NotEmpty(t, doc.Logs)
		entry := doc.Logs[0]
		assert.Equal(t, "Alpha", entry.AgentName)
		assert.Contains(t, entry.Action, "trader")
		assert.Contains(t, entry.Action, "ALP")
		return nil
	})
	require.NoError(t, err)
}

func TestAdjustLiquiditySequence(t *testing.T) {
	agents, user, _ := newAgentFixture(t)
	ctx := context.Background()

	agent, err := agents.UpsertAgent(ctx, user, AgentInput{Name: "Alpha", Type: "trader"})
	require.NoError(t, err)

	current, err := agents.AdjustLiquidity(ctx, user, agent.ID, 0.5, "add")
	require.NoError(t, err)
	assert.Equal(t, "0.5000", current)

	current, err = agents.AdjustLiquidity(ctx, user, agent.ID, 0.2, "remove")
	require.NoError(t, err)
	assert.Equal(t, "0.3000", current)
}

func TestAdjustLiquidityValidation(t *testing.T) {
	agents, user, _ := newAgentFixture(t)
	ctx := context.Background()

	agent, err := agents.UpsertAgent(ctx, user, AgentInput{Name: "Alpha", Type: "trader"})
	require.NoError(t, err)

	_, err = agents.AdjustLiquidity(ctx, user, agent.ID, -1, "add")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = agents.AdjustLiquidity(ctx, user, agent.ID, 0.5, "double")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = agents.AdjustLiquidity(ctx, user, agent.ID, 1, "remove")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	_, err = agents.AdjustLiquidity(ctx, user, "missing", 1, "add")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarketInteractClampAndGraduate(t *testing.T) {
	agents, user, _ := newAgentFixture(t)
	ctx := context.Background()

	progress := 95.0
	agent, err := agents.UpsertAgent(ctx, user, AgentInput{
		Name:                 "Alpha",
		Type:                 "trader",
		BondingCurveProgress: &progress,
	})
	require.NoError(t, err)

	updated, err := agents.MarketInteract(ctx, user, agent.ID, "buy_nft", 1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, updated.BondingCurveProgress)
	assert.Equal(t, models.AgentStatusGraduated, updated.Status)
}

func TestMarketInteractValidation(t *testing.T) {
	agents, user, _ := newAgentFixture(t)
	ctx := context.Background()

	agent, err := agents.UpsertAgent(ctx, user, AgentInput{Name: "Alpha", Type: "trader"})
	require.NoError(t, err)

	_, err = agents.MarketInteract(ctx, user, agent.ID, "buy_nft", 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = agents.MarketInteract(ctx, user, agent.ID, "", 1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMarketInteractEmptyAgentID(t *testing.T) {
	agents, user, st := newAgentFixture(t)
	ctx := context.Background()

	// a record created without a caller-supplied agentId stores "" there;
	// an empty lookup must not resolve to it
	_, err := agents.UpsertAgent(ctx, user, AgentInput{Name: "Alpha", Type: "trader"})
	require.NoError(t, err)

	_, err = agents.MarketInteract(ctx, user, "", "buy_nft", 1)
	assert.ErrorIs(t, err, ErrNotFound)

	err = st.View(ctx, func(doc *models.Document) error {
		require.Len(t, doc.Agents, 1)
		assert.Zero(t, doc.Agents[0].BondingCurveProgress)
		assert.Equal(t, models.AgentStatusActive, doc.Agents[0].Status)
		return nil
	})
	require.NoError(t, err)
}

func TestCommandLifecycle(t *testing.T) {
	agents, user, st := newAgentFixture(t)
	ctx := context.Background()

	agent, err := agents.UpsertAgent(ctx, user, AgentInput{AgentID: "ag-001", Name: "Alpha", Type: "trader"})
	require.NoError(t, err)

	entry, cmd, err := agents.IssueCommand(ctx, user, agent.AgentID, "rebalance portfolio")
	require.NoError(t, err)
	assert.Equal(t, models.CommandStatusPending, cmd.Status)
	assert.Contains(t, entry.Action, "rebalance portfolio")

	listed, err := agents.ListCommands(ctx, agent.AgentID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, agents.ResolveCommand(ctx, cmd.ID, ""))
	listed, err = agents.ListCommands(ctx, agent.AgentID)
	require.NoError(t, err)
	assert.Equal(t, models.CommandStatusExecuted, listed[0].Status)

	// no transition guard: a resolved command can be resolved again
	require.NoError(t, agents.ResolveCommand(ctx, cmd.ID, "failed"))
	listed, err = agents.ListCommands(ctx, agent.AgentID)
	require.NoError(t, err)
	assert.Equal(t, models.CommandStatus("failed"), listed[0].Status)

	err = st.View(ctx, func(doc *models.Document) error {
		assert.Len(t, doc.Commands, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestResolveCommandUnknownID(t *testing.T) {
	agents, user, st := newAgentFixture(t)
	ctx := context.Background()

	_, err := agents.UpsertAgent(ctx, user, AgentInput{Name: "Alpha", Type: "trader"})
	require.NoError(t, err)

	err = agents.ResolveCommand(ctx, "missing", "executed")
	require.ErrorIs(t, err, ErrNotFound)

	err = st.View(ctx, func(doc *models.Document) error {
		assert.Empty(t, doc.Commands)
		return nil
	})
	require.NoError(t, err)
}

func TestExecuteActionRecordsAudit(t *testing.T) {
	agents, user, st := newAgentFixture(t)
	ctx := context.Background()

	agent, err := agents.UpsertAgent(ctx, user, AgentInput{Name: "Alpha", Type: "trader"})
	require.NoError(t, err)

	record, err := agents.ExecuteAction(ctx, user, agent.ID, "trade", []byte(`{"pair":"BCH/USDT"}`))
	require.NoError(t, err)
	assert.Equal(t, models.ActionTypeTrade, record.Type)
	assert.Equal(t, "Alpha", record.AgentName)

	_, err = agents.ExecuteAction(ctx, user, agent.ID, "explode", nil)
	assert.ErrorIs(t, err, ErrValidation)

	err = st.View(ctx, func(doc *models.Document) error {
		assert.Len(t, doc.Actions, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestRecentLogsCappedAndNewestFirst(t *testing.T) {
	agents, user, _ := newAgentFixture(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := agents.UpsertAgent(ctx, user, AgentInput{Name: fmt.Sprintf("Agent %02d", i), Type: "trader"})
		require.NoError(t, err)
	}

	logs, err := agents.RecentLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 20)
	assert.Equal(t, "Agent 24", logs[0].AgentName, "latest entry first")
	assert.Equal(t, "Agent 05", logs[19].AgentName)
}

func TestListAgentsScopedToOwner(t *testing.T) {
	st := store.NewMemoryStore()
	auth := NewAuthService(WithAuthStore(st))
	agents := NewAgentService(WithAgentStore(st))
	ctx := context.Background()

	alice, err := auth.Register(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	bob, err := auth.Register(ctx, "bob@example.com", "secret123")
	require.NoError(t, err)

	_, err = agents.UpsertAgent(ctx, alice, AgentInput{Name: "Alpha", Type: "trader"})
	require.NoError(t, err)
	_, err = agents.UpsertAgent(ctx, bob, AgentInput{Name: "Beta", Type: "signal"})
	require.NoError(t, err)

	mine, err := agents.ListAgents(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Alpha", mine[0].Name)

	everyone, err := agents.PublicAgents(ctx)
	require.NoError(t, err)
	assert.Len(t, everyone, 2)
}
