package tools

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/elC0mpa/ec2-observe/cmd/mcp/response"
	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/costs"
	"github.com/elC0mpa/ec2-observe/service/dashboard"
	"github.com/elC0mpa/ec2-observe/service/preferences"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	err      error
	released int
}

func (f *fakeSource) Dashboard(_ context.Context, _ string) (dashboard.DashboardService, func(), error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	svc := dashboard.NewService(
		dashboard.WithRand(rand.New(rand.NewSource(7))),
		dashboard.WithClock(func() time.Time { return time.Date(2025, 4, 15, 12, 0, 0, 0, time.UTC) }),
	)
	return svc, func() { f.released++ }, nil
}

type fakeInventory struct{}

func (fakeInventory) Configured() []string { return []string{"aws", "azure"} }

func (fakeInventory) Inventory(_ context.Context, names []string) []model.ProviderInventoryResult {
	return []model.ProviderInventoryResult{
		{Provider: names[0], Instances: costs.SampleInstances(), Breakdown: costs.FromInstances(costs.SampleInstances(), model.DimensionRegion)},
		{Provider: names[1], Error: errors.New("subscription not configured")},
	}
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func decode[T any](t *testing.T, result *mcp.CallToolResult) T {
	t.Helper()
	require.False(t, result.IsError, resultText(t, result))
	var out T
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	return out
}

func TestCostBreakdownTool(t *testing.T) {
	source := &fakeSource{}
	handler := withDashboard(source, "aws", costBreakdownHandler)

	result, err := handler(context.Background(), callRequest(map[string]any{"dimension": "instanceType"}))
	require.NoError(t, err)

	got := decode[response.CostBreakdown](t, result)
	assert.Equal(t, "instanceType", got.Dimension)
	assert.NotEmpty(t, got.Groups)
	assert.Greater(t, got.KPIs.TotalMonthly, 0.0)
	assert.Equal(t, 1, source.released)
}

func TestCostBreakdownToolRejectsUnknownDimension(t *testing.T) {
	handler := withDashboard(&fakeSource{}, "aws", costBreakdownHandler)

	result, err := handler(context.Background(), callRequest(map[string]any{"dimension": "colour"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "failed to get cost breakdown")
}

func TestCostTrendTool(t *testing.T) {
	handler := withDashboard(&fakeSource{}, "gcp", costTrendHandler)

	result, err := handler(context.Background(), callRequest(map[string]any{"period": "7d"}))
	require.NoError(t, err)
	got := decode[response.CostTrend](t, result)
	assert.Equal(t, "7d", got.Period)
	assert.Len(t, got.Days, 7)

	result, err = handler(context.Background(), callRequest(map[string]any{"period": "1y"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestInstancesTool(t *testing.T) {
	handler := withDashboard(&fakeSource{}, "aws", instancesHandler)

	result, err := handler(context.Background(), callRequest(map[string]any{"filters": "state=stopped"}))
	require.NoError(t, err)
	got := decode[response.InstanceList](t, result)
	assert.Equal(t, got.Matched, len(got.Instances))
	for _, i := range got.Instances {
		assert.Equal(t, "stopped", i.State)
	}

	result, err = handler(context.Background(), callRequest(nil))
	require.NoError(t, err)
	all := decode[response.InstanceList](t, result)
	assert.Equal(t, all.Total, all.Matched)
}

func TestInstancesToolRejectsBadFilters(t *testing.T) {
	handler := withDashboard(&fakeSource{}, "aws", instancesHandler)

	for _, filters := range []string{"colour=red", "state"} {
		result, err := handler(context.Background(), callRequest(map[string]any{"filters": filters}))
		require.NoError(t, err)
		assert.True(t, result.IsError, filters)
	}
}

func TestWasteTool(t *testing.T) {
	handler := withDashboard(&fakeSource{}, "azure", wasteHandler)

	result, err := handler(context.Background(), callRequest(map[string]any{"min_level": "critical"}))
	require.NoError(t, err)
	got := decode[response.WasteReport](t, result)
	for _, r := range got.Recommendations {
		assert.Equal(t, "critical", r.WasteLevel)
	}

	result, err = handler(context.Background(), callRequest(nil))
	require.NoError(t, err)
	for _, r := range decode[response.WasteReport](t, result).Recommendations {
		assert.NotEqual(t, "good", r.WasteLevel)
	}

	result, err = handler(context.Background(), callRequest(map[string]any{"min_level": "good"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestTimelineTool(t *testing.T) {
	handler := withDashboard(&fakeSource{}, "aws", timelineHandler)

	result, err := handler(context.Background(), callRequest(map[string]any{"instance_id": "i-0abcdef0", "period": "1h"}))
	require.NoError(t, err)
	got := decode[response.Timeline](t, result)
	assert.Equal(t, "i-0abcdef0", got.InstanceID)
	assert.Equal(t, "1h", got.Period)
	assert.NotEmpty(t, got.Points)

	result, err = handler(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = handler(context.Background(), callRequest(map[string]any{"instance_id": "i-1", "period": "2w"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestDashboardSourceFailure(t *testing.T) {
	handler := withDashboard(&fakeSource{err: errors.New("no credentials")}, "aws", costTrendHandler)

	result, err := handler(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "Failed to configure aws: no credentials", resultText(t, result))
}

func TestFilterStateTools(t *testing.T) {
	store := preferences.NewMemoryStore()
	update := makeUpdateFilterStateHandler(store)
	get := makeFilterStateHandler(store)
	ctx := context.Background()

	result, err := update(ctx, callRequest(map[string]any{"action": "apply", "category": "region", "value": "eu-west-1"}))
	require.NoError(t, err)
	updated := decode[response.FilterState](t, result)
	assert.Equal(t, 2, updated.ActiveCount)

	result, err = get(ctx, callRequest(nil))
	require.NoError(t, err)
	assert.Equal(t, updated, decode[response.FilterState](t, result))

	result, err = update(ctx, callRequest(map[string]any{"action": "clear"}))
	require.NoError(t, err)
	assert.Zero(t, decode[response.FilterState](t, result).ActiveCount)
}

func TestUpdateFilterStateRejectsInvalidInput(t *testing.T) {
	update := makeUpdateFilterStateHandler(preferences.NewMemoryStore())

	for _, args := range []map[string]any{
		nil,
		{"action": "explode"},
		{"action": "apply", "category": "colour", "value": "red"},
		{"action": "apply", "category": "region"},
	} {
		result, err := update(context.Background(), callRequest(args))
		require.NoError(t, err)
		assert.True(t, result.IsError, args)
	}
}

func TestMultiCloudInventoryTool(t *testing.T) {
	handler := makeMultiCloudInventoryHandler(fakeInventory{})

	result, err := handler(context.Background(), callRequest(nil))
	require.NoError(t, err)
	got := decode[response.MultiCloudInventory](t, result)

	require.Len(t, got.Providers, 2)
	assert.Equal(t, "aws", got.Providers[0].Provider)
	assert.Equal(t, len(costs.SampleInstances()), got.Instances)
	assert.Equal(t, "subscription not configured", got.Providers[1].Error)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"us-east-1", "eu-west-1"}, splitList(" us-east-1, ,eu-west-1 "))
}
