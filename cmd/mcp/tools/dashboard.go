package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elC0mpa/ec2-observe/cmd/mcp/response"
	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/costs"
	"github.com/elC0mpa/ec2-observe/service/dashboard"
	"github.com/elC0mpa/ec2-observe/service/filters"
	"github.com/elC0mpa/ec2-observe/service/flag"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DashboardSource hands out the dashboard of a provider together with its release func
type DashboardSource interface {
	Dashboard(ctx context.Context, name string) (dashboard.DashboardService, func(), error)
}

type dashboardHandler func(ctx context.Context, svc dashboard.DashboardService, request mcp.CallToolRequest) (any, error)

// RegisterDashboardTools registers the instance, cost, waste and timeline tools of a provider
func RegisterDashboardTools(s *server.MCPServer, source DashboardSource, provider string) {
	label := strings.ToUpper(provider)

	s.AddTool(
		mcp.NewTool(provider+"_get_instances",
			mcp.WithDescription(fmt.Sprintf("List %s compute instances with utilization and hourly cost, optionally filtered", label)),
			mcp.WithString("filters",
				mcp.Description("Comma separated category=value pairs, e.g. state=running,region=us-east-1. Categories: region, instanceType, state, wasteLevel, environment, service"),
			),
		),
		withDashboard(source, provider, instancesHandler),
	)

	s.AddTool(
		mcp.NewTool(provider+"_get_cost_breakdown",
			mcp.WithDescription(fmt.Sprintf("Get %s month-to-date compute cost KPIs and spend grouped by a dimension", label)),
			mcp.WithString("dimension",
				mcp.Description("Grouping dimension"),
				mcp.Enum("region", "instanceType", "service", "account", "job"),
				mcp.DefaultString("region"),
			),
			mcp.WithString("job_tag", mcp.Description("Tag key identifying the job when grouping by job")),
			mcp.WithString("regions", mcp.Description("Comma separated regions to restrict the breakdown to")),
			mcp.WithString("instance_types", mcp.Description("Comma separated instance types to restrict the breakdown to")),
			mcp.WithString("accounts", mcp.Description("Comma separated account IDs to restrict the breakdown to")),
		),
		withDashboard(source, provider, costBreakdownHandler),
	)

	s.AddTool(
		mcp.NewTool(provider+"_get_cost_trend",
			mcp.WithDescription(fmt.Sprintf("Get %s daily cost trend with z-score anomaly detection", label)),
			mcp.WithString("period",
				mcp.Description("Trend window"),
				mcp.Enum(costs.Period7d, costs.Period30d, costs.Period90d),
				mcp.DefaultString(costs.Period30d),
			),
		),
		withDashboard(source, provider, costTrendHandler),
	)

	s.AddTool(
		mcp.NewTool(provider+"_get_waste_recommendations",
			mcp.WithDescription(fmt.Sprintf("List %s instances flagged as wasteful, most wasteful first", label)),
			mcp.WithString("min_level",
				mcp.Description("Lowest waste level to include"),
				mcp.Enum(string(model.WasteWarning), string(model.WasteCritical)),
				mcp.DefaultString(string(model.WasteWarning)),
			),
		),
		withDashboard(source, provider, wasteHandler),
	)

	s.AddTool(
		mcp.NewTool(provider+"_get_instance_timeline",
			mcp.WithDescription(fmt.Sprintf("Get CPU, memory, GPU and network utilization of a %s instance over time", label)),
			mcp.WithString("instance_id", mcp.Required(), mcp.Description("Instance ID")),
			mcp.WithString("period",
				mcp.Description("Timeline window"),
				mcp.Enum(string(model.Period1h), string(model.Period24h), string(model.Period7d)),
				mcp.DefaultString(string(model.Period24h)),
			),
		),
		withDashboard(source, provider, timelineHandler),
	)

	s.AddTool(
		mcp.NewTool(provider+"_check_credentials",
			mcp.WithDescription(fmt.Sprintf("Verify that the configured %s credentials work", label)),
		),
		withDashboard(source, provider, func(ctx context.Context, svc dashboard.DashboardService, _ mcp.CallToolRequest) (any, error) {
			return response.ConvertCredentialCheck(provider, svc.CheckCredentials(ctx)), nil
		}),
	)
}

func withDashboard(source DashboardSource, provider string, handle dashboardHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		svc, release, err := source.Dashboard(ctx, provider)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure %s: %v", provider, err)), nil
		}
		defer release()

		resp, err := handle(ctx, svc, request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(resp), nil
	}
}

func instancesHandler(ctx context.Context, svc dashboard.DashboardService, request mcp.CallToolRequest) (any, error) {
	applied, err := flag.ParseFilters(splitList(request.GetString("filters", "")))
	if err != nil {
		return nil, err
	}
	for _, f := range applied {
		if !filters.KnownCategory(f.CategoryID) {
			return nil, fmt.Errorf("unknown filter category %q", f.CategoryID)
		}
	}

	state := model.DefaultFilterState()
	state.AppliedFilters = applied

	view, err := svc.FilterInstances(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	return response.ConvertFilteredInstances(view), nil
}

func costBreakdownHandler(ctx context.Context, svc dashboard.DashboardService, request mcp.CallToolRequest) (any, error) {
	resp, err := svc.CostBreakdown(ctx, model.CostQuery{
		Dimension:     model.Dimension(request.GetString("dimension", "")),
		JobTag:        request.GetString("job_tag", ""),
		Regions:       splitList(request.GetString("regions", "")),
		InstanceTypes: splitList(request.GetString("instance_types", "")),
		Accounts:      splitList(request.GetString("accounts", "")),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get cost breakdown: %w", err)
	}
	return response.ConvertCostBreakdown(resp), nil
}

func costTrendHandler(ctx context.Context, svc dashboard.DashboardService, request mcp.CallToolRequest) (any, error) {
	period, err := costs.ParsePeriod(request.GetString("period", ""))
	if err != nil {
		return nil, fmt.Errorf("failed to get cost trend: %w", err)
	}

	resp, err := svc.CostTrend(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to get cost trend: %w", err)
	}
	return response.ConvertCostTrend(resp), nil
}

func wasteHandler(ctx context.Context, svc dashboard.DashboardService, request mcp.CallToolRequest) (any, error) {
	minLevel := model.WasteLevel(request.GetString("min_level", string(model.WasteWarning)))
	if minLevel != model.WasteWarning && minLevel != model.WasteCritical {
		return nil, fmt.Errorf("unknown waste level %q", minLevel)
	}

	report, err := svc.Recommendations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get waste recommendations: %w", err)
	}

	kept := make([]model.Recommendation, 0, len(report.Recommendations))
	for _, r := range report.Recommendations {
		if r.Waste.Level == model.WasteCritical || (minLevel == model.WasteWarning && r.Waste.Level == model.WasteWarning) {
			kept = append(kept, r)
		}
	}
	report.Recommendations = kept
	return response.ConvertRecommendations(report), nil
}

func timelineHandler(ctx context.Context, svc dashboard.DashboardService, request mcp.CallToolRequest) (any, error) {
	instanceID, err := request.RequireString("instance_id")
	if err != nil {
		return nil, err
	}
	period, err := model.ParseTimelinePeriod(request.GetString("period", ""))
	if err != nil {
		return nil, err
	}

	timeline, err := svc.Timeline(ctx, instanceID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to get instance timeline: %w", err)
	}
	return response.ConvertTimeline(timeline), nil
}

func jsonResult(v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(data))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
