package tools

import (
	"context"
	"fmt"

	"github.com/elC0mpa/ec2-observe/cmd/mcp/response"
	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/preferences"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterFilterTools registers the saved filter preference tools
func RegisterFilterTools(s *server.MCPServer, store preferences.Store) {
	s.AddTool(
		mcp.NewTool("get_filter_state",
			mcp.WithDescription("Get the saved instance filter preferences"),
		),
		makeFilterStateHandler(store),
	)

	s.AddTool(
		mcp.NewTool("update_filter_state",
			mcp.WithDescription("Change the saved instance filter preferences and return the new state"),
			mcp.WithString("action",
				mcp.Required(),
				mcp.Description("apply or remove a value, clear a category (or everything), reset to defaults, or toggle panel visibility"),
				mcp.Enum(
					model.FilterActionApply,
					model.FilterActionRemove,
					model.FilterActionClear,
					model.FilterActionReset,
					model.FilterActionToggle,
				),
			),
			mcp.WithString("category", mcp.Description("Filter category: region, instanceType, state, wasteLevel, environment or service")),
			mcp.WithString("value", mcp.Description("Value to apply or remove")),
		),
		makeUpdateFilterStateHandler(store),
	)
}

func makeFilterStateHandler(store preferences.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		state, err := store.Load(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to load filter state: %v", err)), nil
		}
		return jsonResult(response.ConvertFilterState(state)), nil
	}
}

func makeUpdateFilterStateHandler(store preferences.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		action, err := request.RequireString("action")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var args []string
		if category := request.GetString("category", ""); category != "" {
			args = append(args, category)
			if value := request.GetString("value", ""); value != "" {
				args = append(args, value)
			}
		}

		state, err := store.Load(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to load filter state: %v", err)), nil
		}

		next, err := preferences.ApplyAction(state, action, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if preferences.Mutates(action) {
			if err := store.Save(ctx, next); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to save filter state: %v", err)), nil
			}
		}
		return jsonResult(response.ConvertFilterState(next)), nil
	}
}
