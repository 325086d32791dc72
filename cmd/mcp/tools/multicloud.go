package tools

import (
	"context"

	"github.com/elC0mpa/ec2-observe/cmd/mcp/response"
	"github.com/elC0mpa/ec2-observe/model"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// InventorySource fans an inventory request out to providers
type InventorySource interface {
	Configured() []string
	Inventory(ctx context.Context, names []string) []model.ProviderInventoryResult
}

// RegisterMultiCloudTools registers multi-cloud aggregate tools with the MCP server
func RegisterMultiCloudTools(s *server.MCPServer, source InventorySource) {
	s.AddTool(
		mcp.NewTool("multicloud_get_inventory",
			mcp.WithDescription("Get instance counts, critical waste and estimated monthly compute cost across all configured cloud providers (AWS, GCP, Azure)"),
		),
		makeMultiCloudInventoryHandler(source),
	)
}

func makeMultiCloudInventoryHandler(source InventorySource) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		results := source.Inventory(ctx, source.Configured())
		return jsonResult(response.ConvertMultiCloudInventory(results)), nil
	}
}
