package tools

import (
	"context"
	"fmt"

	"github.com/elC0mpa/ec2-observe/cmd/mcp/response"
	"github.com/elC0mpa/ec2-observe/config"
	azureconfig "github.com/elC0mpa/ec2-observe/service/azure/config"
	azureidentity "github.com/elC0mpa/ec2-observe/service/azure/identity"
	"github.com/elC0mpa/ec2-observe/service/provider"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterAzureTools registers all Azure tools with the MCP server
func RegisterAzureTools(s *server.MCPServer, source DashboardSource, cfg config.Azure) {
	s.AddTool(
		mcp.NewTool("azure_get_subscription_info",
			mcp.WithDescription("Get Azure subscription details including ID, display name, and state. Requires AZURE_SUBSCRIPTION_ID environment variable."),
		),
		makeAzureSubscriptionInfoHandler(cfg),
	)

	RegisterDashboardTools(s, source, provider.Azure)
}

func makeAzureSubscriptionInfoHandler(cfg config.Azure) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfgSvc, err := azureconfig.NewService(cfg)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure Azure: %v", err)), nil
		}

		identitySvc, err := azureidentity.NewService(cfgSvc.GetSubscriptionID(), cfgSvc.GetCredential())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create Azure identity service: %v", err)), nil
		}

		sub, err := identitySvc.GetSubscriptionInfo(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get subscription info: %v", err)), nil
		}

		return jsonResult(response.ConvertSubscription(sub)), nil
	}
}
