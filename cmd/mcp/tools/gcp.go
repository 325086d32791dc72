package tools

import (
	"context"
	"fmt"

	"github.com/elC0mpa/ec2-observe/cmd/mcp/response"
	"github.com/elC0mpa/ec2-observe/config"
	gcpconfig "github.com/elC0mpa/ec2-observe/service/gcp/config"
	gcpidentity "github.com/elC0mpa/ec2-observe/service/gcp/identity"
	"github.com/elC0mpa/ec2-observe/service/provider"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"google.golang.org/api/option"
)

// RegisterGCPTools registers all GCP tools with the MCP server
func RegisterGCPTools(s *server.MCPServer, source DashboardSource, cfg config.GCP) {
	s.AddTool(
		mcp.NewTool("gcp_get_project_info",
			mcp.WithDescription("Get GCP project details including number, name, lifecycle state and labels. Requires GCP_PROJECT_ID or application default credentials with a project."),
		),
		makeGCPProjectInfoHandler(cfg.ProjectID),
	)

	RegisterDashboardTools(s, source, provider.GCP)
}

func makeGCPProjectInfoHandler(projectID string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfgSvc := gcpconfig.NewService(projectID)
		resolved, err := cfgSvc.GetProjectID(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve GCP project: %v", err)), nil
		}
		creds, err := cfgSvc.GetCredentials(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure GCP: %v", err)), nil
		}

		identitySvc, err := gcpidentity.NewService(ctx, resolved, option.WithCredentials(creds))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create GCP identity service: %v", err)), nil
		}

		project, err := identitySvc.GetProjectInfo(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get project info: %v", err)), nil
		}

		return jsonResult(response.ConvertProjectInfo(project)), nil
	}
}
