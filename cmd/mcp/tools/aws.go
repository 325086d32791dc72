package tools

import (
	"context"
	"fmt"

	"github.com/elC0mpa/ec2-observe/cmd/mcp/response"
	"github.com/elC0mpa/ec2-observe/config"
	awsconfig "github.com/elC0mpa/ec2-observe/service/aws/config"
	awssts "github.com/elC0mpa/ec2-observe/service/aws/sts"
	"github.com/elC0mpa/ec2-observe/service/provider"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterAWSTools registers all AWS tools with the MCP server
func RegisterAWSTools(s *server.MCPServer, source DashboardSource, cfg config.AWS) {
	s.AddTool(
		mcp.NewTool("aws_get_account_info",
			mcp.WithDescription("Get AWS account identity information including account ID and ARN"),
		),
		makeAWSAccountInfoHandler(cfg.Region, cfg.Profile),
	)

	RegisterDashboardTools(s, source, provider.AWS)
}

func makeAWSAccountInfoHandler(region, profile string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		configSvc := awsconfig.NewService()
		awsCfg, err := configSvc.GetAWSCfg(ctx, region, profile)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure AWS: %v", err)), nil
		}

		stsSvc := awssts.NewService(awsCfg)
		info, err := stsSvc.GetAccountInfo(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get account info: %v", err)), nil
		}

		return jsonResult(response.ConvertAccountInfo(info)), nil
	}
}
