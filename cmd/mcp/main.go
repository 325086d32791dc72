package main

import (
	"fmt"
	"os"

	"github.com/elC0mpa/ec2-observe/cmd/mcp/tools"
	"github.com/elC0mpa/ec2-observe/config"
	"github.com/elC0mpa/ec2-observe/logging"
	"github.com/elC0mpa/ec2-observe/service/preferences"
	"github.com/elC0mpa/ec2-observe/service/provider"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the MCP protocol
	if cfg.Logging.Output == "stdout" {
		cfg.Logging.Output = "stderr"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logging error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	providers := provider.NewFactory(cfg, logging.L())

	s := server.NewMCPServer(
		"ec2-observe-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tools.RegisterAWSTools(s, providers, cfg.AWS)
	tools.RegisterGCPTools(s, providers, cfg.GCP)
	tools.RegisterAzureTools(s, providers, cfg.Azure)
	tools.RegisterFilterTools(s, preferences.NewFileStore(cfg.FilterStatePath))
	tools.RegisterMultiCloudTools(s, providers)

	logging.L().Info("serving MCP over stdio", zap.Strings("providers", providers.Configured()))
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
