package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/elC0mpa/ec2-observe/config"
	"github.com/elC0mpa/ec2-observe/logging"
	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/flag"
	"github.com/elC0mpa/ec2-observe/service/orchestrator"
	"github.com/elC0mpa/ec2-observe/service/preferences"
	"github.com/elC0mpa/ec2-observe/service/provider"
	"github.com/elC0mpa/ec2-observe/utils"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	flagService := flag.NewService(version)
	flags, err := flagService.GetParsedFlags(os.Args[1:])
	if errors.Is(err, flag.ErrNoWorkflow) {
		return
	}
	if err != nil {
		fail(err)
	}

	cfg, err := config.Load(flags.ConfigDir)
	if err != nil {
		fail(err)
	}
	applyFlags(&cfg, flags)
	if flags.Provider == "" {
		flags.Provider = cfg.Provider
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		fail(err)
	}
	defer logging.Sync()

	utils.DrawBanner()
	utils.StartSpinner()

	logger := logging.L()
	logger.Debug("starting", zap.String("workflow", flags.Workflow), zap.String("provider", cfg.Provider))

	providers := provider.NewFactory(cfg, logger)
	store := preferences.NewFileStore(cfg.FilterStatePath)

	orchestratorService := orchestrator.NewService(providers, store, logger)
	if err := orchestratorService.Orchestrate(context.Background(), flags); err != nil {
		utils.StopSpinner()
		logging.Sync()
		fail(err)
	}
}

// applyFlags lets command line flags win over the file and environment
func applyFlags(cfg *config.Config, flags model.Flags) {
	if flags.Provider != "" && flags.Provider != orchestrator.AllProviders {
		cfg.Provider = flags.Provider
	}
	if flags.Region != "" {
		cfg.AWS.Region = flags.Region
	}
	if flags.Profile != "" {
		cfg.AWS.Profile = flags.Profile
	}
	if flags.Project != "" {
		cfg.GCP.ProjectID = flags.Project
	}
	if flags.BillingAccount != "" {
		cfg.GCP.BillingAccount = flags.BillingAccount
	}
	if flags.Subscription != "" {
		cfg.Azure.SubscriptionID = flags.Subscription
	}
	if flags.JobTag != "" {
		cfg.JobTag = flags.JobTag
	}
	if flags.Threshold > 0 {
		cfg.AnomalyThreshold = flags.Threshold
	}
	if flags.Samples {
		cfg.IncludeSamples = true
	}
	if flags.Verbose {
		cfg.Logging.Level = "debug"
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
