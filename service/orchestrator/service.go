package orchestrator

import (
	"context"
	"fmt"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/costs"
	"github.com/elC0mpa/ec2-observe/service/dashboard"
	"github.com/elC0mpa/ec2-observe/service/filters"
	"github.com/elC0mpa/ec2-observe/service/flag"
	"github.com/elC0mpa/ec2-observe/service/preferences"
	"github.com/elC0mpa/ec2-observe/service/provider"
	"github.com/elC0mpa/ec2-observe/utils"
	"go.uber.org/zap"
)

// AllProviders selects the multi-cloud inventory on the instances workflow
const AllProviders = "all"

func NewService(providers provider.Factory, store preferences.Store, logger *zap.Logger) *service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		providers: providers,
		store:     store,
		logger:    logger,
	}
}

func (s *service) Orchestrate(ctx context.Context, flags model.Flags) error {
	if flags.Workflow == model.WorkflowFilters {
		return s.filtersWorkflow(ctx, flags)
	}
	if flags.Workflow == model.WorkflowInstances && flags.Provider == AllProviders {
		return s.multiCloudWorkflow(ctx)
	}

	name, err := provider.Normalize(flags.Provider)
	if err != nil {
		return err
	}

	svc, release, err := s.providers.Dashboard(ctx, name)
	if err != nil {
		return err
	}
	defer release()

	switch flags.Workflow {
	case model.WorkflowTrend:
		return s.trendWorkflow(ctx, svc, flags)
	case model.WorkflowWaste:
		return s.wasteWorkflow(ctx, svc, flags)
	case model.WorkflowInstances:
		return s.instancesWorkflow(ctx, svc, flags)
	case model.WorkflowTimeline:
		return s.timelineWorkflow(ctx, svc, flags)
	case model.WorkflowCheck:
		return s.checkWorkflow(ctx, svc, name)
	default:
		return s.defaultWorkflow(ctx, svc, flags)
	}
}

func (s *service) defaultWorkflow(ctx context.Context, svc dashboard.DashboardService, flags model.Flags) error {
	resp, err := svc.CostBreakdown(ctx, model.CostQuery{
		Dimension:     model.Dimension(flags.Dimension),
		JobTag:        flags.JobTag,
		Regions:       flags.Regions,
		InstanceTypes: flags.InstanceTypes,
		Accounts:      flags.Accounts,
	})
	if err != nil {
		return err
	}

	utils.StopSpinner()

	utils.DrawCostBreakdown(resp)
	return nil
}

func (s *service) trendWorkflow(ctx context.Context, svc dashboard.DashboardService, flags model.Flags) error {
	period, err := costs.ParsePeriod(flags.Period)
	if err != nil {
		return fmt.Errorf("%w %q, want 7d, 30d or 90d", err, flags.Period)
	}

	resp, err := svc.CostTrend(ctx, period)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	utils.DrawTrendChart(resp)
	return nil
}

func (s *service) wasteWorkflow(ctx context.Context, svc dashboard.DashboardService, flags model.Flags) error {
	report, err := svc.Recommendations(ctx)
	if err != nil {
		return err
	}

	if len(flags.Filters) > 0 {
		applied, err := flag.ParseFilters(flags.Filters)
		if err != nil {
			return err
		}
		kept := report.Recommendations[:0]
		for _, rec := range report.Recommendations {
			if len(filters.Apply([]model.Instance{rec.Instance}, applied)) == 1 {
				kept = append(kept, rec)
			}
		}
		report.Recommendations = kept
	}

	utils.StopSpinner()

	utils.DrawWasteTable(report)
	return nil
}

func (s *service) instancesWorkflow(ctx context.Context, svc dashboard.DashboardService, flags model.Flags) error {
	state, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	if len(flags.Filters) > 0 {
		applied, err := flag.ParseFilters(flags.Filters)
		if err != nil {
			return err
		}
		state.AppliedFilters = applied
	}

	view, err := svc.FilterInstances(ctx, state)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	utils.DrawFilteredInstances(view, state.Behavior.ShowFilterCounts)
	return nil
}

func (s *service) multiCloudWorkflow(ctx context.Context) error {
	results := s.providers.Inventory(ctx, s.providers.Configured())
	for _, r := range results {
		if r.Error != nil {
			s.logger.Warn("provider inventory failed", zap.String("provider", r.Provider), zap.Error(r.Error))
		}
	}

	utils.StopSpinner()

	utils.DrawMultiCloudInventory(results)
	return nil
}

func (s *service) timelineWorkflow(ctx context.Context, svc dashboard.DashboardService, flags model.Flags) error {
	period, err := model.ParseTimelinePeriod(flags.Period)
	if err != nil {
		return err
	}

	timeline, err := svc.Timeline(ctx, flags.InstanceID, period)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	utils.DrawTimeline(timeline)
	return nil
}

func (s *service) checkWorkflow(ctx context.Context, svc dashboard.DashboardService, name string) error {
	check := svc.CheckCredentials(ctx)

	utils.StopSpinner()

	utils.DrawCredentialCheck(name, check)
	if !check.Success {
		return fmt.Errorf("%s credentials check failed", name)
	}
	return nil
}

func (s *service) filtersWorkflow(ctx context.Context, flags model.Flags) error {
	state, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	next, err := preferences.ApplyAction(state, flags.FilterAction, flags.FilterArgs)
	if err != nil {
		return err
	}

	if preferences.Mutates(flags.FilterAction) {
		if err := s.store.Save(ctx, next); err != nil {
			return err
		}
	}

	utils.StopSpinner()

	utils.DrawFilterState(next)
	return nil
}
