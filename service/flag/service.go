package flag

import (
	"fmt"
	"strings"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/spf13/cobra"
)

func NewService(version string) *service {
	return &service{version: version}
}

// GetParsedFlags parses args into Flags through the ec2-observe command tree
func (s *service) GetParsedFlags(args []string) (model.Flags, error) {
	var flags model.Flags

	root := s.rootCommand(&flags)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		return model.Flags{}, err
	}
	if flags.Workflow == "" {
		return model.Flags{}, ErrNoWorkflow
	}
	return flags, nil
}

func selectWorkflow(flags *model.Flags, workflow string) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, _ []string) error {
		flags.Workflow = workflow
		return nil
	}
}

func (s *service) rootCommand(flags *model.Flags) *cobra.Command {
	root := &cobra.Command{
		Use:   "ec2-observe",
		Short: "ec2-observe: compute cost and utilization observability",
		Long: `ec2-observe reports what your compute instances cost, how that spend moves day by
day and which instances are wasting money. It reads AWS, GCP or Azure when credentials
are available and falls back to derived or sample data otherwise.`,
		Version:       s.version,
		RunE:          selectWorkflow(flags, model.WorkflowCosts),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.Provider, "provider", "", "Cloud provider: aws, gcp or azure")
	pf.StringVar(&flags.ConfigDir, "config-dir", ".", "Directory searched for .ec2observe.yaml or .ec2observe.toml")
	pf.BoolVar(&flags.Verbose, "verbose", false, "Enable debug logging")
	pf.StringVar(&flags.Region, "region", "", "AWS region")
	pf.StringVar(&flags.Profile, "profile", "", "AWS profile configuration")
	pf.StringVar(&flags.Project, "project", "", "GCP project ID")
	pf.StringVar(&flags.BillingAccount, "billing-account", "", "GCP billing account ID")
	pf.StringVar(&flags.Subscription, "subscription", "", "Azure subscription ID")
	pf.BoolVar(&flags.Samples, "samples", false, "Append the sample fleet to live inventory")

	addCostFlags(root, flags)
	root.AddCommand(
		costsCommand(flags),
		trendCommand(flags),
		wasteCommand(flags),
		instancesCommand(flags),
		timelineCommand(flags),
		checkCommand(flags),
		filtersCommand(flags),
	)
	return root
}

func addCostFlags(cmd *cobra.Command, flags *model.Flags) {
	f := cmd.Flags()
	f.StringVar(&flags.Dimension, "dimension", "", "Group costs by region, instanceType, service, account or job")
	f.StringVar(&flags.JobTag, "job-tag", "", "Tag holding the job identifier for the job dimension")
	f.StringSliceVar(&flags.Regions, "regions", nil, "Only count these regions")
	f.StringSliceVar(&flags.InstanceTypes, "instance-types", nil, "Only count these instance types")
	f.StringSliceVar(&flags.Accounts, "accounts", nil, "Only count these accounts")
}

func costsCommand(flags *model.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "costs",
		Short: "Show the cost breakdown by dimension with KPIs",
		Args:  cobra.NoArgs,
		RunE:  selectWorkflow(flags, model.WorkflowCosts),
	}
	addCostFlags(cmd, flags)
	return cmd
}

func trendCommand(flags *model.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show the daily cost trend with anomalies highlighted",
		Args:  cobra.NoArgs,
		RunE:  selectWorkflow(flags, model.WorkflowTrend),
	}
	cmd.Flags().StringVar(&flags.Period, "period", "30d", "Trend period: 7d, 30d or 90d")
	cmd.Flags().Float64Var(&flags.Threshold, "threshold", 0, "Z-score above which a day is an anomaly (default from config)")
	return cmd
}

func wasteCommand(flags *model.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waste",
		Short: "Rank instances by waste score",
		Args:  cobra.NoArgs,
		RunE:  selectWorkflow(flags, model.WorkflowWaste),
	}
	cmd.Flags().StringArrayVar(&flags.Filters, "filter", nil, "Filter as category=value, repeatable")
	return cmd
}

func instancesCommand(flags *model.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instances",
		Short: "List instances through the saved filters",
		Args:  cobra.NoArgs,
		RunE:  selectWorkflow(flags, model.WorkflowInstances),
	}
	cmd.Flags().StringArrayVar(&flags.Filters, "filter", nil, "Filter as category=value, repeatable; replaces the saved filters")
	return cmd
}

func timelineCommand(flags *model.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline <instance-id>",
		Short: "Show the utilization timeline of an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if _, err := model.ParseTimelinePeriod(flags.Period); err != nil {
				return err
			}
			flags.Workflow = model.WorkflowTimeline
			flags.InstanceID = args[0]
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.Period, "period", "24h", "Timeline period: 1h, 24h or 7d")
	return cmd
}

func checkCommand(flags *model.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that the provider credentials work",
		Args:  cobra.NoArgs,
		RunE:  selectWorkflow(flags, model.WorkflowCheck),
	}
}

var filterActions = []string{
	model.FilterActionShow,
	model.FilterActionApply,
	model.FilterActionRemove,
	model.FilterActionClear,
	model.FilterActionReset,
	model.FilterActionToggle,
}

func filtersCommand(flags *model.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "filters [show|apply|remove|clear|reset|toggle] [category] [value]",
		Short: "Show or change the saved instance filters",
		Long: `Show or change the instance filters saved between runs.

  filters show                      print the saved state
  filters apply <category> <value>  add a value to a category
  filters remove <category> <value> drop a value from a category
  filters clear [category]          clear one category or every filter
  filters reset                     apply the default filters
  filters toggle                    show or hide the filter panel`,
		Args:      cobra.MaximumNArgs(3),
		ValidArgs: filterActions,
		RunE: func(_ *cobra.Command, args []string) error {
			action := model.FilterActionShow
			if len(args) > 0 {
				action = args[0]
			}
			rest := args[min(1, len(args)):]

			switch action {
			case model.FilterActionApply, model.FilterActionRemove:
				if len(rest) != 2 {
					return fmt.Errorf("filters %s needs a category and a value", action)
				}
			case model.FilterActionClear:
				if len(rest) > 1 {
					return fmt.Errorf("filters clear takes at most a category")
				}
			case model.FilterActionShow, model.FilterActionReset, model.FilterActionToggle:
				if len(rest) > 0 {
					return fmt.Errorf("filters %s takes no arguments", action)
				}
			default:
				return fmt.Errorf("unknown filters action %q, want one of %s", action, strings.Join(filterActions, ", "))
			}

			flags.Workflow = model.WorkflowFilters
			flags.FilterAction = action
			flags.FilterArgs = rest
			return nil
		},
	}
}

// ParseFilters turns category=value pairs into applied filters, grouping repeated categories
func ParseFilters(pairs []string) ([]model.AppliedFilter, error) {
	var filters []model.AppliedFilter
	index := make(map[string]int)

	for _, pair := range pairs {
		category, value, ok := strings.Cut(pair, "=")
		if !ok || category == "" || value == "" {
			return nil, fmt.Errorf("invalid filter %q, want category=value", pair)
		}
		if i, seen := index[category]; seen {
			filters[i].Values = append(filters[i].Values, value)
			continue
		}
		index[category] = len(filters)
		filters = append(filters, model.AppliedFilter{CategoryID: category, Values: []string{value}})
	}
	return filters, nil
}
