package dashboard

import (
	"context"
	"math/rand"
	"time"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/anomaly"
	"github.com/elC0mpa/ec2-observe/service/costs"
	"github.com/elC0mpa/ec2-observe/service/filters"
	"github.com/elC0mpa/ec2-observe/service/utilization"
	"github.com/elC0mpa/ec2-observe/service/waste"
	"go.uber.org/zap"
)

const (
	defaultRegion = "us-east-1"
	defaultJobTag = "JobId"

	noteSynthetic = "No live inventory or billing data available; showing sample data"
)

func NewService(opts ...Option) *dashboardService {
	s := &dashboardService{
		logger:    zap.NewNop(),
		region:    defaultRegion,
		jobTag:    defaultJobTag,
		threshold: anomaly.DefaultThreshold,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(s.now().UnixNano()))
	}
	s.trends = costs.NewGenerator(s.rng, s.now)
	s.timelines = utilization.NewGenerator(s.rng, s.now)
	return s
}

// liveInstances returns the inventory reported by the live source, nil when it is
// missing or failing
func (s *dashboardService) liveInstances(ctx context.Context) []model.Instance {
	if s.inventory == nil {
		return nil
	}

	instances, err := s.inventory.ListInstances(ctx)
	if err != nil {
		s.logger.Warn("live inventory unavailable, falling back", zap.Error(err))
		return nil
	}
	s.logger.Debug("listed live instances", zap.Int("count", len(instances)))
	return instances
}

// fleet is the inventory every instance view works on
func (s *dashboardService) fleet(ctx context.Context) ([]model.Instance, model.DataSource) {
	live := s.liveInstances(ctx)
	if len(live) == 0 {
		return costs.SampleInstances(), model.SourceSynthetic
	}
	if s.includeSamples {
		live = append(live, costs.SampleInstances()...)
	}
	return live, model.SourceLive
}

func uniqueValues(instances []model.Instance, key func(model.Instance) string) []string {
	seen := make(map[string]bool)
	values := []string{}
	for _, i := range instances {
		v := key(i)
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values
}

// Instances implements DashboardService
func (s *dashboardService) Instances(ctx context.Context) (model.InstanceInventory, error) {
	instances, source := s.fleet(ctx)

	inventory := model.InstanceInventory{
		Instances:     instances,
		TotalCount:    len(instances),
		Regions:       uniqueValues(instances, func(i model.Instance) string { return i.Region }),
		InstanceTypes: uniqueValues(instances, func(i model.Instance) string { return i.Type }),
		DataSource:    source,
	}
	if source == model.SourceSynthetic {
		inventory.Note = noteSynthetic
	}
	return inventory, nil
}

func (s *dashboardService) liveCostGroups(ctx context.Context, q model.CostQuery) []model.CostRecord {
	if s.costs == nil {
		return nil
	}

	groups, err := s.costs.GetCostGroups(ctx, q)
	if err != nil {
		s.logger.Warn("live cost groups unavailable, falling back",
			zap.String("dimension", string(q.Dimension)), zap.Error(err))
		return nil
	}
	return groups
}

// CostBreakdown implements DashboardService
func (s *dashboardService) CostBreakdown(ctx context.Context, q model.CostQuery) (model.CostBreakdownResponse, error) {
	dimension, err := costs.ParseDimension(string(q.Dimension))
	if err != nil {
		return model.CostBreakdownResponse{}, err
	}
	q.Dimension = dimension
	if q.JobTag == "" {
		q.JobTag = s.jobTag
	}

	live := s.liveCostGroups(ctx, q)
	instances := s.liveInstances(ctx)

	resp := model.CostBreakdownResponse{
		Dimension:  dimension,
		DataSource: costs.SelectSource(live, instances),
	}

	// Query filters narrow only the estimate appended to live billing data.
	if resp.DataSource == model.SourceLive {
		aggregated := costs.Aggregate(live, dimension)
		derived := costs.FromInstances(costs.FilterInstances(instances, q), dimension)
		resp.KPIs = costs.KPIs(costs.Total(aggregated), s.now())
		resp.Breakdowns = costs.MergeBreakdowns(aggregated, derived)
		return resp, nil
	}

	resp.KPIs = costs.SyntheticKPIs()
	resp.Breakdowns = costs.FromInstances(instances, dimension)
	if resp.DataSource == model.SourceSynthetic {
		resp.Note = noteSynthetic
	}
	return resp, nil
}

func (s *dashboardService) liveDailyCosts(ctx context.Context, days int) []model.CostTrendPoint {
	if s.costs == nil {
		return nil
	}

	points, err := s.costs.GetDailyCosts(ctx, days)
	if err != nil {
		s.logger.Warn("live daily costs unavailable, falling back", zap.Int("days", days), zap.Error(err))
		return nil
	}
	return points
}

// CostTrend implements DashboardService. Unrecognised periods cover 90 days.
func (s *dashboardService) CostTrend(ctx context.Context, period string) (model.CostTrendResponse, error) {
	if period == "" {
		period = costs.Period30d
	}
	days := costs.PeriodDays(period)

	live := s.liveDailyCosts(ctx, days)

	s.mu.Lock()
	synthetic := s.trends.Trend(days)
	s.mu.Unlock()

	merged := costs.MergeTrend(live, synthetic, days)
	annotated, flag := anomaly.Annotate(merged, s.threshold)
	total, average := costs.SummarizeTrend(annotated)

	source := model.SourceSynthetic
	if len(live) > 0 {
		source = model.SourceLive
	}

	return model.CostTrendResponse{
		Trend:        annotated,
		Period:       period,
		TotalAmount:  total,
		AverageDaily: average,
		Anomaly:      flag,
		DataSource:   source,
	}, nil
}

// Recommendations implements DashboardService
func (s *dashboardService) Recommendations(ctx context.Context) (model.RecommendationReport, error) {
	instances, source := s.fleet(ctx)
	return model.RecommendationReport{
		Recommendations: waste.Rank(instances),
		DataSource:      source,
	}, nil
}

// FilterInstances implements DashboardService
func (s *dashboardService) FilterInstances(ctx context.Context, state model.FilterState) (model.FilteredInstances, error) {
	instances, source := s.fleet(ctx)

	view := filters.Facets(instances, state.AppliedFilters)
	view.DataSource = source
	return view, nil
}

// Timeline implements DashboardService
func (s *dashboardService) Timeline(ctx context.Context, instanceID string, period model.TimelinePeriod) (model.InstanceTimeline, error) {
	if period == "" {
		period = model.Period24h
	}

	timeline := model.InstanceTimeline{
		InstanceID:   instanceID,
		InstanceName: utilization.InstanceLabel(instanceID),
		Period:       period,
		DataSource:   model.SourceSynthetic,
	}

	var series *model.UtilizationSeries
	if s.metrics != nil {
		var err error
		series, err = s.metrics.GetUtilizationSeries(ctx, instanceID, period)
		if err != nil {
			s.logger.Warn("utilization metrics unavailable, falling back",
				zap.String("instanceId", instanceID), zap.Error(err))
			series = nil
		}
	}

	s.mu.Lock()
	points := s.timelines.FromSeries(series)
	if len(points) > 0 {
		timeline.DataSource = model.SourceLive
	} else {
		points = s.timelines.Mock(period)
	}
	s.mu.Unlock()

	timeline.DataPoints = points
	timeline.Summary = utilization.Summarize(points)
	return timeline, nil
}

// CheckCredentials implements DashboardService
func (s *dashboardService) CheckCredentials(ctx context.Context) model.CredentialCheck {
	check := model.CredentialCheck{
		Region:    s.region,
		Timestamp: s.now().UTC(),
	}

	if s.identity == nil {
		check.Message = "No identity service configured"
		return check
	}

	info, err := s.identity.GetAccountInfo(ctx)
	if err != nil {
		s.logger.Warn("credential check failed", zap.Error(err))
		check.Message = "Credential check failed"
		check.Details = err.Error()
		return check
	}

	check.Success = true
	check.Message = "Credentials are working"
	check.AccountID = info.AccountID
	return check
}
