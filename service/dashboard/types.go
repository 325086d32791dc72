package dashboard

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service"
	"github.com/elC0mpa/ec2-observe/service/costs"
	"github.com/elC0mpa/ec2-observe/service/utilization"
	"go.uber.org/zap"
)

type dashboardService struct {
	inventory service.InventoryService
	costs     service.CostService
	metrics   service.MetricsService
	identity  service.IdentityService

	logger         *zap.Logger
	region         string
	jobTag         string
	threshold      float64
	includeSamples bool
	now            func() time.Time

	// guards the generators, which share a *rand.Rand
	mu        sync.Mutex
	trends    *costs.Generator
	timelines *utilization.Generator
	rng       *rand.Rand
}

// DashboardService answers every view of the tool. Live collaborators that fail or are
// missing degrade to derived or synthetic data; only invalid input produces an error.
type DashboardService interface {
	Instances(ctx context.Context) (model.InstanceInventory, error)
	CostBreakdown(ctx context.Context, query model.CostQuery) (model.CostBreakdownResponse, error)
	CostTrend(ctx context.Context, period string) (model.CostTrendResponse, error)
	Recommendations(ctx context.Context) (model.RecommendationReport, error)
	FilterInstances(ctx context.Context, state model.FilterState) (model.FilteredInstances, error)
	Timeline(ctx context.Context, instanceID string, period model.TimelinePeriod) (model.InstanceTimeline, error)
	CheckCredentials(ctx context.Context) model.CredentialCheck
}

// Option configures the dashboard service
type Option func(*dashboardService)

// WithInventory sets the live instance source
func WithInventory(inventory service.InventoryService) Option {
	return func(s *dashboardService) { s.inventory = inventory }
}

// WithCosts sets the live billing source
func WithCosts(c service.CostService) Option {
	return func(s *dashboardService) { s.costs = c }
}

// WithMetrics sets the live utilization source
func WithMetrics(metrics service.MetricsService) Option {
	return func(s *dashboardService) { s.metrics = metrics }
}

// WithIdentity sets the account identity source used by CheckCredentials
func WithIdentity(identity service.IdentityService) Option {
	return func(s *dashboardService) { s.identity = identity }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *dashboardService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegion is the region reported by CheckCredentials
func WithRegion(region string) Option {
	return func(s *dashboardService) { s.region = region }
}

// WithJobTag sets the tag used for the job dimension when a query does not name one
func WithJobTag(tag string) Option {
	return func(s *dashboardService) {
		if tag != "" {
			s.jobTag = tag
		}
	}
}

// WithThreshold sets the z-score above which trend days are flagged
func WithThreshold(threshold float64) Option {
	return func(s *dashboardService) {
		if threshold > 0 {
			s.threshold = threshold
		}
	}
}

// WithSampleInstances appends the demonstration fleet to live inventory
func WithSampleInstances(include bool) Option {
	return func(s *dashboardService) { s.includeSamples = include }
}

// WithRand makes synthetic data reproducible
func WithRand(rng *rand.Rand) Option {
	return func(s *dashboardService) { s.rng = rng }
}

func WithClock(now func() time.Time) Option {
	return func(s *dashboardService) {
		if now != nil {
			s.now = now
		}
	}
}
