package service

import (
	"context"

	"github.com/elC0mpa/ec2-observe/model"
)

// IdentityService provides cloud account/project identity information
type IdentityService interface {
	GetAccountInfo(ctx context.Context) (*model.AccountInfo, error)
}

// InventoryService lists the compute instances of an account
type InventoryService interface {
	ListInstances(ctx context.Context) ([]model.Instance, error)
}

// CostService provides grouped and daily billing data
type CostService interface {
	GetCostGroups(ctx context.Context, query model.CostQuery) ([]model.CostRecord, error)
	GetDailyCosts(ctx context.Context, days int) ([]model.CostTrendPoint, error)
}

// MetricsService provides raw utilization samples of an instance
type MetricsService interface {
	GetUtilizationSeries(ctx context.Context, instanceID string, period model.TimelinePeriod) (*model.UtilizationSeries, error)
}
