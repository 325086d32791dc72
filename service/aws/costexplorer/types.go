package awscostexplorer

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/elC0mpa/ec2-observe/model"
)

// CostExplorerAPI is the subset of the Cost Explorer API used by the service
type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, input *costexplorer.GetCostAndUsageInput, opts ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

type service struct {
	client CostExplorerAPI
	now    func() time.Time
}

type CostService interface {
	GetCostGroups(ctx context.Context, query model.CostQuery) ([]model.CostRecord, error)
	GetDailyCosts(ctx context.Context, days int) ([]model.CostTrendPoint, error)
}
