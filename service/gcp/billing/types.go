package gcpbilling

import (
	"context"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/elC0mpa/ec2-observe/model"
)

type service struct {
	projectID      string
	billingAccount string
	dataset        string
	bqClient       *bigquery.Client
	now            func() time.Time
}

type BillingService interface {
	GetCostGroups(ctx context.Context, query model.CostQuery) ([]model.CostRecord, error)
	GetDailyCosts(ctx context.Context, days int) ([]model.CostTrendPoint, error)
	Close() error
}
