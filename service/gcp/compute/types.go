package gcpcompute

import (
	"context"
	"time"

	"github.com/elC0mpa/ec2-observe/model"
	"go.uber.org/zap"
	"google.golang.org/api/compute/v1"
)

// pageWalker walks every page of an aggregated instance listing
type pageWalker func(ctx context.Context, fn func(*compute.InstanceAggregatedList) error) error

type service struct {
	projectID string
	walk      pageWalker
	logger    *zap.Logger
	now       func() time.Time
}

type ComputeService interface {
	// Implements service.InventoryService
	ListInstances(ctx context.Context) ([]model.Instance, error)
}
