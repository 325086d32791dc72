package provider

import (
	"context"

	"github.com/elC0mpa/ec2-observe/config"
	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service"
	"github.com/elC0mpa/ec2-observe/service/dashboard"
	"go.uber.org/zap"
)

// Provider names
const (
	AWS   = "aws"
	GCP   = "gcp"
	Azure = "azure"
)

// collaborators are the live sources of one provider. Any of them may be nil.
type collaborators struct {
	inventory service.InventoryService
	costs     service.CostService
	metrics   service.MetricsService
	identity  service.IdentityService
	region    string
	closers   []func() error
}

type builder func(ctx context.Context) (*collaborators, error)

type factory struct {
	cfg      config.Config
	logger   *zap.Logger
	builders map[string]builder
}

// Factory builds dashboards bound to a provider's live collaborators
type Factory interface {
	Dashboard(ctx context.Context, name string) (dashboard.DashboardService, func(), error)
	Configured() []string
	Inventory(ctx context.Context, names []string) []model.ProviderInventoryResult
}
