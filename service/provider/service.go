package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/elC0mpa/ec2-observe/config"
	"github.com/elC0mpa/ec2-observe/model"
	awscloudwatch "github.com/elC0mpa/ec2-observe/service/aws/cloudwatch"
	awsconfig "github.com/elC0mpa/ec2-observe/service/aws/config"
	awscostexplorer "github.com/elC0mpa/ec2-observe/service/aws/costexplorer"
	awsec2 "github.com/elC0mpa/ec2-observe/service/aws/ec2"
	awssts "github.com/elC0mpa/ec2-observe/service/aws/sts"
	azurecompute "github.com/elC0mpa/ec2-observe/service/azure/compute"
	azureconfig "github.com/elC0mpa/ec2-observe/service/azure/config"
	azurecostmanagement "github.com/elC0mpa/ec2-observe/service/azure/costmanagement"
	azureidentity "github.com/elC0mpa/ec2-observe/service/azure/identity"
	"github.com/elC0mpa/ec2-observe/service/costs"
	"github.com/elC0mpa/ec2-observe/service/dashboard"
	gcpbilling "github.com/elC0mpa/ec2-observe/service/gcp/billing"
	gcpcompute "github.com/elC0mpa/ec2-observe/service/gcp/compute"
	gcpconfig "github.com/elC0mpa/ec2-observe/service/gcp/config"
	gcpidentity "github.com/elC0mpa/ec2-observe/service/gcp/identity"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// ErrUnknownProvider is returned for provider names other than aws, gcp and azure
var ErrUnknownProvider = errors.New("unknown provider")

// Normalize validates a provider name, defaulting to aws when empty
func Normalize(name string) (string, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "":
		return AWS, nil
	case AWS, GCP, Azure:
		return n, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, name)
}

func NewFactory(cfg config.Config, logger *zap.Logger) *factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &factory{cfg: cfg, logger: logger}
	f.builders = map[string]builder{
		AWS:   f.buildAWS,
		GCP:   f.buildGCP,
		Azure: f.buildAzure,
	}
	return f
}

func (c *collaborators) options() []dashboard.Option {
	var opts []dashboard.Option
	if c.inventory != nil {
		opts = append(opts, dashboard.WithInventory(c.inventory))
	}
	if c.costs != nil {
		opts = append(opts, dashboard.WithCosts(c.costs))
	}
	if c.metrics != nil {
		opts = append(opts, dashboard.WithMetrics(c.metrics))
	}
	if c.identity != nil {
		opts = append(opts, dashboard.WithIdentity(c.identity))
	}
	return append(opts, dashboard.WithRegion(c.region))
}

func (c *collaborators) close() {
	for _, closeFn := range c.closers {
		_ = closeFn()
	}
}

// Dashboard returns a dashboard for the named provider and a release function. When the
// provider's clients cannot be built the dashboard still answers from fallback data.
func (f *factory) Dashboard(ctx context.Context, name string) (dashboard.DashboardService, func(), error) {
	name, err := Normalize(name)
	if err != nil {
		return nil, nil, err
	}

	opts := []dashboard.Option{
		dashboard.WithLogger(f.logger.With(zap.String("provider", name))),
		dashboard.WithJobTag(f.cfg.JobTag),
		dashboard.WithThreshold(f.cfg.AnomalyThreshold),
		dashboard.WithSampleInstances(f.cfg.IncludeSamples),
	}

	release := func() {}
	c, err := f.builders[name](ctx)
	if err != nil {
		f.logger.Warn("live clients unavailable, using fallback data", zap.String("provider", name), zap.Error(err))
	} else {
		opts = append(opts, c.options()...)
		release = c.close
	}

	return dashboard.NewService(opts...), release, nil
}

// Configured lists the providers that have enough configuration to be queried
func (f *factory) Configured() []string {
	names := []string{AWS}
	if f.cfg.HasGCP() {
		names = append(names, GCP)
	}
	if f.cfg.HasAzure() {
		names = append(names, Azure)
	}
	return names
}

// Inventory lists the live instances of each provider concurrently. Results keep the
// order of names; failures are reported per provider.
func (f *factory) Inventory(ctx context.Context, names []string) []model.ProviderInventoryResult {
	results := make([]model.ProviderInventoryResult, len(names))

	var wg sync.WaitGroup
	for idx, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[idx] = f.inventoryOf(ctx, name)
		}()
	}
	wg.Wait()

	return results
}

func (f *factory) inventoryOf(ctx context.Context, name string) model.ProviderInventoryResult {
	result := model.ProviderInventoryResult{Provider: name}

	normalized, err := Normalize(name)
	if err != nil {
		result.Error = err
		return result
	}
	result.Provider = normalized

	c, err := f.builders[normalized](ctx)
	if err != nil {
		result.Error = err
		return result
	}
	defer c.close()

	if c.identity != nil {
		if info, err := c.identity.GetAccountInfo(ctx); err == nil {
			result.AccountID = info.AccountID
		}
	}
	if c.inventory == nil {
		result.Error = fmt.Errorf("no inventory source for %s", normalized)
		return result
	}

	instances, err := c.inventory.ListInstances(ctx)
	if err != nil {
		result.Error = err
		return result
	}
	result.Instances = instances
	if len(instances) > 0 {
		result.Breakdown = costs.FromInstances(instances, model.DimensionRegion)
	}
	return result
}

func (f *factory) buildAWS(ctx context.Context) (*collaborators, error) {
	awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, f.cfg.AWS.Region, f.cfg.AWS.Profile)
	if err != nil {
		return nil, err
	}

	return &collaborators{
		inventory: awsec2.NewService(awsCfg),
		costs:     awscostexplorer.NewService(awsCfg),
		metrics:   awscloudwatch.NewService(awsCfg),
		identity:  awssts.NewService(awsCfg),
		region:    awsCfg.Region,
	}, nil
}

func (f *factory) buildGCP(ctx context.Context) (*collaborators, error) {
	cfgSvc := gcpconfig.NewService(f.cfg.GCP.ProjectID)

	projectID, err := cfgSvc.GetProjectID(ctx)
	if err != nil {
		return nil, err
	}
	creds, err := cfgSvc.GetCredentials(ctx)
	if err != nil {
		return nil, err
	}

	computeSvc, err := gcpcompute.NewService(ctx, projectID, f.logger.With(zap.String("provider", GCP)), option.WithCredentials(creds))
	if err != nil {
		return nil, err
	}
	identitySvc, err := gcpidentity.NewService(ctx, projectID, option.WithCredentials(creds))
	if err != nil {
		return nil, err
	}

	c := &collaborators{inventory: computeSvc, identity: identitySvc}
	if f.cfg.GCP.BillingAccount == "" {
		return c, nil
	}

	billingSvc, err := gcpbilling.NewService(ctx, projectID, f.cfg.GCP.BillingAccount, f.cfg.GCP.Dataset)
	if err != nil {
		f.logger.Warn("BigQuery billing export unavailable", zap.String("project", projectID), zap.Error(err))
		return c, nil
	}
	c.costs = billingSvc
	c.closers = append(c.closers, billingSvc.Close)
	return c, nil
}

func (f *factory) buildAzure(_ context.Context) (*collaborators, error) {
	cfgSvc, err := azureconfig.NewService(f.cfg.Azure)
	if err != nil {
		return nil, err
	}
	subscriptionID := cfgSvc.GetSubscriptionID()
	credential := cfgSvc.GetCredential()
	f.logger.Debug("azure credential ready",
		zap.String("subscription", subscriptionID),
		zap.String("tenant", cfgSvc.GetTenantID()))

	computeSvc, err := azurecompute.NewService(subscriptionID, credential)
	if err != nil {
		return nil, err
	}
	costSvc, err := azurecostmanagement.NewService(subscriptionID, credential)
	if err != nil {
		return nil, err
	}
	identitySvc, err := azureidentity.NewService(subscriptionID, credential)
	if err != nil {
		return nil, err
	}

	return &collaborators{
		inventory: computeSvc,
		costs:     costSvc,
		identity:  identitySvc,
	}, nil
}
