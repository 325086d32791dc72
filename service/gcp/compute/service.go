package gcpcompute

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/costs"
	"go.uber.org/zap"
	"google.golang.org/api/compute/v1"
	"google.golang.org/api/option"
)

// noResultsWarning marks a zone that simply has no instances
const noResultsWarning = "NO_RESULTS_ON_PAGE"

func NewService(ctx context.Context, projectID string, logger *zap.Logger, opts ...option.ClientOption) (*service, error) {
	opts = append([]option.ClientOption{option.WithScopes(compute.ComputeReadonlyScope)}, opts...)
	computeClient, err := compute.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Compute client: %w", err)
	}

	walk := func(ctx context.Context, fn func(*compute.InstanceAggregatedList) error) error {
		return computeClient.Instances.AggregatedList(projectID).ReturnPartialSuccess(true).Pages(ctx, fn)
	}
	return newService(projectID, walk, logger), nil
}

func newService(projectID string, walk pageWalker, logger *zap.Logger) *service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		projectID: projectID,
		walk:      walk,
		logger:    logger,
		now:       time.Now,
	}
}

// ListInstances implements service.InventoryService. Zones the API reports as
// unreachable are skipped and logged.
func (s *service) ListInstances(ctx context.Context) ([]model.Instance, error) {
	instances := []model.Instance{}
	err := s.walk(ctx, func(page *compute.InstanceAggregatedList) error {
		for _, scope := range page.Unreachables {
			s.logger.Debug("skipping unreachable scope", zap.String("scope", scope))
		}
		for key, scoped := range page.Items {
			zone := strings.TrimPrefix(key, "zones/")
			if w := scoped.Warning; w != nil && w.Code != noResultsWarning {
				s.logger.Debug("skipping zone",
					zap.String("zone", zone), zap.String("code", w.Code), zap.String("message", w.Message))
			}
			for _, vm := range scoped.Instances {
				instances = append(instances, s.toInstance(vm, zone))
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}

	sort.SliceStable(instances, func(a, b int) bool {
		if instances[a].Region != instances[b].Region {
			return instances[a].Region < instances[b].Region
		}
		return instances[a].Name < instances[b].Name
	})
	return instances, nil
}

func (s *service) toInstance(vm *compute.Instance, zone string) model.Instance {
	machineType := extractResourceName(vm.MachineType)
	state := mapStatus(vm.Status)

	launch, _ := time.Parse(time.RFC3339, vm.CreationTimestamp)
	started := launch
	if t, err := time.Parse(time.RFC3339, vm.LastStartTimestamp); err == nil {
		started = t
	}

	uptime := 0.0
	if state == model.StateRunning && !started.IsZero() {
		uptime = math.Floor(s.now().Sub(started).Hours())
	}

	tags := make(map[string]string, len(vm.Labels))
	for k, v := range vm.Labels {
		if k != "" && v != "" {
			tags[k] = v
		}
	}

	return model.Instance{
		ID:          strconv.FormatUint(vm.Id, 10),
		Name:        vm.Name,
		Type:        machineType,
		Region:      regionFromZone(zone),
		AccountID:   s.projectID,
		UptimeHrs:   uptime,
		CostPerHour: costs.HourlyRate(machineType),
		State:       state,
		LaunchTime:  launch,
		Tags:        tags,
	}
}

// mapStatus folds the Compute Engine lifecycle into running and stopped
func mapStatus(status string) model.InstanceState {
	switch status {
	case "RUNNING", "PROVISIONING", "STAGING", "REPAIRING":
		return model.StateRunning
	default:
		return model.StateStopped
	}
}

// regionFromZone strips the zone suffix, "us-central1-a" becomes "us-central1"
func regionFromZone(zone string) string {
	if i := strings.LastIndex(zone, "-"); i > 0 {
		return zone[:i]
	}
	return zone
}

// extractResourceName extracts the resource name from a GCP resource URL
// e.g., "https://www.googleapis.com/compute/v1/projects/p/zones/us-central1-a/machineTypes/e2-medium"
// returns "e2-medium"
func extractResourceName(resourceURL string) string {
	if i := strings.LastIndex(resourceURL, "/"); i >= 0 {
		return resourceURL[i+1:]
	}
	return resourceURL
}
