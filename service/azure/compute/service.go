package azurecompute

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/costs"
)

func NewService(subscriptionID string, credential *Credential) (*service, error) {
	vmClient, err := armcompute.NewVirtualMachinesClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create VM client: %w", err)
	}

	return &service{
		subscriptionID: subscriptionID,
		vmClient:       vmClient,
		now:            time.Now,
	}, nil
}

// ListInstances implements service.InventoryService
func (s *service) ListInstances(ctx context.Context) ([]model.Instance, error) {
	instances := []model.Instance{}

	pager := s.vmClient.NewListAllPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list VMs: %w", err)
		}

		for _, vm := range page.Value {
			if vm.ID == nil {
				continue
			}

			state, err := s.GetVMPowerState(ctx, vm)
			if err != nil {
				// VMs without an instance view are reported as stopped
				state = model.StateStopped
			}
			instances = append(instances, s.toInstance(vm, state))
		}
	}

	return instances, nil
}

// GetVMPowerState reads the power state from the VM instance view
func (s *service) GetVMPowerState(ctx context.Context, vm *armcompute.VirtualMachine) (model.InstanceState, error) {
	resourceGroup := extractResourceGroup(*vm.ID)
	vmName := ""
	if vm.Name != nil {
		vmName = *vm.Name
	}

	instanceView, err := s.vmClient.InstanceView(ctx, resourceGroup, vmName, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get instance view of %s: %w", vmName, err)
	}

	return powerState(instanceView.Statuses), nil
}

// powerState maps PowerState/* status codes onto instance states
func powerState(statuses []*armcompute.InstanceViewStatus) model.InstanceState {
	for _, status := range statuses {
		if status == nil || status.Code == nil {
			continue
		}
		code, found := strings.CutPrefix(*status.Code, "PowerState/")
		if !found {
			continue
		}
		switch code {
		case "running", "starting":
			return model.StateRunning
		default:
			return model.StateStopped
		}
	}
	return model.StateStopped
}

func (s *service) toInstance(vm *armcompute.VirtualMachine, state model.InstanceState) model.Instance {
	name := ""
	if vm.Name != nil {
		name = *vm.Name
	}
	id := name
	location := ""
	if vm.Location != nil {
		location = *vm.Location
	}

	var vmSize string
	var launch time.Time
	if props := vm.Properties; props != nil {
		if props.VMID != nil {
			id = *props.VMID
		}
		if props.HardwareProfile != nil && props.HardwareProfile.VMSize != nil {
			vmSize = string(*props.HardwareProfile.VMSize)
		}
		if props.TimeCreated != nil {
			launch = *props.TimeCreated
		}
	}

	uptime := 0.0
	if state == model.StateRunning && !launch.IsZero() {
		uptime = math.Floor(s.now().Sub(launch).Hours())
	}

	tags := make(map[string]string, len(vm.Tags))
	for k, v := range vm.Tags {
		if k != "" && v != nil && *v != "" {
			tags[k] = *v
		}
	}

	return model.Instance{
		ID:          id,
		Name:        name,
		Type:        vmSize,
		Region:      location,
		AccountID:   s.subscriptionID,
		UptimeHrs:   uptime,
		CostPerHour: costs.HourlyRate(vmSize),
		State:       state,
		LaunchTime:  launch,
		Tags:        tags,
	}
}

// extractResourceGroup extracts the resource group from an Azure resource ID
func extractResourceGroup(resourceID string) string {
	parts := strings.Split(resourceID, "/")
	for i, part := range parts {
		if strings.EqualFold(part, "resourceGroups") && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}
