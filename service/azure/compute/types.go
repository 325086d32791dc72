package azurecompute

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/elC0mpa/ec2-observe/model"
)

type service struct {
	subscriptionID string
	vmClient       *armcompute.VirtualMachinesClient
	now            func() time.Time
}

type ComputeService interface {
	// Implements service.InventoryService
	ListInstances(ctx context.Context) ([]model.Instance, error)

	// Azure-specific methods for detailed information
	GetVMPowerState(ctx context.Context, vm *armcompute.VirtualMachine) (model.InstanceState, error)
}

// Credential is passed to allow reuse across services
type Credential = azidentity.DefaultAzureCredential
