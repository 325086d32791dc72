package azurecompute

import (
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/elC0mpa/ec2-observe/model"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestPowerState(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		want  model.InstanceState
	}{
		{"running", []string{"ProvisioningState/succeeded", "PowerState/running"}, model.StateRunning},
		{"starting", []string{"PowerState/starting"}, model.StateRunning},
		{"deallocated", []string{"ProvisioningState/succeeded", "PowerState/deallocated"}, model.StateStopped},
		{"stopped", []string{"PowerState/stopped"}, model.StateStopped},
		{"no power state", []string{"ProvisioningState/succeeded"}, model.StateStopped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var statuses []*armcompute.InstanceViewStatus
			for _, c := range tt.codes {
				statuses = append(statuses, &armcompute.InstanceViewStatus{Code: to.Ptr(c)})
			}
			statuses = append(statuses, nil)
			assert.Equal(t, tt.want, powerState(statuses))
		})
	}
}

func TestToInstance(t *testing.T) {
	s := &service{subscriptionID: "sub-1", now: func() time.Time { return now }}
	vm := &armcompute.VirtualMachine{
		ID:       to.Ptr("/subscriptions/sub-1/resourceGroups/rg-prod/providers/Microsoft.Compute/virtualMachines/api-1"),
		Name:     to.Ptr("api-1"),
		Location: to.Ptr("westeurope"),
		Tags:     map[string]*string{"Environment": to.Ptr("production"), "Owner": nil, "Empty": to.Ptr("")},
		Properties: &armcompute.VirtualMachineProperties{
			VMID:            to.Ptr("0f1e2d3c"),
			HardwareProfile: &armcompute.HardwareProfile{VMSize: to.Ptr(armcompute.VirtualMachineSizeTypesStandardD2SV3)},
			TimeCreated:     to.Ptr(now.Add(-50 * time.Hour)),
		},
	}

	got := s.toInstance(vm, model.StateRunning)

	assert.Equal(t, "0f1e2d3c", got.ID)
	assert.Equal(t, "api-1", got.Name)
	assert.Equal(t, "Standard_D2s_v3", got.Type)
	assert.Equal(t, "westeurope", got.Region)
	assert.Equal(t, "sub-1", got.AccountID)
	assert.Equal(t, 50.0, got.UptimeHrs)
	assert.Equal(t, 0.1, got.CostPerHour)
	assert.Equal(t, map[string]string{"Environment": "production"}, got.Tags)

	stopped := s.toInstance(vm, model.StateStopped)
	assert.Equal(t, 0.0, stopped.UptimeHrs)
}

func TestExtractResourceGroup(t *testing.T) {
	assert.Equal(t, "rg-prod", extractResourceGroup("/subscriptions/s/resourceGroups/rg-prod/providers/x/y"))
	assert.Equal(t, "rg", extractResourceGroup("/subscriptions/s/resourcegroups/rg"))
	assert.Equal(t, "", extractResourceGroup("/subscriptions/s"))
}
