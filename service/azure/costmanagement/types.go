package azurecostmanagement

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/elC0mpa/ec2-observe/model"
)

type service struct {
	subscriptionID string
	client         *armcostmanagement.QueryClient
	now            func() time.Time
}

type CostManagementService interface {
	GetCostGroups(ctx context.Context, query model.CostQuery) ([]model.CostRecord, error)
	GetDailyCosts(ctx context.Context, days int) ([]model.CostTrendPoint, error)
}

// Credential is passed to allow reuse across services
type Credential = azidentity.DefaultAzureCredential
