package azureidentity

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/elC0mpa/ec2-observe/model"
)

// SubscriptionsAPI is the subset of the subscriptions client used by the service
type SubscriptionsAPI interface {
	Get(ctx context.Context, subscriptionID string, options *armsubscriptions.ClientGetOptions) (armsubscriptions.ClientGetResponse, error)
}

type service struct {
	subscriptionID string
	client         SubscriptionsAPI
}

type IdentityService interface {
	GetAccountInfo(ctx context.Context) (*model.AccountInfo, error)
	GetSubscriptionInfo(ctx context.Context) (*armsubscriptions.Subscription, error)
}

// Credential is shared by every Azure client of a run
type Credential = azidentity.DefaultAzureCredential
