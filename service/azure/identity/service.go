package azureidentity

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/elC0mpa/ec2-observe/model"
)

func NewService(subscriptionID string, credential *Credential) (*service, error) {
	client, err := armsubscriptions.NewClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}
	return newService(subscriptionID, client), nil
}

func newService(subscriptionID string, client SubscriptionsAPI) *service {
	return &service{
		subscriptionID: subscriptionID,
		client:         client,
	}
}

// GetAccountInfo implements service.IdentityService. The subscription display name is
// reported when Azure returns one.
func (s *service) GetAccountInfo(ctx context.Context) (*model.AccountInfo, error) {
	subscription, err := s.GetSubscriptionInfo(ctx)
	if err != nil {
		return nil, err
	}

	name := s.subscriptionID
	if subscription.DisplayName != nil && *subscription.DisplayName != "" {
		name = *subscription.DisplayName
	}
	if subscription.State != nil && *subscription.State != armsubscriptions.SubscriptionStateEnabled {
		return nil, fmt.Errorf("subscription %s is %s", s.subscriptionID, *subscription.State)
	}

	return &model.AccountInfo{
		Provider:    "azure",
		AccountID:   s.subscriptionID,
		AccountName: name,
	}, nil
}

// GetSubscriptionInfo returns the subscription record
func (s *service) GetSubscriptionInfo(ctx context.Context) (*armsubscriptions.Subscription, error) {
	resp, err := s.client.Get(ctx, s.subscriptionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription %s: %w", s.subscriptionID, err)
	}
	return &resp.Subscription, nil
}
