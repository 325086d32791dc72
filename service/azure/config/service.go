package azureconfig

import (
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/elC0mpa/ec2-observe/config"
)

// ErrNoSubscription is returned when no subscription is configured
var ErrNoSubscription = errors.New("no Azure subscription configured, set AZURE_SUBSCRIPTION_ID or pass --subscription")

// NewService builds the DefaultAzureCredential chain (environment, workload and managed
// identity, Azure CLI), pinned to the configured tenant when one is set.
func NewService(cfg config.Azure) (*service, error) {
	return newService(cfg, azidentity.NewDefaultAzureCredential)
}

func newService(cfg config.Azure, newCredential credentialFactory) (*service, error) {
	if cfg.SubscriptionID == "" {
		return nil, ErrNoSubscription
	}

	var opts *azidentity.DefaultAzureCredentialOptions
	if cfg.TenantID != "" {
		opts = &azidentity.DefaultAzureCredentialOptions{TenantID: cfg.TenantID}
	}

	credential, err := newCredential(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	return &service{
		subscriptionID: cfg.SubscriptionID,
		tenantID:       cfg.TenantID,
		credential:     credential,
	}, nil
}

func (s *service) GetCredential() *azidentity.DefaultAzureCredential {
	return s.credential
}

func (s *service) GetSubscriptionID() string {
	return s.subscriptionID
}

func (s *service) GetTenantID() string {
	return s.tenantID
}
