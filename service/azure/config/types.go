package azureconfig

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

type credentialFactory func(options *azidentity.DefaultAzureCredentialOptions) (*azidentity.DefaultAzureCredential, error)

type service struct {
	subscriptionID string
	tenantID       string
	credential     *azidentity.DefaultAzureCredential
}

type ConfigService interface {
	GetCredential() *azidentity.DefaultAzureCredential
	GetSubscriptionID() string
	GetTenantID() string
}
