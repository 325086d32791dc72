package azureconfig

import (
	"errors"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/elC0mpa/ec2-observe/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingFactory struct {
	options *azidentity.DefaultAzureCredentialOptions
	calls   int
	err     error
}

func (r *recordingFactory) build(options *azidentity.DefaultAzureCredentialOptions) (*azidentity.DefaultAzureCredential, error) {
	r.calls++
	r.options = options
	if r.err != nil {
		return nil, r.err
	}
	return &azidentity.DefaultAzureCredential{}, nil
}

func TestNewServiceRequiresSubscription(t *testing.T) {
	factory := &recordingFactory{}

	_, err := newService(config.Azure{}, factory.build)

	assert.ErrorIs(t, err, ErrNoSubscription)
	assert.Zero(t, factory.calls)
}

func TestNewServiceTenant(t *testing.T) {
	factory := &recordingFactory{}

	s, err := newService(config.Azure{SubscriptionID: "sub-1", TenantID: "tenant-1"}, factory.build)

	require.NoError(t, err)
	require.NotNil(t, factory.options)
	assert.Equal(t, "tenant-1", factory.options.TenantID)
	assert.Equal(t, "sub-1", s.GetSubscriptionID())
	assert.Equal(t, "tenant-1", s.GetTenantID())
	assert.NotNil(t, s.GetCredential())
}

func TestNewServiceWithoutTenantUsesDefaults(t *testing.T) {
	factory := &recordingFactory{}

	_, err := newService(config.Azure{SubscriptionID: "sub-1"}, factory.build)

	require.NoError(t, err)
	assert.Nil(t, factory.options)
}

func TestNewServiceCredentialError(t *testing.T) {
	factory := &recordingFactory{err: errors.New("no credential sources")}

	_, err := newService(config.Azure{SubscriptionID: "sub-1"}, factory.build)

	assert.EqualError(t, err, "failed to create Azure credential: no credential sources")
}
