package azureidentity

import (
	"context"
	"errors"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/elC0mpa/ec2-observe/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSubscriptionsClient struct {
	subscription armsubscriptions.Subscription
	err          error
	requested    string
}

func (m *mockSubscriptionsClient) Get(_ context.Context, subscriptionID string, _ *armsubscriptions.ClientGetOptions) (armsubscriptions.ClientGetResponse, error) {
	m.requested = subscriptionID
	if m.err != nil {
		return armsubscriptions.ClientGetResponse{}, m.err
	}
	return armsubscriptions.ClientGetResponse{Subscription: m.subscription}, nil
}

func TestGetAccountInfo(t *testing.T) {
	enabled := armsubscriptions.SubscriptionStateEnabled
	disabled := armsubscriptions.SubscriptionStateDisabled

	tests := []struct {
		name         string
		subscription armsubscriptions.Subscription
		want         *model.AccountInfo
		wantErr      bool
	}{
		{
			name:         "display name",
			subscription: armsubscriptions.Subscription{DisplayName: to.Ptr("Production"), State: &enabled},
			want:         &model.AccountInfo{Provider: "azure", AccountID: "sub-1", AccountName: "Production"},
		},
		{
			name:         "falls back to the subscription id",
			subscription: armsubscriptions.Subscription{DisplayName: to.Ptr("")},
			want:         &model.AccountInfo{Provider: "azure", AccountID: "sub-1", AccountName: "sub-1"},
		},
		{
			name:         "disabled subscription",
			subscription: armsubscriptions.Subscription{State: &disabled},
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockSubscriptionsClient{subscription: tt.subscription}
			s := newService("sub-1", client)

			got, err := s.GetAccountInfo(context.Background())

			assert.Equal(t, "sub-1", client.requested)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetSubscriptionInfoError(t *testing.T) {
	s := newService("sub-1", &mockSubscriptionsClient{err: errors.New("forbidden")})

	_, err := s.GetSubscriptionInfo(context.Background())

	assert.EqualError(t, err, "failed to get subscription sub-1: forbidden")
}
