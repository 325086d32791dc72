package orchestrator

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/costs"
	"github.com/elC0mpa/ec2-observe/service/dashboard"
	"github.com/elC0mpa/ec2-observe/service/preferences"
	"github.com/elC0mpa/ec2-observe/service/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFactory struct {
	opts        []dashboard.Option
	requested   []string
	inventoried []string
	released    int
}

func (f *fakeFactory) Dashboard(_ context.Context, name string) (dashboard.DashboardService, func(), error) {
	f.requested = append(f.requested, name)
	opts := append([]dashboard.Option{dashboard.WithRand(rand.New(rand.NewSource(1)))}, f.opts...)
	return dashboard.NewService(opts...), func() { f.released++ }, nil
}

func (f *fakeFactory) Configured() []string {
	return []string{provider.AWS, provider.GCP}
}

func (f *fakeFactory) Inventory(_ context.Context, names []string) []model.ProviderInventoryResult {
	f.inventoried = names
	return []model.ProviderInventoryResult{
		{Provider: provider.AWS, Instances: costs.SampleInstances()},
		{Provider: provider.GCP, Error: errors.New("no project")},
	}
}

type countingStore struct {
	preferences.Store
	saves int
}

func (c *countingStore) Save(ctx context.Context, state model.FilterState) error {
	c.saves++
	return c.Store.Save(ctx, state)
}

type staticIdentity struct{ err error }

func (s staticIdentity) GetAccountInfo(_ context.Context) (*model.AccountInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.AccountInfo{AccountID: "123456789012"}, nil
}

func TestOrchestrateWorkflows(t *testing.T) {
	tests := []struct {
		name  string
		flags model.Flags
	}{
		{"costs", model.Flags{Workflow: model.WorkflowCosts, Dimension: "service"}},
		{"default", model.Flags{}},
		{"trend", model.Flags{Workflow: model.WorkflowTrend, Period: "7d"}},
		{"waste", model.Flags{Workflow: model.WorkflowWaste, Filters: []string{"state=running"}}},
		{"instances", model.Flags{Workflow: model.WorkflowInstances}},
		{"instances with filters", model.Flags{Workflow: model.WorkflowInstances, Filters: []string{"region=us-east-1"}}},
		{"timeline", model.Flags{Workflow: model.WorkflowTimeline, InstanceID: "i-2222222222222222", Period: "1h"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := &fakeFactory{}
			svc := NewService(factory, preferences.NewMemoryStore(), nil)

			require.NoError(t, svc.Orchestrate(context.Background(), tt.flags))
			assert.Equal(t, []string{provider.AWS}, factory.requested)
			assert.Equal(t, 1, factory.released)
		})
	}
}

func TestOrchestrateErrors(t *testing.T) {
	tests := []struct {
		name  string
		flags model.Flags
		want  error
	}{
		{"unknown provider", model.Flags{Provider: "oci"}, provider.ErrUnknownProvider},
		{"unknown dimension", model.Flags{Dimension: "colour"}, costs.ErrUnknownDimension},
		{"unknown period", model.Flags{Workflow: model.WorkflowTrend, Period: "1y"}, costs.ErrUnknownPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeFactory{}, preferences.NewMemoryStore(), nil)
			assert.ErrorIs(t, svc.Orchestrate(context.Background(), tt.flags), tt.want)
		})
	}

	t.Run("invalid filter", func(t *testing.T) {
		svc := NewService(&fakeFactory{}, preferences.NewMemoryStore(), nil)
		err := svc.Orchestrate(context.Background(), model.Flags{Workflow: model.WorkflowWaste, Filters: []string{"state"}})
		assert.Error(t, err)
	})
}

func TestOrchestrateCheck(t *testing.T) {
	ok := &fakeFactory{opts: []dashboard.Option{dashboard.WithIdentity(staticIdentity{})}}
	require.NoError(t, NewService(ok, preferences.NewMemoryStore(), nil).
		Orchestrate(context.Background(), model.Flags{Workflow: model.WorkflowCheck}))

	failing := &fakeFactory{opts: []dashboard.Option{dashboard.WithIdentity(staticIdentity{err: errors.New("expired token")})}}
	err := NewService(failing, preferences.NewMemoryStore(), nil).
		Orchestrate(context.Background(), model.Flags{Workflow: model.WorkflowCheck, Provider: "AWS"})
	assert.EqualError(t, err, "aws credentials check failed")
}

func TestOrchestrateMultiCloud(t *testing.T) {
	factory := &fakeFactory{}
	svc := NewService(factory, preferences.NewMemoryStore(), nil)

	require.NoError(t, svc.Orchestrate(context.Background(), model.Flags{Workflow: model.WorkflowInstances, Provider: AllProviders}))
	assert.Equal(t, []string{provider.AWS, provider.GCP}, factory.inventoried)
	assert.Empty(t, factory.requested)
}

func TestOrchestrateFilters(t *testing.T) {
	store := &countingStore{Store: preferences.NewMemoryStore()}
	svc := NewService(&fakeFactory{}, store, nil)
	ctx := context.Background()

	require.NoError(t, svc.Orchestrate(ctx, model.Flags{
		Workflow:     model.WorkflowFilters,
		FilterAction: model.FilterActionApply,
		FilterArgs:   []string{model.CategoryEnvironment, "production"},
	}))
	require.NoError(t, svc.Orchestrate(ctx, model.Flags{Workflow: model.WorkflowFilters, FilterAction: model.FilterActionShow}))

	assert.Equal(t, 1, store.saves)
	state, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, state.IsApplied(model.CategoryEnvironment, "production"))
	assert.True(t, state.IsApplied(model.CategoryState, "running"))
}
