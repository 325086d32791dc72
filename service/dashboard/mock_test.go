package dashboard

import (
	"context"

	"github.com/elC0mpa/ec2-observe/model"
)

type mockInventory struct {
	instances []model.Instance
	err       error
	calls     int
}

func (m *mockInventory) ListInstances(_ context.Context) ([]model.Instance, error) {
	m.calls++
	return m.instances, m.err
}

type mockCosts struct {
	groups    []model.CostRecord
	groupsErr error
	daily     []model.CostTrendPoint
	dailyErr  error

	lastQuery model.CostQuery
	lastDays  int
}

func (m *mockCosts) GetCostGroups(_ context.Context, q model.CostQuery) ([]model.CostRecord, error) {
	m.lastQuery = q
	return m.groups, m.groupsErr
}

func (m *mockCosts) GetDailyCosts(_ context.Context, days int) ([]model.CostTrendPoint, error) {
	m.lastDays = days
	return m.daily, m.dailyErr
}

type mockMetrics struct {
	series *model.UtilizationSeries
	err    error
}

func (m *mockMetrics) GetUtilizationSeries(_ context.Context, _ string, _ model.TimelinePeriod) (*model.UtilizationSeries, error) {
	return m.series, m.err
}

type mockIdentity struct {
	info *model.AccountInfo
	err  error
}

func (m *mockIdentity) GetAccountInfo(_ context.Context) (*model.AccountInfo, error) {
	return m.info, m.err
}
