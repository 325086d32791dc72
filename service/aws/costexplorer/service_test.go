package awscostexplorer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/costs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(client CostExplorerAPI) *service {
	s := newService(client)
	s.now = func() time.Time { return now }
	return s
}

func group(key, amount string) types.Group {
	return types.Group{
		Keys: []string{key},
		Metrics: map[string]types.MetricValue{
			"UnblendedCost": {Amount: aws.String(amount), Unit: aws.String("USD")},
		},
	}
}

func TestGetCostGroups(t *testing.T) {
	mock := &mockCostExplorerClient{pages: []*costexplorer.GetCostAndUsageOutput{
		{
			NextPageToken: aws.String("more"),
			ResultsByTime: []types.ResultByTime{
				{Groups: []types.Group{group("us-east-1", "120.5"), group("eu-west-1", "30")}},
			},
		},
		{
			ResultsByTime: []types.ResultByTime{
				{Groups: []types.Group{group("us-east-1", "9.5"), group("", "1")}},
			},
		},
	}}

	got, err := newTestService(mock).GetCostGroups(context.Background(), model.CostQuery{Dimension: model.DimensionRegion})

	require.NoError(t, err)
	assert.Equal(t, []model.CostRecord{
		{Dimension: model.DimensionRegion, Value: "us-east-1", Amount: 120.5, Unit: "USD"},
		{Dimension: model.DimensionRegion, Value: "eu-west-1", Amount: 30, Unit: "USD"},
		{Dimension: model.DimensionRegion, Value: "us-east-1", Amount: 9.5, Unit: "USD"},
		{Dimension: model.DimensionRegion, Value: "Unknown", Amount: 1, Unit: "USD"},
	}, got)

	require.Len(t, mock.inputs, 2)
	first := mock.inputs[0]
	assert.Equal(t, types.GranularityMonthly, first.Granularity)
	assert.Equal(t, "2025-02-10", aws.ToString(first.TimePeriod.Start))
	assert.Equal(t, "2025-03-10", aws.ToString(first.TimePeriod.End))
	assert.Equal(t, "REGION", aws.ToString(first.GroupBy[0].Key))
	assert.Nil(t, first.Filter)
	assert.Equal(t, "more", aws.ToString(mock.inputs[1].NextPageToken))
}

func TestGetCostGroupsByJobTag(t *testing.T) {
	mock := &mockCostExplorerClient{pages: []*costexplorer.GetCostAndUsageOutput{{
		ResultsByTime: []types.ResultByTime{
			{Groups: []types.Group{group("Pipeline$assembly", "40"), group("Pipeline$", "2")}},
		},
	}}}

	got, err := newTestService(mock).GetCostGroups(context.Background(), model.CostQuery{
		Dimension: model.DimensionJob,
		JobTag:    "Pipeline",
	})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "assembly", got[0].Value)
	assert.Equal(t, "Unassigned", got[1].Value)

	gb := mock.inputs[0].GroupBy[0]
	assert.Equal(t, types.GroupDefinitionTypeTag, gb.Type)
	assert.Equal(t, "Pipeline", aws.ToString(gb.Key))
}

func TestGetCostGroupsDefaultJobTag(t *testing.T) {
	mock := &mockCostExplorerClient{}

	_, err := newTestService(mock).GetCostGroups(context.Background(), model.CostQuery{Dimension: model.DimensionJob})

	require.NoError(t, err)
	assert.Equal(t, "JobId", aws.ToString(mock.inputs[0].GroupBy[0].Key))
}

func TestGetCostGroupsFilters(t *testing.T) {
	t.Run("single filter", func(t *testing.T) {
		mock := &mockCostExplorerClient{}
		_, err := newTestService(mock).GetCostGroups(context.Background(), model.CostQuery{
			Dimension: model.DimensionAccount,
			Regions:   []string{"us-east-1"},
			Accounts:  []string{"1111"},
		})
		require.NoError(t, err)

		filter := mock.inputs[0].Filter
		require.NotNil(t, filter)
		require.NotNil(t, filter.Dimensions)
		assert.Equal(t, types.DimensionRegion, filter.Dimensions.Key)
		assert.Equal(t, []string{"us-east-1"}, filter.Dimensions.Values)
		assert.Equal(t, "LINKED_ACCOUNT", aws.ToString(mock.inputs[0].GroupBy[0].Key))
	})

	t.Run("combined filters", func(t *testing.T) {
		mock := &mockCostExplorerClient{}
		_, err := newTestService(mock).GetCostGroups(context.Background(), model.CostQuery{
			Dimension:     model.DimensionService,
			Regions:       []string{"us-east-1"},
			InstanceTypes: []string{"t3.large"},
			Accounts:      []string{"1111", "2222"},
		})
		require.NoError(t, err)

		filter := mock.inputs[0].Filter
		require.NotNil(t, filter)
		require.Len(t, filter.And, 3)
		assert.Equal(t, types.DimensionLinkedAccount, filter.And[2].Dimensions.Key)
	})
}

func TestGetCostGroupsUnknownDimension(t *testing.T) {
	mock := &mockCostExplorerClient{}

	_, err := newTestService(mock).GetCostGroups(context.Background(), model.CostQuery{Dimension: "color"})

	assert.ErrorIs(t, err, costs.ErrUnknownDimension)
	assert.Empty(t, mock.inputs)
}

func TestGetCostGroupsError(t *testing.T) {
	mock := &mockCostExplorerClient{err: errors.New("AccessDeniedException")}

	_, err := newTestService(mock).GetCostGroups(context.Background(), model.CostQuery{Dimension: model.DimensionRegion})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDeniedException")
}

func TestGetDailyCosts(t *testing.T) {
	mock := &mockCostExplorerClient{pages: []*costexplorer.GetCostAndUsageOutput{{
		ResultsByTime: []types.ResultByTime{
			{
				TimePeriod: &types.DateInterval{Start: aws.String("2025-03-08"), End: aws.String("2025-03-09")},
				Total: map[string]types.MetricValue{
					"UnblendedCost": {Amount: aws.String("101.237"), Unit: aws.String("USD")},
				},
			},
			{
				TimePeriod: &types.DateInterval{Start: aws.String("2025-03-09T00:00:00Z")},
				Total:      map[string]types.MetricValue{},
			},
		},
	}}}

	got, err := newTestService(mock).GetDailyCosts(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, []model.CostTrendPoint{
		{Date: "2025-03-08", Amount: 101.24},
		{Date: "2025-03-09", Amount: 0},
	}, got)

	input := mock.inputs[0]
	assert.Equal(t, types.GranularityDaily, input.Granularity)
	assert.Equal(t, "2025-03-03", aws.ToString(input.TimePeriod.Start))
	assert.Empty(t, input.GroupBy)
}

func TestGetDailyCostsError(t *testing.T) {
	mock := &mockCostExplorerClient{err: errors.New("throttled")}

	_, err := newTestService(mock).GetDailyCosts(context.Background(), 30)

	assert.Error(t, err)
}
