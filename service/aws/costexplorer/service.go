package awscostexplorer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/costs"
)

const (
	costsAggregation = "UnblendedCost"
	defaultJobTag    = "JobId"
	unknownGroup     = "Unknown"
	untaggedGroup    = "Unassigned"
)

func NewService(awsconfig aws.Config) *service {
	client := costexplorer.NewFromConfig(awsconfig)
	return newService(client)
}

func newService(client CostExplorerAPI) *service {
	return &service{
		client: client,
		now:    time.Now,
	}
}

// groupDefinition maps a dimension to its Cost Explorer grouping
func groupDefinition(q model.CostQuery) (types.GroupDefinition, error) {
	switch q.Dimension {
	case model.DimensionRegion:
		return dimensionGroup(types.DimensionRegion), nil
	case model.DimensionInstanceType:
		return dimensionGroup(types.DimensionInstanceType), nil
	case model.DimensionService:
		return dimensionGroup(types.DimensionService), nil
	case model.DimensionAccount:
		return dimensionGroup(types.DimensionLinkedAccount), nil
	case model.DimensionJob:
		tag := q.JobTag
		if tag == "" {
			tag = defaultJobTag
		}
		return types.GroupDefinition{Key: aws.String(tag), Type: types.GroupDefinitionTypeTag}, nil
	}
	return types.GroupDefinition{}, costs.ErrUnknownDimension
}

func dimensionGroup(d types.Dimension) types.GroupDefinition {
	return types.GroupDefinition{Key: aws.String(string(d)), Type: types.GroupDefinitionTypeDimension}
}

// queryFilter scopes the request by the query lists that are not the grouping axis
func queryFilter(q model.CostQuery) *types.Expression {
	var exprs []types.Expression
	add := func(d types.Dimension, values []string) {
		if len(values) == 0 {
			return
		}
		exprs = append(exprs, types.Expression{
			Dimensions: &types.DimensionValues{Key: d, Values: values},
		})
	}

	if q.Dimension != model.DimensionRegion {
		add(types.DimensionRegion, q.Regions)
	}
	if q.Dimension != model.DimensionInstanceType {
		add(types.DimensionInstanceType, q.InstanceTypes)
	}
	if q.Dimension != model.DimensionAccount {
		add(types.DimensionLinkedAccount, q.Accounts)
	}

	switch len(exprs) {
	case 0:
		return nil
	case 1:
		return &exprs[0]
	default:
		return &types.Expression{And: exprs}
	}
}

// groupValue normalises a group key. Tag keys arrive as "Key$value".
func groupValue(g types.Group, isTag bool) string {
	if len(g.Keys) == 0 || g.Keys[0] == "" {
		return unknownGroup
	}
	key := g.Keys[0]
	if !isTag {
		return key
	}
	if _, value, found := strings.Cut(key, "$"); found {
		key = value
	}
	if key == "" {
		return untaggedGroup
	}
	return key
}

func parseAmount(m map[string]types.MetricValue) (float64, string) {
	metric, ok := m[costsAggregation]
	if !ok || metric.Amount == nil {
		return 0, ""
	}
	amount, err := strconv.ParseFloat(*metric.Amount, 64)
	if err != nil {
		return 0, ""
	}
	return amount, aws.ToString(metric.Unit)
}

// GetCostGroups returns the unblended cost of the trailing month grouped by the query dimension
func (s *service) GetCostGroups(ctx context.Context, q model.CostQuery) ([]model.CostRecord, error) {
	group, err := groupDefinition(q)
	if err != nil {
		return nil, err
	}

	end := s.now()
	start := end.AddDate(0, -1, 0)
	input := &costexplorer.GetCostAndUsageInput{
		Granularity: types.GranularityMonthly,
		TimePeriod: &types.DateInterval{
			Start: aws.String(start.Format(time.DateOnly)),
			End:   aws.String(end.Format(time.DateOnly)),
		},
		Metrics: []string{costsAggregation},
		GroupBy: []types.GroupDefinition{group},
		Filter:  queryFilter(q),
	}

	isTag := group.Type == types.GroupDefinitionTypeTag
	var records []model.CostRecord
	for {
		output, err := s.client.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to get cost groups by %s: %w", q.Dimension, err)
		}

		for _, result := range output.ResultsByTime {
			for _, g := range result.Groups {
				amount, unit := parseAmount(g.Metrics)
				records = append(records, model.CostRecord{
					Dimension: q.Dimension,
					Value:     groupValue(g, isTag),
					Amount:    amount,
					Unit:      unit,
				})
			}
		}

		if output.NextPageToken == nil {
			break
		}
		input.NextPageToken = output.NextPageToken
	}
	return records, nil
}

// GetDailyCosts returns the total unblended cost of each of the last days
func (s *service) GetDailyCosts(ctx context.Context, days int) ([]model.CostTrendPoint, error) {
	end := s.now()
	start := end.AddDate(0, 0, -days)
	input := &costexplorer.GetCostAndUsageInput{
		Granularity: types.GranularityDaily,
		TimePeriod: &types.DateInterval{
			Start: aws.String(start.Format(time.DateOnly)),
			End:   aws.String(end.Format(time.DateOnly)),
		},
		Metrics: []string{costsAggregation},
	}

	var points []model.CostTrendPoint
	for {
		output, err := s.client.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to get daily costs: %w", err)
		}

		for _, result := range output.ResultsByTime {
			if result.TimePeriod == nil {
				continue
			}
			date, _, _ := strings.Cut(aws.ToString(result.TimePeriod.Start), "T")
			amount, _ := parseAmount(result.Total)
			points = append(points, model.CostTrendPoint{
				Date:   date,
				Amount: costs.Round2(amount),
			})
		}

		if output.NextPageToken == nil {
			break
		}
		input.NextPageToken = output.NextPageToken
	}
	return points, nil
}
