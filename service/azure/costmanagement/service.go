package azurecostmanagement

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/costs"
)

const (
	costColumn      = "totalCost"
	currencyColumn  = "Currency"
	usageDateColumn = "UsageDate"
	tagValueColumn  = "TagValue"
	defaultJobTag   = "JobId"
	defaultCurrency = "USD"
)

func NewService(subscriptionID string, credential *Credential) (*service, error) {
	client, err := armcostmanagement.NewQueryClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cost management client: %w", err)
	}

	return &service{
		subscriptionID: subscriptionID,
		client:         client,
		now:            time.Now,
	}, nil
}

func (s *service) scope() string {
	return fmt.Sprintf("/subscriptions/%s", s.subscriptionID)
}

// grouping maps a dimension to a Cost Management grouping and the column holding its value
func grouping(q model.CostQuery) (*armcostmanagement.QueryGrouping, string, error) {
	dimension := func(name string) (*armcostmanagement.QueryGrouping, string, error) {
		return &armcostmanagement.QueryGrouping{
			Type: to.Ptr(armcostmanagement.QueryColumnTypeDimension),
			Name: to.Ptr(name),
		}, name, nil
	}

	switch q.Dimension {
	case model.DimensionRegion:
		return dimension("ResourceLocation")
	case model.DimensionInstanceType:
		return dimension("MeterSubCategory")
	case model.DimensionService:
		return dimension("ServiceName")
	case model.DimensionAccount:
		return dimension("SubscriptionId")
	case model.DimensionJob:
		tag := q.JobTag
		if tag == "" {
			tag = defaultJobTag
		}
		return &armcostmanagement.QueryGrouping{
			Type: to.Ptr(armcostmanagement.QueryColumnTypeTag),
			Name: to.Ptr(tag),
		}, tagValueColumn, nil
	}
	return nil, "", costs.ErrUnknownDimension
}

func costAggregation() map[string]*armcostmanagement.QueryAggregation {
	return map[string]*armcostmanagement.QueryAggregation{
		costColumn: {
			Name:     to.Ptr("Cost"),
			Function: to.Ptr(armcostmanagement.FunctionTypeSum),
		},
	}
}

// buildGroupQuery renders the grouped query of the trailing month
func buildGroupQuery(q model.CostQuery, start, end time.Time) (armcostmanagement.QueryDefinition, string, error) {
	group, column, err := grouping(q)
	if err != nil {
		return armcostmanagement.QueryDefinition{}, "", err
	}

	dataset := &armcostmanagement.QueryDataset{
		Granularity: to.Ptr(armcostmanagement.GranularityTypeDaily),
		Aggregation: costAggregation(),
		Grouping:    []*armcostmanagement.QueryGrouping{group},
	}
	if len(q.Regions) > 0 && q.Dimension != model.DimensionRegion {
		dataset.Filter = &armcostmanagement.QueryFilter{
			Dimensions: &armcostmanagement.QueryComparisonExpression{
				Name:     to.Ptr("ResourceLocation"),
				Operator: to.Ptr(armcostmanagement.QueryOperatorTypeIn),
				Values:   to.SliceOfPtrs(q.Regions...),
			},
		}
	}

	return armcostmanagement.QueryDefinition{
		Type:      to.Ptr(armcostmanagement.ExportTypeActualCost),
		Timeframe: to.Ptr(armcostmanagement.TimeframeTypeCustom),
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: to.Ptr(start),
			To:   to.Ptr(end),
		},
		Dataset: dataset,
	}, column, nil
}

// columnIndex locates each column of a result by name
func columnIndex(columns []*armcostmanagement.QueryColumn) map[string]int {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		if c != nil && c.Name != nil {
			idx[*c.Name] = i
		}
	}
	return idx
}

func cell(row []any, idx map[string]int, name string) (any, bool) {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return nil, false
	}
	return row[i], true
}

func floatCell(row []any, idx map[string]int, name string) float64 {
	v, ok := cell(row, idx, name)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	}
	return 0
}

func stringCell(row []any, idx map[string]int, name string) string {
	v, ok := cell(row, idx, name)
	if !ok {
		return ""
	}
	if str, ok := v.(string); ok {
		return str
	}
	return ""
}

// parseGroupRows turns the daily grouped rows into cost records
func parseGroupRows(props *armcostmanagement.QueryProperties, dimension model.Dimension, valueColumn string) []model.CostRecord {
	if props == nil {
		return nil
	}
	idx := columnIndex(props.Columns)

	records := make([]model.CostRecord, 0, len(props.Rows))
	for _, row := range props.Rows {
		value := stringCell(row, idx, valueColumn)
		if value == "" {
			if dimension == model.DimensionJob {
				value = "Unassigned"
			} else {
				value = "Unknown"
			}
		}
		unit := stringCell(row, idx, currencyColumn)
		if unit == "" {
			unit = defaultCurrency
		}
		records = append(records, model.CostRecord{
			Dimension: dimension,
			Value:     value,
			Amount:    floatCell(row, idx, costColumn),
			Unit:      unit,
		})
	}
	return records
}

// parseDailyRows sums the rows of each UsageDate (yyyymmdd) into a trend point
func parseDailyRows(props *armcostmanagement.QueryProperties) []model.CostTrendPoint {
	if props == nil {
		return nil
	}
	idx := columnIndex(props.Columns)

	var order []string
	totals := make(map[string]float64)
	for _, row := range props.Rows {
		raw := strconv.FormatFloat(floatCell(row, idx, usageDateColumn), 'f', 0, 64)
		day, err := time.Parse("20060102", raw)
		if err != nil {
			continue
		}
		date := day.Format(time.DateOnly)
		if _, seen := totals[date]; !seen {
			order = append(order, date)
		}
		totals[date] += floatCell(row, idx, costColumn)
	}

	points := make([]model.CostTrendPoint, 0, len(order))
	for _, date := range order {
		points = append(points, model.CostTrendPoint{Date: date, Amount: costs.Round2(totals[date])})
	}
	return points
}

// GetCostGroups implements service.CostService
func (s *service) GetCostGroups(ctx context.Context, q model.CostQuery) ([]model.CostRecord, error) {
	end := s.now().UTC()
	definition, column, err := buildGroupQuery(q, end.AddDate(0, -1, 0), end)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Usage(ctx, s.scope(), definition, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query costs by %s: %w", strings.ToLower(string(q.Dimension)), err)
	}

	return parseGroupRows(resp.Properties, q.Dimension, column), nil
}

// GetDailyCosts implements service.CostService
func (s *service) GetDailyCosts(ctx context.Context, days int) ([]model.CostTrendPoint, error) {
	end := s.now().UTC()
	definition := armcostmanagement.QueryDefinition{
		Type:      to.Ptr(armcostmanagement.ExportTypeActualCost),
		Timeframe: to.Ptr(armcostmanagement.TimeframeTypeCustom),
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: to.Ptr(end.AddDate(0, 0, -days)),
			To:   to.Ptr(end),
		},
		Dataset: &armcostmanagement.QueryDataset{
			Granularity: to.Ptr(armcostmanagement.GranularityTypeDaily),
			Aggregation: costAggregation(),
		},
	}

	resp, err := s.client.Usage(ctx, s.scope(), definition, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily costs: %w", err)
	}

	return parseDailyRows(resp.Properties), nil
}
