package gcpbilling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/costs"
	"google.golang.org/api/iterator"
)

// DefaultDataset is the BigQuery dataset holding the billing export
const DefaultDataset = "billing_export"

const defaultJobLabel = "JobId"

func NewService(ctx context.Context, projectID, billingAccount, dataset string) (*service, error) {
	bqClient, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create BigQuery client: %w", err)
	}

	if dataset == "" {
		dataset = DefaultDataset
	}

	return &service{
		projectID:      projectID,
		billingAccount: billingAccount,
		dataset:        dataset,
		bqClient:       bqClient,
		now:            time.Now,
	}, nil
}

// Close closes the BigQuery client
func (s *service) Close() error {
	return s.bqClient.Close()
}

// exportTable is the table name format project.dataset.gcp_billing_export_v1_BILLING_ACCOUNT_ID.
// Billing export must be enabled for the account.
func (s *service) exportTable() string {
	billingAccountID := strings.ReplaceAll(s.billingAccount, "billingAccounts/", "")
	billingAccountID = strings.ReplaceAll(billingAccountID, "-", "_")
	return fmt.Sprintf("`%s.%s.gcp_billing_export_v1_%s`", s.projectID, s.dataset, billingAccountID)
}

// groupExpression is the billing export column a dimension groups by
func groupExpression(d model.Dimension) (string, error) {
	switch d {
	case model.DimensionRegion:
		return "IFNULL(location.region, 'global')", nil
	case model.DimensionInstanceType:
		return "sku.description", nil
	case model.DimensionService:
		return "service.description", nil
	case model.DimensionAccount:
		return "project.id", nil
	case model.DimensionJob:
		return "(SELECT l.value FROM UNNEST(labels) AS l WHERE l.key = @jobLabel LIMIT 1)", nil
	}
	return "", costs.ErrUnknownDimension
}

// buildGroupQuery renders the grouped cost query and its parameters
func (s *service) buildGroupQuery(q model.CostQuery, start, end time.Time) (string, []bigquery.QueryParameter, error) {
	expr, err := groupExpression(q.Dimension)
	if err != nil {
		return "", nil, err
	}

	params := []bigquery.QueryParameter{
		{Name: "projectID", Value: s.projectID},
		{Name: "startDate", Value: start.Format(time.DateOnly)},
		{Name: "endDate", Value: end.Format(time.DateOnly)},
	}

	var filters []string
	if q.Dimension == model.DimensionJob {
		label := q.JobTag
		if label == "" {
			label = defaultJobLabel
		}
		params = append(params, bigquery.QueryParameter{Name: "jobLabel", Value: label})
	}
	if len(q.Regions) > 0 && q.Dimension != model.DimensionRegion {
		filters = append(filters, "AND location.region IN UNNEST(@regions)")
		params = append(params, bigquery.QueryParameter{Name: "regions", Value: q.Regions})
	}

	query := fmt.Sprintf(`
		SELECT
			%s AS group_value,
			SUM(cost) AS total_cost,
			currency
		FROM %s
		WHERE
			project.id = @projectID
			AND DATE(usage_start_time) >= @startDate
			AND DATE(usage_start_time) < @endDate
			%s
		GROUP BY group_value, currency
		ORDER BY total_cost DESC
	`, expr, s.exportTable(), strings.Join(filters, "\n\t\t\t"))

	return query, params, nil
}

// GetCostGroups implements service.CostService
func (s *service) GetCostGroups(ctx context.Context, q model.CostQuery) ([]model.CostRecord, error) {
	end := s.now()
	query, params, err := s.buildGroupQuery(q, end.AddDate(0, -1, 0), end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	bq := s.bqClient.Query(query)
	bq.Parameters = params

	it, err := bq.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to execute BigQuery query: %w", err)
	}

	var records []model.CostRecord
	for {
		var row struct {
			GroupValue bigquery.NullString `bigquery:"group_value"`
			TotalCost  float64             `bigquery:"total_cost"`
			Currency   string              `bigquery:"currency"`
		}

		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read BigQuery row: %w", err)
		}

		records = append(records, model.CostRecord{
			Dimension: q.Dimension,
			Value:     groupValue(row.GroupValue, q.Dimension),
			Amount:    row.TotalCost,
			Unit:      row.Currency,
		})
	}

	return records, nil
}

func groupValue(v bigquery.NullString, d model.Dimension) string {
	if v.Valid && v.StringVal != "" {
		return v.StringVal
	}
	if d == model.DimensionJob {
		return "Unassigned"
	}
	return "Unknown"
}

// GetDailyCosts implements service.CostService
func (s *service) GetDailyCosts(ctx context.Context, days int) ([]model.CostTrendPoint, error) {
	end := s.now()
	start := end.AddDate(0, 0, -days)

	query := fmt.Sprintf(`
		SELECT
			FORMAT_DATE('%%Y-%%m-%%d', DATE(usage_start_time)) AS day,
			SUM(cost) AS total_cost
		FROM %s
		WHERE
			project.id = @projectID
			AND DATE(usage_start_time) >= @startDate
			AND DATE(usage_start_time) < @endDate
		GROUP BY day
		ORDER BY day
	`, s.exportTable())

	q := s.bqClient.Query(query)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "projectID", Value: s.projectID},
		{Name: "startDate", Value: start.Format(time.DateOnly)},
		{Name: "endDate", Value: end.Format(time.DateOnly)},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to execute BigQuery query: %w", err)
	}

	var points []model.CostTrendPoint
	for {
		var row struct {
			Day       string  `bigquery:"day"`
			TotalCost float64 `bigquery:"total_cost"`
		}

		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read BigQuery row: %w", err)
		}

		points = append(points, model.CostTrendPoint{
			Date:   row.Day,
			Amount: costs.Round2(row.TotalCost),
		})
	}

	return points, nil
}
