package gcpbilling

import (
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/costs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *service {
	return &service{
		projectID:      "demo-project",
		billingAccount: "billingAccounts/0123AB-CDEF45-678901",
		dataset:        DefaultDataset,
	}
}

func TestExportTable(t *testing.T) {
	assert.Equal(t, "`demo-project.billing_export.gcp_billing_export_v1_0123AB_CDEF45_678901`", newTestService().exportTable())
}

func TestBuildGroupQuery(t *testing.T) {
	start := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	t.Run("service", func(t *testing.T) {
		query, params, err := newTestService().buildGroupQuery(model.CostQuery{Dimension: model.DimensionService}, start, end)

		require.NoError(t, err)
		assert.Contains(t, query, "service.description AS group_value")
		assert.NotContains(t, query, "@regions")
		assert.Equal(t, []bigquery.QueryParameter{
			{Name: "projectID", Value: "demo-project"},
			{Name: "startDate", Value: "2025-02-10"},
			{Name: "endDate", Value: "2025-03-11"},
		}, params)
	})

	t.Run("job label with region scope", func(t *testing.T) {
		query, params, err := newTestService().buildGroupQuery(model.CostQuery{
			Dimension: model.DimensionJob,
			JobTag:    "pipeline",
			Regions:   []string{"europe-west1"},
		}, start, end)

		require.NoError(t, err)
		assert.Contains(t, query, "UNNEST(labels)")
		assert.Contains(t, query, "location.region IN UNNEST(@regions)")
		require.Len(t, params, 5)
		assert.Equal(t, bigquery.QueryParameter{Name: "jobLabel", Value: "pipeline"}, params[3])
		assert.Equal(t, bigquery.QueryParameter{Name: "regions", Value: []string{"europe-west1"}}, params[4])
	})

	t.Run("default job label", func(t *testing.T) {
		_, params, err := newTestService().buildGroupQuery(model.CostQuery{Dimension: model.DimensionJob}, start, end)

		require.NoError(t, err)
		assert.Equal(t, "JobId", params[3].Value)
	})

	t.Run("unknown dimension", func(t *testing.T) {
		_, _, err := newTestService().buildGroupQuery(model.CostQuery{Dimension: "color"}, start, end)
		assert.ErrorIs(t, err, costs.ErrUnknownDimension)
	})
}

func TestGroupValue(t *testing.T) {
	assert.Equal(t, "us-central1", groupValue(bigquery.NullString{StringVal: "us-central1", Valid: true}, model.DimensionRegion))
	assert.Equal(t, "Unknown", groupValue(bigquery.NullString{}, model.DimensionRegion))
	assert.Equal(t, "Unassigned", groupValue(bigquery.NullString{}, model.DimensionJob))
}
