package costs

import (
	"testing"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeTrend(t *testing.T) {
	primary := []model.CostTrendPoint{
		{Date: "2025-01-01", Amount: 0},
		{Date: "2025-01-02", Amount: 100},
		{Date: "2025-01-03", Amount: 1.234},
	}
	secondary := []model.CostTrendPoint{
		{Date: "2025-01-04", Amount: 10},
		{Date: "2025-01-02", Amount: 150, IsAnomaly: true},
		{Date: "2025-01-01", Amount: 200.456},
	}

	t.Run("merges collisions and keeps the rest", func(t *testing.T) {
		got := MergeTrend(primary, secondary, 0)
		assert.Equal(t, []model.CostTrendPoint{
			{Date: "2025-01-01", Amount: 200.46},
			{Date: "2025-01-02", Amount: 150, IsAnomaly: true},
			{Date: "2025-01-03", Amount: 1.234},
			{Date: "2025-01-04", Amount: 10},
		}, got)
	})

	t.Run("window keeps the latest days", func(t *testing.T) {
		got := MergeTrend(primary, secondary, 2)
		require.Len(t, got, 2)
		assert.Equal(t, "2025-01-03", got[0].Date)
		assert.Equal(t, "2025-01-04", got[1].Date)
	})

	t.Run("window larger than the series", func(t *testing.T) {
		assert.Len(t, MergeTrend(primary, nil, 30), 3)
	})

	t.Run("zero on the incoming side keeps the existing amount", func(t *testing.T) {
		got := MergeTrend(
			[]model.CostTrendPoint{{Date: "2025-02-01", Amount: 80}},
			[]model.CostTrendPoint{{Date: "2025-02-01", Amount: 0, IsAnomaly: true}},
			0,
		)
		assert.Equal(t, []model.CostTrendPoint{{Date: "2025-02-01", Amount: 80, IsAnomaly: true}}, got)
	})

	t.Run("larger amount wins", func(t *testing.T) {
		got := MergeTrend(
			[]model.CostTrendPoint{{Date: "2025-02-01", Amount: 300}},
			[]model.CostTrendPoint{{Date: "2025-02-01", Amount: 120}},
			0,
		)
		assert.Equal(t, 300.0, got[0].Amount)
	})
}

func TestMergeBreakdowns(t *testing.T) {
	primary := []model.CostBreakdown{{Value: "live", Amount: 10, Percentage: 100}}
	secondary := []model.CostBreakdown{{Value: "derived", Amount: 5, Percentage: 100}}

	got := MergeBreakdowns(primary, secondary)

	assert.Equal(t, []model.CostBreakdown{primary[0], secondary[0]}, got)
	assert.Equal(t, []model.CostBreakdown{}, MergeBreakdowns(nil, nil))
}

func TestSelectSource(t *testing.T) {
	live := []model.CostRecord{{Value: "us-east-1", Amount: 1}}
	fleet := []model.Instance{{ID: "i-1"}}

	assert.Equal(t, model.SourceLive, SelectSource(live, fleet))
	assert.Equal(t, model.SourceLive, SelectSource(live, nil))
	assert.Equal(t, model.SourceDerived, SelectSource(nil, fleet))
	assert.Equal(t, model.SourceSynthetic, SelectSource(nil, nil))
}

func TestPeriodDays(t *testing.T) {
	assert.Equal(t, 7, PeriodDays("7d"))
	assert.Equal(t, 30, PeriodDays("30d"))
	assert.Equal(t, 90, PeriodDays("90d"))
	assert.Equal(t, 90, PeriodDays("1y"))
	assert.Equal(t, 90, PeriodDays(""))
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, Period30d, p)

	p, err = ParsePeriod("7d")
	require.NoError(t, err)
	assert.Equal(t, Period7d, p)

	_, err = ParsePeriod("1y")
	assert.ErrorIs(t, err, ErrUnknownPeriod)
}

func TestSummarizeTrend(t *testing.T) {
	total, avg := SummarizeTrend([]model.CostTrendPoint{
		{Amount: 100},
		{Amount: 200},
		{Amount: 0.333},
	})
	assert.Equal(t, 300.33, total)
	assert.Equal(t, 100.11, avg)

	total, avg = SummarizeTrend(nil)
	assert.Equal(t, 0.0, total)
	assert.Equal(t, 0.0, avg)
}
