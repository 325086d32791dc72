package awscloudwatch

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/elC0mpa/ec2-observe/model"
)

const (
	ec2Namespace     = "AWS/EC2"
	metricCPU        = "CPUUtilization"
	metricNetworkIn  = "NetworkIn"
	metricNetworkOut = "NetworkOut"
	latestWindow     = time.Hour
	latestPeriodSecs = 300
)

func NewService(awsconfig aws.Config) *service {
	client := cloudwatch.NewFromConfig(awsconfig)
	return newService(client)
}

func newService(client CloudWatchAPI) *service {
	return &service{
		client: client,
		now:    time.Now,
	}
}

func (s *service) query(id, metricName, instanceID string, periodSecs int32) types.MetricDataQuery {
	return types.MetricDataQuery{
		Id: aws.String(id),
		MetricStat: &types.MetricStat{
			Metric: &types.Metric{
				Namespace:  aws.String(ec2Namespace),
				MetricName: aws.String(metricName),
				Dimensions: []types.Dimension{
					{Name: aws.String("InstanceId"), Value: aws.String(instanceID)},
				},
			},
			Period: aws.Int32(periodSecs),
			Stat:   aws.String("Average"),
		},
	}
}

func (s *service) getMetricData(ctx context.Context, input *cloudwatch.GetMetricDataInput) (map[string]types.MetricDataResult, error) {
	results := make(map[string]types.MetricDataResult)

	paginator := cloudwatch.NewGetMetricDataPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, r := range page.MetricDataResults {
			id := aws.ToString(r.Id)
			merged := results[id]
			merged.Id = r.Id
			merged.Timestamps = append(merged.Timestamps, r.Timestamps...)
			merged.Values = append(merged.Values, r.Values...)
			results[id] = merged
		}
	}
	return results, nil
}

// GetLatestMetrics returns the most recent 5-minute averages of the last hour
func (s *service) GetLatestMetrics(ctx context.Context, instanceID string) (*InstanceMetrics, error) {
	end := s.now()
	input := &cloudwatch.GetMetricDataInput{
		StartTime: aws.Time(end.Add(-latestWindow)),
		EndTime:   aws.Time(end),
		ScanBy:    types.ScanByTimestampDescending,
		MetricDataQueries: []types.MetricDataQuery{
			s.query("cpu", metricCPU, instanceID, latestPeriodSecs),
			s.query("network", metricNetworkIn, instanceID, latestPeriodSecs),
		},
	}

	results, err := s.getMetricData(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics for %s: %w", instanceID, err)
	}

	return &InstanceMetrics{
		CPU:       first(results["cpu"].Values),
		NetworkIn: first(results["network"].Values),
	}, nil
}

// GetUtilizationSeries returns CPU and network samples over a timeline period, oldest first
func (s *service) GetUtilizationSeries(ctx context.Context, instanceID string, period model.TimelinePeriod) (*model.UtilizationSeries, error) {
	end := s.now()
	periodSecs := int32(period.Step() / time.Second)
	input := &cloudwatch.GetMetricDataInput{
		StartTime: aws.Time(end.Add(-period.Span())),
		EndTime:   aws.Time(end),
		ScanBy:    types.ScanByTimestampAscending,
		MetricDataQueries: []types.MetricDataQuery{
			s.query("cpu", metricCPU, instanceID, periodSecs),
			s.query("networkIn", metricNetworkIn, instanceID, periodSecs),
			s.query("networkOut", metricNetworkOut, instanceID, periodSecs),
		},
	}

	results, err := s.getMetricData(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get utilization series for %s: %w", instanceID, err)
	}

	return &model.UtilizationSeries{
		CPU:        toSeries(results["cpu"]),
		NetworkIn:  toSeries(results["networkIn"]),
		NetworkOut: toSeries(results["networkOut"]),
	}, nil
}

func toSeries(r types.MetricDataResult) model.MetricSeries {
	return model.MetricSeries{Timestamps: r.Timestamps, Values: r.Values}
}

func first(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return values[0]
}
