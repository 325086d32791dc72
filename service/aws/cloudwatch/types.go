package awscloudwatch

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/elC0mpa/ec2-observe/model"
)

// CloudWatchAPI is the subset of the CloudWatch API used by the service
type CloudWatchAPI interface {
	GetMetricData(ctx context.Context, input *cloudwatch.GetMetricDataInput, opts ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricDataOutput, error)
}

type service struct {
	client CloudWatchAPI
	now    func() time.Time
}

// InstanceMetrics are the latest samples of an instance
type InstanceMetrics struct {
	CPU       float64
	NetworkIn float64
}

type CloudWatchService interface {
	GetLatestMetrics(ctx context.Context, instanceID string) (*InstanceMetrics, error)
	GetUtilizationSeries(ctx context.Context, instanceID string, period model.TimelinePeriod) (*model.UtilizationSeries, error)
}
