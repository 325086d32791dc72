package awsec2

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/elC0mpa/ec2-observe/model"
	awscloudwatch "github.com/elC0mpa/ec2-observe/service/aws/cloudwatch"
)

// EC2API is the subset of the EC2 API used by the service
type EC2API interface {
	DescribeInstances(ctx context.Context, input *ec2.DescribeInstancesInput, opts ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
}

// MetricsReader returns the latest CloudWatch samples of an instance
type MetricsReader interface {
	GetLatestMetrics(ctx context.Context, instanceID string) (*awscloudwatch.InstanceMetrics, error)
}

// AccountResolver names the account the credentials belong to
type AccountResolver interface {
	AccountID(ctx context.Context) string
}

type service struct {
	client   EC2API
	metrics  MetricsReader
	accounts AccountResolver
	region   string
	now      func() time.Time
}

type EC2Service interface {
	ListInstances(ctx context.Context) ([]model.Instance, error)
}
