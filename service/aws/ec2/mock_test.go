package awsec2

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	awscloudwatch "github.com/elC0mpa/ec2-observe/service/aws/cloudwatch"
)

// mockEC2Client implements EC2API for testing.
type mockEC2Client struct {
	pages []*ec2.DescribeInstancesOutput
	err   error
	calls int
}

func (m *mockEC2Client) DescribeInstances(_ context.Context, _ *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.calls >= len(m.pages) {
		return &ec2.DescribeInstancesOutput{}, nil
	}
	page := m.pages[m.calls]
	m.calls++
	return page, nil
}

type mockMetrics struct {
	byID map[string]*awscloudwatch.InstanceMetrics
	err  error
}

func (m *mockMetrics) GetLatestMetrics(_ context.Context, instanceID string) (*awscloudwatch.InstanceMetrics, error) {
	if m.err != nil {
		return nil, m.err
	}
	if metrics, ok := m.byID[instanceID]; ok {
		return metrics, nil
	}
	return &awscloudwatch.InstanceMetrics{}, nil
}

type staticAccount string

func (a staticAccount) AccountID(context.Context) string { return string(a) }
