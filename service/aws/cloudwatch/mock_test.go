package awscloudwatch

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// mockCloudWatchClient implements CloudWatchAPI for testing.
type mockCloudWatchClient struct {
	pages  []*cloudwatch.GetMetricDataOutput
	err    error
	inputs []*cloudwatch.GetMetricDataInput
	calls  int
}

func (m *mockCloudWatchClient) GetMetricData(_ context.Context, input *cloudwatch.GetMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricDataOutput, error) {
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	if m.calls >= len(m.pages) {
		return &cloudwatch.GetMetricDataOutput{MetricDataResults: []types.MetricDataResult{}}, nil
	}
	page := m.pages[m.calls]
	m.calls++
	return page, nil
}
