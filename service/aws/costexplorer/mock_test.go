package awscostexplorer

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
)

// mockCostExplorerClient implements CostExplorerAPI for testing.
type mockCostExplorerClient struct {
	pages  []*costexplorer.GetCostAndUsageOutput
	err    error
	inputs []costexplorer.GetCostAndUsageInput
}

func (m *mockCostExplorerClient) GetCostAndUsage(_ context.Context, input *costexplorer.GetCostAndUsageInput, _ ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error) {
	m.inputs = append(m.inputs, *input)
	if m.err != nil {
		return nil, m.err
	}
	i := len(m.inputs) - 1
	if i >= len(m.pages) {
		return &costexplorer.GetCostAndUsageOutput{}, nil
	}
	return m.pages[i], nil
}
