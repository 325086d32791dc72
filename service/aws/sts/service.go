package awssts

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/elC0mpa/ec2-observe/model"
)

// UnknownAccount is reported when the caller identity cannot be resolved
const UnknownAccount = "unknown"

func NewService(awsconfig aws.Config) *service {
	client := sts.NewFromConfig(awsconfig)
	return newService(client)
}

func newService(client STSAPI) *service {
	return &service{
		client: client,
	}
}

func (s *service) GetCallerIdentity(ctx context.Context) (*sts.GetCallerIdentityOutput, error) {
	input := &sts.GetCallerIdentityInput{}

	return s.client.GetCallerIdentity(ctx, input)
}

// GetAccountInfo implements service.IdentityService
func (s *service) GetAccountInfo(ctx context.Context) (*model.AccountInfo, error) {
	output, err := s.GetCallerIdentity(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get caller identity: %w", err)
	}

	return &model.AccountInfo{
		Provider:    "aws",
		AccountID:   aws.ToString(output.Account),
		AccountName: aws.ToString(output.Arn),
	}, nil
}

// AccountID resolves the current account, UnknownAccount when it cannot
func (s *service) AccountID(ctx context.Context) string {
	info, err := s.GetAccountInfo(ctx)
	if err != nil || info.AccountID == "" {
		return UnknownAccount
	}
	return info.AccountID
}
