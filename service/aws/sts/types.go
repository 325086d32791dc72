package awssts

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/elC0mpa/ec2-observe/model"
)

// STSAPI is the subset of the STS API used by the service
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, input *sts.GetCallerIdentityInput, opts ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type service struct {
	client STSAPI
}

type STSService interface {
	GetCallerIdentity(ctx context.Context) (*sts.GetCallerIdentityOutput, error)
	GetAccountInfo(ctx context.Context) (*model.AccountInfo, error)
	AccountID(ctx context.Context) string
}
