package awsec2

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/elC0mpa/ec2-observe/model"
	awscloudwatch "github.com/elC0mpa/ec2-observe/service/aws/cloudwatch"
	awssts "github.com/elC0mpa/ec2-observe/service/aws/sts"
	"github.com/elC0mpa/ec2-observe/service/costs"
)

const (
	unnamed         = "Unnamed"
	unknownType     = "unknown"
	pricingFallback = "t3.micro"
)

func NewService(awsconfig aws.Config) *service {
	client := ec2.NewFromConfig(awsconfig)
	return newService(client, awscloudwatch.NewService(awsconfig), awssts.NewService(awsconfig), awsconfig.Region)
}

func newService(client EC2API, metrics MetricsReader, accounts AccountResolver, region string) *service {
	return &service{
		client:   client,
		metrics:  metrics,
		accounts: accounts,
		region:   region,
		now:      time.Now,
	}
}

// ListInstances implements service.InventoryService
func (s *service) ListInstances(ctx context.Context) ([]model.Instance, error) {
	var raw []types.Instance

	paginator := ec2.NewDescribeInstancesPaginator(s.client, &ec2.DescribeInstancesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe instances: %w", err)
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				if instance.InstanceId == nil {
					continue
				}
				raw = append(raw, instance)
			}
		}
	}

	if len(raw) == 0 {
		return []model.Instance{}, nil
	}

	accountID := s.accounts.AccountID(ctx)
	instances := make([]model.Instance, 0, len(raw))
	for _, instance := range raw {
		instances = append(instances, s.toInstance(ctx, instance, accountID))
	}
	return instances, nil
}

func (s *service) toInstance(ctx context.Context, instance types.Instance, accountID string) model.Instance {
	id := aws.ToString(instance.InstanceId)
	now := s.now()

	launch := now
	uptime := 0.0
	if instance.LaunchTime != nil {
		launch = *instance.LaunchTime
		uptime = math.Floor(now.Sub(launch).Hours())
	}

	instanceType := string(instance.InstanceType)
	pricedAs := instanceType
	if instanceType == "" {
		instanceType = unknownType
		pricedAs = pricingFallback
	}

	state := model.StateStopped
	if instance.State != nil && instance.State.Name != "" {
		state = model.InstanceState(instance.State.Name)
	}

	tags := make(map[string]string, len(instance.Tags))
	for _, tag := range instance.Tags {
		key, value := aws.ToString(tag.Key), aws.ToString(tag.Value)
		if key != "" && value != "" {
			tags[key] = value
		}
	}
	name := tags["Name"]
	if name == "" {
		name = unnamed
	}

	cpu, ram := s.latestUtilization(ctx, id)

	return model.Instance{
		ID:          id,
		Name:        name,
		Type:        instanceType,
		Region:      s.region,
		AccountID:   accountID,
		UptimeHrs:   uptime,
		CostPerHour: costs.HourlyRate(pricedAs),
		CPUUtilPct:  cpu,
		RAMUtilPct:  ram,
		State:       state,
		LaunchTime:  launch,
		Tags:        tags,
	}
}

// latestUtilization reads CPU and approximates memory pressure from inbound traffic.
// GPU usage needs custom metrics and is reported as 0. Missing metrics read as idle.
func (s *service) latestUtilization(ctx context.Context, instanceID string) (cpu, ram float64) {
	m, err := s.metrics.GetLatestMetrics(ctx, instanceID)
	if err != nil || m == nil {
		return 0, 0
	}
	ram = min(100, max(0, m.NetworkIn/1_000_000*10))
	return costs.Round2(m.CPU), costs.Round2(ram)
}
