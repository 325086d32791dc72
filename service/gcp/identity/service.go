package gcpidentity

import (
	"context"
	"fmt"

	"github.com/elC0mpa/ec2-observe/model"
	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/option"
)

// ActiveState is the lifecycle state of a usable project
const ActiveState = "ACTIVE"

func NewService(ctx context.Context, projectID string, opts ...option.ClientOption) (*service, error) {
	opts = append([]option.ClientOption{option.WithScopes(cloudresourcemanager.CloudPlatformReadOnlyScope)}, opts...)
	client, err := cloudresourcemanager.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Resource Manager client: %w", err)
	}
	return newService(projectID, &resourceManager{client: client}), nil
}

func newService(projectID string, projects ProjectsAPI) *service {
	return &service{
		projectID: projectID,
		projects:  projects,
	}
}

func (r *resourceManager) GetProject(ctx context.Context, projectID string) (*cloudresourcemanager.Project, error) {
	return r.client.Projects.Get(projectID).Context(ctx).Do()
}

// GetAccountInfo implements service.IdentityService
func (s *service) GetAccountInfo(ctx context.Context) (*model.AccountInfo, error) {
	project, err := s.GetProjectInfo(ctx)
	if err != nil {
		return nil, err
	}
	if project.LifecycleState != "" && project.LifecycleState != ActiveState {
		return nil, fmt.Errorf("project %s is %s", s.projectID, project.LifecycleState)
	}

	name := project.Name
	if name == "" {
		name = s.projectID
	}
	return &model.AccountInfo{
		Provider:    "gcp",
		AccountID:   s.projectID,
		AccountName: name,
	}, nil
}

// GetProjectInfo returns the project record
func (s *service) GetProjectInfo(ctx context.Context) (*cloudresourcemanager.Project, error) {
	project, err := s.projects.GetProject(ctx, s.projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", s.projectID, err)
	}
	return project, nil
}
