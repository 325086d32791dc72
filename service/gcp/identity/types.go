package gcpidentity

import (
	"context"

	"github.com/elC0mpa/ec2-observe/model"
	"google.golang.org/api/cloudresourcemanager/v1"
)

// ProjectsAPI fetches a project record
type ProjectsAPI interface {
	GetProject(ctx context.Context, projectID string) (*cloudresourcemanager.Project, error)
}

type resourceManager struct {
	client *cloudresourcemanager.Service
}

type service struct {
	projectID string
	projects  ProjectsAPI
}

type IdentityService interface {
	GetAccountInfo(ctx context.Context) (*model.AccountInfo, error)
	GetProjectInfo(ctx context.Context) (*cloudresourcemanager.Project, error)
}
