package gcpconfig

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/compute/v1"
)

// BigQueryReadOnlyScope lets the billing export be queried
const BigQueryReadOnlyScope = "https://www.googleapis.com/auth/bigquery.readonly"

func NewService(projectID string) *service {
	return &service{
		projectID:       projectID,
		findCredentials: google.FindDefaultCredentials,
	}
}

// GetCredentials uses Application Default Credentials.
// This supports:
// - GOOGLE_APPLICATION_CREDENTIALS environment variable
// - gcloud auth application-default login
// - Service account on GCE/Cloud Run/Cloud Functions
func (s *service) GetCredentials(ctx context.Context) (*google.Credentials, error) {
	creds, err := s.findCredentials(ctx,
		BigQueryReadOnlyScope,
		cloudresourcemanager.CloudPlatformReadOnlyScope,
		compute.ComputeReadonlyScope,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find GCP credentials: %w", err)
	}
	return creds, nil
}

// GetProjectID returns the configured project, falling back to the one bound to the credentials
func (s *service) GetProjectID(ctx context.Context) (string, error) {
	if s.projectID != "" {
		return s.projectID, nil
	}
	creds, err := s.GetCredentials(ctx)
	if err != nil {
		return "", err
	}
	if creds.ProjectID == "" {
		return "", fmt.Errorf("no GCP project configured, set GCP_PROJECT_ID or pass --project")
	}
	return creds.ProjectID, nil
}
